package recurrence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-DeliverySlotService/internal/domain"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse(time.RFC3339, value)
	require.NoError(t, err)
	return parsed
}

func TestExpand_WeeklyRule(t *testing.T) {
	engine := NewEngine()

	// DTStart - вторник
	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		AvailableSpots:  1,
		RRule:           "FREQ=WEEKLY",
		DTStart:         mustTime(t, "2026-01-06T10:00:00Z"),
	}

	occurrences, err := engine.Expand(cfg,
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-01-31T23:59:59Z"),
	)
	require.NoError(t, err)
	require.Len(t, occurrences, 4)

	expected := []string{
		"2026-01-06T10:00:00Z",
		"2026-01-13T10:00:00Z",
		"2026-01-20T10:00:00Z",
		"2026-01-27T10:00:00Z",
	}
	for i, occ := range occurrences {
		assert.Equal(t, expected[i], occ.Key())
		assert.Equal(t, occ.Start.Add(time.Hour), occ.End)
	}
}

func TestExpand_OrderedWithoutDuplicates(t *testing.T) {
	engine := NewEngine()

	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 30,
		RRule:           "FREQ=WEEKLY;BYDAY=TU,FR",
		DTStart:         mustTime(t, "2026-01-06T09:00:00Z"),
	}

	occurrences, err := engine.Expand(cfg,
		mustTime(t, "2026-01-06T00:00:00Z"),
		mustTime(t, "2026-01-20T23:59:59Z"),
	)
	require.NoError(t, err)
	require.NotEmpty(t, occurrences)

	seen := make(map[string]struct{}, len(occurrences))
	for i, occ := range occurrences {
		if i > 0 {
			assert.True(t, occurrences[i-1].Start.Before(occ.Start),
				"occurrences must be strictly ordered by start")
		}
		_, dup := seen[occ.Key()]
		assert.False(t, dup, "duplicate occurrence %s", occ.Key())
		seen[occ.Key()] = struct{}{}
	}
}

func TestExpand_WindowClipsOccurrences(t *testing.T) {
	engine := NewEngine()

	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		RRule:           "FREQ=DAILY",
		DTStart:         mustTime(t, "2026-01-01T12:00:00Z"),
	}

	occurrences, err := engine.Expand(cfg,
		mustTime(t, "2026-01-10T00:00:00Z"),
		mustTime(t, "2026-01-12T23:59:59Z"),
	)
	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, "2026-01-10T12:00:00Z", occurrences[0].Key())
	assert.Equal(t, "2026-01-12T12:00:00Z", occurrences[2].Key())
}

func TestExpand_ZeroWindowStartUsesDTStart(t *testing.T) {
	engine := NewEngine()

	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		RRule:           "FREQ=DAILY",
		DTStart:         mustTime(t, "2026-01-05T08:00:00Z"),
	}

	occurrences, err := engine.Expand(cfg, time.Time{}, mustTime(t, "2026-01-07T23:59:59Z"))
	require.NoError(t, err)
	require.Len(t, occurrences, 3)
	assert.Equal(t, "2026-01-05T08:00:00Z", occurrences[0].Key())
}

func TestExpand_DTEndCutsTail(t *testing.T) {
	engine := NewEngine()

	dtend := mustTime(t, "2026-01-15T23:59:59Z")
	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		RRule:           "FREQ=WEEKLY",
		DTStart:         mustTime(t, "2026-01-06T10:00:00Z"),
		DTEnd:           &dtend,
	}

	occurrences, err := engine.Expand(cfg,
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-01-31T23:59:59Z"),
	)
	require.NoError(t, err)
	require.Len(t, occurrences, 2)
	assert.Equal(t, "2026-01-06T10:00:00Z", occurrences[0].Key())
	assert.Equal(t, "2026-01-13T10:00:00Z", occurrences[1].Key())
}

func TestExpand_EmptyRuleSingleOccurrence(t *testing.T) {
	engine := NewEngine()

	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 90,
		DTStart:         mustTime(t, "2026-01-10T14:00:00Z"),
	}

	occurrences, err := engine.Expand(cfg,
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-01-31T23:59:59Z"),
	)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "2026-01-10T14:00:00Z", occurrences[0].Key())
	assert.Equal(t, 90*time.Minute, occurrences[0].End.Sub(occurrences[0].Start))
}

func TestExpand_EmptyRuleOutsideWindow(t *testing.T) {
	engine := NewEngine()

	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		DTStart:         mustTime(t, "2026-03-01T14:00:00Z"),
	}

	occurrences, err := engine.Expand(cfg,
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-01-31T23:59:59Z"),
	)
	require.NoError(t, err)
	assert.Empty(t, occurrences)
}

func TestExpand_NormalizesToUTC(t *testing.T) {
	engine := NewEngine()

	// DTStart в зоне +03:00, вхождения - в UTC
	moscow := time.FixedZone("MSK", 3*60*60)
	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		DTStart:         time.Date(2026, 1, 10, 13, 0, 0, 0, moscow),
	}

	occurrences, err := engine.Expand(cfg,
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-01-31T23:59:59Z"),
	)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, "2026-01-10T10:00:00Z", occurrences[0].Key())
	assert.Equal(t, time.UTC, occurrences[0].Start.Location())
}

func TestExpand_MalformedRule(t *testing.T) {
	engine := NewEngine()

	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		RRule:           "FREQ=BOGUS",
		DTStart:         mustTime(t, "2026-01-06T10:00:00Z"),
	}

	_, err := engine.Expand(cfg,
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-01-31T23:59:59Z"),
	)
	assert.ErrorIs(t, err, ErrInvalidRule)
}

func TestExpand_InvalidWindow(t *testing.T) {
	engine := NewEngine()

	cfg := &domain.ShippingSlotConfig{
		DurationMinutes: 60,
		RRule:           "FREQ=DAILY",
		DTStart:         mustTime(t, "2026-01-06T10:00:00Z"),
	}

	_, err := engine.Expand(cfg,
		mustTime(t, "2026-01-31T00:00:00Z"),
		mustTime(t, "2026-01-01T00:00:00Z"),
	)
	assert.ErrorIs(t, err, ErrInvalidWindow)
}

func TestExpand_NilConfig(t *testing.T) {
	engine := NewEngine()

	_, err := engine.Expand(nil,
		mustTime(t, "2026-01-01T00:00:00Z"),
		mustTime(t, "2026-01-31T00:00:00Z"),
	)
	assert.ErrorIs(t, err, ErrInvalidRule)
}
