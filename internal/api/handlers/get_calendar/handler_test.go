package get_calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWindowParam(t *testing.T) {
	start, err := parseWindowParam("2026-01-10T13:00:00+03:00", false)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-10T10:00:00Z", start.Format(time.RFC3339))

	// Дата без времени - начало дня
	start, err = parseWindowParam("2026-01-10", false)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-10T00:00:00Z", start.Format(time.RFC3339))

	// Для конца окна дата без времени - конец дня
	end, err := parseWindowParam("2026-01-10", true)
	require.NoError(t, err)
	assert.Equal(t, "2026-01-10T23:59:59Z", end.Format(time.RFC3339))

	_, err = parseWindowParam("next week", false)
	assert.Error(t, err)

	_, err = parseWindowParam("", false)
	assert.Error(t, err)
}
