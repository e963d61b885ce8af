package domain

import "time"

// Occurrence is one concrete time interval produced by expanding a
// recurrence rule.
type Occurrence struct {
	Start time.Time
	End   time.Time
}

// Key returns the occurrence start as a comparable instant key.
func (o Occurrence) Key() string {
	return InstantKey(o.Start)
}

// InstantKey форматирует момент времени в ключ для группировки и сравнения
// Всегда нормализует в UTC: два представления одного момента в разных
// зонах дают одинаковый ключ
func InstantKey(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// SameInstant сравнивает два момента времени по отформатированному ключу
func SameInstant(a, b time.Time) bool {
	return InstantKey(a) == InstantKey(b)
}
