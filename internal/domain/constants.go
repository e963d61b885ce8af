package domain

// Default configuration values
const (
	DefaultDurationMinutes = 60
	DefaultAvailableSpots  = 1
)

// Business validation constants
const (
	MinDurationMinutes = 5
	MaxDurationMinutes = 1440 // full day
	MinAvailableSpots  = 1
	MaxAvailableSpots  = 1000
)

// Time format constants
const (
	DateFormat = "2006-01-02" // YYYY-MM-DD
)
