package domain

// Default configuration values
const (
	DefaultWorkStartHour = 8
	DefaultWorkEndHour   = 20
)

// Business validation constants
const (
	MinServiceDurationMinutes   = 5
	MaxServiceDurationMinutes   = 480 // 8 hours
	MaxTotalSessions            = 365
	MaxValidityDays             = 730
	MaxCancellationReasonLength = 500
)

// Time format constants
const (
	DateFormat  = "2006-01-02" // YYYY-MM-DD
	MonthFormat = "2006-01"    // YYYY-MM
)
