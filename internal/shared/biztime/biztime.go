// Package biztime provides utilities for business timezone calculations.
// All storage and transport use UTC. The business timezone is only used
// for date boundary calculations (start/end of day or month).
package biztime

import (
	"fmt"
	"sync"
	"time"
)

const (
	// DefaultTimezone is the default business timezone.
	DefaultTimezone = "Europe/Paris"
)

var (
	bizLocation     *time.Location
	bizLocationOnce sync.Once
	initErr         error
)

// Init initializes the business timezone. Should be called once at startup.
// If tz is empty, DefaultTimezone is used.
func Init(tz string) error {
	bizLocationOnce.Do(func() {
		if tz == "" {
			tz = DefaultTimezone
		}
		bizLocation, initErr = time.LoadLocation(tz)
	})
	return initErr
}

// MustInit initializes the business timezone and panics on error.
func MustInit(tz string) {
	if err := Init(tz); err != nil {
		panic(fmt.Sprintf("failed to initialize business timezone %q: %v", tz, err))
	}
}

// Location returns the business timezone location, auto-initializing
// with the default timezone if Init was never called.
func Location() *time.Location {
	if bizLocation == nil {
		if err := Init(""); err != nil {
			panic(fmt.Sprintf("biztime: failed to auto-initialize with default timezone: %v", err))
		}
	}
	return bizLocation
}

// NowUTC returns current time in UTC.
func NowUTC() time.Time {
	return time.Now().UTC()
}

// AddMonths returns t shifted by the given number of calendar months,
// staying in UTC. Used for commitment end date computation.
func AddMonths(t time.Time, months int) time.Time {
	return t.AddDate(0, months, 0).UTC()
}

// StartOfMonthUTC returns the start of month in business timezone,
// converted to UTC. Used for monthly billing period queries.
func StartOfMonthUTC(year int, month time.Month) time.Time {
	return time.Date(year, month, 1, 0, 0, 0, 0, Location()).UTC()
}

// EndOfMonthUTC returns the end of month in business timezone,
// converted to UTC.
func EndOfMonthUTC(year int, month time.Month) time.Time {
	nextMonth := time.Date(year, month+1, 1, 0, 0, 0, 0, Location())
	return nextMonth.Add(-time.Nanosecond).UTC()
}

// ToBizTimezone converts a UTC time to business timezone for display.
func ToBizTimezone(t time.Time) time.Time {
	return t.In(Location())
}

// FormatInBizTimezone formats a UTC time as a string in business timezone.
func FormatInBizTimezone(t time.Time, layout string) string {
	return t.In(Location()).Format(layout)
}
