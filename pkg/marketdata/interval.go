package marketdata

import (
	"time"

	"github.com/polygon-io/client-go/rest/models"

	"github.com/RamiMonso/rsi-csv/pkg/errors"
)

// Interval selects the bar width of the fetched price series.
type Interval string

const (
	IntervalOneMinute      Interval = "1m"
	IntervalFiveMinutes    Interval = "5m"
	IntervalFifteenMinutes Interval = "15m"
	IntervalThirtyMinutes  Interval = "30m"
	IntervalOneHour        Interval = "1h"
	IntervalTwoHours       Interval = "2h"
	IntervalFourHours      Interval = "4h"
	IntervalOneDay         Interval = "1d"
	IntervalOneWeek        Interval = "1w"
)

// ParseInterval converts a user-supplied interval selector to an Interval.
func ParseInterval(s string) (Interval, error) {
	switch Interval(s) {
	case IntervalOneMinute, IntervalFiveMinutes, IntervalFifteenMinutes, IntervalThirtyMinutes,
		IntervalOneHour, IntervalTwoHours, IntervalFourHours, IntervalOneDay, IntervalOneWeek:
		return Interval(s), nil
	default:
		return "", errors.Newf(errors.ErrCodeInvalidInterval, "unsupported interval: %q", s)
	}
}

// SupportedIntervals lists every interval selector accepted by ParseInterval.
func SupportedIntervals() []Interval {
	return []Interval{
		IntervalOneMinute, IntervalFiveMinutes, IntervalFifteenMinutes, IntervalThirtyMinutes,
		IntervalOneHour, IntervalTwoHours, IntervalFourHours, IntervalOneDay, IntervalOneWeek,
	}
}

// Multiplier returns the bar multiplier in provider terms, e.g. 15 for "15m".
func (i Interval) Multiplier() int {
	switch i {
	case IntervalOneMinute:
		return 1
	case IntervalFiveMinutes:
		return 5
	case IntervalFifteenMinutes:
		return 15
	case IntervalThirtyMinutes:
		return 30
	case IntervalOneHour:
		return 1
	case IntervalTwoHours:
		return 2
	case IntervalFourHours:
		return 4
	case IntervalOneDay:
		return 1
	case IntervalOneWeek:
		return 1
	default:
		return 1
	}
}

// Timespan returns the provider timespan unit for the interval.
func (i Interval) Timespan() models.Timespan {
	switch i {
	case IntervalOneMinute, IntervalFiveMinutes, IntervalFifteenMinutes, IntervalThirtyMinutes:
		return models.Minute
	case IntervalOneHour, IntervalTwoHours, IntervalFourHours:
		return models.Hour
	case IntervalOneDay:
		return models.Day
	case IntervalOneWeek:
		return models.Week
	default:
		return models.Day
	}
}

// Duration returns the width of one bar. Weeks use a 7-day approximation.
func (i Interval) Duration() time.Duration {
	switch i {
	case IntervalOneMinute:
		return time.Minute
	case IntervalFiveMinutes:
		return 5 * time.Minute
	case IntervalFifteenMinutes:
		return 15 * time.Minute
	case IntervalThirtyMinutes:
		return 30 * time.Minute
	case IntervalOneHour:
		return time.Hour
	case IntervalTwoHours:
		return 2 * time.Hour
	case IntervalFourHours:
		return 4 * time.Hour
	case IntervalOneDay:
		return 24 * time.Hour
	case IntervalOneWeek:
		return 7 * 24 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// InclusiveEnd pushes the end of a user-facing inclusive date range one bar
// forward, because upstream sources treat the end boundary as exclusive.
func (i Interval) InclusiveEnd(end time.Time) time.Time {
	return end.Add(i.Duration())
}
