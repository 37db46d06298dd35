package dateutil

import "time"

// DayLayout is the canonical day key format used for all date comparisons.
// Comparing day keys as strings avoids timezone drift between stored
// timestamps and the calendar grid.
const DayLayout = "2006-01-02"

// layouts accepted for dates coming from external stores, most specific first
var layouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	DayLayout,
}

// ParseDateOrNone parses a stored date string. Invalid input is a typed
// case (ok=false), never a panic; callers treat it as "no date".
func ParseDateOrNone(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range layouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// DayKey returns the local calendar day of t as yyyy-MM-dd.
func DayKey(t time.Time) string {
	return t.Format(DayLayout)
}

// TruncateToDay strips the time-of-day component, keeping the local day.
func TruncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// SameDay reports whether a and b fall on the same local calendar day.
func SameDay(a, b time.Time) bool {
	return DayKey(a) == DayKey(b)
}

// DaysBetween returns the calendar-day difference to - from, ignoring
// time-of-day. Negative when to is before from.
func DaysBetween(from, to time.Time) int {
	f := TruncateToDay(from)
	t := TruncateToDay(to)
	return int(t.Sub(f).Hours() / 24)
}

// AddDays shifts t by n calendar days.
func AddDays(t time.Time, n int) time.Time {
	return t.AddDate(0, 0, n)
}

// ShiftPreservingClock moves t onto targetDay's calendar day while keeping
// t's original time-of-day.
func ShiftPreservingClock(t, targetDay time.Time) time.Time {
	return time.Date(targetDay.Year(), targetDay.Month(), targetDay.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}
