package utils

import (
	"fmt"
	"time"

	"github.com/julianstephens/alog/internal/constants"
)

// StripTime returns the first instant of t's calendar date in t's own
// location. That is midnight, or the first hour after a DST gap that skips
// midnight.
func StripTime(t time.Time) time.Time {
	y, m, d := t.Date()
	return StartOfDay(y, m, d, t.Location())
}

// StartOfDay returns the first instant of the given date in loc. Out of range
// days and months are normalized as time.Date does.
func StartOfDay(y int, m time.Month, d int, loc *time.Location) time.Time {
	y, m, d = time.Date(y, m, d, 12, 0, 0, 0, time.UTC).Date()
	return onDate(y, m, d, 0, 0, 0, 0, loc)
}

// onDate builds the wall clock time on (y, m, d). A wall clock that falls in
// a DST gap can resolve to the previous date, so it moves forward an hour at
// a time until it lands on the requested date.
func onDate(y int, m time.Month, d, hour, minute, sec, nsec int, loc *time.Location) time.Time {
	t := time.Date(y, m, d, hour, minute, sec, nsec, loc)
	for h := hour + 1; h < 24; h++ {
		if ty, tm, td := t.Date(); ty == y && tm == m && td == d {
			break
		}
		t = time.Date(y, m, d, h, 0, 0, 0, loc)
	}
	return t
}

// AddDays offsets t by n calendar days. The result is derived from calendar
// fields: the start of a day maps to the start of the target day, any other
// time keeps its wall clock. The date never drifts across DST transitions.
func AddDays(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	ty, tm, td := time.Date(y, m, d+n, 12, 0, 0, 0, time.UTC).Date()
	if t.Equal(StartOfDay(y, m, d, t.Location())) {
		return StartOfDay(ty, tm, td, t.Location())
	}
	return onDate(ty, tm, td, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
}

// DaysBetween returns the number of calendar days from a to b, negative when
// b is earlier. Time of day and DST offsets are ignored.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	ua := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	ub := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(ub.Sub(ua).Hours() / 24)
}

// StartOfWeek returns midnight of the first day of the week containing t.
// Weeks start on Sunday unless mondayStart is set, in which case Sunday is
// the last day of the week.
func StartOfWeek(t time.Time, mondayStart bool) time.Time {
	day := StripTime(t)
	offset := int(day.Weekday())
	if mondayStart {
		offset = (offset + 6) % 7
	}
	return AddDays(day, -offset)
}

// StartOfMonth returns midnight of the first day of t's month.
func StartOfMonth(t time.Time) time.Time {
	return StartOfDay(t.Year(), t.Month(), 1, t.Location())
}

// EndOfMonth returns midnight of the last day of t's month.
func EndOfMonth(t time.Time) time.Time {
	return StartOfDay(t.Year(), t.Month()+1, 0, t.Location())
}

// StartOfQuarter returns midnight of the first day of t's calendar quarter.
func StartOfQuarter(t time.Time) time.Time {
	first := time.Month((int(t.Month())-1)/3*3 + 1)
	return StartOfDay(t.Year(), first, 1, t.Location())
}

// EndOfQuarter returns midnight of the last day of t's calendar quarter.
func EndOfQuarter(t time.Time) time.Time {
	q := StartOfQuarter(t)
	return StartOfDay(q.Year(), q.Month()+3, 0, t.Location())
}

// StartOfYear returns midnight of January 1 of t's year.
func StartOfYear(t time.Time) time.Time {
	return StartOfDay(t.Year(), time.January, 1, t.Location())
}

// EndOfYear returns midnight of December 31 of t's year.
func EndOfYear(t time.Time) time.Time {
	return StartOfDay(t.Year(), time.December, 31, t.Location())
}

// FormatDateKey returns the canonical YYYY-MM-DD key of t's local calendar date.
func FormatDateKey(t time.Time) string {
	return t.Format(constants.DateFormat)
}

// FormatDisplayLabel returns a short axis label such as "Mar 8".
func FormatDisplayLabel(t time.Time) string {
	return t.Format(constants.DisplayDateFormat)
}

// FormatMonthLabel returns a month label such as "Mar 24".
func FormatMonthLabel(t time.Time) string {
	return t.Format(constants.MonthLabelFormat)
}

// ParseDateKey parses a YYYY-MM-DD key as midnight in the local time zone.
func ParseDateKey(key string) (time.Time, error) {
	return ParseDateInLocation(key, time.Local)
}

// ParseDateInLocation parses a date string (YYYY-MM-DD) as the start of that
// day in the specified location.
func ParseDateInLocation(dateStr string, loc *time.Location) (time.Time, error) {
	t, err := time.Parse(constants.DateFormat, dateStr)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", dateStr, err)
	}
	return StartOfDay(t.Year(), t.Month(), t.Day(), loc), nil
}

// Today returns midnight of the current local date.
func Today() time.Time {
	return StripTime(time.Now())
}

// ValidateDateKey reports whether s is a well-formed date key.
func ValidateDateKey(s string) bool {
	_, err := time.Parse(constants.DateFormat, s)
	return err == nil
}
