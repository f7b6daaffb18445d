package utils

import (
	"testing"
	"time"
	_ "time/tzdata"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestStripTime(t *testing.T) {
	in := time.Date(2024, time.March, 8, 17, 45, 12, 999, time.Local)
	got := StripTime(in)
	if got.Hour() != 0 || got.Minute() != 0 || got.Second() != 0 || got.Nanosecond() != 0 {
		t.Errorf("StripTime() kept time of day: %v", got)
	}
	if got.Year() != 2024 || got.Month() != time.March || got.Day() != 8 {
		t.Errorf("StripTime() changed date: %v", got)
	}
	if !StripTime(got).Equal(got) {
		t.Error("StripTime() is not idempotent")
	}
}

func TestFormatDateKeyIgnoresTimeOfDay(t *testing.T) {
	times := []time.Time{
		time.Date(2024, time.January, 1, 0, 0, 0, 0, time.Local),
		time.Date(2024, time.February, 29, 23, 59, 59, 0, time.Local),
		time.Date(1999, time.December, 31, 12, 0, 0, 0, time.Local),
	}
	for _, tm := range times {
		if FormatDateKey(StripTime(tm)) != FormatDateKey(tm) {
			t.Errorf("FormatDateKey(StripTime(%v)) != FormatDateKey(%v)", tm, tm)
		}
	}
	if got := FormatDateKey(date(2024, time.March, 1)); got != "2024-03-01" {
		t.Errorf("FormatDateKey() = %q, want 2024-03-01", got)
	}
}

func TestAddDays(t *testing.T) {
	tests := []struct {
		name string
		from time.Time
		n    int
		want string
	}{
		{"zero", date(2024, time.March, 8), 0, "2024-03-08"},
		{"month rollover", date(2024, time.January, 31), 1, "2024-02-01"},
		{"leap day", date(2024, time.February, 28), 1, "2024-02-29"},
		{"non-leap rollover", date(2023, time.February, 28), 1, "2023-03-01"},
		{"year rollover backwards", date(2024, time.January, 1), -1, "2023-12-31"},
		{"large negative", date(2024, time.March, 1), -366, "2023-03-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AddDays(tt.from, tt.n)
			if FormatDateKey(got) != tt.want {
				t.Errorf("AddDays() = %s, want %s", FormatDateKey(got), tt.want)
			}
			back := AddDays(got, -tt.n)
			if FormatDateKey(back) != FormatDateKey(tt.from) {
				t.Errorf("AddDays round trip = %s, want %s", FormatDateKey(back), FormatDateKey(tt.from))
			}
		})
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		name string
		a, b time.Time
		want int
	}{
		{"same day", date(2024, time.March, 8), date(2024, time.March, 8).Add(23 * time.Hour), 0},
		{"forward", date(2024, time.February, 27), date(2024, time.March, 1), 3},
		{"backward", date(2024, time.January, 1), date(2023, time.December, 25), -7},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DaysBetween(tt.a, tt.b); got != tt.want {
				t.Errorf("DaysBetween() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAddDaysAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("timezone data unavailable: %v", err)
	}
	// 2024-03-10 is 23 hours long in New York.
	start := time.Date(2024, time.March, 9, 0, 0, 0, 0, loc)
	for i := 0; i < 3; i++ {
		got := AddDays(start, i)
		if got.Hour() != 0 {
			t.Errorf("AddDays(%d) hour = %d, want 0", i, got.Hour())
		}
		if got.Day() != 9+i {
			t.Errorf("AddDays(%d) day = %d, want %d", i, got.Day(), 9+i)
		}
	}
}

func saoPaulo(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("America/Sao_Paulo")
	if err != nil {
		t.Fatalf("failed to load location: %v", err)
	}
	return loc
}

// 2017-10-15 starts at 01:00 in Sao Paulo; local midnight does not exist.
func TestStripTimeSkippedMidnight(t *testing.T) {
	loc := saoPaulo(t)
	noon := time.Date(2017, time.October, 15, 12, 0, 0, 0, loc)

	got := StripTime(noon)
	if FormatDateKey(got) != "2017-10-15" {
		t.Fatalf("StripTime() = %v, want a time on 2017-10-15", got)
	}
	if got.Hour() != 1 {
		t.Errorf("StripTime() hour = %d, want 1", got.Hour())
	}
	if !StripTime(got).Equal(got) {
		t.Error("StripTime() is not idempotent")
	}
	if !got.Before(noon) || got.Add(-time.Minute).Day() != 14 {
		t.Errorf("StripTime() = %v is not the first instant of the day", got)
	}

	parsed, err := ParseDateInLocation("2017-10-15", loc)
	if err != nil {
		t.Fatalf("ParseDateInLocation failed: %v", err)
	}
	if !parsed.Equal(got) {
		t.Errorf("ParseDateInLocation() = %v, want %v", parsed, got)
	}
}

func TestAddDaysAcrossSkippedMidnight(t *testing.T) {
	loc := saoPaulo(t)
	start := time.Date(2017, time.October, 13, 0, 0, 0, 0, loc)

	want := []string{"2017-10-13", "2017-10-14", "2017-10-15", "2017-10-16", "2017-10-17"}
	d := start
	for i, key := range want {
		if got := FormatDateKey(d); got != key {
			t.Fatalf("step %d = %s, want %s", i, got, key)
		}
		if got := FormatDateKey(AddDays(start, i)); got != key {
			t.Errorf("AddDays(start, %d) = %s, want %s", i, got, key)
		}
		d = AddDays(d, 1)
	}

	if got := AddDays(time.Date(2017, time.October, 16, 0, 0, 0, 0, loc), -1); FormatDateKey(got) != "2017-10-15" || got.Hour() != 1 {
		t.Errorf("AddDays back into the gap = %v", got)
	}
	if got := AddDays(time.Date(2017, time.October, 14, 18, 30, 0, 0, loc), 1); got.Hour() != 18 || got.Minute() != 30 {
		t.Errorf("AddDays did not keep the wall clock: %v", got)
	}
}

func TestStartOfWeekSkippedMidnight(t *testing.T) {
	loc := saoPaulo(t)
	monday := time.Date(2017, time.October, 16, 9, 0, 0, 0, loc)

	sun := StartOfWeek(monday, false)
	if sun.Weekday() != time.Sunday || FormatDateKey(sun) != "2017-10-15" {
		t.Errorf("StartOfWeek(Monday, false) = %s (%s), want 2017-10-15 (Sunday)", FormatDateKey(sun), sun.Weekday())
	}
	mon := StartOfWeek(time.Date(2017, time.October, 15, 9, 0, 0, 0, loc), true)
	if mon.Weekday() != time.Monday || FormatDateKey(mon) != "2017-10-09" {
		t.Errorf("StartOfWeek(Sunday, true) = %s (%s), want 2017-10-09", FormatDateKey(mon), mon.Weekday())
	}
}

func TestStartOfWeek(t *testing.T) {
	start := date(2023, time.December, 20)
	for i := 0; i < 60; i++ {
		d := AddDays(start, i)
		sun := StartOfWeek(d, false)
		if sun.Weekday() != time.Sunday {
			t.Fatalf("StartOfWeek(%s, false) = %s (%s)", FormatDateKey(d), FormatDateKey(sun), sun.Weekday())
		}
		if d.Sub(sun) < 0 || AddDays(sun, 6).Before(StripTime(d)) {
			t.Fatalf("StartOfWeek(%s, false) = %s does not contain date", FormatDateKey(d), FormatDateKey(sun))
		}
		mon := StartOfWeek(d, true)
		if mon.Weekday() != time.Monday {
			t.Fatalf("StartOfWeek(%s, true) = %s (%s)", FormatDateKey(d), FormatDateKey(mon), mon.Weekday())
		}
		if d.Sub(mon) < 0 || AddDays(mon, 6).Before(StripTime(d)) {
			t.Fatalf("StartOfWeek(%s, true) = %s does not contain date", FormatDateKey(d), FormatDateKey(mon))
		}
	}

	// Sunday belongs to the previous Monday-start week.
	sunday := date(2024, time.March, 10)
	if got := FormatDateKey(StartOfWeek(sunday, true)); got != "2024-03-04" {
		t.Errorf("StartOfWeek(Sunday, true) = %s, want 2024-03-04", got)
	}
	if got := FormatDateKey(StartOfWeek(sunday, false)); got != "2024-03-10" {
		t.Errorf("StartOfWeek(Sunday, false) = %s, want 2024-03-10", got)
	}
}

func TestPeriodBounds(t *testing.T) {
	tests := []struct {
		name string
		fn   func(time.Time) time.Time
		in   time.Time
		want string
	}{
		{"end of leap february", EndOfMonth, date(2024, time.February, 10), "2024-02-29"},
		{"end of february", EndOfMonth, date(2023, time.February, 10), "2023-02-28"},
		{"end of december", EndOfMonth, date(2024, time.December, 1), "2024-12-31"},
		{"start of q1", StartOfQuarter, date(2024, time.March, 31), "2024-01-01"},
		{"start of q4", StartOfQuarter, date(2024, time.November, 15), "2024-10-01"},
		{"end of q2", EndOfQuarter, date(2024, time.April, 1), "2024-06-30"},
		{"end of q4", EndOfQuarter, date(2024, time.October, 1), "2024-12-31"},
		{"start of year", StartOfYear, date(2024, time.July, 4), "2024-01-01"},
		{"end of year", EndOfYear, date(2024, time.July, 4), "2024-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatDateKey(tt.fn(tt.in)); got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestLabels(t *testing.T) {
	d := date(2024, time.March, 8)
	if got := FormatDisplayLabel(d); got != "Mar 8" {
		t.Errorf("FormatDisplayLabel() = %q, want %q", got, "Mar 8")
	}
	if got := FormatMonthLabel(d); got != "Mar 24" {
		t.Errorf("FormatMonthLabel() = %q, want %q", got, "Mar 24")
	}
}

func TestParseDateKey(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"2024-02-29", false},
		{"2023-02-29", true},
		{"2024/02/01", true},
		{"", true},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseDateKey(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseDateKey(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && FormatDateKey(got) != tt.input {
				t.Errorf("ParseDateKey(%q) = %s", tt.input, FormatDateKey(got))
			}
			if ValidateDateKey(tt.input) == tt.wantErr {
				t.Errorf("ValidateDateKey(%q) = %v", tt.input, !tt.wantErr)
			}
		})
	}
}
