package presets

import (
	"testing"
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/utils"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func keys(r models.DateRange) (string, string) {
	return utils.FormatDateKey(r.Start), utils.FormatDateKey(r.End)
}

func mustFind(t *testing.T, c Catalog, label string) models.DateRange {
	t.Helper()
	r, ok := c.Find(label)
	if !ok {
		t.Fatalf("preset %q not found", label)
	}
	return r
}

func TestGenerate(t *testing.T) {
	// Wednesday, 2024-03-13, mid-afternoon.
	today := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.Local)
	c := Generate(today)

	tests := []struct {
		label     string
		wantStart string
		wantEnd   string
	}{
		{LabelYesterday, "2024-03-12", "2024-03-12"},
		{LabelToday, "2024-03-13", "2024-03-13"},
		{LabelThisMonth, "2024-03-01", "2024-03-31"},
		{LabelThisMonthToDate, "2024-03-01", "2024-03-13"},
		{LabelThisWeekSun, "2024-03-10", "2024-03-16"},
		{LabelThisWeekMon, "2024-03-11", "2024-03-17"},
		{LabelThisQuarter, "2024-01-01", "2024-03-31"},
		{LabelThisYear, "2024-01-01", "2024-12-31"},
		{LabelLast7Days, "2024-03-07", "2024-03-13"},
		{LabelLast14Days, "2024-02-29", "2024-03-13"},
		{LabelLast30Days, "2024-02-13", "2024-03-13"},
		{LabelLastMonth, "2024-02-01", "2024-02-29"},
		{LabelLastQuarter, "2023-10-01", "2023-12-31"},
		{LabelLastYear, "2023-01-01", "2023-12-31"},
	}
	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			start, end := keys(mustFind(t, c, tt.label))
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("%s = %s..%s, want %s..%s", tt.label, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}

	if len(c) != 3 {
		t.Errorf("expected 3 categories, got %d", len(c))
	}
	if got := len(c.All()); got != len(tests) {
		t.Errorf("expected %d presets, got %d", len(tests), got)
	}
}

func TestGenerate_Boundaries(t *testing.T) {
	tests := []struct {
		name      string
		today     time.Time
		label     string
		wantStart string
		wantEnd   string
	}{
		{"last month from March 1 leap year", day(2024, time.March, 1), LabelLastMonth, "2024-02-01", "2024-02-29"},
		{"last month from March 1", day(2023, time.March, 1), LabelLastMonth, "2023-02-01", "2023-02-28"},
		{"last month from January", day(2024, time.January, 15), LabelLastMonth, "2023-12-01", "2023-12-31"},
		{"last month from May 31", day(2024, time.May, 31), LabelLastMonth, "2024-04-01", "2024-04-30"},
		{"last quarter from April 1", day(2024, time.April, 1), LabelLastQuarter, "2024-01-01", "2024-03-31"},
		{"last quarter from December 31", day(2024, time.December, 31), LabelLastQuarter, "2024-07-01", "2024-09-30"},
		{"this quarter from August", day(2024, time.August, 20), LabelThisQuarter, "2024-07-01", "2024-09-30"},
		{"last year from January 1", day(2024, time.January, 1), LabelLastYear, "2023-01-01", "2023-12-31"},
		{"yesterday from January 1", day(2024, time.January, 1), LabelYesterday, "2023-12-31", "2023-12-31"},
		{"week (Mon) on a Sunday", day(2024, time.March, 10), LabelThisWeekMon, "2024-03-04", "2024-03-10"},
		{"week (Sun) on a Sunday", day(2024, time.March, 10), LabelThisWeekSun, "2024-03-10", "2024-03-16"},
		{"week (Sun) across year end", day(2024, time.January, 2), LabelThisWeekSun, "2023-12-31", "2024-01-06"},
		{"this month to date on the 1st", day(2024, time.June, 1), LabelThisMonthToDate, "2024-06-01", "2024-06-01"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := keys(mustFind(t, Generate(tt.today), tt.label))
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("%s = %s..%s, want %s..%s", tt.label, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestGenerate_AdjacentPeriods(t *testing.T) {
	pairs := [][2]string{
		{LabelThisMonth, LabelLastMonth},
		{LabelThisQuarter, LabelLastQuarter},
		{LabelThisYear, LabelLastYear},
	}
	start := day(2023, time.January, 1)
	for i := 0; i < 800; i += 3 {
		today := utils.AddDays(start, i)
		c := Generate(today)
		for _, p := range pairs {
			this := mustFind(t, c, p[0])
			last := mustFind(t, c, p[1])
			before := utils.AddDays(this.Start, -1)
			if utils.FormatDateKey(before) != utils.FormatDateKey(last.End) {
				t.Fatalf("%s: day before %s start (%s) is not %s end (%s)",
					utils.FormatDateKey(today), p[0], utils.FormatDateKey(before), p[1], utils.FormatDateKey(last.End))
			}
			if last.Start.After(last.End) {
				t.Fatalf("%s: %s start after end", utils.FormatDateKey(today), p[1])
			}
		}
	}
}

func TestGenerate_DoesNotMutateInput(t *testing.T) {
	today := time.Date(2024, time.March, 13, 15, 30, 0, 0, time.Local)
	orig := today
	Generate(today)
	if !today.Equal(orig) {
		t.Error("Generate() modified its input")
	}
}

func TestCatalogLookups(t *testing.T) {
	c := Generate(day(2024, time.March, 13))
	if _, ok := c.Find("Next week"); ok {
		t.Error("Find() returned a preset for an unknown label")
	}
	if got := c.Index(LabelToday); got != 1 {
		t.Errorf("Index(Today) = %d, want 1", got)
	}
	if got := c.Index("nope"); got != -1 {
		t.Errorf("Index(nope) = %d, want -1", got)
	}
	labels := c.Labels()
	if labels[0] != LabelYesterday || labels[len(labels)-1] != LabelLastYear {
		t.Errorf("unexpected label order: %v", labels)
	}
}
