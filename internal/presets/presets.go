// Package presets builds the catalog of named date ranges offered by the
// range picker. Every range is computed from an injected "today".
package presets

import (
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/utils"
)

// Preset labels. A label is both the display string and the key used to
// decide whether a preset is currently selected.
const (
	LabelYesterday       = "Yesterday"
	LabelToday           = "Today"
	LabelThisMonth       = "This month"
	LabelThisMonthToDate = "This month to date"
	LabelThisWeekSun     = "This week (Sun)"
	LabelThisWeekMon     = "This week (Mon)"
	LabelThisQuarter     = "This quarter"
	LabelThisYear        = "This year"
	LabelLast7Days       = "Last 7 days"
	LabelLast14Days      = "Last 14 days"
	LabelLast30Days      = "Last 30 days"
	LabelLastMonth       = "Last month"
	LabelLastQuarter     = "Last quarter"
	LabelLastYear        = "Last year"

	// LabelCustom marks a range picked day by day.
	LabelCustom = "Custom"
)

// Category names.
const (
	CategoryFixed = "Fixed"
	CategoryThis  = "This period"
	CategoryLast  = "Last period"
)

// Category is a titled group of presets.
type Category struct {
	Name   string
	Ranges []models.DateRange
}

// Catalog is the full set of presets in display order.
type Catalog []Category

// Generate returns the preset catalog relative to today. Time of day is ignored.
func Generate(today time.Time) Catalog {
	today = utils.StripTime(today)
	yesterday := utils.AddDays(today, -1)

	weekSun := utils.StartOfWeek(today, false)
	weekMon := utils.StartOfWeek(today, true)

	// Each "last" period steps back one day from the current period's start
	// and recomputes the bounds of the period it lands in.
	prevMonth := utils.AddDays(utils.StartOfMonth(today), -1)
	prevQuarter := utils.AddDays(utils.StartOfQuarter(today), -1)
	prevYear := utils.AddDays(utils.StartOfYear(today), -1)

	return Catalog{
		{
			Name: CategoryFixed,
			Ranges: []models.DateRange{
				span(LabelYesterday, yesterday, yesterday),
				span(LabelToday, today, today),
			},
		},
		{
			Name: CategoryThis,
			Ranges: []models.DateRange{
				span(LabelThisMonth, utils.StartOfMonth(today), utils.EndOfMonth(today)),
				span(LabelThisMonthToDate, utils.StartOfMonth(today), today),
				span(LabelThisWeekSun, weekSun, utils.AddDays(weekSun, 6)),
				span(LabelThisWeekMon, weekMon, utils.AddDays(weekMon, 6)),
				span(LabelThisQuarter, utils.StartOfQuarter(today), utils.EndOfQuarter(today)),
				span(LabelThisYear, utils.StartOfYear(today), utils.EndOfYear(today)),
			},
		},
		{
			Name: CategoryLast,
			Ranges: []models.DateRange{
				trailing(LabelLast7Days, today, 7),
				trailing(LabelLast14Days, today, 14),
				trailing(LabelLast30Days, today, 30),
				span(LabelLastMonth, utils.StartOfMonth(prevMonth), utils.EndOfMonth(prevMonth)),
				span(LabelLastQuarter, utils.StartOfQuarter(prevQuarter), utils.EndOfQuarter(prevQuarter)),
				span(LabelLastYear, utils.StartOfYear(prevYear), utils.EndOfYear(prevYear)),
			},
		},
	}
}

func span(label string, start, end time.Time) models.DateRange {
	return models.DateRange{Start: start, End: end, Label: label}
}

// trailing returns the n-day window ending on today inclusive.
func trailing(label string, today time.Time, n int) models.DateRange {
	return span(label, utils.AddDays(today, -(n-1)), today)
}

// All flattens the catalog in display order.
func (c Catalog) All() []models.DateRange {
	var out []models.DateRange
	for _, cat := range c {
		out = append(out, cat.Ranges...)
	}
	return out
}

// Find looks a preset up by label.
func (c Catalog) Find(label string) (models.DateRange, bool) {
	for _, cat := range c {
		for _, r := range cat.Ranges {
			if r.Label == label {
				return r, true
			}
		}
	}
	return models.DateRange{}, false
}

// Labels returns every preset label in display order.
func (c Catalog) Labels() []string {
	all := c.All()
	labels := make([]string, len(all))
	for i, r := range all {
		labels[i] = r.Label
	}
	return labels
}

// Index returns the position of label in All(), or -1.
func (c Catalog) Index(label string) int {
	for i, l := range c.Labels() {
		if l == label {
			return i
		}
	}
	return -1
}
