package presets

import (
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/utils"
)

// Selection tracks the range picked in the range picker, either a preset or
// a custom range built from day clicks.
//
// The first click on a day starts a custom range and leaves it pending. The
// next click completes it, ordering the two days; clicking the pending start
// again completes a single-day range. A click on a completed range starts
// over.
type Selection struct {
	rng     models.DateRange
	pending bool
}

// NewSelection starts from r, normally a preset.
func NewSelection(r models.DateRange) Selection {
	return Selection{rng: normalize(r)}
}

// Range returns the current range. While pending it is the single start day.
func (s Selection) Range() models.DateRange {
	return s.rng
}

// Pending reports whether a custom range is waiting for its second click.
func (s Selection) Pending() bool {
	return s.pending
}

// Apply replaces the selection with a preset.
func (s *Selection) Apply(r models.DateRange) {
	s.rng = normalize(r)
	s.pending = false
}

// Click handles a day click in the picker.
func (s *Selection) Click(day time.Time) {
	day = utils.StripTime(day)
	if !s.pending {
		s.rng = models.DateRange{Start: day, End: day, Label: LabelCustom}
		s.pending = true
		return
	}
	start := s.rng.Start
	if day.Before(start) {
		start, day = day, start
	}
	s.rng = models.DateRange{Start: start, End: day, Label: LabelCustom}
	s.pending = false
}

// IsSelected reports whether the preset with label is the active selection.
func (s Selection) IsSelected(label string) bool {
	return !s.pending && s.rng.Label == label
}

// Contains reports whether day falls inside the current range.
func (s Selection) Contains(day time.Time) bool {
	key := utils.FormatDateKey(day)
	return key >= utils.FormatDateKey(s.rng.Start) && key <= utils.FormatDateKey(s.rng.End)
}

// normalize strips time of day and orders the bounds. The input is not
// modified.
func normalize(r models.DateRange) models.DateRange {
	start, end := utils.StripTime(r.Start), utils.StripTime(r.End)
	if end.Before(start) {
		start, end = end, start
	}
	return models.DateRange{Start: start, End: end, Label: r.Label}
}
