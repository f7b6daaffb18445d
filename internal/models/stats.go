package models

import (
	"fmt"
	"strings"
	"time"
)

// DateRange is an inclusive pair of calendar dates. Start <= End is not
// enforced; consumers normalize.
type DateRange struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
	Label string    `json:"label,omitempty"`
}

// Granularity controls bucket size during aggregation.
type Granularity string

const (
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Granularities lists the supported values in display order.
var Granularities = []Granularity{GranularityDay, GranularityWeek, GranularityMonth}

// ParseGranularity parses a granularity name.
func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToLower(strings.TrimSpace(s)))
	switch g {
	case GranularityDay, GranularityWeek, GranularityMonth:
		return g, nil
	default:
		return "", fmt.Errorf("invalid granularity %q (expected day, week or month)", s)
	}
}

// ChartDataPoint is one aggregation bucket.
type ChartDataPoint struct {
	Key    string `json:"key"`    // display label
	Anchor string `json:"anchor"` // date key of the bucket's first day, sortable
	Yes    int    `json:"yes"`
	No     int    `json:"no"`
	Total  int    `json:"total"` // due (date, question) pairs in the bucket
}
