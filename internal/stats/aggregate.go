// Package stats reconciles the answer log against question schedules over a
// date range and produces chart buckets and summaries.
package stats

import (
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/scheduler"
	"github.com/julianstephens/alog/internal/utils"
)

// Aggregate walks r one calendar day at a time and tallies the answers of due
// questions into buckets of the given granularity. Buckets are returned in
// chronological order and days with nothing due still produce a bucket.
//
// Time of day on the bounds is ignored. A range whose start falls after its
// end yields an empty, non-nil slice. Inputs are never modified.
func Aggregate(log models.Log, questions []models.Question, r models.DateRange, g models.Granularity) []models.ChartDataPoint {
	points := []models.ChartDataPoint{}

	start := utils.StripTime(r.Start)
	endKey := utils.FormatDateKey(r.End)
	if utils.FormatDateKey(start) > endKey {
		return points
	}

	// Buckets are keyed by anchor so labels that repeat across years
	// ("Jan 24" vs "Jan 25", "Mar 1" in two years) never merge.
	index := make(map[string]int)
	for d := start; utils.FormatDateKey(d) <= endKey; d = utils.AddDays(d, 1) {
		anchor, label := bucketFor(d, g)
		i, ok := index[anchor]
		if !ok {
			i = len(points)
			index[anchor] = i
			points = append(points, models.ChartDataPoint{Key: label, Anchor: anchor})
		}

		dateKey := utils.FormatDateKey(d)
		for _, q := range scheduler.DueOn(questions, int(d.Weekday())) {
			points[i].Total++
			switch log.Get(dateKey, q.ID) {
			case models.AnswerYes:
				points[i].Yes++
			case models.AnswerNo:
				points[i].No++
			}
		}
	}
	return points
}

// bucketFor returns the anchor date key and display label of the bucket
// containing d. Week buckets always start on Sunday.
func bucketFor(d time.Time, g models.Granularity) (anchor, label string) {
	switch g {
	case models.GranularityWeek:
		ws := utils.StartOfWeek(d, false)
		return utils.FormatDateKey(ws), "Week " + utils.FormatDisplayLabel(ws)
	case models.GranularityMonth:
		ms := utils.StartOfMonth(d)
		return utils.FormatDateKey(ms), utils.FormatMonthLabel(ms)
	default:
		return utils.FormatDateKey(d), utils.FormatDisplayLabel(d)
	}
}
