// Package insight prepares a digest of recent answers and hands it to a
// text-generation backend for a short performance report.
package insight

import (
	"fmt"
	"strings"
	"time"

	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/utils"
)

// BuildDigest renders the answered cells of the last days calendar days
// ending at today, newest date first. Each date group is a "Date: <key>"
// header followed by "- <question>: YES|NO" lines in question order.
// Unanswered cells, answers for unknown questions and dates with nothing
// left to report are skipped. days <= 0 uses the default window.
func BuildDigest(questions []models.Question, log models.Log, today time.Time, days int) string {
	if days <= 0 {
		days = constants.InsightDigestDays
	}
	today = utils.StripTime(today)

	var groups []string
	for i := 0; i < days; i++ {
		key := utils.FormatDateKey(utils.AddDays(today, -i))
		day, ok := log[key]
		if !ok || len(day) == 0 {
			continue
		}

		var lines []string
		for _, q := range questions {
			ans, ok := day[q.ID]
			if !ok || !ans.IsAnswered() {
				continue
			}
			lines = append(lines, fmt.Sprintf("- %s: %s", q.Text, ans))
		}
		if len(lines) == 0 {
			continue
		}
		groups = append(groups, "Date: "+key+"\n"+strings.Join(lines, "\n"))
	}
	return strings.Join(groups, "\n\n")
}
