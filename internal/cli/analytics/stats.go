package analytics

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/presets"
	"github.com/julianstephens/alog/internal/stats"
	"github.com/julianstephens/alog/internal/utils"
)

type StatsCmd struct {
	Preset      string `short:"p" help:"Preset range label, e.g. \"Last 30 days\" (default from settings)."`
	From        string `help:"Custom range start (YYYY-MM-DD)."`
	To          string `help:"Custom range end (YYYY-MM-DD, default: today)."`
	Granularity string `short:"g" help:"Bucket size: day, week or month (default from settings)."`
	Format      string `short:"f" help:"Output format: table or json." enum:"table,json" default:"table"`
	ByQuestion  bool   `help:"Also show a per-question breakdown."`
}

// Report is the JSON form of a stats run.
type Report struct {
	Range       models.DateRange        `json:"range"`
	Granularity models.Granularity      `json:"granularity"`
	Points      []models.ChartDataPoint `json:"points"`
	Summary     stats.Summary           `json:"summary"`
	Questions   []stats.QuestionSummary `json:"questions,omitempty"`
}

// resolveRange picks the range from --from/--to, then --preset, then the
// default preset setting.
func (c *StatsCmd) resolveRange(today time.Time, defaultPreset string) (models.DateRange, error) {
	if c.From != "" || c.To != "" {
		if c.From == "" {
			return models.DateRange{}, fmt.Errorf("--to requires --from")
		}
		start, err := cli.ParseDate(c.From, today)
		if err != nil {
			return models.DateRange{}, err
		}
		end, err := cli.ParseDate(c.To, today)
		if err != nil {
			return models.DateRange{}, err
		}
		sel := presets.NewSelection(models.DateRange{Start: start, End: start})
		sel.Click(start)
		sel.Click(end)
		return sel.Range(), nil
	}

	label := c.Preset
	if label == "" {
		label = defaultPreset
	}
	catalog := presets.Generate(today)
	r, ok := catalog.Find(label)
	if !ok {
		return models.DateRange{}, fmt.Errorf("unknown preset %q (available: %s)", label, strings.Join(catalog.Labels(), ", "))
	}
	return r, nil
}

func (c *StatsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	gName := c.Granularity
	if gName == "" {
		gName = settings.DefaultGranularity
	}
	g, err := models.ParseGranularity(gName)
	if err != nil {
		return err
	}

	r, err := c.resolveRange(ctx.Today(), settings.DefaultPreset)
	if err != nil {
		return err
	}

	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}

	points := j.Aggregate(r, g)
	report := Report{
		Range:       r,
		Granularity: g,
		Points:      points,
		Summary:     stats.Summarize(points),
	}
	if c.ByQuestion {
		report.Questions = stats.ByQuestion(j.Log(), j.Questions(), r)
	}

	if c.Format == "json" {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	return renderReport(os.Stdout, report)
}

func percent(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

func renderReport(w io.Writer, report Report) error {
	fmt.Fprintf(w, "%s: %s to %s (%s)\n\n", report.Range.Label,
		utils.FormatDateKey(report.Range.Start), utils.FormatDateKey(report.Range.End), report.Granularity)

	if len(report.Points) == 0 {
		fmt.Fprintln(w, "NO DATA IN RANGE")
		return nil
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Period", "Start", "Yes", "No", "Due", "Rate"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, p := range report.Points {
		rate := "-"
		if p.Yes+p.No > 0 {
			rate = percent(float64(p.Yes) / float64(p.Yes+p.No))
		}
		data = append(data, []string{
			p.Key,
			p.Anchor,
			strconv.Itoa(p.Yes),
			strconv.Itoa(p.No),
			strconv.Itoa(p.Total),
			rate,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}

	s := report.Summary
	fmt.Fprintf(w, "\nYES %d  NO %d  DUE %d  ANSWERED %d  ADHERENCE %s\n", s.Yes, s.No, s.Due, s.Answered, percent(s.Adherence))

	if len(report.Questions) > 0 {
		fmt.Fprintln(w)
		return renderQuestions(w, report.Questions)
	}
	return nil
}

func renderQuestions(w io.Writer, qs []stats.QuestionSummary) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Question", "Schedule", "Yes", "No", "Due", "Rate", "Streak"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, q := range qs {
		data = append(data, []string{
			q.Question.Text,
			utils.FormatSchedule(q.Question.Schedule),
			strconv.Itoa(q.Yes),
			strconv.Itoa(q.No),
			strconv.Itoa(q.Due),
			percent(q.Adherence),
			strconv.Itoa(q.Streak),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}
