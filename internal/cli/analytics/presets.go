package analytics

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/presets"
	"github.com/julianstephens/alog/internal/utils"
)

type PresetsCmd struct{}

func (c *PresetsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	catalog := presets.Generate(ctx.Today())

	table := tablewriter.NewWriter(os.Stdout)
	table.Header([]string{"Category", "Preset", "Start", "End", "Days"})

	var data [][]string
	for _, cat := range catalog {
		for _, r := range cat.Ranges {
			label := r.Label
			if label == settings.DefaultPreset {
				label += " *"
			}
			days := utils.DaysBetween(r.Start, r.End) + 1
			data = append(data, []string{
				cat.Name,
				label,
				utils.FormatDateKey(r.Start),
				utils.FormatDateKey(r.End),
				fmt.Sprint(days),
			})
		}
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	fmt.Println("* default preset")
	return nil
}
