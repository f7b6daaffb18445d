package exports

import (
	"fmt"
	"os"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/export"
	"github.com/julianstephens/alog/internal/models"
)

type ExportCmd struct {
	Config ExportConfigCmd `cmd:"" help:"Export the active project's questions as JSON."`
	Log    ExportLogCmd    `cmd:"" help:"Export answers as JSON or Parquet."`
}

type ExportConfigCmd struct {
	Output string `short:"o" help:"Output file ('-' for stdout)." default:"alog_project_config.json"`
}

func (c *ExportConfigCmd) Run(ctx *cli.Context) error {
	j, err := ctx.RequireProject()
	if err != nil {
		return err
	}
	questions := j.Questions()

	if c.Output == "-" {
		return export.WriteConfig(os.Stdout, questions)
	}
	if err := export.WriteConfigFile(c.Output, questions); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d question(s) to %s\n", len(questions), c.Output)
	return nil
}

type ExportLogCmd struct {
	Output string `short:"o" help:"Output file ('-' for stdout, JSON only)." default:"-"`
	Format string `short:"f" help:"json or parquet." enum:"json,parquet" default:"json"`
	All    bool   `help:"Export every project instead of the active one."`
}

func (c *ExportLogCmd) entries(ctx *cli.Context) ([]models.LogEntry, error) {
	entries, err := ctx.Store.GetAllLogEntries()
	if err != nil {
		return nil, fmt.Errorf("failed to read answers: %w", err)
	}
	if !c.All {
		j, err := ctx.RequireProject()
		if err != nil {
			return nil, err
		}
		scoped := entries[:0:0]
		for _, e := range entries {
			if e.ProjectID == j.ProjectID() {
				scoped = append(scoped, e)
			}
		}
		entries = scoped
	}
	export.SortEntries(entries)
	return entries, nil
}

func (c *ExportLogCmd) Run(ctx *cli.Context) error {
	format := export.Format(c.Format)
	if c.Output == "-" && format == export.FormatParquet {
		return fmt.Errorf("parquet export needs an output file (--output)")
	}

	entries, err := c.entries(ctx)
	if err != nil {
		return err
	}

	if c.Output == "-" {
		return export.WriteLog(os.Stdout, entries, format)
	}
	if err := export.WriteLogFile(c.Output, entries, format); err != nil {
		return err
	}
	fmt.Printf("✓ Exported %d answer(s) to %s\n", len(entries), c.Output)
	return nil
}
