package settings

import (
	"fmt"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/presets"
)

type SettingsCmd struct {
	List bool `help:"List current settings."`

	DefaultPreset      *string `help:"Preset used when no range is given, e.g. \"Last 30 days\"."`
	DefaultGranularity *string `help:"Granularity used when none is given: day, week or month."`
	InsightModel       *string `help:"Model used for insight reports."`
}

func (c *SettingsCmd) Run(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}

	if c.List {
		active := settings.ActiveProjectID
		if active == "" {
			active = "(none)"
		}
		fmt.Println("Current Settings:")
		fmt.Printf("  Active Project:      %s\n", active)
		fmt.Printf("  Default Preset:      %s\n", settings.DefaultPreset)
		fmt.Printf("  Default Granularity: %s\n", settings.DefaultGranularity)
		fmt.Printf("  Insight Model:       %s\n", settings.InsightModel)
		return nil
	}

	updated := false
	if c.DefaultPreset != nil {
		if _, ok := presets.Generate(ctx.Today()).Find(*c.DefaultPreset); !ok {
			return fmt.Errorf("unknown preset %q", *c.DefaultPreset)
		}
		settings.DefaultPreset = *c.DefaultPreset
		updated = true
	}
	if c.DefaultGranularity != nil {
		g, err := models.ParseGranularity(*c.DefaultGranularity)
		if err != nil {
			return err
		}
		settings.DefaultGranularity = string(g)
		updated = true
	}
	if c.InsightModel != nil {
		if *c.InsightModel == "" {
			return fmt.Errorf("insight model cannot be empty")
		}
		settings.InsightModel = *c.InsightModel
		updated = true
	}

	if updated {
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
		fmt.Println("Settings updated successfully.")
	} else {
		fmt.Println("No changes specified. Use --list to view settings or flags to update them.")
	}

	return nil
}
