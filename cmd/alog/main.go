package main

import (
	"path/filepath"

	"github.com/alecthomas/kong"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/cli/analytics"
	"github.com/julianstephens/alog/internal/cli/answers"
	"github.com/julianstephens/alog/internal/cli/backups"
	"github.com/julianstephens/alog/internal/cli/exports"
	"github.com/julianstephens/alog/internal/cli/projects"
	"github.com/julianstephens/alog/internal/cli/questions"
	"github.com/julianstephens/alog/internal/cli/settings"
	"github.com/julianstephens/alog/internal/cli/system"
	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/errors"
	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/storage"
	"github.com/julianstephens/alog/internal/storage/sqlite"
)

var CLI struct {
	Version kong.VersionFlag
	Config  string `help:"SQLite file path or PostgreSQL connection string (default: ~/.config/alog/alog.db, or the connection string in ALOG_DB_CONNECTION or the keyring). PostgreSQL passwords must NOT be embedded here." env:"ALOG_CONFIG"`
	Debug   bool   `help:"Enable debug logging to stderr." env:"ALOG_DEBUG"`

	Init     system.InitCmd     `cmd:"" help:"Initialize alog storage."`
	Migrate  system.MigrateCmd  `cmd:"" help:"Run database migrations."`
	Doctor   system.DoctorCmd   `cmd:"" help:"Run health checks and diagnostics."`
	Tui      system.TuiCmd      `cmd:"" help:"Launch the interactive TUI." default:"1"`
	Validate system.ValidateCmd `cmd:"" help:"Validate questions and answers."`
	Keyring  system.KeyringCmd  `cmd:"" help:"Manage secrets in the OS keyring."`

	Project  projects.ProjectCmd   `cmd:"" help:"Manage projects."`
	Question questions.QuestionCmd `cmd:"" help:"Manage questions."`
	Answer   answers.AnswerCmd     `cmd:"" help:"Answer a question for a day."`
	Today    answers.TodayCmd      `cmd:"" help:"Show today's questions."`

	Stats   analytics.StatsCmd   `cmd:"" help:"Show aggregated answers over a date range."`
	Presets analytics.PresetsCmd `cmd:"" help:"List preset date ranges."`
	Insight analytics.InsightCmd `cmd:"" help:"Generate a performance report for the last 14 days."`

	Backup struct {
		Create  backups.BackupCreateCmd  `cmd:"" help:"Create a manual backup." default:"1"`
		List    backups.BackupListCmd    `cmd:"" help:"List available backups."`
		Restore backups.BackupRestoreCmd `cmd:"" help:"Restore from a backup."`
	} `cmd:"" help:"Manage database backups."`
	Export   exports.ExportCmd    `cmd:"" help:"Export questions or answers."`
	Settings settings.SettingsCmd `cmd:"" help:"Manage application settings."`
}

// commands that do not need an opened store.
var noLoad = map[string]bool{
	"init":    true,
	"keyring": true,
}

func main() {
	ctx := kong.Parse(&CLI,
		kong.Name(constants.AppName),
		kong.Description("Retro habit journal: daily yes/no questions, streaks and range statistics"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact:             true,
			NoExpandSubcommands: true,
		}),
		kong.Vars{"version": constants.Version},
	)

	store, err := cli.ResolveStore(CLI.Config)
	if err != nil {
		errors.Fatal(err)
	}

	// Logs live next to the SQLite database, or in the default config
	// directory for PostgreSQL.
	configDir, err := storage.ExpandPath(filepath.Dir(constants.DefaultConfigPath))
	if err != nil {
		errors.Fatal(err)
	}
	if _, ok := store.(*sqlite.Store); ok {
		configDir = filepath.Dir(store.GetConfigPath())
	}
	if err := logger.Init(logger.Config{Debug: CLI.Debug, ConfigDir: configDir}); err != nil {
		errors.Fatal(err)
	}

	appCtx := &cli.Context{Store: store}
	defer store.Close()

	if ctx.Selected() != nil && !noLoad[rootCommand(ctx)] {
		if err := store.Load(); err != nil {
			errors.Fatal(err)
		}
	}

	if err := ctx.Run(appCtx); err != nil {
		store.Close()
		errors.Fatal(err)
	}
}

// rootCommand returns the top-level command name of the selected path.
func rootCommand(ctx *kong.Context) string {
	for _, p := range ctx.Path {
		if p.Command != nil {
			return p.Command.Name
		}
	}
	return ""
}
