package system

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/alog/internal/backup"
	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/storage/sqlite"
	"github.com/julianstephens/alog/internal/validation"
)

type DoctorCmd struct{}

type check struct {
	name string
	run  func(*cli.Context) error
	// needsDB checks are skipped when the database is unreachable.
	needsDB bool
	// warnOnly failures are reported but do not fail the run.
	warnOnly bool
}

var checks = []check{
	{name: "Schema version", run: checkSchemaVersion, needsDB: true},
	{name: "Migrations complete", run: checkMigrationsComplete, needsDB: true},
	{name: "Backups present", run: checkBackupsPresent, warnOnly: true},
	{name: "Active project", run: checkActiveProject, needsDB: true, warnOnly: true},
	{name: "Question validation", run: checkQuestions, needsDB: true},
	{name: "Answer log integrity", run: checkLog, needsDB: true},
	{name: "Clock/timezone", run: checkClockTimezone},
	{name: "Log file", run: checkLogFile, warnOnly: true},
}

func (cmd *DoctorCmd) Run(ctx *cli.Context) error {
	fmt.Println("Running diagnostics...")
	fmt.Println()

	hasError := false
	dbReachable := true

	if err := checkDBReachable(ctx); err != nil {
		fmt.Printf("❌ Database reachable: FAIL\n")
		fmt.Printf("   Error: %v\n", err)
		hasError = true
		dbReachable = false
	} else {
		fmt.Printf("✓ Database reachable: OK\n")
	}

	for _, c := range checks {
		if c.needsDB && !dbReachable {
			fmt.Printf("⊘ %s: SKIPPED (database not reachable)\n", c.name)
			continue
		}
		err := c.run(ctx)
		switch {
		case err == nil:
			fmt.Printf("✓ %s: OK\n", c.name)
		case c.warnOnly:
			fmt.Printf("⚠ %s: WARNING\n", c.name)
			fmt.Printf("   %v\n", err)
		default:
			fmt.Printf("❌ %s: FAIL\n", c.name)
			fmt.Printf("   Error: %v\n", err)
			hasError = true
		}
	}

	if path := logger.Path(); path != "" {
		fmt.Printf("\nLog file: %s\n", path)
	}

	fmt.Println()
	if hasError {
		fmt.Println("Diagnostics completed with errors.")
		return fmt.Errorf("one or more health checks failed")
	}

	fmt.Println("All diagnostics passed!")
	return nil
}

func checkDBReachable(ctx *cli.Context) error {
	if err := ctx.Store.Load(); err != nil {
		return fmt.Errorf("failed to load database: %w", err)
	}
	if _, err := ctx.Store.GetSettings(); err != nil {
		return fmt.Errorf("failed to query database: %w", err)
	}
	return nil
}

func checkSchemaVersion(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	status, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if status.Current > status.Latest {
		return fmt.Errorf("database schema version (%d) is newer than supported version (%d)", status.Current, status.Latest)
	}
	return nil
}

func checkMigrationsComplete(ctx *cli.Context) error {
	m, ok := ctx.Store.(migrator)
	if !ok {
		return nil
	}
	status, err := m.MigrationStatus()
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}
	if len(status.Pending) > 0 {
		return fmt.Errorf("migrations incomplete: current version %d, latest version %d - run '%s migrate'",
			status.Current, status.Latest, constants.AppName)
	}
	return nil
}

func checkBackupsPresent(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return nil
	}
	mgr := backup.NewManager(ctx.Store.GetConfigPath())
	backups, err := mgr.List()
	if err != nil {
		return fmt.Errorf("failed to list backups: %w", err)
	}
	if len(backups) == 0 {
		return fmt.Errorf("no backups found - consider creating one with '%s backup create'", constants.AppName)
	}
	return nil
}

func checkActiveProject(ctx *cli.Context) error {
	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	projects, err := ctx.Store.GetAllProjects()
	if err != nil {
		return fmt.Errorf("failed to get projects: %w", err)
	}
	if len(projects) == 0 {
		return errors.New("no projects defined")
	}
	if settings.ActiveProjectID == "" {
		return fmt.Errorf("no active project set, defaulting to %q", projects[0].Name)
	}
	for _, p := range projects {
		if p.ID == settings.ActiveProjectID {
			return nil
		}
	}
	return fmt.Errorf("active project %q no longer exists, defaulting to %q", settings.ActiveProjectID, projects[0].Name)
}

func checkQuestions(ctx *cli.Context) error {
	projects, err := ctx.Store.GetAllProjects()
	if err != nil {
		return fmt.Errorf("failed to get projects: %w", err)
	}
	questions, err := ctx.Store.GetQuestions("")
	if err != nil {
		return fmt.Errorf("failed to get questions: %w", err)
	}
	result := validation.New().ValidateQuestions(questions, projects)
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found - run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkLog(ctx *cli.Context) error {
	questions, err := ctx.Store.GetQuestions("")
	if err != nil {
		return fmt.Errorf("failed to get questions: %w", err)
	}
	entries, err := ctx.Store.GetAllLogEntries()
	if err != nil {
		return fmt.Errorf("failed to get answers: %w", err)
	}
	result := validation.New().ValidateLog(entries, questions)
	if result.HasConflicts() {
		return fmt.Errorf("%d problem(s) found - run '%s validate' for details", len(result.Conflicts), constants.AppName)
	}
	return nil
}

func checkClockTimezone(ctx *cli.Context) error {
	now := time.Now()
	if ctx.Now != nil {
		now = ctx.Now()
	}
	if now.Year() < 2020 || now.Year() > 2100 {
		return fmt.Errorf("system time appears incorrect: %s", now.Format(time.RFC3339))
	}
	return nil
}

func checkLogFile(_ *cli.Context) error {
	path := logger.Path()
	if path == "" {
		return errors.New("logging is not initialized")
	}
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return fmt.Errorf("log directory unavailable: %w", err)
	}
	return nil
}
