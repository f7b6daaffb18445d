package system

import (
	"fmt"
	"math/rand/v2"
	"os"
	"path/filepath"
	"time"

	"github.com/julianstephens/alog/internal/cli"
	"github.com/julianstephens/alog/internal/constants"
	"github.com/julianstephens/alog/internal/seed"
	"github.com/julianstephens/alog/internal/storage"
	"github.com/julianstephens/alog/internal/storage/sqlite"
)

type InitCmd struct {
	Force  bool   `help:"Force reset by deleting existing database before initialization."`
	Source string `help:"Source database path or connection string to copy data from."`
	Seed   bool   `help:"Create the starter project with simulated history."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if c.Force {
		if err := c.reset(ctx); err != nil {
			return err
		}
	}

	if err := ctx.Store.Init(); err != nil {
		return err
	}
	fmt.Printf("Initialized %s storage at: %s\n", constants.AppName, ctx.Store.GetConfigPath())

	if c.Source != "" {
		fmt.Printf("Migrating data from: %s\n", c.Source)
		if err := c.migrateData(ctx, c.Source); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
		fmt.Println("Migration completed successfully!")
	}

	if c.Seed {
		if err := c.seed(ctx); err != nil {
			return err
		}
	}

	return nil
}

func (c *InitCmd) reset(ctx *cli.Context) error {
	if _, ok := ctx.Store.(*sqlite.Store); !ok {
		return fmt.Errorf("--force is only supported for SQLite storage")
	}
	dbPath := ctx.Store.GetConfigPath()
	if abs, err := filepath.Abs(dbPath); err == nil {
		dbPath = abs
	}
	if c.Source != "" {
		if absSource, err := filepath.Abs(c.Source); err == nil && absSource == dbPath {
			return fmt.Errorf("cannot use --force when source and destination are the same: %s", dbPath)
		}
	}

	if _, err := os.Stat(dbPath); err == nil {
		if err := ctx.Store.Close(); err != nil {
			return fmt.Errorf("failed to close existing database: %w", err)
		}
		if err := os.Remove(dbPath); err != nil {
			return fmt.Errorf("failed to delete existing database: %w", err)
		}
		fmt.Printf("Deleted existing database at: %s\n", dbPath)
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("failed to access existing database: %w", err)
	}
	return nil
}

func (c *InitCmd) seed(ctx *cli.Context) error {
	now := time.Now()
	if ctx.Now != nil {
		now = ctx.Now()
	}
	rng := rand.New(rand.NewPCG(uint64(now.UnixNano()), uint64(os.Getpid())))
	if err := seed.Apply(ctx.Store, now, rng); err != nil {
		return err
	}

	settings, err := ctx.Settings()
	if err != nil {
		return err
	}
	if settings.ActiveProjectID == "" {
		settings.ActiveProjectID = constants.SeedProjectID
		if err := ctx.Store.SaveSettings(settings); err != nil {
			return fmt.Errorf("failed to save settings: %w", err)
		}
	}
	fmt.Printf("Seeded project %q with %d days of history\n", constants.SeedProjectName, constants.SeedHistoryDays)
	return nil
}

func (c *InitCmd) migrateData(ctx *cli.Context, source string) error {
	src, err := cli.NewStore(source)
	if err != nil {
		return err
	}
	if err := src.Load(); err != nil {
		return fmt.Errorf("failed to load source database: %w", err)
	}
	defer src.Close()

	return CopyData(src, ctx.Store)
}

// CopyData copies settings, projects, questions and answers from src to dst.
// Rows with matching ids in dst are overwritten.
func CopyData(src, dst storage.Provider) error {
	fmt.Println("  Migrating settings...")
	settings, err := src.GetSettings()
	if err != nil {
		return fmt.Errorf("failed to get settings from source: %w", err)
	}
	if err := dst.SaveSettings(settings); err != nil {
		return fmt.Errorf("failed to save settings to destination: %w", err)
	}

	fmt.Println("  Migrating projects...")
	projects, err := src.GetAllProjects()
	if err != nil {
		return fmt.Errorf("failed to get projects from source: %w", err)
	}
	for _, p := range projects {
		if err := dst.AddProject(p); err != nil {
			return fmt.Errorf("failed to add project %s: %w", p.ID, err)
		}
	}
	fmt.Printf("    Migrated %d projects\n", len(projects))

	fmt.Println("  Migrating questions...")
	questions, err := src.GetQuestions("")
	if err != nil {
		return fmt.Errorf("failed to get questions from source: %w", err)
	}
	for _, q := range questions {
		if err := dst.AddQuestion(q); err != nil {
			return fmt.Errorf("failed to add question %s: %w", q.ID, err)
		}
	}
	fmt.Printf("    Migrated %d questions\n", len(questions))

	fmt.Println("  Migrating answers...")
	entries, err := src.GetAllLogEntries()
	if err != nil {
		return fmt.Errorf("failed to get answers from source: %w", err)
	}
	for _, e := range entries {
		if err := dst.SetAnswer(e.Date, e.QuestionID, e.Answer); err != nil {
			return fmt.Errorf("failed to add answer %s/%s: %w", e.Date, e.QuestionID, err)
		}
	}
	fmt.Printf("    Migrated %d answers\n", len(entries))

	return nil
}
