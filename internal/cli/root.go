package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/julianstephens/alog/internal/backup"
	"github.com/julianstephens/alog/internal/constants"
	apperrors "github.com/julianstephens/alog/internal/errors"
	"github.com/julianstephens/alog/internal/journal"
	"github.com/julianstephens/alog/internal/keyring"
	"github.com/julianstephens/alog/internal/logger"
	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/storage"
	"github.com/julianstephens/alog/internal/storage/postgres"
	"github.com/julianstephens/alog/internal/storage/sqlite"
	"github.com/julianstephens/alog/internal/utils"
)

type Context struct {
	Store storage.Provider
	// Now defaults to time.Now. Tests pin it.
	Now func() time.Time
}

// Today returns the current local calendar date.
func (c *Context) Today() time.Time {
	if c.Now == nil {
		return utils.Today()
	}
	return utils.StripTime(c.Now())
}

// PerformAutomaticBackup creates an automatic backup and silently handles errors.
// Only SQLite stores are backed up.
func (c *Context) PerformAutomaticBackup() {
	if _, ok := c.Store.(*sqlite.Store); !ok {
		logger.Debug("Skipping automatic backup for non-SQLite store")
		return
	}
	mgr := backup.NewManager(c.Store.GetConfigPath())
	if _, err := mgr.Create(); err != nil {
		logger.Warn("Automatic backup failed", "error", err)
	}
}

// Settings returns the stored settings with defaults applied.
func (c *Context) Settings() (models.Settings, error) {
	settings, err := c.Store.GetSettings()
	if err != nil {
		return models.Settings{}, fmt.Errorf("failed to get settings: %w", err)
	}
	models.ApplyDefaultSettings(&settings)
	return settings, nil
}

// Journal opens the journal on the active project.
func (c *Context) Journal() (*journal.Journal, error) {
	settings, err := c.Settings()
	if err != nil {
		return nil, err
	}
	return journal.Open(c.Store, settings.ActiveProjectID)
}

// RequireProject opens the journal and fails when no project exists.
func (c *Context) RequireProject() (*journal.Journal, error) {
	j, err := c.Journal()
	if err != nil {
		return nil, err
	}
	if j.ProjectID() == "" {
		return nil, apperrors.WithHint(journal.ErrNoProject, "create one with 'alog project add <name>' or run 'alog init --seed'")
	}
	return j, nil
}

// ParseDate accepts YYYY-MM-DD, "today" and "yesterday". Empty means today.
func ParseDate(value string, today time.Time) (time.Time, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "", "today":
		return utils.StripTime(today), nil
	case "yesterday":
		return utils.AddDays(utils.StripTime(today), -1), nil
	}
	d, err := utils.ParseDateKey(strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD)", value)
	}
	return d, nil
}

// FindQuestion resolves ref against questions by exact id, case-insensitive
// text, or unique id prefix.
func FindQuestion(questions []models.Question, ref string) (models.Question, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return models.Question{}, errors.New("question reference cannot be empty")
	}
	for _, q := range questions {
		if q.ID == ref {
			return q, nil
		}
	}
	for _, q := range questions {
		if strings.EqualFold(q.Text, ref) {
			return q, nil
		}
	}
	var matches []models.Question
	for _, q := range questions {
		if strings.HasPrefix(q.ID, ref) {
			matches = append(matches, q)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Question{}, fmt.Errorf("question %q: %w", ref, storage.ErrNotFound)
	default:
		return models.Question{}, fmt.Errorf("question reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// FindProject resolves ref by id, case-insensitive name or unique id prefix.
func FindProject(projects []models.Project, ref string) (models.Project, error) {
	ref = strings.TrimSpace(ref)
	for _, p := range projects {
		if p.ID == ref {
			return p, nil
		}
	}
	for _, p := range projects {
		if strings.EqualFold(p.Name, ref) {
			return p, nil
		}
	}
	var matches []models.Project
	for _, p := range projects {
		if ref != "" && strings.HasPrefix(p.ID, ref) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 1:
		return matches[0], nil
	case 0:
		return models.Project{}, fmt.Errorf("project %q: %w", ref, storage.ErrNotFound)
	default:
		return models.Project{}, fmt.Errorf("project reference %q is ambiguous (%d matches)", ref, len(matches))
	}
}

// NewStore picks a storage backend for config: a PostgreSQL URL or DSN, or a
// SQLite file path. PostgreSQL strings given on the command line must not
// carry a password.
func NewStore(config string) (storage.Provider, error) {
	if storage.IsPostgresConnString(config) || strings.Contains(config, "host=") {
		if _, err := postgres.ValidateConnString(config); err != nil {
			if errors.Is(err, postgres.ErrEmbeddedCredentials) {
				return nil, apperrors.WithHint(err,
					"store the full connection string with 'alog keyring set' or export "+constants.EnvDBConnection)
			}
			return nil, err
		}
		return postgres.New(config), nil
	}
	path, err := storage.ExpandPath(config)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}
	return sqlite.NewStore(path), nil
}

// ResolveStore chooses the store when no --config was given: the
// connection string from the environment, then the keyring, then the
// default SQLite file. Those sources may carry credentials.
func ResolveStore(config string) (storage.Provider, error) {
	if config != "" {
		return NewStore(config)
	}
	if conn := os.Getenv(constants.EnvDBConnection); conn != "" {
		logger.Debug("Using connection string from environment")
		return postgres.New(conn), nil
	}
	conn, err := keyring.GetConnectionString()
	switch {
	case err == nil:
		logger.Debug("Using connection string from keyring")
		return postgres.New(conn), nil
	case !errors.Is(err, keyring.ErrNotFound):
		logger.Debug("Keyring lookup failed", "error", err)
	}
	return NewStore(constants.DefaultConfigPath)
}

// ResolveAPIKey returns the insight API key from the environment or the keyring.
func ResolveAPIKey() (string, error) {
	for _, env := range []string{constants.EnvAPIKey, constants.EnvGeminiAPIKey} {
		if key := os.Getenv(env); key != "" {
			return key, nil
		}
	}
	key, err := keyring.GetAPIKey()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return "", nil
		}
		return "", err
	}
	return key, nil
}
