package constants

import tea "github.com/charmbracelet/bubbletea"

// SessionState represents the current state of the TUI application
type SessionState int

// ConfirmationMsg is a message to trigger a confirmation dialog
type ConfirmationMsg struct {
	Message string
	Action  func() tea.Cmd
}

const (
	AppName            = "alog"
	DefaultKeyringUser = "database-connection"
	APIKeyKeyringUser  = "insight-api-key"
	DefaultConfigPath  = "~/.config/alog/alog.db"
	Version            = "v0.2.0"

	// DateFormat is the canonical date key format (YYYY-MM-DD). Every log row,
	// export and join uses it.
	DateFormat = "2006-01-02"

	// DisplayDateFormat is the short chart axis label ("Jan 2").
	DisplayDateFormat = "Jan 2"

	// MonthLabelFormat is the month bucket label ("Jan 24").
	MonthLabelFormat = "Jan 06"

	// Backup constants
	MaxBackups       = 14
	BackupDirName    = "backups"
	BackupFilePrefix = "alog-"
	BackupFileSuffix = ".db"

	// Insight constants
	InsightDigestDays   = 14
	DefaultInsightModel = "gemini-2.5-flash"

	// Seed constants
	SeedProjectID   = "p_better_me"
	SeedProjectName = "A BETTER ME"
	SeedHistoryDays = 45
)

// Session States
const (
	StateDaily SessionState = iota
	StateQuestions
	StateStats
	StateAddQuestion
	StateConfirmDelete
)
