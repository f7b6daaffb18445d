package storage

import "github.com/julianstephens/alog/internal/models"

// Provider is the persistence boundary for projects, questions, the answer
// log and settings. Implementations are not safe for concurrent writers to
// the same cell; the last write wins.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Settings
	GetSettings() (models.Settings, error)
	SaveSettings(models.Settings) error

	// Projects
	AddProject(models.Project) error
	GetProject(id string) (models.Project, error)
	GetAllProjects() ([]models.Project, error)
	// DeleteProject removes the project, its questions and their log rows.
	DeleteProject(id string) error

	// Questions
	// AddQuestion inserts or replaces a question by id.
	AddQuestion(models.Question) error
	GetQuestion(id string) (models.Question, error)
	// GetQuestions returns the questions of projectID, or every question
	// when projectID is empty, oldest first.
	GetQuestions(projectID string) ([]models.Question, error)
	// DeleteQuestion removes the question and its log rows.
	DeleteQuestion(id string) error

	// Log
	// SetAnswer upserts the (date, question) cell. Writing
	// models.AnswerUnanswered deletes the row. Returns ErrNotFound when the
	// question does not exist.
	SetAnswer(date, questionID string, answer models.Answer) error
	// GetLog returns the answers for projectID (all projects when empty)
	// between the inclusive date keys start and end. Empty bounds are open.
	GetLog(projectID, start, end string) (models.Log, error)
	GetAllLogEntries() ([]models.LogEntry, error)

	// Utils
	GetConfigPath() string
}
