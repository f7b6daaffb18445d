// Package export writes project configuration and answer history to files
// other tools can read.
package export

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/parquet-go/parquet-go"

	"github.com/julianstephens/alog/internal/models"
)

// DefaultConfigFile is the file name used when no output path is given.
const DefaultConfigFile = "alog_project_config.json"

// Format is a log export encoding.
type Format string

const (
	FormatJSON    Format = "json"
	FormatParquet Format = "parquet"
)

// LogRow is one answered cell as written to Parquet.
type LogRow struct {
	Date       string `parquet:"date,snappy"`
	QuestionID string `parquet:"question_id,snappy"`
	ProjectID  string `parquet:"project_id,snappy"`
	Answer     string `parquet:"answer,snappy"`
}

// WriteConfig encodes questions as an indented JSON array.
func WriteConfig(w io.Writer, questions []models.Question) error {
	if questions == nil {
		questions = []models.Question{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(questions); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadConfig decodes a question array written by WriteConfig.
func ReadConfig(r io.Reader) ([]models.Question, error) {
	var questions []models.Question
	if err := json.NewDecoder(r).Decode(&questions); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	return questions, nil
}

// SortEntries orders entries by date then question id so exports are stable.
func SortEntries(entries []models.LogEntry) {
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Date != entries[j].Date {
			return entries[i].Date < entries[j].Date
		}
		return entries[i].QuestionID < entries[j].QuestionID
	})
}

// Rows converts entries to Parquet rows, dropping unanswered cells.
func Rows(entries []models.LogEntry) []LogRow {
	rows := make([]LogRow, 0, len(entries))
	for _, e := range entries {
		if !e.Answer.IsAnswered() {
			continue
		}
		rows = append(rows, LogRow{
			Date:       e.Date,
			QuestionID: e.QuestionID,
			ProjectID:  e.ProjectID,
			Answer:     string(e.Answer),
		})
	}
	return rows
}

// WriteLog encodes entries in the given format.
func WriteLog(w io.Writer, entries []models.LogEntry, format Format) error {
	switch format {
	case FormatJSON, "":
		return writeLogJSON(w, entries)
	case FormatParquet:
		return writeLogParquet(w, entries)
	default:
		return fmt.Errorf("unsupported export format %q (expected json or parquet)", format)
	}
}

func writeLogJSON(w io.Writer, entries []models.LogEntry) error {
	out := make([]models.LogEntry, 0, len(entries))
	for _, e := range entries {
		if e.Answer.IsAnswered() {
			out = append(out, e)
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("failed to encode log: %w", err)
	}
	return nil
}

func writeLogParquet(w io.Writer, entries []models.LogEntry) error {
	writer := parquet.NewGenericWriter[LogRow](w)
	if _, err := writer.Write(Rows(entries)); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet: %w", err)
	}
	return nil
}

// WriteLogFile creates path and writes entries to it.
func WriteLogFile(path string, entries []models.LogEntry, format Format) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteLog(file, entries, format); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}

// WriteConfigFile creates path and writes questions to it.
func WriteConfigFile(path string, questions []models.Question) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if err := WriteConfig(file, questions); err != nil {
		_ = file.Close()
		return err
	}
	return file.Close()
}
