package sqlite

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/storage"
)

func (s *Store) AddQuestion(q models.Question) error {
	if q.CreatedAt.IsZero() {
		q.CreatedAt = time.Now()
	}
	schedule, err := json.Marshal(scheduleOrEmpty(q.Schedule))
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO questions (id, project_id, text, schedule, created_at) VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			project_id = excluded.project_id,
			text = excluded.text,
			schedule = excluded.schedule`,
		q.ID, q.ProjectID, q.Text, string(schedule), q.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}

	// Moving a question between projects moves its answers with it.
	if _, err := tx.Exec("UPDATE logs SET project_id = ? WHERE question_id = ?", q.ProjectID, q.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetQuestion(id string) (models.Question, error) {
	row := s.db.QueryRow("SELECT id, project_id, text, schedule, created_at FROM questions WHERE id = ?", id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, fmt.Errorf("question %s: %w", id, storage.ErrNotFound)
	}
	return q, err
}

func (s *Store) GetQuestions(projectID string) ([]models.Question, error) {
	query := "SELECT id, project_id, text, schedule, created_at FROM questions"
	var args []any
	if projectID != "" {
		query += " WHERE project_id = ?"
		args = append(args, projectID)
	}
	query += " ORDER BY created_at, id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var questions []models.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, err
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

func (s *Store) DeleteQuestion(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM logs WHERE question_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete logs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM questions WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %s: %w", id, storage.ErrNotFound)
	}
	return tx.Commit()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanQuestion(row scanner) (models.Question, error) {
	var q models.Question
	var schedule, createdAt string
	if err := row.Scan(&q.ID, &q.ProjectID, &q.Text, &schedule, &createdAt); err != nil {
		return models.Question{}, err
	}
	if err := json.Unmarshal([]byte(schedule), &q.Schedule); err != nil {
		return models.Question{}, fmt.Errorf("failed to parse schedule for %s: %w", q.ID, err)
	}
	var err error
	if q.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Question{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return q, nil
}

func scheduleOrEmpty(schedule []int) []int {
	if schedule == nil {
		return []int{}
	}
	return schedule
}
