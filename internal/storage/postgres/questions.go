package postgres

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
	schedule := q.Schedule
	if schedule == nil {
		schedule = []int{}
	}
	encoded, err := json.Marshal(schedule)
	if err != nil {
		return fmt.Errorf("failed to encode schedule: %w", err)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO questions (id, project_id, text, schedule, created_at) VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE SET
			project_id = EXCLUDED.project_id,
			text = EXCLUDED.text,
			schedule = EXCLUDED.schedule`,
		q.ID, q.ProjectID, q.Text, string(encoded), q.CreatedAt.Format(time.RFC3339)); err != nil {
		return err
	}
	if _, err := tx.Exec("UPDATE logs SET project_id = $1 WHERE question_id = $2", q.ProjectID, q.ID); err != nil {
		return err
	}
	return tx.Commit()
}

func (s *Store) GetQuestion(id string) (models.Question, error) {
	row := s.db.QueryRow("SELECT id, project_id, text, schedule, created_at FROM questions WHERE id = $1", id)
	q, err := scanQuestion(row)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Question{}, fmt.Errorf("question %s: %w", id, storage.ErrNotFound)
	}
	return q, err
}

func (s *Store) GetQuestions(projectID string) ([]models.Question, error) {
	var rows *sql.Rows
	var err error
	if projectID == "" {
		rows, err = s.db.Query("SELECT id, project_id, text, schedule, created_at FROM questions ORDER BY created_at, id")
	} else {
		rows, err = s.db.Query("SELECT id, project_id, text, schedule, created_at FROM questions WHERE project_id = $1 ORDER BY created_at, id", projectID)
	}
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

	if _, err := tx.Exec("DELETE FROM logs WHERE question_id = $1", id); err != nil {
		return fmt.Errorf("failed to delete logs: %w", err)
	}
	res, err := tx.Exec("DELETE FROM questions WHERE id = $1", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %s: %w", id, storage.ErrNotFound)
	}
	return tx.Commit()
}

func scanQuestion(row interface{ Scan(...any) error }) (models.Question, error) {
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
