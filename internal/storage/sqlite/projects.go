package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/storage"
)

func (s *Store) AddProject(p models.Project) error {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now()
	}
	_, err := s.db.Exec(`
		INSERT INTO projects (id, name, created_at) VALUES (?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET name = excluded.name`,
		p.ID, p.Name, p.CreatedAt.Format(time.RFC3339))
	return err
}

func (s *Store) GetProject(id string) (models.Project, error) {
	var p models.Project
	var createdAt string
	err := s.db.QueryRow("SELECT id, name, created_at FROM projects WHERE id = ?", id).
		Scan(&p.ID, &p.Name, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Project{}, fmt.Errorf("project %s: %w", id, storage.ErrNotFound)
	}
	if err != nil {
		return models.Project{}, err
	}
	if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
		return models.Project{}, fmt.Errorf("failed to parse created_at: %w", err)
	}
	return p, nil
}

func (s *Store) GetAllProjects() ([]models.Project, error) {
	rows, err := s.db.Query("SELECT id, name, created_at FROM projects ORDER BY created_at, id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		var createdAt string
		if err := rows.Scan(&p.ID, &p.Name, &createdAt); err != nil {
			return nil, err
		}
		if p.CreatedAt, err = time.Parse(time.RFC3339, createdAt); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

func (s *Store) DeleteProject(id string) error {
	tx, err := s.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Logs carry their own project_id so answers to questions that were
	// already removed go too.
	if _, err := tx.Exec("DELETE FROM logs WHERE project_id = ? OR question_id IN (SELECT id FROM questions WHERE project_id = ?)", id, id); err != nil {
		return fmt.Errorf("failed to delete logs: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM questions WHERE project_id = ?", id); err != nil {
		return fmt.Errorf("failed to delete questions: %w", err)
	}
	res, err := tx.Exec("DELETE FROM projects WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete project: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("project %s: %w", id, storage.ErrNotFound)
	}
	return tx.Commit()
}
