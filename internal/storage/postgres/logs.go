package postgres

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/julianstephens/alog/internal/models"
	"github.com/julianstephens/alog/internal/storage"
)

func (s *Store) SetAnswer(date, questionID string, answer models.Answer) error {
	if !answer.IsAnswered() {
		_, err := s.db.Exec("DELETE FROM logs WHERE date = $1 AND question_id = $2", date, questionID)
		return err
	}

	res, err := s.db.Exec(`
		INSERT INTO logs (date, question_id, project_id, answer)
		SELECT $1, id, project_id, $2 FROM questions WHERE id = $3
		ON CONFLICT (date, question_id) DO UPDATE SET answer = EXCLUDED.answer`,
		date, string(answer), questionID)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("question %s: %w", questionID, storage.ErrNotFound)
	}
	return nil
}

func (s *Store) GetLog(projectID, start, end string) (models.Log, error) {
	var where []string
	var args []any
	add := func(clause, value string) {
		args = append(args, value)
		where = append(where, clause+" $"+strconv.Itoa(len(args)))
	}
	if projectID != "" {
		add("project_id =", projectID)
	}
	if start != "" {
		add("date >=", start)
	}
	if end != "" {
		add("date <=", end)
	}

	query := "SELECT date, question_id, answer FROM logs"
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	log := models.Log{}
	for rows.Next() {
		var date, questionID, answer string
		if err := rows.Scan(&date, &questionID, &answer); err != nil {
			return nil, err
		}
		log.Set(date, questionID, models.Answer(answer))
	}
	return log, rows.Err()
}

func (s *Store) GetAllLogEntries() ([]models.LogEntry, error) {
	rows, err := s.db.Query("SELECT date, question_id, project_id, answer FROM logs ORDER BY date, question_id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []models.LogEntry
	for rows.Next() {
		var e models.LogEntry
		var answer string
		if err := rows.Scan(&e.Date, &e.QuestionID, &e.ProjectID, &answer); err != nil {
			return nil, err
		}
		e.Answer = models.Answer(answer)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
