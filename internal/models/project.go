package models

import "time"

// Project groups questions. The active project scopes the daily view and stats.
type Project struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
