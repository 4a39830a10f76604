package models

import "time"

// Session is a bounded sequence of question/answer exchanges under one
// category. FinishedAt stays nil until the session is finished.
type Session struct {
	ID         int64      `json:"session_id"`
	UserID     int64      `json:"user_id"`
	Category   string     `json:"category"`
	StartedAt  time.Time  `json:"started_at"`
	FinishedAt *time.Time `json:"finished_at"`
}

// SessionHistory is a session summary with its ordered answers embedded.
type SessionHistory struct {
	SessionID  int64           `json:"session_id"`
	Category   string          `json:"category"`
	StartedAt  time.Time       `json:"started_at"`
	FinishedAt *time.Time      `json:"finished_at"`
	Answers    []HistoryAnswer `json:"answers"`
}
