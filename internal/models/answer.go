package models

import "time"

// Answer is one question/answer pair within a session. Step indexes are
// caller-supplied and may repeat.
type Answer struct {
	ID        int64     `json:"id"`
	SessionID int64     `json:"session_id"`
	StepIndex int64     `json:"step_index"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	CreatedAt time.Time `json:"created_at"`
}

// HistoryAnswer is the answer view embedded in session history responses.
type HistoryAnswer struct {
	StepIndex int64  `json:"step_index"`
	Question  string `json:"question"`
	Answer    string `json:"answer"`
}
