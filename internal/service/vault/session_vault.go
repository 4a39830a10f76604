package vault

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"culturevault/internal/models"
)

// StartSession inserts a new session for the given user/category and returns
// the record. The user id is not verified here; the foreign key constraint
// enforces it.
func (s *Service) StartSession(ctx context.Context, userID int64, category string) (*models.Session, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if category == "" {
		return nil, fmt.Errorf("%w: category is required", ErrInvalidInput)
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (user_id, category, started_at) VALUES (?, ?, ?)`,
		userID, category, now,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	return &models.Session{ID: id, UserID: userID, Category: category, StartedAt: now}, nil
}

// AppendAnswer stores one question/answer pair. Step indexes may repeat and
// need not be contiguous. The session is not verified to exist.
func (s *Service) AppendAnswer(ctx context.Context, sessionID, stepIndex int64, question, answer string) (*models.Answer, error) {
	if question == "" {
		return nil, fmt.Errorf("%w: question is required", ErrInvalidInput)
	}
	if answer == "" {
		return nil, fmt.Errorf("%w: answer is required", ErrInvalidInput)
	}
	now := time.Now().UTC()
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO answers (session_id, step_index, question, answer, created_at) VALUES (?, ?, ?, ?, ?)`,
		sessionID, stepIndex, question, answer, now,
	)
	if err != nil {
		return nil, fmt.Errorf("insert answer: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("answer id: %w", err)
	}
	return &models.Answer{
		ID:        id,
		SessionID: sessionID,
		StepIndex: stepIndex,
		Question:  question,
		Answer:    answer,
		CreatedAt: now,
	}, nil
}

// FinishSession stamps the session's finish time. The timestamp is
// overwritten even when the session is already finished.
func (s *Service) FinishSession(ctx context.Context, sessionID int64) error {
	if sessionID <= 0 {
		return fmt.Errorf("%w: session_id is required", ErrInvalidInput)
	}
	var exists bool
	if err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS(SELECT 1 FROM sessions WHERE id = ?)`, sessionID,
	).Scan(&exists); err != nil {
		return fmt.Errorf("verify session: %w", err)
	}
	if !exists {
		return sql.ErrNoRows
	}
	if _, err := s.db.ExecContext(ctx,
		`UPDATE sessions SET finished_at = ? WHERE id = ?`,
		time.Now().UTC(), sessionID,
	); err != nil {
		return fmt.Errorf("finish session: %w", err)
	}
	return nil
}

// SessionHistory returns the user's sessions, most recently started first,
// each with its answers ordered by step index. Empty or unknown usernames
// yield an empty history rather than an error.
func (s *Service) SessionHistory(ctx context.Context, username string) ([]models.SessionHistory, error) {
	history := make([]models.SessionHistory, 0)
	username = strings.TrimSpace(username)
	if username == "" {
		return history, nil
	}

	var userID int64
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM users WHERE lower(username) = lower(?)`, username,
	).Scan(&userID)
	if errors.Is(err, sql.ErrNoRows) {
		return history, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query user: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, category, started_at, finished_at FROM sessions WHERE user_id = ? ORDER BY started_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			entry    models.SessionHistory
			finished sql.NullTime
		)
		if err := rows.Scan(&entry.SessionID, &entry.Category, &entry.StartedAt, &finished); err != nil {
			return nil, fmt.Errorf("scan session: %w", err)
		}
		if finished.Valid {
			t := finished.Time
			entry.FinishedAt = &t
		}
		history = append(history, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}

	for i := range history {
		answers, err := s.sessionAnswers(ctx, history[i].SessionID)
		if err != nil {
			return nil, err
		}
		history[i].Answers = answers
	}
	return history, nil
}

func (s *Service) sessionAnswers(ctx context.Context, sessionID int64) ([]models.HistoryAnswer, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT step_index, question, answer FROM answers WHERE session_id = ? ORDER BY step_index ASC`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("list answers: %w", err)
	}
	defer rows.Close()

	answers := make([]models.HistoryAnswer, 0)
	for rows.Next() {
		var a models.HistoryAnswer
		if err := rows.Scan(&a.StepIndex, &a.Question, &a.Answer); err != nil {
			return nil, fmt.Errorf("scan answer: %w", err)
		}
		answers = append(answers, a)
	}
	return answers, rows.Err()
}
