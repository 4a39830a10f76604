package vault

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"
)

func TestStartSessionValidation(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	if _, err := svc.StartSession(ctx, 0, "music"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing user id, got %v", err)
	}
	if _, err := svc.StartSession(ctx, 1, ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing category, got %v", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM sessions`).Scan(&count); err != nil {
		t.Fatalf("count sessions: %v", err)
	}
	if count != 0 {
		t.Fatalf("rejected starts must not create rows, got %d", count)
	}
}

func TestAppendAnswerStepZero(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Login(ctx, "carol", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	session, err := svc.StartSession(ctx, user.ID, "food")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}

	answer, err := svc.AppendAnswer(ctx, session.ID, 0, "Favorite dish?", "Pelmeni")
	if err != nil {
		t.Fatalf("append with step 0: %v", err)
	}
	if answer.ID <= 0 {
		t.Fatalf("expected positive answer id, got %d", answer.ID)
	}
	if answer.StepIndex != 0 {
		t.Fatalf("expected step index 0, got %d", answer.StepIndex)
	}

	// Duplicate step indexes are allowed.
	if _, err := svc.AppendAnswer(ctx, session.ID, 0, "Favorite dish?", "Borscht"); err != nil {
		t.Fatalf("append with duplicate step: %v", err)
	}
}

func TestAppendAnswerRequiresText(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	if _, err := svc.AppendAnswer(ctx, 1, 0, "", "answer"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty question, got %v", err)
	}
	if _, err := svc.AppendAnswer(ctx, 1, 0, "question", ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty answer, got %v", err)
	}
}

func TestFinishSession(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	if err := svc.FinishSession(ctx, 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for missing session id, got %v", err)
	}
	if err := svc.FinishSession(ctx, 9999); !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("expected sql.ErrNoRows for unknown session, got %v", err)
	}

	user, err := svc.Login(ctx, "dave", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	session, err := svc.StartSession(ctx, user.ID, "film")
	if err != nil {
		t.Fatalf("start session: %v", err)
	}
	if err := svc.FinishSession(ctx, session.ID); err != nil {
		t.Fatalf("finish session: %v", err)
	}
	// Re-finishing overwrites the timestamp without error.
	if err := svc.FinishSession(ctx, session.ID); err != nil {
		t.Fatalf("re-finish session: %v", err)
	}

	var finished sql.NullTime
	if err := db.QueryRow(`SELECT finished_at FROM sessions WHERE id = ?`, session.ID).Scan(&finished); err != nil {
		t.Fatalf("query finished_at: %v", err)
	}
	if !finished.Valid {
		t.Fatalf("expected finished_at to be set")
	}
}

func TestSessionHistoryOrdering(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Login(ctx, "Erin", "")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	// Insert sessions with explicit start times so the ordering is unambiguous.
	older := insertTestSession(t, db, user.ID, "music", time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	newer := insertTestSession(t, db, user.ID, "food", time.Date(2025, 3, 2, 10, 0, 0, 0, time.UTC))

	// Append out of order; history must come back sorted by step index.
	if _, err := svc.AppendAnswer(ctx, newer, 1, "Q1", "A1"); err != nil {
		t.Fatalf("append step 1: %v", err)
	}
	if _, err := svc.AppendAnswer(ctx, newer, 0, "Q0", "A0"); err != nil {
		t.Fatalf("append step 0: %v", err)
	}
	if err := svc.FinishSession(ctx, newer); err != nil {
		t.Fatalf("finish session: %v", err)
	}

	history, err := svc.SessionHistory(ctx, "erin")
	if err != nil {
		t.Fatalf("session history: %v", err)
	}
	if len(history) != 2 {
		t.Fatalf("expected 2 sessions, got %d", len(history))
	}
	if history[0].SessionID != newer || history[1].SessionID != older {
		t.Fatalf("expected most recently started first, got %d then %d", history[0].SessionID, history[1].SessionID)
	}
	if history[0].FinishedAt == nil {
		t.Fatalf("expected finished_at to be set on finished session")
	}
	if history[1].FinishedAt != nil {
		t.Fatalf("expected nil finished_at on unfinished session")
	}

	answers := history[0].Answers
	if len(answers) != 2 {
		t.Fatalf("expected 2 answers, got %d", len(answers))
	}
	if answers[0].StepIndex != 0 || answers[1].StepIndex != 1 {
		t.Fatalf("expected answers ordered by step index, got %d then %d", answers[0].StepIndex, answers[1].StepIndex)
	}
	if answers[0].Question != "Q0" || answers[0].Answer != "A0" {
		t.Fatalf("unexpected first answer: %+v", answers[0])
	}
}

func TestSessionHistoryUnknownUser(t *testing.T) {
	db := openTestDB(t)
	defer db.Close()
	svc := NewService(db)

	for _, username := range []string{"", "   ", "nobody"} {
		history, err := svc.SessionHistory(context.Background(), username)
		if err != nil {
			t.Fatalf("username %q: %v", username, err)
		}
		if history == nil {
			t.Fatalf("username %q: expected empty slice, got nil", username)
		}
		if len(history) != 0 {
			t.Fatalf("username %q: expected empty history, got %d", username, len(history))
		}
	}
}

func insertTestSession(t *testing.T, db *sql.DB, userID int64, category string, startedAt time.Time) int64 {
	t.Helper()
	res, err := db.Exec(
		`INSERT INTO sessions (user_id, category, started_at) VALUES (?, ?, ?)`,
		userID, category, startedAt,
	)
	if err != nil {
		t.Fatalf("insert session: %v", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		t.Fatalf("session id: %v", err)
	}
	return id
}
