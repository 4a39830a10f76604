package vault

import (
	"database/sql"
	"errors"
)

// ErrInvalidInput marks requests rejected because a required field was
// missing or empty. Handlers map it to HTTP 400.
var ErrInvalidInput = errors.New("invalid input")

// Service handles identity resolution and session persistence.
type Service struct {
	db *sql.DB
}

// NewService builds a new vault service.
func NewService(db *sql.DB) *Service {
	return &Service{db: db}
}
