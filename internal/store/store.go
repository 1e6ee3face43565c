// Package store provides the advisory storage interface and SQLite implementation.
package store

import (
	"context"
	"errors"

	"github.com/rcliao/fitfizz/internal/advisor"
	"github.com/rcliao/fitfizz/internal/model"
)

// ErrNotFound is returned when no active session matches.
var ErrNotFound = errors.New("not found")

// AssessmentParams holds parameters for recording an assessment.
type AssessmentParams struct {
	Session    string
	Assessment advisor.Assessment
}

// TurnParams holds parameters for recording a chat turn.
type TurnParams struct {
	Session  string
	Query    string
	Reply    advisor.Reply
	Category advisor.Category
}

// ListParams holds parameters for listing measurements or turns.
type ListParams struct {
	Session string // empty means every active session
	Limit   int
}

// RmParams holds parameters for deleting a session.
type RmParams struct {
	Name string
	Hard bool
}

// Store defines the advisory storage interface.
type Store interface {
	// RecordAssessment stores a measurement and makes its category the
	// session's current one, creating the session if needed.
	RecordAssessment(ctx context.Context, p AssessmentParams) (*model.Measurement, error)

	// GetSession returns the active session with the given name.
	GetSession(ctx context.Context, name string) (*model.Session, error)

	// RecordTurn stores an answered chat query. The session must exist.
	RecordTurn(ctx context.Context, p TurnParams) (*model.ChatTurn, error)

	// ListMeasurements returns measurements, newest first.
	ListMeasurements(ctx context.Context, p ListParams) ([]model.Measurement, error)

	// ListTurns returns chat turns, newest first.
	ListTurns(ctx context.Context, p ListParams) ([]model.ChatTurn, error)

	// ListSessions returns active sessions, most recently updated first.
	ListSessions(ctx context.Context) ([]model.Session, error)

	// RmSession soft-deletes (or hard-deletes) a session.
	RmSession(ctx context.Context, p RmParams) error

	// Close closes the store.
	Close() error
}
