// Package store defines the state persistence interface and implementations.
package store

import (
	"context"

	"github.com/tripwise/tripwise/domain"
)

// Store is the durable source of truth for per-session workflow state.
// Conversation history is deliberately not persisted.
type Store interface {
	// GetState returns the persisted state for a session, or (nil, nil)
	// when no record exists.
	GetState(ctx context.Context, sessionID string) (domain.WorkflowState, error)

	// SaveState upserts the state record for a session.
	SaveState(ctx context.Context, sessionID string, state domain.WorkflowState) error

	// DeleteState removes the state record. Deleting a nonexistent record
	// is not an error.
	DeleteState(ctx context.Context, sessionID string) error

	// Lifecycle
	Close() error
}
