// Package session owns the in-memory representation of chat sessions and
// keeps their workflow state synchronized with the durable store.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"

	"github.com/tripwise/tripwise/domain"
	"github.com/tripwise/tripwise/llm"
	"github.com/tripwise/tripwise/store"
)

// ErrNotFound indicates that no session exists for the given id.
var ErrNotFound = errors.New("session not found")

// Session is one conversation: persisted workflow state plus ephemeral
// message history. History is rebuilt empty after a restart or eviction;
// only State survives.
//
// Callers must hold the session lock while reading or mutating History or
// State; the manager serializes nothing beyond its own table.
type Session struct {
	mu sync.Mutex

	ID      string
	History []llm.ChatMessage
	State   domain.WorkflowState
}

// Lock acquires the per-session lock.
func (s *Session) Lock() { s.mu.Lock() }

// Unlock releases the per-session lock.
func (s *Session) Unlock() { s.mu.Unlock() }

// Manager maintains the TTL-bounded in-memory session table in front of
// the durable state store.
type Manager struct {
	store store.Store
	table *gocache.Cache

	// guards get-or-create races on the table
	mu sync.Mutex
}

// NewManager creates a session manager. Sessions idle longer than ttl are
// evicted from memory; their persisted state remains.
func NewManager(st store.Store, ttl time.Duration) *Manager {
	return &Manager{
		store: st,
		table: gocache.New(ttl, ttl/2),
	}
}

// GetOrCreate returns the in-memory session for the id if one exists.
// Otherwise it resolves or generates an id, loads persisted state (creating
// a default-initialized record when absent) and materializes a fresh
// session with empty history.
func (m *Manager) GetOrCreate(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID != "" {
		if cached, ok := m.table.Get(sessionID); ok {
			sess := cached.(*Session)
			m.table.SetDefault(sessionID, sess)
			return sess, nil
		}
	}

	id := sessionID
	if id == "" {
		id = uuid.New().String()
	}

	state, err := m.store.GetState(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	if state == nil {
		state = domain.DefaultWorkflowState()
		if err := m.store.SaveState(ctx, id, state); err != nil {
			return nil, fmt.Errorf("failed to create session state: %w", err)
		}
	}

	sess := &Session{
		ID:      id,
		History: []llm.ChatMessage{},
		State:   state,
	}
	m.table.SetDefault(id, sess)
	return sess, nil
}

// Reset deletes the persisted state record and drops the in-memory entry.
// Resetting a nonexistent session is not an error.
func (m *Manager) Reset(ctx context.Context, sessionID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.store.DeleteState(ctx, sessionID); err != nil {
		return fmt.Errorf("failed to delete session state: %w", err)
	}
	m.table.Delete(sessionID)
	return nil
}

// UpdateState merges updates key-wise into the session's state and
// persists the result immediately. It requires an active in-memory
// session: a merely persisted record returns ErrNotFound.
func (m *Manager) UpdateState(ctx context.Context, sessionID string, updates map[string]interface{}) (domain.WorkflowState, error) {
	cached, ok := m.table.Get(sessionID)
	if !ok {
		return nil, ErrNotFound
	}
	sess := cached.(*Session)

	sess.Lock()
	defer sess.Unlock()

	sess.State.Merge(updates)
	if err := m.store.SaveState(ctx, sessionID, sess.State); err != nil {
		return nil, fmt.Errorf("failed to persist state: %w", err)
	}
	return sess.State.Clone(), nil
}

// Snapshot returns the in-memory session for the id, lazily materializing
// one (with empty history) from persisted state when needed.
func (m *Manager) Snapshot(ctx context.Context, sessionID string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cached, ok := m.table.Get(sessionID); ok {
		return cached.(*Session), nil
	}

	state, err := m.store.GetState(ctx, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to load session state: %w", err)
	}
	if state == nil {
		return nil, ErrNotFound
	}

	sess := &Session{
		ID:      sessionID,
		History: []llm.ChatMessage{},
		State:   state,
	}
	m.table.SetDefault(sessionID, sess)
	return sess, nil
}

// SaveState persists the session's current state. The caller must hold the
// session lock. A write failure means the mutation is not durably
// committed and must be reported, not swallowed.
func (m *Manager) SaveState(ctx context.Context, sess *Session) error {
	if err := m.store.SaveState(ctx, sess.ID, sess.State); err != nil {
		return fmt.Errorf("failed to persist state: %w", err)
	}
	return nil
}
