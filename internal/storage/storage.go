// Package storage defines persistence contracts for saved sessions.
package storage

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrNotFound indicates no save exists in the requested slot.
	ErrNotFound = errors.New("save not found")
	// ErrCorrupt indicates a save exists but cannot be trusted.
	ErrCorrupt = errors.New("save is corrupt")
)

// SessionRecord is one saved session. Payload is opaque to the store.
type SessionRecord struct {
	Slot      string
	SessionID string
	Level     int
	Payload   []byte
	SavedAt   time.Time
}

// SessionStore persists session snapshots by slot.
type SessionStore interface {
	PutSession(ctx context.Context, record SessionRecord) error
	GetSession(ctx context.Context, slot string) (SessionRecord, error)
	DeleteSession(ctx context.Context, slot string) error
}
