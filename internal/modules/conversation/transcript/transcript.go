// Package transcript holds in-flight conversation sessions.
package transcript

import (
	"context"
	"errors"
	"time"
)

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	ErrNotFound = errors.New("transcript not found")
	ErrExists   = errors.New("transcript already exists")
)

type Turn struct {
	Role    string    `json:"role"`
	Content string    `json:"content"`
	At      time.Time `json:"at"`
}

// Session is one transcript with its owner. Turns are append-only.
type Session struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	ConversationType string    `json:"conversation_type"`
	Theme            string    `json:"theme"`
	CreatedAt        time.Time `json:"created_at"`
	Turns            []Turn    `json:"turns"`
}

// Store keeps transcripts by session id. Callers serialize work on one
// session with Lock; the store itself only guarantees per-call safety.
type Store interface {
	Create(ctx context.Context, s Session) error
	Append(ctx context.Context, sessionID string, turns ...Turn) error
	Read(ctx context.Context, sessionID string) (Session, error)
	Delete(ctx context.Context, sessionID string) (bool, error)
	// Count reports the sessions currently held, including none that expired.
	Count(ctx context.Context) (int, error)
	Lock(sessionID string) (unlock func())
}
