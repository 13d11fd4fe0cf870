// Package history records every dispatched command outcome so callers can
// render an action history to the user.
package history

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jarvishq/jarvis/pkg/commands"
	"github.com/jarvishq/jarvis/pkg/dispatch"
)

// Entry is one recorded dispatch outcome. Source names the call site that
// issued the command: "chat", "voice", "direct", or "automation".
type Entry struct {
	ID        string              `json:"id"`
	Action    commands.ActionType `json:"action"`
	Status    dispatch.Status     `json:"status"`
	Message   string              `json:"message"`
	Source    string              `json:"source"  validate:"required"`
	CreatedAt time.Time           `json:"created_at"`
}

// NewEntry builds a history entry from a dispatch outcome.
func NewEntry(source string, outcome dispatch.Outcome) Entry {
	return Entry{
		ID:        uuid.New().String(),
		Action:    outcome.Action,
		Status:    outcome.Status,
		Message:   outcome.Message,
		Source:    source,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists history entries. List returns entries newest first.
type Store interface {
	Append(ctx context.Context, entry Entry) error
	List(ctx context.Context, limit int) ([]Entry, error)
	HealthCheck(ctx context.Context) error
	Close(ctx context.Context) error
}
