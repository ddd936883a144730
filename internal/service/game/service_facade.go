package game

import (
	"context"
	"time"

	"github.com/iamasit07/conn4/internal/domain"
	"github.com/iamasit07/conn4/internal/view"
)

// Renderer receives the board after every accepted move and after a restart.
// RemoveConnection is called once a session is ended or swept.
type Renderer interface {
	Render(sessionID string, board view.Board)
	RemoveConnection(sessionID string)
}

// SnapshotStore keeps live session state outside the process so a session
// can be rebuilt after a restart. Load returns (nil, nil) for unknown IDs.
type SnapshotStore interface {
	Save(ctx context.Context, rec *domain.SessionRecord, ttl time.Duration) error
	Load(ctx context.Context, sessionID string) (*domain.SessionRecord, error)
	Delete(ctx context.Context, sessionID string) error
}

// NopStore is used when no cache is configured.
type NopStore struct{}

func (NopStore) Save(context.Context, *domain.SessionRecord, time.Duration) error { return nil }
func (NopStore) Load(context.Context, string) (*domain.SessionRecord, error)       { return nil, nil }
func (NopStore) Delete(context.Context, string) error                              { return nil }

type nopRenderer struct{}

func (nopRenderer) Render(string, view.Board) {}
func (nopRenderer) RemoveConnection(string)   {}
