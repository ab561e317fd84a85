// Package store persists sessions. The engine treats a session as fully
// materialized in memory for the duration of a turn and saves it
// unconditionally at the end of every turn.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/suitability-engine/internal/model"
)

// ErrNotFound is returned by Get for unknown session IDs.
var ErrNotFound = eris.New("store: session not found")

// Store defines the session persistence interface.
type Store interface {
	Get(ctx context.Context, id string) (*model.Session, error)
	Save(ctx context.Context, s *model.Session) error
	List(ctx context.Context) ([]model.Session, error)

	Migrate(ctx context.Context) error
	Close() error
}
