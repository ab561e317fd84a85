package store

import (
	"context"
	"encoding/json"
	"sort"
	"sync"

	"github.com/rotisserie/eris"

	"github.com/sells-group/suitability-engine/internal/model"
)

// MemoryStore is an in-process Store used by tests and the default CLI
// profile. Sessions are deep-copied through JSON on the way in and out so
// callers never share aggregate state with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]byte
}

// NewMemory creates an empty MemoryStore.
func NewMemory() *MemoryStore {
	return &MemoryStore{sessions: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*model.Session, error) {
	s.mu.RLock()
	doc, ok := s.sessions[id]
	s.mu.RUnlock()
	if !ok {
		return nil, ErrNotFound
	}

	var session model.Session
	if err := json.Unmarshal(doc, &session); err != nil {
		return nil, eris.Wrapf(err, "memory: unmarshal session %s", id)
	}
	return &session, nil
}

func (s *MemoryStore) Save(_ context.Context, session *model.Session) error {
	doc, err := json.Marshal(session)
	if err != nil {
		return eris.Wrap(err, "memory: marshal session")
	}

	s.mu.Lock()
	s.sessions[session.ID] = doc
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) List(_ context.Context) ([]model.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	sessions := make([]model.Session, 0, len(s.sessions))
	for id, doc := range s.sessions {
		var session model.Session
		if err := json.Unmarshal(doc, &session); err != nil {
			return nil, eris.Wrapf(err, "memory: unmarshal session %s", id)
		}
		sessions = append(sessions, session)
	}
	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].UpdatedAt.After(sessions[j].UpdatedAt)
	})
	return sessions, nil
}

func (s *MemoryStore) Migrate(context.Context) error { return nil }

func (s *MemoryStore) Close() error { return nil }
