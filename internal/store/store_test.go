package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/model"
)

// storeContract runs the behavior shared by every Store implementation.
func storeContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	first := model.NewSession(time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC))
	first.Data.ClientProfile.ClientType = "individual"
	first.Context.OnboardingStep = 2
	require.NoError(t, s.Save(ctx, first))

	got, err := s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, got.ID)
	assert.Equal(t, "individual", got.Data.ClientProfile.ClientType)
	assert.Equal(t, 2, got.Context.OnboardingStep)

	// Saving again upserts rather than duplicating.
	first.SetStage(catalog.StageConsent, time.Now())
	require.NoError(t, s.Save(ctx, first))

	got, err = s.Get(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.StageConsent, got.Stage)

	second := model.NewSession(time.Now())
	require.NoError(t, s.Save(ctx, second))

	sessions, err := s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, sessions, 2)
}

func TestMemoryStore(t *testing.T) {
	s := NewMemory()
	require.NoError(t, s.Migrate(context.Background()))
	storeContract(t, s)
	assert.NoError(t, s.Close())
}

func TestMemoryStoreCopiesOnWrite(t *testing.T) {
	s := NewMemory()
	ctx := context.Background()

	session := model.NewSession(time.Now())
	require.NoError(t, s.Save(ctx, session))

	// Mutating the original after save must not leak into the store.
	session.Data.ClientProfile.ClientType = "corporate"

	got, err := s.Get(ctx, session.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Data.ClientProfile.ClientType)
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	require.NoError(t, s.Migrate(context.Background()))
	storeContract(t, s)
}

func TestSQLiteStoreListOrder(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.db")
	s, err := NewSQLite(path)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	ctx := context.Background()
	require.NoError(t, s.Migrate(ctx))

	older := model.NewSession(time.Now().Add(-time.Hour))
	require.NoError(t, s.Save(ctx, older))
	time.Sleep(10 * time.Millisecond)
	newer := model.NewSession(time.Now())
	require.NoError(t, s.Save(ctx, newer))

	sessions, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, newer.ID, sessions[0].ID)
}

func TestErrNotFoundIsDistinct(t *testing.T) {
	assert.False(t, errors.Is(ErrNotFound, context.Canceled))
}
