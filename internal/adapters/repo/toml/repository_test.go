package toml

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/bnema/container-portal-cli/internal/domain"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

func newTestStore(t *testing.T) (*IdentityStore, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "session.toml")
	store, err := NewIdentityStore(path, fixedClock{now: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)})
	require.NoError(t, err)

	return store, path
}

func TestIdentityStoreRoundTrip(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)

	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)

	require.NoError(t, store.Set(context.Background(), "123"))

	id, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ClientID("123"), id)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var file sessionSchema
	require.NoError(t, toml.Unmarshal(data, &file))
	assert.Equal(t, sessionSchema{Version: 1, ClientID: "123", SavedAt: "2026-03-14T09:30:00Z"}, file)

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestIdentityStoreOverwrite(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	require.NoError(t, store.Set(context.Background(), "123"))
	require.NoError(t, store.Set(context.Background(), "456"))

	id, err := store.Get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ClientID("456"), id)
}

func TestIdentityStoreClear(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)
	require.NoError(t, store.Clear(context.Background()))

	require.NoError(t, store.Set(context.Background(), "123"))
	require.NoError(t, store.Clear(context.Background()))

	_, err := os.Stat(path)
	assert.ErrorIs(t, err, os.ErrNotExist)

	_, err = store.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestIdentityStoreRejectsEmptyID(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	assert.ErrorIs(t, store.Set(context.Background(), "  "), domain.ErrEmptyClientID)
}

func TestIdentityStoreBlankFileIsEmpty(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("version = 1\nclient_id = ''\n"), 0o600))

	_, err := store.Get(context.Background())
	assert.ErrorIs(t, err, domain.ErrIdentityNotFound)
}

func TestIdentityStoreRejectsNewerSchema(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("version = 2\nclient_id = '123'\n"), 0o600))

	_, err := store.Get(context.Background())
	assert.ErrorContains(t, err, "unsupported session schema version 2")
}

func TestIdentityStoreRejectsCorruptFile(t *testing.T) {
	t.Parallel()

	store, path := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o700))
	require.NoError(t, os.WriteFile(path, []byte("client_id = ["), 0o600))

	_, err := store.Get(context.Background())
	assert.ErrorContains(t, err, "decode session file")
}

func TestIdentityStoreCanceledContext(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "123"), context.Canceled)
	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, store.Clear(ctx), context.Canceled)
}

func TestIdentityStoresShareLockPerPath(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "session.toml")
	first, err := NewIdentityStore(path, nil)
	require.NoError(t, err)
	second, err := NewIdentityStore(filepath.Join(filepath.Dir(path), ".", "session.toml"), nil)
	require.NoError(t, err)
	assert.Same(t, first.mu, second.mu)

	var wg sync.WaitGroup
	for i, store := range []*IdentityStore{first, second, first, second} {
		wg.Add(1)
		go func(i int, store *IdentityStore) {
			defer wg.Done()
			assert.NoError(t, store.Set(context.Background(), domain.ClientID([]string{"1", "2", "3", "4"}[i])))
		}(i, store)
	}
	wg.Wait()

	id, err := first.Get(context.Background())
	require.NoError(t, err)
	assert.Contains(t, []domain.ClientID{"1", "2", "3", "4"}, id)

	matches, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".session-*.toml.tmp"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestNewIdentityStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewIdentityStore(" ", nil)
	assert.Error(t, err)
}
