package valkey_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/samirrijal/ecoaldeas/internal/adapters/valkey"
	"github.com/samirrijal/ecoaldeas/internal/core/domain"
)

type fakeCache struct {
	data   map[string][]byte
	ttls   map[string]int
	getErr error
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: map[string][]byte{}, ttls: map[string]int{}}
}

func (f *fakeCache) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	b, ok := f.data[key]
	if !ok {
		return nil, valkey.ErrCacheMiss
	}
	return b, nil
}

func (f *fakeCache) Set(ctx context.Context, key string, value []byte, ttlSeconds int) error {
	f.data[key] = value
	f.ttls[key] = ttlSeconds
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	delete(f.data, key)
	return nil
}

func TestSelectionStore_MissIsZero(t *testing.T) {
	s := valkey.NewSelectionStore(newFakeCache(), time.Hour)
	sel, err := s.Load(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Index)
}

func TestSelectionStore_RoundTripWithTTL(t *testing.T) {
	cache := newFakeCache()
	s := valkey.NewSelectionStore(cache, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "sid", domain.Selection{Index: 6}))
	assert.Equal(t, 1800, cache.ttls["ecoaldeas:selection:sid"])

	sel, err := s.Load(ctx, "sid")
	require.NoError(t, err)
	assert.Equal(t, 6, sel.Index)
}

func TestSelectionStore_BackendError(t *testing.T) {
	cache := newFakeCache()
	cache.getErr = errors.New("connection refused")
	s := valkey.NewSelectionStore(cache, time.Hour)

	_, err := s.Load(context.Background(), "sid")
	assert.Error(t, err)
}

func TestSelectionStore_UnreadableEntryIsDropped(t *testing.T) {
	cache := newFakeCache()
	cache.data["ecoaldeas:selection:sid"] = []byte("{not json")
	s := valkey.NewSelectionStore(cache, time.Hour)

	sel, err := s.Load(context.Background(), "sid")
	require.NoError(t, err)
	assert.Equal(t, 0, sel.Index)
	assert.NotContains(t, cache.data, "ecoaldeas:selection:sid")
}
