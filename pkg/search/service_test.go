package search

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/platinummonkey/quill/pkg/observability"
)

// fakeIDSource serves a mutable id set and counts queries
type fakeIDSource struct {
	ids   []int64
	err   error
	calls int
}

func (f *fakeIDSource) SearchPublishedIDs(_ context.Context, _ string) ([]int64, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.ids, nil
}

// failingCache errors on every operation
type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]int64, bool, error) {
	return nil, false, errors.New("cache down")
}
func (failingCache) Put(context.Context, string, []int64) error {
	return errors.New("cache down")
}
func (failingCache) Backend() string { return "failing" }

func testLogger() *observability.Logger {
	return observability.NewLogger(observability.ErrorLevel, io.Discard)
}

func TestSearch_HitSkipsStore(t *testing.T) {
	source := &fakeIDSource{ids: []int64{1, 2}}
	svc := NewService(source, NewLocalCache(16, time.Hour), nil, testLogger())
	ctx := context.Background()

	first, err := svc.Search(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, first)
	assert.Equal(t, 1, source.calls)

	// A new matching post appears, but the entry is still live: the cached
	// set wins until expiry.
	source.ids = []int64{1, 2, 3}
	second, err := svc.Search(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, second, "stale cached ids within TTL")
	assert.Equal(t, 1, source.calls, "hit must not touch the store")
}

func TestSearch_RecomputesAfterExpiry(t *testing.T) {
	source := &fakeIDSource{ids: []int64{1}}
	svc := NewService(source, NewLocalCache(16, 30*time.Millisecond), nil, testLogger())
	ctx := context.Background()

	_, err := svc.Search(ctx, "Hello")
	require.NoError(t, err)

	source.ids = []int64{1, 9}
	time.Sleep(80 * time.Millisecond)

	ids, err := svc.Search(ctx, "Hello")
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 9}, ids, "expired entry recomputed")
	assert.Equal(t, 2, source.calls)
}

func TestSearch_KeysAreCaseSensitive(t *testing.T) {
	source := &fakeIDSource{ids: []int64{1}}
	svc := NewService(source, NewLocalCache(16, time.Hour), nil, testLogger())
	ctx := context.Background()

	_, err := svc.Search(ctx, "Hello")
	require.NoError(t, err)
	_, err = svc.Search(ctx, "hello")
	require.NoError(t, err)

	assert.Equal(t, 2, source.calls, "differently-cased queries are distinct keys")
}

func TestSearch_CacheFailureDegradesToStore(t *testing.T) {
	source := &fakeIDSource{ids: []int64{4}}
	svc := NewService(source, failingCache{}, nil, testLogger())

	ids, err := svc.Search(context.Background(), "Hello")
	require.NoError(t, err, "cache failures must not surface")
	assert.Equal(t, []int64{4}, ids)
	assert.Equal(t, 1, source.calls)
}

func TestSearch_StoreErrorSurfaces(t *testing.T) {
	source := &fakeIDSource{err: errors.New("db down")}
	svc := NewService(source, NewLocalCache(16, time.Hour), nil, testLogger())

	_, err := svc.Search(context.Background(), "Hello")
	assert.Error(t, err)
}
