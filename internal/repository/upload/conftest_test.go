package upload

import (
	"context"
	"testing"
	"time"

	"github.com/kailas-cloud/pagehighlight/internal/db"
	domupload "github.com/kailas-cloud/pagehighlight/internal/domain/upload"
)

const testPrefix = "ph:"

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn      func(ctx context.Context, key string) ([]byte, error)
	setMultiFn func(ctx context.Context, items []db.KVItem, ttl time.Duration) error
	delFn      func(ctx context.Context, keys ...string) error
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) SetMulti(ctx context.Context, items []db.KVItem, ttl time.Duration) error {
	if m.setMultiFn != nil {
		return m.setMultiFn(ctx, items, ttl)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, keys ...string) error {
	if m.delFn != nil {
		return m.delFn(ctx, keys...)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, testPrefix, time.Hour), ms
}

func testUpload(t *testing.T) domupload.Upload {
	t.Helper()
	u, err := domupload.New("abc-123", "scan.pdf", "scan.json", "red fox", 4, 13, 1700000000000)
	if err != nil {
		t.Fatalf("new upload: %v", err)
	}
	return u
}
