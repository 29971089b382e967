package testutil

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/shadanan/codeanim/internal/catalog"
)

func NewStore(t *testing.T) (*catalog.Store, context.Context) {
	t.Helper()
	ctx := context.Background()
	store, err := catalog.Open(ctx, filepath.Join(t.TempDir(), "codeanim-test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() {
		_ = store.Close()
	})
	if err := catalog.ApplyMigrations(ctx, store.DB()); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	return store, ctx
}
