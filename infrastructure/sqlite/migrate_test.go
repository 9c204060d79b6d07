package sqlite

import (
	"context"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uptrace/bun"
)

func countTables(t *testing.T, db *DB, name string) int64 {
	t.Helper()
	var count int64
	err := db.WithReadTx(context.Background(), func(ctx context.Context, tx bun.Tx) error {
		return tx.NewRaw(
			`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name,
		).Scan(ctx, &count)
	})
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	return count
}

func TestApplyEmbeddedMigrations(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "embedded.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	if err := ApplyEmbeddedMigrations(context.Background(), db); err != nil {
		t.Fatalf("apply embedded migrations: %v", err)
	}

	for _, table := range []string{"products", "audit_logs"} {
		if got := countTables(t, db, table); got != 1 {
			t.Fatalf("expected %s table after embedded migrations, got %d", table, got)
		}
	}
}

func TestApplyMigrationsFromDirIsRepeatable(t *testing.T) {
	db, err := OpenDB(filepath.Join(t.TempDir(), "dir.db"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Close()
	})

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("runtime caller unavailable")
	}
	dir := filepath.Join(filepath.Dir(file), "migrations")
	for i := 0; i < 2; i++ {
		if err := ApplyMigrations(context.Background(), db, dir); err != nil {
			t.Fatalf("apply migrations run %d: %v", i+1, err)
		}
	}
	if got := countTables(t, db, "products"); got != 1 {
		t.Fatalf("expected products table, got %d", got)
	}
}

func TestOpenDBRequiresPath(t *testing.T) {
	if _, err := OpenDB("  "); err == nil {
		t.Fatalf("expected error for empty path")
	}
}
