package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNew_CreatesTables(t *testing.T) {
	db := newTestDB(t)

	ctx := context.Background()
	rows, err := db.db.QueryContext(ctx,
		"SELECT name FROM sqlite_master WHERE type='table' AND name NOT LIKE 'sqlite_%' ORDER BY name")
	if err != nil {
		t.Fatalf("query sqlite_master error: %v", err)
	}
	defer rows.Close()

	var tables []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			t.Fatalf("scan error: %v", err)
		}
		tables = append(tables, name)
	}
	if diff := cmp.Diff([]string{"accounts", "app_state"}, tables); diff != "" {
		t.Errorf("tables mismatch (-want +got):\n%s", diff)
	}
}

func TestMigrate_RecordsVersion(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	v, err := db.schemaVersion(ctx)
	if err != nil {
		t.Fatalf("schemaVersion() error: %v", err)
	}
	if v != len(migrations) {
		t.Errorf("schemaVersion() = %d, want %d", v, len(migrations))
	}

	if err := db.migrate(ctx); err != nil {
		t.Fatalf("second migrate() error: %v", err)
	}
	if v, _ := db.schemaVersion(ctx); v != len(migrations) {
		t.Errorf("schemaVersion() after rerun = %d, want %d", v, len(migrations))
	}
}

func TestNew_ReopenKeepsData(t *testing.T) {
	path := filepath.Join(t.TempDir(), "termlanes.db")
	ctx := context.Background()

	db, err := New(path)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if err := db.SetActiveAccount(ctx, 42); err != nil {
		t.Fatalf("SetActiveAccount() error: %v", err)
	}
	db.Close()

	db, err = New(path)
	if err != nil {
		t.Fatalf("reopen error: %v", err)
	}
	defer db.Close()
	got, err := db.GetActiveAccount(ctx)
	if err != nil {
		t.Fatalf("GetActiveAccount() error: %v", err)
	}
	if got != 42 {
		t.Errorf("GetActiveAccount() = %d, want 42", got)
	}
}
