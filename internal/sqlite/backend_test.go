// Tests for SQLite backend lifecycle.
package sqlite

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pentarix1996/D-DMaker/pkg/types"
)

func TestBackend_Attach(t *testing.T) {
	tmpDir := t.TempDir()

	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	err := b.Attach(config)
	if err != nil {
		t.Fatalf("Attach failed: %v", err)
	}

	// Verify database file created
	dbPath := filepath.Join(tmpDir, dbFileName)
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		t.Error("database file not created")
	}

	// Verify double attach fails
	err = b.Attach(config)
	if err != types.ErrAlreadyAttached {
		t.Errorf("expected ErrAlreadyAttached, got %v", err)
	}

	b.Detach()
}

func TestBackend_AttachRejectsBadConfig(t *testing.T) {
	b := NewBackend()
	err := b.Attach(types.Config{Backend: "papyrus", DataDir: t.TempDir()})
	if err != types.ErrBackendUnknown {
		t.Fatalf("expected ErrBackendUnknown, got %v", err)
	}
}

func TestBackend_Detach(t *testing.T) {
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}

	b.Attach(config)

	err := b.Detach()
	if err != nil {
		t.Fatalf("Detach failed: %v", err)
	}

	// Verify idempotent
	err = b.Detach()
	if err != nil {
		t.Errorf("second Detach should not error, got %v", err)
	}

	// Verify operations fail after detach
	_, err = b.GetTable(types.StoriesTable)
	if err != types.ErrStoreDetached {
		t.Errorf("expected ErrStoreDetached, got %v", err)
	}
}

func TestBackend_GetTable(t *testing.T) {
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	b.Attach(config)
	defer b.Detach()

	for _, name := range types.StandardTableNames {
		if _, err := b.GetTable(name); err != nil {
			t.Errorf("GetTable(%s) failed: %v", name, err)
		}
	}

	if _, err := b.GetTable("grimoire"); err != types.ErrTableNotFound {
		t.Errorf("expected ErrTableNotFound, got %v", err)
	}
}

func TestBackend_DataSurvivesReattach(t *testing.T) {
	tmpDir := t.TempDir()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: tmpDir,
	}

	b := NewBackend()
	if err := b.Attach(config); err != nil {
		t.Fatal(err)
	}

	table, err := b.GetTable(types.StoriesTable)
	if err != nil {
		t.Fatal(err)
	}
	id, err := table.Set("", types.NewStory("Persistent Chronicle", types.ThemeFantasy))
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Detach(); err != nil {
		t.Fatal(err)
	}

	// A fresh backend on the same data directory sees the story.
	b2 := NewBackend()
	if err := b2.Attach(config); err != nil {
		t.Fatal(err)
	}
	defer b2.Detach()

	table2, err := b2.GetTable(types.StoriesTable)
	if err != nil {
		t.Fatal(err)
	}
	entity, err := table2.Get(id)
	if err != nil {
		t.Fatalf("story did not survive reattach: %v", err)
	}
	if entity.(*types.Story).Name != "Persistent Chronicle" {
		t.Fatalf("unexpected story %+v", entity)
	}
}

func TestBackend_TableHandleAfterDetach(t *testing.T) {
	b := NewBackend()
	config := types.Config{
		Backend: types.BackendSQLite,
		DataDir: t.TempDir(),
	}
	if err := b.Attach(config); err != nil {
		t.Fatal(err)
	}

	tables := make(map[string]types.Table, len(types.StandardTableNames))
	for _, name := range types.StandardTableNames {
		table, err := b.GetTable(name)
		if err != nil {
			t.Fatalf("GetTable(%s) failed: %v", name, err)
		}
		tables[name] = table
	}

	if err := b.Detach(); err != nil {
		t.Fatal(err)
	}

	// Handles obtained before Detach must report the detached store
	// instead of dereferencing the closed connection.
	for name, table := range tables {
		if _, err := table.Get("some-id"); err != types.ErrStoreDetached {
			t.Errorf("%s.Get after Detach: expected ErrStoreDetached, got %v", name, err)
		}
		if _, err := table.Set("some-id", nil); err != types.ErrStoreDetached {
			t.Errorf("%s.Set after Detach: expected ErrStoreDetached, got %v", name, err)
		}
		if err := table.Delete("some-id"); err != types.ErrStoreDetached {
			t.Errorf("%s.Delete after Detach: expected ErrStoreDetached, got %v", name, err)
		}
		if _, err := table.Fetch(nil); err != types.ErrStoreDetached {
			t.Errorf("%s.Fetch after Detach: expected ErrStoreDetached, got %v", name, err)
		}
	}
}
