package store

import (
	"encoding/json"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewMemory()
	if err != nil {
		t.Fatalf("new memory store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ============================================================
// Store initialization
// ============================================================

func TestNewMemory(t *testing.T) {
	s, err := NewMemory()
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	// Should have run migration v1
	var version int
	s.db.QueryRow("PRAGMA user_version").Scan(&version)
	if version != 1 {
		t.Fatalf("expected user_version 1, got %d", version)
	}
}

func TestNewWithPath(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/sub/studyflow.db"
	s, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Set("tasks", json.RawMessage(`[]`)); err != nil {
		t.Fatal(err)
	}
	s.Close()

	// Reopen — data survives and migration does not rerun destructively.
	s2, err := New(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s2.Close()
	raw, err := s2.Get("tasks")
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `[]` {
		t.Fatalf("expected persisted value, got %q", raw)
	}
}

func TestDefaultDBPath(t *testing.T) {
	path, err := DefaultDBPath()
	if err != nil {
		t.Fatal(err)
	}
	if path == "" {
		t.Fatal("empty path")
	}
}

func TestMigrationIdempotent(t *testing.T) {
	s := newTestStore(t)
	if err := s.migrate(); err != nil {
		t.Fatalf("second migration failed: %v", err)
	}
}

// ============================================================
// Get / Set / Delete
// ============================================================

func TestGetMissingKey(t *testing.T) {
	s := newTestStore(t)
	raw, err := s.Get("never-written")
	if err != nil {
		t.Fatal(err)
	}
	if raw != nil {
		t.Fatalf("expected nil for missing key, got %q", raw)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := newTestStore(t)
	if err := s.Set("settings", json.RawMessage(`{"a":1}`)); err != nil {
		t.Fatal(err)
	}
	if err := s.Set("settings", json.RawMessage(`{"a":2}`)); err != nil {
		t.Fatal(err)
	}
	raw, err := s.Get("settings")
	if err != nil {
		t.Fatal(err)
	}
	if string(raw) != `{"a":2}` {
		t.Fatalf("expected newest value, got %q", raw)
	}
}

func TestKeysAreIndependent(t *testing.T) {
	s := newTestStore(t)
	s.Set("tasks", json.RawMessage(`[{"id":"t1"}]`))
	s.Set("streaks", json.RawMessage(`{"current":2}`))

	if err := s.Delete("tasks"); err != nil {
		t.Fatal(err)
	}
	raw, _ := s.Get("tasks")
	if raw != nil {
		t.Fatal("deleted key should be gone")
	}
	raw, _ = s.Get("streaks")
	if string(raw) != `{"current":2}` {
		t.Fatal("unrelated key affected by delete")
	}
}

func TestDeleteMissingKey(t *testing.T) {
	s := newTestStore(t)
	if err := s.Delete("ghost"); err != nil {
		t.Fatalf("deleting a missing key should not error: %v", err)
	}
}

func TestKeysPrefix(t *testing.T) {
	s := newTestStore(t)
	s.Set(SessionsKey("2024-01-01"), json.RawMessage(`[]`))
	s.Set(SessionsKey("2024-01-02"), json.RawMessage(`[]`))
	s.Set(SessionMarkerKey("2024-01-01"), json.RawMessage(`{"count":1}`))
	s.Set("tasks", json.RawMessage(`[]`))

	keys, err := s.Keys("sessions_")
	if err != nil {
		t.Fatal(err)
	}
	if len(keys) != 2 || keys[0] != "sessions_2024-01-01" || keys[1] != "sessions_2024-01-02" {
		t.Fatalf("unexpected keys: %v", keys)
	}

	all, err := s.Keys("")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 4 {
		t.Fatalf("expected 4 keys total, got %d: %v", len(all), all)
	}
}

func TestDerivedKeyNames(t *testing.T) {
	if SessionsKey("2024-01-05") != "sessions_2024-01-05" {
		t.Fatal("unexpected sessions key")
	}
	if SessionMarkerKey("2024-01-05") != "timer_sessions_2024-01-05" {
		t.Fatal("unexpected marker key")
	}
}
