package app

import (
	"encoding/json"

	"github.com/sadopc/studyflow/internal/state"
	"github.com/sadopc/studyflow/internal/store"
)

// Load rehydrates the in-memory state from the store. Every key loads
// in its own isolated unit: a missing or corrupt key logs a warning and
// keeps that slice's default, it never aborts the rest of the load.
// Store contents win over unflushed in-memory changes (last completed
// write wins), so pending debounced writes are flushed first.
func (a *App) Load() {
	a.writer.Flush()

	a.mu.Lock()
	defer a.mu.Unlock()

	fresh := state.NewState()
	loadKey(a, store.KeyTasks, &fresh.Tasks)
	loadKey(a, store.KeyStreaks, &fresh.Streak)
	loadKey(a, store.KeySettings, &fresh.Settings)
	loadKey(a, store.KeyStats, &fresh.Stats)
	loadKey(a, store.KeySubjects, &fresh.Subjects)
	loadKey(a, store.KeyResources, &fresh.Resources)
	loadKey(a, store.KeyExams, &fresh.Exams)
	loadKey(a, store.KeyAchievements, &fresh.Achievements)

	// Clone re-establishes non-nil maps for slices whose stored JSON
	// omitted them.
	a.state = fresh.Clone()
}

// loadKey reads one key into dst, keeping dst's current (default)
// value on a missing key, a read failure or corrupt JSON. Decoding
// goes through a scratch copy so a partial unmarshal never leaks into
// the state.
func loadKey[T any](a *App, key string, dst *T) {
	raw, err := a.store.Get(key)
	if err != nil {
		a.log.Warn("load failed, using defaults", "key", key, "error", err)
		return
	}
	if raw == nil {
		return
	}
	v := *dst
	if err := json.Unmarshal(raw, &v); err != nil {
		a.log.Warn("corrupt slice, using defaults", "key", key, "error", err)
		return
	}
	*dst = v
}
