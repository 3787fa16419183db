package store

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// DefaultFlushDelay is the quiet period after the last enqueue before a
// batch is written.
const DefaultFlushDelay = 500 * time.Millisecond

// Writer coalesces rapid successive writes into batches. Enqueue
// replaces any pending value for the same key and re-arms a single
// flush timer; after the quiet period the whole batch is written, each
// key in its own isolated unit so one failing key never blocks the
// rest. Close flushes eagerly.
type Writer struct {
	store *Store
	delay time.Duration
	log   *slog.Logger

	mu      sync.Mutex
	pending map[string]json.RawMessage
	timer   *time.Timer
	seq     uint64 // invalidates stale timer fires
	closed  bool
}

func NewWriter(s *Store, delay time.Duration, log *slog.Logger) *Writer {
	if delay <= 0 {
		delay = DefaultFlushDelay
	}
	if log == nil {
		log = slog.Default()
	}
	return &Writer{
		store:   s,
		delay:   delay,
		log:     log.With("component", "store.writer"),
		pending: make(map[string]json.RawMessage),
	}
}

// Enqueue schedules value to be written under key after the quiet
// period. A newer value for the same key supersedes the pending one.
func (w *Writer) Enqueue(key string, value json.RawMessage) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		// Late enqueue after shutdown: write through immediately
		// rather than dropping the update.
		if err := w.store.Set(key, value); err != nil {
			w.log.Warn("write after close failed", "key", key, "error", err)
		}
		return
	}

	w.pending[key] = value

	if w.timer != nil {
		w.timer.Stop()
	}
	w.seq++
	seq := w.seq
	w.timer = time.AfterFunc(w.delay, func() {
		w.mu.Lock()
		if w.seq != seq {
			w.mu.Unlock()
			return
		}
		w.timer = nil
		batch := w.takeBatchLocked()
		w.mu.Unlock()
		w.writeBatch(batch)
	})
}

// Flush writes all pending values immediately.
func (w *Writer) Flush() {
	w.mu.Lock()
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.seq++
	batch := w.takeBatchLocked()
	w.mu.Unlock()
	w.writeBatch(batch)
}

// Close flushes pending writes and puts the writer in write-through
// mode. Safe to call more than once.
func (w *Writer) Close() {
	w.mu.Lock()
	w.closed = true
	if w.timer != nil {
		w.timer.Stop()
		w.timer = nil
	}
	w.seq++
	batch := w.takeBatchLocked()
	w.mu.Unlock()
	w.writeBatch(batch)
}

// Pending reports how many keys are waiting for the next flush.
func (w *Writer) Pending() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.pending)
}

func (w *Writer) takeBatchLocked() map[string]json.RawMessage {
	if len(w.pending) == 0 {
		return nil
	}
	batch := w.pending
	w.pending = make(map[string]json.RawMessage)
	return batch
}

func (w *Writer) writeBatch(batch map[string]json.RawMessage) {
	for key, value := range batch {
		if err := w.store.Set(key, value); err != nil {
			// Per-key failures degrade silently; the in-memory state
			// stays authoritative for the session.
			w.log.Warn("flush failed", "key", key, "error", err)
		}
	}
}
