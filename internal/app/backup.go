package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/sadopc/studyflow/internal/model"
	"github.com/sadopc/studyflow/internal/state"
	"github.com/sadopc/studyflow/internal/store"
)

// ErrInvalidBackup marks an import document missing required slices or
// failing to parse. Nothing is written when it is returned.
var ErrInvalidBackup = errors.New("app: invalid backup document")

// requiredBackupKeys must all be present for an import to proceed.
var requiredBackupKeys = []string{"tasks", "settings", "streaks", "stats"}

// backupDoc is the full-state export document.
type backupDoc struct {
	Tasks        []model.Task       `json:"tasks"`
	Streaks      model.Streak       `json:"streaks"`
	Settings     model.Settings     `json:"settings"`
	Stats        model.Stats        `json:"stats"`
	Subjects     []model.Subject    `json:"subjects"`
	Resources    []model.Resource   `json:"resources"`
	Exams        []model.Exam       `json:"exams"`
	Achievements model.Achievements `json:"achievements"`
	ExportDate   time.Time          `json:"exportDate"`
}

// Export serializes the full state as a single JSON document and stamps
// the lastBackup key.
func (a *App) Export() ([]byte, error) {
	a.mu.Lock()
	snapshot := a.state.Clone()
	exportedAt := a.now()
	a.mu.Unlock()

	doc := backupDoc{
		Tasks:        snapshot.Tasks,
		Streaks:      snapshot.Streak,
		Settings:     snapshot.Settings,
		Stats:        snapshot.Stats,
		Subjects:     snapshot.Subjects,
		Resources:    snapshot.Resources,
		Exams:        snapshot.Exams,
		Achievements: snapshot.Achievements,
		ExportDate:   exportedAt,
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal backup: %w", err)
	}

	if stamp, err := json.Marshal(exportedAt); err == nil {
		if err := a.store.Set(store.KeyLastBackup, stamp); err != nil {
			a.log.Warn("stamp lastBackup failed", "error", err)
		}
	}
	return data, nil
}

// ExportToFile writes the backup document to path.
func (a *App) ExportToFile(path string) error {
	data, err := a.Export()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write backup file: %w", err)
	}
	return nil
}

// Import validates and applies a backup document, replacing the whole
// state. A document missing any of tasks, settings, streaks or stats is
// rejected with ErrInvalidBackup and no state is mutated.
func (a *App) Import(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}
	for _, key := range requiredBackupKeys {
		if _, ok := raw[key]; !ok {
			return fmt.Errorf("%w: missing %q", ErrInvalidBackup, key)
		}
	}

	var doc backupDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidBackup, err)
	}

	imported := state.State{
		Tasks:        doc.Tasks,
		Streak:       doc.Streaks,
		Settings:     doc.Settings,
		Stats:        doc.Stats,
		Subjects:     doc.Subjects,
		Resources:    doc.Resources,
		Exams:        doc.Exams,
		Achievements: doc.Achievements,
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	a.dispatch(state.ReplaceState{State: imported})
	a.reconcileLocked(a.now())
	a.log.Info("backup imported", "tasks", len(a.state.Tasks))
	return nil
}

// ImportFromFile reads and applies a backup document from path.
func (a *App) ImportFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read backup file: %w", err)
	}
	return a.Import(data)
}
