package state

import (
	"testing"
	"time"

	"github.com/sadopc/studyflow/internal/model"
)

func completedTask(id string, completedAt time.Time, archived bool) model.Task {
	done := completedAt
	return model.Task{
		ID:          id,
		Title:       id,
		Completed:   true,
		CompletedAt: &done,
		Archived:    archived,
		Progress:    100,
		CreatedAt:   completedAt.AddDate(0, 0, -1),
	}
}

func TestSweepArchivesPastWindow(t *testing.T) {
	now := day(2024, 6, 1)
	archiveDays := 30

	s := NewState()
	s.Tasks = []model.Task{
		completedTask("old", now.AddDate(0, 0, -(archiveDays+1)), false),
		completedTask("fresh", now.AddDate(0, 0, -archiveDays), false),
	}

	s, ch := Apply(s, ArchiveOldTasks{ArchiveDays: archiveDays}, now)
	if !ch.Has(SliceTasks) {
		t.Fatal("expected tasks marked changed")
	}
	if !s.Tasks[0].Archived {
		t.Fatal("task past the archive window should be archived")
	}
	if s.Tasks[1].Archived {
		t.Fatal("task exactly at the window boundary should remain active")
	}
}

func TestSweepDeletesArchivedPastRetention(t *testing.T) {
	now := day(2024, 6, 1)
	s := NewState()
	s.Settings.TaskRetentionWeeks = 12 // 84 days

	s.Tasks = []model.Task{
		completedTask("expired", now.AddDate(0, 0, -85), true),
		completedTask("retained", now.AddDate(0, 0, -80), true),
	}

	s, _ = Apply(s, ArchiveOldTasks{ArchiveDays: 30}, now)
	if len(s.Tasks) != 1 || s.Tasks[0].ID != "retained" {
		t.Fatalf("expected only the retained task to survive, got %+v", s.Tasks)
	}
	if !s.Tasks[0].Archived {
		t.Fatal("retained task should keep its archived flag")
	}
}

func TestSweepUnarchivedTaskSurvivesRetention(t *testing.T) {
	// Deletion only applies to already-archived tasks: a long-completed
	// but never-archived task is soft-archived on this pass and becomes
	// deletable on a later one.
	now := day(2024, 6, 1)
	s := NewState()
	s.Settings.TaskRetentionWeeks = 12

	s.Tasks = []model.Task{completedTask("ancient", now.AddDate(0, 0, -200), false)}

	s, _ = Apply(s, ArchiveOldTasks{ArchiveDays: 30}, now)
	if len(s.Tasks) != 1 {
		t.Fatal("unarchived task must not be hard-deleted in the same pass")
	}
	if !s.Tasks[0].Archived {
		t.Fatal("task should be soft-archived")
	}

	s, _ = Apply(s, ArchiveOldTasks{ArchiveDays: 30}, now)
	if len(s.Tasks) != 0 {
		t.Fatal("archived task past retention should be deleted on the next pass")
	}
}

func TestSweepIgnoresIncompleteTasks(t *testing.T) {
	now := day(2024, 6, 1)
	s := NewState()
	s.Tasks = []model.Task{{
		ID: "wip", Title: "wip", CreatedAt: now.AddDate(0, 0, -400),
	}}

	s, ch := Apply(s, ArchiveOldTasks{ArchiveDays: 30}, now)
	if len(ch) != 0 {
		t.Fatalf("incomplete task should be untouched, got changes %v", ch)
	}
	if len(s.Tasks) != 1 || s.Tasks[0].Archived {
		t.Fatal("incomplete task must never be archived or deleted")
	}
}

func TestActiveTasksFiltersArchived(t *testing.T) {
	tasks := []model.Task{
		{ID: "a"},
		{ID: "b", Archived: true},
		{ID: "c"},
	}
	active := ActiveTasks(tasks)
	if len(active) != 2 || active[0].ID != "a" || active[1].ID != "c" {
		t.Fatalf("unexpected active set: %+v", active)
	}
}
