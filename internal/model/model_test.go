package model

import (
	"testing"
	"time"
)

func TestAppendHistoryEvictsOldest(t *testing.T) {
	var h []ChangeRecord
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)

	for i := 0; i < HistoryCapacity+3; i++ {
		h = AppendHistory(h, ChangeRecord{Timestamp: base.Add(time.Duration(i) * time.Hour), Changes: "progress"})
	}
	if len(h) != HistoryCapacity {
		t.Fatalf("expected %d entries, got %d", HistoryCapacity, len(h))
	}
	// The 3 oldest entries are gone; the first survivor is entry #3.
	if !h[0].Timestamp.Equal(base.Add(3 * time.Hour)) {
		t.Fatalf("unexpected oldest entry: %v", h[0].Timestamp)
	}
	if !h[len(h)-1].Timestamp.Equal(base.Add(time.Duration(HistoryCapacity+2) * time.Hour)) {
		t.Fatalf("unexpected newest entry: %v", h[len(h)-1].Timestamp)
	}
}

func TestTaskPatchValidate(t *testing.T) {
	bad := 101
	neg := -1
	ok := 100
	empty := ""
	prio := Priority("urgent")

	tests := []struct {
		name    string
		patch   TaskPatch
		wantErr bool
	}{
		{"empty patch", TaskPatch{}, false},
		{"valid progress", TaskPatch{Progress: &ok}, false},
		{"progress above range", TaskPatch{Progress: &bad}, true},
		{"negative progress", TaskPatch{Progress: &neg}, true},
		{"blank title", TaskPatch{Title: &empty}, true},
		{"bogus priority", TaskPatch{Priority: &prio}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.patch.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestTaskPatchTouchesTracked(t *testing.T) {
	title := "x"
	done := true
	if (TaskPatch{Title: &title}).TouchesTracked() {
		t.Fatal("title is not a tracked field")
	}
	if !(TaskPatch{Completed: &done}).TouchesTracked() {
		t.Fatal("completed is tracked")
	}
}

func TestSettingsPatchMergeLeavesOthers(t *testing.T) {
	base := DefaultSettings()
	weeks := 4
	merged := SettingsPatch{TaskRetentionWeeks: &weeks}.Merge(base)

	if merged.TaskRetentionWeeks != 4 {
		t.Fatalf("patch field not applied: %d", merged.TaskRetentionWeeks)
	}
	if merged.ArchiveDays != base.ArchiveDays || merged.DailyGoalMinutes != base.DailyGoalMinutes {
		t.Fatal("unrelated settings changed")
	}
}

func TestPriorityValidation(t *testing.T) {
	for _, p := range []Priority{PriorityLow, PriorityMedium, PriorityHigh} {
		if !p.IsValid() {
			t.Fatalf("%q should be valid", p)
		}
	}
	if Priority("critical").IsValid() {
		t.Fatal("unknown priority accepted")
	}
}

func TestStreakTotalMinutes(t *testing.T) {
	s := Streak{StudyDays: map[string]int{"2024-01-01": 30, "2024-01-02": 45}}
	if got := s.TotalMinutes(); got != 75 {
		t.Fatalf("expected 75, got %d", got)
	}
	if (Streak{}).TotalMinutes() != 0 {
		t.Fatal("empty streak should total 0")
	}
}

func TestAchievementsIsUnlocked(t *testing.T) {
	a := NewAchievements()
	if a.IsUnlocked("streak_3") {
		t.Fatal("fresh registry has no unlocks")
	}
	a.Unlocked = append(a.Unlocked, "streak_3")
	if !a.IsUnlocked("streak_3") {
		t.Fatal("expected unlocked")
	}
}
