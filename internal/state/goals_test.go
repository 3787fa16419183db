package state

import (
	"testing"
	"time"

	"github.com/sadopc/studyflow/internal/dateutil"
)

func TestReconcileInitializesWeekStart(t *testing.T) {
	now := day(2024, 1, 3) // Wednesday
	s := NewState()
	s, ch := ReconcileGoals(s, now)

	if !ch.Has(SliceStats) {
		t.Fatal("expected stats marked changed")
	}
	if s.Stats.WeekStartDate == nil {
		t.Fatal("weekStartDate not initialized")
	}
	want := time.Date(2023, 12, 31, 0, 0, 0, 0, time.Local) // most recent Sunday
	if !s.Stats.WeekStartDate.Equal(want) {
		t.Fatalf("expected weekStartDate %v, got %v", want, *s.Stats.WeekStartDate)
	}
	if s.Stats.WeekStartDate.Weekday() != time.Sunday {
		t.Fatalf("weekStartDate must be a Sunday, got %v", s.Stats.WeekStartDate.Weekday())
	}
}

func TestReconcileRecomputesDailyAndWeekly(t *testing.T) {
	now := day(2024, 1, 3)
	s := NewState()
	s, _ = Apply(s, RecordStudySession{Minutes: 30}, day(2024, 1, 1))
	s, _ = Apply(s, RecordStudySession{Minutes: 20}, day(2024, 1, 3))

	// Seed drifted counters: reconciliation must rebuild them from
	// studyDays.
	s.Stats.GoalProgress.DailyStudyTime = 999
	s.Stats.GoalProgress.WeeklyStudyTime = 999

	s, _ = ReconcileGoals(s, now)
	gp := s.Stats.GoalProgress
	if gp.DailyStudyTime != 20 {
		t.Fatalf("expected daily=20 from studyDays, got %d", gp.DailyStudyTime)
	}
	if gp.WeeklyStudyTime != 50 {
		t.Fatalf("expected weekly=50 (both days this week), got %d", gp.WeeklyStudyTime)
	}
}

func TestReconcileWeekRollover(t *testing.T) {
	s := NewState()
	s, _ = Apply(s, RecordStudySession{Minutes: 30}, day(2024, 1, 3))
	s, _ = ReconcileGoals(s, day(2024, 1, 3))
	s.Stats.GoalProgress.WeeklyTasksCompleted = 4

	// 8 days after the Dec 31 week start: a new week began Jan 7.
	now := day(2024, 1, 8) // Monday
	s, _ = ReconcileGoals(s, now)

	want := time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local)
	if s.Stats.WeekStartDate == nil || !s.Stats.WeekStartDate.Equal(want) {
		t.Fatalf("expected rolled-over weekStartDate %v, got %v", want, s.Stats.WeekStartDate)
	}
	if s.Stats.GoalProgress.WeeklyTasksCompleted != 0 {
		t.Fatalf("weekly task counter should reset, got %d", s.Stats.GoalProgress.WeeklyTasksCompleted)
	}
	if s.Stats.WeeklyStudyTime != [7]int{} {
		t.Fatalf("weekday histogram should reset, got %v", s.Stats.WeeklyStudyTime)
	}
	// The Jan 3 session belongs to the old week.
	if s.Stats.GoalProgress.WeeklyStudyTime != 0 {
		t.Fatalf("expected weekly=0 after rollover, got %d", s.Stats.GoalProgress.WeeklyStudyTime)
	}
	// Daily-scoped counters survive.
	if s.Streak.StudyDays["2024-01-03"] != 30 {
		t.Fatal("studyDays must be preserved across rollover")
	}
	if s.Stats.DailySessionCount["2024-01-03"] != 1 {
		t.Fatal("dailySessionCount must be preserved across rollover")
	}
}

func TestReconcileWithinWeekKeepsWeekStart(t *testing.T) {
	s := NewState()
	s, _ = ReconcileGoals(s, day(2024, 1, 3))
	first := *s.Stats.WeekStartDate

	s, _ = ReconcileGoals(s, day(2024, 1, 6)) // Saturday, same week
	if !s.Stats.WeekStartDate.Equal(first) {
		t.Fatalf("weekStartDate moved within the week: %v -> %v", first, *s.Stats.WeekStartDate)
	}
}

func TestMostRecentSundayOnSunday(t *testing.T) {
	sunday := time.Date(2024, 1, 7, 15, 4, 0, 0, time.Local)
	got := dateutil.MostRecentSunday(sunday)
	want := time.Date(2024, 1, 7, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}
