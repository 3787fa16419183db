// Package state implements the pure domain reducer: a state-transition
// function over the named collections (tasks, streak, settings, stats,
// subjects, resources, exams, achievements) given a typed action, plus
// the derived-metric routines invoked from actions and reconciliation.
package state

import (
	"maps"

	"github.com/sadopc/studyflow/internal/model"
)

// Slice names a persisted collection. The values double as store keys.
type Slice string

const (
	SliceTasks        Slice = "tasks"
	SliceStreaks      Slice = "streaks"
	SliceSettings     Slice = "settings"
	SliceStats        Slice = "stats"
	SliceSubjects     Slice = "subjects"
	SliceResources    Slice = "resources"
	SliceExams        Slice = "exams"
	SliceAchievements Slice = "achievements"
)

// AllSlices lists every persisted collection, in store-key order.
var AllSlices = []Slice{
	SliceTasks, SliceStreaks, SliceSettings, SliceStats,
	SliceSubjects, SliceResources, SliceExams, SliceAchievements,
}

// ChangeSet records which slices an action touched, so the persistence
// layer only writes what changed.
type ChangeSet map[Slice]bool

func (c ChangeSet) Mark(slices ...Slice) {
	for _, s := range slices {
		c[s] = true
	}
}

func (c ChangeSet) Has(s Slice) bool { return c[s] }

// Merge folds other into c.
func (c ChangeSet) Merge(other ChangeSet) {
	for s := range other {
		c[s] = true
	}
}

// State is the full in-memory application state. It is a value type:
// the reducer never mutates its input, it works on a Clone.
type State struct {
	Tasks        []model.Task
	Streak       model.Streak
	Settings     model.Settings
	Stats        model.Stats
	Subjects     []model.Subject
	Resources    []model.Resource
	Exams        []model.Exam
	Achievements model.Achievements
}

// NewState returns the default state used before any stored data is
// loaded, and as the per-slice fallback when a stored key is corrupt.
func NewState() State {
	return State{
		Streak:       model.NewStreak(),
		Settings:     model.DefaultSettings(),
		Stats:        model.NewStats(),
		Achievements: model.NewAchievements(),
	}
}

// Clone deep-copies the state: slices, maps and task histories are all
// duplicated so mutations on the copy never alias the original.
func (s State) Clone() State {
	out := s

	out.Tasks = make([]model.Task, len(s.Tasks))
	for i, t := range s.Tasks {
		t.History = append([]model.ChangeRecord(nil), t.History...)
		out.Tasks[i] = t
	}

	out.Streak.StudyDays = maps.Clone(s.Streak.StudyDays)
	if out.Streak.StudyDays == nil {
		out.Streak.StudyDays = make(map[string]int)
	}

	out.Settings.EnabledFilters = append([]string(nil), s.Settings.EnabledFilters...)

	out.Stats.SubjectDistribution = maps.Clone(s.Stats.SubjectDistribution)
	if out.Stats.SubjectDistribution == nil {
		out.Stats.SubjectDistribution = make(map[string]int)
	}
	out.Stats.ProductivityByHour = maps.Clone(s.Stats.ProductivityByHour)
	if out.Stats.ProductivityByHour == nil {
		out.Stats.ProductivityByHour = make(map[int]int)
	}
	out.Stats.DailySessionCount = maps.Clone(s.Stats.DailySessionCount)
	if out.Stats.DailySessionCount == nil {
		out.Stats.DailySessionCount = make(map[string]int)
	}
	out.Stats.RecentSessions = append([]model.TimerSession(nil), s.Stats.RecentSessions...)
	if s.Stats.WeekStartDate != nil {
		ws := *s.Stats.WeekStartDate
		out.Stats.WeekStartDate = &ws
	}

	out.Subjects = append([]model.Subject(nil), s.Subjects...)
	out.Resources = append([]model.Resource(nil), s.Resources...)
	out.Exams = append([]model.Exam(nil), s.Exams...)

	out.Achievements.Unlocked = append([]string(nil), s.Achievements.Unlocked...)
	out.Achievements.Progress = maps.Clone(s.Achievements.Progress)
	if out.Achievements.Progress == nil {
		out.Achievements.Progress = make(map[string]int)
	}

	return out
}

// FindTask returns the index of the task with the given id, or -1.
func (s State) FindTask(id string) int {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return i
		}
	}
	return -1
}
