package state

// CriterionType selects which live value an achievement threshold is
// checked against.
type CriterionType string

const (
	CriterionStreak            CriterionType = "streak"
	CriterionStudyTime         CriterionType = "study_time"
	CriterionTasksCompleted    CriterionType = "tasks_completed"
	CriterionSessionsCompleted CriterionType = "sessions_completed"
)

// Criterion is one row of the fixed achievement table.
type Criterion struct {
	ID        string
	Name      string
	Type      CriterionType
	Threshold int
}

// Criteria is the fixed achievement registry. Thresholds for study time
// are cumulative minutes.
var Criteria = []Criterion{
	{ID: "streak_3", Name: "3-Day Streak", Type: CriterionStreak, Threshold: 3},
	{ID: "streak_7", Name: "7-Day Streak", Type: CriterionStreak, Threshold: 7},
	{ID: "streak_14", Name: "2-Week Streak", Type: CriterionStreak, Threshold: 14},
	{ID: "streak_30", Name: "30-Day Streak", Type: CriterionStreak, Threshold: 30},
	{ID: "study_time_10h", Name: "10 Hours Studied", Type: CriterionStudyTime, Threshold: 600},
	{ID: "study_time_50h", Name: "50 Hours Studied", Type: CriterionStudyTime, Threshold: 3000},
	{ID: "tasks_completed_50", Name: "50 Tasks Done", Type: CriterionTasksCompleted, Threshold: 50},
	{ID: "tasks_completed_100", Name: "100 Tasks Done", Type: CriterionTasksCompleted, Threshold: 100},
	{ID: "sessions_completed_20", Name: "20 Sessions", Type: CriterionSessionsCompleted, Threshold: 20},
	{ID: "sessions_completed_50", Name: "50 Sessions", Type: CriterionSessionsCompleted, Threshold: 50},
}

// CriterionByID looks up a criteria-table row.
func CriterionByID(id string) (Criterion, bool) {
	for _, c := range Criteria {
		if c.ID == id {
			return c, true
		}
	}
	return Criterion{}, false
}

// EvaluateAchievements checks every locked criterion against the live
// state, records its current progress and unlocks those at or past
// their threshold. Unlocks are monotonic and evaluation is idempotent:
// already-unlocked ids are skipped entirely. Returns the ids newly
// unlocked by this pass so the caller can notify once.
func EvaluateAchievements(s State) (State, []string, ChangeSet) {
	next := s.Clone()
	ch := make(ChangeSet)
	var newly []string

	for _, c := range Criteria {
		if next.Achievements.IsUnlocked(c.ID) {
			continue
		}
		value := criterionProgress(next, c.Type)
		if next.Achievements.Progress[c.ID] != value {
			next.Achievements.Progress[c.ID] = value
			ch.Mark(SliceAchievements)
		}
		if value >= c.Threshold {
			next.Achievements.Unlocked = append(next.Achievements.Unlocked, c.ID)
			newly = append(newly, c.ID)
			ch.Mark(SliceAchievements)
		}
	}

	return next, newly, ch
}

// criterionProgress derives the current value for a criterion type from
// live state. Study time is summed over all studyDays, not taken from
// the incremental stats counter.
func criterionProgress(s State, t CriterionType) int {
	switch t {
	case CriterionStreak:
		return s.Streak.Current
	case CriterionStudyTime:
		return s.Streak.TotalMinutes()
	case CriterionTasksCompleted:
		return s.Stats.TasksCompleted
	case CriterionSessionsCompleted:
		return s.Stats.SessionsCompleted
	default:
		return 0
	}
}
