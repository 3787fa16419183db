package state

import (
	"time"

	"github.com/sadopc/studyflow/internal/dateutil"
)

// ReconcileGoals recomputes the goal-progress window. It initializes or
// rolls over weekStartDate (always the most recent Sunday at local
// midnight), zeroes weekly-scoped counters on rollover while preserving
// daily ones, and recomputes today's and this week's study time from
// studyDays rather than trusting the incremental counters, which guards
// against drift across day boundaries.
func ReconcileGoals(s State, now time.Time) (State, ChangeSet) {
	next := s.Clone()
	ch := make(ChangeSet)
	st := &next.Stats

	sunday := dateutil.MostRecentSunday(now)

	switch {
	case st.WeekStartDate == nil:
		st.WeekStartDate = &sunday
		st.GoalProgress.WeeklyTasksCompleted = 0
		st.WeeklyStudyTime = [7]int{}
	case dateutil.DaysBetween(*st.WeekStartDate, now) >= 7:
		st.WeekStartDate = &sunday
		st.GoalProgress.WeeklyTasksCompleted = 0
		st.WeeklyStudyTime = [7]int{}
	}

	st.GoalProgress.DailyStudyTime = next.Streak.StudyDays[dateutil.DayKey(now)]

	weekly := 0
	for key, minutes := range next.Streak.StudyDays {
		day, err := dateutil.ParseDayKey(key)
		if err != nil {
			continue
		}
		if !day.Before(*st.WeekStartDate) {
			weekly += minutes
		}
	}
	st.GoalProgress.WeeklyStudyTime = weekly

	ch.Mark(SliceStats)
	return next, ch
}
