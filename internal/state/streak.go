package state

import (
	"github.com/sadopc/studyflow/internal/dateutil"
	"github.com/sadopc/studyflow/internal/model"
)

// advanceStreak applies exactly one study session on day `today` to the
// streak. A same-day repeat leaves the run unchanged, a one-day gap
// extends it, anything else starts a new run of 1. An unparseable
// lastStudyDate is treated like a broken run.
func advanceStreak(s model.Streak, today string, minutes int) model.Streak {
	if s.StudyDays == nil {
		s.StudyDays = make(map[string]int)
	}

	if s.LastStudyDate == "" {
		s.Current = 1
	} else {
		last, err := dateutil.ParseDayKey(s.LastStudyDate)
		cur, curErr := dateutil.ParseDayKey(today)
		if err != nil || curErr != nil {
			s.Current = 1
		} else {
			switch dateutil.DaysBetween(last, cur) {
			case 0:
				// same-day repeat, run unchanged
			case 1:
				s.Current++
			default:
				s.Current = 1
			}
		}
	}

	if s.Current > s.Longest {
		s.Longest = s.Current
	}
	s.LastStudyDate = today
	s.StudyDays[today] += minutes
	return s
}
