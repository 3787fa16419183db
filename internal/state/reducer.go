package state

import (
	"time"

	"github.com/sadopc/studyflow/internal/dateutil"
	"github.com/sadopc/studyflow/internal/model"
)

// Apply is the domain reducer: given a state, an action and the current
// time it returns the next state and the set of slices that changed.
// It never mutates s and performs no I/O. Actions referencing an
// unknown id are no-ops.
func Apply(s State, a Action, now time.Time) (State, ChangeSet) {
	next := s.Clone()
	ch := make(ChangeSet)

	switch act := a.(type) {
	case AddTask:
		applyAddTask(&next, act, now, ch)
	case UpdateTask:
		applyUpdateTask(&next, act, now, ch)
	case DeleteTask:
		if i := next.FindTask(act.ID); i >= 0 {
			next.Tasks = append(next.Tasks[:i], next.Tasks[i+1:]...)
			ch.Mark(SliceTasks)
		}
	case ToggleTaskCompletion:
		applyToggleCompletion(&next, act, now, ch)
	case RecordStudySession:
		applyRecordSession(&next, act, now, ch)
	case UpdateSettings:
		next.Settings = act.Patch.Merge(next.Settings)
		ch.Mark(SliceSettings)
	case ArchiveOldTasks:
		applyArchiveSweep(&next, act, now, ch)
	case AddSubject:
		next.Subjects = append(next.Subjects, act.Subject)
		ch.Mark(SliceSubjects)
	case UpdateSubject:
		applyUpdateSubject(&next, act, ch)
	case DeleteSubject:
		for i := range next.Subjects {
			if next.Subjects[i].ID == act.ID {
				next.Subjects = append(next.Subjects[:i], next.Subjects[i+1:]...)
				ch.Mark(SliceSubjects)
				break
			}
		}
	case AddResource:
		r := act.Resource
		if r.CreatedAt.IsZero() {
			r.CreatedAt = now
		}
		r.LastModified = now
		next.Resources = append(next.Resources, r)
		ch.Mark(SliceResources)
	case UpdateResource:
		applyUpdateResource(&next, act, now, ch)
	case DeleteResource:
		for i := range next.Resources {
			if next.Resources[i].ID == act.ID {
				next.Resources = append(next.Resources[:i], next.Resources[i+1:]...)
				ch.Mark(SliceResources)
				break
			}
		}
	case AddExam:
		e := act.Exam
		if e.CreatedAt.IsZero() {
			e.CreatedAt = now
		}
		e.LastModified = now
		next.Exams = append(next.Exams, e)
		ch.Mark(SliceExams)
	case UpdateExam:
		applyUpdateExam(&next, act, now, ch)
	case DeleteExam:
		for i := range next.Exams {
			if next.Exams[i].ID == act.ID {
				next.Exams = append(next.Exams[:i], next.Exams[i+1:]...)
				ch.Mark(SliceExams)
				break
			}
		}
	case ReplaceState:
		next = act.State.Clone()
		ch.Mark(AllSlices...)
	}

	return next, ch
}

func applyAddTask(next *State, act AddTask, now time.Time, ch ChangeSet) {
	t := act.Task
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.LastModified = now
	t.Completed = false
	t.CompletedAt = nil
	t.Archived = false
	next.Tasks = append(next.Tasks, t)
	next.Stats.TasksCreated++
	ch.Mark(SliceTasks, SliceStats)
}

func applyUpdateTask(next *State, act UpdateTask, now time.Time, ch ChangeSet) {
	i := next.FindTask(act.ID)
	if i < 0 {
		return
	}
	t := &next.Tasks[i]
	p := act.Patch

	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		t.DueDate = *p.DueDate
	}
	if p.Subject != nil {
		t.Subject = *p.Subject
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Progress != nil {
		t.Progress = *p.Progress
	}

	// Completion/progress cross-derivation: an explicit completed=true
	// without an explicit progress forces progress to 100, while
	// progress reaching 100 without an explicit completed auto-promotes
	// the task to completed.
	switch {
	case p.Completed != nil && *p.Completed:
		t.Completed = true
		if t.CompletedAt == nil {
			ts := now
			t.CompletedAt = &ts
		}
		if p.Progress == nil {
			t.Progress = 100
		}
	case p.Completed != nil:
		t.Completed = false
		t.CompletedAt = nil
	case p.Progress != nil && t.Progress == 100 && !t.Completed:
		t.Completed = true
		ts := now
		t.CompletedAt = &ts
	}

	t.LastModified = now

	if p.TouchesTracked() {
		progress := t.Progress
		completed := t.Completed
		t.History = model.AppendHistory(t.History, model.ChangeRecord{
			Timestamp: now,
			Changes:   p.FieldNames(),
			Progress:  &progress,
			Completed: &completed,
		})
	}
	ch.Mark(SliceTasks)
}

func applyToggleCompletion(next *State, act ToggleTaskCompletion, now time.Time, ch ChangeSet) {
	i := next.FindTask(act.ID)
	if i < 0 {
		return
	}
	t := &next.Tasks[i]

	if !t.Completed {
		prior := t.Progress
		completed := true
		t.Completed = true
		ts := now
		t.CompletedAt = &ts
		t.Progress = 100
		// Record the pre-completion progress so un-completing can
		// restore it.
		t.History = model.AppendHistory(t.History, model.ChangeRecord{
			Timestamp: now,
			Changes:   "completed",
			Progress:  &prior,
			Completed: &completed,
		})
		next.Stats.TasksCompleted++
		next.Stats.GoalProgress.WeeklyTasksCompleted++
		if t.Subject != "" {
			next.Stats.SubjectDistribution[t.Subject]++
		}
	} else {
		t.Completed = false
		t.CompletedAt = nil
		t.Progress = priorProgress(t.History)
		completed := false
		restored := t.Progress
		t.History = model.AppendHistory(t.History, model.ChangeRecord{
			Timestamp: now,
			Changes:   "completion cleared",
			Progress:  &restored,
			Completed: &completed,
		})
		if next.Stats.TasksCompleted > 0 {
			next.Stats.TasksCompleted--
		}
		if next.Stats.GoalProgress.WeeklyTasksCompleted > 0 {
			next.Stats.GoalProgress.WeeklyTasksCompleted--
		}
		if t.Subject != "" && next.Stats.SubjectDistribution[t.Subject] > 0 {
			next.Stats.SubjectDistribution[t.Subject]--
		}
	}
	t.LastModified = now
	ch.Mark(SliceTasks, SliceStats)
}

// priorProgress finds the progress recorded by the most recent
// completion entry, which is the value the task held before it was
// completed. Falls back to 0 when the history has no such entry.
func priorProgress(h []model.ChangeRecord) int {
	for i := len(h) - 1; i >= 0; i-- {
		rec := h[i]
		if rec.Completed != nil && *rec.Completed && rec.Progress != nil {
			return *rec.Progress
		}
	}
	return 0
}

func applyRecordSession(next *State, act RecordStudySession, now time.Time, ch ChangeSet) {
	st := &next.Stats
	st.TotalStudyTime += act.Minutes
	st.SessionsCompleted++
	st.ProductivityByHour[now.Hour()] += act.Minutes
	st.WeeklyStudyTime[int(now.Weekday())] += act.Minutes
	if act.Subject != "" {
		st.SubjectDistribution[act.Subject] += act.Minutes
	}

	today := dateutil.DayKey(now)
	st.DailySessionCount[today]++

	session := model.TimerSession{
		Timestamp:       now,
		DurationMinutes: act.Minutes,
		Subject:         act.Subject,
		TaskID:          act.TaskID,
		Completed:       true,
	}
	st.RecentSessions = append([]model.TimerSession{session}, st.RecentSessions...)
	if len(st.RecentSessions) > model.RecentSessionsCapacity {
		st.RecentSessions = st.RecentSessions[:model.RecentSessionsCapacity]
	}

	st.GoalProgress.DailyStudyTime += act.Minutes
	st.GoalProgress.WeeklyStudyTime += act.Minutes

	next.Streak = advanceStreak(next.Streak, today, act.Minutes)
	ch.Mark(SliceStats, SliceStreaks)

	if act.TaskID != "" {
		if i := next.FindTask(act.TaskID); i >= 0 {
			t := &next.Tasks[i]
			progress := t.Progress
			completed := t.Completed
			t.History = model.AppendHistory(t.History, model.ChangeRecord{
				Timestamp: now,
				Changes:   "study session",
				Progress:  &progress,
				Completed: &completed,
			})
			t.LastModified = now
			ch.Mark(SliceTasks)
		}
	}
}

func applyUpdateSubject(next *State, act UpdateSubject, ch ChangeSet) {
	for i := range next.Subjects {
		if next.Subjects[i].ID != act.ID {
			continue
		}
		if act.Patch.Name != nil {
			next.Subjects[i].Name = *act.Patch.Name
		}
		if act.Patch.Color != nil {
			next.Subjects[i].Color = *act.Patch.Color
		}
		ch.Mark(SliceSubjects)
		return
	}
}

func applyUpdateResource(next *State, act UpdateResource, now time.Time, ch ChangeSet) {
	for i := range next.Resources {
		if next.Resources[i].ID != act.ID {
			continue
		}
		r := &next.Resources[i]
		if act.Patch.Title != nil {
			r.Title = *act.Patch.Title
		}
		if act.Patch.Kind != nil {
			r.Kind = *act.Patch.Kind
		}
		if act.Patch.URL != nil {
			r.URL = *act.Patch.URL
		}
		if act.Patch.Subject != nil {
			r.Subject = *act.Patch.Subject
		}
		if act.Patch.Notes != nil {
			r.Notes = *act.Patch.Notes
		}
		r.LastModified = now
		ch.Mark(SliceResources)
		return
	}
}

func applyUpdateExam(next *State, act UpdateExam, now time.Time, ch ChangeSet) {
	for i := range next.Exams {
		if next.Exams[i].ID != act.ID {
			continue
		}
		e := &next.Exams[i]
		if act.Patch.Title != nil {
			e.Title = *act.Patch.Title
		}
		if act.Patch.Subject != nil {
			e.Subject = *act.Patch.Subject
		}
		if act.Patch.Date != nil {
			e.Date = *act.Patch.Date
		}
		if act.Patch.Location != nil {
			e.Location = *act.Patch.Location
		}
		if act.Patch.Notes != nil {
			e.Notes = *act.Patch.Notes
		}
		e.LastModified = now
		ch.Mark(SliceExams)
		return
	}
}
