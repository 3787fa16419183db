package state

import (
	"time"

	"github.com/sadopc/studyflow/internal/dateutil"
	"github.com/sadopc/studyflow/internal/model"
)

// applyArchiveSweep runs the two-phase retention sweep. Phase one
// hard-deletes tasks that are already archived and whose completion (or
// creation, if never completed) is older than the retention window.
// Phase two soft-archives completed, unarchived tasks whose completedAt
// is older than archiveDays. The ordering means a task always passes
// through the archived state before it can be deleted.
func applyArchiveSweep(next *State, act ArchiveOldTasks, now time.Time, ch ChangeSet) {
	retentionDays := next.Settings.TaskRetentionWeeks * 7

	kept := next.Tasks[:0]
	for _, t := range next.Tasks {
		if t.Archived {
			ref := t.CreatedAt
			if t.CompletedAt != nil {
				ref = *t.CompletedAt
			}
			if dateutil.DaysBetween(ref, now) > retentionDays {
				ch.Mark(SliceTasks)
				continue
			}
		}
		kept = append(kept, t)
	}
	next.Tasks = kept

	for i := range next.Tasks {
		t := &next.Tasks[i]
		if t.Completed && !t.Archived && t.CompletedAt != nil &&
			dateutil.DaysBetween(*t.CompletedAt, now) > act.ArchiveDays {
			t.Archived = true
			t.LastModified = now
			ch.Mark(SliceTasks)
		}
	}
}

// ActiveTasks filters out archived tasks, the view the UI layer works
// with by default.
func ActiveTasks(tasks []model.Task) []model.Task {
	var out []model.Task
	for _, t := range tasks {
		if !t.Archived {
			out = append(out, t)
		}
	}
	return out
}
