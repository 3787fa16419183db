package model

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

var (
	ErrInvalidProgress = errors.New("model: progress must be between 0 and 100")
	ErrInvalidPriority = errors.New("model: invalid priority")
)

// TaskPatch lists the task fields an update may touch. Nil fields are
// left unchanged.
type TaskPatch struct {
	Title       *string
	Description *string
	DueDate     *time.Time
	Completed   *bool
	Subject     *string
	Priority    *Priority
	Progress    *int
}

func (p TaskPatch) Validate() error {
	if p.Progress != nil && (*p.Progress < 0 || *p.Progress > 100) {
		return fmt.Errorf("%w: %d", ErrInvalidProgress, *p.Progress)
	}
	if p.Priority != nil && !p.Priority.IsValid() {
		return fmt.Errorf("%w: %q", ErrInvalidPriority, *p.Priority)
	}
	if p.Title != nil && strings.TrimSpace(*p.Title) == "" {
		return errors.New("model: task title cannot be empty")
	}
	return nil
}

// TouchesTracked reports whether the patch changes any of the fields
// that warrant a history entry.
func (p TaskPatch) TouchesTracked() bool {
	return p.Completed != nil || p.Progress != nil || p.Subject != nil ||
		p.Priority != nil || p.DueDate != nil
}

// FieldNames lists the non-nil patch fields for the history changes
// descriptor.
func (p TaskPatch) FieldNames() string {
	var fields []string
	if p.Title != nil {
		fields = append(fields, "title")
	}
	if p.Description != nil {
		fields = append(fields, "description")
	}
	if p.DueDate != nil {
		fields = append(fields, "dueDate")
	}
	if p.Completed != nil {
		fields = append(fields, "completed")
	}
	if p.Subject != nil {
		fields = append(fields, "subject")
	}
	if p.Priority != nil {
		fields = append(fields, "priority")
	}
	if p.Progress != nil {
		fields = append(fields, "progress")
	}
	return strings.Join(fields, ", ")
}

// SettingsPatch is a shallow merge over Settings.
type SettingsPatch struct {
	PomodoroWorkMinutes      *int
	PomodoroBreakMinutes     *int
	PomodoroLongBreakMinutes *int
	PomodoroRounds           *int
	DailyGoalMinutes         *int
	WeeklyGoalMinutes        *int
	WeeklyTaskGoal           *int
	ArchiveDays              *int
	TaskRetentionWeeks       *int
	AutoArchive              *bool
	EnabledFilters           *[]string
	NotificationsEnabled     *bool
}

// Merge applies the non-nil patch fields onto s.
func (p SettingsPatch) Merge(s Settings) Settings {
	if p.PomodoroWorkMinutes != nil {
		s.PomodoroWorkMinutes = *p.PomodoroWorkMinutes
	}
	if p.PomodoroBreakMinutes != nil {
		s.PomodoroBreakMinutes = *p.PomodoroBreakMinutes
	}
	if p.PomodoroLongBreakMinutes != nil {
		s.PomodoroLongBreakMinutes = *p.PomodoroLongBreakMinutes
	}
	if p.PomodoroRounds != nil {
		s.PomodoroRounds = *p.PomodoroRounds
	}
	if p.DailyGoalMinutes != nil {
		s.DailyGoalMinutes = *p.DailyGoalMinutes
	}
	if p.WeeklyGoalMinutes != nil {
		s.WeeklyGoalMinutes = *p.WeeklyGoalMinutes
	}
	if p.WeeklyTaskGoal != nil {
		s.WeeklyTaskGoal = *p.WeeklyTaskGoal
	}
	if p.ArchiveDays != nil {
		s.ArchiveDays = *p.ArchiveDays
	}
	if p.TaskRetentionWeeks != nil {
		s.TaskRetentionWeeks = *p.TaskRetentionWeeks
	}
	if p.AutoArchive != nil {
		s.AutoArchive = *p.AutoArchive
	}
	if p.EnabledFilters != nil {
		s.EnabledFilters = append([]string(nil), *p.EnabledFilters...)
	}
	if p.NotificationsEnabled != nil {
		s.NotificationsEnabled = *p.NotificationsEnabled
	}
	return s
}

// SubjectPatch updates a subject's display fields.
type SubjectPatch struct {
	Name  *string
	Color *string
}

// ResourcePatch updates a resource's descriptive fields.
type ResourcePatch struct {
	Title   *string
	Kind    *string
	URL     *string
	Subject *string
	Notes   *string
}

// ExamPatch updates an exam's descriptive fields.
type ExamPatch struct {
	Title    *string
	Subject  *string
	Date     *time.Time
	Location *string
	Notes    *string
}
