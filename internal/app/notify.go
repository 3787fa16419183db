package app

import "github.com/sadopc/studyflow/internal/model"

// Notifier is the notification-scheduling collaborator. Scheduling is
// best-effort and keyed by entity id with cancel-then-reschedule
// semantics; real delivery lives outside this module.
type Notifier interface {
	ScheduleTaskDueNotification(task model.Task)
	CancelTaskNotification(id string)
	ScheduleExamReminder(exam model.Exam)
	CancelExamReminders(id string)
	ScheduleDailyGoalReminder(currentMinutes, goalMinutes int)
	ScheduleStreakReminder(current int)
	SendAchievementNotification(name string)
	CancelAllNotifications()
}

// NopNotifier discards every scheduling request. It is the default
// collaborator when no platform scheduler is wired in.
type NopNotifier struct{}

func (NopNotifier) ScheduleTaskDueNotification(model.Task) {}
func (NopNotifier) CancelTaskNotification(string)          {}
func (NopNotifier) ScheduleExamReminder(model.Exam)        {}
func (NopNotifier) CancelExamReminders(string)             {}
func (NopNotifier) ScheduleDailyGoalReminder(int, int)     {}
func (NopNotifier) ScheduleStreakReminder(int)             {}
func (NopNotifier) SendAchievementNotification(string)     {}
func (NopNotifier) CancelAllNotifications()                {}
