// Package app exposes the imperative facade over the domain reducer:
// it injects defaults into new entities, dispatches actions, persists
// changed slices through the debounced writer and bridges to the
// notification collaborator.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sadopc/studyflow/internal/dateutil"
	"github.com/sadopc/studyflow/internal/model"
	"github.com/sadopc/studyflow/internal/state"
	"github.com/sadopc/studyflow/internal/store"
)

var (
	ErrEmptyTitle     = errors.New("app: title is required")
	ErrInvalidMinutes = errors.New("app: study minutes must be positive")
)

// App owns the in-memory state. All mutations funnel through dispatch
// under one mutex: the in-memory state is the source of truth for the
// session, the store an eventually-consistent mirror behind the
// debounced writer.
type App struct {
	mu       sync.Mutex
	state    state.State
	store    *store.Store
	writer   *store.Writer
	notifier Notifier
	now      func() time.Time
	log      *slog.Logger
}

// New builds the facade over an opened store. A nil notifier gets the
// no-op default; a nil logger falls back to slog.Default.
func New(st *store.Store, notifier Notifier, log *slog.Logger) *App {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if log == nil {
		log = slog.Default()
	}
	log = log.With("component", "app")
	return &App{
		state:    state.NewState(),
		store:    st,
		writer:   store.NewWriter(st, store.DefaultFlushDelay, log),
		notifier: notifier,
		now:      time.Now,
		log:      log,
	}
}

// Close flushes pending writes. The caller still owns the store.
func (a *App) Close() {
	a.writer.Close()
}

// Snapshot returns a deep copy of the current state.
func (a *App) Snapshot() state.State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state.Clone()
}

// dispatch runs one action through the reducer and schedules the
// changed slices for persistence. Must be called with the mutex held.
func (a *App) dispatch(act state.Action) state.ChangeSet {
	next, ch := state.Apply(a.state, act, a.now())
	a.state = next
	a.persist(ch)
	return ch
}

// persist enqueues every changed slice on the debounced writer.
// Marshal failures are logged and skipped; one bad slice never blocks
// the rest of the batch.
func (a *App) persist(ch state.ChangeSet) {
	for _, sl := range state.AllSlices {
		if !ch.Has(sl) {
			continue
		}
		value, err := json.Marshal(a.sliceValue(sl))
		if err != nil {
			a.log.Warn("marshal slice failed", "slice", string(sl), "error", err)
			continue
		}
		a.writer.Enqueue(string(sl), value)
	}
}

func (a *App) sliceValue(sl state.Slice) any {
	switch sl {
	case state.SliceTasks:
		return a.state.Tasks
	case state.SliceStreaks:
		return a.state.Streak
	case state.SliceSettings:
		return a.state.Settings
	case state.SliceStats:
		return a.state.Stats
	case state.SliceSubjects:
		return a.state.Subjects
	case state.SliceResources:
		return a.state.Resources
	case state.SliceExams:
		return a.state.Exams
	case state.SliceAchievements:
		return a.state.Achievements
	default:
		return nil
	}
}

// AddTask creates a task with a generated id and default flags.
func (a *App) AddTask(t model.Task) (model.Task, error) {
	if strings.TrimSpace(t.Title) == "" {
		return model.Task{}, ErrEmptyTitle
	}
	if t.Priority != "" && !t.Priority.IsValid() {
		return model.Task{}, fmt.Errorf("%w: %q", model.ErrInvalidPriority, t.Priority)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	a.dispatch(state.AddTask{Task: t})

	created := a.state.Tasks[a.state.FindTask(t.ID)]
	a.rescheduleTaskNotification(created)
	return created, nil
}

// UpdateTask merges a validated patch into the task. Unknown ids are a
// no-op.
func (a *App) UpdateTask(id string, p model.TaskPatch) error {
	if err := p.Validate(); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	ch := a.dispatch(state.UpdateTask{ID: id, Patch: p})
	if ch.Has(state.SliceTasks) {
		a.rescheduleTaskNotification(a.state.Tasks[a.state.FindTask(id)])
	}
	return nil
}

// DeleteTask removes the task and cancels its due notification.
// Unknown ids are a no-op.
func (a *App) DeleteTask(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := a.dispatch(state.DeleteTask{ID: id})
	if ch.Has(state.SliceTasks) {
		a.notifier.CancelTaskNotification(id)
	}
}

// ToggleTaskCompletion flips completion and adjusts the derived
// counters. Unknown ids are a no-op.
func (a *App) ToggleTaskCompletion(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := a.dispatch(state.ToggleTaskCompletion{ID: id})
	if !ch.Has(state.SliceTasks) {
		return
	}

	t := a.state.Tasks[a.state.FindTask(id)]
	if t.Completed {
		a.notifier.CancelTaskNotification(id)
	} else {
		a.rescheduleTaskNotification(t)
	}

	newState, newly, achCh := state.EvaluateAchievements(a.state)
	a.state = newState
	a.persist(achCh)
	a.notifyAchievements(newly)
}

// RecordStudySession logs one completed study interval and recomputes
// every derived aggregate: streak, goal progress, per-day counters and
// achievements. Non-positive minutes are rejected outright rather than
// clamped, so corrupted aggregates cannot sneak in.
func (a *App) RecordStudySession(minutes int, subject, taskID string) error {
	if minutes <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidMinutes, minutes)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	a.dispatch(state.RecordStudySession{Minutes: minutes, Subject: subject, TaskID: taskID})
	a.reconcileLocked(now)
	a.appendDailySessionLog(now, minutes, subject, taskID)

	if a.state.Settings.NotificationsEnabled {
		a.notifier.ScheduleStreakReminder(a.state.Streak.Current)
		gp := a.state.Stats.GoalProgress
		if gp.DailyStudyTime < a.state.Settings.DailyGoalMinutes {
			a.notifier.ScheduleDailyGoalReminder(gp.DailyStudyTime, a.state.Settings.DailyGoalMinutes)
		}
	}
	return nil
}

// UpdateSettings shallow-merges the patch into the settings slice.
func (a *App) UpdateSettings(p model.SettingsPatch) {
	a.mu.Lock()
	defer a.mu.Unlock()

	wasEnabled := a.state.Settings.NotificationsEnabled
	a.dispatch(state.UpdateSettings{Patch: p})
	if wasEnabled && !a.state.Settings.NotificationsEnabled {
		a.notifier.CancelAllNotifications()
	}
}

// ArchiveOldTasks runs the retention sweep with the configured archive
// window.
func (a *App) ArchiveOldTasks() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatch(state.ArchiveOldTasks{ArchiveDays: a.state.Settings.ArchiveDays})
}

// Reconcile runs the periodic reconciliation pass: goal-window rollover,
// the auto-archive sweep when enabled, and achievement evaluation. The
// lifecycle controller invokes it after every reload.
func (a *App) Reconcile() {
	a.mu.Lock()
	defer a.mu.Unlock()

	now := a.now()
	if a.state.Settings.AutoArchive {
		a.dispatch(state.ArchiveOldTasks{ArchiveDays: a.state.Settings.ArchiveDays})
	}
	a.reconcileLocked(now)
}

// reconcileLocked recomputes goal progress and evaluates achievements.
// Must be called with the mutex held.
func (a *App) reconcileLocked(now time.Time) {
	next, ch := state.ReconcileGoals(a.state, now)
	a.state = next
	a.persist(ch)

	newState, newly, achCh := state.EvaluateAchievements(a.state)
	a.state = newState
	a.persist(achCh)
	a.notifyAchievements(newly)
}

func (a *App) notifyAchievements(ids []string) {
	if !a.state.Settings.NotificationsEnabled {
		return
	}
	for _, id := range ids {
		name := id
		if c, ok := state.CriterionByID(id); ok {
			name = c.Name
		}
		a.notifier.SendAchievementNotification(name)
	}
}

func (a *App) rescheduleTaskNotification(t model.Task) {
	a.notifier.CancelTaskNotification(t.ID)
	if a.state.Settings.NotificationsEnabled && !t.Completed && !t.DueDate.IsZero() {
		a.notifier.ScheduleTaskDueNotification(t)
	}
}

// sessionMarker is the per-day {count, lastUpdated} store record.
type sessionMarker struct {
	Count       int       `json:"count"`
	LastUpdated time.Time `json:"lastUpdated"`
}

// appendDailySessionLog maintains the per-day session log and marker
// keys. These are append-once-per-session writes, so they go straight
// to the store instead of the debounced batch. Failures degrade to a
// log line.
func (a *App) appendDailySessionLog(now time.Time, minutes int, subject, taskID string) {
	dayKey := dateutil.DayKey(now)

	sessionsKey := store.SessionsKey(dayKey)
	var sessions []model.TimerSession
	if raw, err := a.store.Get(sessionsKey); err != nil {
		a.log.Warn("read session log failed", "key", sessionsKey, "error", err)
	} else if raw != nil {
		if err := json.Unmarshal(raw, &sessions); err != nil {
			a.log.Warn("corrupt session log, starting over", "key", sessionsKey, "error", err)
			sessions = nil
		}
	}
	sessions = append(sessions, model.TimerSession{
		Timestamp:       now,
		DurationMinutes: minutes,
		Subject:         subject,
		TaskID:          taskID,
		Completed:       true,
	})
	if value, err := json.Marshal(sessions); err == nil {
		if err := a.store.Set(sessionsKey, value); err != nil {
			a.log.Warn("write session log failed", "key", sessionsKey, "error", err)
		}
	}

	marker := sessionMarker{
		Count:       a.state.Stats.DailySessionCount[dayKey],
		LastUpdated: now,
	}
	if value, err := json.Marshal(marker); err == nil {
		if err := a.store.Set(store.SessionMarkerKey(dayKey), value); err != nil {
			a.log.Warn("write session marker failed", "key", store.SessionMarkerKey(dayKey), "error", err)
		}
	}
}

// AddSubject creates a subject tag.
func (a *App) AddSubject(name, color string) (model.Subject, error) {
	if strings.TrimSpace(name) == "" {
		return model.Subject{}, fmt.Errorf("%w: subject name", ErrEmptyTitle)
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	s := model.Subject{ID: uuid.NewString(), Name: name, Color: color}
	a.dispatch(state.AddSubject{Subject: s})
	return s, nil
}

func (a *App) UpdateSubject(id string, p model.SubjectPatch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatch(state.UpdateSubject{ID: id, Patch: p})
}

func (a *App) DeleteSubject(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatch(state.DeleteSubject{ID: id})
}

// AddResource creates a study-material record.
func (a *App) AddResource(r model.Resource) (model.Resource, error) {
	if strings.TrimSpace(r.Title) == "" {
		return model.Resource{}, ErrEmptyTitle
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	a.dispatch(state.AddResource{Resource: r})
	for _, res := range a.state.Resources {
		if res.ID == r.ID {
			return res, nil
		}
	}
	return r, nil
}

func (a *App) UpdateResource(id string, p model.ResourcePatch) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatch(state.UpdateResource{ID: id, Patch: p})
}

func (a *App) DeleteResource(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.dispatch(state.DeleteResource{ID: id})
}

// AddExam creates an exam record and schedules its reminder.
func (a *App) AddExam(e model.Exam) (model.Exam, error) {
	if strings.TrimSpace(e.Title) == "" {
		return model.Exam{}, ErrEmptyTitle
	}
	a.mu.Lock()
	defer a.mu.Unlock()

	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	a.dispatch(state.AddExam{Exam: e})

	var created model.Exam
	for _, ex := range a.state.Exams {
		if ex.ID == e.ID {
			created = ex
			break
		}
	}
	a.rescheduleExamReminder(created)
	return created, nil
}

func (a *App) UpdateExam(id string, p model.ExamPatch) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := a.dispatch(state.UpdateExam{ID: id, Patch: p})
	if !ch.Has(state.SliceExams) {
		return
	}
	for _, ex := range a.state.Exams {
		if ex.ID == id {
			a.rescheduleExamReminder(ex)
			return
		}
	}
}

func (a *App) DeleteExam(id string) {
	a.mu.Lock()
	defer a.mu.Unlock()

	ch := a.dispatch(state.DeleteExam{ID: id})
	if ch.Has(state.SliceExams) {
		a.notifier.CancelExamReminders(id)
	}
}

func (a *App) rescheduleExamReminder(e model.Exam) {
	a.notifier.CancelExamReminders(e.ID)
	if a.state.Settings.NotificationsEnabled && !e.Date.IsZero() {
		a.notifier.ScheduleExamReminder(e)
	}
}
