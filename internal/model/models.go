package model

import "time"

// DayKeyLayout is the calendar-day format used for studyDays keys,
// per-day session logs and daily counters.
const DayKeyLayout = "2006-01-02"

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

func (p Priority) IsValid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh:
		return true
	default:
		return false
	}
}

// Task is a single tracked study task. History holds the most recent
// change records, newest last, capped at HistoryCapacity.
type Task struct {
	ID           string         `json:"id"`
	Title        string         `json:"title"`
	Description  string         `json:"description,omitempty"`
	DueDate      time.Time      `json:"dueDate,omitzero"`
	CreatedAt    time.Time      `json:"createdAt"`
	Completed    bool           `json:"completed"`
	CompletedAt  *time.Time     `json:"completedAt,omitempty"`
	Archived     bool           `json:"archived"`
	Subject      string         `json:"subject,omitempty"`
	Priority     Priority       `json:"priority,omitempty"`
	Progress     int            `json:"progress"`
	LastModified time.Time      `json:"lastModified"`
	History      []ChangeRecord `json:"history,omitempty"`
}

// Streak tracks the consecutive-day study run. StudyDays maps a day key
// to total minutes studied that day.
type Streak struct {
	Current       int            `json:"current"`
	Longest       int            `json:"longest"`
	LastStudyDate string         `json:"lastStudyDate,omitempty"`
	StudyDays     map[string]int `json:"studyDays"`
}

func NewStreak() Streak {
	return Streak{StudyDays: make(map[string]int)}
}

// TotalMinutes sums studied minutes over all recorded days.
func (s Streak) TotalMinutes() int {
	total := 0
	for _, m := range s.StudyDays {
		total += m
	}
	return total
}

// Settings is the durable user configuration. Singleton, mutated through
// SettingsPatch shallow merges.
type Settings struct {
	PomodoroWorkMinutes      int      `json:"pomodoroWorkMinutes"`
	PomodoroBreakMinutes     int      `json:"pomodoroBreakMinutes"`
	PomodoroLongBreakMinutes int      `json:"pomodoroLongBreakMinutes"`
	PomodoroRounds           int      `json:"pomodoroRounds"`
	DailyGoalMinutes         int      `json:"dailyGoalMinutes"`
	WeeklyGoalMinutes        int      `json:"weeklyGoalMinutes"`
	WeeklyTaskGoal           int      `json:"weeklyTaskGoal"`
	ArchiveDays              int      `json:"archiveDays"`
	TaskRetentionWeeks       int      `json:"taskRetentionWeeks"`
	AutoArchive              bool     `json:"autoArchive"`
	EnabledFilters           []string `json:"enabledFilters,omitempty"`
	NotificationsEnabled     bool     `json:"notificationsEnabled"`
}

func DefaultSettings() Settings {
	return Settings{
		PomodoroWorkMinutes:      25,
		PomodoroBreakMinutes:     5,
		PomodoroLongBreakMinutes: 15,
		PomodoroRounds:           4,
		DailyGoalMinutes:         480,
		WeeklyGoalMinutes:        2400,
		WeeklyTaskGoal:           10,
		ArchiveDays:              30,
		TaskRetentionWeeks:       12,
		AutoArchive:              true,
		NotificationsEnabled:     true,
	}
}

// GoalProgress is the subset of stats scoped to "today" and "this week".
type GoalProgress struct {
	DailyStudyTime       int `json:"dailyStudyTime"`
	WeeklyStudyTime      int `json:"weeklyStudyTime"`
	WeeklyTasksCompleted int `json:"weeklyTasksCompleted"`
}

// TimerSession records one completed study interval.
type TimerSession struct {
	Timestamp       time.Time `json:"timestamp"`
	DurationMinutes int       `json:"durationMinutes"`
	Subject         string    `json:"subject,omitempty"`
	TaskID          string    `json:"taskId,omitempty"`
	Completed       bool      `json:"completed"`
}

// RecentSessionsCapacity bounds stats.recentSessions, newest first.
const RecentSessionsCapacity = 30

// Stats holds the aggregate counters derived from tasks and sessions.
// WeeklyStudyTime is indexed by time.Weekday (0 = Sunday).
type Stats struct {
	TotalStudyTime      int            `json:"totalStudyTime"`
	TasksCompleted      int            `json:"tasksCompleted"`
	TasksCreated        int            `json:"tasksCreated"`
	SessionsCompleted   int            `json:"sessionsCompleted"`
	SubjectDistribution map[string]int `json:"subjectDistribution"`
	ProductivityByHour  map[int]int    `json:"productivityByHour"`
	WeeklyStudyTime     [7]int         `json:"weeklyStudyTime"`
	GoalProgress        GoalProgress   `json:"goalProgress"`
	WeekStartDate       *time.Time     `json:"weekStartDate,omitempty"`
	RecentSessions      []TimerSession `json:"recentSessions,omitempty"`
	DailySessionCount   map[string]int `json:"dailySessionCount"`
}

func NewStats() Stats {
	return Stats{
		SubjectDistribution: make(map[string]int),
		ProductivityByHour:  make(map[int]int),
		DailySessionCount:   make(map[string]int),
	}
}

// Subject is a user-defined taxonomy entry used to tag tasks and sessions.
type Subject struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

// Resource is a study material reference (link, book, notes).
type Resource struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Kind         string    `json:"kind,omitempty"`
	URL          string    `json:"url,omitempty"`
	Subject      string    `json:"subject,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// Exam is an upcoming exam record.
type Exam struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Subject      string    `json:"subject,omitempty"`
	Date         time.Time `json:"date"`
	Location     string    `json:"location,omitempty"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	LastModified time.Time `json:"lastModified"`
}

// Achievements is the unlock registry. Unlocked is monotonic: ids are
// never removed once present. Progress records the last evaluated value
// per achievement id.
type Achievements struct {
	Unlocked []string       `json:"unlocked"`
	Progress map[string]int `json:"progress"`
}

func NewAchievements() Achievements {
	return Achievements{Progress: make(map[string]int)}
}

func (a Achievements) IsUnlocked(id string) bool {
	for _, u := range a.Unlocked {
		if u == id {
			return true
		}
	}
	return false
}
