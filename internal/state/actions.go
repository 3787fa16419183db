package state

import "github.com/sadopc/studyflow/internal/model"

// Action is one state transition. The concrete variants below are the
// only implementations; Apply switches over them.
type Action interface {
	isAction()
}

type AddTask struct {
	Task model.Task
}

type UpdateTask struct {
	ID    string
	Patch model.TaskPatch
}

type DeleteTask struct {
	ID string
}

type ToggleTaskCompletion struct {
	ID string
}

// RecordStudySession logs one completed study interval. Minutes must be
// validated positive by the caller; the reducer applies it as given.
type RecordStudySession struct {
	Minutes int
	Subject string
	TaskID  string
}

type UpdateSettings struct {
	Patch model.SettingsPatch
}

// ArchiveOldTasks runs the two-phase retention sweep: hard-delete
// archived tasks past the retention window, then soft-archive completed
// tasks older than ArchiveDays.
type ArchiveOldTasks struct {
	ArchiveDays int
}

type AddSubject struct {
	Subject model.Subject
}

type UpdateSubject struct {
	ID    string
	Patch model.SubjectPatch
}

type DeleteSubject struct {
	ID string
}

type AddResource struct {
	Resource model.Resource
}

type UpdateResource struct {
	ID    string
	Patch model.ResourcePatch
}

type DeleteResource struct {
	ID string
}

type AddExam struct {
	Exam model.Exam
}

type UpdateExam struct {
	ID    string
	Patch model.ExamPatch
}

type DeleteExam struct {
	ID string
}

// ReplaceState swaps in a whole new state, used by backup import.
type ReplaceState struct {
	State State
}

func (AddTask) isAction()              {}
func (UpdateTask) isAction()           {}
func (DeleteTask) isAction()           {}
func (ToggleTaskCompletion) isAction() {}
func (RecordStudySession) isAction()   {}
func (UpdateSettings) isAction()       {}
func (ArchiveOldTasks) isAction()      {}
func (AddSubject) isAction()           {}
func (UpdateSubject) isAction()        {}
func (DeleteSubject) isAction()        {}
func (AddResource) isAction()          {}
func (UpdateResource) isAction()       {}
func (DeleteResource) isAction()       {}
func (AddExam) isAction()              {}
func (UpdateExam) isAction()           {}
func (DeleteExam) isAction()           {}
func (ReplaceState) isAction()         {}
