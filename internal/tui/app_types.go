package tui

import (
	"context"

	"taskdeck/internal/api"
	"taskdeck/internal/model"
)

// Gateway is the slice of the task API the TUI uses. *api.Client satisfies
// it; tests substitute a fake to keep the model tests offline.
type Gateway interface {
	Login(ctx context.Context, username, password string) (api.LoginResult, error)
	ListTasks(ctx context.Context) ([]model.Task, error)
	GetTask(ctx context.Context, id int) (model.Task, error)
	CreateTask(ctx context.Context, task model.Task) (model.Task, error)
	UpdateTask(ctx context.Context, id int, task model.Task) error
	DeleteTask(ctx context.Context, id int) error
	AssignTask(ctx context.Context, id int, username string) error
}

type view int

const (
	viewLogin view = iota
	viewTasks
	viewDetail
	viewForm
)

type modalKind int

const (
	modalNone modalKind = iota
	modalConfirmDelete
	modalAssign
)

type confirmModalFocus int

const (
	confirmFocusConfirm confirmModalFocus = iota
	confirmFocusCancel
)

// loadState is the task list's lifecycle: Idle until the first load is
// kicked off, then Loading, then Loaded or LoadError.
type loadState int

const (
	loadIdle loadState = iota
	loadLoading
	loadLoaded
	loadError
)

type loginDoneMsg struct {
	res api.LoginResult
	err error
}

type tasksLoadedMsg struct {
	seq   int
	tasks []model.Task
	err   error
}

// taskLoadedMsg delivers the pre-load for an edit-mode form.
type taskLoadedMsg struct {
	task model.Task
	err  error
}

// saveDoneMsg reports a create or update round trip.
type saveDoneMsg struct {
	op  string // "create" | "update"
	err error
}

type deleteDoneMsg struct {
	id  int
	err error
}

type assignDoneMsg struct {
	id  int
	err error
}

type flashDoneMsg struct{ seq int }

// navigateBackMsg fires after the post-save acknowledgement delay and
// returns the user to the (reloaded) task list.
type navigateBackMsg struct{ seq int }

type flashKind int

const (
	flashInfo flashKind = iota
	flashSuccess
	flashError
)
