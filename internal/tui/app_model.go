package tui

import (
	"taskdeck/internal/filter"
	"taskdeck/internal/model"
	"taskdeck/internal/session"
	"taskdeck/internal/validate"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
)

type appModel struct {
	session *session.Store
	gw      Gateway

	width  int
	height int
	// The very first WindowSizeMsg is initial sizing, not a user resize.
	seenWindowSize bool

	view  view
	modal modalKind

	// Login screen.
	usernameInput textinput.Model
	passwordInput textinput.Model
	loginFocus    int // 0 = username, 1 = password
	loggingIn     bool
	loginErr      string
	spin          spinner.Model

	// Task list. tasks is the server collection as loaded; projection is the
	// filtered/sorted subset actually shown.
	tasksList  list.Model
	tasks      []model.Task
	projection []model.Task
	load       loadState
	loadErr    string
	// loadSeq guards against results from a superseded reload landing on a
	// newer list.
	loadSeq int

	searching   bool
	searchInput textinput.Model
	searchTerm  string
	sortField   string

	// Detail screen.
	detailTask model.Task

	// Form screen. formEditID is zero in create mode.
	formEditID    int
	formLoading   bool
	titleInput    textinput.Model
	descInput     textarea.Model
	dueInput      textinput.Model
	assigneeInput textinput.Model
	formCompleted bool
	formFocus     int
	formErrs      validate.Errors
	formTouched   bool
	saving        bool
	// navSeq guards the post-save acknowledgement delay.
	navSeq int

	// Delete confirmation / assignment modals.
	confirmTask     model.Task
	confirmFocus    confirmModalFocus
	confirmFromForm bool
	assignTask      model.Task
	assignInput     textinput.Model

	flashText string
	flashKind flashKind
	flashSeq  int
}

func newAppModel(sess *session.Store, gw Gateway) appModel {
	username := textinput.New()
	username.Placeholder = "username"
	username.CharLimit = 64
	username.Focus()

	password := textinput.New()
	password.Placeholder = "password"
	password.CharLimit = 128
	password.EchoMode = textinput.EchoPassword
	password.EchoCharacter = '•'

	search := textinput.New()
	search.Placeholder = "search"
	search.CharLimit = 128

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = 200

	desc := textarea.New()
	desc.Placeholder = "description (optional, markdown)"
	desc.SetHeight(4)
	desc.ShowLineNumbers = false

	due := textinput.New()
	due.Placeholder = "YYYY-MM-DD"
	due.CharLimit = 10

	assignee := textinput.New()
	assignee.Placeholder = "assignee username"
	assignee.CharLimit = 64

	assign := textinput.New()
	assign.Placeholder = "username"
	assign.CharLimit = 64

	tasksList := list.New(nil, newTaskDelegate(), 0, 0)
	tasksList.SetShowTitle(false)
	tasksList.SetShowStatusBar(false)
	tasksList.SetShowHelp(false)
	tasksList.SetFilteringEnabled(false)
	tasksList.SetShowPagination(true)
	tasksList.DisableQuitKeybindings()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := appModel{
		session:       sess,
		gw:            gw,
		view:          viewLogin,
		usernameInput: username,
		passwordInput: password,
		searchInput:   search,
		titleInput:    title,
		descInput:     desc,
		dueInput:      due,
		assigneeInput: assignee,
		assignInput:   assign,
		tasksList:     tasksList,
		spin:          sp,
	}
	if sess.IsLoggedIn() {
		m.view = viewTasks
		m.load = loadLoading
	}
	return m
}

// refreshProjection recomputes the filtered/sorted projection and pushes it
// into the list, keeping the cursor on the same task when it survives.
func (m *appModel) refreshProjection() {
	keepID := m.selectedTaskID()

	m.projection = filter.Apply(m.tasks, m.searchTerm, m.sortField)

	me := ""
	if u := m.session.Current(); u != nil {
		me = u.Username
	}
	items := make([]list.Item, 0, len(m.projection))
	for _, t := range m.projection {
		items = append(items, taskItem{task: t, mine: t.IsAssignedTo(me)})
	}
	m.tasksList.SetItems(items)

	if keepID != 0 {
		for i, t := range m.projection {
			if t.ID == keepID {
				m.tasksList.Select(i)
				break
			}
		}
	}
}

func (m *appModel) selectedTask() (model.Task, bool) {
	it, ok := m.tasksList.SelectedItem().(taskItem)
	if !ok {
		return model.Task{}, false
	}
	return it.task, true
}

func (m *appModel) selectedTaskID() int {
	if t, ok := m.selectedTask(); ok {
		return t.ID
	}
	return 0
}

// removeTask drops a task from the local collection and projection without
// reloading (optimistic removal after a confirmed delete).
func (m *appModel) removeTask(id int) {
	keep := func(ts []model.Task) []model.Task {
		out := ts[:0]
		for _, t := range ts {
			if t.ID != id {
				out = append(out, t)
			}
		}
		return out
	}
	m.tasks = keep(m.tasks)
	m.refreshProjection()
}

// openForm switches to the form view. editID is zero for create mode; in
// edit mode the task is pre-loaded asynchronously.
func (m *appModel) openForm(editID int) {
	m.view = viewForm
	m.modal = modalNone
	m.formEditID = editID
	m.formLoading = editID != 0
	m.formErrs = nil
	m.formTouched = false
	m.saving = false
	m.setForm(validate.TaskForm{})
	m.setFormFocus(0)
}

func (m *appModel) setForm(f validate.TaskForm) {
	m.titleInput.SetValue(f.Title)
	m.descInput.SetValue(f.Description)
	m.dueInput.SetValue(f.DueDate)
	m.assigneeInput.SetValue(f.AssignedTo)
	m.formCompleted = f.IsCompleted
}

func (m *appModel) form() validate.TaskForm {
	return validate.TaskForm{
		Title:       m.titleInput.Value(),
		Description: m.descInput.Value(),
		DueDate:     m.dueInput.Value(),
		AssignedTo:  m.assigneeInput.Value(),
		IsCompleted: m.formCompleted,
	}
}

// Form focus order: title, description, due date, assignee (admins only),
// completed toggle.
func (m *appModel) formFieldCount() int {
	if m.session.IsAdmin() {
		return 5
	}
	return 4
}

// formFocusCompleted is the index of the completed toggle, which is the last
// field.
func (m *appModel) formFocusCompleted() int {
	return m.formFieldCount() - 1
}

func (m *appModel) setFormFocus(i int) {
	n := m.formFieldCount()
	m.formFocus = ((i % n) + n) % n

	m.titleInput.Blur()
	m.descInput.Blur()
	m.dueInput.Blur()
	m.assigneeInput.Blur()

	switch m.formFocus {
	case 0:
		m.titleInput.Focus()
	case 1:
		m.descInput.Focus()
	case 2:
		m.dueInput.Focus()
	case 3:
		if m.session.IsAdmin() {
			m.assigneeInput.Focus()
		}
	}
}

func (m *appModel) setFlash(kind flashKind, text string) {
	m.flashKind = kind
	m.flashText = text
	m.flashSeq++
}
