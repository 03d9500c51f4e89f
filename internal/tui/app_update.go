package tui

import (
	"context"
	"time"

	"taskdeck/internal/logging"
	"taskdeck/internal/model"
	"taskdeck/internal/validate"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

const (
	// flashDuration is how long transient notifications stay visible.
	flashDuration = 2 * time.Second
	// ackDelay lets a success notification register before the form
	// navigates back to the list.
	ackDelay = 800 * time.Millisecond
)

func (m appModel) Init() tea.Cmd {
	if m.view == viewTasks {
		return tea.Batch(textinput.Blink, m.loadTasksCmd(m.loadSeq), m.spin.Tick)
	}
	return textinput.Blink
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.seenWindowSize = true
		m.tasksList.SetSize(msg.Width-2, listHeight(msg.Height))
		m.descInput.SetWidth(formBodyWidth(msg.Width))
		return m, nil

	case spinner.TickMsg:
		if m.loggingIn || m.load == loadLoading || m.saving {
			var cmd tea.Cmd
			m.spin, cmd = m.spin.Update(msg)
			return m, cmd
		}
		return m, nil

	case flashDoneMsg:
		if msg.seq == m.flashSeq {
			m.flashText = ""
		}
		return m, nil

	case navigateBackMsg:
		if msg.seq != m.navSeq {
			return m, nil
		}
		m.view = viewTasks
		m.load = loadLoading
		m.loadSeq++
		return m, tea.Batch(m.loadTasksCmd(m.loadSeq), m.spin.Tick)

	case loginDoneMsg:
		return m.handleLoginDone(msg)

	case tasksLoadedMsg:
		if msg.seq != m.loadSeq {
			return m, nil
		}
		if msg.err != nil {
			m.load = loadError
			m.loadErr = "Error loading tasks"
			return m, nil
		}
		m.load = loadLoaded
		m.loadErr = ""
		m.tasks = msg.tasks
		m.refreshProjection()
		return m, nil

	case taskLoadedMsg:
		m.formLoading = false
		if msg.err != nil {
			m.setFlash(flashError, "Error loading task")
			m.view = viewTasks
			return m, m.flashCmd()
		}
		m.setForm(validate.FormFromTask(msg.task))
		m.setFormFocus(0)
		return m, nil

	case saveDoneMsg:
		m.saving = false
		if msg.err != nil {
			if msg.op == "create" {
				m.setFlash(flashError, "Error creating task")
			} else {
				m.setFlash(flashError, "Error updating task")
			}
			return m, m.flashCmd()
		}
		if msg.op == "create" {
			m.setFlash(flashSuccess, "Task created successfully")
		} else {
			m.setFlash(flashSuccess, "Task updated successfully")
		}
		m.navSeq++
		return m, tea.Batch(m.flashCmd(), m.navigateBackCmd(m.navSeq))

	case deleteDoneMsg:
		if msg.err != nil {
			m.setFlash(flashError, "Error deleting task")
			return m, m.flashCmd()
		}
		m.removeTask(msg.id)
		m.setFlash(flashSuccess, "Task deleted successfully")
		if m.confirmFromForm {
			m.confirmFromForm = false
			m.navSeq++
			return m, tea.Batch(m.flashCmd(), m.navigateBackCmd(m.navSeq))
		}
		return m, m.flashCmd()

	case assignDoneMsg:
		if msg.err != nil {
			m.setFlash(flashError, "Error assigning task")
			return m, m.flashCmd()
		}
		m.setFlash(flashSuccess, "Task assigned successfully")
		m.load = loadLoading
		m.loadSeq++
		return m, tea.Batch(m.flashCmd(), m.loadTasksCmd(m.loadSeq), m.spin.Tick)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m.updateFocused(msg)
}

func (m appModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	if m.modal != modalNone {
		return m.updateModal(msg)
	}

	switch m.view {
	case viewLogin:
		return m.updateLogin(msg)
	case viewTasks:
		return m.updateTasks(msg)
	case viewDetail:
		return m.updateDetail(msg)
	case viewForm:
		return m.updateForm(msg)
	}
	return m, nil
}

// updateFocused routes non-key messages (cursor blinks and the like) to the
// currently focused component.
func (m appModel) updateFocused(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	var cmd tea.Cmd

	switch m.view {
	case viewLogin:
		m.usernameInput, cmd = m.usernameInput.Update(msg)
		cmds = append(cmds, cmd)
		m.passwordInput, cmd = m.passwordInput.Update(msg)
		cmds = append(cmds, cmd)
	case viewTasks:
		if m.searching {
			m.searchInput, cmd = m.searchInput.Update(msg)
			cmds = append(cmds, cmd)
		}
	case viewForm:
		m.titleInput, cmd = m.titleInput.Update(msg)
		cmds = append(cmds, cmd)
		m.descInput, cmd = m.descInput.Update(msg)
		cmds = append(cmds, cmd)
		m.dueInput, cmd = m.dueInput.Update(msg)
		cmds = append(cmds, cmd)
		m.assigneeInput, cmd = m.assigneeInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	if m.modal == modalAssign {
		m.assignInput, cmd = m.assignInput.Update(msg)
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m appModel) updateLogin(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.loggingIn {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyTab, tea.KeyShiftTab, tea.KeyUp, tea.KeyDown:
		m.loginFocus = 1 - m.loginFocus
		if m.loginFocus == 0 {
			m.passwordInput.Blur()
			m.usernameInput.Focus()
		} else {
			m.usernameInput.Blur()
			m.passwordInput.Focus()
		}
		return m, nil

	case tea.KeyEnter:
		if m.loginFocus == 0 {
			// Move on; submitting from the username field is always a slip.
			m.loginFocus = 1
			m.usernameInput.Blur()
			m.passwordInput.Focus()
			return m, nil
		}
		username := m.usernameInput.Value()
		password := m.passwordInput.Value()
		if username == "" || password == "" {
			m.loginErr = "Username and password are required"
			return m, nil
		}
		m.loginErr = ""
		m.loggingIn = true
		return m, tea.Batch(m.loginCmd(username, password), m.spin.Tick)
	}

	var cmd tea.Cmd
	if m.loginFocus == 0 {
		m.usernameInput, cmd = m.usernameInput.Update(msg)
	} else {
		m.passwordInput, cmd = m.passwordInput.Update(msg)
	}
	return m, cmd
}

func (m appModel) handleLoginDone(msg loginDoneMsg) (tea.Model, tea.Cmd) {
	m.loggingIn = false
	if msg.err != nil {
		// Never more specific than this, whatever went wrong.
		m.loginErr = "Invalid username or password"
		return m, nil
	}
	if err := m.session.Save(context.Background(), msg.res.User(), msg.res.Token); err != nil {
		logging.L().WithError(err).Error("persisting session")
		m.loginErr = "Could not save the session"
		return m, nil
	}
	m.passwordInput.SetValue("")
	m.view = viewTasks
	m.load = loadLoading
	m.loadSeq++
	m.setFlash(flashInfo, "Welcome, "+msg.res.Username)
	return m, tea.Batch(m.flashCmd(), m.loadTasksCmd(m.loadSeq), m.spin.Tick)
}

func (m appModel) updateTasks(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.searching {
		switch msg.Type {
		case tea.KeyEnter:
			m.searching = false
			m.searchInput.Blur()
			m.searchTerm = m.searchInput.Value()
			m.refreshProjection()
			return m, nil
		case tea.KeyEsc:
			m.searching = false
			m.searchInput.Blur()
			m.searchInput.SetValue("")
			m.searchTerm = ""
			m.refreshProjection()
			return m, nil
		}
		var cmd tea.Cmd
		m.searchInput, cmd = m.searchInput.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "/":
		m.searching = true
		m.searchInput.SetValue(m.searchTerm)
		m.searchInput.Focus()
		return m, nil

	case "s":
		m.sortField = nextField(m.sortField)
		m.refreshProjection()
		return m, nil

	case "r":
		m.load = loadLoading
		m.loadSeq++
		return m, tea.Batch(m.loadTasksCmd(m.loadSeq), m.spin.Tick)

	case "n":
		m.openForm(0)
		return m, nil

	case "enter":
		if t, ok := m.selectedTask(); ok {
			m.detailTask = t
			m.view = viewDetail
		}
		return m, nil

	case "e":
		if t, ok := m.selectedTask(); ok {
			m.openForm(t.ID)
			return m, m.loadTaskCmd(t.ID)
		}
		return m, nil

	case "d":
		if t, ok := m.selectedTask(); ok {
			m.modal = modalConfirmDelete
			m.confirmTask = t
			m.confirmFocus = confirmFocusCancel
			m.confirmFromForm = false
		}
		return m, nil

	case "a":
		if !m.session.IsAdmin() {
			return m, nil
		}
		if t, ok := m.selectedTask(); ok {
			m.modal = modalAssign
			m.assignTask = t
			m.assignInput.SetValue(t.AssignedTo)
			m.assignInput.Focus()
		}
		return m, nil

	case "ctrl+l":
		if err := m.session.Clear(context.Background()); err != nil {
			logging.L().WithError(err).Error("clearing session")
		}
		m.view = viewLogin
		m.tasks = nil
		m.projection = nil
		m.tasksList.SetItems(nil)
		m.load = loadIdle
		m.loginFocus = 0
		m.passwordInput.Blur()
		m.usernameInput.Focus()
		return m, nil
	}

	var cmd tea.Cmd
	m.tasksList, cmd = m.tasksList.Update(msg)
	return m, cmd
}

func (m appModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "backspace", "q":
		m.view = viewTasks
		return m, nil
	case "e":
		m.openForm(m.detailTask.ID)
		return m, m.loadTaskCmd(m.detailTask.ID)
	case "d":
		m.modal = modalConfirmDelete
		m.confirmTask = m.detailTask
		m.confirmFocus = confirmFocusCancel
		m.confirmFromForm = false
		m.view = viewTasks
		return m, nil
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.saving || m.formLoading {
		return m, nil
	}

	switch msg.Type {
	case tea.KeyEsc:
		m.view = viewTasks
		return m, nil

	case tea.KeyTab:
		m.setFormFocus(m.formFocus + 1)
		return m, nil

	case tea.KeyShiftTab:
		m.setFormFocus(m.formFocus - 1)
		return m, nil

	case tea.KeyCtrlS:
		return m.submitForm()

	case tea.KeyCtrlD:
		if m.formEditID != 0 {
			m.modal = modalConfirmDelete
			m.confirmTask = m.form().Task(m.formEditID)
			m.confirmFocus = confirmFocusCancel
			m.confirmFromForm = true
		}
		return m, nil

	case tea.KeyEnter:
		// Enter submits except inside the multi-line description.
		if m.formFocus != 1 {
			return m.submitForm()
		}

	case tea.KeySpace:
		if m.formFocus == m.formFocusCompleted() {
			m.formCompleted = !m.formCompleted
			return m, nil
		}
	}

	var cmd tea.Cmd
	switch m.formFocus {
	case 0:
		m.titleInput, cmd = m.titleInput.Update(msg)
	case 1:
		m.descInput, cmd = m.descInput.Update(msg)
	case 2:
		m.dueInput, cmd = m.dueInput.Update(msg)
	case 3:
		if m.session.IsAdmin() {
			m.assigneeInput, cmd = m.assigneeInput.Update(msg)
		}
	}
	return m, cmd
}

// submitForm validates and, only when clean, sends the create/update. A
// failed validation marks the form touched so every message renders; no
// network call happens.
func (m appModel) submitForm() (tea.Model, tea.Cmd) {
	f := m.form()
	m.formTouched = true
	m.formErrs = validate.Check(f, m.session.IsAdmin(), time.Now())
	if !m.formErrs.OK() {
		return m, nil
	}

	m.saving = true
	if m.formEditID != 0 {
		return m, tea.Batch(m.updateCmd(m.formEditID, f.Task(m.formEditID)), m.spin.Tick)
	}
	return m, tea.Batch(m.createCmd(f.Task(0)), m.spin.Tick)
}

func (m appModel) updateModal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modal {
	case modalConfirmDelete:
		switch msg.Type {
		case tea.KeyEsc:
			m.modal = modalNone
			return m, nil
		case tea.KeyTab, tea.KeyShiftTab, tea.KeyLeft, tea.KeyRight:
			if m.confirmFocus == confirmFocusConfirm {
				m.confirmFocus = confirmFocusCancel
			} else {
				m.confirmFocus = confirmFocusConfirm
			}
			return m, nil
		case tea.KeyEnter:
			m.modal = modalNone
			if m.confirmFocus == confirmFocusConfirm {
				return m, m.deleteCmd(m.confirmTask.ID)
			}
			return m, nil
		}
		return m, nil

	case modalAssign:
		switch msg.Type {
		case tea.KeyEsc:
			m.modal = modalNone
			m.assignInput.Blur()
			return m, nil
		case tea.KeyEnter:
			username := m.assignInput.Value()
			if username == "" {
				return m, nil
			}
			m.modal = modalNone
			m.assignInput.Blur()
			return m, m.assignCmd(m.assignTask.ID, username)
		}
		var cmd tea.Cmd
		m.assignInput, cmd = m.assignInput.Update(msg)
		return m, cmd
	}
	return m, nil
}

func nextField(cur string) string {
	fields := model.SortableFields()
	if cur == "" {
		return fields[0]
	}
	for i, f := range fields {
		if f == cur {
			if i == len(fields)-1 {
				return ""
			}
			return fields[i+1]
		}
	}
	return ""
}

// Commands. Each runs one network call off the update loop and reports back
// as a message; the gateway is captured by value so a torn-down model cannot
// race the result.

func (m appModel) loginCmd(username, password string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		res, err := gw.Login(context.Background(), username, password)
		return loginDoneMsg{res: res, err: err}
	}
}

func (m appModel) loadTasksCmd(seq int) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		tasks, err := gw.ListTasks(context.Background())
		return tasksLoadedMsg{seq: seq, tasks: tasks, err: err}
	}
}

func (m appModel) loadTaskCmd(id int) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		t, err := gw.GetTask(context.Background(), id)
		return taskLoadedMsg{task: t, err: err}
	}
}

func (m appModel) createCmd(t model.Task) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		_, err := gw.CreateTask(context.Background(), t)
		return saveDoneMsg{op: "create", err: err}
	}
}

func (m appModel) updateCmd(id int, t model.Task) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		err := gw.UpdateTask(context.Background(), id, t)
		return saveDoneMsg{op: "update", err: err}
	}
}

func (m appModel) deleteCmd(id int) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		err := gw.DeleteTask(context.Background(), id)
		return deleteDoneMsg{id: id, err: err}
	}
}

func (m appModel) assignCmd(id int, username string) tea.Cmd {
	gw := m.gw
	return func() tea.Msg {
		err := gw.AssignTask(context.Background(), id, username)
		return assignDoneMsg{id: id, err: err}
	}
}

func (m appModel) flashCmd() tea.Cmd {
	seq := m.flashSeq
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg{seq: seq}
	})
}

func (m appModel) navigateBackCmd(seq int) tea.Cmd {
	return tea.Tick(ackDelay, func(time.Time) tea.Msg {
		return navigateBackMsg{seq: seq}
	})
}
