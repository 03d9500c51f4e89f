package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Vertical chrome around the task list: header, flash, filter bar, help.
const listChromeLines = 6

func listHeight(height int) int {
	h := height - listChromeLines
	if h < 3 {
		h = 3
	}
	return h
}

func formBodyWidth(width int) int {
	w := width - 8
	if w > 64 {
		w = 64
	}
	if w < 20 {
		w = 20
	}
	return w
}

func (m appModel) View() string {
	if !m.seenWindowSize {
		return ""
	}

	var body string
	switch m.view {
	case viewLogin:
		body = m.viewLogin()
	case viewTasks:
		body = m.viewTasks()
	case viewDetail:
		body = m.viewDetail()
	case viewForm:
		body = m.viewForm()
	}

	screen := strings.Join([]string{
		m.viewHeader(),
		m.viewFlash(),
		body,
	}, "\n")

	if m.modal != modalNone {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.viewModal())
	}
	return screen
}

func (m appModel) viewHeader() string {
	left := lipgloss.NewStyle().Bold(true).Render("taskdeck")
	right := ""
	if u := m.session.Current(); u != nil {
		right = u.Username
		if u.IsAdmin() {
			right += " (admin)"
		}
	}
	gap := m.width - lipgloss.Width(left) - lipgloss.Width(right) - 2
	if gap < 1 {
		gap = 1
	}
	return " " + left + strings.Repeat(" ", gap) + styleMuted().Render(right)
}

func (m appModel) viewFlash() string {
	if m.flashText == "" {
		return ""
	}
	return " " + styleFlash(m.flashKind).Render(m.flashText)
}

func (m appModel) viewLogin() string {
	bodyW := formBodyWidth(m.width)

	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Bold(true).Render("Log in") + "\n\n")
	b.WriteString(styleMuted().Render("Username") + "\n")
	b.WriteString(renderInputLine(bodyW, m.usernameInput.View()) + "\n")
	b.WriteString(styleMuted().Render("Password") + "\n")
	b.WriteString(renderInputLine(bodyW, m.passwordInput.View()) + "\n")

	if m.loginErr != "" {
		b.WriteString("\n" + lipgloss.NewStyle().Foreground(colorErrorFg).Render(m.loginErr) + "\n")
	}
	if m.loggingIn {
		b.WriteString("\n" + m.spin.View() + styleMuted().Render(" signing in…") + "\n")
	}
	b.WriteString("\n" + styleMuted().Render("tab: switch field   enter: log in   ctrl+c: quit"))

	box := lipgloss.NewStyle().Padding(1, 2).Render(b.String())
	return lipgloss.Place(m.width, m.height-3, lipgloss.Center, lipgloss.Center, box)
}

func (m appModel) viewTasks() string {
	var b strings.Builder

	// Filter/sort bar.
	sortLabel := m.sortField
	if sortLabel == "" {
		sortLabel = "server order"
	}
	bar := " sort: " + sortLabel
	if m.searching {
		bar += "   search: " + m.searchInput.View()
	} else if m.searchTerm != "" {
		bar += fmt.Sprintf("   search: %q", m.searchTerm)
	}
	b.WriteString(styleMuted().Render(bar) + "\n")

	switch m.load {
	case loadIdle, loadLoading:
		b.WriteString("\n " + m.spin.View() + styleMuted().Render(" loading tasks…") + "\n")
	case loadError:
		b.WriteString("\n " + lipgloss.NewStyle().Foreground(colorErrorFg).Render(m.loadErr) +
			styleMuted().Render("   (r to retry)") + "\n")
	case loadLoaded:
		if len(m.projection) == 0 {
			if m.searchTerm != "" {
				b.WriteString("\n " + styleMuted().Render("No tasks match the current filter.") + "\n")
			} else {
				b.WriteString("\n " + styleMuted().Render("No tasks yet. Press n to create one.") + "\n")
			}
		} else {
			b.WriteString(m.tasksList.View() + "\n")
		}
	}

	help := "/: search   s: sort   n: new   enter: open   e: edit   d: delete   r: reload"
	if m.session.IsAdmin() {
		help += "   a: assign"
	}
	help += "   ctrl+l: log out   q: quit"
	b.WriteString("\n" + styleMuted().Render(" "+help))
	return b.String()
}

func (m appModel) viewDetail() string {
	t := m.detailTask
	bodyW := formBodyWidth(m.width)

	var b strings.Builder
	b.WriteString(" " + lipgloss.NewStyle().Bold(true).Render(t.Title) + "\n\n")

	status := "pending"
	if t.IsCompleted {
		status = "completed"
	}
	meta := []string{
		"status: " + status,
		"due: " + t.DueDate,
	}
	if t.AssignedTo != "" {
		line := "assigned to: " + t.AssignedTo
		if u := m.session.Current(); u != nil && t.IsAssignedTo(u.Username) {
			line += " (you)"
		}
		meta = append(meta, line)
	}
	if t.CreatedBy != "" {
		meta = append(meta, "created by: "+t.CreatedBy)
	}
	for _, line := range meta {
		b.WriteString(" " + styleMuted().Render(line) + "\n")
	}

	if t.Description != "" {
		b.WriteString("\n" + renderMarkdown(t.Description, bodyW) + "\n")
	}

	b.WriteString("\n" + styleMuted().Render(" e: edit   d: delete   esc: back"))
	return b.String()
}

func (m appModel) viewForm() string {
	bodyW := formBodyWidth(m.width)

	title := "New task"
	if m.formEditID != 0 {
		title = fmt.Sprintf("Edit task #%d", m.formEditID)
	}

	var b strings.Builder
	b.WriteString(" " + lipgloss.NewStyle().Bold(true).Render(title) + "\n\n")

	if m.formLoading {
		b.WriteString(" " + m.spin.View() + styleMuted().Render(" loading task…") + "\n")
		return b.String()
	}

	writeField := func(label, errKey, input string) {
		b.WriteString(" " + styleMuted().Render(label) + "\n")
		b.WriteString(" " + input + "\n")
		if m.formTouched {
			if msg, ok := m.formErrs[errKey]; ok {
				b.WriteString(" " + lipgloss.NewStyle().Foreground(colorErrorFg).Render(msg) + "\n")
			}
		}
	}

	writeField("Title", "title", renderInputLine(bodyW, m.titleInput.View()))
	writeField("Description", "description", m.descInput.View())
	writeField("Due date", "dueDate", renderInputLine(bodyW, m.dueInput.View()))
	if m.session.IsAdmin() {
		writeField("Assign to", "assignedTo", renderInputLine(bodyW, m.assigneeInput.View()))
	}

	check := "[ ]"
	if m.formCompleted {
		check = "[x]"
	}
	completed := check + " Completed"
	if m.formFocus == m.formFocusCompleted() {
		completed = lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Render(completed)
	}
	b.WriteString(" " + completed + "\n")

	if m.saving {
		b.WriteString("\n " + m.spin.View() + styleMuted().Render(" saving…") + "\n")
	}

	help := "tab: next field   enter/ctrl+s: save   esc: cancel"
	if m.formEditID != 0 {
		help += "   ctrl+d: delete"
	}
	b.WriteString("\n" + styleMuted().Render(" "+help))
	return b.String()
}

func (m appModel) viewModal() string {
	switch m.modal {
	case modalConfirmDelete:
		body := fmt.Sprintf("Delete %q? This cannot be undone.", m.confirmTask.Title)
		return renderConfirmModal(m.width, "Delete task", body, "Delete", "Cancel", m.confirmFocus)
	case modalAssign:
		bodyW := modalBodyWidth(m.width)
		content := strings.Join([]string{
			renderInputLine(bodyW, m.assignInput.View()),
			"",
			styleMuted().Width(bodyW).Render("enter: assign   esc: cancel"),
		}, "\n")
		return renderModalBox(m.width, fmt.Sprintf("Assign %q", m.assignTask.Title), content)
	}
	return ""
}
