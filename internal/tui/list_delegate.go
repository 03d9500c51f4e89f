package tui

import (
	"fmt"
	"io"
	"strings"
	"time"

	"taskdeck/internal/model"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	xansi "github.com/charmbracelet/x/ansi"
)

// taskItem adapts a task to the bubbles list. Built-in list filtering is
// disabled (the projection is computed in internal/filter), so FilterValue
// is unused but must exist.
type taskItem struct {
	task model.Task
	mine bool
}

func (i taskItem) FilterValue() string { return i.task.Title }

type taskDelegate struct {
	normal   lipgloss.Style
	selected lipgloss.Style
	done     lipgloss.Style
	overdue  lipgloss.Style
	meta     lipgloss.Style
}

func newTaskDelegate() taskDelegate {
	return taskDelegate{
		normal:   lipgloss.NewStyle(),
		selected: lipgloss.NewStyle().Foreground(colorSelectedFg).Background(colorSelectedBg).Bold(true),
		done:     lipgloss.NewStyle().Foreground(colorDoneFg),
		overdue:  lipgloss.NewStyle().Foreground(colorOverdueFg),
		meta:     styleMuted(),
	}
}

func (d taskDelegate) Height() int  { return 1 }
func (d taskDelegate) Spacing() int { return 0 }
func (d taskDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd {
	return nil
}

func (d taskDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	contentW := m.Width()
	if contentW < 4 {
		fmt.Fprint(w, "")
		return
	}

	it, ok := item.(taskItem)
	if !ok {
		fmt.Fprint(w, "")
		return
	}
	t := it.task

	check := "[ ]"
	if t.IsCompleted {
		check = "[x]"
	}

	due := t.DueDate
	if isOverdue(t) && index != m.Index() {
		due = d.overdue.Render(due)
	}

	meta := due
	if t.AssignedTo != "" {
		meta += "  @" + t.AssignedTo
	}
	if it.mine {
		meta += "  (mine)"
	}

	title := t.Title
	line := fmt.Sprintf(" %s %s", check, title)
	if meta != "" {
		line += "  " + d.meta.Render(meta)
	}

	style := d.normal
	if index == m.Index() {
		style = d.selected
		// Selection background must cover the whole row, so drop nested
		// styling inside the line.
		line = fmt.Sprintf(" %s %s  %s", check, title, stripMeta(t, it.mine))
	} else if t.IsCompleted {
		line = d.done.Render(fmt.Sprintf(" %s %s", check, title))
		if meta != "" {
			line += "  " + d.meta.Render(meta)
		}
	}

	lineW := xansi.StringWidth(line)
	if lineW < contentW {
		line += strings.Repeat(" ", contentW-lineW)
	} else if lineW > contentW {
		line = xansi.Cut(line, 0, contentW)
	}
	fmt.Fprint(w, style.Render(line))
}

func stripMeta(t model.Task, mine bool) string {
	meta := t.DueDate
	if t.AssignedTo != "" {
		meta += "  @" + t.AssignedTo
	}
	if mine {
		meta += "  (mine)"
	}
	return meta
}

func isOverdue(t model.Task) bool {
	if t.IsCompleted {
		return false
	}
	d, err := time.Parse("2006-01-02", t.DueDate)
	if err != nil {
		return false
	}
	y, m, day := time.Now().Date()
	today := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return d.Before(today)
}
