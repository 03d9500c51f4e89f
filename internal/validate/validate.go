// Package validate holds the task form rules. Validation runs before any
// network call; a form that fails here never reaches the gateway.
package validate

import (
	"strings"
	"time"

	"taskdeck/internal/model"
)

const dateLayout = "2006-01-02"

// TaskForm is the editable task record behind the create/edit form.
type TaskForm struct {
	Title       string
	Description string
	DueDate     string
	IsCompleted bool
	AssignedTo  string
}

// Task converts the form to the wire shape. id is zero in create mode.
func (f TaskForm) Task(id int) model.Task {
	return model.Task{
		ID:          id,
		Title:       strings.TrimSpace(f.Title),
		Description: strings.TrimSpace(f.Description),
		DueDate:     strings.TrimSpace(f.DueDate),
		IsCompleted: f.IsCompleted,
		AssignedTo:  strings.TrimSpace(f.AssignedTo),
	}
}

// FormFromTask pre-fills the form for edit mode.
func FormFromTask(t model.Task) TaskForm {
	return TaskForm{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		IsCompleted: t.IsCompleted,
		AssignedTo:  t.AssignedTo,
	}
}

// Errors maps field name to a user-facing message.
type Errors map[string]string

func (e Errors) OK() bool { return len(e) == 0 }

// Check validates the form. Rules: title required; description optional;
// due date required, well-formed, and not before today (day granularity, so
// "today" passes); assignee required only for admins, who create tasks on
// others' behalf. today is a parameter so tests do not depend on the clock.
func Check(f TaskForm, isAdmin bool, today time.Time) Errors {
	errs := Errors{}

	if strings.TrimSpace(f.Title) == "" {
		errs[model.FieldTitle] = "Title is required"
	}

	due := strings.TrimSpace(f.DueDate)
	switch {
	case due == "":
		errs[model.FieldDueDate] = "Due date is required"
	default:
		d, err := time.Parse(dateLayout, due)
		if err != nil {
			errs[model.FieldDueDate] = "Due date must be YYYY-MM-DD"
		} else if d.Before(day(today)) {
			errs[model.FieldDueDate] = "Due date cannot be in the past"
		}
	}

	if isAdmin && strings.TrimSpace(f.AssignedTo) == "" {
		errs[model.FieldAssignedTo] = "Assignee is required"
	}

	return errs
}

// day truncates t to midnight UTC so the comparison ignores time-of-day.
func day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
