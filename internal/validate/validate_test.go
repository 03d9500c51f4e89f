package validate

import (
	"testing"
	"time"

	"taskdeck/internal/model"
)

var today = time.Date(2026, time.August, 31, 14, 30, 0, 0, time.Local)

func validForm() TaskForm {
	return TaskForm{
		Title:   "Write report",
		DueDate: "2026-09-03",
	}
}

func TestCheck_ValidForm(t *testing.T) {
	if errs := Check(validForm(), false, today); !errs.OK() {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestCheck_TitleRequired(t *testing.T) {
	f := validForm()
	f.Title = "   "
	errs := Check(f, false, today)
	if _, ok := errs[model.FieldTitle]; !ok {
		t.Fatalf("expected title error, got %v", errs)
	}
}

func TestCheck_DescriptionOptional(t *testing.T) {
	f := validForm()
	f.Description = ""
	if errs := Check(f, false, today); !errs.OK() {
		t.Fatalf("description must be optional, got %v", errs)
	}
}

func TestCheck_DueDateBoundary(t *testing.T) {
	cases := []struct {
		name string
		due  string
		ok   bool
	}{
		{"yesterday rejected", "2026-08-30", false},
		{"today accepted", "2026-08-31", true},
		{"tomorrow accepted", "2026-09-01", true},
		{"far future accepted", "2030-01-01", true},
		{"missing rejected", "", false},
		{"malformed rejected", "31/08/2026", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := validForm()
			f.DueDate = tc.due
			errs := Check(f, false, today)
			_, hasErr := errs[model.FieldDueDate]
			if tc.ok && hasErr {
				t.Fatalf("due %q: unexpected error %v", tc.due, errs)
			}
			if !tc.ok && !hasErr {
				t.Fatalf("due %q: expected a due date error", tc.due)
			}
		})
	}
}

func TestCheck_AssigneeRequiredOnlyForAdmins(t *testing.T) {
	f := validForm()
	f.AssignedTo = ""

	if errs := Check(f, false, today); !errs.OK() {
		t.Fatalf("non-admin must not need an assignee, got %v", errs)
	}
	errs := Check(f, true, today)
	if _, ok := errs[model.FieldAssignedTo]; !ok {
		t.Fatalf("admin must need an assignee, got %v", errs)
	}

	f.AssignedTo = "bob"
	if errs := Check(f, true, today); !errs.OK() {
		t.Fatalf("expected no errors with assignee set, got %v", errs)
	}
}

func TestTask_TrimsFields(t *testing.T) {
	f := TaskForm{Title: "  hello  ", DueDate: " 2026-09-03 ", AssignedTo: " bob "}
	task := f.Task(7)
	if task.ID != 7 || task.Title != "hello" || task.DueDate != "2026-09-03" || task.AssignedTo != "bob" {
		t.Fatalf("unexpected task: %+v", task)
	}
}

func TestFormFromTask_RoundTrip(t *testing.T) {
	orig := model.Task{ID: 3, Title: "x", Description: "d", DueDate: "2026-09-03", IsCompleted: true, AssignedTo: "bob"}
	got := FormFromTask(orig).Task(orig.ID)
	if got != orig {
		// CreatedBy is server-assigned and not part of the form.
		orig.CreatedBy = ""
		if got != orig {
			t.Fatalf("round trip changed the task: %+v", got)
		}
	}
}
