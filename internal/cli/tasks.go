package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"taskdeck/internal/filter"
	"taskdeck/internal/model"
	"taskdeck/internal/validate"

	"github.com/spf13/cobra"
)

func newTasksCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tasks",
		Short: "Task commands",
	}
	cmd.AddCommand(newTasksListCmd(app))
	cmd.AddCommand(newTasksShowCmd(app))
	cmd.AddCommand(newTasksCreateCmd(app))
	cmd.AddCommand(newTasksUpdateCmd(app))
	cmd.AddCommand(newTasksDeleteCmd(app))
	cmd.AddCommand(newTasksAssignCmd(app))
	return cmd
}

func newTasksListCmd(app *App) *cobra.Command {
	var search string
	var field string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Long:  "List tasks in server order. --sort selects the field used for both sorting and --search matching.",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			f := ""
			if strings.TrimSpace(field) != "" {
				var ok bool
				if f, ok = model.NormalizeField(field); !ok {
					return writeErr(cmd, fmt.Errorf("unknown field: %s (valid: %s)", field, strings.Join(model.SortableFields(), ", ")))
				}
			}

			tasks, err := e.client.ListTasks(cmd.Context())
			if err != nil {
				return writeErr(cmd, errors.New("error loading tasks"))
			}
			return writeOut(cmd, app, map[string]any{"data": filter.Apply(tasks, search, f)})
		},
	}

	cmd.Flags().StringVar(&search, "search", "", "Substring to match (case-insensitive) against the --sort field")
	cmd.Flags().StringVar(&field, "sort", "", "Field to sort and match on (title|description|dueDate|isCompleted|assignedTo|createdBy)")
	return cmd
}

func newTasksShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			t, err := e.client.GetTask(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			return writeOut(cmd, app, map[string]any{"data": t})
		},
	}
}

func newTasksCreateCmd(app *App) *cobra.Command {
	var form validate.TaskForm

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if errs := validate.Check(form, e.session.IsAdmin(), time.Now()); !errs.OK() {
				return writeErr(cmd, validationError(errs))
			}
			created, err := e.client.CreateTask(cmd.Context(), form.Task(0))
			if err != nil {
				return writeErr(cmd, errors.New("error creating task"))
			}
			return writeOut(cmd, app, map[string]any{"data": created})
		},
	}

	addFormFlags(cmd, &form)
	_ = cmd.MarkFlagRequired("title")
	_ = cmd.MarkFlagRequired("due")
	return cmd
}

func newTasksUpdateCmd(app *App) *cobra.Command {
	var form validate.TaskForm

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a task (full replacement; unset flags keep current values)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			existing, err := e.client.GetTask(cmd.Context(), id)
			if err != nil {
				return writeErr(cmd, err)
			}
			merged := validate.FormFromTask(existing)
			applyChangedFlags(cmd, &merged, form)

			if errs := validate.Check(merged, e.session.IsAdmin(), time.Now()); !errs.OK() {
				return writeErr(cmd, validationError(errs))
			}
			if err := e.client.UpdateTask(cmd.Context(), id, merged.Task(id)); err != nil {
				return writeErr(cmd, errors.New("error updating task"))
			}
			return writeOut(cmd, app, map[string]any{"data": merged.Task(id)})
		},
	}

	addFormFlags(cmd, &form)
	return cmd
}

func newTasksDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			// Destructive: require an explicit gate, same as the TUI's
			// confirm modal.
			if !yes && !confirm(cmd, fmt.Sprintf("Delete task %d? [y/N] ", id)) {
				return writeOut(cmd, app, map[string]any{"data": "aborted"})
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if err := e.client.DeleteTask(cmd.Context(), id); err != nil {
				return writeErr(cmd, errors.New("error deleting task"))
			}
			return writeOut(cmd, app, map[string]any{"data": "deleted"})
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "Skip the confirmation prompt")
	return cmd
}

func newTasksAssignCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "assign <id> <username>",
		Short: "Assign a task to a user",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseTaskID(args[0])
			if err != nil {
				return writeErr(cmd, err)
			}
			username := strings.TrimSpace(args[1])
			if username == "" {
				return writeErr(cmd, errors.New("username is required"))
			}
			e, err := openEnv(cmd.Context(), app)
			if err != nil {
				return writeErr(cmd, err)
			}
			defer e.Close()

			if err := e.client.AssignTask(cmd.Context(), id, username); err != nil {
				return writeErr(cmd, errors.New("error assigning task"))
			}
			return writeOut(cmd, app, map[string]any{"data": "assigned"})
		},
	}
}

func addFormFlags(cmd *cobra.Command, form *validate.TaskForm) {
	cmd.Flags().StringVar(&form.Title, "title", "", "Task title")
	cmd.Flags().StringVar(&form.Description, "description", "", "Task description")
	cmd.Flags().StringVar(&form.DueDate, "due", "", "Due date (YYYY-MM-DD, today or later)")
	cmd.Flags().BoolVar(&form.IsCompleted, "completed", false, "Mark the task completed")
	cmd.Flags().StringVar(&form.AssignedTo, "assignee", "", "Assignee username (required for admins)")
}

// applyChangedFlags copies only the flags the user actually set onto the
// merged form, so update stays a targeted edit over the server copy.
func applyChangedFlags(cmd *cobra.Command, dst *validate.TaskForm, src validate.TaskForm) {
	if cmd.Flags().Changed("title") {
		dst.Title = src.Title
	}
	if cmd.Flags().Changed("description") {
		dst.Description = src.Description
	}
	if cmd.Flags().Changed("due") {
		dst.DueDate = src.DueDate
	}
	if cmd.Flags().Changed("completed") {
		dst.IsCompleted = src.IsCompleted
	}
	if cmd.Flags().Changed("assignee") {
		dst.AssignedTo = src.AssignedTo
	}
}

func parseTaskID(s string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid task id: %s", s)
	}
	return id, nil
}

func validationError(errs validate.Errors) error {
	parts := make([]string, 0, len(errs))
	for _, f := range model.SortableFields() {
		if msg, ok := errs[f]; ok {
			parts = append(parts, msg)
		}
	}
	return errors.New(strings.Join(parts, "; "))
}

func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	r := bufio.NewReader(cmd.InOrStdin())
	line, _ := r.ReadString('\n')
	line = strings.ToLower(strings.TrimSpace(line))
	return line == "y" || line == "yes"
}
