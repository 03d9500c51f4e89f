package model

import "strings"

// RoleAdmin is the role string the server uses for privileged users.
// Any other role value is a regular user.
const RoleAdmin = "Admin"

type User struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Logo     string `json:"logo,omitempty"`
}

func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// Session couples the authenticated user with the bearer token issued for
// them. The two always travel together: both set after login, both cleared
// on logout.
type Session struct {
	User  *User  `json:"user,omitempty"`
	Token string `json:"token,omitempty"`
}

// Task mirrors the server's task resource. ID is server-assigned and zero
// for tasks that have not been created yet. DueDate is a date-only string
// (YYYY-MM-DD); the server does not carry time-of-day.
type Task struct {
	ID          int    `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	DueDate     string `json:"dueDate"`
	IsCompleted bool   `json:"isCompleted"`
	AssignedTo  string `json:"assignedTo,omitempty"`
	CreatedBy   string `json:"createdBy,omitempty"`
}

// IsAssignedTo reports whether the task belongs to the given username.
// Ownership on the client is a plain string comparison; the server enforces
// the real rules.
func (t Task) IsAssignedTo(username string) bool {
	return username != "" && t.AssignedTo == username
}

// Task field names used for filtering and sorting. These are the wire names
// so saved UI state stays meaningful across versions.
const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldDueDate     = "dueDate"
	FieldIsCompleted = "isCompleted"
	FieldAssignedTo  = "assignedTo"
	FieldCreatedBy   = "createdBy"
)

// StringField returns the value of a string-typed field, or ok=false for
// fields that are not strings (isCompleted) or unknown names. Only string
// fields participate in contains-matching.
func (t Task) StringField(name string) (string, bool) {
	switch name {
	case FieldTitle:
		return t.Title, true
	case FieldDescription:
		return t.Description, true
	case FieldDueDate:
		return t.DueDate, true
	case FieldAssignedTo:
		return t.AssignedTo, true
	case FieldCreatedBy:
		return t.CreatedBy, true
	default:
		return "", false
	}
}

// SortableFields lists the fields offered by the list view's sort/filter
// selector, in cycle order.
func SortableFields() []string {
	return []string{
		FieldTitle,
		FieldDescription,
		FieldDueDate,
		FieldIsCompleted,
		FieldAssignedTo,
		FieldCreatedBy,
	}
}

// ValidField reports whether name is a known task field.
func ValidField(name string) bool {
	if name == FieldIsCompleted {
		return true
	}
	_, ok := Task{}.StringField(name)
	return ok
}

// NormalizeField maps a case-insensitive user-supplied field name (e.g. from
// a CLI flag) to its canonical wire name.
func NormalizeField(name string) (string, bool) {
	name = strings.TrimSpace(name)
	for _, f := range SortableFields() {
		if strings.EqualFold(f, name) {
			return f, true
		}
	}
	return "", false
}
