package api

import "fmt"

// NotFoundError reports a task id the server does not know.
type NotFoundError struct {
	Kind string
	ID   int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %d", e.Kind, e.ID)
}

func errNotFound(kind string, id int) error {
	return &NotFoundError{Kind: kind, ID: id}
}

// StatusError reports a non-success HTTP status. The client does not
// interpret status codes beyond 404; callers present a generic per-operation
// message and the code goes to the log.
type StatusError struct {
	Op   string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: server returned status %d", e.Op, e.Code)
}
