// Package filter computes the task list projection: the filtered, sorted
// subset of the full collection the list view shows. All functions are pure;
// the input slice is never mutated.
package filter

import (
	"sort"
	"strings"
	"time"

	"taskdeck/internal/model"
)

// Apply filters tasks by term against the selected field, then sorts by that
// field. An empty term or empty field leaves the collection unchanged (the
// identity projection).
func Apply(tasks []model.Task, term, field string) []model.Task {
	return Sort(Filter(tasks, term, field), field)
}

// Filter keeps tasks whose selected field contains term, compared
// case-insensitively. Only string-typed fields participate; selecting
// isCompleted (or an unknown field) matches nothing when a term is given.
func Filter(tasks []model.Task, term, field string) []model.Task {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" || field == "" {
		return append([]model.Task(nil), tasks...)
	}

	out := make([]model.Task, 0, len(tasks))
	for _, t := range tasks {
		v, ok := t.StringField(field)
		if !ok {
			continue
		}
		if strings.Contains(strings.ToLower(v), term) {
			out = append(out, t)
		}
	}
	return out
}

// Sort orders tasks by the selected field: case-insensitive lexicographic
// for strings, false before true for isCompleted (pending tasks first), and
// chronological when both values parse as dates. The sort is stable, so
// re-sorting an already-sorted projection is a no-op.
func Sort(tasks []model.Task, field string) []model.Task {
	out := append([]model.Task(nil), tasks...)
	if field == "" {
		return out
	}

	sort.SliceStable(out, func(i, j int) bool {
		return less(out[i], out[j], field)
	})
	return out
}

func less(a, b model.Task, field string) bool {
	if field == model.FieldIsCompleted {
		return !a.IsCompleted && b.IsCompleted
	}

	av, aok := a.StringField(field)
	bv, bok := b.StringField(field)
	if !aok || !bok {
		return false
	}

	if at, bt, ok := parseDates(av, bv); ok {
		return at.Before(bt)
	}
	return strings.ToLower(av) < strings.ToLower(bv)
}

// Wire dates are day-granularity; RFC 3339 is accepted for servers that
// return full timestamps.
var dateLayouts = []string{"2006-01-02", time.RFC3339}

func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func parseDates(a, b string) (time.Time, time.Time, bool) {
	at, ok := parseDate(a)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	bt, ok := parseDate(b)
	if !ok {
		return time.Time{}, time.Time{}, false
	}
	return at, bt, true
}
