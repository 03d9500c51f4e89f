package filter

import (
	"reflect"
	"testing"

	"taskdeck/internal/model"
)

func sample() []model.Task {
	return []model.Task{
		{ID: 1, Title: "Write report", DueDate: "2026-09-03", AssignedTo: "alice"},
		{ID: 2, Title: "review PR", DueDate: "2026-09-01", AssignedTo: "bob", IsCompleted: true},
		{ID: 3, Title: "Deploy service", DueDate: "2026-08-30", AssignedTo: "alice"},
	}
}

func ids(ts []model.Task) []int {
	out := make([]int, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.ID)
	}
	return out
}

func TestApply_EmptyTermAndField_IsIdentity(t *testing.T) {
	in := sample()
	got := Apply(in, "", "")
	if !reflect.DeepEqual(got, in) {
		t.Fatalf("identity projection changed the collection: %v", ids(got))
	}
}

func TestApply_DoesNotMutateInput(t *testing.T) {
	in := sample()
	want := sample()
	_ = Apply(in, "re", model.FieldTitle)
	_ = Sort(in, model.FieldDueDate)
	if !reflect.DeepEqual(in, want) {
		t.Fatalf("input slice was mutated: %v", ids(in))
	}
}

func TestFilter_CaseInsensitiveContains(t *testing.T) {
	got := Filter(sample(), "RE", model.FieldTitle)
	if want := []int{1, 2}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestFilter_TermWithoutField_IsIdentity(t *testing.T) {
	got := Filter(sample(), "alice", "")
	if len(got) != 3 {
		t.Fatalf("got %d tasks, want 3", len(got))
	}
}

func TestFilter_NonStringField_MatchesNothing(t *testing.T) {
	got := Filter(sample(), "true", model.FieldIsCompleted)
	if len(got) != 0 {
		t.Fatalf("isCompleted should not contains-match, got %v", ids(got))
	}
}

func TestSort_StringField_CaseInsensitive(t *testing.T) {
	got := Sort(sample(), model.FieldTitle)
	if want := []int{3, 2, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestSort_Idempotent(t *testing.T) {
	once := Sort(sample(), model.FieldTitle)
	twice := Sort(once, model.FieldTitle)
	if !reflect.DeepEqual(ids(once), ids(twice)) {
		t.Fatalf("re-sort changed order: %v vs %v", ids(once), ids(twice))
	}
}

func TestSort_DueDate_Chronological(t *testing.T) {
	got := Sort(sample(), model.FieldDueDate)
	if want := []int{3, 2, 1}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestSort_Completed_PendingFirst(t *testing.T) {
	got := Sort(sample(), model.FieldIsCompleted)
	if got[len(got)-1].ID != 2 {
		t.Fatalf("completed task should sort last, got %v", ids(got))
	}
	// Pending tasks keep their relative order (stable sort).
	if want := []int{1, 3, 2}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestSort_NoField_PreservesServerOrder(t *testing.T) {
	got := Sort(sample(), "")
	if want := []int{1, 2, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}

func TestApply_FilterThenSort(t *testing.T) {
	tasks := []model.Task{
		{ID: 1, Title: "beta", AssignedTo: "alice"},
		{ID: 2, Title: "alpha", AssignedTo: "alice"},
		{ID: 3, Title: "gamma", AssignedTo: "bob"},
	}
	got := Apply(tasks, "a", model.FieldTitle)
	// All three titles contain "a"; order is alphabetical.
	if want := []int{2, 1, 3}; !reflect.DeepEqual(ids(got), want) {
		t.Fatalf("got %v, want %v", ids(got), want)
	}
}
