package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"taskdeck/internal/model"
)

func TestLogin(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/Auth/login" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var body map[string]string
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode body: %v", err)
		}
		if body["username"] != "alice" || body["password"] != "pw" {
			t.Errorf("unexpected credentials: %v", body)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{
			"username": "alice",
			"role":     "Admin",
			"token":    "tok123",
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	res, err := c.Login(context.Background(), "alice", "pw")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if res.Token != "tok123" {
		t.Fatalf("token = %q", res.Token)
	}
	u := res.User()
	if u.Username != "alice" || !u.IsAdmin() {
		t.Fatalf("user = %+v", u)
	}
}

func TestLogin_BadCredentialsSurfaceAsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.Login(context.Background(), "alice", "wrong")
	if err == nil {
		t.Fatal("expected error")
	}
	se := asStatus(err)
	if se == nil || se.Code != http.StatusUnauthorized {
		t.Fatalf("err = %v", err)
	}
}

func TestListTasks_SendsAuthAndPreservesOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer tok123" {
			t.Errorf("Authorization = %q", got)
		}
		if r.URL.Path != "/Tasks" {
			t.Errorf("path = %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]model.Task{
			{ID: 9, Title: "c"},
			{ID: 5, Title: "a"},
			{ID: 7, Title: "b"},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, staticToken("tok123"))
	tasks, err := c.ListTasks(context.Background())
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// Server order, no client-side reordering.
	if len(tasks) != 3 || tasks[0].ID != 9 || tasks[1].ID != 5 || tasks[2].ID != 7 {
		t.Fatalf("tasks = %+v", tasks)
	}
}

func TestGetTask_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.GetTask(context.Background(), 42)
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("err = %v, want NotFoundError", err)
	}
	if nf.ID != 42 {
		t.Fatalf("id = %d", nf.ID)
	}
}

func TestCreateTask_ReturnsServerAssignedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/Tasks" {
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
		var in model.Task
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			t.Errorf("decode: %v", err)
		}
		if in.ID != 0 {
			t.Errorf("create must not send an id, got %d", in.ID)
		}
		in.ID = 11
		in.CreatedBy = "alice"
		_ = json.NewEncoder(w).Encode(in)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	created, err := c.CreateTask(context.Background(), model.Task{Title: "new", DueDate: "2026-09-03"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID != 11 || created.CreatedBy != "alice" {
		t.Fatalf("created = %+v", created)
	}
}

func TestUpdateTask_PutsFullRecord(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.UpdateTask(context.Background(), 7, model.Task{ID: 7, Title: "x", DueDate: "2026-09-03"}); err != nil {
		t.Fatalf("update: %v", err)
	}
	if gotMethod != http.MethodPut || gotPath != "/Tasks/7" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
}

func TestDeleteTask(t *testing.T) {
	var gotMethod, gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.DeleteTask(context.Background(), 7); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if gotMethod != http.MethodDelete || gotPath != "/Tasks/7" {
		t.Fatalf("request = %s %s", gotMethod, gotPath)
	}
}

func TestAssignTask_BodyShape(t *testing.T) {
	var gotPath string
	var gotBody map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	if err := c.AssignTask(context.Background(), 7, "bob"); err != nil {
		t.Fatalf("assign: %v", err)
	}
	if gotPath != "/Tasks/7/assign" {
		t.Fatalf("path = %q", gotPath)
	}
	if gotBody["assignedTo"] != "bob" {
		t.Fatalf("body = %v", gotBody)
	}
}

func TestServerErrorBecomesStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, nil)
	_, err := c.ListTasks(context.Background())
	se := asStatus(err)
	if se == nil || se.Code != http.StatusInternalServerError {
		t.Fatalf("err = %v", err)
	}
}

func TestUnreachableServerPropagatesError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // immediately: nothing is listening

	c := NewClient(srv.URL, nil)
	if _, err := c.ListTasks(context.Background()); err == nil {
		t.Fatal("expected a transport error")
	}
}
