// Package api is the gateway to the remote task server. All task endpoints
// require a bearer token, which the transport attaches from the session
// store; the client performs no retries and no caching.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"taskdeck/internal/logging"
	"taskdeck/internal/model"
)

type Client struct {
	base string
	http *http.Client
}

// NewClient builds a gateway for the server at apiURL (the root above /Auth
// and /Tasks). tokens may be nil for unauthenticated use in tests.
func NewClient(apiURL string, tokens TokenSource) *Client {
	return &Client{
		base: strings.TrimRight(apiURL, "/"),
		http: &http.Client{
			Timeout:   30 * time.Second,
			Transport: &authTransport{tokens: tokens},
		},
	}
}

// LoginResult is the server's response to a successful credential exchange.
type LoginResult struct {
	Username string `json:"username"`
	Role     string `json:"role"`
	Logo     string `json:"logo,omitempty"`
	Token    string `json:"token"`
}

func (r LoginResult) User() *model.User {
	return &model.User{Username: r.Username, Role: r.Role, Logo: r.Logo}
}

// Login exchanges credentials for a user record and token. Errors pass
// through unchanged; callers decide how much to show the user.
func (c *Client) Login(ctx context.Context, username, password string) (LoginResult, error) {
	var res LoginResult
	body := map[string]string{"username": username, "password": password}
	if err := c.do(ctx, http.MethodPost, "/Auth/login", body, &res, "login"); err != nil {
		logging.L().WithError(err).Warn("login failed")
		return LoginResult{}, err
	}
	return res, nil
}

// ListTasks returns the task collection in server order.
func (c *Client) ListTasks(ctx context.Context) ([]model.Task, error) {
	var tasks []model.Task
	if err := c.do(ctx, http.MethodGet, "/Tasks", nil, &tasks, "list tasks"); err != nil {
		return nil, err
	}
	return tasks, nil
}

func (c *Client) GetTask(ctx context.Context, id int) (model.Task, error) {
	var t model.Task
	err := c.do(ctx, http.MethodGet, fmt.Sprintf("/Tasks/%d", id), nil, &t, "get task")
	if se := asStatus(err); se != nil && se.Code == http.StatusNotFound {
		return model.Task{}, errNotFound("task", id)
	}
	if err != nil {
		return model.Task{}, err
	}
	return t, nil
}

// CreateTask posts a task without an id and returns the server-assigned
// record (id and createdBy filled in).
func (c *Client) CreateTask(ctx context.Context, task model.Task) (model.Task, error) {
	var created model.Task
	if err := c.do(ctx, http.MethodPost, "/Tasks", task, &created, "create task"); err != nil {
		return model.Task{}, err
	}
	return created, nil
}

// UpdateTask replaces the task's fields wholesale. The server returns no
// payload beyond the status.
func (c *Client) UpdateTask(ctx context.Context, id int, task model.Task) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/Tasks/%d", id), task, nil, "update task")
}

func (c *Client) DeleteTask(ctx context.Context, id int) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/Tasks/%d", id), nil, nil, "delete task")
}

// AssignTask asks the server to reassign the task to username.
func (c *Client) AssignTask(ctx context.Context, id int, username string) error {
	body := map[string]string{"assignedTo": username}
	return c.do(ctx, http.MethodPost, fmt.Sprintf("/Tasks/%d/assign", id), body, nil, "assign task")
}

func (c *Client) do(ctx context.Context, method, path string, in, out any, op string) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		logging.L().WithError(err).WithField("op", op).Warn("request failed")
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		err := &StatusError{Op: op, Code: resp.StatusCode}
		logging.L().WithField("op", op).WithField("status", resp.StatusCode).Warn("server error")
		return err
	}
	if out == nil {
		return nil
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func asStatus(err error) *StatusError {
	if se, ok := err.(*StatusError); ok {
		return se
	}
	return nil
}
