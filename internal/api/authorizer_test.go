package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestAuthTransport_AttachesBearerToken(t *testing.T) {
	var got string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
	}))
	defer srv.Close()

	c := &http.Client{Transport: &authTransport{tokens: staticToken("tok123")}}
	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()

	if got != "Bearer tok123" {
		t.Fatalf("Authorization = %q, want %q", got, "Bearer tok123")
	}
}

func TestAuthTransport_NoTokenForwardsUnmodified(t *testing.T) {
	var got string
	var present bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Get("Authorization")
		_, present = r.Header["Authorization"]
	}))
	defer srv.Close()

	c := &http.Client{Transport: &authTransport{tokens: staticToken("")}}
	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("request must not fail without a token: %v", err)
	}
	resp.Body.Close()

	if present || got != "" {
		t.Fatalf("expected no Authorization header, got %q", got)
	}
}

func TestAuthTransport_DoesNotMutateCallerRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	req, err := http.NewRequest(http.MethodGet, srv.URL, nil)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	c := &http.Client{Transport: &authTransport{tokens: staticToken("tok")}}
	resp, err := c.Do(req)
	if err != nil {
		t.Fatalf("do: %v", err)
	}
	resp.Body.Close()

	if h := req.Header.Get("Authorization"); h != "" {
		t.Fatalf("caller's request was mutated: %q", h)
	}
}

func TestAuthTransport_NilSourceForwards(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	c := &http.Client{Transport: &authTransport{}}
	resp, err := c.Get(srv.URL)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	resp.Body.Close()
}
