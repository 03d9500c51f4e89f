package api

import (
	"net/http"

	"taskdeck/internal/logging"
)

// TokenSource yields the current bearer token, or "" when no session exists.
// *session.Store satisfies this.
type TokenSource interface {
	Token() string
}

// authTransport attaches the session's bearer token to every outgoing
// request. Requests without a token are forwarded untouched; the transport
// never fails a request on its own.
type authTransport struct {
	base   http.RoundTripper
	tokens TokenSource
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	base := t.base
	if base == nil {
		base = http.DefaultTransport
	}

	tok := ""
	if t.tokens != nil {
		tok = t.tokens.Token()
	}
	if tok == "" {
		logging.L().WithField("url", req.URL.String()).Debug("request without auth")
		return base.RoundTrip(req)
	}

	// RoundTrippers must not mutate the caller's request.
	authed := req.Clone(req.Context())
	authed.Header.Set("Authorization", "Bearer "+tok)
	// Log presence only; the token itself stays out of the log file.
	logging.L().WithFields(map[string]any{
		"method": req.Method,
		"url":    req.URL.String(),
	}).Debug("request with auth")
	return base.RoundTrip(authed)
}
