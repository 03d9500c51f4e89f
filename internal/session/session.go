// Package session holds the authenticated user and bearer token for the
// running client.
//
// The store is single-writer (login/logout) and multi-reader: views read the
// current user directly and can subscribe to changes. User and token are
// persisted as one value under one key so they are always set and cleared
// together.
package session

import (
	"context"
	"encoding/json"
	"sync"

	"taskdeck/internal/logging"
	"taskdeck/internal/model"
	"taskdeck/internal/state"
)

const kvKey = "session"

type Store struct {
	kv *state.KV

	mu      sync.Mutex
	cur     model.Session
	subs    map[int]chan *model.User
	nextSub int
}

func NewStore(kv *state.KV) *Store {
	return &Store{
		kv:   kv,
		subs: map[int]chan *model.User{},
	}
}

// Load rehydrates the session persisted by a previous run. A missing or
// malformed entry means "not logged in"; it is never surfaced to the user.
func (s *Store) Load(ctx context.Context) error {
	raw, err := s.kv.Get(ctx, kvKey)
	if err != nil {
		return err
	}
	if raw == "" {
		return nil
	}
	var sess model.Session
	if err := json.Unmarshal([]byte(raw), &sess); err != nil {
		logging.L().WithError(err).Debug("discarding malformed persisted session")
		return nil
	}
	s.mu.Lock()
	s.cur = sess
	s.mu.Unlock()
	return nil
}

// Current returns the current user, or nil when logged out.
func (s *Store) Current() *model.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.User
}

func (s *Store) IsLoggedIn() bool {
	return s.Current() != nil
}

func (s *Store) IsAdmin() bool {
	return s.Current().IsAdmin()
}

// Token returns the current bearer token, or "" when logged out.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cur.Token
}

// Save persists the session and notifies subscribers. Persisting first keeps
// the durable state ahead of anything a subscriber might do in response.
func (s *Store) Save(ctx context.Context, user *model.User, token string) error {
	sess := model.Session{User: user, Token: token}
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.kv.Set(ctx, kvKey, string(b)); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = sess
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

// Clear logs out: it removes the persisted session and notifies subscribers
// with nil. No network call is involved.
func (s *Store) Clear(ctx context.Context) error {
	if err := s.kv.Delete(ctx, kvKey); err != nil {
		return err
	}
	s.mu.Lock()
	s.cur = model.Session{}
	s.notifyLocked()
	s.mu.Unlock()
	return nil
}

// Subscribe returns a channel of user-state changes. The current value is
// replayed immediately; every later Save/Clear delivers the new value until
// cancel is called. A slow subscriber drops its oldest pending value rather
// than blocking the writer.
func (s *Store) Subscribe() (<-chan *model.User, func()) {
	ch := make(chan *model.User, 8)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = ch
	ch <- s.cur.User
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if c, ok := s.subs[id]; ok {
			delete(s.subs, id)
			close(c)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notifyLocked() {
	for _, ch := range s.subs {
		for {
			select {
			case ch <- s.cur.User:
			default:
				// Full: drop the oldest pending value and retry.
				select {
				case <-ch:
				default:
				}
				continue
			}
			break
		}
	}
}
