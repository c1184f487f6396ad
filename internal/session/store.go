// Package session owns the admin session lifecycle: the shared token store,
// the validator that keeps the token's validity in sync with the remote
// authority, and the facade consumed by request guards.
package session

import (
	"context"
	"sync"

	"ipschool.org/internal/kv"
	"ipschool.org/internal/obs"
)

// TokenKey is the fixed persistence key for the admin session token.
const TokenKey = "admin_session_token"

// Store is the single source of truth for the current admin session token.
// All writers (login, logout, validation discard) go through SetToken so
// every subscriber observes every change. Persistence is best-effort: a
// failing kv backend degrades the store to memory-only, it never fails a
// write.
type Store struct {
	kv kv.Store

	mu    sync.Mutex
	token string
	subs  []subscriber
	next  int
}

type subscriber struct {
	id int
	fn func()
}

// NewStore builds a store seeded from the persisted token, if any.
func NewStore(ctx context.Context, store kv.Store) *Store {
	s := &Store{kv: store}
	if store != nil {
		if v, ok, err := store.Get(ctx, TokenKey); err != nil {
			obs.LogEvent("session_restore_failed", map[string]any{"error": err.Error()})
		} else if ok {
			s.token = v
		}
	}
	return s
}

// Token returns the current token; empty string means no session.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// SetToken replaces the current token, persists the change, and notifies
// every subscriber synchronously in registration order. Redundant same-value
// sets still notify.
func (s *Store) SetToken(ctx context.Context, token string) {
	s.mu.Lock()
	s.token = token
	subs := make([]subscriber, len(s.subs))
	copy(subs, s.subs)
	s.mu.Unlock()

	if s.kv != nil {
		var err error
		if token != "" {
			err = s.kv.Set(ctx, TokenKey, token)
		} else {
			err = s.kv.Delete(ctx, TokenKey)
		}
		if err != nil {
			obs.LogEvent("session_persist_failed", map[string]any{"error": err.Error()})
		}
	}

	for _, sub := range subs {
		sub.fn()
	}
}

// Subscribe registers fn to run after every SetToken call and returns its
// de-registration function. Callbacks read the new value via Token.
func (s *Store) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs = append(s.subs, subscriber{id: id, fn: fn})
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		for i, sub := range s.subs {
			if sub.id == id {
				s.subs = append(s.subs[:i], s.subs[i+1:]...)
				return
			}
		}
	}
}
