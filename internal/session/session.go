// Package session holds the client's belief about who is logged in: the
// bearer token plus the resolved profile. The gateway's unauthorized
// hook routes back through ForceLogout here, so teardown stays
// centralized.
package session

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/campshare/campshare-cli/internal/errs"
	"github.com/campshare/campshare-cli/internal/model"
)

// API is the slice of the gateway the session needs.
type API interface {
	Login(ctx context.Context, creds model.Credentials) (model.TokenResponse, error)
	CurrentUser(ctx context.Context) (model.Profile, error)
}

// TokenStorage is the durable single-key store for the bearer token.
type TokenStorage interface {
	Save(token string) error
	Load() (string, error)
	Clear() error
}

// State is a point-in-time snapshot handed to subscribers. Profile is
// non-nil exactly when Authenticated.
type State struct {
	Authenticated bool
	Profile       *model.Profile
}

// Store is the process-wide session. Network calls happen outside its
// lock so an unauthorized broadcast arriving mid-login cannot deadlock.
type Store struct {
	api    API
	tokens TokenStorage
	log    *zap.Logger

	mu      sync.Mutex
	token   string
	profile *model.Profile
	subs    map[int]func(State)
	nextSub int
}

// New builds a logged-out Store.
func New(api API, tokens TokenStorage, log *zap.Logger) *Store {
	if log == nil {
		log = zap.NewNop()
	}
	return &Store{api: api, tokens: tokens, log: log, subs: map[int]func(State){}}
}

// Token implements the gateway's token source.
func (s *Store) Token() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token
}

// State returns the current snapshot.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return State{Authenticated: s.token != "", Profile: s.profile}
}

// Subscribe registers fn for every state transition and returns an
// unsubscribe func. fn is called outside the store lock.
func (s *Store) Subscribe(fn func(State)) func() {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Store) notify() {
	s.mu.Lock()
	st := State{Authenticated: s.token != "", Profile: s.profile}
	fns := make([]func(State), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.Unlock()
	for _, fn := range fns {
		fn(st)
	}
}

// Login authenticates, resolves the profile, and persists the token.
// errs.ErrBadCredentials comes back untouched so the form can stay
// editable; any other failure leaves the session logged out.
func (s *Store) Login(ctx context.Context, username, password string) (State, error) {
	tok, err := s.api.Login(ctx, model.Credentials{Username: username, Password: password})
	if err != nil {
		return State{}, err
	}

	// Token goes into memory first so the profile fetch below carries it.
	s.mu.Lock()
	s.token = tok.AccessToken
	s.mu.Unlock()

	profile, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.clear()
		return State{}, err
	}

	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()

	if err := s.tokens.Save(tok.AccessToken); err != nil {
		// A session that survives only until exit is still a session.
		s.log.Warn("token not persisted", zap.Error(err))
	}
	s.log.Info("logged in", zap.String("username", profile.Username))
	s.notify()
	return s.State(), nil
}

// Resume restores a session from durable storage at startup. Absent or
// expired tokens land logged-out without error noise; a token the server
// rejects is cleared so the next start skips straight to login.
func (s *Store) Resume(ctx context.Context) (State, error) {
	tok, err := s.tokens.Load()
	if err != nil {
		if errors.Is(err, errs.ErrNoToken) {
			return s.State(), nil
		}
		return s.State(), err
	}

	s.mu.Lock()
	s.token = tok
	s.mu.Unlock()

	profile, err := s.api.CurrentUser(ctx)
	if err != nil {
		s.clear()
		_ = s.tokens.Clear()
		if errors.Is(err, errs.ErrUnauthorized) {
			s.log.Info("stored token rejected, cleared")
			return s.State(), nil
		}
		return s.State(), err
	}

	s.mu.Lock()
	s.profile = &profile
	s.mu.Unlock()
	s.log.Info("session resumed", zap.String("username", profile.Username))
	s.notify()
	return s.State(), nil
}

// Logout clears memory and durable storage unconditionally. No remote
// call, never fails.
func (s *Store) Logout() {
	s.clear()
	_ = s.tokens.Clear()
	s.log.Info("logged out")
	s.notify()
}

// ForceLogout is the unauthorized-response path: any gateway call that
// comes back 401 lands here, whatever component issued it. Idempotent;
// repeated 401s from concurrent in-flight calls notify once.
func (s *Store) ForceLogout(reason string) {
	s.mu.Lock()
	wasAuthed := s.token != ""
	s.token = ""
	s.profile = nil
	s.mu.Unlock()
	if !wasAuthed {
		return
	}
	_ = s.tokens.Clear()
	s.log.Warn("session torn down", zap.String("reason", reason))
	s.notify()
}

func (s *Store) clear() {
	s.mu.Lock()
	s.token = ""
	s.profile = nil
	s.mu.Unlock()
}
