package shell

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campshare/campshare-cli/internal/errs"
	"github.com/campshare/campshare-cli/internal/gateway"
	"github.com/campshare/campshare-cli/internal/model"
	"github.com/campshare/campshare-cli/internal/session"
	"github.com/campshare/campshare-cli/internal/tokenstore"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// wiring mirrors cmd/campshare: real gateway, session, and token store
// against a chi-routed fake backend.
func wire(t *testing.T, router *chi.Mux) (*App, *session.Store, *tokenstore.Store) {
	t.Helper()
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	tokens := tokenstore.New(t.TempDir())
	var sess *session.Store
	gw := gateway.New(srv.URL, gateway.WithTokenSource(func() string { return sess.Token() }))
	sess = session.New(gw, tokens, nil)
	gw.OnUnauthorized(func() { sess.ForceLogout("unauthorized response") })

	app := New(sess, gw, nil, nil)
	return app, sess, tokens
}

func testJWT(t *testing.T) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("k"))
	require.NoError(t, err)
	return tok
}

func TestUnauthorizedAnywhereForcesLoginView(t *testing.T) {
	// The backend accepts the login, then starts rejecting the token:
	// the 401 surfaces from a map fetch, a component that knows nothing
	// about sessions, and must still land the shell on the login view
	// with the durable token gone.
	accessToken := testJWT(t)
	var reject atomic.Bool

	r := chi.NewRouter()
	r.Post("/auth/login", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, model.TokenResponse{AccessToken: accessToken, TokenType: "bearer"})
	})
	r.Get("/users/me", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, model.Profile{ID: 1, Username: "alice"})
	})
	r.Get("/camping-trips/map", func(w http.ResponseWriter, req *http.Request) {
		if reject.Load() {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
			return
		}
		writeJSON(w, http.StatusOK, []model.TripWithDetails{})
	})

	app, sess, tokens := wire(t, r)
	app.Start(context.Background())
	require.NoError(t, app.Login(context.Background(), "alice", "pw"))
	require.Equal(t, ViewAuthed, app.View())

	stored, err := tokens.Load()
	require.NoError(t, err)
	assert.Equal(t, accessToken, stored)

	reject.Store(true)
	app.Map().Refresh(context.Background())

	assert.Equal(t, ViewLogin, app.View())
	assert.False(t, sess.State().Authenticated)
	_, err = tokens.Load()
	assert.True(t, errors.Is(err, errs.ErrNoToken), "stored token must be cleared")
}

func TestStartupResumesDurableSession(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/users/me", func(w http.ResponseWriter, req *http.Request) {
		if req.Header.Get("Authorization") == "" {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Not authenticated"})
			return
		}
		writeJSON(w, http.StatusOK, model.Profile{ID: 1, Username: "alice"})
	})
	r.Get("/camping-trips/map", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, []model.TripWithDetails{})
	})

	app, _, tokens := wire(t, r)
	require.NoError(t, tokens.Save(testJWT(t)))

	app.Start(context.Background())
	assert.Equal(t, ViewAuthed, app.View())
}

func TestStartupWithRejectedTokenLandsOnLogin(t *testing.T) {
	r := chi.NewRouter()
	r.Get("/users/me", func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"detail": "Could not validate credentials"})
	})

	app, _, tokens := wire(t, r)
	require.NoError(t, tokens.Save(testJWT(t)))

	app.Start(context.Background())
	assert.Equal(t, ViewLogin, app.View())
	_, err := tokens.Load()
	assert.True(t, errors.Is(err, errs.ErrNoToken))
}
