package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/campshare/campshare-cli/internal/errs"
	"github.com/campshare/campshare-cli/internal/model"
)

// Login exchanges credentials for an access token. The endpoint wants a
// form-encoded body, not JSON, and is the one call that must never carry
// a stale bearer header. A 401 here means bad credentials, not a dead
// session, so it maps to ErrBadCredentials and triggers no teardown.
func (g *Gateway) Login(ctx context.Context, creds model.Credentials) (model.TokenResponse, error) {
	form := url.Values{}
	form.Set("username", creds.Username)
	form.Set("password", creds.Password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.urlFor("/auth/login", nil),
		strings.NewReader(form.Encode()))
	if err != nil {
		return model.TokenResponse{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var tok model.TokenResponse
	if err := g.send(req, "/auth/login", &tok, false); err != nil {
		var re *errs.RemoteError
		if errors.As(err, &re) && re.Status == http.StatusUnauthorized {
			return model.TokenResponse{}, errs.BadCredentials(re.Detail)
		}
		return model.TokenResponse{}, err
	}
	return tok, nil
}

// Register creates a new account and returns its profile.
func (g *Gateway) Register(ctx context.Context, reg model.Registration) (model.Profile, error) {
	var p model.Profile
	if err := g.do(ctx, http.MethodPost, "/auth/register", nil, reg, &p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}

// CurrentUser resolves the bearer token to its profile.
func (g *Gateway) CurrentUser(ctx context.Context) (model.Profile, error) {
	var p model.Profile
	if err := g.do(ctx, http.MethodGet, "/users/me", nil, nil, &p); err != nil {
		return model.Profile{}, err
	}
	return p, nil
}
