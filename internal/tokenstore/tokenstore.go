// Package tokenstore persists the bearer token, the client's single piece
// of durable state. The token lives in token.json under the config dir;
// its expiry is read from the JWT exp claim at save time so a stale file
// is rejected on load instead of producing a doomed session.
package tokenstore

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/campshare/campshare-cli/internal/errs"
)

// fallbackTTL is assumed when the token carries no parsable exp claim.
const fallbackTTL = 15 * time.Minute

type tokenFile struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
}

// Store reads and writes the token file. The session store and the
// global unauthorized handler are its only writers.
type Store struct {
	dir string
}

// New returns a Store rooted at dir.
func New(dir string) *Store { return &Store{dir: dir} }

func (s *Store) path() string { return filepath.Join(s.dir, "token.json") }

// Save writes the token with its expiry. The exp claim is parsed without
// signature validation; the server remains the authority on validity.
func (s *Store) Save(token string) error {
	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return err
	}
	exp := time.Now().Add(fallbackTTL)
	var claims jwt.RegisteredClaims
	_, _ = jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) { return nil, nil },
		jwt.WithoutClaimsValidation(),
	)
	if claims.ExpiresAt != nil {
		exp = claims.ExpiresAt.Time
	}

	f, err := os.OpenFile(s.path(), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(tokenFile{AccessToken: token, ExpiresAt: exp})
}

// Load returns the stored token, or errs.ErrNoToken when the file is
// missing, unreadable, empty, or past its expiry.
func (s *Store) Load() (string, error) {
	b, err := os.ReadFile(s.path())
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", errs.ErrNoToken
		}
		return "", err
	}
	var tf tokenFile
	if err := json.Unmarshal(b, &tf); err != nil {
		return "", errs.ErrNoToken
	}
	if tf.AccessToken == "" || time.Now().After(tf.ExpiresAt) {
		return "", errs.ErrNoToken
	}
	return tf.AccessToken, nil
}

// Clear removes the token file. Missing files are fine; Clear is called
// unconditionally on logout.
func (s *Store) Clear() error {
	err := os.Remove(s.path())
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
