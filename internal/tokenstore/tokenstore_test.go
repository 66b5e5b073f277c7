package tokenstore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campshare/campshare-cli/internal/errs"
)

func signedToken(t *testing.T, exp time.Time) string {
	t.Helper()
	claims := jwt.RegisteredClaims{
		Subject:   "42",
		ExpiresAt: jwt.NewNumericDate(exp),
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestLoadMissing(t *testing.T) {
	s := New(t.TempDir())
	_, err := s.Load()
	assert.True(t, errors.Is(err, errs.ErrNoToken))
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New(t.TempDir())
	tok := signedToken(t, time.Now().Add(time.Hour))
	require.NoError(t, s.Save(tok))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, tok, got)
}

func TestExpiredTokenRejected(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(signedToken(t, time.Now().Add(-time.Minute))))

	_, err := s.Load()
	assert.True(t, errors.Is(err, errs.ErrNoToken))
}

func TestOpaqueTokenGetsFallbackTTL(t *testing.T) {
	// Not a JWT at all; Save still records it with the fallback expiry.
	s := New(t.TempDir())
	require.NoError(t, s.Save("not-a-jwt"))

	got, err := s.Load()
	require.NoError(t, err)
	assert.Equal(t, "not-a-jwt", got)
}

func TestCorruptFileRejected(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "token.json"), []byte("{nope"), 0o600))

	_, err := New(dir).Load()
	assert.True(t, errors.Is(err, errs.ErrNoToken))
}

func TestClearIdempotent(t *testing.T) {
	s := New(t.TempDir())
	require.NoError(t, s.Save(signedToken(t, time.Now().Add(time.Hour))))
	require.NoError(t, s.Clear())
	require.NoError(t, s.Clear())

	_, err := s.Load()
	assert.True(t, errors.Is(err, errs.ErrNoToken))
}

func TestTokenFileMode(t *testing.T) {
	dir := t.TempDir()
	s := New(dir)
	require.NoError(t, s.Save(signedToken(t, time.Now().Add(time.Hour))))

	info, err := os.Stat(filepath.Join(dir, "token.json"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}
