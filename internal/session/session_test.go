package session

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inErrors "github.com/Alturino/storefront/internal/errors"
)

func mintToken(t *testing.T, sub, username string, expiresIn time.Duration) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  sub,
		"user": username,
		"iat":  now.Unix(),
		"exp":  now.Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestSessionSaveAndCurrent(t *testing.T) {
	c := context.Background()
	session := New(filepath.Join(t.TempDir(), "session"))

	user, err := session.Save(c, mintToken(t, "1", "johnd", time.Hour))
	require.NoError(t, err)
	assert.Equal(t, "1", user.Sub)
	assert.Equal(t, "johnd", user.Username)

	current, ok := session.Current(c)
	require.True(t, ok)
	assert.Equal(t, user, current)

	token, ok := session.Token(c)
	require.True(t, ok)
	assert.NotEmpty(t, token)
}

func TestSessionExpiredTokenTearsDown(t *testing.T) {
	logs := bytes.Buffer{}
	logger := zerolog.New(&logs)
	c := logger.WithContext(context.Background())
	dir := filepath.Join(t.TempDir(), "session")
	session := New(dir)

	_, err := session.Save(c, mintToken(t, "1", "johnd", -time.Minute))
	require.NoError(t, err)

	_, ok := session.Token(c)
	assert.False(t, ok)
	// expiry is reported as its own failure, not as a silent anonymous read
	assert.Contains(t, logs.String(), inErrors.ErrSessionExpired.Error())
	_, ok = session.Current(c)
	assert.False(t, ok)

	// expiry clears the stale files, not just the read
	_, err = os.Stat(filepath.Join(dir, "accessToken"))
	assert.True(t, os.IsNotExist(err))
}

func TestSessionClear(t *testing.T) {
	c := context.Background()
	session := New(filepath.Join(t.TempDir(), "session"))

	_, err := session.Save(c, mintToken(t, "1", "johnd", time.Hour))
	require.NoError(t, err)
	require.NoError(t, session.Clear(c))

	_, ok := session.Current(c)
	assert.False(t, ok)

	// clearing an anonymous session is a no-op
	require.NoError(t, session.Clear(c))
}

func TestSessionRequireAnonymous(t *testing.T) {
	c := context.Background()
	session := New(filepath.Join(t.TempDir(), "session"))

	require.NoError(t, session.RequireAnonymous(c))

	_, err := session.Save(c, mintToken(t, "1", "johnd", time.Hour))
	require.NoError(t, err)
	assert.ErrorIs(t, session.RequireAnonymous(c), inErrors.ErrAlreadyAuthed)

	require.NoError(t, session.Clear(c))
	require.NoError(t, session.RequireAnonymous(c))
}

func TestSessionSaveRejectsTokenWithoutSubject(t *testing.T) {
	c := context.Background()
	session := New(filepath.Join(t.TempDir(), "session"))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"user": "johnd"})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = session.Save(c, signed)
	assert.Error(t, err)
}

func TestSessionMissingTokenReadsAsAnonymous(t *testing.T) {
	c := context.Background()
	session := New(filepath.Join(t.TempDir(), "session"))

	_, ok := session.Token(c)
	assert.False(t, ok)
	_, ok = session.Current(c)
	assert.False(t, ok)
}
