package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cartResponse "github.com/Alturino/storefront/cart/pkg/response"
	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/notification"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/user/pkg/request"
	"github.com/Alturino/storefront/user/pkg/response"
)

type fakeAuthApi struct {
	token    string
	loginErr error
	profile  response.Profile
}

func (f fakeAuthApi) Login(context.Context, request.LoginRequest) (string, error) {
	return f.token, f.loginErr
}

func (f fakeAuthApi) User(context.Context, string) (response.Profile, error) {
	return f.profile, nil
}

type memSlot struct {
	items      []cartResponse.CartItem
	clearCalls int
}

func (s *memSlot) Load(context.Context) ([]cartResponse.CartItem, error) {
	return s.items, nil
}

func (s *memSlot) Store(_ context.Context, items []cartResponse.CartItem) error {
	s.items = items
	return nil
}

func (s *memSlot) Clear(context.Context) error {
	s.clearCalls++
	s.items = nil
	return nil
}

func mintToken(t *testing.T) string {
	t.Helper()
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":  "1",
		"user": "johnd",
		"iat":  now.Unix(),
		"exp":  now.Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return signed
}

func TestLoginSavesSession(t *testing.T) {
	c := context.Background()
	sessions := session.New(filepath.Join(t.TempDir(), "session"))
	recorder := &notification.Recorder{}
	svc := NewUserService(fakeAuthApi{token: mintToken(t)}, sessions, &memSlot{}, recorder)

	user, err := svc.Login(c, request.LoginRequest{Username: "johnd", Password: "m38rmF$"})
	require.NoError(t, err)
	assert.Equal(t, "1", user.Sub)
	assert.Equal(t, "johnd", user.Username)

	current, ok := sessions.Current(c)
	require.True(t, ok)
	assert.Equal(t, user, current)
	assert.Contains(t, recorder.Successes, "Welcome back, johnd")
}

func TestLoginWhileAuthenticatedIsRejected(t *testing.T) {
	c := context.Background()
	sessions := session.New(filepath.Join(t.TempDir(), "session"))
	svc := NewUserService(fakeAuthApi{token: mintToken(t)}, sessions, &memSlot{}, &notification.Recorder{})

	param := request.LoginRequest{Username: "johnd", Password: "m38rmF$"}
	_, err := svc.Login(c, param)
	require.NoError(t, err)

	_, err = svc.Login(c, param)
	assert.ErrorIs(t, err, inErrors.ErrAlreadyAuthed)
}

func TestLoginFailureNotifies(t *testing.T) {
	c := context.Background()
	sessions := session.New(filepath.Join(t.TempDir(), "session"))
	recorder := &notification.Recorder{}
	api := fakeAuthApi{loginErr: fmt.Errorf("username or password is incorrect")}
	svc := NewUserService(api, sessions, &memSlot{}, recorder)

	_, err := svc.Login(c, request.LoginRequest{Username: "johnd", Password: "wrong"})
	assert.Error(t, err)
	assert.Contains(t, recorder.Errors, "Login failed, check your username and password")

	_, ok := sessions.Current(c)
	assert.False(t, ok)
}

func TestLogoutClearsSessionAndCart(t *testing.T) {
	c := context.Background()
	sessions := session.New(filepath.Join(t.TempDir(), "session"))
	slot := &memSlot{}
	svc := NewUserService(fakeAuthApi{token: mintToken(t)}, sessions, slot, &notification.Recorder{})

	_, err := svc.Login(c, request.LoginRequest{Username: "johnd", Password: "m38rmF$"})
	require.NoError(t, err)
	require.NoError(t, svc.Logout(c))

	_, ok := sessions.Current(c)
	assert.False(t, ok)
	// the cart is scoped to the user and goes with the session
	assert.Equal(t, 1, slot.clearCalls)
}

func TestProfileRequiresLogin(t *testing.T) {
	c := context.Background()
	sessions := session.New(filepath.Join(t.TempDir(), "session"))
	svc := NewUserService(fakeAuthApi{}, sessions, &memSlot{}, &notification.Recorder{})

	_, err := svc.Profile(c)
	assert.ErrorIs(t, err, inErrors.ErrAuthRequired)
}

func TestProfile(t *testing.T) {
	c := context.Background()
	sessions := session.New(filepath.Join(t.TempDir(), "session"))
	api := fakeAuthApi{
		token:   mintToken(t),
		profile: response.Profile{Id: "1", Email: "john@gmail.com", Username: "johnd"},
	}
	svc := NewUserService(api, sessions, &memSlot{}, &notification.Recorder{})

	_, err := svc.Login(c, request.LoginRequest{Username: "johnd", Password: "m38rmF$"})
	require.NoError(t, err)

	profile, err := svc.Profile(c)
	require.NoError(t, err)
	assert.Equal(t, "john@gmail.com", profile.Email)
}
