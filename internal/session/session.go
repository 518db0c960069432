package session

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
)

const (
	tokenFile = "accessToken"
	userFile  = "user"
)

// User is the profile decoded from the bearer token claims, kept alongside the
// token as a base64 encoded json blob the way the browser build kept its user
// cookie.
type User struct {
	Sub      string `json:"sub"`
	Username string `json:"user"`
}

// Session persists the bearer token and the user profile under a state
// directory and is the single authority on "who is logged in". An expired
// token tears the whole session down on the next read.
type Session struct {
	dir string
}

func New(dir string) *Session {
	return &Session{dir: dir}
}

func (s *Session) Save(c context.Context, token string) (User, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Session Save").
		Logger()

	user, err := decodeClaims(token)
	if err != nil {
		err = fmt.Errorf("failed decoding token claims with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		err = fmt.Errorf("failed creating session dir with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}

	if err := os.WriteFile(filepath.Join(s.dir, tokenFile), []byte(token), 0o600); err != nil {
		err = fmt.Errorf("failed persisting token with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}

	profile, err := json.Marshal(user)
	if err != nil {
		err = fmt.Errorf("failed marshaling user profile with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}
	encoded := base64.StdEncoding.EncodeToString(profile)
	if err := os.WriteFile(filepath.Join(s.dir, userFile), []byte(encoded), 0o600); err != nil {
		err = fmt.Errorf("failed persisting user profile with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return User{}, err
	}

	logger.Info().Str(log.KeyUserId, user.Sub).Msg("saved session")
	return user, nil
}

// Token returns the persisted bearer token. A missing or expired token reads
// as "not logged in", expiry additionally clears the stale session files.
func (s *Session) Token(c context.Context) (string, bool) {
	raw, err := os.ReadFile(filepath.Join(s.dir, tokenFile))
	if err != nil || len(raw) == 0 {
		return "", false
	}
	token := string(raw)
	if expired(token) {
		zerolog.Ctx(c).
			Info().
			Err(inErrors.ErrSessionExpired).
			Str(log.KeyTag, "Session Token").
			Msg(inErrors.ErrSessionExpired.Error())
		_ = s.Clear(c)
		return "", false
	}
	return token, true
}

// Current returns the logged in user decoded from the persisted profile.
func (s *Session) Current(c context.Context) (User, bool) {
	if _, ok := s.Token(c); !ok {
		return User{}, false
	}
	raw, err := os.ReadFile(filepath.Join(s.dir, userFile))
	if err != nil || len(raw) == 0 {
		return User{}, false
	}
	decoded, err := base64.StdEncoding.DecodeString(string(raw))
	if err != nil {
		return User{}, false
	}
	user := User{}
	if err := json.Unmarshal(decoded, &user); err != nil {
		return User{}, false
	}
	return user, true
}

func (s *Session) Clear(c context.Context) error {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "Session Clear").
		Logger()
	for _, name := range []string{tokenFile, userFile} {
		if err := os.Remove(filepath.Join(s.dir, name)); err != nil && !os.IsNotExist(err) {
			err = fmt.Errorf("failed removing %s with error=%w", name, err)
			logger.Error().Err(err).Msg(err.Error())
			return err
		}
	}
	logger.Info().Msg("cleared session")
	return nil
}

// RequireAnonymous guards the login and register entry points, an already
// authenticated user is bounced away instead of logging in twice.
func (s *Session) RequireAnonymous(c context.Context) error {
	if _, ok := s.Current(c); ok {
		return inErrors.ErrAlreadyAuthed
	}
	return nil
}

// decodeClaims reads the claims without verifying the signature. The token is
// minted and verified by the store api, the client only needs sub, user and
// exp out of it.
func decodeClaims(token string) (User, error) {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return User{}, err
	}
	user := User{}
	if sub, err := claims.GetSubject(); err == nil {
		user.Sub = sub
	}
	if name, ok := claims["user"].(string); ok {
		user.Username = name
	}
	if user.Sub == "" {
		return User{}, fmt.Errorf("token has no subject claim")
	}
	return user, nil
}

func expired(token string) bool {
	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, claims); err != nil {
		return true
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
