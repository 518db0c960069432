package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	inErrors "github.com/Alturino/storefront/internal/errors"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/notification"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/storage"
	"github.com/Alturino/storefront/user/pkg/request"
	"github.com/Alturino/storefront/user/pkg/response"
)

type authApi interface {
	Login(c context.Context, param request.LoginRequest) (string, error)
	User(c context.Context, id string) (response.Profile, error)
}

// UserService owns the auth session lifecycle: login stores the token and
// profile, logout tears down the session together with the cart slot.
type UserService struct {
	api      authApi
	session  *session.Session
	slot     storage.Slot
	notifier notification.Notifier
}

func NewUserService(
	api authApi,
	session *session.Session,
	slot storage.Slot,
	notifier notification.Notifier,
) UserService {
	return UserService{api: api, session: session, slot: slot, notifier: notifier}
}

func (svc UserService) Login(
	c context.Context,
	param request.LoginRequest,
) (session.User, error) {
	c, span := otel.Tracer.Start(c, "UserService Login")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Login").
		Object("request", param).
		Logger()

	// the login entry point is guarded, an authenticated user is bounced away
	if err := svc.session.RequireAnonymous(c); err != nil {
		otel.RecordError(err, span)
		logger.Info().Err(err).Msg(err.Error())
		return session.User{}, err
	}

	logger = logger.With().Str(log.KeyProcess, "exchanging credentials").Logger()
	logger.Info().Msg("exchanging credentials for token")
	token, err := svc.api.Login(c, param)
	if err != nil {
		err = fmt.Errorf("failed logging in with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.notifier.Error(c, "Login failed, check your username and password")
		return session.User{}, err
	}
	logger.Info().Msg("exchanged credentials for token")

	logger = logger.With().Str(log.KeyProcess, "saving session").Logger()
	logger.Info().Msg("saving session")
	user, err := svc.session.Save(c, token)
	if err != nil {
		err = fmt.Errorf("failed saving session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		svc.notifier.Error(c, "Login failed while saving the session")
		return session.User{}, err
	}
	logger.Info().Str(log.KeyUserId, user.Sub).Msg("saved session")

	svc.notifier.Success(c, fmt.Sprintf("Welcome back, %s", user.Username))
	return user, nil
}

// Logout clears the session and the persisted cart, the cart is scoped to the
// authenticated user and must not survive into the next login.
func (svc UserService) Logout(c context.Context) error {
	c, span := otel.Tracer.Start(c, "UserService Logout")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Logout").
		Logger()

	if err := svc.session.Clear(c); err != nil {
		err = fmt.Errorf("failed clearing session with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}
	if err := svc.slot.Clear(c); err != nil {
		err = fmt.Errorf("failed clearing cart slot with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return err
	}

	logger.Info().Msg("logged out")
	svc.notifier.Success(c, "Logged out")
	return nil
}

// Profile fetches the logged in user's profile from the store api.
func (svc UserService) Profile(c context.Context) (response.Profile, error) {
	c, span := otel.Tracer.Start(c, "UserService Profile")
	defer span.End()

	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "UserService Profile").
		Logger()

	user, ok := svc.session.Current(c)
	if !ok {
		otel.RecordError(inErrors.ErrAuthRequired, span)
		logger.Error().
			Err(inErrors.ErrAuthRequired).
			Msg(inErrors.ErrAuthRequired.Error())
		return response.Profile{}, inErrors.ErrAuthRequired
	}

	profile, err := svc.api.User(c, user.Sub)
	if err != nil {
		err = fmt.Errorf("failed fetching user profile with error=%w", err)
		otel.RecordError(err, span)
		logger.Error().Err(err).Msg(err.Error())
		return response.Profile{}, err
	}
	return profile, nil
}
