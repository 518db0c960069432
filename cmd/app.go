package cmd

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog"

	cartService "github.com/Alturino/storefront/cart/service"
	"github.com/Alturino/storefront/internal/api"
	"github.com/Alturino/storefront/internal/config"
	"github.com/Alturino/storefront/internal/log"
	"github.com/Alturino/storefront/internal/notification"
	"github.com/Alturino/storefront/internal/otel"
	"github.com/Alturino/storefront/internal/session"
	"github.com/Alturino/storefront/internal/storage"
	userService "github.com/Alturino/storefront/user/service"
)

// app wires the whole storefront together: config, session, cart slot, api
// client and the services on top of them.
type app struct {
	cfg           *config.Config
	api           *api.Client
	session       *session.Session
	slot          storage.Slot
	notifier      notification.Toaster
	cart          *cartService.CartService
	users         userService.UserService
	otelShutdowns []otel.ShutdownFunc
}

func newApp(c context.Context) (*app, error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main newApp").
		Logger()

	logger = logger.With().Str(log.KeyProcess, "init config").Logger()
	logger.Info().Msg("initializing config")
	cfg := config.InitConfig(c, "storefront")
	logger.Info().Msg("initialized config")

	logger = logger.With().Str(log.KeyProcess, "init otel sdk").Logger()
	logger.Info().Msg("initializing otel sdk")
	endpoint := fmt.Sprintf("%s:%d", cfg.Otel.Host, cfg.Otel.Port)
	otelShutdowns, err := otel.InitOtelSdk(c, endpoint)
	if err != nil {
		// no collector around is fine for a cli, spans just go nowhere
		logger.Warn().Err(err).Msg("otel sdk unavailable, continuing without it")
	}
	logger.Info().Msg("initialized otel sdk")

	sessions := session.New(filepath.Join(cfg.Storage.Dir, "session"))

	var slot storage.Slot
	switch cfg.Storage.Backend {
	case "redis":
		client := storage.NewCacheClient(c, cfg.Cache)
		slot = storage.NewRedisSlot(client, cfg.Storage.Key)
	default:
		slot = storage.NewFileSlot(cfg.Storage.Dir, cfg.Storage.Key)
	}

	client := api.NewClient(cfg.Api.BaseUrl, cfg.ApiTimeout(), sessions)
	notifier := notification.NewToaster()
	cart := cartService.NewCartService(c, slot, client, client, sessions, notifier)
	users := userService.NewUserService(client, sessions, slot, notifier)

	return &app{
		cfg:           cfg,
		api:           client,
		session:       sessions,
		slot:          slot,
		notifier:      notifier,
		cart:          cart,
		users:         users,
		otelShutdowns: otelShutdowns,
	}, nil
}

func (a *app) close(c context.Context) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "main app close").
		Str(log.KeyProcess, "shutting down otel").
		Logger()
	logger.Info().Msg("shutting down otel")
	if err := otel.ShutdownOtel(c, a.otelShutdowns); err != nil {
		err = fmt.Errorf("failed shutting down otel with error=%w", err)
		logger.Error().Err(err).Msg(err.Error())
		return
	}
	logger.Info().Msg("shutdown otel")
}
