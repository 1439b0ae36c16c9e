package bootstrap

import (
	"context"
	"log/slog"

	backendclient "github.com/tablero-app/tablero-client/internal/client/backend"
	"github.com/tablero-app/tablero-client/internal/config"
	"github.com/tablero-app/tablero-client/internal/session"
	"github.com/tablero-app/tablero-client/internal/store"
	"github.com/tablero-app/tablero-client/pkg/logger"
)

type Bootstrap struct {
	Log     *slog.Logger
	Session *session.Session
	Backend *backendclient.Adapter
}

func Run(cfg *config.Config) (*Bootstrap, error) {
	applicationCtx := context.Background()
	bs := new(Bootstrap)

	bs.Log = logger.New(cfg.LogLevel, logger.NewEventHandler)

	tokens := store.NewTokenStore(cfg.TokenPath)
	auth := backendclient.NewAuthClient(cfg.BackendURL, cfg.HTTPTimeout)
	bs.Session = session.New(tokens, auth)
	bs.Backend = backendclient.NewAdapter(cfg.BackendURL, cfg.HTTPTimeout, bs.Session)

	// Silent restore: a stored refresh token becomes a live session without
	// prompting; a rejected one is discarded so the next run starts clean.
	restored, err := bs.Session.Restore(applicationCtx)
	if err != nil {
		return bs, err
	}
	bs.Log.Info("session restore attempted", "restored", restored)

	return bs, nil
}
