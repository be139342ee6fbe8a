package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/somnolab/hypnogram-backend/internal/config"
	"github.com/somnolab/hypnogram-backend/internal/http/handlers"
	"github.com/somnolab/hypnogram-backend/internal/observability"
	"github.com/somnolab/hypnogram-backend/internal/platform/logger"
	"github.com/somnolab/hypnogram-backend/internal/server"
	"github.com/somnolab/hypnogram-backend/internal/session"
	"github.com/somnolab/hypnogram-backend/internal/sim"
)

type App struct {
	Log    *logger.Logger
	Config *config.Config
	Engine *sim.Engine
	Store  *session.Store

	server       *http.Server
	otelShutdown func(context.Context) error
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	otelShutdown := observability.InitOTel(ctx, log, observability.OtelConfig{
		ServiceName: "hypnogram",
		Environment: cfg.Env,
	})

	engine := sim.New(cfg.Calibration)
	store := session.NewStore(log, engine)

	router := server.NewRouter(server.RouterConfig{
		Log:             log,
		CORSOrigins:     cfg.HTTP.CORSOrigins,
		MaxRequestBytes: cfg.HTTP.MaxRequestBytes,
		SimulateHandler: handlers.NewSimulateHandler(engine, log),
		SessionHandler:  handlers.NewSessionHandler(store, log),
		HealthHandler:   handlers.NewHealthHandler(),
	})

	srv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout.Duration,
		IdleTimeout:       cfg.HTTP.IdleTimeout.Duration,
	}

	return &App{
		Log:          log,
		Config:       cfg,
		Engine:       engine,
		Store:        store,
		server:       srv,
		otelShutdown: otelShutdown,
	}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.Log.Info("hypnogram service listening", "addr", a.Config.HTTP.Addr, "env", a.Config.Env)

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.HTTP.ShutdownTimeout.Duration)
		defer cancel()
		_ = a.server.Shutdown(shutdownCtx)
		if a.otelShutdown != nil {
			_ = a.otelShutdown(shutdownCtx)
		}
		a.Log.Sync()
		return nil
	case err := <-errCh:
		a.Log.Sync()
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
