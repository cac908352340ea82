package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	domrepo "EcoBoard/internal/domain/repository"
	"EcoBoard/internal/service/live"
	"EcoBoard/internal/usecase"
	pkgcache "EcoBoard/pkg/cache"
	pkgch "EcoBoard/pkg/clickhouse"
	"EcoBoard/pkg/config"
	xhttp "EcoBoard/pkg/http"
	applogger "EcoBoard/pkg/logger"
)

// App encapsulates the entire application lifecycle.
type App struct {
	cfg     *config.Config
	logger  *applogger.Logger
	handler xhttp.Handler
	useCase *usecase.EconomicUseCase

	hub      *live.Hub // nil when live push is disabled
	store    pkgcache.Service
	chClient *pkgch.Client          // nil when history is disabled
	events   domrepo.EventPublisher // nil when events are disabled

	httpServer *xhttp.Server
}

func New(
	cfg *config.Config,
	logger *applogger.Logger,
	handler xhttp.Handler,
	useCase *usecase.EconomicUseCase,
	hub *live.Hub,
	store pkgcache.Service,
	chClient *pkgch.Client,
	events domrepo.EventPublisher,
) *App {
	return &App{
		cfg:      cfg,
		logger:   logger,
		handler:  handler,
		useCase:  useCase,
		hub:      hub,
		store:    store,
		chClient: chClient,
		events:   events,
	}
}

// Run starts the application and blocks until interrupted.
func (a *App) Run() error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a.httpServer = xhttp.NewServer(a.handler,
		xhttp.WithPort(a.cfg.Server.Port),
		xhttp.WithTimeouts(a.cfg.Server.ReadTimeout, a.cfg.Server.WriteTimeout, a.cfg.Server.ShutdownTimeout),
		xhttp.WithMetrics(a.cfg.Metrics.Enabled, a.cfg.Metrics.Path),
		xhttp.WithLogger(a.logger),
	)

	if a.hub != nil {
		go a.hub.Run(ctx)
		go a.broadcastLoop(ctx)
		a.logger.Info("live push started",
			applogger.Duration("interval", a.cfg.Live.Interval))
	}

	errCh := a.httpServer.Start()
	a.logger.Info("server started", applogger.Int("port", a.cfg.Server.Port))

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		a.logger.Error("http server failed", applogger.Error(err))
		_ = a.shutdown(ctx)
		return err
	case <-sigCh:
	}

	a.logger.Info("shutdown signal received")
	return a.shutdown(ctx)
}

// broadcastLoop pushes a fresh snapshot to connected displays on a fixed
// cadence. The getters are cache-backed, so most ticks cost no upstream
// calls.
func (a *App) broadcastLoop(ctx context.Context) {
	ticker := time.NewTicker(a.cfg.Live.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if a.hub.ClientCount() == 0 {
				continue
			}
			snap, err := a.useCase.GetSnapshot(ctx)
			if err != nil {
				a.logger.Warn("live snapshot failed", applogger.Error(err))
				continue
			}
			a.hub.Broadcast(snap)
		}
	}
}

// shutdown gracefully stops the server and closes infrastructure clients.
func (a *App) shutdown(ctx context.Context) error {
	shutdownCtx, cancel := context.WithTimeout(ctx, a.cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := a.httpServer.Stop(shutdownCtx); err != nil {
		a.logger.Error("http shutdown error", applogger.Error(err))
	}

	if a.store != nil {
		if err := a.store.Close(); err != nil {
			a.logger.Warn("cache close error", applogger.Error(err))
		}
	}
	if a.chClient != nil {
		if err := a.chClient.Close(); err != nil {
			a.logger.Warn("clickhouse close error", applogger.Error(err))
		}
	}
	if a.events != nil {
		if err := a.events.Close(); err != nil {
			a.logger.Warn("event publisher close error", applogger.Error(err))
		}
	}

	a.logger.Info("shutdown complete")
	return nil
}
