package app

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/domain/repository"
	"github.com/polkiloo/marketplace/internal/server/http/handlers"
	"github.com/polkiloo/marketplace/internal/usecase"
	"github.com/polkiloo/marketplace/internal/worker"
)

// Module wires application services, runtime components, and lifecycle hooks.
var Module = fx.Options(
	fx.Provide(
		NewMarketplaceFacade,
		newHTTPServer,
		newNotificationDispatcher,
	),
	fx.Provide(
		func(f *MarketplaceFacade) handlers.MarketplaceFacade { return f },
		func(d *worker.NotificationDispatcher) usecase.NotificationPublisher { return d },
	),
	fx.Invoke(registerLifecycle),
)

type serverParams struct {
	fx.In

	Config *config.Config
	Router *gin.Engine
}

func newHTTPServer(p serverParams) *http.Server {
	return &http.Server{
		Addr:    p.Config.RunAddress,
		Handler: p.Router,
	}
}

type dispatcherParams struct {
	fx.In

	Notifications repository.NotificationRepository
	Config        *config.Config
	Logger        *slog.Logger
}

func newNotificationDispatcher(p dispatcherParams) *worker.NotificationDispatcher {
	return worker.NewNotificationDispatcher(
		p.Notifications,
		p.Config.NotificationWorkers,
		p.Config.NotificationQueueSize,
		p.Logger,
	)
}

type lifecycleParams struct {
	fx.In

	Lifecycle  fx.Lifecycle
	Shutdowner fx.Shutdowner
	Logger     *slog.Logger
	Server     *http.Server
	Dispatcher *worker.NotificationDispatcher
	Commission *usecase.CommissionUseCase
	Config     *config.Config
}

func registerLifecycle(p lifecycleParams) {
	p.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := p.Commission.Hydrate(ctx); err != nil {
				return err
			}
			p.Dispatcher.Start()
			p.Logger.Info("starting marketplace", slog.String("addr", p.Server.Addr))
			go func() {
				if err := p.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					p.Logger.Error("http server terminated", slog.String("error", err.Error()))
					_ = p.Shutdowner.Shutdown()
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx := ctx
			cancel := func() {}
			if _, ok := ctx.Deadline(); !ok {
				shutdownCtx, cancel = context.WithTimeout(ctx, p.Config.ShutdownTimeout)
			}
			defer cancel()

			if err := p.Server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
				return err
			}

			// Drain queued notifications after the server stops accepting
			// new requests.
			p.Dispatcher.Stop()

			p.Logger.Info("marketplace stopped")
			return nil
		},
	})
}
