package di

import (
	"go.uber.org/fx"

	"github.com/polkiloo/marketplace/internal/app"
	"github.com/polkiloo/marketplace/internal/config"
	"github.com/polkiloo/marketplace/internal/logger"
	"github.com/polkiloo/marketplace/internal/pkg/auth"
	"github.com/polkiloo/marketplace/internal/server/http/router"
	"github.com/polkiloo/marketplace/internal/storage/postgres"
	"github.com/polkiloo/marketplace/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		usecase.Module,
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
