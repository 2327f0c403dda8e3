package di

import (
	"go.uber.org/fx"

	"github.com/civiseek/civiseek/internal/adapter/payment"
	"github.com/civiseek/civiseek/internal/app"
	"github.com/civiseek/civiseek/internal/config"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/logger"
	"github.com/civiseek/civiseek/internal/pkg/auth"
	"github.com/civiseek/civiseek/internal/purchase"
	"github.com/civiseek/civiseek/internal/server/http/handlers"
	"github.com/civiseek/civiseek/internal/server/http/router"
	"github.com/civiseek/civiseek/internal/storage/postgres"
	"github.com/civiseek/civiseek/internal/usecase"
)

// Module assembles the full application graph. Extra options are appended
// last so tests can replace individual components.
func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		auth.Module,
		postgres.Module,
		payment.Module,
		fx.Provide(model.DefaultPlanCatalog),
		purchase.Module,
		usecase.Module,
		fx.Provide(func(f *app.SeekerFacade) handlers.SeekerFacade { return f }),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
