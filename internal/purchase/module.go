package purchase

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/civiseek/civiseek/internal/adapter/payment"
	"github.com/civiseek/civiseek/internal/config"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/domain/repository"
)

// Module wires the purchase flow manager into the fx graph.
var Module = fx.Provide(newManager)

type managerParams struct {
	fx.In

	Users   repository.UserRepository
	Orders  repository.OrderRepository
	Gateway payment.Client
	Catalog *model.PlanCatalog
	Config  *config.Config
	Logger  *slog.Logger
}

func newManager(p managerParams) *Manager {
	return NewManager(
		p.Users,
		p.Orders,
		p.Gateway,
		p.Catalog,
		p.Config.OrderNumberPrefix,
		p.Config.PollInterval,
		p.Config.MaxPollAttempts,
		p.Logger,
	)
}
