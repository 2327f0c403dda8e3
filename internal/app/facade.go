package app

import (
	"context"

	"github.com/civiseek/civiseek/internal/adapter/payment"
	"github.com/civiseek/civiseek/internal/config"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/purchase"
	"github.com/civiseek/civiseek/internal/usecase"
)

// SeekerFacade aggregates the application operations exposed to the HTTP
// layer and the reconcile worker.
type SeekerFacade struct {
	auth       *usecase.AuthUseCase
	membership *usecase.MembershipUseCase
	jobs       *usecase.JobUseCase
	favorites  *usecase.FavoriteUseCase
	profiles   *usecase.ProfileUseCase
	purchases  *purchase.Manager
	gateway    payment.Client
	cfg        *config.Config
}

// NewSeekerFacade constructs the facade.
func NewSeekerFacade(
	auth *usecase.AuthUseCase,
	membership *usecase.MembershipUseCase,
	jobs *usecase.JobUseCase,
	favorites *usecase.FavoriteUseCase,
	profiles *usecase.ProfileUseCase,
	purchases *purchase.Manager,
	gateway payment.Client,
	cfg *config.Config,
) *SeekerFacade {
	return &SeekerFacade{
		auth:       auth,
		membership: membership,
		jobs:       jobs,
		favorites:  favorites,
		profiles:   profiles,
		purchases:  purchases,
		gateway:    gateway,
		cfg:        cfg,
	}
}

func (f *SeekerFacade) Register(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Register(ctx, login, password)
	return token, err
}

func (f *SeekerFacade) Authenticate(ctx context.Context, login, password string) (string, error) {
	_, token, err := f.auth.Authenticate(ctx, login, password)
	return token, err
}

func (f *SeekerFacade) ParseToken(token string) (int64, error) {
	return f.auth.ParseToken(token)
}

func (f *SeekerFacade) Jobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	return f.jobs.List(ctx, filter)
}

func (f *SeekerFacade) Job(ctx context.Context, id int64) (*model.Job, error) {
	return f.jobs.Get(ctx, id)
}

func (f *SeekerFacade) CompareJobs(ctx context.Context, ids []int64) (*model.Comparison, error) {
	return f.jobs.Compare(ctx, ids)
}

func (f *SeekerFacade) AddFavorite(ctx context.Context, userID, jobID int64) error {
	return f.favorites.Add(ctx, userID, jobID)
}

func (f *SeekerFacade) RemoveFavorite(ctx context.Context, userID, jobID int64) error {
	return f.favorites.Remove(ctx, userID, jobID)
}

func (f *SeekerFacade) Favorites(ctx context.Context, userID int64) ([]model.Job, error) {
	return f.favorites.List(ctx, userID)
}

func (f *SeekerFacade) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	return f.profiles.Get(ctx, userID)
}

func (f *SeekerFacade) SaveProfile(ctx context.Context, profile *model.Profile) error {
	return f.profiles.Save(ctx, profile)
}

func (f *SeekerFacade) Plans() []model.Plan {
	return f.membership.Plans()
}

func (f *SeekerFacade) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	return f.membership.OrdersByUser(ctx, userID)
}

func (f *SeekerFacade) InitiatePurchase(ctx context.Context, userID, goodsID int64) (*purchase.Intent, error) {
	return f.purchases.Initiate(ctx, userID, goodsID)
}

func (f *SeekerFacade) ConfirmPayment(userID int64) error {
	return f.purchases.Confirm(userID)
}

func (f *SeekerFacade) CancelPurchase(userID int64) error {
	return f.purchases.Cancel(userID)
}

func (f *SeekerFacade) PurchaseStatus(userID int64) (purchase.State, int, error) {
	return f.purchases.Status(userID)
}

// StalePendingOrders returns pending orders old enough to have outlived
// any interactive polling session.
func (f *SeekerFacade) StalePendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	return f.membership.StalePending(ctx, f.cfg.ReconcileGrace, limit)
}

func (f *SeekerFacade) CheckTrade(ctx context.Context, number string) (model.TradeStatus, error) {
	return f.gateway.QueryOrder(ctx, number)
}

func (f *SeekerFacade) SettleOrder(ctx context.Context, order model.Order, status model.TradeStatus) error {
	return f.membership.Settle(ctx, order, status)
}
