package usecase

import (
	"context"
	"time"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/domain/repository"
)

// MembershipUseCase exposes the plan catalog and order settlement logic.
type MembershipUseCase struct {
	catalog *model.PlanCatalog
	orders  repository.OrderRepository
	users   repository.UserRepository
}

// NewMembershipUseCase constructs MembershipUseCase.
func NewMembershipUseCase(catalog *model.PlanCatalog, orders repository.OrderRepository, users repository.UserRepository) *MembershipUseCase {
	return &MembershipUseCase{catalog: catalog, orders: orders, users: users}
}

// Plans returns the purchasable tiers.
func (u *MembershipUseCase) Plans() []model.Plan {
	return u.catalog.Plans()
}

// Quote computes the charge for the user to move to the given plan.
func (u *MembershipUseCase) Quote(ctx context.Context, userID, goodsID int64) (float64, error) {
	plan, ok := u.catalog.ByGoodsID(goodsID)
	if !ok {
		return 0, domainErrors.ErrUnknownPlan
	}
	usr, err := u.users.GetByID(ctx, userID)
	if err != nil {
		return 0, err
	}
	return u.catalog.UpgradePrice(usr.MembershipLevel, plan), nil
}

// OrdersByUser lists the user's purchase history, newest first.
func (u *MembershipUseCase) OrdersByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	return u.orders.ListByUser(ctx, userID)
}

// StalePending returns pending orders abandoned by their polling sessions.
func (u *MembershipUseCase) StalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	return u.orders.SelectStalePending(ctx, olderThan, limit)
}

// Settle records a gateway-reported terminal outcome for an order. Pending
// statuses are a no-op.
func (u *MembershipUseCase) Settle(ctx context.Context, order model.Order, status model.TradeStatus) error {
	switch {
	case status.Succeeded():
		plan, ok := u.catalog.ByGoodsID(order.GoodsID)
		if !ok {
			return domainErrors.ErrUnknownPlan
		}
		return u.orders.MarkPaid(ctx, order.Number, plan.Level)
	case status.Closed():
		return u.orders.MarkClosed(ctx, order.Number)
	default:
		return nil
	}
}
