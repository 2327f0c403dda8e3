package repository

import (
	"context"
	"time"

	"github.com/civiseek/civiseek/internal/domain/model"
)

// OrderRepository describes persistence operations with membership orders.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByNumber(ctx context.Context, number string) (*model.Order, error)
	ListByUser(ctx context.Context, userID int64) ([]model.Order, error)
	// MarkPaid closes out the order and raises the owner's membership
	// level in the same transaction.
	MarkPaid(ctx context.Context, number string, level int) error
	MarkClosed(ctx context.Context, number string) error
	// SelectStalePending returns pending orders untouched for longer than
	// the grace period, oldest first.
	SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error)
}
