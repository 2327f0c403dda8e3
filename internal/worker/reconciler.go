package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/civiseek/civiseek/internal/adapter/payment"
	"github.com/civiseek/civiseek/internal/domain/model"
)

// SettlementFacade exposes the subset of application functionality
// required by the reconciler.
type SettlementFacade interface {
	StalePendingOrders(ctx context.Context, limit int) ([]model.Order, error)
	CheckTrade(ctx context.Context, number string) (model.TradeStatus, error)
	SettleOrder(ctx context.Context, order model.Order, status model.TradeStatus) error
}

// Reconciler sweeps pending orders whose interactive polling session gave
// up, re-queries the gateway, and records terminal outcomes concurrently.
type Reconciler struct {
	facade    SettlementFacade
	interval  time.Duration
	batchSize int
	workers   int
	logger    *slog.Logger

	jobs   chan model.Order
	wg     sync.WaitGroup
	cancel context.CancelFunc
	mu     sync.Mutex
}

// NewReconciler constructs the reconcile worker pool.
func NewReconciler(facade SettlementFacade, interval time.Duration, batchSize, workers int, logger *slog.Logger) *Reconciler {
	if workers <= 0 {
		workers = 1
	}
	if batchSize <= 0 {
		batchSize = 1
	}
	return &Reconciler{
		facade:    facade,
		interval:  interval,
		batchSize: batchSize,
		workers:   workers,
		logger:    logger,
		jobs:      make(chan model.Order, batchSize*workers),
	}
}

// Start launches background processing.
func (r *Reconciler) Start(ctx context.Context) {
	r.mu.Lock()
	defer r.mu.Unlock()

	runCtx, cancel := context.WithCancel(ctx)
	r.cancel = cancel

	for i := 0; i < r.workers; i++ {
		r.wg.Add(1)
		go r.worker(runCtx)
	}

	r.wg.Add(1)
	go r.dispatch(runCtx)
}

// Stop waits for all workers to finish.
func (r *Reconciler) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
		r.cancel = nil
	}
	r.mu.Unlock()

	r.wg.Wait()
}

func (r *Reconciler) dispatch(ctx context.Context) {
	defer r.wg.Done()
	defer close(r.jobs)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			r.fetchAndDispatch(ctx)
		}
	}
}

func (r *Reconciler) fetchAndDispatch(ctx context.Context) {
	orders, err := r.facade.StalePendingOrders(ctx, r.batchSize)
	if err != nil {
		r.logger.Error("fetch stale orders failed", slog.String("error", err.Error()))
		return
	}
	for _, order := range orders {
		select {
		case <-ctx.Done():
			return
		case r.jobs <- order:
		}
	}
}

func (r *Reconciler) worker(ctx context.Context) {
	defer r.wg.Done()
	for {
		select {
		case <-ctx.Done():
			return
		case order, ok := <-r.jobs:
			if !ok {
				return
			}
			r.handleOrder(ctx, order)
		}
	}
}

func (r *Reconciler) handleOrder(ctx context.Context, order model.Order) {
	status, err := r.facade.CheckTrade(ctx, order.Number)
	if err != nil {
		var rateLimited payment.TooManyRequestsError
		switch {
		case errors.As(err, &rateLimited):
			r.logger.Warn("gateway rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
			time.Sleep(rateLimited.RetryAfter)
		case errors.Is(err, payment.ErrOrderUnknown):
			// never reached the gateway, leave it for the next sweep
		default:
			r.logger.Error("trade check failed", slog.String("order", order.Number), slog.String("error", err.Error()))
		}
		return
	}

	if err := r.facade.SettleOrder(ctx, order, status); err != nil {
		r.logger.Error("settle order failed", slog.String("order", order.Number), slog.String("error", err.Error()))
	}
}
