package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/civiseek/civiseek/internal/adapter/payment"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/purchase"
)

// JobFacadeStub provides controllable behaviour for posting endpoints.
type JobFacadeStub struct {
	JobsFn    func(context.Context, model.JobFilter) ([]model.Job, error)
	JobFn     func(context.Context, int64) (*model.Job, error)
	CompareFn func(context.Context, []int64) (*model.Comparison, error)
}

// Jobs delegates to provided function or returns a fixed posting.
func (s JobFacadeStub) Jobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	if s.JobsFn != nil {
		return s.JobsFn(ctx, filter)
	}
	return []model.Job{{ID: 1, Title: "Clerk"}}, nil
}

// Job returns a posting by identifier.
func (s JobFacadeStub) Job(ctx context.Context, id int64) (*model.Job, error) {
	if s.JobFn != nil {
		return s.JobFn(ctx, id)
	}
	return &model.Job{ID: id, Title: "Clerk"}, nil
}

// CompareJobs returns a canned comparison.
func (s JobFacadeStub) CompareJobs(ctx context.Context, ids []int64) (*model.Comparison, error) {
	if s.CompareFn != nil {
		return s.CompareFn(ctx, ids)
	}
	return &model.Comparison{Titles: []string{"Clerk", "Analyst"}}, nil
}

// FavoriteFacadeStub simulates saved-posting operations.
type FavoriteFacadeStub struct {
	AddFn    func(context.Context, int64, int64) error
	RemoveFn func(context.Context, int64, int64) error
	ListFn   func(context.Context, int64) ([]model.Job, error)
}

// AddFavorite executes configured handler.
func (s FavoriteFacadeStub) AddFavorite(ctx context.Context, userID, jobID int64) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, jobID)
	}
	return nil
}

// RemoveFavorite executes configured handler.
func (s FavoriteFacadeStub) RemoveFavorite(ctx context.Context, userID, jobID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, jobID)
	}
	return nil
}

// Favorites returns preconfigured postings.
func (s FavoriteFacadeStub) Favorites(ctx context.Context, userID int64) ([]model.Job, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return []model.Job{{ID: 1, Title: "Clerk"}}, nil
}

// ProfileFacadeStub simulates applicant profile operations.
type ProfileFacadeStub struct {
	ProfileFn func(context.Context, int64) (*model.Profile, error)
	SaveFn    func(context.Context, *model.Profile) error
}

// Profile returns a canned profile.
func (s ProfileFacadeStub) Profile(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, userID)
	}
	return &model.Profile{UserID: userID, RealName: "Jane"}, nil
}

// SaveProfile executes configured handler.
func (s ProfileFacadeStub) SaveProfile(ctx context.Context, profile *model.Profile) error {
	if s.SaveFn != nil {
		return s.SaveFn(ctx, profile)
	}
	return nil
}

// PurchaseFacadeStub drives membership purchase endpoints in tests.
type PurchaseFacadeStub struct {
	PlansFn    func() []model.Plan
	OrdersFn   func(context.Context, int64) ([]model.Order, error)
	InitiateFn func(context.Context, int64, int64) (*purchase.Intent, error)
	ConfirmFn  func(int64) error
	CancelFn   func(int64) error
	StatusFn   func(int64) (purchase.State, int, error)
}

// Plans returns configured tiers.
func (s PurchaseFacadeStub) Plans() []model.Plan {
	if s.PlansFn != nil {
		return s.PlansFn()
	}
	return []model.Plan{{GoodsID: 1, Name: "Monthly", Level: 1, Price: 19.9}}
}

// Orders returns predefined orders for given user.
func (s PurchaseFacadeStub) Orders(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, userID)
	}
	return []model.Order{{Number: "CS1", UserID: userID}}, nil
}

// InitiatePurchase returns a canned payment intent.
func (s PurchaseFacadeStub) InitiatePurchase(ctx context.Context, userID, goodsID int64) (*purchase.Intent, error) {
	if s.InitiateFn != nil {
		return s.InitiateFn(ctx, userID, goodsID)
	}
	return &purchase.Intent{OrderNumber: "CS1", Amount: 19.9, Subject: "Monthly", FormHTML: "<form/>"}, nil
}

// ConfirmPayment executes configured handler.
func (s PurchaseFacadeStub) ConfirmPayment(userID int64) error {
	if s.ConfirmFn != nil {
		return s.ConfirmFn(userID)
	}
	return nil
}

// CancelPurchase executes configured handler.
func (s PurchaseFacadeStub) CancelPurchase(userID int64) error {
	if s.CancelFn != nil {
		return s.CancelFn(userID)
	}
	return nil
}

// PurchaseStatus returns configured state.
func (s PurchaseFacadeStub) PurchaseStatus(userID int64) (purchase.State, int, error) {
	if s.StatusFn != nil {
		return s.StatusFn(userID)
	}
	return purchase.StatePolling, 1, nil
}

// SeekerFacadeStub aggregates facade dependencies for HTTP layer tests.
type SeekerFacadeStub struct {
	AuthFacadeStub
	JobFacadeStub
	FavoriteFacadeStub
	ProfileFacadeStub
	PurchaseFacadeStub
}

// SettleCall stores information about SettleOrder invocations.
type SettleCall struct {
	Order  model.Order
	Status model.TradeStatus
}

// WorkerFacadeStub mimics reconciler interactions with the application facade.
type WorkerFacadeStub struct {
	Batches  [][]model.Order
	StaleFn  func(context.Context, int) ([]model.Order, error)
	CheckFn  func(context.Context, string) (model.TradeStatus, error)
	SettleFn func(context.Context, model.Order, model.TradeStatus) error
	Settled  []SettleCall

	mu             sync.Mutex
	staleCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// StalePendingOrders returns batches from configured queue.
func (s *WorkerFacadeStub) StalePendingOrders(ctx context.Context, limit int) ([]model.Order, error) {
	if s.StaleFn != nil {
		return s.StaleFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.staleCallCount, 1)
	if int(call) <= len(s.Batches) {
		return s.Batches[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// CheckTrade returns configured trade status.
func (s *WorkerFacadeStub) CheckTrade(ctx context.Context, number string) (model.TradeStatus, error) {
	if s.CheckFn != nil {
		return s.CheckFn(ctx, number)
	}
	return model.TradeStatusSuccess, nil
}

// SettleOrder records settlement requests.
func (s *WorkerFacadeStub) SettleOrder(ctx context.Context, order model.Order, status model.TradeStatus) error {
	if s.SettleFn != nil {
		return s.SettleFn(ctx, order, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Settled = append(s.Settled, SettleCall{Order: order, Status: status})
	return nil
}

// GatewayStub simulates the order gateway for tests.
type GatewayStub struct {
	CreateFn func(context.Context, payment.CreateOrderRequest) (string, error)
	QueryFn  func(context.Context, string) (model.TradeStatus, error)

	mu       sync.Mutex
	Creates  []payment.CreateOrderRequest
	Queries  []string
	Statuses []model.TradeStatus
	Err      error
}

// CreateOrder records the request and returns a canned form.
func (s *GatewayStub) CreateOrder(ctx context.Context, req payment.CreateOrderRequest) (string, error) {
	s.mu.Lock()
	s.Creates = append(s.Creates, req)
	s.mu.Unlock()
	if s.CreateFn != nil {
		return s.CreateFn(ctx, req)
	}
	if s.Err != nil {
		return "", s.Err
	}
	return "<form/>", nil
}

// QueryOrder pops the next configured status, pending when exhausted.
func (s *GatewayStub) QueryOrder(ctx context.Context, number string) (model.TradeStatus, error) {
	s.mu.Lock()
	s.Queries = append(s.Queries, number)
	call := len(s.Queries)
	s.mu.Unlock()
	if s.QueryFn != nil {
		return s.QueryFn(ctx, number)
	}
	if s.Err != nil {
		return "", s.Err
	}
	if call <= len(s.Statuses) {
		return s.Statuses[call-1], nil
	}
	return model.TradeStatusPending, nil
}

// QueryCount returns the number of QueryOrder invocations.
func (s *GatewayStub) QueryCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Queries)
}

// CreateCount returns the number of CreateOrder invocations.
func (s *GatewayStub) CreateCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.Creates)
}
