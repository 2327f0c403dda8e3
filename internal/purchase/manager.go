package purchase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/civiseek/civiseek/internal/adapter/payment"
	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/pkg/ordernum"
)

var (
	// ErrNoActiveSession is returned when the user has no purchase in flight.
	ErrNoActiveSession = errors.New("no active purchase session")
	// ErrConfirmInProgress is returned when confirmation polling already runs.
	ErrConfirmInProgress = errors.New("payment confirmation already in progress")
)

const settleTimeout = 5 * time.Second

// Gateway is the slice of the order gateway the flow depends on.
type Gateway interface {
	CreateOrder(ctx context.Context, req payment.CreateOrderRequest) (string, error)
	QueryOrder(ctx context.Context, orderNumber string) (model.TradeStatus, error)
}

// OrderStore persists purchase attempts and their outcomes.
type OrderStore interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	MarkPaid(ctx context.Context, number string, level int) error
	MarkClosed(ctx context.Context, number string) error
}

// UserSource supplies the session state gating purchase eligibility.
type UserSource interface {
	GetByID(ctx context.Context, id int64) (*model.User, error)
}

// Intent is what the caller needs to open the hosted payment page.
type Intent struct {
	OrderNumber string
	Amount      float64
	Subject     string
	FormHTML    string
}

// Manager drives membership purchases: order creation, the hosted payment
// redirect, and status polling until success, closure, or timeout. It owns
// every polling timer and guarantees cancellation on all exit paths.
type Manager struct {
	users       UserSource
	orders      OrderStore
	gateway     Gateway
	catalog     *model.PlanCatalog
	prefix      string
	interval    time.Duration
	maxAttempts int
	logger      *slog.Logger

	mu       sync.Mutex
	sessions map[int64]*Session
	wg       sync.WaitGroup
}

// NewManager constructs the purchase flow manager.
func NewManager(users UserSource, orders OrderStore, gateway Gateway, catalog *model.PlanCatalog, prefix string, interval time.Duration, maxAttempts int, logger *slog.Logger) *Manager {
	if interval <= 0 {
		interval = 3 * time.Second
	}
	if maxAttempts <= 0 {
		maxAttempts = 12
	}
	return &Manager{
		users:       users,
		orders:      orders,
		gateway:     gateway,
		catalog:     catalog,
		prefix:      prefix,
		interval:    interval,
		maxAttempts: maxAttempts,
		logger:      logger,
		sessions:    make(map[int64]*Session),
	}
}

// Initiate creates a membership order and prepares an idle session for
// confirmation. The previous session of the user, if any, is cancelled.
func (m *Manager) Initiate(ctx context.Context, userID, goodsID int64) (*Intent, error) {
	user, err := m.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, domainErrors.ErrNotAuthenticated
		}
		return nil, err
	}
	if user.OpenID == "" {
		return nil, domainErrors.ErrNotAuthenticated
	}

	plan, ok := m.catalog.ByGoodsID(goodsID)
	if !ok {
		return nil, domainErrors.ErrUnknownPlan
	}

	amount := m.catalog.UpgradePrice(user.MembershipLevel, plan)
	number := ordernum.Generate(m.prefix)
	subject := fmt.Sprintf("membership: %s", plan.Name)

	order := &model.Order{
		UserID:  userID,
		Number:  number,
		GoodsID: plan.GoodsID,
		Amount:  amount,
		Subject: subject,
		Status:  model.OrderStatusPending,
	}
	if _, err := m.orders.Create(ctx, order); err != nil {
		m.logger.Error("persist order failed", slog.String("order", number), slog.String("error", err.Error()))
		return nil, domainErrors.ErrOrderCreationFailed
	}

	formHTML, err := m.gateway.CreateOrder(ctx, payment.CreateOrderRequest{
		UserID:      userID,
		GoodsID:     plan.GoodsID,
		OrderNumber: number,
		Amount:      amount,
		Subject:     subject,
	})
	if err != nil {
		m.logger.Error("gateway create order failed", slog.String("order", number), slog.String("error", err.Error()))
		m.closeAbandoned(number)
		return nil, domainErrors.ErrOrderCreationFailed
	}

	m.install(userID, newSession(userID, number, plan.Level))

	return &Intent{
		OrderNumber: number,
		Amount:      amount,
		Subject:     subject,
		FormHTML:    formHTML,
	}, nil
}

// Confirm starts status polling for the user's idle session. The first
// check runs immediately, further checks every interval up to the attempt
// limit. Checks are serialized within a single polling goroutine.
func (m *Manager) Confirm(userID int64) error {
	s := m.session(userID)
	if s == nil {
		return ErrNoActiveSession
	}
	if !s.transition(StatePolling) {
		if state, _ := s.Snapshot(); state == StatePolling {
			return ErrConfirmInProgress
		}
		return ErrNoActiveSession
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.setCancel(cancel)
	m.wg.Add(1)
	go m.poll(ctx, s)
	return nil
}

// Cancel discards the user's session and stops its timer. A tick already
// scheduled will not execute.
func (m *Manager) Cancel(userID int64) error {
	m.mu.Lock()
	s := m.sessions[userID]
	delete(m.sessions, userID)
	m.mu.Unlock()

	if s == nil {
		return ErrNoActiveSession
	}
	s.stop()
	return nil
}

// Status reports the state and attempt count of the user's session.
func (m *Manager) Status(userID int64) (State, int, error) {
	s := m.session(userID)
	if s == nil {
		return "", 0, ErrNoActiveSession
	}
	state, attempts := s.Snapshot()
	return state, attempts, nil
}

// Close cancels all sessions and waits for polling goroutines to exit.
func (m *Manager) Close() {
	m.mu.Lock()
	for userID, s := range m.sessions {
		s.stop()
		delete(m.sessions, userID)
	}
	m.mu.Unlock()
	m.wg.Wait()
}

func (m *Manager) session(userID int64) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessions[userID]
}

func (m *Manager) install(userID int64, s *Session) {
	m.mu.Lock()
	prev := m.sessions[userID]
	m.sessions[userID] = s
	m.mu.Unlock()
	if prev != nil {
		prev.stop()
	}
}

func (m *Manager) poll(ctx context.Context, s *Session) {
	defer m.wg.Done()
	defer s.finish()

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		if m.check(ctx, s) {
			return
		}
		if _, attempts := s.Snapshot(); attempts >= m.maxAttempts {
			if s.transition(StateTimedOut) {
				m.logger.Warn("payment unresolved after max attempts, manual check required",
					slog.String("order", s.OrderNumber()),
					slog.Int("attempts", attempts),
				)
			}
			return
		}
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

// check performs one status query. It returns true when the session
// reached a terminal state and polling must stop.
func (m *Manager) check(ctx context.Context, s *Session) bool {
	s.nextAttempt()

	status, err := m.gateway.QueryOrder(ctx, s.orderNumber)
	if err != nil {
		if ctx.Err() != nil {
			return true
		}
		var rateLimited payment.TooManyRequestsError
		switch {
		case errors.As(err, &rateLimited):
			m.logger.Warn("gateway rate limited", slog.Duration("retry_after", rateLimited.RetryAfter))
		case errors.Is(err, payment.ErrOrderUnknown):
			// gateway hasn't seen the trade yet, still pending
		default:
			m.logger.Error("status check failed", slog.String("order", s.orderNumber), slog.String("error", err.Error()))
		}
		return false
	}

	switch {
	case status.Succeeded():
		if !s.transition(StateSucceeded) {
			return true
		}
		m.settle(s, func(ctx context.Context) error {
			return m.orders.MarkPaid(ctx, s.orderNumber, s.planLevel)
		})
		return true
	case status.Closed():
		if !s.transition(StateClosed) {
			return true
		}
		m.settle(s, func(ctx context.Context) error {
			return m.orders.MarkClosed(ctx, s.orderNumber)
		})
		return true
	default:
		return false
	}
}

// settle records a terminal outcome with its own context so teardown of
// the polling context cannot lose a resolved payment.
func (m *Manager) settle(s *Session, fn func(context.Context) error) {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	if err := fn(ctx); err != nil {
		m.logger.Error("record payment outcome failed", slog.String("order", s.orderNumber), slog.String("error", err.Error()))
	}
}

func (m *Manager) closeAbandoned(number string) {
	ctx, cancel := context.WithTimeout(context.Background(), settleTimeout)
	defer cancel()
	if err := m.orders.MarkClosed(ctx, number); err != nil {
		m.logger.Error("close abandoned order failed", slog.String("order", number), slog.String("error", err.Error()))
	}
}
