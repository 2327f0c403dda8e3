package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	mu    sync.Mutex
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, openID string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, OpenID: openID}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Put seeds the stub with a prebuilt user.
func (s *UserRepositoryStub) Put(user *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	s.Users[user.Login] = user
	s.ByID[user.ID] = user
	if user.ID >= s.Next {
		s.Next = user.ID + 1
	}
}

// OrderRepositoryStub allows tests to customize behaviour.
type OrderRepositoryStub struct {
	CreateFn             func(context.Context, *model.Order) (*model.Order, error)
	GetByNumberFn        func(context.Context, string) (*model.Order, error)
	ListByUserFn         func(context.Context, int64) ([]model.Order, error)
	MarkPaidFn           func(context.Context, string, int) error
	MarkClosedFn         func(context.Context, string) error
	SelectStalePendingFn func(context.Context, time.Duration, int) ([]model.Order, error)

	mu      sync.Mutex
	Orders  []model.Order
	Stale   []model.Order
	Paid    []PaidCall
	Closed  []string
	Created []model.Order
	NextID  int64
}

// PaidCall records a MarkPaid invocation.
type PaidCall struct {
	Number string
	Level  int
}

// Create tracks invocations and returns configured responses.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.NextID++
	stored := *order
	stored.ID = s.NextID
	if stored.Status == "" {
		stored.Status = model.OrderStatusPending
	}
	s.Created = append(s.Created, stored)
	s.Orders = append(s.Orders, stored)
	return &stored, nil
}

// GetByNumber returns matched order either via override or stored slice.
func (s *OrderRepositoryStub) GetByNumber(ctx context.Context, number string) (*model.Order, error) {
	if s.GetByNumberFn != nil {
		return s.GetByNumberFn(ctx, number)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.Orders {
		if o.Number == number {
			order := o
			return &order, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// ListByUser returns orders from configured slice.
func (s *OrderRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Order, error) {
	if s.ListByUserFn != nil {
		return s.ListByUserFn(ctx, userID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Orders, nil
}

// MarkPaid records settlement invocations.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, number string, level int) error {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, number, level)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Paid = append(s.Paid, PaidCall{Number: number, Level: level})
	return nil
}

// MarkClosed records closure invocations.
func (s *OrderRepositoryStub) MarkClosed(ctx context.Context, number string) error {
	if s.MarkClosedFn != nil {
		return s.MarkClosedFn(ctx, number)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Closed = append(s.Closed, number)
	return nil
}

// SelectStalePending returns configured stale orders.
func (s *OrderRepositoryStub) SelectStalePending(ctx context.Context, olderThan time.Duration, limit int) ([]model.Order, error) {
	if s.SelectStalePendingFn != nil {
		return s.SelectStalePendingFn(ctx, olderThan, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Stale, nil
}

// PaidCalls returns a copy of recorded MarkPaid invocations.
func (s *OrderRepositoryStub) PaidCalls() []PaidCall {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]PaidCall, len(s.Paid))
	copy(out, s.Paid)
	return out
}

// ClosedCalls returns a copy of recorded MarkClosed invocations.
func (s *OrderRepositoryStub) ClosedCalls() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.Closed))
	copy(out, s.Closed)
	return out
}

// JobRepositoryStub serves postings from a fixed slice.
type JobRepositoryStub struct {
	ListFn     func(context.Context, model.JobFilter) ([]model.Job, error)
	GetByIDFn  func(context.Context, int64) (*model.Job, error)
	GetByIDsFn func(context.Context, []int64) ([]model.Job, error)
	Jobs       []model.Job
}

// List returns configured postings.
func (s *JobRepositoryStub) List(ctx context.Context, filter model.JobFilter) ([]model.Job, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, filter)
	}
	return s.Jobs, nil
}

// GetByID finds a posting by identifier or returns not found.
func (s *JobRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Job, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	for _, j := range s.Jobs {
		if j.ID == id {
			job := j
			return &job, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// GetByIDs returns every configured posting matching the identifiers.
func (s *JobRepositoryStub) GetByIDs(ctx context.Context, ids []int64) ([]model.Job, error) {
	if s.GetByIDsFn != nil {
		return s.GetByIDsFn(ctx, ids)
	}
	var out []model.Job
	for _, id := range ids {
		for _, j := range s.Jobs {
			if j.ID == id {
				out = append(out, j)
			}
		}
	}
	return out, nil
}

// FavoriteRepositoryStub tracks saved postings per user.
type FavoriteRepositoryStub struct {
	AddFn    func(context.Context, int64, int64) error
	RemoveFn func(context.Context, int64, int64) error
	ListFn   func(context.Context, int64) ([]model.Job, error)
	Items    []model.Job
	Added    [][2]int64
	Removed  [][2]int64
}

// Add records the invocation or delegates to override.
func (s *FavoriteRepositoryStub) Add(ctx context.Context, userID, jobID int64) error {
	if s.AddFn != nil {
		return s.AddFn(ctx, userID, jobID)
	}
	s.Added = append(s.Added, [2]int64{userID, jobID})
	return nil
}

// Remove records the invocation or delegates to override.
func (s *FavoriteRepositoryStub) Remove(ctx context.Context, userID, jobID int64) error {
	if s.RemoveFn != nil {
		return s.RemoveFn(ctx, userID, jobID)
	}
	s.Removed = append(s.Removed, [2]int64{userID, jobID})
	return nil
}

// ListByUser returns configured saved postings.
func (s *FavoriteRepositoryStub) ListByUser(ctx context.Context, userID int64) ([]model.Job, error) {
	if s.ListFn != nil {
		return s.ListFn(ctx, userID)
	}
	return s.Items, nil
}

// ProfileRepositoryStub stores profiles in-memory.
type ProfileRepositoryStub struct {
	GetFn    func(context.Context, int64) (*model.Profile, error)
	UpsertFn func(context.Context, *model.Profile) error
	Profiles map[int64]*model.Profile
}

// Get returns stored profile or not found.
func (s *ProfileRepositoryStub) Get(ctx context.Context, userID int64) (*model.Profile, error) {
	if s.GetFn != nil {
		return s.GetFn(ctx, userID)
	}
	if profile, ok := s.Profiles[userID]; ok {
		return profile, nil
	}
	return nil, domainErrors.ErrNotFound
}

// Upsert stores the profile keyed by user.
func (s *ProfileRepositoryStub) Upsert(ctx context.Context, profile *model.Profile) error {
	if s.UpsertFn != nil {
		return s.UpsertFn(ctx, profile)
	}
	if s.Profiles == nil {
		s.Profiles = make(map[int64]*model.Profile)
	}
	s.Profiles[profile.UserID] = profile
	return nil
}
