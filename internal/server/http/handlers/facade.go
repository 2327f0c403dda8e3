package handlers

import (
	"context"

	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/purchase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password string) (string, error)
	Authenticate(ctx context.Context, login, password string) (string, error)
	ParseToken(token string) (int64, error)
}

// JobFacade encapsulates posting operations exposed via HTTP.
type JobFacade interface {
	Jobs(ctx context.Context, filter model.JobFilter) ([]model.Job, error)
	Job(ctx context.Context, id int64) (*model.Job, error)
	CompareJobs(ctx context.Context, ids []int64) (*model.Comparison, error)
}

// FavoriteFacade provides saved-posting operations.
type FavoriteFacade interface {
	AddFavorite(ctx context.Context, userID, jobID int64) error
	RemoveFavorite(ctx context.Context, userID, jobID int64) error
	Favorites(ctx context.Context, userID int64) ([]model.Job, error)
}

// ProfileFacade provides applicant profile operations.
type ProfileFacade interface {
	Profile(ctx context.Context, userID int64) (*model.Profile, error)
	SaveProfile(ctx context.Context, profile *model.Profile) error
}

// PurchaseFacade drives the membership purchase flow.
type PurchaseFacade interface {
	Plans() []model.Plan
	Orders(ctx context.Context, userID int64) ([]model.Order, error)
	InitiatePurchase(ctx context.Context, userID, goodsID int64) (*purchase.Intent, error)
	ConfirmPayment(userID int64) error
	CancelPurchase(userID int64) error
	PurchaseStatus(userID int64) (purchase.State, int, error)
}

// SeekerFacade aggregates the full set of operations used across handlers.
type SeekerFacade interface {
	AuthFacade
	JobFacade
	FavoriteFacade
	ProfileFacade
	PurchaseFacade
}
