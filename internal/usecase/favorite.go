package usecase

import (
	"context"

	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/domain/repository"
)

// FavoriteUseCase manages the user's saved postings.
type FavoriteUseCase struct {
	favorites repository.FavoriteRepository
	jobs      repository.JobRepository
}

// NewFavoriteUseCase constructs FavoriteUseCase.
func NewFavoriteUseCase(favorites repository.FavoriteRepository, jobs repository.JobRepository) *FavoriteUseCase {
	return &FavoriteUseCase{favorites: favorites, jobs: jobs}
}

// Add saves a posting for the user. The posting must exist; saving it
// twice is a conflict.
func (u *FavoriteUseCase) Add(ctx context.Context, userID, jobID int64) error {
	if _, err := u.jobs.GetByID(ctx, jobID); err != nil {
		return err
	}
	return u.favorites.Add(ctx, userID, jobID)
}

// Remove drops a saved posting.
func (u *FavoriteUseCase) Remove(ctx context.Context, userID, jobID int64) error {
	return u.favorites.Remove(ctx, userID, jobID)
}

// List returns the user's saved postings, most recently saved first.
func (u *FavoriteUseCase) List(ctx context.Context, userID int64) ([]model.Job, error) {
	return u.favorites.ListByUser(ctx, userID)
}
