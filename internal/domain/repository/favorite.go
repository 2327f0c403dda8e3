package repository

import (
	"context"

	"github.com/civiseek/civiseek/internal/domain/model"
)

// FavoriteRepository manages per-user saved postings.
type FavoriteRepository interface {
	Add(ctx context.Context, userID, jobID int64) error
	Remove(ctx context.Context, userID, jobID int64) error
	ListByUser(ctx context.Context, userID int64) ([]model.Job, error)
}
