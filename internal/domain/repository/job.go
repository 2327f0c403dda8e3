package repository

import (
	"context"

	"github.com/civiseek/civiseek/internal/domain/model"
)

// JobRepository describes read access to exam postings.
type JobRepository interface {
	List(ctx context.Context, filter model.JobFilter) ([]model.Job, error)
	GetByID(ctx context.Context, id int64) (*model.Job, error)
	GetByIDs(ctx context.Context, ids []int64) ([]model.Job, error)
}
