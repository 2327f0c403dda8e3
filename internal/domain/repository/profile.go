package repository

import (
	"context"

	"github.com/civiseek/civiseek/internal/domain/model"
)

// ProfileRepository stores applicant profiles.
type ProfileRepository interface {
	Get(ctx context.Context, userID int64) (*model.Profile, error)
	Upsert(ctx context.Context, profile *model.Profile) error
}
