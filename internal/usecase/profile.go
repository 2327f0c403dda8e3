package usecase

import (
	"context"
	"strings"
	"time"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/domain/repository"
)

// ProfileUseCase manages applicant profiles.
type ProfileUseCase struct {
	profiles repository.ProfileRepository
}

// NewProfileUseCase constructs ProfileUseCase.
func NewProfileUseCase(profiles repository.ProfileRepository) *ProfileUseCase {
	return &ProfileUseCase{profiles: profiles}
}

// Get returns the user's profile.
func (u *ProfileUseCase) Get(ctx context.Context, userID int64) (*model.Profile, error) {
	return u.profiles.Get(ctx, userID)
}

// Save validates and upserts the user's profile.
func (u *ProfileUseCase) Save(ctx context.Context, profile *model.Profile) error {
	profile.RealName = strings.TrimSpace(profile.RealName)
	if profile.RealName == "" {
		return domainErrors.ErrInvalidProfile
	}
	if profile.GraduationYear != 0 {
		year := time.Now().Year()
		if profile.GraduationYear < 1950 || profile.GraduationYear > year+10 {
			return domainErrors.ErrInvalidProfile
		}
	}
	return u.profiles.Upsert(ctx, profile)
}
