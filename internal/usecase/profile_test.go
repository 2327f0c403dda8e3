package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	testhelpers "github.com/civiseek/civiseek/internal/test"
)

func TestSaveProfileUpserts(t *testing.T) {
	profiles := &testhelpers.ProfileRepositoryStub{}
	uc := NewProfileUseCase(profiles)

	profile := &model.Profile{UserID: 7, RealName: "  Jane Doe ", Education: "Bachelor", GraduationYear: 2020}
	if err := uc.Save(context.Background(), profile); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	stored, err := uc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored.RealName != "Jane Doe" {
		t.Fatalf("expected trimmed name, got %q", stored.RealName)
	}
}

func TestSaveProfileRequiresRealName(t *testing.T) {
	uc := NewProfileUseCase(&testhelpers.ProfileRepositoryStub{})
	if err := uc.Save(context.Background(), &model.Profile{UserID: 7, RealName: "   "}); !errors.Is(err, domainErrors.ErrInvalidProfile) {
		t.Fatalf("expected invalid profile, got %v", err)
	}
}

func TestSaveProfileValidatesGraduationYear(t *testing.T) {
	uc := NewProfileUseCase(&testhelpers.ProfileRepositoryStub{})
	for _, year := range []int{1949, time.Now().Year() + 11} {
		err := uc.Save(context.Background(), &model.Profile{UserID: 7, RealName: "Jane", GraduationYear: year})
		if !errors.Is(err, domainErrors.ErrInvalidProfile) {
			t.Fatalf("expected invalid profile for year %d, got %v", year, err)
		}
	}
	// zero means not provided
	if err := uc.Save(context.Background(), &model.Profile{UserID: 7, RealName: "Jane"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestGetProfileNotFound(t *testing.T) {
	uc := NewProfileUseCase(&testhelpers.ProfileRepositoryStub{})
	if _, err := uc.Get(context.Background(), 7); !errors.Is(err, domainErrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
