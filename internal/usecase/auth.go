package usecase

import (
	"context"
	"errors"
	"strings"

	domainErrors "github.com/civiseek/civiseek/internal/domain/errors"
	"github.com/civiseek/civiseek/internal/domain/model"
	"github.com/civiseek/civiseek/internal/domain/repository"
	pkgAuth "github.com/civiseek/civiseek/internal/pkg/auth"
)

// AuthUseCase handles user lifecycle and token management.
type AuthUseCase struct {
	users  repository.UserRepository
	hasher pkgAuth.PasswordHasher
	tokens pkgAuth.TokenCodec
}

// NewAuthUseCase constructs AuthUseCase.
func NewAuthUseCase(users repository.UserRepository, hasher pkgAuth.PasswordHasher, tokens pkgAuth.TokenCodec) *AuthUseCase {
	return &AuthUseCase{users: users, hasher: hasher, tokens: tokens}
}

// Register creates a new user with login/password and returns auth token.
// Every user receives an open-identity token at registration; purchases
// are gated on its presence.
func (u *AuthUseCase) Register(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	hash, err := u.hasher.Hash(password)
	if err != nil {
		return nil, "", err
	}

	openID, err := pkgAuth.NewOpenID()
	if err != nil {
		return nil, "", err
	}

	usr, err := u.users.Create(ctx, login, hash, openID)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return nil, "", domainErrors.ErrAlreadyExists
		}
		return nil, "", err
	}

	token, err := u.tokens.Issue(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// Authenticate validates credentials and returns auth token.
func (u *AuthUseCase) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	login = strings.TrimSpace(login)
	if login == "" || password == "" {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	usr, err := u.users.GetByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			return nil, "", domainErrors.ErrInvalidCredentials
		}
		return nil, "", err
	}

	if err := u.hasher.Compare(usr.PasswordHash, password); err != nil {
		return nil, "", domainErrors.ErrInvalidCredentials
	}

	token, err := u.tokens.Issue(usr.ID)
	if err != nil {
		return nil, "", err
	}

	return usr, token, nil
}

// ParseToken resolves a bearer token into a user ID.
func (u *AuthUseCase) ParseToken(token string) (int64, error) {
	return u.tokens.Parse(token)
}
