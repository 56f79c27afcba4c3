package auth

import (
	"context"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/jwt"
	"vidtube/internal/repository"
)

// TokenStore is the part of the credential store the token service needs.
type TokenStore interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	UpdateRefreshToken(ctx context.Context, id int64, token *string) error
}

// UserRepositoryInterface lists only the methods the account service uses
type UserRepositoryInterface interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error)
	Update(ctx context.Context, id int64, patch repository.UserPatch) (*domain.User, error)
}

type tokenSigner interface {
	GenerateToken(id jwt.Identity) (string, error)
	ValidateToken(tokenStr string) (*jwt.Claims, error)
}
