package auth

import (
	"context"
	"crypto/subtle"
	"errors"
	"log"
	"strings"

	"vidtube/internal/config"
	"vidtube/internal/domain"
	"vidtube/internal/pkg/jwt"
	"vidtube/internal/repository"
)

type TokenPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// TokenService mints access/refresh pairs and keeps the latest refresh token
// on the user record. A refresh token is accepted only while it is both
// cryptographically valid and equal to the stored copy, so each one can be
// exchanged exactly once.
//
// Issuing reads the user and writes the new refresh token in two separate
// round trips without a lock: concurrent rotations for the same user race and
// the last write wins.
type TokenService struct {
	users   TokenStore
	access  tokenSigner
	refresh tokenSigner
}

func NewTokenService(users TokenStore, cfg config.TokenConfig) *TokenService {
	return &TokenService{
		users:   users,
		access:  jwt.New(cfg.AccessSecret, cfg.AccessTTL),
		refresh: jwt.New(cfg.RefreshSecret, cfg.RefreshTTL),
	}
}

// IssueTokenPair mints a new pair for userID and stores the refresh token,
// replacing any previous one.
func (s *TokenService) IssueTokenPair(ctx context.Context, userID int64) (*TokenPair, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrTokenGeneration.Because(err)
	}
	return s.issue(ctx, user)
}

func (s *TokenService) issue(ctx context.Context, user *domain.User) (*TokenPair, error) {
	accessToken, err := s.access.GenerateToken(jwt.Identity{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		return nil, ErrTokenGeneration.Because(err)
	}

	refreshToken, err := s.refresh.GenerateToken(jwt.Identity{UserID: user.ID})
	if err != nil {
		return nil, ErrTokenGeneration.Because(err)
	}

	// only the refresh_token column is written; the rest of the record is not re-validated
	if err := s.users.UpdateRefreshToken(ctx, user.ID, &refreshToken); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, ErrTokenGeneration.Because(err)
	}

	return &TokenPair{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// RotateRefreshToken exchanges a refresh token for a brand-new pair.
func (s *TokenService) RotateRefreshToken(ctx context.Context, presented string) (*TokenPair, error) {
	presented = strings.TrimSpace(presented)
	if presented == "" {
		return nil, ErrRefreshTokenMissing
	}

	claims, err := s.refresh.ValidateToken(presented)
	if err != nil {
		return nil, ErrInvalidRefreshToken.Because(err)
	}

	user, err := s.users.GetByID(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidRefreshToken.Because(err)
		}
		return nil, ErrRefreshFailed.Because(err)
	}

	if user.RefreshToken == nil || subtle.ConstantTimeCompare([]byte(presented), []byte(*user.RefreshToken)) != 1 {
		log.Printf("refresh_rejected user_id=%d reason=stale_token", user.ID)
		return nil, ErrInvalidRefreshToken
	}

	return s.issue(ctx, user)
}

// RevokeRefreshToken clears the stored refresh token for userID.
func (s *TokenService) RevokeRefreshToken(ctx context.Context, userID int64) error {
	if err := s.users.UpdateRefreshToken(ctx, userID, nil); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrLogoutFailed.Because(err)
	}
	return nil
}

// VerifyAccessToken checks signature and expiry of an access token.
func (s *TokenService) VerifyAccessToken(token string) (*jwt.Claims, error) {
	return s.access.ValidateToken(token)
}
