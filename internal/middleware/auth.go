package middleware

import (
	"context"
	"errors"
	"strings"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/apperr"
	"vidtube/internal/pkg/jwt"
	"vidtube/internal/pkg/response"
	"vidtube/internal/repository"

	"github.com/gin-gonic/gin"
)

const (
	AccessTokenCookie  = "accessToken"
	RefreshTokenCookie = "refreshToken"

	userKey   = "user"
	userIDKey = "user_id"
)

var (
	ErrAccessTokenMissing = apperr.Unauthorized("access token is missing").WithCode("ACCESS_TOKEN_MISSING")
	ErrInvalidAccessToken = apperr.Unauthorized("invalid access token").WithCode("INVALID_ACCESS_TOKEN")
	ErrUserNotFound       = apperr.Unauthorized("user not found").WithCode("USER_NOT_FOUND")
	ErrNotAuthenticated   = apperr.Unauthorized("authentication required").WithCode("UNAUTHORIZED")
)

type AccessTokenVerifier interface {
	VerifyAccessToken(token string) (*jwt.Claims, error)
}

// IdentityResolver loads a user without password hash and refresh token.
type IdentityResolver interface {
	GetPublicByID(ctx context.Context, id int64) (*domain.User, error)
}

// JWTAuth rejects the request unless it carries a valid access token for an
// existing user. The token is read from the accessToken cookie, then from the
// Authorization header. The resolved user is stored on the context.
func JWTAuth(verifier AccessTokenVerifier, users IdentityResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := extractAccessToken(c)
		if !ok {
			response.Abort(c, ErrAccessTokenMissing)
			return
		}

		claims, err := verifier.VerifyAccessToken(token)
		if err != nil {
			response.Abort(c, ErrInvalidAccessToken.Because(err))
			return
		}

		user, err := users.GetPublicByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				response.Abort(c, ErrUserNotFound)
				return
			}
			response.Abort(c, apperr.Internal("something went wrong while authenticating", err))
			return
		}

		c.Set(userKey, user)
		c.Set(userIDKey, user.ID)
		c.Next()
	}
}

// extractAccessToken returns the raw token. A header present without the
// Bearer scheme yields a garbage token so it fails verification rather than
// being reported as missing.
func extractAccessToken(c *gin.Context) (string, bool) {
	if cookie, err := c.Cookie(AccessTokenCookie); err == nil && strings.TrimSpace(cookie) != "" {
		return strings.TrimSpace(cookie), true
	}

	header := strings.TrimSpace(c.GetHeader("Authorization"))
	if header == "" {
		return "", false
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:]), true
	}
	return header, true
}

// CurrentUser returns the identity resolved by JWTAuth.
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, ok := c.Get(userKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}

func CurrentUserID(c *gin.Context) int64 {
	return c.GetInt64(userIDKey)
}

// RequireUser is used by handlers mounted behind JWTAuth. It writes a 401 and
// returns false when no identity was resolved.
func RequireUser(c *gin.Context) (*domain.User, bool) {
	user, ok := CurrentUser(c)
	if !ok {
		response.Fail(c, ErrNotAuthenticated)
		return nil, false
	}
	return user, true
}
