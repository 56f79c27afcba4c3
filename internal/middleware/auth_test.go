package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"vidtube/internal/domain"
	"vidtube/internal/pkg/jwt"
	"vidtube/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type verifierFunc func(string) (*jwt.Claims, error)

func (f verifierFunc) VerifyAccessToken(token string) (*jwt.Claims, error) { return f(token) }

type fakeUsers map[int64]*domain.User

func (f fakeUsers) GetPublicByID(_ context.Context, id int64) (*domain.User, error) {
	u, ok := f[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func newProtectedRouter(svc *jwt.Service, users IdentityResolver) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(JWTAuth(verifierFunc(svc.ValidateToken), users))
	router.GET("/protected", func(c *gin.Context) {
		user, ok := RequireUser(c)
		if !ok {
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id":  CurrentUserID(c),
			"username": user.Username,
		})
	})
	return router
}

func TestJWTAuth_ValidToken(t *testing.T) {
	svc := jwt.New("test-secret-123", time.Hour)
	users := fakeUsers{42: {ID: 42, Username: "ana"}}
	token, err := svc.GenerateToken(jwt.Identity{UserID: 42, Username: "ana"})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newProtectedRouter(svc, users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":42`)
	assert.Contains(t, w.Body.String(), "ana")
}

func TestJWTAuth_CookieTakesPrecedence(t *testing.T) {
	svc := jwt.New("test-secret-123", time.Hour)
	users := fakeUsers{
		1: {ID: 1, Username: "cookie"},
		2: {ID: 2, Username: "header"},
	}
	cookieToken, _ := svc.GenerateToken(jwt.Identity{UserID: 1})
	headerToken, _ := svc.GenerateToken(jwt.Identity{UserID: 2})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: AccessTokenCookie, Value: cookieToken})
	req.Header.Set("Authorization", "Bearer "+headerToken)
	newProtectedRouter(svc, users).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "cookie")
}

func TestJWTAuth_InvalidToken(t *testing.T) {
	svc := jwt.New("secret", time.Hour)
	other := jwt.New("wrong-secret", time.Hour)
	forged, _ := other.GenerateToken(jwt.Identity{UserID: 1})

	for name, token := range map[string]string{
		"garbage":      "invalid-jwt-here",
		"wrong secret": forged,
	} {
		t.Run(name, func(t *testing.T) {
			router := newProtectedRouter(svc, fakeUsers{1: {ID: 1}})
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			req.Header.Set("Authorization", "Bearer "+token)
			router.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "INVALID_ACCESS_TOKEN")
		})
	}
}

func TestJWTAuth_NoToken(t *testing.T) {
	svc := jwt.New("secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	newProtectedRouter(svc, fakeUsers{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "access token is missing")
}

func TestJWTAuth_WrongFormat(t *testing.T) {
	svc := jwt.New("secret", time.Hour)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Basic dGVzdA==")
	newProtectedRouter(svc, fakeUsers{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "INVALID_ACCESS_TOKEN")
}

func TestJWTAuth_DeletedUser(t *testing.T) {
	svc := jwt.New("secret", time.Hour)
	token, _ := svc.GenerateToken(jwt.Identity{UserID: 7})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newProtectedRouter(svc, fakeUsers{}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestJWTAuth_ExpiredToken(t *testing.T) {
	svc := jwt.New("secret", time.Millisecond)
	token, _ := svc.GenerateToken(jwt.Identity{UserID: 3})
	time.Sleep(1100 * time.Millisecond)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	newProtectedRouter(svc, fakeUsers{3: {ID: 3}}).ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRequireUser_WithoutGate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/open", func(c *gin.Context) {
		if _, ok := RequireUser(c); !ok {
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
