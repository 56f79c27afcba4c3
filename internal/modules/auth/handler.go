package auth

import (
	"mime/multipart"
	"net/http"
	"strings"

	"vidtube/internal/config"
	"vidtube/internal/middleware"
	"vidtube/internal/pkg/response"
	"vidtube/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

// Handler serves the account endpoints
type Handler struct {
	service *Service
	cookies config.CookieConfig
}

func NewHandler(service *Service, cookies config.CookieConfig) *Handler {
	return &Handler{
		service: service,
		cookies: cookies,
	}
}

// Register creates an account.
// @Summary		Register user
// @Description	Creates a user from JSON or a multipart form with optional avatar and coverImage files.
// @Tags		Users
// @Success		201	{object}		map[string]interface{}
// @Failure		400	{object}		map[string]interface{}
// @Failure		409	{object}		map[string]interface{}
// @Router		/users/register [post]
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := bind(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	user, err := h.service.Register(c.Request.Context(), RegisterInput{
		RegisterRequest: req,
		Avatar:          formFile(c, "avatar"),
		CoverImage:      formFile(c, "coverImage"),
	})
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusCreated, user, "user registered successfully")
}

// Login checks credentials and starts a session.
// @Summary		Login
// @Description	Accepts username or email with password; sets accessToken and refreshToken cookies.
// @Tags		Users
// @Success		200	{object}		LoginResponse
// @Failure		401	{object}		map[string]interface{}
// @Failure		404	{object}		map[string]interface{}
// @Router		/users/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		response.Fail(c, ErrInvalidBody.Because(err))
		return
	}
	req.normalize()
	// the identifier check comes before field validation so its message wins
	if req.Username == "" && req.Email == "" {
		response.Fail(c, ErrIdentifierRequired)
		return
	}
	if errs := validator.Validate(req); errs != nil {
		response.Fail(c, ErrInvalidInput.WithDetails(errs))
		return
	}

	user, pair, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	response.Success(c, http.StatusOK, LoginResponse{
		User:         user,
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
	}, "user logged in successfully")
}

// Logout clears the stored refresh token and both cookies.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context(), middleware.CurrentUserID(c)); err != nil {
		response.Fail(c, err)
		return
	}

	h.clearAuthCookies(c)
	response.Success(c, http.StatusOK, gin.H{}, "user logged out")
}

// RefreshToken exchanges the refresh token (cookie first, then body) for a
// new pair. The presented token stops working.
func (h *Handler) RefreshToken(c *gin.Context) {
	token, err := c.Cookie(middleware.RefreshTokenCookie)
	if err != nil || strings.TrimSpace(token) == "" {
		var req RefreshRequest
		if c.Request.ContentLength != 0 {
			if err := c.ShouldBind(&req); err != nil {
				response.Fail(c, ErrInvalidBody.Because(err))
				return
			}
		}
		req.normalize()
		token = req.RefreshToken
	}

	pair, err := h.service.Refresh(c.Request.Context(), token)
	if err != nil {
		response.Fail(c, err)
		return
	}

	h.setAuthCookies(c, pair)
	response.Success(c, http.StatusOK, pair, "access token refreshed")
}

func (h *Handler) ChangePassword(c *gin.Context) {
	var req ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	if err := h.service.ChangePassword(c.Request.Context(), middleware.CurrentUserID(c), req); err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{}, "password changed successfully")
}

func (h *Handler) CurrentUser(c *gin.Context) {
	user, ok := middleware.RequireUser(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, user, "current user fetched successfully")
}

func (h *Handler) UpdateAccount(c *gin.Context) {
	var req UpdateAccountRequest
	if err := bind(c, &req); err != nil {
		response.Fail(c, err)
		return
	}

	user, err := h.service.UpdateAccount(c.Request.Context(), middleware.CurrentUserID(c), req)
	if err != nil {
		response.Fail(c, err)
		return
	}

	response.Success(c, http.StatusOK, user, "account details updated successfully")
}

func (h *Handler) UpdateAvatar(c *gin.Context) {
	user, err := h.service.UpdateAvatar(c.Request.Context(), middleware.CurrentUserID(c), formFile(c, "avatar"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "avatar updated successfully")
}

func (h *Handler) UpdateCoverImage(c *gin.Context) {
	user, err := h.service.UpdateCoverImage(c.Request.Context(), middleware.CurrentUserID(c), formFile(c, "coverImage"))
	if err != nil {
		response.Fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, user, "cover image updated successfully")
}

type normalizer interface {
	normalize()
}

// bind parses the body (JSON or form), trims it and runs field validation.
// A missing required field is reported as ErrFieldsRequired.
func bind(c *gin.Context, req normalizer) error {
	if err := c.ShouldBind(req); err != nil {
		return ErrInvalidBody.Because(err)
	}
	req.normalize()

	errs := validator.Validate(req)
	if errs == nil {
		return nil
	}
	for _, tag := range errs {
		if tag == "required" {
			return ErrFieldsRequired.WithDetails(errs)
		}
	}
	return ErrInvalidInput.WithDetails(errs)
}

// formFile returns the uploaded file for field, or nil when the request is not
// multipart or carries no such part. Every upload endpoint resolves files here.
func formFile(c *gin.Context, field string) *multipart.FileHeader {
	if !strings.HasPrefix(c.ContentType(), "multipart/form-data") {
		return nil
	}
	fh, err := c.FormFile(field)
	if err != nil {
		return nil
	}
	return fh
}

func (h *Handler) setAuthCookies(c *gin.Context, pair *TokenPair) {
	c.SetSameSite(parseSameSite(h.cookies.SameSite))
	// access cookie is session scoped
	c.SetCookie(middleware.AccessTokenCookie, pair.AccessToken, 0, h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, pair.RefreshToken, int(h.cookies.RefreshMaxAge.Seconds()), h.cookies.Path, "", h.cookies.Secure, true)
}

func (h *Handler) clearAuthCookies(c *gin.Context) {
	c.SetSameSite(parseSameSite(h.cookies.SameSite))
	c.SetCookie(middleware.AccessTokenCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
	c.SetCookie(middleware.RefreshTokenCookie, "", -1, h.cookies.Path, "", h.cookies.Secure, true)
}

func parseSameSite(mode string) http.SameSite {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "strict":
		return http.SameSiteStrictMode
	case "none":
		return http.SameSiteNoneMode
	default:
		return http.SameSiteLaxMode
	}
}
