package auth

import (
	"strings"

	"vidtube/internal/domain"
)

// RegisterRequest is bound from JSON or from a multipart form carrying the
// avatar and coverImage files.
type RegisterRequest struct {
	Username string `json:"username" form:"username" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
	FullName string `json:"fullName" form:"fullName"`
}

func (r *RegisterRequest) normalize() {
	r.Username = domain.NormalizeHandle(r.Username)
	r.Email = domain.NormalizeHandle(r.Email)
	r.FullName = strings.TrimSpace(r.FullName)
}

type LoginRequest struct {
	Username string `json:"username" form:"username"`
	Email    string `json:"email" form:"email" validate:"omitempty,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

func (r *LoginRequest) normalize() {
	r.Username = domain.NormalizeHandle(r.Username)
	r.Email = domain.NormalizeHandle(r.Email)
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken" form:"refreshToken"`
}

func (r *RefreshRequest) normalize() {
	r.RefreshToken = strings.TrimSpace(r.RefreshToken)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" form:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" form:"newPassword" validate:"required"`
}

// passwords are kept verbatim
func (r *ChangePasswordRequest) normalize() {}

type UpdateAccountRequest struct {
	FullName string `json:"fullName" form:"fullName" validate:"required"`
	Email    string `json:"email" form:"email" validate:"required,email"`
}

func (r *UpdateAccountRequest) normalize() {
	r.FullName = strings.TrimSpace(r.FullName)
	r.Email = domain.NormalizeHandle(r.Email)
}

// LoginResponse is the body of a successful login.
type LoginResponse struct {
	User         *domain.User `json:"user"`
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
}
