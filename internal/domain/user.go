package domain

import (
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// User is the account record. PasswordHash and RefreshToken never leave the
// server: both are excluded from JSON.
type User struct {
	ID           int64     `json:"_id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	Avatar       string    `json:"avatar"`
	CoverImage   string    `json:"coverImage"`
	PasswordHash string    `json:"-"`
	RefreshToken *string   `json:"-"`
	WatchHistory []int64   `json:"watchHistory"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// NormalizeHandle lower-cases and trims a username or email.
func NormalizeHandle(v string) string {
	return strings.ToLower(strings.TrimSpace(v))
}

// SetPassword stores a salted bcrypt hash of plain.
func (u *User) SetPassword(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	u.PasswordHash = string(hash)
	return nil
}

func (u *User) IsPasswordCorrect(plain string) bool {
	if u.PasswordHash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(plain)) == nil
}

// Identity returns the user with the credential fields stripped.
func (u *User) Identity() *User {
	cp := *u
	cp.PasswordHash = ""
	cp.RefreshToken = nil
	return &cp
}
