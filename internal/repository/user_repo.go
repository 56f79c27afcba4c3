package repository

import (
	"context"
	"time"

	"vidtube/internal/domain"

	"gorm.io/gorm"
)

// UserRepository is the credential store.
type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

type userModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	Username     string    `gorm:"column:username;uniqueIndex;not null"`
	Email        string    `gorm:"column:email;uniqueIndex;not null"`
	FullName     string    `gorm:"column:full_name;index;not null"`
	Avatar       string    `gorm:"column:avatar;not null"`
	CoverImage   string    `gorm:"column:cover_image"`
	PasswordHash string    `gorm:"column:password_hash;not null"`
	RefreshToken *string   `gorm:"column:refresh_token"`
	WatchHistory []int64   `gorm:"column:watch_history;type:text;serializer:json"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (userModel) TableName() string { return "users" }

// columns returned to the auth gate and other identity reads
var publicUserColumns = []string{
	"id", "username", "email", "full_name", "avatar", "cover_image",
	"watch_history", "created_at", "updated_at",
}

func toDomainUser(m userModel) *domain.User {
	history := m.WatchHistory
	if history == nil {
		history = []int64{}
	}
	return &domain.User{
		ID:           m.ID,
		Username:     m.Username,
		Email:        m.Email,
		FullName:     m.FullName,
		Avatar:       m.Avatar,
		CoverImage:   m.CoverImage,
		PasswordHash: m.PasswordHash,
		RefreshToken: m.RefreshToken,
		WatchHistory: history,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
}

func toUserModel(u *domain.User) userModel {
	return userModel{
		ID:           u.ID,
		Username:     domain.NormalizeHandle(u.Username),
		Email:        domain.NormalizeHandle(u.Email),
		FullName:     u.FullName,
		Avatar:       u.Avatar,
		CoverImage:   u.CoverImage,
		PasswordHash: u.PasswordHash,
		RefreshToken: u.RefreshToken,
		WatchHistory: u.WatchHistory,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}

func (r *UserRepository) Create(ctx context.Context, u *domain.User) error {
	m := toUserModel(u)
	if m.WatchHistory == nil {
		m.WatchHistory = []int64{}
	}
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return translate(err)
	}
	*u = *toDomainUser(m)
	return nil
}

// GetByID returns the full record, credentials included.
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainUser(m), nil
}

// GetPublicByID returns the record without password hash and refresh token.
func (r *UserRepository) GetPublicByID(ctx context.Context, id int64) (*domain.User, error) {
	var m userModel
	if err := r.db.WithContext(ctx).Select(publicUserColumns).First(&m, id).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var m userModel
	err := r.db.WithContext(ctx).
		Select(publicUserColumns).
		Where("username = ?", domain.NormalizeHandle(username)).
		First(&m).Error
	if err != nil {
		return nil, translate(err)
	}
	return toDomainUser(m), nil
}

// FindByUsernameOrEmail matches either handle. Empty arguments are ignored.
func (r *UserRepository) FindByUsernameOrEmail(ctx context.Context, username, email string) (*domain.User, error) {
	username = domain.NormalizeHandle(username)
	email = domain.NormalizeHandle(email)
	if username == "" && email == "" {
		return nil, ErrNotFound
	}

	q := r.db.WithContext(ctx)
	switch {
	case username != "" && email != "":
		q = q.Where("username = ? OR email = ?", username, email)
	case username != "":
		q = q.Where("username = ?", username)
	default:
		q = q.Where("email = ?", email)
	}

	var m userModel
	if err := q.First(&m).Error; err != nil {
		return nil, translate(err)
	}
	return toDomainUser(m), nil
}

func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&userModel{}).
		Where("username = ? OR email = ?", domain.NormalizeHandle(username), domain.NormalizeHandle(email)).
		Count(&count).Error
	if err != nil {
		return false, translate(err)
	}
	return count > 0, nil
}

func (r *UserRepository) GetByIDs(ctx context.Context, ids []int64) ([]*domain.User, error) {
	if len(ids) == 0 {
		return []*domain.User{}, nil
	}
	var rows []userModel
	if err := r.db.WithContext(ctx).Select(publicUserColumns).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, translate(err)
	}
	users := make([]*domain.User, 0, len(rows))
	for _, m := range rows {
		users = append(users, toDomainUser(m))
	}
	return users, nil
}

// UpdateRefreshToken writes only the refresh_token column; nil clears it.
// No other field is touched or re-validated.
func (r *UserRepository) UpdateRefreshToken(ctx context.Context, id int64, token *string) error {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("id = ?", id).
		Update("refresh_token", token)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// UserPatch lists the profile fields that may change. Nil means unchanged.
type UserPatch struct {
	FullName     *string
	Email        *string
	Avatar       *string
	CoverImage   *string
	PasswordHash *string
}

func (p UserPatch) columns() map[string]any {
	cols := map[string]any{}
	if p.FullName != nil {
		cols["full_name"] = *p.FullName
	}
	if p.Email != nil {
		cols["email"] = domain.NormalizeHandle(*p.Email)
	}
	if p.Avatar != nil {
		cols["avatar"] = *p.Avatar
	}
	if p.CoverImage != nil {
		cols["cover_image"] = *p.CoverImage
	}
	if p.PasswordHash != nil {
		cols["password_hash"] = *p.PasswordHash
	}
	return cols
}

// Update applies patch and returns the updated record without credentials.
func (r *UserRepository) Update(ctx context.Context, id int64, patch UserPatch) (*domain.User, error) {
	cols := patch.columns()
	if len(cols) > 0 {
		res := r.db.WithContext(ctx).Model(&userModel{ID: id}).Updates(cols)
		if res.Error != nil {
			return nil, translate(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return r.GetPublicByID(ctx, id)
}

// PushWatchHistory moves videoID to the front of the user's history.
func (r *UserRepository) PushWatchHistory(ctx context.Context, userID, videoID int64) error {
	return translate(r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var m userModel
		if err := tx.Select("id", "watch_history").First(&m, userID).Error; err != nil {
			return err
		}
		history := make([]int64, 0, len(m.WatchHistory)+1)
		history = append(history, videoID)
		for _, id := range m.WatchHistory {
			if id != videoID {
				history = append(history, id)
			}
		}
		m.WatchHistory = history
		return tx.Model(&m).Select("watch_history").Updates(&m).Error
	}))
}

// ClearAllRefreshTokens revokes every stored refresh token.
func (r *UserRepository) ClearAllRefreshTokens(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Model(&userModel{}).
		Where("refresh_token IS NOT NULL").
		Update("refresh_token", nil)
	return res.RowsAffected, translate(res.Error)
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&userModel{}, id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
