package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"mime/multipart"
	"strings"

	"vidtube/internal/domain"
	"vidtube/internal/modules/media"
	"vidtube/internal/pkg/apperr"
	"vidtube/internal/repository"
)

// Service handles account business logic
type Service struct {
	users         UserRepositoryInterface
	tokens        *TokenService
	uploader      media.Uploader
	defaultAvatar string
}

func NewService(users UserRepositoryInterface, tokens *TokenService, uploader media.Uploader, defaultAvatar string) *Service {
	return &Service{
		users:         users,
		tokens:        tokens,
		uploader:      uploader,
		defaultAvatar: defaultAvatar,
	}
}

// RegisterInput is a validated registration request plus its optional files.
type RegisterInput struct {
	RegisterRequest
	Avatar     *multipart.FileHeader
	CoverImage *multipart.FileHeader
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	if in.Username == "" || in.Email == "" || strings.TrimSpace(in.Password) == "" {
		return nil, ErrFieldsRequired
	}

	exists, err := s.users.ExistsByUsernameOrEmail(ctx, in.Username, in.Email)
	if err != nil {
		return nil, ErrRegistrationFailed.Because(err)
	}
	if exists {
		return nil, ErrUserExists
	}

	avatarURL := s.defaultAvatar
	if in.Avatar != nil {
		asset, err := s.upload(ctx, in.Avatar, ErrAvatarUpload)
		if err != nil {
			return nil, err
		}
		avatarURL = asset.URL
	}

	var coverURL string
	if in.CoverImage != nil {
		asset, err := s.upload(ctx, in.CoverImage, ErrCoverImageUpload)
		if err != nil {
			return nil, err
		}
		coverURL = asset.URL
	}

	fullName := in.FullName
	if fullName == "" {
		fullName = in.Username
	}

	user := &domain.User{
		Username:   in.Username,
		Email:      in.Email,
		FullName:   fullName,
		Avatar:     avatarURL,
		CoverImage: coverURL,
	}
	if err := user.SetPassword(in.Password); err != nil {
		return nil, ErrRegistrationFailed.Because(fmt.Errorf("hash password: %w", err))
	}

	if err := s.users.Create(ctx, user); err != nil {
		// lost a race with a concurrent registration
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUserExists
		}
		return nil, ErrRegistrationFailed.Because(err)
	}

	log.Printf("user_registered user_id=%d username=%s", user.ID, user.Username)
	return user.Identity(), nil
}

func (s *Service) Login(ctx context.Context, req LoginRequest) (*domain.User, *TokenPair, error) {
	if req.Username == "" && req.Email == "" {
		return nil, nil, ErrIdentifierRequired
	}

	user, err := s.users.FindByUsernameOrEmail(ctx, req.Username, req.Email)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil, ErrUserNotFound
		}
		return nil, nil, apperr.Internal("something went wrong while logging in", err)
	}

	if !user.IsPasswordCorrect(req.Password) {
		return nil, nil, ErrInvalidCredentials
	}

	pair, err := s.tokens.issue(ctx, user)
	if err != nil {
		return nil, nil, err
	}
	return user.Identity(), pair, nil
}

func (s *Service) Logout(ctx context.Context, userID int64) error {
	return s.tokens.RevokeRefreshToken(ctx, userID)
}

func (s *Service) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	return s.tokens.RotateRefreshToken(ctx, refreshToken)
}

func (s *Service) ChangePassword(ctx context.Context, userID int64, req ChangePasswordRequest) error {
	if strings.TrimSpace(req.NewPassword) == "" {
		return ErrFieldsRequired
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return ErrUpdateFailed.Because(err)
	}

	if !user.IsPasswordCorrect(req.OldPassword) {
		return ErrInvalidOldPassword
	}
	if err := user.SetPassword(req.NewPassword); err != nil {
		return ErrUpdateFailed.Because(fmt.Errorf("hash password: %w", err))
	}

	if _, err := s.users.Update(ctx, userID, repository.UserPatch{PasswordHash: &user.PasswordHash}); err != nil {
		return s.updateError(err)
	}
	return nil
}

func (s *Service) UpdateAccount(ctx context.Context, userID int64, req UpdateAccountRequest) (*domain.User, error) {
	if req.FullName == "" || req.Email == "" {
		return nil, ErrFieldsRequired
	}

	user, err := s.users.Update(ctx, userID, repository.UserPatch{
		FullName: &req.FullName,
		Email:    &req.Email,
	})
	if err != nil {
		return nil, s.updateError(err)
	}
	return user, nil
}

func (s *Service) UpdateAvatar(ctx context.Context, userID int64, file *multipart.FileHeader) (*domain.User, error) {
	if file == nil {
		return nil, ErrAvatarRequired
	}
	asset, err := s.upload(ctx, file, ErrAvatarUpload)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, userID, repository.UserPatch{Avatar: &asset.URL})
	if err != nil {
		return nil, s.updateError(err)
	}
	return user, nil
}

func (s *Service) UpdateCoverImage(ctx context.Context, userID int64, file *multipart.FileHeader) (*domain.User, error) {
	if file == nil {
		return nil, ErrCoverImageRequired
	}
	asset, err := s.upload(ctx, file, ErrCoverImageUpload)
	if err != nil {
		return nil, err
	}

	user, err := s.users.Update(ctx, userID, repository.UserPatch{CoverImage: &asset.URL})
	if err != nil {
		return nil, s.updateError(err)
	}
	return user, nil
}

// upload stores file. Files the uploader refuses are a BadRequest; any other
// failure is reported as failed.
func (s *Service) upload(ctx context.Context, file *multipart.FileHeader, failed *apperr.Error) (*media.Asset, error) {
	asset, err := s.uploader.Upload(ctx, file)
	if err != nil {
		if media.IsRejected(err) {
			return nil, apperr.Wrap(apperr.KindBadRequest, err.Error(), err).WithCode("INVALID_FILE")
		}
		return nil, failed.Because(err)
	}
	return asset, nil
}

func (s *Service) updateError(err error) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrUserNotFound
	case errors.Is(err, repository.ErrDuplicate):
		return ErrEmailTaken
	default:
		return ErrUpdateFailed.Because(err)
	}
}
