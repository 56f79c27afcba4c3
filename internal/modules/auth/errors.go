package auth

import "vidtube/internal/pkg/apperr"

var (
	ErrFieldsRequired      = apperr.BadRequest("all fields are required").WithCode("FIELDS_REQUIRED")
	ErrInvalidInput        = apperr.BadRequest("invalid input").WithCode("VALIDATION_ERROR")
	ErrInvalidBody         = apperr.BadRequest("invalid request body").WithCode("INVALID_BODY")
	ErrIdentifierRequired  = apperr.BadRequest("username or email is required").WithCode("IDENTIFIER_REQUIRED")
	ErrUserExists          = apperr.Conflict("user with email or username already exists").WithCode("USER_EXISTS")
	ErrEmailTaken          = apperr.Conflict("email is already in use").WithCode("EMAIL_TAKEN")
	ErrUserNotFound        = apperr.NotFound("user does not exist").WithCode("USER_NOT_FOUND")
	ErrInvalidCredentials  = apperr.Unauthorized("invalid user credentials").WithCode("INVALID_CREDENTIALS")
	ErrInvalidOldPassword  = apperr.BadRequest("invalid old password").WithCode("INVALID_OLD_PASSWORD")
	ErrAvatarRequired      = apperr.BadRequest("avatar file is missing").WithCode("AVATAR_REQUIRED")
	ErrCoverImageRequired  = apperr.BadRequest("cover image file is missing").WithCode("COVER_IMAGE_REQUIRED")
	ErrAvatarUpload        = apperr.Internal("error uploading avatar", nil).WithCode("AVATAR_UPLOAD_FAILED")
	ErrCoverImageUpload    = apperr.Internal("error uploading cover image", nil).WithCode("COVER_IMAGE_UPLOAD_FAILED")
	ErrRegistrationFailed  = apperr.Internal("something went wrong while registering the user", nil).WithCode("REGISTRATION_FAILED")
	ErrUpdateFailed        = apperr.Internal("something went wrong while updating the user", nil).WithCode("UPDATE_FAILED")
	ErrRefreshTokenMissing = apperr.Unauthorized("refresh token is missing").WithCode("REFRESH_TOKEN_MISSING")
	ErrInvalidRefreshToken = apperr.Unauthorized("invalid refresh token").WithCode("INVALID_REFRESH_TOKEN")
	ErrTokenGeneration     = apperr.Internal("something went wrong while generating tokens", nil).WithCode("TOKEN_GENERATION_FAILED")
	ErrRefreshFailed       = apperr.Internal("something went wrong while refreshing tokens", nil).WithCode("REFRESH_FAILED")
	ErrLogoutFailed        = apperr.Internal("something went wrong while logging out", nil).WithCode("LOGOUT_FAILED")
)
