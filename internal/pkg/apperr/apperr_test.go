package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindStatus(t *testing.T) {
	cases := map[Kind]int{
		KindBadRequest:   http.StatusBadRequest,
		KindUnauthorized: http.StatusUnauthorized,
		KindNotFound:     http.StatusNotFound,
		KindConflict:     http.StatusConflict,
		KindInternal:     http.StatusInternalServerError,
	}
	for kind, status := range cases {
		assert.Equal(t, status, kind.Status(), kind.String())
	}
}

func TestKindOf_SurvivesWrapping(t *testing.T) {
	err := fmt.Errorf("handler: %w", Unauthorized("invalid refresh token"))

	assert.Equal(t, KindUnauthorized, KindOf(err))
	assert.True(t, Is(err, KindUnauthorized))
	assert.False(t, Is(err, KindInternal))
}

func TestKindOf_UnknownIsInternal(t *testing.T) {
	err := errors.New("disk on fire")

	assert.Equal(t, KindInternal, KindOf(err))
	assert.ErrorIs(t, As(err), err)
}

func TestWrap_KeepsCause(t *testing.T) {
	cause := errors.New("token is expired")
	err := Wrap(KindUnauthorized, "invalid access token", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "UNAUTHORIZED: invalid access token: token is expired", err.Error())
}

func TestWithCode(t *testing.T) {
	base := Unauthorized("refresh token is missing")
	coded := base.WithCode("REFRESH_TOKEN_MISSING")

	assert.Equal(t, "UNAUTHORIZED", base.Code)
	assert.Equal(t, "REFRESH_TOKEN_MISSING", coded.Code)
	assert.Equal(t, KindUnauthorized, coded.Kind)
}

func TestIs_MatchesSentinelCopies(t *testing.T) {
	sentinel := Unauthorized("invalid refresh token").WithCode("INVALID_REFRESH_TOKEN")
	err := fmt.Errorf("rotate: %w", sentinel.Because(errors.New("signature is invalid")))

	assert.ErrorIs(t, err, sentinel)
	assert.NotErrorIs(t, err, Unauthorized("invalid refresh token"))
	assert.NotErrorIs(t, err, Internal("x", nil).WithCode("INVALID_REFRESH_TOKEN"))
}

func TestWithDetails(t *testing.T) {
	err := BadRequest("all fields are required").WithDetails(map[string]string{"email": "required"})

	assert.Equal(t, map[string]string{"email": "required"}, err.Details)
	assert.ErrorIs(t, err, BadRequest("all fields are required"))
}
