package errors

import (
	goerrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAuthError(t *testing.T) {
	cause := goerrors.New("bad credentials")
	err := &AuthError{Op: OpLogin, StatusCode: http.StatusForbidden, Err: cause}

	assert.Equal(t, "openclass auth login failed: status 403 Forbidden: bad credentials", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsAuthError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsRequestError(err))
}

func TestAuthError_NoStatus(t *testing.T) {
	err := &AuthError{Op: OpRefresh}
	assert.Equal(t, "openclass auth refresh failed", err.Error())
}

func TestRequestError(t *testing.T) {
	cause := goerrors.New("unexpected end of JSON input")
	err := &RequestError{Method: http.MethodGet, URL: "https://api.example.com/v1", StatusCode: 200, Body: "{", Err: cause}

	assert.Equal(t, "openclass request GET https://api.example.com/v1 failed: status 200: unexpected end of JSON input", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.True(t, IsRequestError(fmt.Errorf("wrapped: %w", err)))
	assert.False(t, IsAuthError(err))
}
