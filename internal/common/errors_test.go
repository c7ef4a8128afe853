package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestUnavailableMatchesSentinelAndCause(t *testing.T) {
	cause := errors.New("quota exceeded")
	err := Unavailable("ocr", cause)

	assert.ErrorIs(t, err, ErrCollaborator)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, CodeUnavailable, err.Code)
	assert.Equal(t, http.StatusServiceUnavailable, HTTPStatus(err))
}

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"canceled", context.Canceled, false},
		{"deadline", fmt.Errorf("attempt: %w", context.DeadlineExceeded), true},
		{"googleapi 429", &googleapi.Error{Code: http.StatusTooManyRequests}, true},
		{"googleapi 503", &googleapi.Error{Code: http.StatusServiceUnavailable}, true},
		{"googleapi 400", &googleapi.Error{Code: http.StatusBadRequest}, false},
		{"grpc unavailable", status.Error(codes.Unavailable, "down"), true},
		{"grpc exhausted", status.Error(codes.ResourceExhausted, "quota"), true},
		{"grpc invalid", status.Error(codes.InvalidArgument, "bad"), false},
		{"plain", errors.New("boom"), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusOK, HTTPStatus(nil))
	assert.Equal(t, http.StatusUnsupportedMediaType, HTTPStatus(Unsupported("text/html")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(NewAppError(CodeInvalidInput, "x", ErrInvalidInput)))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("boom")))
}

func TestValidator(t *testing.T) {
	v := NewValidator().
		Field("name", "", Required).
		Field("kind", "receipt", OneOf("claim", "invoice"))

	err := ValidateAndReturnError(v)
	assert.ErrorIs(t, err, ErrInvalidInput)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'name'")
	assert.Contains(t, err.Error(), "must be one of claim, invoice")

	ok := NewValidator().Field("data", []byte("x"), Required)
	assert.NoError(t, ValidateAndReturnError(ok))
}
