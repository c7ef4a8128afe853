package common

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"google.golang.org/api/googleapi"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// AppError represents application-specific errors
type AppError struct {
	Code    string
	Message string
	Cause   error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Error codes surfaced to callers.
const (
	CodeUnavailable  = "EXTRACTION_UNAVAILABLE"
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnsupported  = "UNSUPPORTED_TYPE"
	CodeConfig       = "CONFIG_ERROR"
)

// Common application errors
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrCollaborator    = errors.New("collaborator failure")
	ErrCacheCorrupt    = errors.New("cache entry corrupt")
	ErrUnsupportedType = errors.New("unsupported media type")
)

// Error constructors
func NewAppError(code, message string, cause error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Unavailable marks a failed collaborator call. The result is matched by
// errors.Is against both ErrCollaborator and the original cause.
func Unavailable(op string, cause error) *AppError {
	return NewAppError(CodeUnavailable, op+": extraction unavailable", errors.Join(ErrCollaborator, cause))
}

// Unsupported reports a MIME type the analysis cannot handle.
func Unsupported(mimeType string) *AppError {
	return NewAppError(CodeUnsupported, fmt.Sprintf("mime type %q", mimeType), ErrUnsupportedType)
}

// IsTransient reports whether a collaborator error is worth retrying.
// Google REST clients surface *googleapi.Error, gRPC clients a status.
func IsTransient(err error) bool {
	if err == nil || errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		return gerr.Code == http.StatusTooManyRequests || gerr.Code >= 500
	}
	if st, ok := status.FromError(err); ok {
		switch st.Code() {
		case codes.Unavailable, codes.ResourceExhausted, codes.DeadlineExceeded, codes.Aborted:
			return true
		}
	}
	return false
}

// HTTPStatus maps an error to the status code returned by the HTTP transport.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnsupportedType):
		return http.StatusUnsupportedMediaType
	case errors.Is(err, ErrCollaborator):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
