package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrWorkerPanic = fmt.Errorf("worker panic")

	// Authentication / account errors.
	ErrUserAlreadyExists  = fmt.Errorf("user already exists")
	ErrInvalidCredentials = fmt.Errorf("invalid credentials")
	ErrInvalidEmail       = fmt.Errorf("invalid email address")
	ErrInvalidPassword    = fmt.Errorf("password does not meet complexity requirements")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")

	// Draw lifecycle errors.
	ErrDrawNotFound             = fmt.Errorf("draw not found")
	ErrDrawAlreadyCompleted     = fmt.Errorf("draw already completed")
	ErrDrawCancelled            = fmt.Errorf("draw cancelled")
	ErrInsufficientParticipants = fmt.Errorf("draw requires at least 3 participants")
	ErrParticipantNotFound      = fmt.Errorf("participant not found")
	ErrAlreadyJoined            = fmt.Errorf("participant already joined the draw")
	ErrInviteCodeNotFound       = fmt.Errorf("invite code not found")
	ErrInviteCodeExhausted      = fmt.Errorf("could not generate a unique invite code")
	ErrResultNotFound           = fmt.Errorf("no result recorded for participant")
)

// Is reports whether any error in err's chain matches target.
// Re-exported so callers importing this package do not also need the
// standard errors package.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target.
func As(err error, target any) bool { return errors.As(err, target) }

// MapToHTTPStatus converts a service-layer error into the HTTP status code
// returned by the REST API. Unknown errors map to 500 so internal details
// never leak into a 4xx the client might retry differently.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrUserAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrInvalidEmail),
		errors.Is(err, ErrInvalidPassword):
		return http.StatusBadRequest
	case errors.Is(err, ErrDrawNotFound),
		errors.Is(err, ErrParticipantNotFound),
		errors.Is(err, ErrInviteCodeNotFound),
		errors.Is(err, ErrResultNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrDrawAlreadyCompleted),
		errors.Is(err, ErrDrawCancelled),
		errors.Is(err, ErrAlreadyJoined):
		return http.StatusConflict
	case errors.Is(err, ErrInsufficientParticipants):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
