package v1

import (
	"errors"
	"net/http"

	"github.com/estateops/backend/internal/models"
	"github.com/estateops/backend/internal/report"
)

type httpError struct {
	Error string `json:"error" example:"the specified resource ID is not a valid UUID"`
}

// status returns the appropriate HTTP status for an error
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, errLoginFailed) || errors.Is(err, errTokenInvalid) {
		return http.StatusUnauthorized
	}

	if errors.Is(err, errNotAllowed) {
		return http.StatusForbidden
	}

	// AllocationMismatchError carries both totals in its message so
	// clients can present the difference
	var mismatch report.AllocationMismatchError
	if errors.As(err, &mismatch) {
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}

// Auth errors
var (
	errLoginFailed  = errors.New("the email or password is incorrect")
	errTokenInvalid = errors.New("the authentication token is missing, invalid or expired")
	errNotAllowed   = errors.New("you are not allowed to perform this action")
	errNoProperty   = errors.New("your account is not linked to a property")
)

// Report errors
var (
	errMonthOutOfRange   = errors.New("the month must be between 1 and 12")
	errMonthInvalid      = errors.New("the month must be formatted as YYYY-MM")
	errYearOutOfRange    = errors.New("the year must be a positive number")
	errPropertyParameter = errors.New("the property parameter must be set")
)
