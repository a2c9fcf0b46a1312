package apperrors

import (
	"errors"
	"net/http"
)

type AppError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Status  int       `json:"-"`
	Err     error     `json:"-"`
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code ErrorCode, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status}
}

func Wrap(err error, code ErrorCode, message string, status int) *AppError {
	return &AppError{Code: code, Message: message, Status: status, Err: err}
}

// As pulls an *AppError out of an error chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func ErrUnauthenticated(message string) *AppError {
	return New(CodeUnauthenticated, message, http.StatusUnauthorized)
}

func ErrNotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func ErrPlanNotFound(message string) *AppError {
	return New(CodePlanNotFound, message, http.StatusNotFound)
}

func ErrInvalidRequest(message string) *AppError {
	return New(CodeInvalidRequest, message, http.StatusBadRequest)
}

func ErrGatewayMisconfigured(message string) *AppError {
	return New(CodeGatewayMisconfigured, message, http.StatusBadGateway)
}

func ErrGatewayRejected(err error, message string) *AppError {
	return Wrap(err, CodeGatewayRejected, message, http.StatusBadGateway)
}

func ErrGatewayUnreachable(err error, message string) *AppError {
	return Wrap(err, CodeGatewayUnreachable, message, http.StatusBadGateway)
}

func ErrNotDeployed(message string) *AppError {
	return New(CodeNotDeployed, message, http.StatusBadGateway)
}

func ErrStoreUnavailable(err error) *AppError {
	return Wrap(err, CodeStoreUnavailable, "Storage backend is unavailable", http.StatusServiceUnavailable)
}
