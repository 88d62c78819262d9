package errors

import (
	"errors"
	"fmt"
)

type Status string

// An operation was invoked before the chain connection signaled readiness
const AdapterNotReady Status = "AdapterNotReady"

// The token is not in the chain's catalog, or cannot be sent to the destination's topology
const TokenNotFound Status = "TokenNotFound"

// No route is configured for the (source, destination, token) triple
const RouteNotFound Status = "RouteNotFound"

// The address codec rejected an address
const InvalidAddress Status = "InvalidAddress"

// Two route entries share the same (source, destination, token) key
const DuplicateRoute Status = "DuplicateRoute"

// No adapter is registered for the chain
const AdapterNotFound Status = "AdapterNotFound"

// No outcome for this error known
const UnknownError Status = "UnknownError"

type Error struct {
	Status  Status
	Message string
}

var _ error = &Error{}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Status, e.Message)
}

// Is matches any *Error with the same status, so sentinels below work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Status == e.Status
}

var (
	ErrAdapterNotReady = &Error{Status: AdapterNotReady}
	ErrTokenNotFound   = &Error{Status: TokenNotFound}
	ErrRouteNotFound   = &Error{Status: RouteNotFound}
	ErrInvalidAddress  = &Error{Status: InvalidAddress}
	ErrDuplicateRoute  = &Error{Status: DuplicateRoute}
	ErrAdapterNotFound = &Error{Status: AdapterNotFound}
)

// StatusOf returns the status of the first *Error in the chain, or UnknownError.
func StatusOf(err error) Status {
	var e *Error
	if errors.As(err, &e) {
		return e.Status
	}
	return UnknownError
}

func Errorf(status Status, format string, args ...interface{}) error {
	return &Error{
		Status:  status,
		Message: fmt.Sprintf(format, args...),
	}
}

func AdapterNotReadyf(format string, args ...interface{}) error {
	return &Error{
		Status:  AdapterNotReady,
		Message: fmt.Sprintf(format, args...),
	}
}

func TokenNotFoundf(format string, args ...interface{}) error {
	return &Error{
		Status:  TokenNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

func RouteNotFoundf(format string, args ...interface{}) error {
	return &Error{
		Status:  RouteNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

// The codec's message is kept as is.
func InvalidAddressf(format string, args ...interface{}) error {
	return &Error{
		Status:  InvalidAddress,
		Message: fmt.Sprintf(format, args...),
	}
}

func DuplicateRoutef(format string, args ...interface{}) error {
	return &Error{
		Status:  DuplicateRoute,
		Message: fmt.Sprintf(format, args...),
	}
}

func AdapterNotFoundf(format string, args ...interface{}) error {
	return &Error{
		Status:  AdapterNotFound,
		Message: fmt.Sprintf(format, args...),
	}
}

func Unknownf(format string, args ...interface{}) error {
	return &Error{
		Status:  UnknownError,
		Message: fmt.Sprintf(format, args...),
	}
}
