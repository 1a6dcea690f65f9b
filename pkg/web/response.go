// Package web defines common components for a web application.
package web

import "github.com/go-playground/validator/v10"

// Application level status codes used in the response envelope.
const (
	StatusSuccess          = 0
	StatusBadRequest       = 102
	StatusWrongCredentials = 103
	StatusUnauthenticated  = 108
	StatusInternalError    = 500
)

// Response holds the common response envelope for all APIs.
//
// Data is always present in the encoded output and is null when
// there is no payload.
type Response struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
	Data    any    `json:"data"`
}

// Success wraps a payload into a success envelope.
func Success(message string, data any) Response {
	return Response{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	}
}

// Error returns a failure envelope with the given status code.
func Error(status int, message string) Response {
	return Response{
		Status:  status,
		Message: message,
	}
}

// Internal returns the generic internal error envelope.
// The original cause is logged, never exposed to the caller.
func Internal() Response {
	return Error(StatusInternalError, "Internal server error")
}

// GetErrorMsg builds a human readable message from the first
// binding validation error.
func GetErrorMsg(ve validator.ValidationErrors) string {
	field := ve[0]

	switch field.Tag() {
	case "required":
		return field.Field() + " is required"
	case "email":
		return "Parameter email is not a valid email address"
	case "min":
		return field.Field() + " must be at least " + field.Param() + " characters"
	case "gt":
		return field.Field() + " must be greater than " + field.Param()
	default:
		return field.Field() + " is invalid"
	}
}
