package errs

import "fmt"

type ErrorMessage struct {
	Message string
}

func (e *ErrorMessage) Error() string { return e.Message }

// ValidationError blocks an operation before any backend request is issued.
type ValidationError struct {
	ErrorMessage
}

// NotFoundError is returned when a referenced resource does not exist.
type NotFoundError struct {
	ErrorMessage
}

// RequestError is a non-2xx backend response or a transport failure. The
// prior client state is retained; the operation is abandoned.
type RequestError struct {
	ErrorMessage
	Status int
}

// SessionExpiredError means a silent refresh was attempted and also failed;
// the stored token pair has been cleared.
type SessionExpiredError struct {
	ErrorMessage
}

func NewValidationError(message string) *ValidationError {
	return &ValidationError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewNotFoundError(message string) *NotFoundError {
	return &NotFoundError{
		ErrorMessage: ErrorMessage{Message: message},
	}
}

func NewRequestError(status int, message string) *RequestError {
	if message == "" {
		message = fmt.Sprintf("backend request failed with status %d", status)
	}
	return &RequestError{
		ErrorMessage: ErrorMessage{Message: message},
		Status:       status,
	}
}

func NewSessionExpiredError() *SessionExpiredError {
	return &SessionExpiredError{
		ErrorMessage: ErrorMessage{Message: "session expired"},
	}
}
