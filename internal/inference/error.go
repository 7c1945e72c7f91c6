package inference

import (
	"errors"
	"fmt"
)

// ErrorCause classifies a ServiceError by its origin so the UI can show a
// useful message.
type ErrorCause string

const (
	CauseAuth               ErrorCause = "auth"
	CauseNetwork            ErrorCause = "network"
	CauseTimeout            ErrorCause = "timeout"
	CauseRateLimited        ErrorCause = "rate_limited"
	CauseServer             ErrorCause = "server"
	CauseMalformedResponse  ErrorCause = "malformed_response"
	CauseIncompleteResponse ErrorCause = "incomplete_response"
	CauseUnknown            ErrorCause = "unknown"
)

// ServiceError carries both a technical message for logs and a classified
// cause that maps to a user-facing message.
type ServiceError struct {
	Cause   ErrorCause
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Cause, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Cause, e.Message)
}

func (e *ServiceError) Unwrap() error {
	return e.Err
}

// UserMessage returns the human-readable message for the error's cause.
func (e *ServiceError) UserMessage() string {
	switch e.Cause {
	case CauseAuth:
		return "The connection to the AI service failed due to an authentication error. Please ensure the API key is configured correctly."
	case CauseNetwork:
		return "A network error occurred. Please check your internet connection and try again."
	case CauseTimeout:
		return "The request to the AI service timed out. Please try again."
	case CauseRateLimited:
		return "The AI service is currently busy or rate limits have been exceeded. Please try again in a few moments."
	case CauseServer:
		return "The AI service encountered an internal error. Please try again later."
	case CauseMalformedResponse:
		return "The AI returned a response in an unexpected format. This may be a temporary issue. Please try your reading again."
	case CauseIncompleteResponse:
		return "The AI returned an incomplete response. Please try your reading again."
	}
	return "An unexpected error occurred while communicating with the AI service. Please try again later."
}

// NewServiceError builds a ServiceError wrapping err.
func NewServiceError(cause ErrorCause, message string, err error) *ServiceError {
	return &ServiceError{Cause: cause, Message: message, Err: err}
}

// UserMessageFor extracts the user-facing message from any error, falling back
// to the generic message for errors that are not ServiceErrors.
func UserMessageFor(err error) string {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr.UserMessage()
	}
	return (&ServiceError{Cause: CauseUnknown}).UserMessage()
}
