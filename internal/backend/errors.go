package backend

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrUnavailable wraps transport failures: refused connections, timeouts and
// unreadable responses.
var ErrUnavailable = errors.New("backend unavailable")

// Error is a non-2xx answer from the backend.
type Error struct {
	Operation string
	Status    int
	Message   string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend %s: status %d", e.Operation, e.Status)
	}
	return fmt.Sprintf("backend %s: status %d: %s", e.Operation, e.Status, e.Message)
}

// UserMessage is the backend-provided message, possibly empty.
func (e *Error) UserMessage() string {
	return e.Message
}

// Unauthorized reports whether the backend rejected the credential.
func (e *Error) Unauthorized() bool {
	return e.Status == http.StatusUnauthorized || e.Status == http.StatusForbidden
}

// MessageOf picks the text shown to the user: the backend message when there is
// one, fallback otherwise.
func MessageOf(err error, fallback string) string {
	if err == nil {
		return ""
	}

	var messager interface{ UserMessage() string }
	if errors.As(err, &messager) {
		if message := messager.UserMessage(); message != "" {
			return message
		}
	}
	return fallback
}

// StatusOf returns the backend status carried by err, or 0.
func StatusOf(err error) int {
	var backendErr *Error
	if errors.As(err, &backendErr) {
		return backendErr.Status
	}
	return 0
}

// IsUnauthorized reports whether err is a credential rejection.
func IsUnauthorized(err error) bool {
	var backendErr *Error
	return errors.As(err, &backendErr) && backendErr.Unauthorized()
}
