package session

import (
	"errors"
	"net/http"
	"strings"
)

// Kind classifies backend failures once, at the client boundary, so every
// caller reacts to the same condition the same way.
type Kind string

const (
	// KindAuthExpired covers expired, revoked or otherwise invalid
	// credentials. The only kind that justifies clearing local state.
	KindAuthExpired Kind = "auth_expired"
	KindNetwork     Kind = "network"
	KindValidation  Kind = "validation"
	KindConflict    Kind = "conflict"
	KindForbidden   Kind = "forbidden"
	KindUnknown     Kind = "unknown"
)

// Error is the typed failure returned by every Client and Manager call.
type Error struct {
	Kind    Kind
	Message string
	Status  int
	Cause   error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error { return e.Cause }

// IsKind reports whether err is a session Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var se *Error
	return errors.As(err, &se) && se.Kind == kind
}

// Substrings seen in credential failures from the auth service. Matched
// case-insensitively.
var authExpirySubstrings = []string{
	"expired",
	"Invalid",
	"refresh_token_not_found",
	"JWT",
	"token",
}

// classify converts a transport failure or an HTTP error response into a
// typed Error.
func classify(status int, message string, cause error) *Error {
	e := &Error{Message: message, Status: status, Cause: cause}

	switch {
	case status == 0:
		e.Kind = KindNetwork
	case status == http.StatusUnauthorized:
		e.Kind = KindAuthExpired
	case status == http.StatusForbidden:
		e.Kind = KindForbidden
	case status == http.StatusConflict:
		e.Kind = KindConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		e.Kind = KindValidation
	default:
		e.Kind = KindUnknown
	}

	if e.Kind == KindUnknown {
		lower := strings.ToLower(message)
		for _, s := range authExpirySubstrings {
			if strings.Contains(lower, strings.ToLower(s)) {
				e.Kind = KindAuthExpired
				break
			}
		}
	}

	return e
}
