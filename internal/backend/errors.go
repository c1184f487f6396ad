package backend

import "fmt"

// ErrKind tags a remote-call failure with a coarse category so callers can
// decide policy (discard vs retain a session token, retry vs re-login)
// without sniffing message text.
type ErrKind string

const (
	KindBadRequest   ErrKind = "bad_request"
	KindUnauthorized ErrKind = "unauthorized"
	KindForbidden    ErrKind = "forbidden"
	KindNotFound     ErrKind = "not_found"
	KindUnavailable  ErrKind = "unavailable"
	KindNetwork      ErrKind = "network"
	KindInternal     ErrKind = "internal"
)

// Error is the tagged failure returned by every Client call. Message carries
// the remote store's error body when one was provided; it is still treated as
// untrusted display text and sanitized at the presentation boundary.
type Error struct {
	Kind    ErrKind
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("backend: %s (%d): %s", e.Kind, e.Status, e.Message)
	}
	return fmt.Sprintf("backend: %s: %s", e.Kind, e.Message)
}

// Transient reports whether the failure does not impeach the session token:
// the remote store was unreachable or erroring, not rejecting the caller.
func (e *Error) Transient() bool {
	return e.Kind == KindNetwork || e.Kind == KindUnavailable
}

func kindForStatus(status int) ErrKind {
	switch {
	case status == 400:
		return KindBadRequest
	case status == 401:
		return KindUnauthorized
	case status == 403:
		return KindForbidden
	case status == 404:
		return KindNotFound
	case status == 429 || status >= 500:
		return KindUnavailable
	default:
		return KindInternal
	}
}
