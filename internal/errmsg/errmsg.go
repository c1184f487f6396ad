// Package errmsg converts arbitrary failure values into one of a fixed set of
// user-safe messages. Nothing raw from the remote store reaches presentation
// without passing through here, so credentials and internal diagnostics can
// never leak into a response body.
package errmsg

import (
	"errors"
	"strings"

	"ipschool.org/internal/backend"
)

// Kind is the coarse failure category surfaced alongside the message.
type Kind string

const (
	// KindInvalid means the session or credentials were rejected; any held
	// token must be discarded.
	KindInvalid Kind = "invalid"
	// KindBackendUnavailable means the remote store was reachable but
	// erroring; the token is retained and the call may be retried.
	KindBackendUnavailable Kind = "backend-unavailable"
	// KindNetwork means the remote store was unreachable; the token is
	// retained and the call may be retried.
	KindNetwork Kind = "network"
)

// The fixed user-facing vocabulary.
const (
	MsgInvalidCredentials = "Invalid username or password. Please try again."
	MsgSessionExpired     = "Your session has expired. Please log in again."
	MsgNoPermission       = "You do not have permission to perform this action."
	MsgAuthFailed         = "Authentication failed. Please try again."
	MsgBackendUnavailable = "Backend service is not available. Please try again in a moment."
	MsgNetwork            = "Network error. Please check your connection and try again."
	MsgFeatureUnavailable = "This feature is not available. Please contact support."
	MsgUnexpected         = "An unexpected error occurred. Please try again."
)

// maxPassthroughLen bounds how much unclassified text may reach the UI.
const maxPassthroughLen = 200

// internalMarkers flag diagnostics that must never be shown verbatim.
var internalMarkers = []string{"trap", "reject", "panic"}

type rule struct {
	keywords []string
	message  string
	kind     Kind
}

// Matching precedence: first rule wins. Credential rejections outrank session
// errors so a failed login is never misreported as an expired session.
var rules = []rule{
	{[]string{"invalid username", "invalid password", "invalid credentials"}, MsgInvalidCredentials, KindInvalid},
	{[]string{"session", "expired", "invalid token"}, MsgSessionExpired, KindInvalid},
	{[]string{"unauthorized", "not authorized"}, MsgNoPermission, KindInvalid},
	{[]string{"authentication", "login failed"}, MsgAuthFailed, KindInvalid},
	{[]string{"backend", "service", "unavailable"}, MsgBackendUnavailable, KindBackendUnavailable},
	{[]string{"network", "connection", "dial", "timeout"}, MsgNetwork, KindNetwork},
	{[]string{"method", "function", "not found"}, MsgFeatureUnavailable, KindInvalid},
}

// Message converts any failure value into a user-safe string. Accepts error
// values, plain strings, and anything else (which maps to the generic
// fallback).
func Message(v any) string {
	// For tagged backend failures, classify the remote error body alone; the
	// client's own prefix ("backend: kind (status):") is not display text.
	be := asBackendError(v)

	text, ok := failureText(v)
	if be != nil {
		text, ok = be.Message, be.Message != ""
	}
	if !ok {
		return "An unexpected error occurred"
	}

	if msg, matched := classify(text); matched {
		return msg
	}

	// Tagged backend failures fall back to their kind's default wording when
	// the body text matched nothing.
	if be != nil {
		switch be.Kind {
		case backend.KindUnauthorized, backend.KindForbidden:
			return MsgNoPermission
		case backend.KindUnavailable:
			return MsgBackendUnavailable
		case backend.KindNetwork:
			return MsgNetwork
		case backend.KindNotFound:
			return MsgFeatureUnavailable
		}
	}

	if passthroughOK(text) {
		return text
	}
	return MsgUnexpected
}

// KindOf maps a failure to its retention policy category. Classification is
// best-effort and fails safe toward KindInvalid: when in doubt, discard the
// stale token rather than keep acting on it.
func KindOf(v any) Kind {
	// Tagged backend failures are authoritative where we control the
	// boundary; the substring heuristic only covers lossy text.
	if be := asBackendError(v); be != nil {
		switch be.Kind {
		case backend.KindNetwork:
			return KindNetwork
		case backend.KindUnavailable:
			return KindBackendUnavailable
		default:
			return KindInvalid
		}
	}

	text, ok := failureText(v)
	if !ok {
		return KindInvalid
	}
	lowered := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.kind
			}
		}
	}
	return KindInvalid
}

func classify(text string) (string, bool) {
	lowered := strings.ToLower(text)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(lowered, kw) {
				return r.message, true
			}
		}
	}
	return "", false
}

func passthroughOK(text string) bool {
	if text == "" || len(text) >= maxPassthroughLen {
		return false
	}
	lowered := strings.ToLower(text)
	for _, marker := range internalMarkers {
		if strings.Contains(lowered, marker) {
			return false
		}
	}
	return true
}

func failureText(v any) (string, bool) {
	switch t := v.(type) {
	case nil:
		return "", false
	case error:
		return t.Error(), true
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	default:
		return "", false
	}
}

func asBackendError(v any) *backend.Error {
	err, ok := v.(error)
	if !ok {
		return nil
	}
	var be *backend.Error
	if errors.As(err, &be) {
		return be
	}
	return nil
}
