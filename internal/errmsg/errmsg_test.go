package errmsg

import (
	"errors"
	"strings"
	"testing"

	"ipschool.org/internal/backend"
)

func TestMessageClassification(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  string
	}{
		{"invalid credentials", errors.New("Invalid credentials"), MsgInvalidCredentials},
		{"invalid username", errors.New("login rejected: invalid username"), MsgInvalidCredentials},
		{"expired session", errors.New("session has expired"), MsgSessionExpired},
		{"invalid token", errors.New("invalid token presented"), MsgSessionExpired},
		{"unauthorized", errors.New("caller is unauthorized"), MsgNoPermission},
		{"auth failed", errors.New("authentication error"), MsgAuthFailed},
		{"backend down", errors.New("backend not responding"), MsgBackendUnavailable},
		{"service down", errors.New("service unavailable"), MsgBackendUnavailable},
		{"network", errors.New("network unreachable"), MsgNetwork},
		{"dial", errors.New(`dial tcp 10.0.0.1:443: connect: connection refused`), MsgNetwork},
		{"method missing", errors.New("method does not exist"), MsgFeatureUnavailable},
		{"string input", "Invalid credentials", MsgInvalidCredentials},
		{"passthrough", errors.New("Something broke"), "Something broke"},
		{"passthrough string", "Something broke", "Something broke"},
		{"long unclassified", errors.New(strings.Repeat("x", 500)), MsgUnexpected},
		{"trap marker", errors.New("ic0.trap: canister_inspect_message explicitly refused"), MsgUnexpected},
		{"reject marker", errors.New("call rejected by replica"), MsgUnexpected},
		{"nil", nil, "An unexpected error occurred"},
		{"unknown type", 42, "An unexpected error occurred"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Message(tc.input); got != tc.want {
				t.Fatalf("Message(%v) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestMessagePrecedence(t *testing.T) {
	// Credential rejection outranks the session keyword.
	err := errors.New("invalid credentials for session")
	if got := Message(err); got != MsgInvalidCredentials {
		t.Fatalf("precedence violated: %q", got)
	}
}

func TestMessageBackendErrorUsesBodyText(t *testing.T) {
	be := &backend.Error{Kind: backend.KindUnauthorized, Status: 401, Message: "invalid credentials"}
	if got := Message(be); got != MsgInvalidCredentials {
		t.Fatalf("body text should classify first: %q", got)
	}

	// Unmatched body falls back to the kind default, not passthrough.
	be = &backend.Error{Kind: backend.KindUnavailable, Status: 503, Message: "Service Unavailable"}
	if got := Message(be); got != MsgBackendUnavailable {
		t.Fatalf("unexpected message: %q", got)
	}
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name  string
		input any
		want  Kind
	}{
		{"network text", errors.New("network blip"), KindNetwork},
		{"backend text", errors.New("backend is down"), KindBackendUnavailable},
		{"invalid token text", errors.New("invalid token"), KindInvalid},
		{"ambiguous fails safe", errors.New("???"), KindInvalid},
		{"nil fails safe", nil, KindInvalid},
		{"tagged network", &backend.Error{Kind: backend.KindNetwork, Message: "dial tcp: refused"}, KindNetwork},
		{"tagged unavailable", &backend.Error{Kind: backend.KindUnavailable, Status: 503}, KindBackendUnavailable},
		{"tagged unauthorized", &backend.Error{Kind: backend.KindUnauthorized, Status: 401}, KindInvalid},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := KindOf(tc.input); got != tc.want {
				t.Fatalf("KindOf(%v) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}

func TestWrappedBackendErrorStillTagged(t *testing.T) {
	wrapped := errorsJoin("refresh content: ", &backend.Error{Kind: backend.KindNetwork, Message: "dial tcp: refused"})
	if got := KindOf(wrapped); got != KindNetwork {
		t.Fatalf("wrapping lost the tag: %q", got)
	}
}

func errorsJoin(prefix string, err error) error {
	return &wrapErr{prefix: prefix, err: err}
}

type wrapErr struct {
	prefix string
	err    error
}

func (w *wrapErr) Error() string { return w.prefix + w.err.Error() }
func (w *wrapErr) Unwrap() error { return w.err }
