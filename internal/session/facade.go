package session

import "context"

// Auth is the narrow view of the session lifecycle that request handlers
// consume.
type Auth struct {
	store     *Store
	validator *Validator
}

func NewAuth(store *Store, validator *Validator) *Auth {
	return &Auth{store: store, validator: validator}
}

// IsAuthenticated reports whether the held token is currently confirmed by
// the authority.
func (a *Auth) IsAuthenticated() bool {
	return a.validator.IsValid()
}

// IsCheckingAuth reports whether a held token's fate is still undecided:
// the authority has not come up yet, or a validation round is in flight.
// With no token there is nothing to check and this is always false.
func (a *Auth) IsCheckingAuth() bool {
	if a.store.Token() == "" {
		return false
	}
	switch a.validator.State() {
	case StateAwaitingAuthority, StateValidating:
		return true
	}
	return false
}

// Token returns the raw session token, or "" when logged out.
func (a *Auth) Token() string { return a.store.Token() }

func (a *Auth) Login(ctx context.Context, username, password string) error {
	return a.validator.Login(ctx, username, password)
}

func (a *Auth) Logout(ctx context.Context) { a.validator.Logout(ctx) }

func (a *Auth) Retry(ctx context.Context) { a.validator.RetryValidation(ctx) }

// LastError returns the sanitized failure from the most recent validation
// round, or nil when the session is healthy or absent.
func (a *Auth) LastError() *ValidationError { return a.validator.ValidationError() }

// State exposes the underlying lifecycle state for status endpoints.
func (a *Auth) State() State { return a.validator.State() }
