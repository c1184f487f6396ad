package session

import (
	"context"
	"sync"
	"sync/atomic"

	"ipschool.org/internal/errmsg"
	"ipschool.org/internal/obs"
)

// Authority is the remote service that issues and validates admin session
// tokens.
type Authority interface {
	Ready(ctx context.Context) error
	AdminLogin(ctx context.Context, username, password string) (string, error)
	AdminLogout(ctx context.Context, token string) error
	ValidateAdminSession(ctx context.Context, token string) (bool, error)
}

// State is the validator's position in the session lifecycle.
type State int

const (
	// StateIdle: no token held, nothing to validate.
	StateIdle State = iota
	// StateAwaitingAuthority: token held, remote authority not ready yet.
	StateAwaitingAuthority
	// StateValidating: a validation call is in flight.
	StateValidating
	// StateValid: the authority confirmed the token.
	StateValid
	// StateInvalid: the authority rejected the token; it has been discarded.
	StateInvalid
	// StateDegraded: a transient failure; the token is retained for retry.
	StateDegraded
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingAuthority:
		return "awaiting-authority"
	case StateValidating:
		return "validating"
	case StateValid:
		return "valid"
	case StateInvalid:
		return "invalid"
	case StateDegraded:
		return "degraded"
	default:
		return "unknown"
	}
}

// ValidationError is the sanitized outcome of a failed token check or login.
type ValidationError struct {
	Kind    errmsg.Kind
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// Transient reports whether the failure permits retry without a fresh login.
func (e *ValidationError) Transient() bool {
	return e.Kind == errmsg.KindBackendUnavailable || e.Kind == errmsg.KindNetwork
}

// Validator keeps one derived judgment — is the held token currently good —
// in sync with the remote authority. Every asynchronous completion re-checks
// its inputs (generation counter and current token) before committing, so a
// slow superseded validation can never overwrite a newer result.
type Validator struct {
	store     *Store
	authority Authority

	// selfWrite suppresses the store subscription while the validator is
	// the one writing the token, to avoid re-validating its own writes.
	selfWrite atomic.Bool

	mu       sync.Mutex
	ready    bool
	state    State
	valid    bool
	vErr     *ValidationError
	gen      uint64
	inflight int

	unsubscribe func()
}

// NewValidator wires a validator to the store and authority and subscribes
// to token changes. The initial state reflects any restored token.
func NewValidator(store *Store, authority Authority) *Validator {
	v := &Validator{store: store, authority: authority}
	if store.Token() != "" {
		v.state = StateAwaitingAuthority
	}
	v.unsubscribe = store.Subscribe(func() {
		if v.selfWrite.Load() {
			return
		}
		gen := v.bumpGen()
		go v.revalidate(context.Background(), gen)
	})
	return v
}

// Close detaches the validator from the store.
func (v *Validator) Close() {
	if v.unsubscribe != nil {
		v.unsubscribe()
	}
}

// SetReady records the authority's availability. Becoming ready triggers a
// synchronous validation of any held token; becoming unready parks it in
// AwaitingAuthority without discarding it.
func (v *Validator) SetReady(ctx context.Context, ready bool) {
	v.mu.Lock()
	if v.ready == ready {
		v.mu.Unlock()
		return
	}
	v.ready = ready
	v.gen++
	gen := v.gen
	if !ready {
		if v.store.Token() != "" {
			v.state = StateAwaitingAuthority
		} else {
			v.state = StateIdle
		}
		v.valid = false
		v.mu.Unlock()
		return
	}
	v.mu.Unlock()
	v.revalidate(ctx, gen)
}

// Login authenticates against the remote authority. Success stores the token
// and is itself authoritative: the state moves straight to Valid with no
// follow-up validation round. On failure only a sanitized message is
// returned, never the submitted credentials.
func (v *Validator) Login(ctx context.Context, username, password string) error {
	v.mu.Lock()
	ready := v.ready
	v.mu.Unlock()
	if !ready {
		return &ValidationError{Kind: errmsg.KindBackendUnavailable, Message: errmsg.MsgBackendUnavailable}
	}

	token, err := v.authority.AdminLogin(ctx, username, password)
	if err != nil {
		return &ValidationError{Kind: errmsg.KindOf(err), Message: errmsg.Message(err)}
	}

	v.mu.Lock()
	v.gen++
	v.selfWrite.Store(true)
	v.store.SetToken(ctx, token)
	v.selfWrite.Store(false)
	v.state = StateValid
	v.valid = true
	v.vErr = nil
	v.mu.Unlock()
	obs.LogEvent("admin_login", nil)
	return nil
}

// Logout clears the local session unconditionally, then revokes the token
// remotely as a best effort. A failing revocation never leaves the client
// looking authenticated.
func (v *Validator) Logout(ctx context.Context) {
	v.mu.Lock()
	v.gen++
	token := v.store.Token()
	v.selfWrite.Store(true)
	v.store.SetToken(ctx, "")
	v.selfWrite.Store(false)
	v.state = StateIdle
	v.valid = false
	v.vErr = nil
	v.mu.Unlock()

	if token != "" {
		// Best-effort revocation; the local session is already gone.
		_ = v.authority.AdminLogout(ctx, token)
	}
	obs.LogEvent("admin_logout", nil)
}

// RetryValidation re-runs validation for the currently held token, used to
// recover from Degraded. It may be called any number of times.
func (v *Validator) RetryValidation(ctx context.Context) {
	v.revalidate(ctx, v.bumpGen())
}

// IsValid reports whether the authority currently vouches for the token.
func (v *Validator) IsValid() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.valid
}

// Ready reports the last observed authority availability.
func (v *Validator) Ready() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ready
}

// Validating reports whether a validation call is in flight.
func (v *Validator) Validating() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.inflight > 0
}

// State returns the current lifecycle state.
func (v *Validator) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	if v.inflight > 0 {
		return StateValidating
	}
	return v.state
}

// ValidationError returns the sanitized failure from the last validation
// round, or nil.
func (v *Validator) ValidationError() *ValidationError {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vErr
}

func (v *Validator) bumpGen() uint64 {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.gen++
	return v.gen
}

// revalidate runs one validation round for the inputs current at gen. Stale
// completions (generation moved on, or the token changed underneath the
// call) are discarded without touching shared state.
func (v *Validator) revalidate(ctx context.Context, gen uint64) {
	v.mu.Lock()
	if gen != v.gen {
		v.mu.Unlock()
		return
	}
	token := v.store.Token()
	if token == "" {
		v.state = StateIdle
		v.valid = false
		v.vErr = nil
		v.mu.Unlock()
		return
	}
	if !v.ready {
		v.state = StateAwaitingAuthority
		v.valid = false
		v.mu.Unlock()
		return
	}
	v.state = StateValidating
	v.inflight++
	v.mu.Unlock()

	ok, err := v.authority.ValidateAdminSession(ctx, token)

	v.mu.Lock()
	defer v.mu.Unlock()
	v.inflight--
	if gen != v.gen || v.store.Token() != token {
		// Superseded while in flight; the newer round owns the outcome.
		return
	}

	switch {
	case err != nil:
		kind := errmsg.KindOf(err)
		if kind == errmsg.KindInvalid {
			v.discardTokenLocked(ctx)
			v.state = StateInvalid
			v.vErr = &ValidationError{Kind: errmsg.KindInvalid, Message: errmsg.Message(err)}
			obs.ObserveSessionValidation("invalid")
			return
		}
		v.state = StateDegraded
		v.valid = false
		v.vErr = &ValidationError{Kind: kind, Message: errmsg.Message(err)}
		obs.ObserveSessionValidation("degraded")
	case !ok:
		v.discardTokenLocked(ctx)
		v.state = StateInvalid
		v.vErr = &ValidationError{Kind: errmsg.KindInvalid, Message: errmsg.MsgSessionExpired}
		obs.ObserveSessionValidation("invalid")
	default:
		v.state = StateValid
		v.valid = true
		v.vErr = nil
		obs.ObserveSessionValidation("valid")
	}
}

// discardTokenLocked clears the rejected token through the store so every
// subscriber hears about it. Caller holds v.mu.
func (v *Validator) discardTokenLocked(ctx context.Context) {
	v.valid = false
	v.selfWrite.Store(true)
	v.store.SetToken(ctx, "")
	v.selfWrite.Store(false)
}
