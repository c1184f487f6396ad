package httpapi

import (
	"net/http"

	"ipschool.org/internal/errmsg"
)

// sessionGate is the JSON shape for auth refusals and session status errors.
type sessionGate struct {
	Kind      errmsg.Kind `json:"kind"`
	Message   string      `json:"message"`
	Retryable bool        `json:"retryable"`
}

// requireAdmin gates admin editing endpoints on the session validator's
// verdict. While the verdict is still pending the caller is told to retry
// rather than being bounced to login, so a slow authority start-up does not
// log admins out.
func (a *API) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodOptions {
			next(w, r)
			return
		}
		if a.auth.IsCheckingAuth() {
			w.Header().Set("Retry-After", "1")
			writeError(w, r, http.StatusServiceUnavailable, "session validation in progress")
			return
		}
		if !a.auth.IsAuthenticated() {
			gate := sessionGate{Kind: errmsg.KindInvalid, Message: "admin session required"}
			if vErr := a.auth.LastError(); vErr != nil {
				gate.Kind = vErr.Kind
				gate.Message = vErr.Message
				gate.Retryable = vErr.Transient()
			}
			writeJSON(w, http.StatusUnauthorized, gate)
			return
		}
		next(w, r)
	}
}
