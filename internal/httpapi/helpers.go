package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"ipschool.org/internal/audit"
	"ipschool.org/internal/backend"
	"ipschool.org/internal/errmsg"
	"ipschool.org/internal/site"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, r *http.Request, code int, msg string) {
	payload := map[string]any{
		"error": msg,
	}
	if rid := audit.RequestIDFromContext(r.Context()); rid != "" {
		payload["request_id"] = rid
	}
	writeJSON(w, code, payload)
}

func methodNotAllowed(w http.ResponseWriter, r *http.Request, allowed ...string) {
	w.Header().Set("Allow", strings.Join(allowed, ", "))
	writeError(w, r, http.StatusMethodNotAllowed, "method not allowed")
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) error {
	reader := http.MaxBytesReader(w, r.Body, 1<<20)
	defer reader.Close()
	dec := json.NewDecoder(reader)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return err
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		if err == nil {
			return errors.New("unexpected data after JSON body")
		}
		return err
	}
	return nil
}

// handleBackendError maps a service or remote-store failure to an HTTP
// response. Only messages authored by this service are returned verbatim;
// remote error bodies always pass through the classifier, whatever their
// status, so a hostile or oversized body never reaches a caller.
func handleBackendError(w http.ResponseWriter, r *http.Request, err error) {
	var re *site.RequestError
	if errors.As(err, &re) {
		writeError(w, r, re.Status, re.Message)
		return
	}

	var be *backend.Error
	if !errors.As(err, &be) {
		writeError(w, r, http.StatusInternalServerError, errmsg.MsgUnexpected)
		return
	}
	code := http.StatusInternalServerError
	switch be.Kind {
	case backend.KindBadRequest:
		code = http.StatusBadRequest
	case backend.KindUnauthorized:
		code = http.StatusUnauthorized
	case backend.KindForbidden:
		code = http.StatusForbidden
	case backend.KindNotFound:
		code = http.StatusNotFound
	case backend.KindUnavailable:
		code = http.StatusServiceUnavailable
	case backend.KindNetwork:
		code = http.StatusBadGateway
	}
	if code == http.StatusServiceUnavailable || code == http.StatusBadGateway {
		w.Header().Set("Retry-After", "1")
	}
	writeError(w, r, code, errmsg.Message(err))
}
