package httpapi

import (
	"errors"
	"net/http"
	"strings"

	"ipschool.org/internal/audit"
	"ipschool.org/internal/backend"
	"ipschool.org/internal/content"
	"ipschool.org/internal/errmsg"
	"ipschool.org/internal/session"
	"ipschool.org/internal/site"
)

// confirmHeader must accompany destructive admin requests.
const confirmHeader = "X-Confirm-Delete"

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (a *API) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		writeError(w, r, http.StatusBadRequest, "username and password are required")
		return
	}

	if err := a.auth.Login(r.Context(), req.Username, req.Password); err != nil {
		var vErr *session.ValidationError
		if !errors.As(err, &vErr) {
			writeError(w, r, http.StatusInternalServerError, errmsg.MsgUnexpected)
			return
		}
		code := http.StatusUnauthorized
		if vErr.Transient() {
			code = http.StatusServiceUnavailable
			w.Header().Set("Retry-After", "1")
		}
		writeJSON(w, code, sessionGate{Kind: vErr.Kind, Message: vErr.Message, Retryable: vErr.Transient()})
		return
	}

	// The username is deliberately not logged; only the fact of a login.
	_ = audit.LogEvent(r.Context(), "admin.login", nil)
	a.writeSessionStatus(w)
}

func (a *API) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.auth.Logout(r.Context())
	_ = audit.LogEvent(r.Context(), "admin.logout", nil)
	a.writeSessionStatus(w)
}

func (a *API) handleSessionStatus(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	a.writeSessionStatus(w)
}

func (a *API) handleSessionRetry(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	a.auth.Retry(r.Context())
	a.writeSessionStatus(w)
}

func (a *API) writeSessionStatus(w http.ResponseWriter) {
	status := map[string]any{
		"authenticated": a.auth.IsAuthenticated(),
		"checking":      a.auth.IsCheckingAuth(),
		"state":         a.auth.State().String(),
	}
	if vErr := a.auth.LastError(); vErr != nil {
		status["error"] = sessionGate{Kind: vErr.Kind, Message: vErr.Message, Retryable: vErr.Transient()}
	}
	writeJSON(w, http.StatusOK, status)
}

// --- content ---

func (a *API) handleContentCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		sections, err := a.svc.EditorSections(r.Context())
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"sections": sections})
	case http.MethodPost:
		var sec content.Section
		if err := decodeJSON(w, r, &sec); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(sec.ID) == "" {
			writeError(w, r, http.StatusBadRequest, "id is required")
			return
		}
		if err := a.svc.CreateSection(r.Context(), sec); err != nil {
			handleBackendError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "content.section.create", map[string]any{"section_id": sec.ID})
		w.Header().Set("Location", "/v1/admin/content/"+sec.ID)
		writeJSON(w, http.StatusCreated, sec)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleContentResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/admin/content/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		var sec content.Section
		if err := decodeJSON(w, r, &sec); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := a.svc.UpdateSection(r.Context(), id, sec); err != nil {
			handleBackendError(w, r, err)
			return
		}
		sec.ID = id
		_ = audit.LogEvent(r.Context(), "content.section.update", map[string]any{"section_id": id})
		writeJSON(w, http.StatusOK, sec)
	case http.MethodDelete:
		if !deleteConfirmed(r) {
			writeError(w, r, http.StatusPreconditionRequired, confirmHeader+" header is required")
			return
		}
		if err := a.svc.DeleteSection(r.Context(), id); err != nil {
			handleBackendError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "content.section.delete", map[string]any{"section_id": id})
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

// --- gallery ---

func (a *API) handleGalleryCollection(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := a.svc.AdminGallery(r.Context())
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"items": items})
	case http.MethodPost:
		var item backend.GalleryItem
		if err := decodeJSON(w, r, &item); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if strings.TrimSpace(item.Title) == "" || strings.TrimSpace(item.ImageURL) == "" {
			writeError(w, r, http.StatusBadRequest, "title and imageUrl are required")
			return
		}
		created, err := a.svc.CreateGalleryItem(r.Context(), item)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "gallery.item.create", map[string]any{"item_id": created.ID})
		w.Header().Set("Location", "/v1/admin/gallery/"+created.ID)
		writeJSON(w, http.StatusCreated, created)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPost)
	}
}

func (a *API) handleGalleryResource(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/v1/admin/gallery/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	switch r.Method {
	case http.MethodPut:
		var upd site.GalleryItemUpdate
		if err := decodeJSON(w, r, &upd); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		item, err := a.svc.UpdateGalleryItem(r.Context(), id, upd)
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "gallery.item.update", map[string]any{"item_id": id})
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if !deleteConfirmed(r) {
			writeError(w, r, http.StatusPreconditionRequired, confirmHeader+" header is required")
			return
		}
		if err := a.svc.DeleteGalleryItem(r.Context(), id); err != nil {
			handleBackendError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "gallery.item.delete", map[string]any{"item_id": id})
		w.WriteHeader(http.StatusNoContent)
	default:
		methodNotAllowed(w, r, http.MethodPut, http.MethodDelete)
	}
}

// --- enquiries ---

func (a *API) handleEnquiriesCollection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	list, err := a.svc.Enquiries(r.Context())
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": list})
}

func (a *API) handleEnquiryResource(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/v1/admin/enquiries/")
	if path == "" {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}

	if id, ok := strings.CutSuffix(path, "/read"); ok {
		if id == "" || strings.Contains(id, "/") {
			writeError(w, r, http.StatusNotFound, "resource not found")
			return
		}
		if r.Method != http.MethodPost {
			methodNotAllowed(w, r, http.MethodPost)
			return
		}
		if err := a.svc.MarkEnquiryRead(r.Context(), id); err != nil {
			handleBackendError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "enquiry.read", map[string]any{"enquiry_id": id})
		w.WriteHeader(http.StatusNoContent)
		return
	}

	if strings.Contains(path, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	if r.Method != http.MethodDelete {
		methodNotAllowed(w, r, http.MethodDelete)
		return
	}
	if !deleteConfirmed(r) {
		writeError(w, r, http.StatusPreconditionRequired, confirmHeader+" header is required")
		return
	}
	if err := a.svc.DeleteEnquiry(r.Context(), path); err != nil {
		handleBackendError(w, r, err)
		return
	}
	_ = audit.LogEvent(r.Context(), "enquiry.delete", map[string]any{"enquiry_id": path})
	w.WriteHeader(http.StatusNoContent)
}

// --- contact ---

func (a *API) handleAdminContact(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		details, err := a.svc.Contact(r.Context())
		if err != nil {
			handleBackendError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, details)
	case http.MethodPut:
		var details backend.ContactDetails
		if err := decodeJSON(w, r, &details); err != nil {
			writeError(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if err := a.svc.UpdateContact(r.Context(), details); err != nil {
			handleBackendError(w, r, err)
			return
		}
		_ = audit.LogEvent(r.Context(), "contact.update", nil)
		writeJSON(w, http.StatusOK, details)
	default:
		methodNotAllowed(w, r, http.MethodGet, http.MethodPut)
	}
}

func deleteConfirmed(r *http.Request) bool {
	return strings.TrimSpace(r.Header.Get(confirmHeader)) != ""
}
