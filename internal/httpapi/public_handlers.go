package httpapi

import (
	"net/http"
	"strings"

	"ipschool.org/internal/site"
)

func (a *API) handleSectionResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/v1/site/sections/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	writeJSON(w, http.StatusOK, a.svc.Section(r.Context(), id))
}

func (a *API) handlePageResource(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	prefix := strings.TrimPrefix(r.URL.Path, "/v1/site/pages/")
	if prefix == "" || strings.Contains(prefix, "/") {
		writeError(w, r, http.StatusNotFound, "resource not found")
		return
	}
	sections := a.svc.Page(r.Context(), prefix)
	writeJSON(w, http.StatusOK, map[string]any{
		"prefix":   prefix,
		"sections": sections,
	})
}

func (a *API) handlePublicGallery(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	items, err := a.svc.Gallery(r.Context(), strings.TrimSpace(r.URL.Query().Get("category")))
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"items": items})
}

func (a *API) handlePublicContact(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		methodNotAllowed(w, r, http.MethodGet)
		return
	}
	details, err := a.svc.Contact(r.Context())
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, details)
}

func (a *API) handleEnquirySubmission(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		methodNotAllowed(w, r, http.MethodPost)
		return
	}
	var in site.EnquiryInput
	if err := decodeJSON(w, r, &in); err != nil {
		writeError(w, r, http.StatusBadRequest, err.Error())
		return
	}
	e, err := a.svc.SubmitEnquiry(r.Context(), in)
	if err != nil {
		handleBackendError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, e)
}
