// Package httpapi exposes the public site and gated admin endpoints.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"ipschool.org/internal/obs"
	"ipschool.org/internal/session"
	"ipschool.org/internal/site"
)

// ReadyProbe reports whether the service's dependencies are reachable.
type ReadyProbe func(ctx context.Context) error

// Config tunes the outer middleware chain.
type Config struct {
	MaxBodyBytes  int64
	RateBurst     int
	RatePerSecond int
}

func (c Config) withDefaults() Config {
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = 1 << 20
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 5
	}
	if c.RatePerSecond <= 0 {
		c.RatePerSecond = 2
	}
	return c
}

// API is the HTTP layer over the site service and the admin session.
type API struct {
	mux     *http.ServeMux
	svc     *site.Service
	auth    *session.Auth
	ready   ReadyProbe
	version string
	cfg     Config
}

func New(svc *site.Service, auth *session.Auth, ready ReadyProbe, version string, cfg Config) *API {
	a := &API{
		mux:     http.NewServeMux(),
		svc:     svc,
		auth:    auth,
		ready:   ready,
		version: version,
		cfg:     cfg.withDefaults(),
	}

	// health/ready/info
	a.mux.HandleFunc("/healthz", a.Healthz)
	a.mux.HandleFunc("/readyz", a.Ready)
	a.mux.HandleFunc("/v1/info", a.Info)

	// Prometheus metrics
	a.mux.Handle("/metrics", obs.Handler())

	// public site
	a.mux.HandleFunc("/v1/site/sections/", a.handleSectionResource)
	a.mux.HandleFunc("/v1/site/pages/", a.handlePageResource)
	a.mux.HandleFunc("/v1/site/gallery", a.handlePublicGallery)
	a.mux.HandleFunc("/v1/site/contact", a.handlePublicContact)
	a.mux.Handle("/v1/site/enquiries",
		RateLimit(http.HandlerFunc(a.handleEnquirySubmission), a.cfg.RateBurst, a.cfg.RatePerSecond))

	// admin session lifecycle
	a.mux.HandleFunc("/v1/admin/login", a.handleLogin)
	a.mux.HandleFunc("/v1/admin/logout", a.handleLogout)
	a.mux.HandleFunc("/v1/admin/session", a.handleSessionStatus)
	a.mux.HandleFunc("/v1/admin/session/retry", a.handleSessionRetry)

	// admin editing surface, guarded
	a.mux.HandleFunc("/v1/admin/content", a.requireAdmin(a.handleContentCollection))
	a.mux.HandleFunc("/v1/admin/content/", a.requireAdmin(a.handleContentResource))
	a.mux.HandleFunc("/v1/admin/gallery", a.requireAdmin(a.handleGalleryCollection))
	a.mux.HandleFunc("/v1/admin/gallery/", a.requireAdmin(a.handleGalleryResource))
	a.mux.HandleFunc("/v1/admin/enquiries", a.requireAdmin(a.handleEnquiriesCollection))
	a.mux.HandleFunc("/v1/admin/enquiries/", a.requireAdmin(a.handleEnquiryResource))
	a.mux.HandleFunc("/v1/admin/contact", a.requireAdmin(a.handleAdminContact))

	a.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})

	return a
}

// Handler returns the fully wrapped handler for the server.
func (a *API) Handler() http.Handler {
	var h http.Handler = a.mux
	h = obs.Instrument(h)
	h = MaxBodyBytes(h, a.cfg.MaxBodyBytes)
	h = CORS(h)
	h = SecurityHeaders(h)
	h = LoggingJSON(h)
	h = RequestID(h)
	return h
}

// --- service endpoints ---

func (a *API) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"service": "ipschool-site",
		"version": a.version,
	})
}

func (a *API) Ready(w http.ResponseWriter, r *http.Request) {
	if a.ready != nil {
		if err := a.ready(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"status": "not_ready",
				"error":  err.Error(),
			})
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ready",
	})
}

func (a *API) Info(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":    "ipschool-site",
		"time":    time.Now().UTC().Format(time.RFC3339),
		"version": a.version,
	})
}
