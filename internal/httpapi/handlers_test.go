package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ipschool.org/internal/backend"
	"ipschool.org/internal/content"
	"ipschool.org/internal/kv"
	"ipschool.org/internal/session"
	"ipschool.org/internal/site"
)

// fakeStore is an in-memory remote content store.
type fakeStore struct {
	sections  []content.Section
	gallery   []backend.GalleryItem
	enquiries []backend.Enquiry
	contact   backend.ContactDetails
	failReads error
}

func (f *fakeStore) GetAllContentSections(context.Context) ([]content.Section, error) {
	if f.failReads != nil {
		return nil, f.failReads
	}
	return f.sections, nil
}

func (f *fakeStore) CreateContentSection(_ context.Context, s content.Section) error {
	f.sections = append(f.sections, s)
	return nil
}

func (f *fakeStore) UpdateContentSection(_ context.Context, id string, s content.Section) error {
	for i := range f.sections {
		if f.sections[i].ID == id {
			f.sections[i] = s
			return nil
		}
	}
	return &backend.Error{Kind: backend.KindNotFound, Status: 404, Message: "no such section"}
}

func (f *fakeStore) DeleteContentSection(_ context.Context, id string) error {
	for i := range f.sections {
		if f.sections[i].ID == id {
			f.sections = append(f.sections[:i], f.sections[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) GetAllGalleryItems(context.Context) ([]backend.GalleryItem, error) {
	if f.failReads != nil {
		return nil, f.failReads
	}
	return append([]backend.GalleryItem(nil), f.gallery...), nil
}

func (f *fakeStore) GetGalleryItemsByCategory(_ context.Context, category string) ([]backend.GalleryItem, error) {
	var out []backend.GalleryItem
	for _, it := range f.gallery {
		if it.Category == category {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateGalleryItem(_ context.Context, item backend.GalleryItem) error {
	f.gallery = append(f.gallery, item)
	return nil
}

func (f *fakeStore) UpdateGalleryItem(_ context.Context, id string, item backend.GalleryItem) error {
	for i := range f.gallery {
		if f.gallery[i].ID == id {
			f.gallery[i] = item
			return nil
		}
	}
	return &backend.Error{Kind: backend.KindNotFound, Status: 404, Message: "no such item"}
}

func (f *fakeStore) DeleteGalleryItem(_ context.Context, id string) error {
	for i := range f.gallery {
		if f.gallery[i].ID == id {
			f.gallery = append(f.gallery[:i], f.gallery[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) GetAllEnquiries(context.Context) ([]backend.Enquiry, error) {
	if f.failReads != nil {
		return nil, f.failReads
	}
	return append([]backend.Enquiry(nil), f.enquiries...), nil
}

func (f *fakeStore) SubmitEnquiry(_ context.Context, e backend.Enquiry) error {
	f.enquiries = append(f.enquiries, e)
	return nil
}

func (f *fakeStore) MarkEnquiryAsRead(_ context.Context, id string) error {
	for i := range f.enquiries {
		if f.enquiries[i].ID == id {
			f.enquiries[i].Read = true
		}
	}
	return nil
}

func (f *fakeStore) DeleteEnquiry(_ context.Context, id string) error {
	for i := range f.enquiries {
		if f.enquiries[i].ID == id {
			f.enquiries = append(f.enquiries[:i], f.enquiries[i+1:]...)
			break
		}
	}
	return nil
}

func (f *fakeStore) GetContactDetails(context.Context) (backend.ContactDetails, error) {
	if f.failReads != nil {
		return backend.ContactDetails{}, f.failReads
	}
	return f.contact, nil
}

func (f *fakeStore) UpdateContactDetails(_ context.Context, details backend.ContactDetails) error {
	f.contact = details
	return nil
}

// scriptedAuthority answers session calls with fixed results.
type scriptedAuthority struct {
	loginToken string
	loginErr   error
	valid      bool
	validErr   error
}

func (s *scriptedAuthority) Ready(context.Context) error { return nil }

func (s *scriptedAuthority) AdminLogin(context.Context, string, string) (string, error) {
	return s.loginToken, s.loginErr
}

func (s *scriptedAuthority) AdminLogout(context.Context, string) error { return nil }

func (s *scriptedAuthority) ValidateAdminSession(context.Context, string) (bool, error) {
	return s.valid, s.validErr
}

type testEnv struct {
	api       *API
	handler   http.Handler
	store     *fakeStore
	tokens    *session.Store
	validator *session.Validator
}

func newTestEnv(t *testing.T, authority session.Authority, authorityReady bool) *testEnv {
	t.Helper()
	ctx := context.Background()

	fs := &fakeStore{}
	tokens := session.NewStore(ctx, kv.NewMemory())
	validator := session.NewValidator(tokens, authority)
	t.Cleanup(validator.Close)
	validator.SetReady(ctx, authorityReady)

	auth := session.NewAuth(tokens, validator)
	merger := content.NewMerger(content.Defaults)
	cache := content.NewCache(fs, time.Minute)
	svc := site.New(fs, merger, cache)

	api := New(svc, auth, func(context.Context) error { return nil }, "test",
		Config{RateBurst: 100, RatePerSecond: 100})

	return &testEnv{api: api, handler: api.Handler(), store: fs, tokens: tokens, validator: validator}
}

func (e *testEnv) do(method, path, body string, hdr map[string]string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	req.RemoteAddr = "10.1.2.3:4321"
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	rr := httptest.NewRecorder()
	e.handler.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response not valid JSON: %v (%s)", err, rr.Body.String())
	}
	return body
}

func loginEnv(t *testing.T, e *testEnv) {
	t.Helper()
	rr := e.do(http.MethodPost, "/v1/admin/login", `{"username":"admin","password":"pw"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rr.Code, rr.Body.String())
	}
}

func TestPublicSectionFallsBackToDefault(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)
	e.store.failReads = &backend.Error{Kind: backend.KindNetwork, Status: 0, Message: "dial tcp: refused"}

	rr := e.do(http.MethodGet, "/v1/site/sections/home-hero-title", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["body"] != "Innovation Public School" {
		t.Fatalf("body = %v, want bundled default", body["body"])
	}
}

func TestPublicPageListsSections(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)

	rr := e.do(http.MethodGet, "/v1/site/pages/about", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	sections, ok := body["sections"].([]any)
	if !ok || len(sections) == 0 {
		t.Fatalf("sections = %v, want non-empty default catalog", body["sections"])
	}
}

func TestEnquirySubmissionStampsAndStores(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)

	rr := e.do(http.MethodPost, "/v1/site/enquiries",
		`{"name":"Dana","email":"dana@example.com","enquiryType":"general","message":"hi"}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["id"] == "" || body["id"] == nil {
		t.Fatal("expected server-assigned id")
	}
	if body["isRead"] != false {
		t.Fatalf("isRead = %v, want false", body["isRead"])
	}
	if body["subject"] != "General Enquiry" {
		t.Fatalf("subject = %v", body["subject"])
	}
	if len(e.store.enquiries) != 1 {
		t.Fatalf("stored %d enquiries", len(e.store.enquiries))
	}
}

func TestEnquiryValidationRejected(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)

	rr := e.do(http.MethodPost, "/v1/site/enquiries", `{"email":"a@b.c","message":"hi"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
}

func TestRemoteBadRequestBodyIsSanitized(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)
	hostile := "canister trap: internal principal w3gef rejected " + strings.Repeat("x", 350)
	e.store.failReads = &backend.Error{Kind: backend.KindBadRequest, Status: 400, Message: hostile}

	rr := e.do(http.MethodGet, "/v1/site/contact", "", nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	msg, _ := body["error"].(string)
	if strings.Contains(msg, "trap") || strings.Contains(msg, "w3gef") {
		t.Fatalf("remote diagnostics leaked: %q", msg)
	}
	if msg != "An unexpected error occurred. Please try again." {
		t.Fatalf("message = %q, want generic fallback", msg)
	}
}

func TestLocalValidationMessageReturnedVerbatim(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)

	rr := e.do(http.MethodPost, "/v1/site/enquiries",
		`{"email":"a@b.c","message":"hi"}`, nil)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["error"] != "name is required" {
		t.Fatalf("error = %v, service-authored messages must pass unchanged", body["error"])
	}
}

func TestAdminGuardRejectsAnonymous(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)

	rr := e.do(http.MethodGet, "/v1/admin/content", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rr.Code)
	}
	body := decodeBody(t, rr)
	for _, key := range []string{"kind", "message", "retryable"} {
		if _, ok := body[key]; !ok {
			t.Fatalf("gate body missing %q: %v", key, body)
		}
	}
}

func TestAdminGuardAsksForRetryWhileChecking(t *testing.T) {
	// Token restored from a previous run, authority not up yet.
	authority := &scriptedAuthority{valid: true}
	ctx := context.Background()
	mem := kv.NewMemory()
	if err := mem.Set(ctx, session.TokenKey, "restored"); err != nil {
		t.Fatal(err)
	}

	fs := &fakeStore{}
	tokens := session.NewStore(ctx, mem)
	validator := session.NewValidator(tokens, authority)
	t.Cleanup(validator.Close)
	auth := session.NewAuth(tokens, validator)
	svc := site.New(fs, content.NewMerger(content.Defaults), content.NewCache(fs, time.Minute))
	api := New(svc, auth, nil, "test", Config{})

	req := httptest.NewRequest(http.MethodGet, "/v1/admin/content", nil)
	rr := httptest.NewRecorder()
	api.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503 while checking", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After header")
	}
}

func TestLoginLogoutLifecycle(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{loginToken: "tok-1", valid: true}, true)

	rr := e.do(http.MethodPost, "/v1/admin/login", `{"username":"admin","password":"pw"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("login status = %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["authenticated"] != true {
		t.Fatalf("authenticated = %v after login", body["authenticated"])
	}

	// The guard now lets admin requests through.
	rr = e.do(http.MethodGet, "/v1/admin/content", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("admin content status = %d", rr.Code)
	}

	rr = e.do(http.MethodPost, "/v1/admin/logout", "", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("logout status = %d", rr.Code)
	}
	body = decodeBody(t, rr)
	if body["authenticated"] != false {
		t.Fatalf("authenticated = %v after logout", body["authenticated"])
	}

	rr = e.do(http.MethodGet, "/v1/admin/content", "", nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 after logout", rr.Code)
	}
}

func TestLoginFailureReturnsSanitizedMessage(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{
		loginErr: &backend.Error{Kind: backend.KindUnauthorized, Status: 401, Message: "Invalid credentials"},
	}, true)

	rr := e.do(http.MethodPost, "/v1/admin/login", `{"username":"admin","password":"nope"}`, nil)
	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rr.Code)
	}
	body := decodeBody(t, rr)
	if body["message"] != "Invalid username or password. Please try again." {
		t.Fatalf("message = %v", body["message"])
	}
	if body["retryable"] != false {
		t.Fatalf("retryable = %v, want false for credential rejection", body["retryable"])
	}
}

func TestContentUpdateVisibleOnPublicPath(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{loginToken: "tok", valid: true}, true)
	loginEnv(t, e)

	// Prime the public cache with the default.
	e.do(http.MethodGet, "/v1/site/sections/home-hero-title", "", nil)

	rr := e.do(http.MethodPost, "/v1/admin/content",
		`{"id":"home-hero-title","title":"Hero Title","body":"Edited","isPublished":true}`, nil)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d: %s", rr.Code, rr.Body.String())
	}

	rr = e.do(http.MethodGet, "/v1/site/sections/home-hero-title", "", nil)
	body := decodeBody(t, rr)
	if body["body"] != "Edited" {
		t.Fatalf("body = %v, cache must be invalidated by the successful write", body["body"])
	}
}

func TestDeleteRequiresConfirmationHeader(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{loginToken: "tok", valid: true}, true)
	loginEnv(t, e)
	e.store.gallery = []backend.GalleryItem{{ID: "g1", Title: "Pic", Active: true}}

	rr := e.do(http.MethodDelete, "/v1/admin/gallery/g1", "", nil)
	if rr.Code != http.StatusPreconditionRequired {
		t.Fatalf("status = %d, want 428 without %s", rr.Code, confirmHeader)
	}
	if len(e.store.gallery) != 1 {
		t.Fatal("item deleted without confirmation")
	}

	rr = e.do(http.MethodDelete, "/v1/admin/gallery/g1", "", map[string]string{confirmHeader: "g1"})
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rr.Code)
	}
	if len(e.store.gallery) != 0 {
		t.Fatal("item not deleted")
	}
}

func TestGalleryUpdatePreservesImageOverHTTP(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{loginToken: "tok", valid: true}, true)
	loginEnv(t, e)
	e.store.gallery = []backend.GalleryItem{
		{ID: "g1", Title: "Old", Category: "campus", Active: true, ImageURL: "https://img/keep.jpg"},
	}

	rr := e.do(http.MethodPut, "/v1/admin/gallery/g1", `{"title":"New"}`, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d: %s", rr.Code, rr.Body.String())
	}
	body := decodeBody(t, rr)
	if body["imageUrl"] != "https://img/keep.jpg" {
		t.Fatalf("imageUrl = %v, must survive partial update", body["imageUrl"])
	}
}

func TestEnquiryMarkReadEndpoint(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{loginToken: "tok", valid: true}, true)
	loginEnv(t, e)
	e.store.enquiries = []backend.Enquiry{{ID: "e1", SubmittedAt: 100}}

	rr := e.do(http.MethodPost, "/v1/admin/enquiries/e1/read", "", nil)
	if rr.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rr.Code)
	}
	if !e.store.enquiries[0].Read {
		t.Fatal("enquiry not marked read")
	}
}

func TestBackendOutageMapsToServiceUnavailable(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{loginToken: "tok", valid: true}, true)
	loginEnv(t, e)
	e.store.failReads = &backend.Error{Kind: backend.KindUnavailable, Status: 503, Message: "Service Unavailable"}

	rr := e.do(http.MethodGet, "/v1/admin/enquiries", "", nil)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
	if rr.Header().Get("Retry-After") == "" {
		t.Fatal("expected Retry-After on transient failure")
	}
}

func TestHealthAndReady(t *testing.T) {
	e := newTestEnv(t, &scriptedAuthority{}, true)

	if rr := e.do(http.MethodGet, "/healthz", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("healthz = %d", rr.Code)
	}
	if rr := e.do(http.MethodGet, "/readyz", "", nil); rr.Code != http.StatusOK {
		t.Fatalf("readyz = %d", rr.Code)
	}
}
