package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ipschool.org/internal/content"
)

const defaultTimeout = 10 * time.Second

// Client calls the remote store's JSON API. All methods return *Error on
// failure so callers can branch on the failure kind.
type Client struct {
	baseURL     string
	http        *http.Client
	tokenSource func() string
}

// Option configures Client behavior.
type Option func(*Client)

// WithHTTPClient overrides the underlying HTTP client (useful for tests).
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.http = h
		}
	}
}

// WithTimeout sets the per-call timeout on the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithTokenSource attaches the current admin session token as a bearer
// credential on every call. An empty token sends no Authorization header.
func WithTokenSource(fn func() string) Option {
	return func(c *Client) {
		if fn != nil {
			c.tokenSource = fn
		}
	}
}

// New creates a client for the store at baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Ready probes the remote store's health endpoint. It is the authority
// readiness signal for session validation.
func (c *Client) Ready(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/healthz", nil, nil)
}

// Auth ---------------------------------------------------------------------

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// AdminLogin exchanges credentials for a session token. Failures must not be
// retried automatically and the submitted credentials never appear in the
// returned error.
func (c *Client) AdminLogin(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	err := c.do(ctx, http.MethodPost, "/v1/auth/login", loginRequest{Username: username, Password: password}, &resp)
	if err != nil {
		return "", err
	}
	if resp.Token == "" {
		return "", &Error{Kind: KindInternal, Message: "login response missing token"}
	}
	return resp.Token, nil
}

// AdminLogout revokes the token remotely. Callers treat failures as
// best-effort.
func (c *Client) AdminLogout(ctx context.Context, token string) error {
	return c.do(ctx, http.MethodPost, "/v1/auth/logout", map[string]string{"token": token}, nil)
}

type validateResponse struct {
	Valid bool `json:"valid"`
}

// ValidateAdminSession asks the store whether token is still good. A false
// return means the token was examined and rejected; an error means the
// question could not be answered.
func (c *Client) ValidateAdminSession(ctx context.Context, token string) (bool, error) {
	var resp validateResponse
	if err := c.do(ctx, http.MethodPost, "/v1/auth/validate", map[string]string{"token": token}, &resp); err != nil {
		return false, err
	}
	return resp.Valid, nil
}

// Content ------------------------------------------------------------------

func (c *Client) GetAllContentSections(ctx context.Context) ([]content.Section, error) {
	var out []content.Section
	if err := c.do(ctx, http.MethodGet, "/v1/content", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateContentSection(ctx context.Context, s content.Section) error {
	return c.do(ctx, http.MethodPost, "/v1/content", s, nil)
}

func (c *Client) UpdateContentSection(ctx context.Context, id string, s content.Section) error {
	return c.do(ctx, http.MethodPut, "/v1/content/"+url.PathEscape(id), s, nil)
}

func (c *Client) DeleteContentSection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/content/"+url.PathEscape(id), nil, nil)
}

// Gallery ------------------------------------------------------------------

func (c *Client) GetAllGalleryItems(ctx context.Context) ([]GalleryItem, error) {
	var out []GalleryItem
	if err := c.do(ctx, http.MethodGet, "/v1/gallery", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) GetGalleryItemsByCategory(ctx context.Context, category string) ([]GalleryItem, error) {
	var out []GalleryItem
	path := "/v1/gallery?category=" + url.QueryEscape(category)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) CreateGalleryItem(ctx context.Context, item GalleryItem) error {
	return c.do(ctx, http.MethodPost, "/v1/gallery", item, nil)
}

func (c *Client) UpdateGalleryItem(ctx context.Context, id string, item GalleryItem) error {
	return c.do(ctx, http.MethodPut, "/v1/gallery/"+url.PathEscape(id), item, nil)
}

func (c *Client) DeleteGalleryItem(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/gallery/"+url.PathEscape(id), nil, nil)
}

// Enquiries ----------------------------------------------------------------

func (c *Client) GetAllEnquiries(ctx context.Context) ([]Enquiry, error) {
	var out []Enquiry
	if err := c.do(ctx, http.MethodGet, "/v1/enquiries", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) SubmitEnquiry(ctx context.Context, e Enquiry) error {
	return c.do(ctx, http.MethodPost, "/v1/enquiries", e, nil)
}

func (c *Client) MarkEnquiryAsRead(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodPost, "/v1/enquiries/"+url.PathEscape(id)+"/read", nil, nil)
}

func (c *Client) DeleteEnquiry(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/v1/enquiries/"+url.PathEscape(id), nil, nil)
}

// Contact ------------------------------------------------------------------

func (c *Client) GetContactDetails(ctx context.Context) (ContactDetails, error) {
	var out ContactDetails
	if err := c.do(ctx, http.MethodGet, "/v1/contact", nil, &out); err != nil {
		return ContactDetails{}, err
	}
	return out, nil
}

func (c *Client) UpdateContactDetails(ctx context.Context, details ContactDetails) error {
	return c.do(ctx, http.MethodPut, "/v1/contact", details, nil)
}

// Helpers ------------------------------------------------------------------

type errorBody struct {
	Error string `json:"error"`
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return &Error{Kind: KindInternal, Message: fmt.Sprintf("encode request: %v", err)}
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, payload)
	if err != nil {
		return &Error{Kind: KindInternal, Message: err.Error()}
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokenSource != nil {
		if token := c.tokenSource(); token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &Error{Kind: KindNetwork, Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		msg := http.StatusText(resp.StatusCode)
		var eb errorBody
		if decodeErr := json.NewDecoder(resp.Body).Decode(&eb); decodeErr == nil && eb.Error != "" {
			msg = eb.Error
		}
		return &Error{Kind: kindForStatus(resp.StatusCode), Status: resp.StatusCode, Message: msg}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return &Error{Kind: KindInternal, Status: resp.StatusCode, Message: fmt.Sprintf("decode response: %v", err)}
		}
	}
	return nil
}
