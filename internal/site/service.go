// Package site implements the operations behind the public pages and the
// admin editing surface, on top of the remote content store client and the
// bundled default catalog.
package site

import (
	"context"
	"net/http"
	"sort"
	"strings"
	"time"

	"ipschool.org/internal/backend"
	"ipschool.org/internal/content"
	"ipschool.org/internal/ids"
	"ipschool.org/internal/obs"
)

// Backend is the slice of the remote store client the service consumes.
type Backend interface {
	GetAllContentSections(ctx context.Context) ([]content.Section, error)
	CreateContentSection(ctx context.Context, s content.Section) error
	UpdateContentSection(ctx context.Context, id string, s content.Section) error
	DeleteContentSection(ctx context.Context, id string) error

	GetAllGalleryItems(ctx context.Context) ([]backend.GalleryItem, error)
	GetGalleryItemsByCategory(ctx context.Context, category string) ([]backend.GalleryItem, error)
	CreateGalleryItem(ctx context.Context, item backend.GalleryItem) error
	UpdateGalleryItem(ctx context.Context, id string, item backend.GalleryItem) error
	DeleteGalleryItem(ctx context.Context, id string) error

	GetAllEnquiries(ctx context.Context) ([]backend.Enquiry, error)
	SubmitEnquiry(ctx context.Context, e backend.Enquiry) error
	MarkEnquiryAsRead(ctx context.Context, id string) error
	DeleteEnquiry(ctx context.Context, id string) error

	GetContactDetails(ctx context.Context) (backend.ContactDetails, error)
	UpdateContactDetails(ctx context.Context, details backend.ContactDetails) error
}

// Service serves merged content to visitors and passes admin edits through
// to the remote store, keeping the snapshot cache coherent.
type Service struct {
	backend Backend
	merger  *content.Merger
	cache   *content.Cache
	now     func() time.Time
	newID   func() string
}

func New(b Backend, merger *content.Merger, cache *content.Cache) *Service {
	return &Service{
		backend: b,
		merger:  merger,
		cache:   cache,
		now:     time.Now,
		newID:   ids.New,
	}
}

// snapshot returns the best available remote sections. A fetch failure is
// not fatal on the read path: the merger falls back to defaults.
func (s *Service) snapshot(ctx context.Context) []content.Section {
	secs, err := s.cache.Sections(ctx)
	if err != nil {
		obs.LogEvent("content_snapshot_unavailable", map[string]any{"error": err.Error()})
		return nil
	}
	return secs
}

// Section resolves a single section by id against the current snapshot.
func (s *Service) Section(ctx context.Context, id string) content.Section {
	return s.merger.Resolve(id, s.snapshot(ctx))
}

// Page resolves every section under an id prefix, e.g. "about".
func (s *Service) Page(ctx context.Context, prefix string) []content.Section {
	return s.merger.ResolveByPrefix(prefix, s.snapshot(ctx))
}

// Gallery lists gallery items for the public site. Only active items are
// returned; category narrows the listing when non-empty.
func (s *Service) Gallery(ctx context.Context, category string) ([]backend.GalleryItem, error) {
	var (
		items []backend.GalleryItem
		err   error
	)
	if category != "" {
		items, err = s.backend.GetGalleryItemsByCategory(ctx, category)
	} else {
		items, err = s.backend.GetAllGalleryItems(ctx)
	}
	if err != nil {
		return nil, err
	}
	active := items[:0]
	for _, it := range items {
		if it.Active {
			active = append(active, it)
		}
	}
	return active, nil
}

// Contact returns the published contact details.
func (s *Service) Contact(ctx context.Context) (backend.ContactDetails, error) {
	return s.backend.GetContactDetails(ctx)
}

// RequestError rejects a caller's input. Unlike remote-store failures its
// message is authored by this service, so handlers may return it verbatim.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string { return e.Message }

// EnquiryInput is a visitor-submitted enquiry before the service stamps it.
type EnquiryInput struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	EnquiryType string `json:"enquiryType"`
	Message     string `json:"message"`
}

// SubmitEnquiry validates and forwards a visitor enquiry. The service owns
// the identifier, timestamp and read flag; client-supplied values for those
// are ignored. Returns the stored enquiry.
func (s *Service) SubmitEnquiry(ctx context.Context, in EnquiryInput) (backend.Enquiry, error) {
	if err := validateEnquiry(in); err != nil {
		return backend.Enquiry{}, err
	}
	subject := strings.TrimSpace(in.Subject)
	if subject == "" {
		if in.EnquiryType == "admission" {
			subject = "Admission Enquiry"
		} else {
			subject = "General Enquiry"
		}
	}
	e := backend.Enquiry{
		ID:          s.newID(),
		Name:        strings.TrimSpace(in.Name),
		Email:       strings.TrimSpace(in.Email),
		Subject:     subject,
		EnquiryType: in.EnquiryType,
		Message:     strings.TrimSpace(in.Message),
		SubmittedAt: s.now().UnixMilli(),
		Read:        false,
	}
	if err := s.backend.SubmitEnquiry(ctx, e); err != nil {
		return backend.Enquiry{}, err
	}
	obs.ObserveEnquirySubmitted()
	return e, nil
}

func validateEnquiry(in EnquiryInput) error {
	missing := ""
	switch {
	case strings.TrimSpace(in.Name) == "":
		missing = "name"
	case strings.TrimSpace(in.Email) == "":
		missing = "email"
	case strings.TrimSpace(in.Message) == "":
		missing = "message"
	}
	if missing != "" {
		return &RequestError{Status: http.StatusBadRequest, Message: missing + " is required"}
	}
	if !strings.Contains(in.Email, "@") {
		return &RequestError{Status: http.StatusBadRequest, Message: "email is not valid"}
	}
	return nil
}

// EditorSections returns the full editable catalog: every remote section,
// drafts included, unioned with defaults not yet overridden.
func (s *Service) EditorSections(ctx context.Context) ([]content.EditorSection, error) {
	remote, err := s.backend.GetAllContentSections(ctx)
	if err != nil {
		return nil, err
	}
	return s.merger.MergeForEditing(remote), nil
}

// CreateSection stores a new section remotely. The cache is invalidated
// only once the write is known to have succeeded.
func (s *Service) CreateSection(ctx context.Context, sec content.Section) error {
	if err := s.backend.CreateContentSection(ctx, sec); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// UpdateSection overwrites a section remotely.
func (s *Service) UpdateSection(ctx context.Context, id string, sec content.Section) error {
	sec.ID = id
	if err := s.backend.UpdateContentSection(ctx, id, sec); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// DeleteSection removes a remote override; the bundled default, if any,
// becomes visible again.
func (s *Service) DeleteSection(ctx context.Context, id string) error {
	if err := s.backend.DeleteContentSection(ctx, id); err != nil {
		return err
	}
	s.cache.Invalidate()
	return nil
}

// AdminGallery lists every gallery item, inactive ones included.
func (s *Service) AdminGallery(ctx context.Context) ([]backend.GalleryItem, error) {
	return s.backend.GetAllGalleryItems(ctx)
}

// CreateGalleryItem stores a new item, assigning its identifier.
func (s *Service) CreateGalleryItem(ctx context.Context, item backend.GalleryItem) (backend.GalleryItem, error) {
	item.ID = s.newID()
	if err := s.backend.CreateGalleryItem(ctx, item); err != nil {
		return backend.GalleryItem{}, err
	}
	return item, nil
}

// GalleryItemUpdate carries the editable fields of a gallery item. A nil
// field leaves the stored value alone.
type GalleryItemUpdate struct {
	Title    *string `json:"title"`
	Category *string `json:"category"`
	Active   *bool   `json:"isActive"`
	ImageURL *string `json:"imageUrl"`
}

// UpdateGalleryItem applies a partial update read-modify-write style: the
// current item is re-fetched immediately before the write so fields the
// caller did not supply, the image reference above all, survive the edit.
// Atomicity between the read and the write is the remote store's concern.
func (s *Service) UpdateGalleryItem(ctx context.Context, id string, upd GalleryItemUpdate) (backend.GalleryItem, error) {
	items, err := s.backend.GetAllGalleryItems(ctx)
	if err != nil {
		return backend.GalleryItem{}, err
	}
	var current *backend.GalleryItem
	for i := range items {
		if items[i].ID == id {
			current = &items[i]
			break
		}
	}
	if current == nil {
		return backend.GalleryItem{}, &RequestError{Status: http.StatusNotFound, Message: "gallery item not found"}
	}
	item := *current
	if upd.Title != nil {
		item.Title = *upd.Title
	}
	if upd.Category != nil {
		item.Category = *upd.Category
	}
	if upd.Active != nil {
		item.Active = *upd.Active
	}
	if upd.ImageURL != nil && *upd.ImageURL != "" {
		item.ImageURL = *upd.ImageURL
	}
	if err := s.backend.UpdateGalleryItem(ctx, id, item); err != nil {
		return backend.GalleryItem{}, err
	}
	return item, nil
}

// DeleteGalleryItem removes an item from the gallery.
func (s *Service) DeleteGalleryItem(ctx context.Context, id string) error {
	return s.backend.DeleteGalleryItem(ctx, id)
}

// Enquiries lists submitted enquiries, newest first.
func (s *Service) Enquiries(ctx context.Context) ([]backend.Enquiry, error) {
	list, err := s.backend.GetAllEnquiries(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool {
		return list[i].SubmittedAt > list[j].SubmittedAt
	})
	return list, nil
}

// MarkEnquiryRead flags an enquiry as handled. Marking an already-read
// enquiry is a no-op remotely, so repeat calls are safe.
func (s *Service) MarkEnquiryRead(ctx context.Context, id string) error {
	return s.backend.MarkEnquiryAsRead(ctx, id)
}

// DeleteEnquiry removes an enquiry permanently.
func (s *Service) DeleteEnquiry(ctx context.Context, id string) error {
	return s.backend.DeleteEnquiry(ctx, id)
}

// UpdateContact replaces the published contact details.
func (s *Service) UpdateContact(ctx context.Context, details backend.ContactDetails) error {
	return s.backend.UpdateContactDetails(ctx, details)
}
