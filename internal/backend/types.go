// Package backend is the HTTP client for the remote school content store: the
// external service owning content sections, the gallery, enquiries, contact
// details and admin authentication. This process never owns that data; it
// only reads snapshots and forwards edits.
package backend

// GalleryItem is a categorized gallery photo. The image reference is a
// directly fetchable URL resolved by the remote store; uploads happen out of
// band.
type GalleryItem struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Category string `json:"category"`
	Active   bool   `json:"isActive"`
	ImageURL string `json:"imageUrl"`
}

// Enquiry is one submitted admission or general enquiry. SubmittedAt is unix
// milliseconds, non-decreasing per store; Read flips false to true exactly
// once.
type Enquiry struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Subject     string `json:"subject"`
	EnquiryType string `json:"enquiryType"`
	Message     string `json:"message"`
	SubmittedAt int64  `json:"submittedAt"`
	Read        bool   `json:"isRead"`
}

// ContactDetails is the single contact record shown on the contact page.
type ContactDetails struct {
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	DisplayMap bool   `json:"displayMap"`
	MapEmbed   string `json:"mapEmbed"`
}
