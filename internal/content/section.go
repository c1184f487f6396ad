// Package content reconciles the bundled default page catalog with the latest
// snapshot fetched from the remote content store.
package content

// Section is one editable block of page text. IDs are path-like and unique
// across the site (page prefix + block name, e.g. "home-hero-title").
type Section struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Body      string `json:"body"`
	Published bool   `json:"isPublished"`
}

// Source identifies where the active value of a section came from.
type Source string

const (
	// SourceRemote marks a section whose value is the remote store's edit.
	SourceRemote Source = "remote"
	// SourceDefault marks a section served from the bundled catalog and not
	// yet saved remotely.
	SourceDefault Source = "default"
)

// EditorSection is a merged section annotated for the admin editor. The
// provenance tag is merge-time only and never persisted.
type EditorSection struct {
	Section
	Origin Source `json:"origin"`
}
