package content

import (
	"sort"
	"strings"
)

// Merger resolves section lookups against a fixed default catalog and a
// remote snapshot passed per call. Both resolve paths are pure functions of
// their inputs; the merger itself holds no mutable state.
type Merger struct {
	defaults []Section
	byID     map[string]Section
}

// NewMerger builds a merger over the given default catalog, preserving
// catalog order for prefix lookups.
func NewMerger(defaults []Section) *Merger {
	byID := make(map[string]Section, len(defaults))
	ordered := make([]Section, len(defaults))
	copy(ordered, defaults)
	for _, s := range ordered {
		byID[s.ID] = s
	}
	return &Merger{defaults: ordered, byID: byID}
}

// Resolve returns the section the public site should display for id: a
// published remote edit wins, an unpublished one never shadows the default,
// and an unknown id yields an empty placeholder.
func (m *Merger) Resolve(id string, remote []Section) Section {
	for _, s := range remote {
		if s.ID == id && s.Published {
			return s
		}
	}
	if s, ok := m.byID[id]; ok {
		return s
	}
	return Section{ID: id, Published: true}
}

// ResolveByPrefix returns the sections for one page. Published remote
// sections matching the prefix fully shadow the defaults for that prefix;
// defaults are only used when no published remote section matches. The two
// sets are never mixed.
func (m *Merger) ResolveByPrefix(prefix string, remote []Section) []Section {
	var matched []Section
	for _, s := range remote {
		if strings.HasPrefix(s.ID, prefix) && s.Published {
			matched = append(matched, s)
		}
	}
	if len(matched) > 0 {
		return matched
	}
	var out []Section
	for _, s := range m.defaults {
		if strings.HasPrefix(s.ID, prefix) {
			out = append(out, s)
		}
	}
	return out
}

// MergeForEditing builds the admin editor's view: the union of default and
// remote ids. A remote section wins over its default counterpart and is
// tagged SourceRemote; defaults never saved remotely are tagged SourceDefault
// so the editor still offers them. Unpublished remote sections are included,
// since drafts are exactly what the editor exists to show. Output is sorted
// by title for stable display.
func (m *Merger) MergeForEditing(remote []Section) []EditorSection {
	remoteByID := make(map[string]Section, len(remote))
	for _, s := range remote {
		remoteByID[s.ID] = s
	}

	out := make([]EditorSection, 0, len(m.defaults)+len(remote))
	seen := make(map[string]struct{}, len(m.defaults))
	for _, d := range m.defaults {
		seen[d.ID] = struct{}{}
		if r, ok := remoteByID[d.ID]; ok {
			out = append(out, EditorSection{Section: r, Origin: SourceRemote})
			continue
		}
		out = append(out, EditorSection{Section: d, Origin: SourceDefault})
	}
	for _, r := range remote {
		if _, ok := seen[r.ID]; ok {
			continue
		}
		out = append(out, EditorSection{Section: r, Origin: SourceRemote})
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Title < out[j].Title
	})
	return out
}
