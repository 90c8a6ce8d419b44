// Package sections models the section map produced by the upstream
// sectionizer: an ordered set of named report sections with page ranges,
// plus the per-section extraction specs the orchestrator prompts with.
package sections

import (
	"fmt"
)

// PageRange is an inclusive 1-based page span within a document.
type PageRange struct {
	First int `json:"first"`
	Last  int `json:"last"`
}

// Pages expands the range into an ordered page number slice.
func (r PageRange) Pages() []int {
	if r.Last < r.First {
		return nil
	}
	pages := make([]int, 0, r.Last-r.First+1)
	for p := r.First; p <= r.Last; p++ {
		pages = append(pages, p)
	}
	return pages
}

// Section is one named region of a document. Subsections are carried for
// provenance but extraction prompts target top-level sections.
type Section struct {
	Name        string    `json:"name"`
	Pages       PageRange `json:"pages"`
	Subsections []Section `json:"subsections,omitempty"`
}

// Map is the ordered section collection for one document. It is produced
// externally and consumed read-only.
type Map struct {
	Sections []Section `json:"sections"`
}

// Names returns the top-level section names in map order.
func (m Map) Names() []string {
	names := make([]string, len(m.Sections))
	for i, s := range m.Sections {
		names[i] = s.Name
	}
	return names
}

// Normalized returns a copy of the map with canonical top-level section
// names, so sectionizer headings like "Balance Sheet" key the same specs
// and prompts as "balance_sheet".
func (m Map) Normalized() Map {
	out := Map{Sections: make([]Section, len(m.Sections))}
	copy(out.Sections, m.Sections)
	for i := range out.Sections {
		out.Sections[i].Name = Normalize(out.Sections[i].Name)
	}
	return out
}

// Validate checks that the map is non-empty, section names are unique and
// non-blank, and page ranges are sane.
func (m Map) Validate() error {
	if len(m.Sections) == 0 {
		return fmt.Errorf("section map is empty")
	}

	seen := make(map[string]struct{}, len(m.Sections))
	for _, s := range m.Sections {
		if s.Name == "" {
			return fmt.Errorf("section with blank name")
		}
		if _, dup := seen[s.Name]; dup {
			return fmt.Errorf("duplicate section %q", s.Name)
		}
		seen[s.Name] = struct{}{}

		if s.Pages.First < 1 || s.Pages.Last < s.Pages.First {
			return fmt.Errorf("section %q: invalid page range %d-%d", s.Name, s.Pages.First, s.Pages.Last)
		}
	}

	return nil
}
