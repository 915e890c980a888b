package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

// Fields is the raw, unvalidated output of a layout extractor.
type Fields struct {
	Title    string
	Authors  []string
	Citation domain.Citation
	PMCID    string
	PMID     string
	Abstract string
}

// Extractor pulls article fields out of one page layout.
type Extractor interface {
	Layout() Layout
	Extract(doc *goquery.Document) (Fields, error)
}

// Registry resolves the extractor for a routed layout.
type Registry struct {
	byLayout map[Layout]Extractor
}

// NewRegistry builds a registry from the given extractors; later entries win.
func NewRegistry(extractors ...Extractor) *Registry {
	r := &Registry{byLayout: make(map[Layout]Extractor, len(extractors))}
	for _, e := range extractors {
		if e == nil {
			continue
		}
		r.byLayout[e.Layout()] = e
	}
	return r
}

// DefaultRegistry wires the two PubMed layouts.
func DefaultRegistry() *Registry {
	return NewRegistry(FullText{}, Overview{})
}

// For returns the extractor registered for layout.
func (r *Registry) For(layout Layout) (Extractor, error) {
	if r == nil {
		return nil, fmt.Errorf("extractor registry is nil")
	}
	e, ok := r.byLayout[layout]
	if !ok {
		return nil, fmt.Errorf("no extractor registered for layout %s", layout)
	}
	return e, nil
}
