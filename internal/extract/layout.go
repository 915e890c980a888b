package extract

import (
	"fmt"
	"strings"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/samvad-hq/pubmed-buddy/internal/identifier"
)

// Layout identifies one of the two known article page templates.
type Layout int

const (
	// LayoutFullText is the PMC article page with the complete citation block.
	LayoutFullText Layout = iota + 1
	// LayoutOverview is the PubMed abstract page.
	LayoutOverview
)

func (l Layout) String() string {
	switch l {
	case LayoutFullText:
		return "fulltext"
	case LayoutOverview:
		return "overview"
	default:
		return fmt.Sprintf("layout(%d)", int(l))
	}
}

// Target is the outcome of routing a locator: where to fetch and how to parse.
type Target struct {
	Locator string
	Layout  Layout
	URL     string
	// ID is zero when the locator was a URL.
	ID domain.Identifier
}

// Route selects the layout from the form of the locator, never from page content.
// URLs are fetched as-is and parsed as FullText; "PMC" locators are validated
// PMCIDs fetched from pmcidRoot; anything else must be a PMID fetched from pmidRoot.
func Route(locator, pmidRoot, pmcidRoot string) (Target, error) {
	locator = strings.TrimSpace(locator)

	if strings.Contains(locator, "http") {
		return Target{Locator: locator, Layout: LayoutFullText, URL: locator}, nil
	}

	if identifier.HasPMCPrefix(locator) {
		id, err := identifier.ValidatePMCID(locator)
		if err != nil {
			return Target{}, err
		}
		return Target{
			Locator: locator,
			Layout:  LayoutFullText,
			URL:     joinRoot(pmcidRoot, id.Value),
			ID:      id,
		}, nil
	}

	id, err := identifier.ValidatePMID(locator)
	if err != nil {
		return Target{}, err
	}
	return Target{
		Locator: locator,
		Layout:  LayoutOverview,
		URL:     joinRoot(pmidRoot, id.Value),
		ID:      id,
	}, nil
}

func joinRoot(root, id string) string {
	return strings.TrimRight(root, "/") + "/" + id + "/"
}
