package extract

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/pubmed-buddy/internal/citation"
)

// Overview extracts pubmed.ncbi.nlm.nih.gov summary pages. Here the
// "current-id" marker holds the PMID and the id-link anchor holds the PMCID,
// the reverse of the full-text template.
type Overview struct{}

var (
	ovPage        = Query{Tag: "div", ID: "article-page"}
	ovHeading     = Query{Tag: "header", ID: "heading"}
	ovAbstract    = Query{Tag: "div", ID: "abstract"}
	ovTitle       = Query{Tag: "h1"}
	ovJournal     = Query{Tag: "button"}
	ovDOI         = Query{Tag: "span", Class: "citation-doi"}
	ovCitation    = Query{Tag: "span", Class: "cit"}
	ovAuthorsList = Query{Tag: "div", Class: "authors-list"}
	ovAuthor      = Query{Tag: "a", Class: "full-name"}
	ovIdentifiers = Query{Tag: "ul", ID: "full-view-identifiers"}
	ovPMID        = Query{Tag: "strong", Class: "current-id"}
	ovPMCID       = Query{Tag: "a", Class: "id-link"}
)

func (Overview) Layout() Layout { return LayoutOverview }

func (Overview) Extract(doc *goquery.Document) (Fields, error) {
	page, err := RequiredNode(doc.Selection, "article page", ovPage)
	if err != nil {
		return Fields{}, err
	}
	heading, err := RequiredNode(page, "heading", ovHeading)
	if err != nil {
		return Fields{}, err
	}

	title, err := RequiredText(heading, "title", ovTitle)
	if err != nil {
		return Fields{}, err
	}
	journal, err := RequiredText(heading, "journal", ovJournal)
	if err != nil {
		return Fields{}, err
	}
	doi, err := RequiredText(heading, "doi", ovDOI)
	if err != nil {
		return Fields{}, err
	}
	fragment, err := RequiredText(heading, "citation", ovCitation)
	if err != nil {
		return Fields{}, err
	}
	parsed, err := citation.ParseDate(fragment)
	if err != nil {
		return Fields{}, err
	}

	var authors []string
	if list := Node(heading, ovAuthorsList); list.Length() > 0 {
		authors = Texts(list, ovAuthor)
	}

	ids, err := RequiredNode(heading, "identifiers", ovIdentifiers)
	if err != nil {
		return Fields{}, err
	}
	pmid, err := RequiredText(ids, "pmid", ovPMID)
	if err != nil {
		return Fields{}, err
	}
	pmcid, err := RequiredText(ids, "pmcid", ovPMCID)
	if err != nil {
		return Fields{}, err
	}

	return Fields{
		Title:    title,
		Authors:  authors,
		Citation: parsed.Citation(journal, normalizeDOI(doi)),
		PMCID:    pmcid,
		PMID:     pmid,
		Abstract: paragraphsOrPlaceholder(Node(page, ovAbstract)),
	}, nil
}
