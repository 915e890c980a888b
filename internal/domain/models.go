package domain

// Domain contains core models and interfaces.

import (
	"fmt"
	"strings"
)

// PubMedRoot is the base of the canonical article URL derived from a PMID.
const PubMedRoot = "https://pubmed.ncbi.nlm.nih.gov"

// IdentifierKind tags an Identifier as a PMID or a PMCID.
type IdentifierKind string

const (
	KindPMID  IdentifierKind = "PMID"
	KindPMCID IdentifierKind = "PMCID"
)

// Identifier is a validated PubMed or PubMed Central identifier.
// Values are produced by the identifier package and never mutated afterwards.
type Identifier struct {
	Kind  IdentifierKind
	Value string
}

func (id Identifier) String() string { return id.Value }

// IsZero reports whether the identifier was never set.
func (id Identifier) IsZero() bool { return id.Value == "" }

// PublicationDate keeps the month as the three-letter abbreviation used on the source pages.
// Day is zero when the page does not expose it.
type PublicationDate struct {
	Year  int
	Month string
	Day   int
}

type PageRange struct {
	Start int
	End   int
}

// Span returns the number of pages between start and end.
func (p PageRange) Span() int { return p.End - p.Start }

// Citation holds journal level metadata. ArticleNum, IssueNum and Pages are nil
// for pages that do not render them (the PubMed overview layout).
type Citation struct {
	Journal         string
	PublicationDate PublicationDate
	DOI             string
	ArticleNum      *int
	IssueNum        *int
	Pages           *PageRange
}

type Article struct {
	Title    string
	Authors  []string
	Citation Citation
	Abstract string
}

// PubmedArticle is the record produced for every successfully extracted page.
type PubmedArticle struct {
	Article
	PMCID Identifier
	PMID  Identifier
}

// MappingKeys lists the keys of ToMapping in display order.
var MappingKeys = []string{
	"title",
	"authors",
	"pmcid",
	"pmid",
	"journal",
	"pub_month",
	"pub_year",
	"article_num",
	"issue_num",
	"doi",
	"url",
}

// URL returns the canonical PubMed URL of the article.
func (a PubmedArticle) URL() string {
	return fmt.Sprintf("%s/%s/", PubMedRoot, a.PMID.Value)
}

// FirstAuthor returns the first listed author, or an empty string.
func (a PubmedArticle) FirstAuthor() string {
	if len(a.Authors) == 0 {
		return ""
	}
	return a.Authors[0]
}

// ToMapping flattens the article into the key/value view consumed by table
// rendering, exports and publishers. Absent optional fields map to nil.
func (a PubmedArticle) ToMapping() map[string]any {
	authors := make([]string, len(a.Authors))
	copy(authors, a.Authors)

	m := map[string]any{
		"title":       a.Title,
		"authors":     authors,
		"pmcid":       a.PMCID.Value,
		"pmid":        a.PMID.Value,
		"journal":     a.Citation.Journal,
		"pub_month":   a.Citation.PublicationDate.Month,
		"pub_year":    a.Citation.PublicationDate.Year,
		"article_num": nil,
		"issue_num":   nil,
		"doi":         a.Citation.DOI,
		"url":         a.URL(),
	}
	if a.Citation.ArticleNum != nil {
		m["article_num"] = *a.Citation.ArticleNum
	}
	if a.Citation.IssueNum != nil {
		m["issue_num"] = *a.Citation.IssueNum
	}
	return m
}

// MappingRow renders ToMapping as strings in MappingKeys order.
// Authors are joined with ", " and nil values become empty strings.
func (a PubmedArticle) MappingRow() []string {
	m := a.ToMapping()
	row := make([]string, 0, len(MappingKeys))
	for _, key := range MappingKeys {
		switch v := m[key].(type) {
		case nil:
			row = append(row, "")
		case []string:
			row = append(row, strings.Join(v, ", "))
		default:
			row = append(row, fmt.Sprint(v))
		}
	}
	return row
}
