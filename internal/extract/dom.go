package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

// Placeholder is returned by OptionalText when the targeted node is absent.
const Placeholder = "Text not available"

// Query targets descendants by tag name and, optionally, an id or a class.
// ID takes precedence over Class when both are set.
type Query struct {
	Tag   string
	Class string
	ID    string
}

// Selector renders the query as a CSS selector. Attribute selectors are used so
// that ids containing dots (e.g. "abstract-a.ab.b.r") need no escaping.
func (q Query) Selector() string {
	tag := q.Tag
	if tag == "" {
		tag = "*"
	}
	switch {
	case q.ID != "":
		return fmt.Sprintf(`%s[id=%q]`, tag, q.ID)
	case q.Class != "":
		return fmt.Sprintf(`%s[class~=%q]`, tag, q.Class)
	default:
		return tag
	}
}

// Parse builds a document tree from raw markup.
func Parse(raw []byte) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	return doc, nil
}

// Node returns the first matching descendant. The selection is empty when
// nothing matches; callers check Length() where absence matters.
func Node(parent *goquery.Selection, q Query) *goquery.Selection {
	return parent.Find(q.Selector()).First()
}

// Nodes returns every matching descendant in document order.
func Nodes(parent *goquery.Selection, q Query) []*goquery.Selection {
	var out []*goquery.Selection
	parent.Find(q.Selector()).Each(func(_ int, sel *goquery.Selection) {
		out = append(out, sel)
	})
	return out
}

// Texts returns the trimmed, non-empty text of every matching descendant.
func Texts(parent *goquery.Selection, q Query) []string {
	var out []string
	for _, sel := range Nodes(parent, q) {
		if text := cleanText(sel.Text()); text != "" {
			out = append(out, text)
		}
	}
	return out
}

// OptionalText returns the trimmed text of the first match, or Placeholder.
func OptionalText(parent *goquery.Selection, q Query) string {
	node := Node(parent, q)
	if node.Length() == 0 {
		return Placeholder
	}
	return cleanText(node.Text())
}

// RequiredText returns the trimmed text of the first match or a MissingFieldError
// when the node is absent or blank.
func RequiredText(parent *goquery.Selection, field string, q Query) (string, error) {
	node := Node(parent, q)
	if node.Length() == 0 {
		return "", missing(field, q.Selector())
	}
	text := cleanText(node.Text())
	if text == "" {
		return "", missing(field, q.Selector())
	}
	return text, nil
}

// RequiredNode returns the first match or a MissingFieldError.
func RequiredNode(parent *goquery.Selection, field string, q Query) (*goquery.Selection, error) {
	node := Node(parent, q)
	if node.Length() == 0 {
		return nil, missing(field, q.Selector())
	}
	return node, nil
}

func missing(field, selector string) error {
	return &domain.MissingFieldError{Field: field, Selector: selector}
}

// paragraphsOrPlaceholder joins the paragraphs of region with blank lines.
func paragraphsOrPlaceholder(region *goquery.Selection) string {
	if region.Length() == 0 {
		return Placeholder
	}
	paras := Texts(region, Query{Tag: "p"})
	if len(paras) == 0 {
		return Placeholder
	}
	return strings.Join(paras, "\n\n")
}

// cleanText trims and collapses internal whitespace runs.
func cleanText(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// normalizeDOI strips the "doi:" label and trailing period the pages render around a DOI.
func normalizeDOI(raw string) string {
	doi := strings.TrimSpace(raw)
	if len(doi) >= 4 && strings.EqualFold(doi[:4], "doi:") {
		doi = strings.TrimSpace(doi[4:])
	}
	return strings.TrimSuffix(doi, ".")
}
