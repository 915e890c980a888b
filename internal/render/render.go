// Package render prints articles as a summary table or as abstract panels.
package render

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/olekukonko/tablewriter"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

const (
	tableColWidth    = 40
	abstractColWidth = 72
)

// TableColumns are the headers of the summary table.
var TableColumns = []string{"#", "pmid", "title", "authors", "journal"}

// FormatName abbreviates "Steve Jobs" to "Jobs S". Single-word names are returned unchanged.
func FormatName(name string) string {
	parts := strings.Fields(name)
	if len(parts) < 2 {
		return strings.TrimSpace(name)
	}
	first, _ := utf8.DecodeRuneInString(parts[0])
	return parts[len(parts)-1] + " " + string(unicode.ToUpper(first))
}

// wrapCell wraps every line of s to width. Explicit line breaks, including the
// blank line between abstract paragraphs, are kept; tables render with
// auto-wrap off so they are not re-flowed.
func wrapCell(s string, width int) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			out = append(out, "")
			continue
		}
		wrapped, _ := tablewriter.WrapString(line, width)
		out = append(out, wrapped...)
	}
	return strings.Join(out, "\n")
}

// Table writes one row per article. Row values come from the flat mapping so
// that the table shows exactly what exports and publishers see.
func Table(w io.Writer, articles []domain.PubmedArticle) error {
	t := tablewriter.NewWriter(w)
	t.SetHeader(TableColumns)
	t.SetAutoWrapText(false)
	t.SetRowLine(true)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.SetCaption(true, "PubMed Articles")

	for i, a := range articles {
		m := a.ToMapping()
		authors, _ := m["authors"].([]string)
		short := make([]string, 0, len(authors))
		for _, name := range authors {
			short = append(short, FormatName(name))
		}
		t.Append([]string{
			strconv.Itoa(i + 1),
			fmt.Sprintf("%v\n%v", m["pmid"], m["url"]),
			wrapCell(fmt.Sprint(m["title"]), tableColWidth),
			wrapCell(strings.Join(short, ", "), tableColWidth),
			wrapCell(fmt.Sprint(m["journal"]), tableColWidth),
		})
	}

	t.Render()
	return nil
}

// Abstracts picks the single-article panel for one article and the
// side-by-side layout otherwise.
func Abstracts(w io.Writer, articles []domain.PubmedArticle) error {
	switch len(articles) {
	case 0:
		return fmt.Errorf("no articles to render")
	case 1:
		return SingleAbstract(w, articles[0])
	default:
		return MultipleAbstracts(w, articles)
	}
}

// SingleAbstract renders the title with the full author list, the abstract
// and the DOI as a caption.
func SingleAbstract(w io.Writer, a domain.PubmedArticle) error {
	t := tablewriter.NewWriter(w)
	t.SetAutoFormatHeaders(false)
	t.SetHeader([]string{wrapCell(a.Title, abstractColWidth)})
	t.SetAutoWrapText(false)
	t.SetRowLine(true)
	t.SetAlignment(tablewriter.ALIGN_LEFT)
	t.Append([]string{wrapCell(strings.Join(a.Authors, ", "), abstractColWidth)})
	t.Append([]string{wrapCell(a.Abstract, abstractColWidth)})
	t.SetCaption(true, "doi: "+a.Citation.DOI)
	t.Render()
	return nil
}

// MultipleAbstracts renders one row per article: the upper-cased title with
// "<first author> et al." on the left and the abstract on the right.
func MultipleAbstracts(w io.Writer, articles []domain.PubmedArticle) error {
	t := tablewriter.NewWriter(w)
	t.SetHeader([]string{"title", "abstract"})
	t.SetAutoWrapText(false)
	t.SetRowLine(true)
	t.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, a := range articles {
		left := strings.ToUpper(a.Title) + "\n\n" + a.FirstAuthor() + " et al."
		t.Append([]string{wrapCell(left, abstractColWidth), wrapCell(a.Abstract, abstractColWidth)})
	}
	t.Render()
	return nil
}
