// Package citation parses the free-text citation fragments rendered on PubMed
// and PMC article pages ("2024 Jan;39(2):123-145", "2024 Jan 15").
package citation

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

const months = `Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec`

var (
	// year, month, optional day, anything up to ';', article number, (issue), start page, end page.
	fullRe = regexp.MustCompile(`(\d{4})\s(` + months + `)\b(?:\s(\d{1,2})\b)?[^;]*;\s?(\d+)\((\d+)\):\s?(\d+)\D(\d+)`)
	dateRe = regexp.MustCompile(`(\d{4})\s(` + months + `)\b(?:\s(\d{1,2})\b)?`)
)

// Result is the structured form of a citation fragment. ArticleNum, IssueNum and
// Pages are nil when only the date grammar matched.
type Result struct {
	Date       domain.PublicationDate
	ArticleNum *int
	IssueNum   *int
	Pages      *domain.PageRange
}

// Parse tries the full citation grammar and falls back to the date-only grammar.
func Parse(fragment string) (Result, error) {
	text := strings.TrimSpace(fragment)

	if m := fullRe.FindStringSubmatch(text); m != nil {
		date, err := buildDate(m[1], m[2], m[3])
		if err != nil {
			return Result{}, parseError(fragment, err.Error())
		}
		nums, err := atoiAll(m[4], m[5], m[6], m[7])
		if err != nil {
			return Result{}, parseError(fragment, err.Error())
		}
		return Result{
			Date:       date,
			ArticleNum: &nums[0],
			IssueNum:   &nums[1],
			Pages:      &domain.PageRange{Start: nums[2], End: nums[3]},
		}, nil
	}

	return ParseDate(fragment)
}

// ParseDate applies only the date grammar (year and month abbreviation, optional day).
func ParseDate(fragment string) (Result, error) {
	text := strings.TrimSpace(fragment)

	m := dateRe.FindStringSubmatch(text)
	if m == nil {
		return Result{}, parseError(fragment, "no publication date with a Jan..Dec month found")
	}
	date, err := buildDate(m[1], m[2], m[3])
	if err != nil {
		return Result{}, parseError(fragment, err.Error())
	}
	return Result{Date: date}, nil
}

// Citation combines a parse result with the journal and DOI extracted separately.
func (r Result) Citation(journal, doi string) domain.Citation {
	return domain.Citation{
		Journal:         journal,
		PublicationDate: r.Date,
		DOI:             doi,
		ArticleNum:      r.ArticleNum,
		IssueNum:        r.IssueNum,
		Pages:           r.Pages,
	}
}

func buildDate(year, month, day string) (domain.PublicationDate, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return domain.PublicationDate{}, err
	}
	date := domain.PublicationDate{Year: y, Month: month}
	if day != "" {
		d, err := strconv.Atoi(day)
		if err != nil {
			return domain.PublicationDate{}, err
		}
		date.Day = d
	}
	return date, nil
}

func atoiAll(values ...string) ([]int, error) {
	out := make([]int, len(values))
	for i, v := range values {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func parseError(fragment, reason string) error {
	return &domain.CitationParseError{Fragment: fragment, Reason: reason}
}
