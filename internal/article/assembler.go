// Package article turns raw extracted fields into validated PubmedArticle records.
package article

import (
	"strings"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/samvad-hq/pubmed-buddy/internal/extract"
	"github.com/samvad-hq/pubmed-buddy/internal/identifier"
)

// Assemble validates f and builds the article record. Identifier failures are
// reported as a ValidationError wrapping the underlying FormatError.
func Assemble(f extract.Fields) (domain.PubmedArticle, error) {
	pmid, err := identifier.ValidatePMID(f.PMID)
	if err != nil {
		return domain.PubmedArticle{}, &domain.ValidationError{Field: "pmid", Err: err}
	}
	pmcid, err := identifier.ValidatePMCID(f.PMCID)
	if err != nil {
		return domain.PubmedArticle{}, &domain.ValidationError{Field: "pmcid", Err: err}
	}

	title := strings.TrimSpace(f.Title)
	if title == "" {
		return domain.PubmedArticle{}, &domain.ValidationError{Field: "title"}
	}
	cit := f.Citation
	cit.Journal = strings.TrimSpace(cit.Journal)
	if cit.Journal == "" {
		return domain.PubmedArticle{}, &domain.ValidationError{Field: "journal"}
	}
	cit.DOI = strings.TrimSpace(cit.DOI)
	if cit.DOI == "" {
		return domain.PubmedArticle{}, &domain.ValidationError{Field: "doi"}
	}

	authors := make([]string, 0, len(f.Authors))
	for _, a := range f.Authors {
		if a = strings.TrimSpace(a); a != "" {
			authors = append(authors, a)
		}
	}
	if len(authors) == 0 {
		return domain.PubmedArticle{}, &domain.ValidationError{Field: "authors"}
	}

	return domain.PubmedArticle{
		Article: domain.Article{
			Title:    title,
			Authors:  authors,
			Citation: cit,
			Abstract: f.Abstract,
		},
		PMCID: pmcid,
		PMID:  pmid,
	}, nil
}
