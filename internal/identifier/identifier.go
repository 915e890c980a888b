// Package identifier validates PubMed (PMID) and PubMed Central (PMCID) identifiers.
package identifier

import (
	"regexp"
	"strings"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

const pmcPrefix = "PMC"

var (
	// Unanchored: an 8 digit run embedded in a URL or pasted text is accepted.
	pmidRe  = regexp.MustCompile(`\d{8}`)
	pmcidRe = regexp.MustCompile(`^PMC\d{7}`)
)

// ValidatePMID returns the first run of 8 digits found in input.
func ValidatePMID(input string) (domain.Identifier, error) {
	match := pmidRe.FindString(input)
	if match == "" {
		return domain.Identifier{}, &domain.FormatError{Kind: domain.KindPMID, Input: input}
	}
	return domain.Identifier{Kind: domain.KindPMID, Value: match}, nil
}

// ValidatePMCID requires input to start with "PMC" followed by 7 digits.
func ValidatePMCID(input string) (domain.Identifier, error) {
	match := pmcidRe.FindString(input)
	if match == "" {
		return domain.Identifier{}, &domain.FormatError{Kind: domain.KindPMCID, Input: input}
	}
	return domain.Identifier{Kind: domain.KindPMCID, Value: match}, nil
}

// HasPMCPrefix reports whether a locator should be treated as a PMCID.
func HasPMCPrefix(locator string) bool {
	return strings.HasPrefix(locator, pmcPrefix)
}
