package domain

import (
	"errors"
	"fmt"
)

// Error kinds, usable with errors.Is on any of the typed errors below.
var (
	ErrFormat        = errors.New("invalid identifier format")
	ErrCitationParse = errors.New("unparseable citation")
	ErrMissingField  = errors.New("missing field")
	ErrFetch         = errors.New("fetch failed")
	ErrValidation    = errors.New("validation failed")
)

// FormatError reports an identifier that fails lexical validation.
type FormatError struct {
	Kind  IdentifierKind
	Input string
}

func (e *FormatError) Error() string {
	switch e.Kind {
	case KindPMCID:
		return fmt.Sprintf("invalid PMCID %q: format should follow PMCXXXXXXX", e.Input)
	default:
		return fmt.Sprintf("invalid PMID %q: format should follow XXXXXXXX", e.Input)
	}
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// CitationParseError reports a citation fragment matching neither grammar.
type CitationParseError struct {
	Fragment string
	Reason   string
}

func (e *CitationParseError) Error() string {
	return fmt.Sprintf("parse citation %q: %s", e.Fragment, e.Reason)
}

func (e *CitationParseError) Unwrap() error { return ErrCitationParse }

// MissingFieldError reports a required node that is absent or blank.
type MissingFieldError struct {
	Field    string
	Selector string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing %s (selector %q)", e.Field, e.Selector)
}

func (e *MissingFieldError) Unwrap() error { return ErrMissingField }

// FetchError reports a transport failure or a non-success HTTP status.
type FetchError struct {
	URL        string
	StatusCode int
	Snippet    string
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d body: %s", e.URL, e.StatusCode, e.Snippet)
}

func (e *FetchError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrFetch, e.Err}
	}
	return []error{ErrFetch}
}

// ValidationError reports an assembly-time invariant violation.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("invalid %s: must not be empty", e.Field)
}

func (e *ValidationError) Unwrap() []error {
	if e.Err != nil {
		return []error{ErrValidation, e.Err}
	}
	return []error{ErrValidation}
}
