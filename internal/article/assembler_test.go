package article

import (
	"errors"
	"testing"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/samvad-hq/pubmed-buddy/internal/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validFields() extract.Fields {
	article, issue := 39, 2
	return extract.Fields{
		Title:   "Single-cell atlas of things",
		Authors: []string{"Steve Jobs", "Ada Lovelace"},
		Citation: domain.Citation{
			Journal:         "Nat Methods",
			PublicationDate: domain.PublicationDate{Year: 2024, Month: "Jan"},
			DOI:             "10.1000/xyz",
			ArticleNum:      &article,
			IssueNum:        &issue,
			Pages:           &domain.PageRange{Start: 123, End: 145},
		},
		PMCID:    "PMC1234567",
		PMID:     "12345678",
		Abstract: "Body.",
	}
}

func TestAssemble(t *testing.T) {
	f := validFields()
	got, err := Assemble(f)
	require.NoError(t, err)

	assert.Equal(t, "12345678", got.PMID.Value)
	assert.Equal(t, domain.KindPMID, got.PMID.Kind)
	assert.Equal(t, "PMC1234567", got.PMCID.Value)
	assert.Equal(t, domain.KindPMCID, got.PMCID.Kind)
	assert.Equal(t, []string{"Steve Jobs", "Ada Lovelace"}, got.Authors)
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/12345678/", got.URL())

	// The record must not share the caller's author slice.
	f.Authors[0] = "Someone Else"
	assert.Equal(t, "Steve Jobs", got.Authors[0])
}

func TestAssembleKeepsPlaceholderAbstract(t *testing.T) {
	f := validFields()
	f.Abstract = extract.Placeholder
	got, err := Assemble(f)
	require.NoError(t, err)
	assert.Equal(t, extract.Placeholder, got.Abstract)
}

func TestAssembleRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*extract.Fields)
		field  string
		format bool
	}{
		{name: "bad pmid", mutate: func(f *extract.Fields) { f.PMID = "1234" }, field: "pmid", format: true},
		{name: "bad pmcid", mutate: func(f *extract.Fields) { f.PMCID = "12345678" }, field: "pmcid", format: true},
		{name: "blank title", mutate: func(f *extract.Fields) { f.Title = "  " }, field: "title"},
		{name: "no journal", mutate: func(f *extract.Fields) { f.Citation.Journal = "" }, field: "journal"},
		{name: "no doi", mutate: func(f *extract.Fields) { f.Citation.DOI = "" }, field: "doi"},
		{name: "no authors", mutate: func(f *extract.Fields) { f.Authors = nil }, field: "authors"},
		{name: "blank authors", mutate: func(f *extract.Fields) { f.Authors = []string{" ", ""} }, field: "authors"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := validFields()
			tt.mutate(&f)

			_, err := Assemble(f)
			var ve *domain.ValidationError
			require.True(t, errors.As(err, &ve))
			assert.Equal(t, tt.field, ve.Field)
			assert.ErrorIs(t, err, domain.ErrValidation)
			assert.Equal(t, tt.format, errors.Is(err, domain.ErrFormat))
		})
	}
}
