package extract

import (
	"errors"
	"testing"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testPMIDRoot  = "https://pubmed.ncbi.nlm.nih.gov"
	testPMCIDRoot = "https://www.ncbi.nlm.nih.gov/pmc/articles/"
)

func TestRoute(t *testing.T) {
	tests := []struct {
		name    string
		locator string
		layout  Layout
		url     string
		id      string
	}{
		{
			name:    "url is fetched as-is",
			locator: "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1234567/",
			layout:  LayoutFullText,
			url:     "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1234567/",
		},
		{
			name:    "pmcid",
			locator: "PMC1234567",
			layout:  LayoutFullText,
			url:     "https://www.ncbi.nlm.nih.gov/pmc/articles/PMC1234567/",
			id:      "PMC1234567",
		},
		{
			name:    "pmid",
			locator: "12345678",
			layout:  LayoutOverview,
			url:     "https://pubmed.ncbi.nlm.nih.gov/12345678/",
			id:      "12345678",
		},
		{
			name:    "pmid with surrounding whitespace",
			locator: "  12345678\n",
			layout:  LayoutOverview,
			url:     "https://pubmed.ncbi.nlm.nih.gov/12345678/",
			id:      "12345678",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			target, err := Route(tt.locator, testPMIDRoot, testPMCIDRoot)
			require.NoError(t, err)
			assert.Equal(t, tt.layout, target.Layout)
			assert.Equal(t, tt.url, target.URL)
			assert.Equal(t, tt.id, target.ID.Value)
		})
	}
}

func TestRouteRejectsMalformedLocators(t *testing.T) {
	tests := []struct {
		locator string
		kind    domain.IdentifierKind
	}{
		{locator: "3891GH12", kind: domain.KindPMID},
		{locator: "PMC12", kind: domain.KindPMCID},
		{locator: "", kind: domain.KindPMID},
	}
	for _, tt := range tests {
		_, err := Route(tt.locator, testPMIDRoot, testPMCIDRoot)
		var fe *domain.FormatError
		require.True(t, errors.As(err, &fe), tt.locator)
		assert.Equal(t, tt.kind, fe.Kind)
	}
}

func TestLayoutString(t *testing.T) {
	assert.Equal(t, "fulltext", LayoutFullText.String())
	assert.Equal(t, "overview", LayoutOverview.String())
	assert.Equal(t, "layout(9)", Layout(9).String())
}
