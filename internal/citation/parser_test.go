package citation

import (
	"testing"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFullGrammar(t *testing.T) {
	res, err := Parse("2024 Jan;39(2):123-145")
	require.NoError(t, err)

	assert.Equal(t, domain.PublicationDate{Year: 2024, Month: "Jan"}, res.Date)
	require.NotNil(t, res.ArticleNum)
	require.NotNil(t, res.IssueNum)
	require.NotNil(t, res.Pages)
	assert.Equal(t, 39, *res.ArticleNum)
	assert.Equal(t, 2, *res.IssueNum)
	assert.Equal(t, domain.PageRange{Start: 123, End: 145}, *res.Pages)
	assert.Equal(t, 22, res.Pages.Span())
}

func TestParseFullGrammarInsidePageText(t *testing.T) {
	res, err := Parse("  Nat Commun. 2024 Aug 6; 15(12): 6667-6680. Published online 2024 Aug 6.  ")
	require.NoError(t, err)

	assert.Equal(t, domain.PublicationDate{Year: 2024, Month: "Aug", Day: 6}, res.Date)
	assert.Equal(t, 15, *res.ArticleNum)
	assert.Equal(t, 12, *res.IssueNum)
	assert.Equal(t, 6667, res.Pages.Start)
	assert.Equal(t, 6680, res.Pages.End)
}

func TestParseFallsBackToDate(t *testing.T) {
	tests := []struct {
		fragment string
		want     domain.PublicationDate
	}{
		{fragment: "2024 Jan 15", want: domain.PublicationDate{Year: 2024, Month: "Jan", Day: 15}},
		{fragment: "2023 Dec", want: domain.PublicationDate{Year: 2023, Month: "Dec"}},
		{fragment: "2024 Aug 6;15(1):6667.", want: domain.PublicationDate{Year: 2024, Month: "Aug", Day: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.fragment, func(t *testing.T) {
			res, err := Parse(tt.fragment)
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.Date)
			assert.Nil(t, res.ArticleNum)
			assert.Nil(t, res.IssueNum)
			assert.Nil(t, res.Pages)
		})
	}
}

func TestParseRejectsUnknownMonth(t *testing.T) {
	for _, fragment := range []string{"2024 Xyz;1(1):1-2", "2024 January", "Jan 2024", "", "2024-01-15"} {
		_, err := Parse(fragment)
		require.Error(t, err, fragment)

		var pe *domain.CitationParseError
		require.ErrorAs(t, err, &pe)
		assert.Equal(t, fragment, pe.Fragment)
		assert.ErrorIs(t, err, domain.ErrCitationParse)
	}
}

func TestParseDateIgnoresVolumeBlock(t *testing.T) {
	res, err := ParseDate("2024 Jan;39(2):123-145")
	require.NoError(t, err)
	assert.Equal(t, domain.PublicationDate{Year: 2024, Month: "Jan"}, res.Date)
	assert.Nil(t, res.Pages)
}

func TestResultCitation(t *testing.T) {
	res, err := Parse("2024 Jan;39(2):123-145")
	require.NoError(t, err)

	c := res.Citation("Nature", "10.1000/xyz")
	assert.Equal(t, "Nature", c.Journal)
	assert.Equal(t, "10.1000/xyz", c.DOI)
	assert.Equal(t, 2024, c.PublicationDate.Year)
	assert.Equal(t, 39, *c.ArticleNum)
}
