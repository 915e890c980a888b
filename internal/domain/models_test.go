package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleArticle() PubmedArticle {
	num, issue := 39, 2
	return PubmedArticle{
		Article: Article{
			Title:   "Title",
			Authors: []string{"Steve Jobs", "Ada Lovelace"},
			Citation: Citation{
				Journal:         "Nat Methods",
				PublicationDate: PublicationDate{Year: 2024, Month: "Jan", Day: 6},
				DOI:             "10.1000/xyz",
				ArticleNum:      &num,
				IssueNum:        &issue,
				Pages:           &PageRange{Start: 123, End: 145},
			},
		},
		PMCID: Identifier{Kind: KindPMCID, Value: "PMC1234567"},
		PMID:  Identifier{Kind: KindPMID, Value: "12345678"},
	}
}

func TestToMapping(t *testing.T) {
	m := sampleArticle().ToMapping()

	require.Len(t, m, len(MappingKeys))
	for _, key := range MappingKeys {
		assert.Contains(t, m, key)
	}
	assert.Equal(t, "Title", m["title"])
	assert.Equal(t, []string{"Steve Jobs", "Ada Lovelace"}, m["authors"])
	assert.Equal(t, "PMC1234567", m["pmcid"])
	assert.Equal(t, "12345678", m["pmid"])
	assert.Equal(t, "Jan", m["pub_month"])
	assert.Equal(t, 2024, m["pub_year"])
	assert.Equal(t, 39, m["article_num"])
	assert.Equal(t, 2, m["issue_num"])
	assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/12345678/", m["url"])
}

func TestToMappingAbsentOptionalsAreNil(t *testing.T) {
	a := sampleArticle()
	a.Citation.ArticleNum = nil
	a.Citation.IssueNum = nil
	a.Citation.Pages = nil

	m := a.ToMapping()
	assert.Nil(t, m["article_num"])
	assert.Nil(t, m["issue_num"])
}

func TestToMappingCopiesAuthors(t *testing.T) {
	a := sampleArticle()
	m := a.ToMapping()
	m["authors"].([]string)[0] = "Changed"
	assert.Equal(t, "Steve Jobs", a.Authors[0])
}

func TestMappingRow(t *testing.T) {
	a := sampleArticle()
	a.Citation.IssueNum = nil

	row := a.MappingRow()
	require.Len(t, row, len(MappingKeys))
	assert.Equal(t, "Steve Jobs, Ada Lovelace", row[1])
	assert.Equal(t, "2024", row[6])
	assert.Equal(t, "39", row[7])
	assert.Equal(t, "", row[8])
}

func TestPageRangeSpan(t *testing.T) {
	assert.Equal(t, 22, PageRange{Start: 123, End: 145}.Span())
	assert.Equal(t, 0, PageRange{Start: 7, End: 7}.Span())
}

func TestFirstAuthor(t *testing.T) {
	assert.Equal(t, "Steve Jobs", sampleArticle().FirstAuthor())
	assert.Equal(t, "", PubmedArticle{}.FirstAuthor())
}
