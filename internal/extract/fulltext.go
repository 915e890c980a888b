package extract

import (
	"fmt"

	"github.com/PuerkitoBio/goquery"
	"github.com/samvad-hq/pubmed-buddy/internal/citation"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

// FullText extracts PMC article pages. On this template the "current id" span
// pair carries the PMCID and the pmid-labelled anchor carries the PMID.
type FullText struct{}

var (
	ftMain       = Query{Tag: "div", ID: "mc"}
	ftCitation   = Query{Tag: "div", Class: "citation-default"}
	ftPart1      = Query{Tag: "div", Class: "part1"}
	ftPart2      = Query{Tag: "div", Class: "part2"}
	ftJournal    = Query{Tag: "span"}
	ftDOI        = Query{Tag: "a"}
	ftIDs        = Query{Tag: "div", Class: "fm-ids"}
	ftPMCIDBlock = Query{Tag: "div", Class: "fm-citation-pmcid"}
	ftPMIDBlock  = Query{Tag: "div", Class: "fm-citation-pmid"}
	ftTitle      = Query{Tag: "h1", Class: "content-title"}
	ftAuthors    = Query{Tag: "div", Class: "fm-author"}
	ftAbstract   = Query{Tag: "div", ID: "abstract-a.ab.b.r"}
)

func (FullText) Layout() Layout { return LayoutFullText }

func (FullText) Extract(doc *goquery.Document) (Fields, error) {
	root := doc.Selection

	cit, err := extractFullTextCitation(root)
	if err != nil {
		return Fields{}, err
	}

	pmcid, pmid, err := extractFullTextIDs(root)
	if err != nil {
		return Fields{}, err
	}

	title, err := RequiredText(root, "title", ftTitle)
	if err != nil {
		return Fields{}, err
	}

	var authors []string
	if authorsNode := Node(root, ftAuthors); authorsNode.Length() > 0 {
		authors = Texts(authorsNode, Query{Tag: "a"})
	}

	return Fields{
		Title:    title,
		Authors:  authors,
		Citation: cit,
		PMCID:    pmcid,
		PMID:     pmid,
		Abstract: paragraphsOrPlaceholder(Node(root, ftAbstract)),
	}, nil
}

func extractFullTextCitation(root *goquery.Selection) (cit domain.Citation, err error) {
	main, err := RequiredNode(root, "citation container", ftMain)
	if err != nil {
		return cit, err
	}
	block, err := RequiredNode(main, "citation block", ftCitation)
	if err != nil {
		return cit, err
	}
	part1, err := RequiredNode(block, "citation fields", ftPart1)
	if err != nil {
		return cit, err
	}
	fragment := cleanText(part1.Text())
	if fragment == "" {
		return cit, missing("citation fields", ftPart1.Selector())
	}
	journal, err := RequiredText(part1, "journal", ftJournal)
	if err != nil {
		return cit, err
	}
	part2, err := RequiredNode(block, "doi block", ftPart2)
	if err != nil {
		return cit, err
	}
	doi, err := RequiredText(part2, "doi", ftDOI)
	if err != nil {
		return cit, err
	}

	parsed, err := citation.Parse(fragment)
	if err != nil {
		return cit, err
	}
	return parsed.Citation(journal, normalizeDOI(doi)), nil
}

func extractFullTextIDs(root *goquery.Selection) (pmcid, pmid string, err error) {
	ids, err := RequiredNode(root, "identifiers block", ftIDs)
	if err != nil {
		return "", "", err
	}

	pmcidBlock, err := RequiredNode(ids, "pmcid", ftPMCIDBlock)
	if err != nil {
		return "", "", err
	}
	// The first span is the "PMCID:" label; the value is its next span sibling.
	value := pmcidBlock.Find("span").First().NextAllFiltered("span").First()
	pmcid = cleanText(value.Text())
	if value.Length() == 0 || pmcid == "" {
		return "", "", missing("pmcid", fmt.Sprintf("%s span + span", ftPMCIDBlock.Selector()))
	}

	pmidBlock, err := RequiredNode(ids, "pmid", ftPMIDBlock)
	if err != nil {
		return "", "", err
	}
	pmid, err = RequiredText(pmidBlock, "pmid", Query{Tag: "a"})
	if err != nil {
		return "", "", err
	}
	return pmcid, pmid, nil
}
