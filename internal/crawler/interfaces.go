package crawler

import (
	"context"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

// ArticleFetcher resolves locators into assembled articles.
type ArticleFetcher interface {
	FetchArticle(ctx context.Context, locator string) (domain.PubmedArticle, error)
	FetchAll(ctx context.Context, locators []string, concurrency int) ([]domain.PubmedArticle, error)
}

var _ ArticleFetcher = (*Service)(nil)
