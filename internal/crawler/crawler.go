package crawler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/samvad-hq/pubmed-buddy/internal/article"
	"github.com/samvad-hq/pubmed-buddy/internal/config"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/samvad-hq/pubmed-buddy/internal/extract"
	"github.com/samvad-hq/pubmed-buddy/internal/logger"
	"github.com/samvad-hq/pubmed-buddy/internal/metrics"
	"github.com/samvad-hq/pubmed-buddy/pkg/httpclient"
	"golang.org/x/sync/errgroup"
)

// Service turns locators (PMIDs, PMCIDs or URLs) into assembled articles.
type Service struct {
	client    httpclient.Client
	cfg       config.PubMed
	registry  *extract.Registry
	log       logger.Logger
	metrics   *metrics.Metrics
	bodyLimit int // bytes handed to the HTML parser
}

// Option customizes a Service.
type Option func(*Service)

// WithMetrics records per-locator outcomes on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// NewService wires a crawler. A nil registry selects the default PubMed
// extractors; a nil logger discards output.
func NewService(client httpclient.Client, cfg config.PubMed, reg *extract.Registry, log logger.Logger, opts ...Option) *Service {
	if reg == nil {
		reg = extract.DefaultRegistry()
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	s := &Service{
		client:    client,
		cfg:       cfg,
		registry:  reg,
		log:       log,
		bodyLimit: maxHTMLBodyBytes,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// FetchArticle routes, fetches, extracts and assembles a single article.
func (s *Service) FetchArticle(ctx context.Context, locator string) (domain.PubmedArticle, error) {
	if s == nil || s.client == nil {
		return domain.PubmedArticle{}, fmt.Errorf("crawler service is not initialized")
	}

	start := time.Now()
	target, err := extract.Route(locator, s.cfg.PMIDRoot, s.cfg.PMCIDRoot)
	if err != nil {
		return domain.PubmedArticle{}, err
	}

	extractor, err := s.registry.For(target.Layout)
	if err != nil {
		return domain.PubmedArticle{}, err
	}

	body, err := s.fetchPage(ctx, target.URL)
	if err != nil {
		return domain.PubmedArticle{}, err
	}

	doc, err := extract.Parse(body)
	if err != nil {
		return domain.PubmedArticle{}, err
	}

	fields, err := extractor.Extract(doc)
	if err != nil {
		return domain.PubmedArticle{}, fmt.Errorf("extract %s page %s: %w", target.Layout, target.URL, err)
	}

	art, err := article.Assemble(fields)
	if err != nil {
		return domain.PubmedArticle{}, fmt.Errorf("assemble %s: %w", locator, err)
	}

	s.metrics.RecordSuccess(target.Layout.String(), time.Since(start))
	s.log.DebugObj("article extracted", "article_result", map[string]any{
		"locator":   locator,
		"layout":    target.Layout.String(),
		"routed_id": target.ID.String(),
		"pmid":      art.PMID.Value,
		"pmcid":     art.PMCID.Value,
	})
	return art, nil
}

// FetchAll fetches every locator, skipping (and logging) the ones that fail.
// Results keep locator order regardless of concurrency. An error is returned
// only for an empty batch, when every locator failed, or when ctx ends early.
func (s *Service) FetchAll(ctx context.Context, locators []string, concurrency int) ([]domain.PubmedArticle, error) {
	if len(locators) == 0 {
		return nil, fmt.Errorf("no locators provided")
	}

	outcomes := s.runAll(ctx, locators, concurrency)

	articles := make([]domain.PubmedArticle, 0, len(locators))
	errs := make([]error, 0)
	for i, o := range outcomes {
		if o.err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", locators[i], o.err))
			s.metrics.RecordFailure(o.err)
			s.log.WarnObj("article skipped", "fetch_error", map[string]any{
				"locator": locators[i],
				"error":   o.err.Error(),
			})
			continue
		}
		articles = append(articles, o.article)
	}

	s.log.InfoObj("batch completed", "batch_result", map[string]any{
		"requested": len(locators),
		"fetched":   len(articles),
		"failed":    len(errs),
	})

	if err := ctx.Err(); err != nil {
		return articles, err
	}
	if len(articles) == 0 {
		return nil, errors.Join(errs...)
	}
	return articles, nil
}

type outcome struct {
	article domain.PubmedArticle
	err     error
}

// runAll executes one fetch per locator. Each task writes only its own slot,
// so no locking is needed and ordering follows the input.
func (s *Service) runAll(ctx context.Context, locators []string, concurrency int) []outcome {
	outcomes := make([]outcome, len(locators))

	if concurrency <= 1 {
		for i, loc := range locators {
			if err := ctx.Err(); err != nil {
				outcomes[i] = outcome{err: err}
				continue
			}
			art, err := s.FetchArticle(ctx, loc)
			outcomes[i] = outcome{article: art, err: err}
		}
		return outcomes
	}

	var g errgroup.Group
	g.SetLimit(concurrency)
	for i, loc := range locators {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				outcomes[i] = outcome{err: err}
				return nil
			}
			art, err := s.FetchArticle(ctx, loc)
			outcomes[i] = outcome{article: art, err: err}
			// A failed locator must not cancel its siblings.
			return nil
		})
	}
	_ = g.Wait()
	return outcomes
}
