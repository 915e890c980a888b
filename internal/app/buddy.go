package app

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/samvad-hq/pubmed-buddy/internal/config"
	"github.com/samvad-hq/pubmed-buddy/internal/crawler"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"github.com/samvad-hq/pubmed-buddy/internal/logger"
	"github.com/samvad-hq/pubmed-buddy/internal/metrics"
	"github.com/samvad-hq/pubmed-buddy/internal/render"
	"github.com/samvad-hq/pubmed-buddy/pkg/export"
	"github.com/samvad-hq/pubmed-buddy/pkg/httpclient"
	"github.com/samvad-hq/pubmed-buddy/pkg/publishers"
)

// Options are the per-invocation choices made on the command line.
type Options struct {
	Locators []string
	Abstract bool
	Output   string
	// Concurrency overrides the configured value when positive.
	Concurrency int
}

// Buddy wires the crawler, renderers, exporters and publishers for one run.
type Buddy struct {
	cfg     *config.Config
	fetcher crawler.ArticleFetcher
	fanout  *publishers.Fanout
	metrics *metrics.Metrics
	stdout  io.Writer
	log     logger.Logger
}

// NewBuddy builds the runtime from configuration. Publishers are optional and
// only created when publishers_file is set.
func NewBuddy(ctx context.Context, cfg *config.Config, log logger.Logger) (*Buddy, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	m := metrics.New("pmbuddy")
	pm := cfg.PubMed()
	client := httpclient.NewRestyClient(pm.Timeout, nil)
	svc := crawler.NewService(client, pm, nil, log, crawler.WithMetrics(m))

	fanout, err := buildFanout(ctx, cfg.PublishersFile, log)
	if err != nil {
		return nil, err
	}

	b := newBuddy(cfg, svc, fanout, os.Stdout, log)
	b.metrics = m
	return b, nil
}

func newBuddy(cfg *config.Config, fetcher crawler.ArticleFetcher, fanout *publishers.Fanout, stdout io.Writer, log logger.Logger) *Buddy {
	return &Buddy{
		cfg:     cfg,
		fetcher: fetcher,
		fanout:  fanout,
		stdout:  stdout,
		log:     log,
	}
}

func buildFanout(ctx context.Context, path string, log logger.Logger) (*publishers.Fanout, error) {
	if path == "" {
		return publishers.NewFanout(nil), nil
	}

	publisherReg, err := publishers.LoadRegistry(path)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabled := publisherReg.Enabled()
	pubClients, err := publishers.BuildAll(ctx, publishers.DefaultRegistry(), enabled, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	log.InfoObj("publishers registry loaded", "publishers", enabled)
	return publishers.NewFanout(pubClients), nil
}

// Run fetches the requested articles, renders them to stdout and then exports
// and publishes them when configured.
func (b *Buddy) Run(ctx context.Context, opts Options) error {
	if b == nil || b.fetcher == nil {
		return fmt.Errorf("buddy is not initialized")
	}
	if len(opts.Locators) == 0 {
		return fmt.Errorf("no PMID, PMCID or URL provided")
	}

	concurrency := b.cfg.Concurrency
	if opts.Concurrency > 0 {
		concurrency = opts.Concurrency
	}

	articles, err := b.fetcher.FetchAll(ctx, opts.Locators, concurrency)
	b.writeMetrics()
	if err != nil {
		return fmt.Errorf("fetch articles: %w", err)
	}

	if opts.Abstract {
		err = render.Abstracts(b.stdout, articles)
	} else {
		err = render.Table(b.stdout, articles)
	}
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if opts.Output != "" {
		if err := export.ToFile(opts.Output, articles); err != nil {
			return fmt.Errorf("export: %w", err)
		}
		b.log.InfoObj("articles exported", "export", map[string]any{
			"path":  opts.Output,
			"count": len(articles),
		})
	}

	b.publish(ctx, articles)
	return nil
}

// writeMetrics dumps the fetch counters when metrics_file is configured.
func (b *Buddy) writeMetrics() {
	if b.cfg.MetricsFile == "" || b.metrics == nil {
		return
	}
	if err := b.metrics.WriteTextfile(b.cfg.MetricsFile); err != nil {
		b.log.WarnObj("metrics not written", "metrics_error", map[string]any{
			"path":  b.cfg.MetricsFile,
			"error": err.Error(),
		})
	}
}

// publish hands every article to the fanout. Delivery failures are logged,
// they never fail the run.
func (b *Buddy) publish(ctx context.Context, articles []domain.PubmedArticle) {
	if b.fanout.Size() == 0 {
		return
	}
	for _, d := range b.fanout.PublishArticles(ctx, articles) {
		if d.Err != nil {
			b.log.WarnObj("article publish failed", "publish_error", map[string]any{
				"pmid":      d.PMID,
				"event_id":  d.EventID,
				"delivered": d.Delivered,
				"error":     d.Err.Error(),
			})
		}
	}
}

// Close releases publisher resources.
func (b *Buddy) Close() error {
	if b == nil {
		return nil
	}
	return b.fanout.Close()
}
