// Package metrics records batch fetch outcomes as Prometheus metrics and can
// dump them in the node_exporter textfile format after a run.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

// Failure reasons used as the "reason" label.
const (
	ReasonFormat     = "format"
	ReasonCitation   = "citation"
	ReasonMissing    = "missing_field"
	ReasonFetch      = "fetch"
	ReasonValidation = "validation"
	ReasonCanceled   = "canceled"
	ReasonOther      = "other"
)

// Metrics holds the fetch counters on a private registry, so several
// instances (one per test, for example) never collide.
type Metrics struct {
	Registry *prometheus.Registry

	// ArticlesFetched counts assembled articles, labeled by page layout.
	ArticlesFetched *prometheus.CounterVec

	// ArticlesFailed counts skipped locators, labeled by failure reason.
	ArticlesFailed *prometheus.CounterVec

	// FetchDuration observes fetch+parse time per locator in seconds.
	FetchDuration *prometheus.HistogramVec
}

// New creates a Metrics instance with every metric registered under namespace.
func New(namespace string) *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		ArticlesFetched: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_fetched_total",
			Help:      "Total number of articles fetched and assembled",
		}, []string{"layout"}),
		ArticlesFailed: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "articles_failed_total",
			Help:      "Total number of locators skipped because of an error",
		}, []string{"reason"}),
		FetchDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "article_fetch_duration_seconds",
			Help:      "Time spent fetching and parsing one article page",
			Buckets:   []float64{0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		}, []string{"layout"}),
	}
}

// RecordSuccess counts an assembled article.
func (m *Metrics) RecordSuccess(layout string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ArticlesFetched.WithLabelValues(layout).Inc()
	m.FetchDuration.WithLabelValues(layout).Observe(elapsed.Seconds())
}

// RecordFailure counts a skipped locator under the reason derived from err.
func (m *Metrics) RecordFailure(err error) {
	if m == nil || err == nil {
		return
	}
	m.ArticlesFailed.WithLabelValues(Reason(err)).Inc()
}

// Reason maps an error to its failure label.
func Reason(err error) string {
	switch {
	case errors.Is(err, domain.ErrFormat):
		return ReasonFormat
	case errors.Is(err, domain.ErrCitationParse):
		return ReasonCitation
	case errors.Is(err, domain.ErrMissingField):
		return ReasonMissing
	case errors.Is(err, domain.ErrFetch):
		return ReasonFetch
	case errors.Is(err, domain.ErrValidation):
		return ReasonValidation
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return ReasonCanceled
	default:
		return ReasonOther
	}
}

// WriteTextfile writes every metric to path atomically.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
