package publishers

import (
	"context"
	"errors"
	"fmt"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
	"golang.org/x/sync/errgroup"
)

// Fanout dispatches article events to every configured sink.
type Fanout struct {
	publishers []Publisher
}

// Delivery is the outcome of one event across all sinks.
type Delivery struct {
	EventID   string
	PMID      string
	Delivered int
	// Err joins the failures of individual sinks; nil when every sink accepted the event.
	Err error
}

// NewFanout builds a dispatcher over pubs, skipping nil entries.
func NewFanout(pubs []Publisher) *Fanout {
	cp := make([]Publisher, 0, len(pubs))
	for _, p := range pubs {
		if p == nil {
			continue
		}
		cp = append(cp, p)
	}
	return &Fanout{publishers: cp}
}

// Publish sends evt to all sinks at once and waits for each of them. A failing
// sink does not stop delivery to the others.
func (f *Fanout) Publish(ctx context.Context, evt Event) Delivery {
	d := Delivery{EventID: evt.ID, PMID: evt.PMID}
	if f == nil || len(f.publishers) == 0 {
		return d
	}

	errs := make([]error, len(f.publishers))
	var g errgroup.Group
	for i, p := range f.publishers {
		g.Go(func() error {
			if err := p.Publish(ctx, evt); err != nil {
				errs[i] = fmt.Errorf("%s publisher[%s]: %w", p.Type(), p.ID(), err)
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err == nil {
			d.Delivered++
		}
	}
	d.Err = errors.Join(errs...)
	return d
}

// PublishArticles publishes one event per article, in article order.
func (f *Fanout) PublishArticles(ctx context.Context, articles []domain.PubmedArticle) []Delivery {
	out := make([]Delivery, 0, len(articles))
	for _, a := range articles {
		if ctx.Err() != nil {
			out = append(out, Delivery{PMID: a.PMID.Value, Err: ctx.Err()})
			continue
		}
		out = append(out, f.Publish(ctx, NewEvent(a)))
	}
	return out
}

// Close releases every publisher, reporting all failures.
func (f *Fanout) Close() error {
	if f == nil {
		return nil
	}
	var errs []error
	for _, p := range f.publishers {
		if err := p.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s publisher[%s]: %w", p.Type(), p.ID(), err))
		}
	}
	return errors.Join(errs...)
}

// Size returns the number of active publishers.
func (f *Fanout) Size() int {
	if f == nil {
		return 0
	}
	return len(f.publishers)
}
