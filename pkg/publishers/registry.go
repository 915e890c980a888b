package publishers

import (
	"context"
	"errors"
	"fmt"
)

// Builder creates the sink for one validated config entry.
type Builder func(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error)

// Registry maps sink types to their builders.
type Registry map[string]Builder

// DefaultRegistry knows every sink type the publishers file accepts.
func DefaultRegistry() Registry {
	return Registry{
		TypeHTTP:      newHTTPPublisher,
		TypeSQS:       newSQSPublisher,
		TypeSNS:       newSNSPublisher,
		TypeGCPPubSub: newPubSubPublisher,
	}
}

// Build creates the sink described by cfg.
func (r Registry) Build(ctx context.Context, cfg PublisherConfig, log Logger) (Publisher, error) {
	builder, ok := r[cfg.Type]
	if !ok || builder == nil {
		return nil, fmt.Errorf("no publisher registered for type %q (publisher %q)", cfg.Type, cfg.ID)
	}
	return builder(ctx, cfg, orDiscard(log))
}

// BuildAll creates a sink per entry. On failure the sinks built so far are
// closed and nothing is returned.
func BuildAll(ctx context.Context, reg Registry, cfgs []PublisherConfig, log Logger) ([]Publisher, error) {
	pubs := make([]Publisher, 0, len(cfgs))
	for _, cfg := range cfgs {
		pub, err := reg.Build(ctx, cfg, log)
		if err == nil {
			pubs = append(pubs, pub)
			continue
		}
		errs := []error{err}
		for _, p := range pubs {
			if cerr := p.Close(); cerr != nil {
				errs = append(errs, cerr)
			}
		}
		return nil, errors.Join(errs...)
	}
	return pubs, nil
}
