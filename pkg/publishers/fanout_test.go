package publishers

import (
	"context"
	"errors"
	"testing"

	"github.com/samvad-hq/pubmed-buddy/internal/domain"
)

type stubPublisher struct {
	id       string
	typ      string
	err      error
	closeErr error
	events   []Event
	closed   bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(_ context.Context, evt Event) error {
	s.events = append(s.events, evt)
	return s.err
}
func (s *stubPublisher) Close() error {
	s.closed = true
	return s.closeErr
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	ok := &stubPublisher{id: "ok", typ: "http"}
	bad := &stubPublisher{id: "bad", typ: "sqs", err: errors.New("failed")}
	fanout := NewFanout([]Publisher{ok, bad, nil})
	if fanout.Size() != 2 {
		t.Fatalf("expected nil publishers to be dropped, size %d", fanout.Size())
	}

	evt := NewEvent(sampleArticle())
	d := fanout.Publish(context.Background(), evt)
	if d.Delivered != 1 {
		t.Fatalf("expected 1 success, got %d", d.Delivered)
	}
	if d.Err == nil {
		t.Fatalf("expected aggregated error")
	}
	if d.EventID != evt.ID || d.PMID != "12345678" {
		t.Fatalf("delivery not tied to event: %#v", d)
	}
	if len(ok.events) != 1 || len(bad.events) != 1 {
		t.Fatalf("every sink should receive the event despite failures")
	}
}

func TestFanoutPublishArticlesKeepsOrder(t *testing.T) {
	sink := &stubPublisher{id: "s", typ: "http"}
	first := sampleArticle()
	second := sampleArticle()
	second.PMID.Value = "87654321"

	deliveries := NewFanout([]Publisher{sink}).PublishArticles(context.Background(), []domain.PubmedArticle{first, second})
	if len(deliveries) != 2 {
		t.Fatalf("expected 2 deliveries, got %d", len(deliveries))
	}
	for i, want := range []string{"12345678", "87654321"} {
		if deliveries[i].PMID != want || deliveries[i].Err != nil || deliveries[i].Delivered != 1 {
			t.Fatalf("delivery %d = %#v", i, deliveries[i])
		}
		if sink.events[i].PMID != want {
			t.Fatalf("event %d pmid = %s", i, sink.events[i].PMID)
		}
	}
}

func TestFanoutPublishArticlesStopsOnCancel(t *testing.T) {
	sink := &stubPublisher{id: "s", typ: "http"}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	deliveries := NewFanout([]Publisher{sink}).PublishArticles(ctx, []domain.PubmedArticle{sampleArticle()})
	if len(deliveries) != 1 || !errors.Is(deliveries[0].Err, context.Canceled) {
		t.Fatalf("expected canceled delivery, got %#v", deliveries)
	}
	if len(sink.events) != 0 {
		t.Fatalf("no event should be sent after cancellation")
	}
}

func TestFanoutCloseClosesEveryPublisher(t *testing.T) {
	a := &stubPublisher{id: "a", typ: "http"}
	b := &stubPublisher{id: "b", typ: "sqs", closeErr: errors.New("stuck")}
	err := NewFanout([]Publisher{a, b}).Close()
	if !a.closed || !b.closed {
		t.Fatalf("expected both publishers closed")
	}
	if err == nil {
		t.Fatalf("expected close error to surface")
	}
}

func TestNilFanoutIsNoop(t *testing.T) {
	var f *Fanout
	if d := f.Publish(context.Background(), Event{}); d.Delivered != 0 || d.Err != nil {
		t.Fatalf("unexpected result %#v", d)
	}
	if err := f.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 1 {
		t.Fatalf("expected 1 publisher, got %d", len(pubs))
	}
}

func TestBuildAllUnknownType(t *testing.T) {
	_, err := BuildAll(context.Background(), DefaultRegistry(), []PublisherConfig{{ID: "x", Type: "kafka"}}, nil)
	if err == nil {
		t.Fatalf("expected error for unknown publisher type")
	}
}

func TestBuildAllClosesBuiltSinksOnFailure(t *testing.T) {
	built := &stubPublisher{id: "a", typ: "stub"}
	reg := Registry{
		"stub": func(context.Context, PublisherConfig, Logger) (Publisher, error) { return built, nil },
	}
	_, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "a", Type: "stub"},
		{ID: "b", Type: "kafka"},
	}, nil)
	if err == nil {
		t.Fatalf("expected error for unregistered type")
	}
	if !built.closed {
		t.Fatalf("sink built before the failure must be closed")
	}
}
