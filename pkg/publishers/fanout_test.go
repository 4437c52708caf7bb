package publishers

import (
	"context"
	"errors"
	"testing"
)

type stubPublisher struct {
	id     string
	typ    string
	err    error
	calls  int
	closed bool
}

func (s *stubPublisher) ID() string   { return s.id }
func (s *stubPublisher) Type() string { return s.typ }
func (s *stubPublisher) Publish(context.Context, Event) error {
	s.calls++
	return s.err
}
func (s *stubPublisher) Close() error {
	s.closed = true
	return nil
}

func TestFanoutPublishAggregatesErrors(t *testing.T) {
	fanout := NewFanout([]Publisher{
		&stubPublisher{id: "ok", typ: "http"},
		nil,
		&stubPublisher{id: "bad", typ: "http", err: errors.New("failed")},
	})
	if fanout.Size() != 2 {
		t.Fatalf("expected nil publishers to be dropped, size=%d", fanout.Size())
	}

	count, err := fanout.Publish(context.Background(), Event{})
	if count != 1 {
		t.Fatalf("expected 1 success, got %d", count)
	}
	if err == nil {
		t.Fatalf("expected aggregated error")
	}
}

func TestFanoutSkipsFilteredEvents(t *testing.T) {
	only := &stubPublisher{id: "stops", typ: "http"}
	all := &stubPublisher{id: "all", typ: "http"}
	fanout := NewFanout([]Publisher{
		filtered{Publisher: only, cfg: PublisherConfig{Events: []string{EventSessionStopped}}},
		all,
	})

	count, err := fanout.Publish(context.Background(), Event{Type: EventSessionStarted})
	if err != nil || count != 1 {
		t.Fatalf("Publish count=%d err=%v", count, err)
	}
	if only.calls != 0 || all.calls != 1 {
		t.Fatalf("unexpected calls: only=%d all=%d", only.calls, all.calls)
	}

	if err := fanout.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if !only.closed || !all.closed {
		t.Fatalf("expected every publisher closed")
	}
}

func TestNilFanoutIsSafe(t *testing.T) {
	var f *Fanout
	if n, err := f.Publish(context.Background(), Event{}); n != 0 || err != nil {
		t.Fatalf("nil fanout Publish = %d, %v", n, err)
	}
	if f.Size() != 0 || f.Close() != nil {
		t.Fatalf("nil fanout should be empty")
	}
}

func TestBuildAllWithDefaultRegistry(t *testing.T) {
	reg := DefaultRegistry()
	pubs, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "http", Type: TypeHTTP, HTTP: &HTTPPublisherConfig{URL: "https://example.com"}},
		{ID: "starts", Type: TypeHTTP, Events: []string{EventSessionStarted}, HTTP: &HTTPPublisherConfig{URL: "https://example.com/s"}},
	}, nil)
	if err != nil {
		t.Fatalf("BuildAll: %v", err)
	}
	if len(pubs) != 2 {
		t.Fatalf("expected 2 publishers, got %d", len(pubs))
	}
	if _, ok := pubs[1].(filtered); !ok {
		t.Fatalf("expected event filter wrapper, got %T", pubs[1])
	}
}

func TestBuildAllClosesOnFailure(t *testing.T) {
	built := &stubPublisher{id: "first", typ: "stub"}
	reg := NewRegistry(map[string]Builder{
		"stub": func(context.Context, PublisherConfig, Logger) (Publisher, error) { return built, nil },
	})

	_, err := BuildAll(context.Background(), reg, []PublisherConfig{
		{ID: "first", Type: "stub"},
		{ID: "second", Type: "missing"},
	}, nil)
	if err == nil {
		t.Fatalf("expected unknown type error")
	}
	if !built.closed {
		t.Fatalf("expected already built publisher to be closed")
	}
}
