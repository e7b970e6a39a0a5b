package watcher

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/domain"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/publishers"
)

// fakeSource returns preset posts or an error.
type fakeSource struct {
	posts []domain.Post
	err   error
	sort  string
}

func (f *fakeSource) Feed(_ context.Context, sort string) ([]domain.Post, error) {
	f.sort = sort
	if f.err != nil {
		return nil, f.err
	}
	return f.posts, nil
}

// fakeSink records published events and can inject errors per post ID.
type fakeSink struct {
	mu      sync.Mutex
	events  []publishers.Event
	errOnID string
}

func (f *fakeSink) Publish(_ context.Context, evt publishers.Event) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, evt)
	if evt.Post.ID == f.errOnID {
		return 0, errors.New("boom")
	}
	return 1, nil
}

// fakeStore tracks seen IDs in memory.
type fakeStore struct {
	mu      sync.Mutex
	seen    map[string]bool
	failID  string
	failErr error
}

func (f *fakeStore) Close() error { return nil }

func (f *fakeStore) SeenPost(id string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if id == f.failID && f.failErr != nil {
		return false, f.failErr
	}
	return f.seen[id], nil
}

func (f *fakeStore) MarkPost(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seen == nil {
		f.seen = make(map[string]bool)
	}
	f.seen[id] = true
	return nil
}

// nilEnricher never produces a preview.
type nilEnricher struct{}

func (nilEnricher) Preview(context.Context, domain.Post) *domain.LinkPreview { return nil }

func newTestService(t *testing.T, source FeedSource, sink EventSink, store *fakeStore) *Service {
	t.Helper()
	svc, err := NewService(Params{
		Source:   source,
		Sink:     sink,
		Store:    store,
		Enricher: nilEnricher{},
		BotName:  "drone",
	})
	if err != nil {
		t.Fatalf("NewService: %v", err)
	}
	return svc
}

func TestRunPublishesFreshPostsOnly(t *testing.T) {
	source := &fakeSource{posts: []domain.Post{
		{ID: "p1", Title: "old"},
		{ID: "p2", Title: "new"},
	}}
	sink := &fakeSink{}
	store := &fakeStore{seen: map[string]bool{"p1": true}}

	svc := newTestService(t, source, sink, store)
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if source.sort != "new" {
		t.Fatalf("expected default feed sort new, got %q", source.sort)
	}
	if len(sink.events) != 1 {
		t.Fatalf("expected 1 published event, got %d", len(sink.events))
	}
	evt := sink.events[0]
	if evt.Post.ID != "p2" || evt.BotName != "drone" {
		t.Fatalf("unexpected event %+v", evt)
	}
	if !store.seen["p2"] {
		t.Fatalf("MarkPost not called for published post")
	}
}

func TestRunDoesNotMarkOnPublishFailure(t *testing.T) {
	source := &fakeSource{posts: []domain.Post{{ID: "bad"}, {ID: "good"}}}
	sink := &fakeSink{errOnID: "bad"}
	store := &fakeStore{}

	svc := newTestService(t, source, sink, store)
	err := svc.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "bad") {
		t.Fatalf("expected error mentioning bad post, got %v", err)
	}

	if store.seen["bad"] {
		t.Fatalf("failed post must not be marked seen")
	}
	if !store.seen["good"] {
		t.Fatalf("healthy post must still be published and marked")
	}
}

func TestRunSkipsAllSeenPosts(t *testing.T) {
	source := &fakeSource{posts: []domain.Post{{ID: "p1"}, {ID: "p2"}}}
	sink := &fakeSink{}
	store := &fakeStore{seen: map[string]bool{"p1": true, "p2": true}}

	svc := newTestService(t, source, sink, store)
	if err := svc.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(sink.events) != 0 {
		t.Fatalf("expected no events, got %d", len(sink.events))
	}
}

func TestRunSurfacesFeedError(t *testing.T) {
	source := &fakeSource{err: errors.New("feed down")}
	svc := newTestService(t, source, &fakeSink{}, &fakeStore{})

	err := svc.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "fetch feed") {
		t.Fatalf("expected feed fetch error, got %v", err)
	}
}

func TestRunAggregatesStoreErrors(t *testing.T) {
	source := &fakeSource{posts: []domain.Post{{ID: "broken"}, {ID: "fine"}}}
	sink := &fakeSink{}
	store := &fakeStore{failID: "broken", failErr: errors.New("lookup failed")}

	svc := newTestService(t, source, sink, store)
	err := svc.Run(context.Background())
	if err == nil || !strings.Contains(err.Error(), "broken") {
		t.Fatalf("expected error mentioning broken post, got %v", err)
	}
	if !store.seen["fine"] {
		t.Fatalf("unaffected post must still be processed")
	}
}

func TestRunStopsOnCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	source := &fakeSource{posts: []domain.Post{{ID: "p1"}}}
	sink := &fakeSink{}
	svc := newTestService(t, source, sink, &fakeStore{})

	if err := svc.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if len(sink.events) != 0 {
		t.Fatalf("no events should publish after cancel")
	}
}

func TestNewServiceValidatesDependencies(t *testing.T) {
	if _, err := NewService(Params{Sink: &fakeSink{}, Store: &fakeStore{}}); err == nil {
		t.Fatalf("expected error for missing source")
	}
	if _, err := NewService(Params{Source: &fakeSource{}, Store: &fakeStore{}}); err == nil {
		t.Fatalf("expected error for missing sink")
	}
	if _, err := NewService(Params{Source: &fakeSource{}, Sink: &fakeSink{}}); err == nil {
		t.Fatalf("expected error for missing store")
	}
}
