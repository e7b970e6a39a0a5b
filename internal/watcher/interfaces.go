package watcher

import (
	"context"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/domain"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/publishers"
)

// FeedSource is the slice of the Honeycomb client the watcher consumes.
type FeedSource interface {
	Feed(ctx context.Context, sort string) ([]domain.Post, error)
}

// EventSink accepts events for downstream delivery; the fanout satisfies it.
type EventSink interface {
	Publish(ctx context.Context, evt publishers.Event) (int, error)
}

// PreviewEnricher resolves a link preview for a post, nil when none applies.
type PreviewEnricher interface {
	Preview(ctx context.Context, post domain.Post) *domain.LinkPreview
}
