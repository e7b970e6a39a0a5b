package watcher

import (
	"context"
	"errors"
	"fmt"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/logger"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/storage"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/publishers"
)

// Service runs one feed pass at a time: fetch, skip seen posts, enrich,
// publish, mark. A post is marked seen only after a fully successful publish,
// so failed deliveries are retried on the next pass.
type Service struct {
	source   FeedSource
	sink     EventSink
	store    storage.Store
	enricher PreviewEnricher
	log      logger.Logger
	botName  string
	feedSort string
}

// Params carries Service dependencies. Source, Sink, and Store are required;
// Enricher and Log default to a link-preview scraper and a nop logger.
type Params struct {
	Source   FeedSource
	Sink     EventSink
	Store    storage.Store
	Enricher PreviewEnricher
	Log      logger.Logger
	BotName  string
	FeedSort string
}

// NewService wires a watcher from its dependencies.
func NewService(p Params) (*Service, error) {
	if p.Source == nil {
		return nil, fmt.Errorf("watcher requires a feed source")
	}
	if p.Sink == nil {
		return nil, fmt.Errorf("watcher requires an event sink")
	}
	if p.Store == nil {
		return nil, fmt.Errorf("watcher requires a store")
	}
	if p.Enricher == nil {
		p.Enricher = NewEnricher(nil)
	}
	if p.Log == nil {
		p.Log = &logger.NopLogger{}
	}
	if p.FeedSort == "" {
		p.FeedSort = "new"
	}

	return &Service{
		source:   p.Source,
		sink:     p.Sink,
		store:    p.Store,
		enricher: p.Enricher,
		log:      p.Log,
		botName:  p.BotName,
		feedSort: p.FeedSort,
	}, nil
}

// Run executes a single feed pass.
func (s *Service) Run(ctx context.Context) error {
	posts, err := s.source.Feed(ctx, s.feedSort)
	if err != nil {
		return fmt.Errorf("fetch feed: %w", err)
	}

	var errs []error
	published := 0
	for _, post := range posts {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		seen, err := s.store.SeenPost(post.ID)
		if err != nil {
			errs = append(errs, fmt.Errorf("check seen %s: %w", post.ID, err))
			continue
		}
		if seen {
			continue
		}

		preview := s.enricher.Preview(ctx, post)
		evt := publishers.NewEvent(s.botName, post, preview)

		if _, err := s.sink.Publish(ctx, evt); err != nil {
			errs = append(errs, fmt.Errorf("publish %s: %w", post.ID, err))
			s.log.ErrorObj("post publish failed", "publish_error", map[string]any{
				"post_id": post.ID,
				"error":   err.Error(),
			})
			continue
		}
		if err := s.store.MarkPost(post.ID); err != nil {
			errs = append(errs, fmt.Errorf("mark seen %s: %w", post.ID, err))
			continue
		}
		published++
	}

	s.log.InfoObj("feed pass completed", "pass_result", map[string]any{
		"posts_seen":      len(posts),
		"posts_published": published,
	})
	return errors.Join(errs...)
}
