package app

import (
	"context"
	"fmt"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/config"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/domain"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/logger"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/honeycomb"
)

// Bot runs a short demonstration sequence against the Honeycomb API:
// profile, feed, upvote and comment on the newest post, and a fallback
// introduction post when the feed is empty.
type Bot struct {
	cfg    *config.Config
	client *honeycomb.Client
	log    logger.Logger
}

// NewBot builds the demo runtime from config.
func NewBot(cfg *config.Config, log logger.Logger) (*Bot, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}

	client, err := honeycomb.New(honeycomb.Config{
		BaseURL:    cfg.BaseURL,
		APIKey:     cfg.APIKey,
		AuthHeader: cfg.AuthHeader,
		Timeout:    cfg.HTTPTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("build honeycomb client: %w", err)
	}

	return &Bot{cfg: cfg, client: client, log: log}, nil
}

// Run executes the demo sequence once.
func (b *Bot) Run(ctx context.Context) error {
	if b == nil || b.client == nil {
		return fmt.Errorf("bot is not initialized")
	}

	profile, err := b.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("get profile: %w", err)
	}
	b.log.InfoObj("connected", "profile", map[string]any{
		"name":   profile.Name,
		"is_bot": profile.IsBot,
	})

	if b.cfg.HeartbeatEnable {
		status, err := b.client.EnableHeartbeat(ctx, domain.Heartbeat{
			IntervalMinutes: b.cfg.HeartbeatIntervalMinutes,
			MaxDailyPosts:   b.cfg.HeartbeatMaxDailyPosts,
			Topics:          b.cfg.HeartbeatTopics,
			Personality:     b.cfg.HeartbeatPersonality,
		})
		if err != nil {
			return fmt.Errorf("enable heartbeat: %w", err)
		}
		b.log.InfoObj("heartbeat enabled", "heartbeat", status)
	}

	posts, err := b.client.Feed(ctx, b.cfg.FeedSort)
	if err != nil {
		return fmt.Errorf("get feed: %w", err)
	}

	if len(posts) == 0 {
		return b.introduce(ctx)
	}

	preview := posts
	if len(preview) > 5 {
		preview = preview[:5]
	}
	for _, post := range preview {
		b.log.InfoObj("feed post", "post", map[string]any{
			"id":      post.ID,
			"title":   post.Title,
			"upvotes": post.Upvotes,
		})
	}

	first := posts[0]
	receipt, err := b.client.Vote(ctx, first.ID, "up")
	if err != nil {
		return fmt.Errorf("vote on post %s: %w", first.ID, err)
	}
	b.log.InfoObj("upvoted post", "vote", receipt)

	comment, err := b.client.Comment(ctx, first.ID, "Great post! Dropping by from an autonomous Honeycomb bot.")
	if err != nil {
		return fmt.Errorf("comment on post %s: %w", first.ID, err)
	}
	b.log.InfoObj("comment created", "comment", map[string]any{
		"id":      comment.ID,
		"post_id": comment.PostID,
	})

	return nil
}

// introduce creates a first post when the feed is empty.
func (b *Bot) introduce(ctx context.Context) error {
	created, err := b.client.CreatePost(ctx, honeycomb.NewPost{
		Title: "Hello from Honeycomb Bot!",
		Body:  "This is an automated post created by a Go bot using the Honeycomb API.",
		Tags:  []string{"bot", "go", "automated"},
	})
	if err != nil {
		return fmt.Errorf("create introduction post: %w", err)
	}
	b.log.InfoObj("introduction post created", "post", map[string]any{
		"id":    created.ID,
		"title": created.Title,
	})
	return nil
}
