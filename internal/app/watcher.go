package app

import (
	"context"
	"fmt"
	"time"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/config"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/logger"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/storage"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/watcher"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/honeycomb"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/publishers"
)

// Watcher is the feed-watcher runtime. It manages the poll loop, coordinating
// the Honeycomb client, the dedup store, and downstream publishers.
type Watcher struct {
	cfg          *config.Config
	client       *honeycomb.Client
	fanout       *publishers.Fanout
	store        storage.Store
	service      *watcher.Service
	pollInterval time.Duration
	log          logger.Logger
}

// NewWatcher builds a watcher runtime from config.
func NewWatcher(ctx context.Context, cfg *config.Config, log logger.Logger) (*Watcher, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = &logger.NopLogger{}
	}
	if ctx == nil {
		ctx = context.Background()
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

	publisherReg, err := publishers.LoadRegistry(cfg.PublishersFile)
	if err != nil {
		return nil, fmt.Errorf("load publishers registry: %w", err)
	}

	enabledPublishers := publisherReg.Enabled()
	if len(enabledPublishers) == 0 {
		return nil, fmt.Errorf("no publishers configured")
	}

	pubRegistry := publishers.DefaultRegistry()
	pubClients, err := publishers.BuildAll(ctx, pubRegistry, enabledPublishers, log)
	if err != nil {
		return nil, fmt.Errorf("build publishers: %w", err)
	}
	fanout := publishers.NewFanout(pubClients)
	publisherSummaries := make([]map[string]string, 0, len(enabledPublishers))
	for _, pubCfg := range enabledPublishers {
		publisherSummaries = append(publisherSummaries, map[string]string{
			"id":   pubCfg.ID,
			"type": pubCfg.Type,
		})
	}
	log.InfoObj("publishers registry loaded", "publishers_meta", map[string]any{
		"count":      len(publisherSummaries),
		"publishers": publisherSummaries,
	})

	storeOpts := storage.Options{
		PostTTL:         cfg.StorageTTL,
		CleanupInterval: cfg.StorageCleanupInterval,
	}
	store, err := storage.NewStore(cfg.StorageType, cfg.BBoltPath, storeOpts)
	if err != nil {
		return nil, fmt.Errorf("init storage: %w", err)
	}
	log.InfoObj("storage initialized", "storage_config", map[string]any{
		"type":                     cfg.StorageType,
		"path":                     cfg.BBoltPath,
		"post_ttl_seconds":         int(cfg.StorageTTL.Seconds()),
		"cleanup_interval_seconds": int(cfg.StorageCleanupInterval.Seconds()),
	})

	service, err := watcher.NewService(watcher.Params{
		Source:   client,
		Sink:     fanout,
		Store:    store,
		Log:      log,
		BotName:  cfg.AppName,
		FeedSort: cfg.FeedSort,
	})
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("build watcher service: %w", err)
	}

	return &Watcher{
		cfg:          cfg,
		client:       client,
		fanout:       fanout,
		store:        store,
		service:      service,
		pollInterval: cfg.PollInterval,
		log:          log,
	}, nil
}

// Run starts the poll loop until the context is cancelled.
func (w *Watcher) Run(ctx context.Context) error {
	if w == nil || w.service == nil {
		return fmt.Errorf("watcher is not initialized")
	}
	defer w.closeStore()

	// Confirm credentials up front so a bad key fails loud, not per tick.
	profile, err := w.client.Me(ctx)
	if err != nil {
		return fmt.Errorf("verify bot credentials: %w", err)
	}
	w.log.InfoObj("watcher loop starting", "watcher_state", map[string]any{
		"bot_name":         profile.Name,
		"publishers_count": w.fanout.Size(),
		"poll_interval":    w.pollInterval.String(),
		"feed_sort":        w.cfg.FeedSort,
	})

	if err := w.runOnce(ctx); err != nil {
		w.log.ErrorObj("initial feed pass failed", "error", err)
	}

	ticker := time.NewTicker(w.pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			w.log.InfoObj("watcher loop exiting", "reason", ctx.Err())
			return nil
		case <-ticker.C:
			if err := w.runOnce(ctx); err != nil {
				w.log.ErrorObj("scheduled feed pass failed", "error", err)
			}
		}
	}
}

// runOnce performs a single feed pass.
func (w *Watcher) runOnce(ctx context.Context) error {
	start := time.Now()
	if err := w.service.Run(ctx); err != nil {
		return err
	}
	w.log.InfoObj("feed pass finished", "pass_meta", map[string]any{
		"elapsed_ms": time.Since(start).Milliseconds(),
	})
	return nil
}

// closeStore safely closes the storage backend, logging any errors encountered.
func (w *Watcher) closeStore() {
	if w == nil || w.store == nil {
		return
	}
	if err := w.store.Close(); err != nil {
		w.log.ErrorObj("storage close failed", "error", err)
	}
}
