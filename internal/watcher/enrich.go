package watcher

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/domain"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/logger"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/httpclient"

	"github.com/PuerkitoBio/goquery"
)

const (
	maxHTMLBodyBytes = 1 << 20 // 1 MiB
)

var linkPattern = regexp.MustCompile(`https?://[^\s<>"']+`)

// Enricher fetches the first URL found in a post body and extracts OG-tag
// metadata for the event's link preview. Best effort: any failure yields a
// nil preview, never an error.
type Enricher struct {
	client httpclient.Client
}

// NewEnricher constructs an enricher with the provided HTTP client (or default).
func NewEnricher(client httpclient.Client) *Enricher {
	if client == nil {
		client = httpclient.NewRestyClient(httpclient.DefaultTimeout)
	}
	return &Enricher{client: client}
}

// Preview resolves a link preview for the post, or nil when the body carries
// no URL or the page cannot be scraped.
func (e *Enricher) Preview(ctx context.Context, post domain.Post) *domain.LinkPreview {
	link := linkPattern.FindString(post.Body)
	if link == "" {
		return nil
	}

	preview, err := e.fetchAndParse(ctx, link)
	if err != nil {
		logger.WarnObj("link preview scrape failed", "preview_error", map[string]any{
			"post_id": post.ID,
			"url":     link,
			"error":   err.Error(),
		})
		return nil
	}
	return preview
}

func (e *Enricher) fetchAndParse(ctx context.Context, link string) (*domain.LinkPreview, error) {
	resp, err := e.client.Get(ctx, link, nil)
	if err != nil {
		return nil, fmt.Errorf("http fetch: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("status %d", resp.StatusCode())
	}

	body := resp.Body()
	if len(body) > maxHTMLBodyBytes {
		body = body[:maxHTMLBodyBytes]
	}

	meta, err := parseMeta(body)
	if err != nil {
		return nil, err
	}
	if meta.Title == "" && meta.Description == "" && meta.ImageURL == "" {
		return nil, nil
	}

	return &domain.LinkPreview{
		URL:         link,
		Title:       meta.Title,
		Description: meta.Description,
		ImageURL:    meta.ImageURL,
	}, nil
}

type pageMeta struct {
	Title       string
	Description string
	ImageURL    string
}

func parseMeta(body []byte) (pageMeta, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return pageMeta{}, fmt.Errorf("parse html: %w", err)
	}

	pm := pageMeta{}

	extract := func(sel string) string {
		if node := doc.Find(sel).First(); node.Length() > 0 {
			if val, ok := node.Attr("content"); ok {
				return strings.TrimSpace(val)
			}
		}
		return ""
	}

	pm.Title = firstNonEmpty(
		extract(`meta[property="og:title"]`),
		strings.TrimSpace(doc.Find("title").First().Text()),
	)
	pm.Description = firstNonEmpty(
		extract(`meta[property="og:description"]`),
		extract(`meta[name="description"]`),
	)
	pm.ImageURL = extract(`meta[property="og:image"]`)

	return pm, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}
