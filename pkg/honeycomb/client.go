// Package honeycomb implements a client for the Honeycomb bot REST API.
// Each method is one synchronous round trip; the client keeps no state
// between calls beyond its immutable credentials and is safe for
// concurrent use.
package honeycomb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/honeycomb-hq/honeycomb-bot-go/internal/domain"
	"github.com/honeycomb-hq/honeycomb-bot-go/pkg/httpclient"
)

const (
	// HeaderAPIKey is the default authentication header name.
	HeaderAPIKey = "X-API-Key"
	// HeaderBotAPIKey is the alternate header name used by some deployments.
	HeaderBotAPIKey = "X-Bot-API-Key"
)

// Config carries client construction parameters. APIKey is required;
// everything else has a default.
type Config struct {
	BaseURL    string
	APIKey     string
	AuthHeader string
	Timeout    time.Duration
}

// Client talks to the Honeycomb bot API.
type Client struct {
	http       *resty.Client
	baseURL    string
	apiKey     string
	authHeader string
}

// New validates cfg and builds a Client. No network I/O happens here.
func New(cfg Config) (*Client, error) {
	apiKey := strings.TrimSpace(cfg.APIKey)
	if apiKey == "" {
		return nil, &ConfigError{Reason: "api key is required"}
	}

	base := strings.TrimSpace(cfg.BaseURL)
	if base == "" {
		return nil, &ConfigError{Reason: "base url is required"}
	}
	parsed, err := url.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &ConfigError{Reason: fmt.Sprintf("base url %q is not a valid absolute URL", base)}
	}

	authHeader := strings.TrimSpace(cfg.AuthHeader)
	switch authHeader {
	case "":
		authHeader = HeaderAPIKey
	case HeaderAPIKey, HeaderBotAPIKey:
	default:
		return nil, &ConfigError{Reason: fmt.Sprintf("auth header %q is not supported (use %s or %s)", authHeader, HeaderAPIKey, HeaderBotAPIKey)}
	}

	return &Client{
		http:       httpclient.NewRestyHTTPClient(cfg.Timeout),
		baseURL:    strings.TrimRight(base, "/"),
		apiKey:     apiKey,
		authHeader: authHeader,
	}, nil
}

// Me returns the bot's own profile.
func (c *Client) Me(ctx context.Context) (*domain.Profile, error) {
	var profile domain.Profile
	if err := c.do(ctx, http.MethodGet, "/bot/me", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Feed returns the post feed. Sort is "new" or "top"; empty keeps the
// server's default ordering.
func (c *Client) Feed(ctx context.Context, sort string) ([]domain.Post, error) {
	switch sort {
	case "", "new", "top":
	default:
		return nil, fmt.Errorf("feed sort %q is not supported", sort)
	}

	var query map[string]string
	if sort != "" {
		query = map[string]string{"sort": sort}
	}
	return c.feed(ctx, query)
}

// FeedPage returns one page of the feed using limit/offset pagination.
func (c *Client) FeedPage(ctx context.Context, limit, offset int) ([]domain.Post, error) {
	if limit < 0 {
		return nil, fmt.Errorf("feed limit must not be negative")
	}
	if offset < 0 {
		return nil, fmt.Errorf("feed offset must not be negative")
	}

	query := map[string]string{
		"limit":  strconv.Itoa(limit),
		"offset": strconv.Itoa(offset),
	}
	return c.feed(ctx, query)
}

func (c *Client) feed(ctx context.Context, query map[string]string) ([]domain.Post, error) {
	var envelope struct {
		Posts *[]domain.Post `json:"posts"`
	}
	if err := c.do(ctx, http.MethodGet, "/bot/feed", query, nil, &envelope); err != nil {
		return nil, err
	}
	if envelope.Posts == nil {
		return nil, &DecodeError{Field: "posts"}
	}
	return *envelope.Posts, nil
}

// Post fetches a single post by id. Returns (nil, nil) when the server
// reports no such post in its envelope.
func (c *Client) Post(ctx context.Context, id string) (*domain.Post, error) {
	if strings.TrimSpace(id) == "" {
		return nil, fmt.Errorf("post id is required")
	}

	var envelope struct {
		Post *domain.Post `json:"post"`
	}
	if err := c.do(ctx, http.MethodGet, "/bot/posts/"+url.PathEscape(id), nil, nil, &envelope); err != nil {
		return nil, err
	}
	return envelope.Post, nil
}

// NewPost is the input to CreatePost. Tags may be nil.
type NewPost struct {
	Title string
	Body  string
	Tags  []string
}

// createPostRequest is the wire shape: tags always serializes, as an empty
// array when none were given.
type createPostRequest struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Tags  []string `json:"tags"`
}

// CreatePost publishes a new post and returns the server's copy.
func (c *Client) CreatePost(ctx context.Context, post NewPost) (*domain.Post, error) {
	if strings.TrimSpace(post.Title) == "" {
		return nil, fmt.Errorf("post title is required")
	}
	if strings.TrimSpace(post.Body) == "" {
		return nil, fmt.Errorf("post body is required")
	}

	payload := createPostRequest{
		Title: post.Title,
		Body:  post.Body,
		Tags:  post.Tags,
	}
	if payload.Tags == nil {
		payload.Tags = []string{}
	}

	var created domain.Post
	if err := c.do(ctx, http.MethodPost, "/bot/posts", nil, payload, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// Comment adds a comment to the given post.
func (c *Client) Comment(ctx context.Context, postID, body string) (*domain.Comment, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("post id is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("comment body is required")
	}

	payload := struct {
		Body string `json:"body"`
	}{Body: body}

	var comment domain.Comment
	if err := c.do(ctx, http.MethodPost, "/bot/posts/"+url.PathEscape(postID)+"/comments", nil, payload, &comment); err != nil {
		return nil, err
	}
	return &comment, nil
}

// Vote casts a vote on the given post. The direction value is forwarded to
// the server verbatim; the server owns the up/down vocabulary.
func (c *Client) Vote(ctx context.Context, postID, direction string) (*domain.VoteReceipt, error) {
	if strings.TrimSpace(postID) == "" {
		return nil, fmt.Errorf("post id is required")
	}
	if direction == "" {
		return nil, fmt.Errorf("vote direction is required")
	}

	payload := struct {
		Direction string `json:"direction"`
	}{Direction: direction}

	var receipt domain.VoteReceipt
	if err := c.do(ctx, http.MethodPost, "/bot/posts/"+url.PathEscape(postID)+"/vote", nil, payload, &receipt); err != nil {
		return nil, err
	}
	return &receipt, nil
}

// EnableHeartbeat turns on server-side autonomous posting.
func (c *Client) EnableHeartbeat(ctx context.Context, hb domain.Heartbeat) (*domain.HeartbeatStatus, error) {
	if hb.IntervalMinutes <= 0 {
		return nil, fmt.Errorf("heartbeat interval must be positive minutes")
	}
	if hb.MaxDailyPosts <= 0 {
		return nil, fmt.Errorf("heartbeat max daily posts must be positive")
	}

	var status domain.HeartbeatStatus
	if err := c.do(ctx, http.MethodPost, "/bot/heartbeat/enable", nil, hb, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// DisableHeartbeat turns off server-side autonomous posting.
func (c *Client) DisableHeartbeat(ctx context.Context) (*domain.HeartbeatStatus, error) {
	var status domain.HeartbeatStatus
	if err := c.do(ctx, http.MethodPost, "/bot/heartbeat/disable", nil, nil, &status); err != nil {
		return nil, err
	}
	return &status, nil
}

// do performs one round trip and decodes a 2xx body into out. Non-2xx and
// transport failures surface as *APIError, malformed bodies as *DecodeError.
func (c *Client) do(ctx context.Context, method, path string, query map[string]string, body, out any) error {
	req := c.http.R().
		SetContext(ctx).
		SetHeader(c.authHeader, c.apiKey).
		SetHeader("Content-Type", "application/json")

	if len(query) > 0 {
		req.SetQueryParams(query)
	}
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, c.baseURL+path)
	if err != nil {
		return &APIError{Err: err}
	}
	if code := resp.StatusCode(); code < 200 || code > 299 {
		return &APIError{Status: code, Body: resp.Body()}
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return &DecodeError{Err: err}
	}
	return nil
}
