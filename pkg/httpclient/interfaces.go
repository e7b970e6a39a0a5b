package httpclient

import "context"

// Response is a minimal HTTP response contract.
type Response interface {
	Body() []byte
	StatusCode() int
}

// Client is the fetch surface used for unauthenticated page retrieval,
// such as the link-preview scrape. Callers inject mocks in tests; the bot
// API client uses the underlying resty client directly since it needs
// verbs and bodies this interface deliberately leaves out.
type Client interface {
	Get(ctx context.Context, url string, headers map[string]string) (Response, error)
}
