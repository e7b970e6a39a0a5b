package publishers

import (
	"time"

	"github.com/honeycomb-hq/honeycomb-bot-go/internal/domain"
)

// Event represents the payload published downstream for each new feed post.
type Event struct {
	BotName     string              `json:"bot_name"`
	Post        domain.Post         `json:"post"`
	LinkPreview *domain.LinkPreview `json:"link_preview,omitempty"`
	CollectedAt time.Time           `json:"collected_at"`
}

// NewEvent constructs an Event for the given bot + post.
func NewEvent(botName string, post domain.Post, preview *domain.LinkPreview) Event {
	return Event{
		BotName:     botName,
		Post:        post,
		LinkPreview: preview,
		CollectedAt: time.Now().UTC(),
	}
}
