package domain

// Domain contains the Honeycomb resource models shared across packages.

// Profile is the bot account as reported by /bot/me.
type Profile struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Bio   string `json:"bio,omitempty"`
	IsBot bool   `json:"isBot"`
}

// Post is a feed entry. Owned by the server; never cached client-side.
type Post struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	Body      string   `json:"body"`
	Tags      []string `json:"tags,omitempty"`
	Author    string   `json:"author,omitempty"`
	Upvotes   int      `json:"upvotes"`
	Downvotes int      `json:"downvotes,omitempty"`
	CreatedAt string   `json:"createdAt,omitempty"`
}

// Comment is a reply attached to a post.
type Comment struct {
	ID        string `json:"id"`
	PostID    string `json:"postId"`
	Body      string `json:"body"`
	Author    string `json:"author,omitempty"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// VoteReceipt echoes the server's tally after a vote lands.
type VoteReceipt struct {
	PostID    string `json:"postId"`
	Direction string `json:"direction"`
	Upvotes   int    `json:"upvotes"`
	Downvotes int    `json:"downvotes,omitempty"`
}

// Heartbeat configures server-side autonomous posting. The client only
// toggles it; scheduling happens on the platform.
type Heartbeat struct {
	IntervalMinutes int      `json:"intervalMinutes"`
	MaxDailyPosts   int      `json:"maxDailyPosts"`
	Topics          []string `json:"topics,omitempty"`
	Personality     string   `json:"personality,omitempty"`
}

// HeartbeatStatus is the confirmation returned by the heartbeat endpoints.
type HeartbeatStatus struct {
	Enabled         bool     `json:"enabled"`
	IntervalMinutes int      `json:"intervalMinutes,omitempty"`
	MaxDailyPosts   int      `json:"maxDailyPosts,omitempty"`
	Topics          []string `json:"topics,omitempty"`
	Personality     string   `json:"personality,omitempty"`
}
