package models

import "time"

// Headline is one news search result.
type Headline struct {
	Title       string    `json:"title"`
	Snippet     string    `json:"snippet,omitempty"`
	Source      string    `json:"source,omitempty"`
	URL         string    `json:"url,omitempty"`
	Category    string    `json:"category,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}

// NewsDigest is the keyword-search result with a sentiment-derived score.
type NewsDigest struct {
	Headlines   []Headline `json:"headlines"`
	Score       int        `json:"score"` // 0-100, higher is more bullish for gold
	GeneratedAt time.Time  `json:"generated_at"`
}
