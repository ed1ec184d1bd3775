package domain

import (
	"context"
	"iter"
)

// Kind is the listing discriminant of a saved entry
type Kind string

const (
	KindPost  Kind = "t3"
	KindReply Kind = "t1"
)

// SavedItem is one entry of the saved listing. Only the body field matching
// Kind is meaningful; an empty body means the content was removed.
type SavedItem struct {
	ID        string `json:"id"`
	Kind      Kind   `json:"kind"`
	Subreddit string `json:"subreddit"`
	Title     string `json:"title,omitempty"`

	SelfTextHTML string `json:"selftext_html,omitempty"` // posts
	BodyHTML     string `json:"body_html,omitempty"`     // replies
}

// RenderedBody returns the kind-specific HTML body. ok is false for unknown kinds.
func (s SavedItem) RenderedBody() (body string, ok bool) {
	switch s.Kind {
	case KindPost:
		return s.SelfTextHTML, true
	case KindReply:
		return s.BodyHTML, true
	default:
		return "", false
	}
}

// Collector defines the interface for pulling saved items.
// The returned sequence ends on exhaustion; a fetch failure is yielded once as
// a non-nil error and terminates the sequence. limit <= 0 means no limit.
type Collector interface {
	Saved(ctx context.Context, subreddit string, limit int) iter.Seq2[SavedItem, error]
}
