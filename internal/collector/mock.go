package collector

import (
	"context"
	"fmt"
	"iter"
	"strings"

	"github.com/qepting91/saved-links/internal/domain"
)

// MockClient implements domain.Collector over a fixed in-memory saved listing
type MockClient struct {
	Items []domain.SavedItem
}

// NewMockClient returns a client seeded with fake saved entries for subs
func NewMockClient(subs ...string) *MockClient {
	if len(subs) == 0 {
		subs = []string{"golang"}
	}

	var items []domain.SavedItem
	for i, sub := range subs {
		items = append(items,
			domain.SavedItem{
				ID:        fmt.Sprintf("mock_s%d", i),
				Kind:      domain.KindPost,
				Subreddit: sub,
				Title:     fmt.Sprintf("[%s] Simulated reading list #%d", sub, i),
				SelfTextHTML: fmt.Sprintf(`<div class="md"><p>See <a href="https://example.com/%s/%d">this</a>, `+
					`<a href="/r/%s">the sub</a> and <a href="https://youtube.com/watch?v=%d">video</a></p></div>`, sub, i, sub, i),
			},
			domain.SavedItem{
				ID:        fmt.Sprintf("mock_c%d", i),
				Kind:      domain.KindReply,
				Subreddit: sub,
				BodyHTML:  fmt.Sprintf(`<div class="md"><p><a href="https://github.com/simulated_user/%s">repo</a> by <a href="/u/simulated_user">me</a></p></div>`, sub),
			},
			domain.SavedItem{
				ID:        fmt.Sprintf("mock_removed%d", i),
				Kind:      domain.KindReply,
				Subreddit: sub,
			},
		)
	}
	items = append(items, domain.SavedItem{ID: "mock_award", Kind: "t6", Subreddit: subs[0]})

	return &MockClient{Items: items}
}

func (mc *MockClient) Saved(ctx context.Context, sub string, limit int) iter.Seq2[domain.SavedItem, error] {
	return func(yield func(domain.SavedItem, error) bool) {
		for i, item := range mc.Items {
			if limit > 0 && i >= limit {
				return
			}
			if err := ctx.Err(); err != nil {
				yield(domain.SavedItem{}, err)
				return
			}
			if sub != "" && !strings.EqualFold(item.Subreddit, sub) {
				continue
			}
			if !yield(item, nil) {
				return
			}
		}
	}
}
