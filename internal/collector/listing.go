package collector

import (
	"context"
	"iter"
	"strings"

	"github.com/qepting91/saved-links/internal/domain"
)

// Reddit caps listing pages at 100 entries
const maxPageSize = 100

type listingResponse struct {
	Data struct {
		After    string `json:"after"`
		Children []struct {
			Kind string `json:"kind"`
			Data struct {
				ID           string `json:"id"`
				Subreddit    string `json:"subreddit"`
				Title        string `json:"title"`
				SelfTextHTML string `json:"selftext_html"`
				BodyHTML     string `json:"body_html"`
			} `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

func (lr *listingResponse) items() []domain.SavedItem {
	items := make([]domain.SavedItem, 0, len(lr.Data.Children))
	for _, child := range lr.Data.Children {
		d := child.Data
		items = append(items, domain.SavedItem{
			ID:           d.ID,
			Kind:         domain.Kind(child.Kind),
			Subreddit:    d.Subreddit,
			Title:        d.Title,
			SelfTextHTML: d.SelfTextHTML,
			BodyHTML:     d.BodyHTML,
		})
	}
	return items
}

// pageFetcher fetches one page of the saved listing starting after the given cursor
type pageFetcher func(ctx context.Context, after string, size int) (*listingResponse, error)

// savedStream pages through the saved listing lazily. limit caps the number of
// listing entries consumed (before subreddit filtering); limit <= 0 pages
// until the cursor runs out. An empty subreddit keeps every entry.
func savedStream(ctx context.Context, subreddit string, limit int, fetch pageFetcher) iter.Seq2[domain.SavedItem, error] {
	return func(yield func(domain.SavedItem, error) bool) {
		after := ""
		consumed := 0
		for {
			size := maxPageSize
			if limit > 0 && limit-consumed < size {
				size = limit - consumed
			}

			page, err := fetch(ctx, after, size)
			if err != nil {
				yield(domain.SavedItem{}, err)
				return
			}

			items := page.items()
			for _, item := range items {
				consumed++
				if subreddit == "" || strings.EqualFold(item.Subreddit, subreddit) {
					if !yield(item, nil) {
						return
					}
				}
				if limit > 0 && consumed >= limit {
					return
				}
			}

			after = page.Data.After
			if after == "" || len(items) == 0 {
				return
			}
		}
	}
}
