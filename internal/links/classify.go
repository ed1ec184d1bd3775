// Package links turns saved reddit entries into a filtered list of external URLs.
package links

import "github.com/qepting91/saved-links/internal/domain"

// Classify splits items into posts and replies, preserving input order.
// Items of any other kind are dropped without error.
func Classify(items []domain.SavedItem) (posts, replies []domain.SavedItem) {
	for _, item := range items {
		switch item.Kind {
		case domain.KindPost:
			posts = append(posts, item)
		case domain.KindReply:
			replies = append(replies, item)
		}
	}
	return posts, replies
}
