// Package pipeline wires fetch, classify, extract and filter into one run.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/qepting91/saved-links/internal/domain"
	"github.com/qepting91/saved-links/internal/links"
)

// Config is the immutable input of a run
type Config struct {
	Subreddits  []string
	Limit       int // per fetch, <= 0 means the collector default
	Blacklist   []string
	Whitelist   []string
	TitleFilter []string
}

type Pipeline struct {
	collector domain.Collector
	cfg       Config
	logger    *slog.Logger
}

func New(c domain.Collector, cfg Config, logger *slog.Logger) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	return &Pipeline{collector: c, cfg: cfg, logger: logger}
}

// Run returns the filtered external URLs of all saved items in the configured
// subreddits. Any fetch failure aborts the run with no partial result.
func (p *Pipeline) Run(ctx context.Context) ([]string, error) {
	items, err := p.fetch(ctx)
	if err != nil {
		return nil, err
	}

	posts, replies := links.Classify(items)
	p.logger.Info("Classified saved items", "posts", len(posts), "replies", len(replies), "dropped", len(items)-len(posts)-len(replies))

	var raw []string
	for _, post := range posts {
		if term, hit := titleHit(post.Title, p.cfg.TitleFilter); hit {
			p.logger.Debug("Excluding post (title filter)", "id", post.ID, "term", term)
			continue
		}
		raw = append(raw, p.extract(post)...)
	}
	for _, reply := range replies {
		raw = append(raw, p.extract(reply)...)
	}
	p.logger.Debug("Extracted links", "count", len(raw))

	f := links.Filter{Blacklist: p.cfg.Blacklist, Whitelist: p.cfg.Whitelist, Logger: p.logger}
	return f.Apply(raw), nil
}

func (p *Pipeline) fetch(ctx context.Context) ([]domain.SavedItem, error) {
	subs := p.cfg.Subreddits
	switch len(subs) {
	case 0:
		p.logger.Warn("No subreddits configured, nothing to fetch")
		return nil, nil
	case 1:
		p.logger.Info("Fetching saved items", "sub", subs[0], "limit", p.cfg.Limit)
		return p.fetchOne(ctx, subs[0])
	}

	var items []domain.SavedItem
	for _, sub := range subs {
		p.logger.Info("Fetching saved items", "sub", sub, "limit", p.cfg.Limit)
		got, err := p.fetchOne(ctx, sub)
		if err != nil {
			return nil, err
		}
		items = append(items, got...)
	}
	return items, nil
}

func (p *Pipeline) fetchOne(ctx context.Context, sub string) ([]domain.SavedItem, error) {
	var items []domain.SavedItem
	for item, err := range p.collector.Saved(ctx, sub, p.cfg.Limit) {
		if err != nil {
			return nil, fmt.Errorf("fetch saved items for r/%s: %w", sub, err)
		}
		items = append(items, item)
	}
	return items, nil
}

func (p *Pipeline) extract(item domain.SavedItem) []string {
	hrefs, removed := links.Extract(item)
	if removed {
		p.logger.Warn("Saved item looks to be removed", "id", item.ID, "kind", string(item.Kind), "title", item.Title)
		return nil
	}
	p.logger.Debug("Pulled links", "id", item.ID, "count", len(hrefs))
	return hrefs
}

func titleHit(title string, terms []string) (string, bool) {
	lower := strings.ToLower(title)
	for _, term := range terms {
		if term != "" && strings.Contains(lower, strings.ToLower(term)) {
			return term, true
		}
	}
	return "", false
}
