package pipeline

import (
	"context"
	"errors"
	"iter"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/qepting91/saved-links/internal/domain"
)

type call struct {
	sub   string
	limit int
}

type fakeCollector struct {
	bySub map[string][]domain.SavedItem
	fail  map[string]error
	calls []call
}

func (f *fakeCollector) Saved(_ context.Context, sub string, limit int) iter.Seq2[domain.SavedItem, error] {
	f.calls = append(f.calls, call{sub: sub, limit: limit})
	return func(yield func(domain.SavedItem, error) bool) {
		for i, item := range f.bySub[sub] {
			if limit > 0 && i >= limit {
				return
			}
			if !yield(item, nil) {
				return
			}
		}
		if err := f.fail[sub]; err != nil {
			yield(domain.SavedItem{}, err)
		}
	}
}

func TestRun_EndToEnd(t *testing.T) {
	fc := &fakeCollector{bySub: map[string][]domain.SavedItem{
		"golang": {
			{ID: "s1", Kind: domain.KindPost, Subreddit: "golang",
				SelfTextHTML: `<a href='http://example.com'>x</a><a href='/r/test'>y</a>`},
			{ID: "c1", Kind: domain.KindReply, Subreddit: "golang"},
		},
	}}

	urls, err := New(fc, Config{Subreddits: []string{"golang"}}, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://example.com"}, urls)
	assert.Equal(t, []call{{sub: "golang"}}, fc.calls)
}

func TestRun_PostsBeforeReplies(t *testing.T) {
	fc := &fakeCollector{bySub: map[string][]domain.SavedItem{
		"one": {
			{ID: "c1", Kind: domain.KindReply, BodyHTML: `<a href="https://reply.one/1">r</a>`},
			{ID: "s1", Kind: domain.KindPost, SelfTextHTML: `<a href="https://post.one/1">p</a>`},
		},
		"two": {
			{ID: "c2", Kind: domain.KindReply, BodyHTML: `<a href="https://reply.two/2">r</a>`},
			{ID: "x", Kind: "t6", SelfTextHTML: `<a href="https://award.example">a</a>`},
			{ID: "s2", Kind: domain.KindPost, SelfTextHTML: `<a href="https://post.two/2">p</a><a href="https://post.two/3">p</a>`},
		},
	}}

	urls, err := New(fc, Config{Subreddits: []string{"one", "two"}}, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{
		"https://post.one/1", "https://post.two/2", "https://post.two/3",
		"https://reply.one/1", "https://reply.two/2",
	}, urls)
	assert.Equal(t, []call{{sub: "one"}, {sub: "two"}}, fc.calls)
}

func TestRun_LimitPerFetch(t *testing.T) {
	items := []domain.SavedItem{
		{ID: "s1", Kind: domain.KindPost, SelfTextHTML: `<a href="https://a.com/1">1</a>`},
		{ID: "s2", Kind: domain.KindPost, SelfTextHTML: `<a href="https://a.com/2">2</a>`},
		{ID: "s3", Kind: domain.KindPost, SelfTextHTML: `<a href="https://a.com/3">3</a>`},
	}
	fc := &fakeCollector{bySub: map[string][]domain.SavedItem{"one": items, "two": items}}

	urls, err := New(fc, Config{Subreddits: []string{"one", "two"}, Limit: 2}, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com/1", "https://a.com/2", "https://a.com/1", "https://a.com/2"}, urls)
	assert.Equal(t, []call{{sub: "one", limit: 2}, {sub: "two", limit: 2}}, fc.calls)
}

func TestRun_Filters(t *testing.T) {
	fc := &fakeCollector{bySub: map[string][]domain.SavedItem{
		"golang": {
			{ID: "s1", Kind: domain.KindPost, Title: "Weekly links",
				SelfTextHTML: `<a href="http://evil.com/a">e</a><a href="http://good.com/b">g</a><a href="http://other.com/c">o</a>`},
			{ID: "s2", Kind: domain.KindPost, Title: "[META] Sub rules",
				SelfTextHTML: `<a href="http://good.com/rules">rules</a>`},
		},
	}}

	cfg := Config{
		Subreddits:  []string{"golang"},
		Blacklist:   []string{"evil.com"},
		Whitelist:   []string{"good.com", "evil.com"},
		TitleFilter: []string{"[meta]"},
	}
	urls, err := New(fc, cfg, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"http://good.com/b"}, urls)
}

func TestRun_FetchFailureAborts(t *testing.T) {
	boom := errors.New("503 service unavailable")
	fc := &fakeCollector{
		bySub: map[string][]domain.SavedItem{
			"one": {{ID: "s1", Kind: domain.KindPost, SelfTextHTML: `<a href="https://a.com">a</a>`}},
		},
		fail: map[string]error{"two": boom},
	}

	urls, err := New(fc, Config{Subreddits: []string{"one", "two", "three"}}, nil).Run(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "r/two")
	assert.Nil(t, urls)
	assert.Len(t, fc.calls, 2, "later subreddits are not fetched")
}

func TestRun_NoSubreddits(t *testing.T) {
	fc := &fakeCollector{}
	urls, err := New(fc, Config{}, nil).Run(context.Background())
	require.NoError(t, err)
	assert.Empty(t, urls)
	assert.Empty(t, fc.calls)
}

func TestRun_Idempotent(t *testing.T) {
	fc := &fakeCollector{bySub: map[string][]domain.SavedItem{
		"golang": {
			{ID: "s1", Kind: domain.KindPost, SelfTextHTML: `<a href="https://a.com/1">1</a><a href="/u/me">me</a>`},
			{ID: "c1", Kind: domain.KindReply, BodyHTML: `<a href="https://b.com/2">2</a>`},
		},
	}}
	p := New(fc, Config{Subreddits: []string{"golang"}, Blacklist: []string{"b.com"}}, nil)

	first, err := p.Run(context.Background())
	require.NoError(t, err)
	second, err := p.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.com/1"}, first)
	assert.Equal(t, first, second)
}
