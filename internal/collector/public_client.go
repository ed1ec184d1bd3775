package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/qepting91/saved-links/internal/domain"
	"golang.org/x/time/rate"
)

const defaultFeedBaseURL = "https://www.reddit.com"

// FeedClient reads the saved listing through the account's private JSON feed
// (the feed token from reddit's preferences page), no OAuth app required.
type FeedClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	baseURL    string
	username   string
	token      string
	userAgent  string
}

func NewFeedClient(username, token, userAgent string) (*FeedClient, error) {
	if username == "" || token == "" {
		return nil, fmt.Errorf("username and feed token are required for feed mode")
	}
	return &FeedClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON Limit: 1 req / 2 seconds (Stricter)
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		baseURL:   defaultFeedBaseURL,
		username:  username,
		token:     token,
		userAgent: userAgent,
	}, nil
}

func (fc *FeedClient) Saved(ctx context.Context, sub string, limit int) iter.Seq2[domain.SavedItem, error] {
	return savedStream(ctx, sub, limit, fc.fetchPage)
}

func (fc *FeedClient) fetchPage(ctx context.Context, after string, size int) (*listingResponse, error) {
	if err := fc.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("feed", fc.token)
	q.Set("user", fc.username)
	q.Set("limit", strconv.Itoa(size))
	q.Set("raw_json", "1")
	if after != "" {
		q.Set("after", after)
	}
	u := fmt.Sprintf("%s/user/%s/saved.json?%s", fc.baseURL, url.PathEscape(fc.username), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", fc.userAgent)

	resp, err := fc.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("reddit feed access status: %d", resp.StatusCode)
	}

	var page listingResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode saved feed: %w", err)
	}
	return &page, nil
}
