package collector

import (
	"context"
	"fmt"
	"iter"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/loganintech/go-reddit/v2/reddit"
	"github.com/qepting91/saved-links/internal/domain"
	"golang.org/x/time/rate"
)

type APIClient struct {
	client   *reddit.Client
	limiter  *rate.Limiter
	username string
}

func NewAPIClient(id, secret, user, pass, userAgent string, opts ...reddit.Opt) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	opts = append([]reddit.Opt{reddit.WithUserAgent(userAgent)}, opts...)
	client, err := reddit.NewClient(creds, opts...)
	if err != nil {
		return nil, err
	}

	// API Rate Limit: ~60 reqs/min (safe buffer)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	return &APIClient{client: client, limiter: limiter, username: user}, nil
}

// Verify checks the authenticated account is the configured user
func (ac *APIClient) Verify(ctx context.Context) error {
	if err := ac.limiter.Wait(ctx); err != nil {
		return err
	}
	me, _, err := ac.client.Account.Info(ctx)
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}
	if !strings.EqualFold(me.Name, ac.username) {
		return fmt.Errorf("authenticated as %q, expected %q", me.Name, ac.username)
	}
	return nil
}

func (ac *APIClient) Saved(ctx context.Context, sub string, limit int) iter.Seq2[domain.SavedItem, error] {
	return savedStream(ctx, sub, limit, ac.fetchPage)
}

// fetchPage goes through the raw listing endpoint: the typed go-reddit models
// do not carry the rendered selftext_html/body_html fields.
func (ac *APIClient) fetchPage(ctx context.Context, after string, size int) (*listingResponse, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("limit", strconv.Itoa(size))
	q.Set("raw_json", "1")
	if after != "" {
		q.Set("after", after)
	}
	path := fmt.Sprintf("user/%s/saved.json?%s", url.PathEscape(ac.username), q.Encode())

	req, err := ac.client.NewRequest(http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("build saved request: %w", err)
	}

	var page listingResponse
	if _, err := ac.client.Do(ctx, req, &page); err != nil {
		return nil, fmt.Errorf("authenticated api error: %w", err)
	}
	return &page, nil
}
