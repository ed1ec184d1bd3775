package collector

import (
	"errors"
	"fmt"

	"github.com/qepting91/saved-links/internal/domain"
)

// ErrUnknownMode is returned for a collector mode NewCollector does not know
var ErrUnknownMode = errors.New("unknown collector mode")

// Settings carries the already-resolved credentials for every mode
type Settings struct {
	Mode         string
	ClientID     string
	ClientSecret string
	Username     string
	Password     string
	UserAgent    string
	FeedToken    string
	Subreddits   []string // seeds mock data
}

// NewCollector selects the correct implementation based on the mode
func NewCollector(s Settings) (domain.Collector, error) {
	switch s.Mode {
	case "api":
		return NewAPIClient(s.ClientID, s.ClientSecret, s.Username, s.Password, s.UserAgent)
	case "feed":
		if s.UserAgent == "" {
			return nil, fmt.Errorf("REDDIT_USER_AGENT is required for feed mode")
		}
		return NewFeedClient(s.Username, s.FeedToken, s.UserAgent)
	case "mock":
		return NewMockClient(s.Subreddits...), nil
	default:
		return nil, fmt.Errorf("%w: %q (use 'api', 'feed', or 'mock')", ErrUnknownMode, s.Mode)
	}
}
