package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/jessevdk/go-flags"
	"github.com/joho/godotenv"

	"github.com/qepting91/saved-links/internal/collector"
)

// Opts with all CLI options; every option can come from the environment or a .env file
type Opts struct {
	EnvFile string `long:"env-file" default:".env" description:"dotenv file loaded before reading the environment"`

	Mode         string `long:"mode" env:"COLLECTOR_MODE" default:"api" choice:"api" choice:"feed" choice:"mock" description:"saved listing source"`
	ClientID     string `long:"client-id" env:"REDDIT_CLIENT_ID" description:"reddit app client id"`
	ClientSecret string `long:"client-secret" env:"REDDIT_CLIENT_SECRET" description:"reddit app client secret"`
	Username     string `long:"username" env:"REDDIT_USERNAME" description:"reddit account name"`
	Password     string `long:"password" env:"REDDIT_PASSWORD" description:"reddit account password"`
	UserAgent    string `long:"user-agent" env:"REDDIT_USER_AGENT" description:"user agent sent to reddit"`
	FeedToken    string `long:"feed-token" env:"REDDIT_FEED_TOKEN" description:"private feed token (feed mode)"`

	Limit           string `long:"limit" env:"LIMIT" description:"max saved entries pulled per subreddit, empty for no limit"`
	BlacklistFile   string `long:"blacklist" env:"BLACKLISTFILE" description:"file with blacklisted domain terms"`
	WhitelistFile   string `long:"whitelist" env:"WHITELISTFILE" description:"file with whitelisted domain terms"`
	SubredditsFile  string `long:"subreddits" env:"SUBREDDITSFILE" description:"file with target subreddits"`
	TitleFilterFile string `long:"title-filter" env:"TITLEFILTERFILE" description:"file with post title terms to exclude"`

	Output       string `short:"o" long:"output" env:"OUTPUT" default:"-" description:"output file, - for stdout"`
	OutputFormat string `long:"format" env:"OUTPUT_FORMAT" default:"plain" choice:"plain" choice:"ndjson" description:"output format"`

	Debug   bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	LogJSON bool `long:"log-json" env:"LOG_JSON" description:"log as JSON instead of colored text"`
	NoColor string `long:"no-color" env:"NO_COLOR" optional:"yes" optional-value:"1" description:"disable color output (any non-empty value)"`
}

// Config is the validated run configuration
type Config struct {
	Opts
	LimitN       int  // parsed Limit, 0 means no limit
	LimitInvalid bool // Limit was set but not a positive number
}

// ErrHelp is returned when help was requested
var ErrHelp = errors.New("help requested")

// Load loads the env file, parses args over the environment and validates
// the credentials required by the selected mode.
func Load(args []string) (*Config, error) {
	envFile := ".env"
	for i, a := range args {
		if a == "--env-file" && i+1 < len(args) {
			envFile = args[i+1]
		}
		if v, ok := strings.CutPrefix(a, "--env-file="); ok {
			envFile = v
		}
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load env file %s: %w", envFile, err)
	}

	var opts Opts
	parser := flags.NewParser(&opts, flags.Default)
	if _, err := parser.ParseArgs(args); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return nil, ErrHelp
		}
		return nil, err
	}

	cfg := &Config{Opts: opts}
	if v := strings.TrimSpace(opts.Limit); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			cfg.LimitInvalid = true
		} else {
			cfg.LimitN = n
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var required map[string]string
	switch c.Mode {
	case "api":
		required = map[string]string{
			"REDDIT_CLIENT_ID":     c.ClientID,
			"REDDIT_CLIENT_SECRET": c.ClientSecret,
			"REDDIT_USERNAME":      c.Username,
			"REDDIT_PASSWORD":      c.Password,
			"REDDIT_USER_AGENT":    c.UserAgent,
		}
	case "feed":
		required = map[string]string{
			"REDDIT_USERNAME":   c.Username,
			"REDDIT_FEED_TOKEN": c.FeedToken,
			"REDDIT_USER_AGENT": c.UserAgent,
		}
	}

	var missing []string
	for key, val := range required {
		if strings.TrimSpace(val) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		slices.Sort(missing)
		return fmt.Errorf("missing setting for %s (%s mode)", strings.Join(missing, ", "), c.Mode)
	}
	return nil
}

// Colorless reports whether colored output is disabled, following the
// NO_COLOR convention where any non-empty value counts
func (c *Config) Colorless() bool {
	return c.NoColor != ""
}

// Collector returns the collector settings; subs seed mock mode
func (c *Config) Collector(subs []string) collector.Settings {
	return collector.Settings{
		Mode:         c.Mode,
		ClientID:     c.ClientID,
		ClientSecret: c.ClientSecret,
		Username:     c.Username,
		Password:     c.Password,
		UserAgent:    c.UserAgent,
		FeedToken:    c.FeedToken,
		Subreddits:   subs,
	}
}
