package main

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lmittmann/tint"

	"github.com/qepting91/saved-links/internal/collector"
	"github.com/qepting91/saved-links/internal/config"
	"github.com/qepting91/saved-links/internal/ingest"
	"github.com/qepting91/saved-links/internal/pipeline"
	"github.com/qepting91/saved-links/internal/storage"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, config.ErrHelp) {
			os.Exit(0)
		}
		slog.Error("Run failed", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	// 1. Setup
	cfg, err := config.Load(args)
	if err != nil {
		return err
	}
	logger := setupLog(cfg, stderr)

	if cfg.LimitInvalid {
		logger.Warn("Ignoring non-numeric LIMIT, pulling without limit", "limit", cfg.Limit)
	}
	logger.Info("Limit of saved entries to pull", "limit", cfg.LimitN)

	// 2. Load Inputs
	blacklist := ingest.LoadList(cfg.BlacklistFile, logger)
	logger.Debug("Loaded blacklist", "count", len(blacklist), "terms", blacklist)
	whitelist := ingest.LoadList(cfg.WhitelistFile, logger)
	logger.Debug("Loaded whitelist", "count", len(whitelist), "terms", whitelist)
	titleFilter := ingest.LoadList(cfg.TitleFilterFile, logger)
	subs := ingest.LoadSubreddits(cfg.SubredditsFile, logger)
	logger.Debug("Loaded subreddits", "count", len(subs), "subs", subs)

	// 3. Initialize Client (Using Factory)
	client, err := collector.NewCollector(cfg.Collector(subs))
	if err != nil {
		return err
	}
	logger.Info("Collector initialized", "mode", cfg.Mode)

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if v, ok := client.(interface{ Verify(context.Context) error }); ok {
		if err := v.Verify(ctx); err != nil {
			return err
		}
		logger.Info("Authenticated", "user", cfg.Username)
	}

	// 4. Run
	p := pipeline.New(client, pipeline.Config{
		Subreddits:  subs,
		Limit:       cfg.LimitN,
		Blacklist:   blacklist,
		Whitelist:   whitelist,
		TitleFilter: titleFilter,
	}, logger)

	urls, err := p.Run(ctx)
	if err != nil {
		return err
	}
	logger.Info("URLs found", "count", len(urls))

	// 5. Emit
	writer := &storage.WriterService{FilePath: cfg.Output, Format: cfg.OutputFormat, Stdout: stdout}
	return writer.Write(urls)
}

func setupLog(cfg *config.Config, stderr io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.LogJSON {
		handler = slog.NewJSONHandler(stderr, &slog.HandlerOptions{Level: level})
	} else {
		handler = tint.NewHandler(stderr, &tint.Options{Level: level, TimeFormat: time.TimeOnly, NoColor: cfg.Colorless()})
	}

	logger := slog.New(handler)
	slog.SetDefault(logger)
	return logger
}
