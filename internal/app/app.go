package app

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"

	"platewatch/internal/alpha"
	"platewatch/internal/config"
	"platewatch/internal/prefs"
	"platewatch/internal/registry"
	"platewatch/internal/ui"
)

// Options configure the platewatch application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/platewatch/prefs.toml
	PollEvery  int    // seconds; zero uses the preferences value
}

// Run boots the platewatch TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	redirectLogs()

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	userPrefs := prefs.Load(opts.PrefsPath)

	client, err := alpha.NewClient(cfg.EndpointURL, cfg.AccessKey)
	if err != nil {
		return fmt.Errorf("init table gateway: %w", err)
	}

	store := &registry.Store{}

	interval := time.Duration(userPrefs.PollSeconds) * time.Second
	if opts.PollEvery > 0 {
		interval = time.Duration(opts.PollEvery) * time.Second
	}

	poller := StartPoller(ctx, store, client, interval, userPrefs.AutoUpdate)

	// Populate the store before the UI starts so the first paint has data.
	refresh(ctx, store, client)

	uiOpts := ui.Options{
		Context:      ctx,
		Store:        store,
		Poller:       poller,
		PollInterval: interval,
		Prefs:        userPrefs,
		PrefsPath:    opts.PrefsPath,
	}
	return ui.Run(uiOpts)
}

// redirectLogs points the stdlib logger at a cache file; the TUI owns
// the terminal, so poll failures must not write to stdout.
func redirectLogs() {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	dir := filepath.Join(cacheDir, "platewatch")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		log.SetOutput(io.Discard)
		return
	}
	file, err := os.OpenFile(filepath.Join(dir, "platewatch.log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		log.SetOutput(io.Discard)
		return
	}
	log.SetOutput(file)
}
