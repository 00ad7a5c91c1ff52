package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"platewatch/internal/app"
)

func main() {
	configPath := flag.String("config", "", "path to config file (default ~/.config/platewatch/config.toml)")
	pollEvery := flag.Int("poll", 0, "poll interval in seconds (overrides saved preference)")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := app.Run(ctx, app.Options{
		ConfigPath: *configPath,
		PollEvery:  *pollEvery,
	}); err != nil {
		fmt.Fprintf(os.Stderr, "platewatch: %v\n", err)
		os.Exit(1)
	}
}
