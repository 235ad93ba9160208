package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgbutil"
	"github.com/spf13/pflag"

	"github.com/1broseidon/mwm/internal/config"
	"github.com/1broseidon/mwm/internal/daemon"
	"github.com/1broseidon/mwm/internal/notify"
	"github.com/1broseidon/mwm/internal/platform"
	"github.com/1broseidon/mwm/internal/wm"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var errUsage = errors.New("usage")

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	showVersion, err := parseArgs(args)
	if err != nil {
		printUsage(stderr)
		return 1
	}
	if showVersion {
		fmt.Fprintf(stdout, "version %s\n", version)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "mwm: failed to load configuration: %v\n", err)
		return 1
	}
	logger := newLogger(stderr, cfg.LogLevel, cfg.LogFormat, isTerminal(stderr))
	slog.SetDefault(logger)
	xgb.Logger = slog.NewLogLogger(logger.Handler(), slog.LevelWarn)
	xgbutil.Logger = slog.NewLogLogger(logger.Handler(), slog.LevelWarn)

	code, err := runWM(cfg, logger)
	if err != nil {
		logger.Error("window manager failed", "error", err)
		return 1
	}
	return code
}

// parseArgs accepts no arguments besides -v/--version.
func parseArgs(args []string) (bool, error) {
	flags := pflag.NewFlagSet("mwm", pflag.ContinueOnError)
	flags.SetOutput(io.Discard)
	showVersion := flags.BoolP("version", "v", false, "print version and exit")
	if err := flags.Parse(args); err != nil {
		return false, err
	}
	if flags.NArg() > 0 {
		return false, errUsage
	}
	return *showVersion, nil
}

func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: mwm [-v|--version]")
}

func runWM(cfg *config.Config, logger *slog.Logger) (int, error) {
	backend, err := platform.Connect("", cfg.Desktops, logger)
	if err != nil {
		return 0, err
	}
	defer backend.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reaper := daemon.NewReaper(daemon.ReaperConfig{Logger: logger})
	go reaper.Run(ctx)

	notifier := notify.Connect(logger)
	defer notifier.Close()

	m, err := wm.New(cfg, backend, wm.Options{
		Logger:   logger,
		Notifier: notifier,
		Spawner:  daemon.NewSpawner(logger, nil),
	})
	if err != nil {
		return 0, err
	}
	return m.Run()
}
