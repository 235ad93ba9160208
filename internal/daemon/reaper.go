package daemon

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"golang.org/x/sys/unix"
)

// waitFunc collects one exited child without blocking. It returns a pid
// of 0 when children exist but none has exited.
type waitFunc func() (int, unix.WaitStatus, error)

func wait4Any() (int, unix.WaitStatus, error) {
	var ws unix.WaitStatus
	pid, err := unix.Wait4(-1, &ws, unix.WNOHANG, nil)
	return pid, ws, err
}

// ReaperConfig holds configuration for the reaper.
type ReaperConfig struct {
	// Interval is a fallback sweep period for SIGCHLDs coalesced while a
	// sweep was running. Zero means 30 seconds.
	Interval time.Duration
	Logger   *slog.Logger
}

// Reaper collects exited children of the window manager so spawned
// commands never linger as zombies.
type Reaper struct {
	interval time.Duration
	logger   *slog.Logger
	wait     waitFunc
}

// NewReaper creates a reaper with the given configuration.
func NewReaper(cfg ReaperConfig) *Reaper {
	interval := cfg.Interval
	if interval <= 0 {
		interval = 30 * time.Second
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Reaper{
		interval: interval,
		logger:   logger,
		wait:     wait4Any,
	}
}

// Run reaps on every SIGCHLD until ctx is cancelled. Children that exited
// before Run started are collected immediately.
func (r *Reaper) Run(ctx context.Context) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, unix.SIGCHLD)
	defer signal.Stop(sigs)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	r.logger.Debug("reaper started")
	r.Reap()
	for {
		select {
		case <-ctx.Done():
			r.logger.Debug("reaper stopped")
			return
		case <-sigs:
			r.Reap()
		case <-ticker.C:
			r.Reap()
		}
	}
}

// Reap collects every child that has exited and returns how many it found.
func (r *Reaper) Reap() int {
	n := 0
	for {
		pid, ws, err := r.wait()
		if errors.Is(err, unix.EINTR) {
			continue
		}
		if err != nil {
			if !errors.Is(err, unix.ECHILD) {
				r.logger.Warn("wait for children", "error", err)
			}
			return n
		}
		if pid <= 0 {
			return n
		}
		n++
		r.logger.Debug("reaped child", "pid", pid, "status", ws.ExitStatus())
	}
}
