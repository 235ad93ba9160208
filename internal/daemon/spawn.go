package daemon

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"syscall"
)

// Spawner starts user commands in their own session. It never waits on
// them; a Reaper collects them once they exit.
type Spawner struct {
	logger *slog.Logger
	env    []string
}

// NewSpawner creates a spawner. A non-nil env replaces the inherited
// environment of every command.
func NewSpawner(logger *slog.Logger, env []string) *Spawner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Spawner{logger: logger, env: env}
}

// Spawn starts argv detached from the window manager's session.
func (s *Spawner) Spawn(argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}
	cmd := exec.Command(argv[0], argv[1:]...)
	cmd.Env = s.env
	// New session: the command must survive the window manager.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("spawn %q: %w", argv[0], err)
	}
	s.logger.Debug("spawned command", "command", argv[0], "pid", cmd.Process.Pid)
	return cmd.Process.Release()
}
