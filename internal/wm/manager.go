package wm

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/1broseidon/mwm/internal/config"
	"github.com/1broseidon/mwm/internal/hotkeys"
	"github.com/1broseidon/mwm/internal/movemode"
	"github.com/1broseidon/mwm/internal/platform"
	"github.com/1broseidon/mwm/internal/tiling"
)

// Exit codes returned by Run. The quit action may pass any other value.
const (
	ExitQuit    = 0
	ExitRestart = 1
)

// Notification urgency levels.
const (
	urgencyNormal   byte = 1
	urgencyCritical byte = 2
)

// ErrNoMonitors is returned by New when the backend reports no displays.
var ErrNoMonitors = errors.New("no monitors reported")

// Notifier delivers desktop notifications. Delivery is fire-and-forget.
type Notifier interface {
	Notify(body string, urgency byte, timeout time.Duration)
}

// Spawner starts user commands detached from the window manager.
type Spawner interface {
	Spawn(argv []string) error
}

// Options holds the collaborators of a Manager.
type Options struct {
	Logger   *slog.Logger
	Notifier Notifier
	Spawner  Spawner
}

type borderColors struct {
	focus   platform.Pixel
	unfocus platform.Pixel
	infocus platform.Pixel
}

// Manager is the window manager state machine. All methods run on the
// goroutine that calls Run.
type Manager struct {
	cfg      *config.Config
	backend  platform.Backend
	logger   *slog.Logger
	notifier Notifier
	spawner  Spawner

	store    Store
	monitors []Monitor
	currMon  int

	colors   borderColors
	bindings *hotkeys.Table
	drag     *movemode.Mode
	terminal []string

	running  bool
	exitCode int
	err      error
}

// New builds a Manager for the displays reported by backend. Colors are
// allocated and key grabs installed here; windows are adopted by Run.
func New(cfg *config.Config, backend platform.Backend, opts Options) (*Manager, error) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	notifier := opts.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}

	mode, err := tiling.ParseMode(string(cfg.DefaultMode))
	if err != nil {
		return nil, err
	}

	displays, err := backend.Displays()
	if err != nil {
		return nil, fmt.Errorf("query displays: %w", err)
	}
	if len(displays) == 0 {
		return nil, ErrNoMonitors
	}

	m := &Manager{
		cfg:      cfg,
		backend:  backend,
		logger:   logger,
		notifier: notifier,
		spawner:  opts.Spawner,
		drag:     movemode.New(),
		terminal: cfg.ResolveTerminal(),
		running:  true,
	}
	for _, d := range displays {
		m.monitors = append(m.monitors, newMonitor(d.Bounds, cfg.Desktops, mode, cfg.DefaultDesktop))
	}

	focus, unfocus, infocus := cfg.BorderColors()
	if m.colors.focus, err = backend.AllocColor(focus); err != nil {
		return nil, fmt.Errorf("focus color %q: %w", focus, err)
	}
	if m.colors.unfocus, err = backend.AllocColor(unfocus); err != nil {
		return nil, fmt.Errorf("unfocus color %q: %w", unfocus, err)
	}
	if m.colors.infocus, err = backend.AllocColor(infocus); err != nil {
		return nil, fmt.Errorf("infocus color %q: %w", infocus, err)
	}

	m.grabKeys()
	backend.SetCurrentDesktop(cfg.DefaultDesktop)

	logger.Info("window manager ready",
		"monitors", len(m.monitors),
		"desktops", cfg.Desktops,
		"mode", mode.String(),
	)
	return m, nil
}

// Run adopts the windows already on screen and dispatches events until a
// quit action. It returns the quit code. A non-nil error means the display
// connection failed; the code is then meaningless.
func (m *Manager) Run() (int, error) {
	m.adopt()
	m.notify("WM init", urgencyCritical, time.Second)

	for m.running {
		ev, err := m.backend.NextEvent()
		if err != nil {
			return m.exitCode, fmt.Errorf("next event: %w", err)
		}
		m.handle(ev)
	}
	if m.err != nil {
		return m.exitCode, m.err
	}

	m.cleanup()
	m.notify("WM deinit", urgencyCritical, time.Second)
	m.logger.Info("window manager stopped", "code", m.exitCode)
	return m.exitCode, nil
}

// fail stops the loop with a fatal error.
func (m *Manager) fail(err error) {
	m.err = err
	m.running = false
}

// cleanup releases key grabs. On a plain quit every top-level window is
// asked to close; on restart they stay mapped for the next instance.
func (m *Manager) cleanup() {
	m.backend.UngrabKeys()
	if m.exitCode == ExitQuit {
		children, err := m.backend.Children()
		if err != nil {
			m.logger.Warn("list windows on quit", "error", err)
		}
		for _, w := range children {
			m.backend.SendDelete(w)
		}
	}
	m.backend.Sync()
}

// grabKeys (re)installs every key grab from the configured bindings.
func (m *Manager) grabKeys() {
	table, err := hotkeys.Compile(m.cfg.Keys, m.cfg.Buttons, m.backend)
	if err != nil {
		m.logger.Warn("some bindings could not be resolved", "error", err)
	}
	m.bindings = table

	m.backend.UngrabKeys()
	for _, k := range table.Keys {
		for _, code := range k.Codes {
			m.backend.GrabKey(k.Mods, code)
		}
	}
}

func (m *Manager) monitor() *Monitor {
	return &m.monitors[m.currMon]
}

func (m *Manager) desktop() *Desktop {
	return m.monitor().desktop()
}

func (m *Manager) monitorIndex(mon *Monitor) int {
	for i := range m.monitors {
		if &m.monitors[i] == mon {
			return i
		}
	}
	return -1
}

// location names where a managed window lives.
type location struct {
	id      ClientID
	monitor int
	desktop int
}

func (l location) monitorOf(m *Manager) *Monitor {
	return &m.monitors[l.monitor]
}

func (l location) desktopOf(m *Manager) *Desktop {
	return &m.monitors[l.monitor].Desktops[l.desktop]
}

// lookup finds the client holding win on any monitor and desktop.
func (m *Manager) lookup(win platform.WindowID) (location, bool) {
	for mi := range m.monitors {
		for di := range m.monitors[mi].Desktops {
			for _, id := range m.monitors[mi].Desktops[di].clients {
				if c := m.store.Get(id); c != nil && c.Window == win {
					return location{id: id, monitor: mi, desktop: di}, true
				}
			}
		}
	}
	return location{}, false
}

// Monitors returns the monitor state. It is meant for inspection only.
func (m *Manager) Monitors() []Monitor {
	return m.monitors
}

// CurrentMonitor returns the index of the active monitor.
func (m *Manager) CurrentMonitor() int {
	return m.currMon
}

// Client resolves id.
func (m *Manager) Client(id ClientID) *Client {
	return m.store.Get(id)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, byte, time.Duration) {}
