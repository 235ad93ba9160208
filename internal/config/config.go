package config

import (
	"fmt"
	"strings"
)

// LayoutMode names a desktop arrangement.
type LayoutMode string

const (
	LayoutTile        LayoutMode = "tile"
	LayoutMonocle     LayoutMode = "monocle"
	LayoutBottomStack LayoutMode = "bstack"
	LayoutGrid        LayoutMode = "grid"
)

// Rule places windows whose class or instance contains Class.
// A nil Monitor or Desktop keeps the active one.
type Rule struct {
	Class   string `yaml:"class"`
	Monitor *int   `yaml:"monitor,omitempty"`
	Desktop *int   `yaml:"desktop,omitempty"`
	Follow  bool   `yaml:"follow"`
}

// Config is the effective window manager configuration.
type Config struct {
	MasterSize     float64    `yaml:"master_size"`
	AttachAside    bool       `yaml:"attach_aside"`
	FollowWindow   bool       `yaml:"follow_window"`
	FollowMouse    bool       `yaml:"follow_mouse"`
	ClickToFocus   bool       `yaml:"click_to_focus"`
	FocusButton    int        `yaml:"focus_button"`
	BorderWidth    int        `yaml:"border_width"`
	FocusColor     string     `yaml:"focus_color"`
	UnfocusColor   string     `yaml:"unfocus_color"`
	InfocusColor   string     `yaml:"infocus_color"` // empty means FocusColor
	MinWindowSize  int        `yaml:"min_window_size"`
	Desktops       int        `yaml:"desktops"`
	DefaultDesktop int        `yaml:"default_desktop"`
	DefaultMode    LayoutMode `yaml:"default_mode"`
	StatusFile     string     `yaml:"status_file"`
	Terminal       string     `yaml:"terminal"`
	LogLevel       string     `yaml:"log_level"`
	LogFormat      string     `yaml:"log_format"`

	Rules   []Rule          `yaml:"rules"`
	Keys    []KeyBinding    `yaml:"keys"`
	Buttons []ButtonBinding `yaml:"buttons"`
}

func intPtr(v int) *int { return &v }

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		MasterSize:     0.55,
		AttachAside:    true,
		FollowWindow:   false,
		FollowMouse:    false,
		ClickToFocus:   true,
		FocusButton:    1,
		BorderWidth:    2,
		FocusColor:     "#ff950e",
		UnfocusColor:   "#444444",
		MinWindowSize:  50,
		Desktops:       4,
		DefaultDesktop: 0,
		DefaultMode:    LayoutTile,
		StatusFile:     "/tmp/status",
		LogLevel:       "info",
		LogFormat:      "auto",
		Rules: []Rule{
			{Class: "MPlayer", Monitor: intPtr(0), Desktop: intPtr(3), Follow: true},
			{Class: "Gimp", Monitor: intPtr(0), Desktop: intPtr(0), Follow: false},
		},
		Keys:    defaultKeys(),
		Buttons: defaultButtons(),
	}
}

func defaultKeys() []KeyBinding {
	key := func(chord string, action Action, b Binding) KeyBinding {
		b.Action = action
		return KeyBinding{Key: chord, Binding: b}
	}
	none := Binding{}
	n := func(v int) Binding { return Binding{Arg: IntArg(v)} }
	move := func(dx, dy, dw, dh int) Binding { return Binding{Args: []int{dx, dy, dw, dh}} }

	keys := []KeyBinding{
		key("Mod4-BackSpace", ActionFocusUrgent, none),
		key("Mod4-Shift-c", ActionKillClient, none),
		key("Mod4-Tab", ActionNextWin, none),
		key("Mod4-Shift-Tab", ActionPrevWin, none),
		key("Mod4-space", ActionStatus, none),
		key("Mod4-h", ActionResizeMaster, n(-10)),
		key("Mod4-l", ActionResizeMaster, n(+10)),
		key("Mod4-j", ActionResizeStack, n(-10)),
		key("Mod4-k", ActionResizeStack, n(+10)),
		key("Mod4-equal", ActionRotate, n(-1)),
		key("Mod4-minus", ActionRotate, n(+1)),
		key("Mod4-o", ActionMoveDown, none),
		key("Mod4-p", ActionMoveUp, none),
		key("Mod4-bracketleft", ActionRotateFilled, n(-1)),
		key("Mod4-bracketright", ActionRotateFilled, n(+1)),
		key("Mod4-grave", ActionLastDesktop, none),
		key("Mod4-Return", ActionSwapMaster, none),
		key("Mod4-t", ActionSetLayout, Binding{Arg: StringArg(string(LayoutTile))}),
		key("Mod4-m", ActionSetLayout, Binding{Arg: StringArg(string(LayoutMonocle))}),
		key("Mod4-b", ActionSetLayout, Binding{Arg: StringArg(string(LayoutBottomStack))}),
		key("Mod4-g", ActionSetLayout, Binding{Arg: StringArg(string(LayoutGrid))}),
		key("Mod4-Shift-r", ActionQuit, n(0)),
		key("Mod4-Shift-q", ActionQuit, n(1)),
		key("Mod4-Shift-Return", ActionSpawnTerminal, none),
		key("Mod4-Escape", ActionSpawn, Binding{Command: []string{"dmenu_run"}}),
		key("Mod4-Control-j", ActionMoveResize, move(0, 25, 0, 0)),
		key("Mod4-Control-k", ActionMoveResize, move(0, -25, 0, 0)),
		key("Mod4-Control-l", ActionMoveResize, move(25, 0, 0, 0)),
		key("Mod4-Control-h", ActionMoveResize, move(-25, 0, 0, 0)),
		key("Mod4-Control-Shift-j", ActionMoveResize, move(0, 0, 0, 25)),
		key("Mod4-Control-Shift-k", ActionMoveResize, move(0, 0, 0, -25)),
		key("Mod4-Control-Shift-l", ActionMoveResize, move(0, 0, 25, 0)),
		key("Mod4-Control-Shift-h", ActionMoveResize, move(0, 0, -25, 0)),
	}
	for i, sym := range []string{"1", "2", "3", "4"} {
		keys = append(keys,
			key("Mod4-"+sym, ActionChangeDesktop, n(i)),
			key("Mod4-Shift-"+sym, ActionClientToDesktop, n(i)),
		)
	}
	for i, sym := range []string{"F1", "F2"} {
		keys = append(keys,
			key("Mod4-"+sym, ActionChangeMonitor, n(i)),
			key("Mod4-Shift-"+sym, ActionClientToMonitor, n(i)),
		)
	}
	return keys
}

func defaultButtons() []ButtonBinding {
	return []ButtonBinding{
		{Button: "2", Binding: Binding{Action: ActionMouseMotion, Arg: StringArg(MotionMove)}},
		{Button: "Control-3", Binding: Binding{Action: ActionMouseMotion, Arg: StringArg(MotionResize)}},
		{Button: "Mod4-3", Binding: Binding{Action: ActionSpawn, Command: []string{"dmenu_run"}}},
	}
}

// BorderColors returns the focused, unfocused and focused-on-inactive-monitor
// colors.
func (c *Config) BorderColors() (focus, unfocus, infocus string) {
	infocus = c.InfocusColor
	if strings.TrimSpace(infocus) == "" {
		infocus = c.FocusColor
	}
	return c.FocusColor, c.UnfocusColor, infocus
}

// Validate checks the effective configuration.
func (c *Config) Validate() error {
	if c.MasterSize <= 0 || c.MasterSize >= 1 {
		return &ValidationError{Path: "master_size", Err: fmt.Errorf("master_size must be between 0 and 1 (exclusive)")}
	}
	if c.BorderWidth < 0 {
		return &ValidationError{Path: "border_width", Err: fmt.Errorf("border_width must be >= 0")}
	}
	if c.MinWindowSize <= 0 {
		return &ValidationError{Path: "min_window_size", Err: fmt.Errorf("min_window_size must be > 0")}
	}
	if c.FocusButton < 1 || c.FocusButton > 255 {
		return &ValidationError{Path: "focus_button", Err: fmt.Errorf("focus_button must be between 1 and 255")}
	}
	if c.Desktops < 1 {
		return &ValidationError{Path: "desktops", Err: fmt.Errorf("desktops must be >= 1")}
	}
	if c.DefaultDesktop < 0 || c.DefaultDesktop >= c.Desktops {
		return &ValidationError{Path: "default_desktop", Err: fmt.Errorf("default_desktop must be in [0, %d)", c.Desktops)}
	}
	switch c.DefaultMode {
	case LayoutTile, LayoutMonocle, LayoutBottomStack, LayoutGrid:
	default:
		return &ValidationError{Path: "default_mode", Err: fmt.Errorf("default_mode must be one of: tile, monocle, bstack, grid")}
	}
	if strings.TrimSpace(c.FocusColor) == "" {
		return &ValidationError{Path: "focus_color", Err: fmt.Errorf("focus_color is required")}
	}
	if strings.TrimSpace(c.UnfocusColor) == "" {
		return &ValidationError{Path: "unfocus_color", Err: fmt.Errorf("unfocus_color is required")}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	switch c.LogFormat {
	case "auto", "text", "json":
	default:
		return &ValidationError{Path: "log_format", Err: fmt.Errorf("log_format must be one of: auto, text, json")}
	}

	for i, r := range c.Rules {
		path := fmt.Sprintf("rules[%d]", i)
		if strings.TrimSpace(r.Class) == "" {
			return &ValidationError{Path: path + ".class", Err: fmt.Errorf("class must not be empty")}
		}
		if r.Monitor != nil && *r.Monitor < 0 {
			return &ValidationError{Path: path + ".monitor", Err: fmt.Errorf("monitor must be >= 0")}
		}
		if r.Desktop != nil && (*r.Desktop < 0 || *r.Desktop >= c.Desktops) {
			return &ValidationError{Path: path + ".desktop", Err: fmt.Errorf("desktop must be in [0, %d)", c.Desktops)}
		}
	}

	for i, k := range c.Keys {
		path := fmt.Sprintf("keys[%d]", i)
		if _, _, err := ParseChord(k.Key); err != nil {
			return &ValidationError{Path: path + ".key", Err: err}
		}
		if err := k.Binding.validate(c.Desktops); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
	}
	for i, b := range c.Buttons {
		path := fmt.Sprintf("buttons[%d]", i)
		if _, err := ParseButtonChord(b.Button); err != nil {
			return &ValidationError{Path: path + ".button", Err: err}
		}
		if err := b.Binding.validate(c.Desktops); err != nil {
			return &ValidationError{Path: path, Err: err}
		}
	}
	return nil
}
