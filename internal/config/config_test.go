package config

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, dir, name, data string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(data), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	return path
}

func TestDefaultConfig_Validates(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected defaults to validate, got %v", err)
	}
	if cfg.DefaultMode != LayoutTile {
		t.Fatalf("expected default mode tile, got %q", cfg.DefaultMode)
	}
	if len(cfg.Keys) == 0 || len(cfg.Buttons) == 0 {
		t.Fatalf("expected default key and button bindings")
	}
}

func TestLoadFromPath_MissingFileUsesDefaults(t *testing.T) {
	res, err := LoadFromPath(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.MasterSize != 0.55 {
		t.Fatalf("expected master_size 0.55, got %v", res.Config.MasterSize)
	}
	if len(res.Files) != 0 {
		t.Fatalf("expected no loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_EmptyFileUsesDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "# empty\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.Desktops != 4 {
		t.Fatalf("expected 4 desktops, got %d", res.Config.Desktops)
	}
}

func TestLoadFromPath_ScalarOverrides(t *testing.T) {
	data := strings.Join([]string{
		"master_size: 0.6",
		"attach_aside: false",
		"follow_mouse: true",
		"border_width: 3",
		"focus_color: \"#00ff00\"",
		"infocus_color: \"#0000ff\"",
		"default_mode: Grid",
		"log_level: DEBUG",
		"terminal: \"st -f 'Terminus 12'\"",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	cfg := res.Config
	if cfg.MasterSize != 0.6 || cfg.AttachAside || !cfg.FollowMouse || cfg.BorderWidth != 3 {
		t.Fatalf("unexpected scalar values: %+v", cfg)
	}
	if cfg.DefaultMode != LayoutGrid {
		t.Fatalf("expected grid mode, got %q", cfg.DefaultMode)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log_level debug, got %q", cfg.LogLevel)
	}
	focus, unfocus, infocus := cfg.BorderColors()
	if focus != "#00ff00" || unfocus != "#444444" || infocus != "#0000ff" {
		t.Fatalf("unexpected colors %q %q %q", focus, unfocus, infocus)
	}
	if got := cfg.ResolveTerminal(); !reflect.DeepEqual(got, []string{"st", "-f", "Terminus 12"}) {
		t.Fatalf("expected configured terminal argv, got %q", got)
	}
	if src := res.SourceOf("border_width"); src.Kind != SourceFile || src.Line != 4 {
		t.Fatalf("expected border_width from file line 4, got %+v", src)
	}
	if src := res.SourceOf("desktops"); src.Kind != SourceDefault {
		t.Fatalf("expected desktops from defaults, got %+v", src)
	}
}

func TestBorderColors_InfocusDefaultsToFocus(t *testing.T) {
	cfg := DefaultConfig()
	focus, _, infocus := cfg.BorderColors()
	if infocus != focus {
		t.Fatalf("expected infocus %q, got %q", focus, infocus)
	}
}

func TestLoadFromPath_BindingsReplaceDefaults(t *testing.T) {
	data := strings.Join([]string{
		"keys:",
		"  - {key: Mod1-1, action: change_desktop, arg: 0}",
		"  - {key: Mod1-Return, action: spawn, command: \"rofi -show run\"}",
		"  - {key: Mod1-Control-j, action: move_resize, args: [0, 25, 0, 0]}",
		"  - {key: Mod1-t, action: set_layout, arg: bstack}",
		"buttons:",
		"  - {button: Mod1-1, action: mouse_motion, arg: move}",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	keys := res.Config.Keys
	if len(keys) != 4 {
		t.Fatalf("expected 4 keys, got %d", len(keys))
	}
	if keys[0].Action != ActionChangeDesktop || !keys[0].Arg.IsInt || keys[0].Arg.Int != 0 {
		t.Fatalf("unexpected first key: %+v", keys[0])
	}
	if !reflect.DeepEqual([]string(keys[1].Command), []string{"rofi", "-show", "run"}) {
		t.Fatalf("expected split command, got %q", keys[1].Command)
	}
	if !reflect.DeepEqual(keys[2].Args, []int{0, 25, 0, 0}) {
		t.Fatalf("expected move args, got %v", keys[2].Args)
	}
	if keys[3].Arg.IsInt || keys[3].Arg.Str != "bstack" {
		t.Fatalf("expected string arg bstack, got %+v", keys[3].Arg)
	}
	if len(res.Config.Buttons) != 1 || res.Config.Buttons[0].Arg.Str != MotionMove {
		t.Fatalf("unexpected buttons: %+v", res.Config.Buttons)
	}
}

func TestLoadFromPath_StrictUnknownKeyErrors(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "unknown_key: 1\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error for unknown key")
	}
	if !strings.Contains(err.Error(), "unknown_key") && !strings.Contains(err.Error(), "field") {
		t.Fatalf("expected unknown field error, got %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to include file path, got %v", err)
	}
}

func TestLoadFromPath_ValidationErrorHasSourceContext(t *testing.T) {
	data := strings.Join([]string{
		"desktops: 2",
		"keys:",
		"  - {key: Mod4-1, action: change_desktop, arg: 0}",
		"  - {key: Mod4-3, action: change_desktop, arg: 2}",
		"",
	}, "\n")
	path := writeConfig(t, t.TempDir(), "config.yaml", data)

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected out-of-range desktop error")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %T: %v", err, err)
	}
	if verr.Path != "keys[1]" {
		t.Fatalf("expected path keys[1], got %q", verr.Path)
	}
	if !strings.Contains(err.Error(), path+":4:") {
		t.Fatalf("expected file:line prefix for line 4, got %v", err)
	}
}

func TestLoadFromPath_SmallDesktopCountTrimsDefaults(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "desktops: 2\n")

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, k := range res.Config.Keys {
		if (k.Action == ActionChangeDesktop || k.Action == ActionClientToDesktop) && k.Arg.Int >= 2 {
			t.Fatalf("expected desktop bindings past 1 to be dropped, found %+v", k)
		}
	}
	for _, r := range res.Config.Rules {
		if r.Desktop != nil && *r.Desktop >= 2 {
			t.Fatalf("expected rule %q to be dropped", r.Class)
		}
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		path   string
	}{
		{"master size too big", func(c *Config) { c.MasterSize = 1 }, "master_size"},
		{"negative border", func(c *Config) { c.BorderWidth = -1 }, "border_width"},
		{"zero min size", func(c *Config) { c.MinWindowSize = 0 }, "min_window_size"},
		{"no desktops", func(c *Config) { c.Desktops = 0 }, "desktops"},
		{"default desktop out of range", func(c *Config) { c.DefaultDesktop = 4 }, "default_desktop"},
		{"unknown mode", func(c *Config) { c.DefaultMode = "spiral" }, "default_mode"},
		{"empty focus color", func(c *Config) { c.FocusColor = " " }, "focus_color"},
		{"bad log format", func(c *Config) { c.LogFormat = "xml" }, "log_format"},
		{"empty rule class", func(c *Config) { c.Rules = []Rule{{Class: ""}} }, "rules[0].class"},
		{"bad chord", func(c *Config) { c.Keys = []KeyBinding{{Key: "Mod4-", Binding: Binding{Action: ActionStatus}}} }, "keys[0].key"},
		{"unknown action", func(c *Config) { c.Keys = []KeyBinding{{Key: "Mod4-x", Binding: Binding{Action: "explode"}}} }, "keys[0]"},
		{"bad button", func(c *Config) {
			c.Buttons = []ButtonBinding{{Button: "Control-x", Binding: Binding{Action: ActionStatus}}}
		}, "buttons[0].button"},
	}
	for _, tt := range tests {
		cfg := DefaultConfig()
		tt.mutate(cfg)
		err := cfg.Validate()
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("%s: expected ValidationError, got %v", tt.name, err)
		}
		if verr.Path != tt.path {
			t.Fatalf("%s: expected path %q, got %q", tt.name, tt.path, verr.Path)
		}
	}
}

func TestBindingValidate(t *testing.T) {
	tests := []struct {
		name    string
		binding Binding
		ok      bool
	}{
		{"no arg action", Binding{Action: ActionKillClient}, true},
		{"no arg action with arg", Binding{Action: ActionKillClient, Arg: IntArg(1)}, false},
		{"int action", Binding{Action: ActionRotate, Arg: IntArg(-1)}, true},
		{"int action with string", Binding{Action: ActionRotate, Arg: StringArg("left")}, false},
		{"desktop in range", Binding{Action: ActionChangeDesktop, Arg: IntArg(3)}, true},
		{"desktop out of range", Binding{Action: ActionChangeDesktop, Arg: IntArg(4)}, false},
		{"to_client zero", Binding{Action: ActionToClient, Arg: IntArg(0)}, false},
		{"layout name", Binding{Action: ActionSetLayout, Arg: StringArg("monocle")}, true},
		{"unknown layout", Binding{Action: ActionSetLayout, Arg: StringArg("spiral")}, false},
		{"motion resize", Binding{Action: ActionMouseMotion, Arg: StringArg(MotionResize)}, true},
		{"motion other", Binding{Action: ActionMouseMotion, Arg: StringArg("drag")}, false},
		{"move_resize needs four", Binding{Action: ActionMoveResize, Args: []int{1, 2}}, false},
		{"spawn", Binding{Action: ActionSpawn, Command: Command{"dmenu_run"}}, true},
		{"spawn empty", Binding{Action: ActionSpawn}, false},
	}
	for _, tt := range tests {
		err := tt.binding.validate(4)
		if tt.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tt.name, err)
		}
		if !tt.ok && err == nil {
			t.Fatalf("%s: expected error", tt.name)
		}
	}
}

func TestParseChord(t *testing.T) {
	tests := []struct {
		chord string
		mods  []string
		key   string
		ok    bool
	}{
		{"Mod4-Shift-c", []string{"Mod4", "Shift"}, "c", true},
		{"Return", nil, "Return", true},
		{"control-mod1-F1", []string{"control", "mod1"}, "F1", true},
		{"Mod4-a-b", nil, "", false},
		{"Mod4-Shift", nil, "", false},
		{"Mod4--x", nil, "", false},
		{"", nil, "", false},
	}
	for _, tt := range tests {
		mods, key, err := ParseChord(tt.chord)
		if !tt.ok {
			if err == nil {
				t.Fatalf("%q: expected error", tt.chord)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: unexpected error %v", tt.chord, err)
		}
		if !reflect.DeepEqual(mods, tt.mods) || key != tt.key {
			t.Fatalf("%q: expected %v %q, got %v %q", tt.chord, tt.mods, tt.key, mods, key)
		}
	}

	if n, err := ParseButtonChord("Control-3"); err != nil || n != 3 {
		t.Fatalf("expected button 3, got %d (%v)", n, err)
	}
	if _, err := ParseButtonChord("Mod4-0"); err == nil {
		t.Fatalf("expected button 0 to be rejected")
	}
}

func TestLoadFromPath_IncludeDirectoryOrderAndMainOverrides(t *testing.T) {
	dir := t.TempDir()

	// config.d loaded first, in sorted order.
	configD := filepath.Join(dir, "config.d")
	if err := os.MkdirAll(configD, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeConfig(t, configD, "10-base.yaml", "border_width: 5\nmin_window_size: 80\n")
	writeConfig(t, configD, "20-override.yaml", "border_width: 6\n")

	// Main file overrides includes.
	main := strings.Join([]string{
		"include:",
		"  - config.d",
		"border_width: 7",
		"",
	}, "\n")
	path := writeConfig(t, dir, "config.yaml", main)

	res, err := LoadFromPath(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if res.Config.BorderWidth != 7 {
		t.Fatalf("expected border_width to be 7, got %d", res.Config.BorderWidth)
	}
	if res.Config.MinWindowSize != 80 {
		t.Fatalf("expected min_window_size from include, got %d", res.Config.MinWindowSize)
	}
	if len(res.Files) != 3 {
		t.Fatalf("expected 3 loaded files, got %v", res.Files)
	}
}

func TestLoadFromPath_IncludeMissingPathHasContext(t *testing.T) {
	path := writeConfig(t, t.TempDir(), "config.yaml", "include:\n  - missing.yaml\n")

	_, err := LoadFromPath(path)
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "include") || !strings.Contains(err.Error(), "missing.yaml") {
		t.Fatalf("expected include error, got %v", err)
	}
	if !strings.Contains(err.Error(), path+":") {
		t.Fatalf("expected error to include file:line:col prefix, got %v", err)
	}
}

func TestLoadFromPath_IncludeCycleDetection(t *testing.T) {
	dir := t.TempDir()
	a := writeConfig(t, dir, "a.yaml", "include: b.yaml\n")
	writeConfig(t, dir, "b.yaml", "include: a.yaml\n")

	_, err := LoadFromPath(a)
	if err == nil {
		t.Fatalf("expected cycle error")
	}
	if !strings.Contains(err.Error(), "include cycle") {
		t.Fatalf("expected cycle error, got %v", err)
	}
}

func TestResolveTerminal_PriorityOrder(t *testing.T) {
	origLookPath := execLookPath
	origEval := evalSymlinks
	t.Cleanup(func() {
		execLookPath = origLookPath
		evalSymlinks = origEval
	})

	available := map[string]bool{"kitty": true, "x-terminal-emulator": true}
	execLookPath = func(file string) (string, error) {
		if available[file] {
			return "/usr/bin/" + file, nil
		}
		return "", exec.ErrNotFound
	}
	evalSymlinks = func(path string) (string, error) {
		if path == "/usr/bin/x-terminal-emulator" {
			return "/usr/bin/urxvt", nil
		}
		return path, nil
	}

	cfg := &Config{Terminal: "alacritty -e tmux"}
	t.Setenv("TERMINAL", "wezterm")

	if got := cfg.ResolveTerminal(); !reflect.DeepEqual(got, []string{"alacritty", "-e", "tmux"}) {
		t.Fatalf("expected configured terminal to win, got %q", got)
	}

	cfg.Terminal = ""
	if got := cfg.ResolveTerminal(); !reflect.DeepEqual(got, []string{"wezterm"}) {
		t.Fatalf("expected $TERMINAL to win, got %q", got)
	}

	t.Setenv("TERMINAL", "")
	if got := cfg.ResolveTerminal(); !reflect.DeepEqual(got, []string{"/usr/bin/urxvt"}) {
		t.Fatalf("expected x-terminal-emulator target, got %q", got)
	}

	delete(available, "x-terminal-emulator")
	if got := cfg.ResolveTerminal(); !reflect.DeepEqual(got, []string{"kitty"}) {
		t.Fatalf("expected kitty from PATH, got %q", got)
	}

	delete(available, "kitty")
	if got := cfg.ResolveTerminal(); !reflect.DeepEqual(got, []string{"xterm"}) {
		t.Fatalf("expected xterm fallback, got %q", got)
	}
}

func TestSplitCommand(t *testing.T) {
	got, err := splitCommand(`sh -c "echo 'hi there'" a\ b`)
	if err != nil {
		t.Fatalf("split: %v", err)
	}
	want := []string{"sh", "-c", "echo 'hi there'", "a b"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if _, err := splitCommand(`echo "open`); err == nil {
		t.Fatalf("expected unterminated quote error")
	}
}
