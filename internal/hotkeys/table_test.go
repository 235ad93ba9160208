package hotkeys

import (
	"fmt"
	"strconv"
	"strings"
	"testing"

	"github.com/1broseidon/mwm/internal/config"
)

type fakeResolver struct {
	keys map[string][]byte
}

func fakeMods(parts []string) uint16 {
	var mods uint16
	for _, p := range parts {
		switch strings.ToLower(p) {
		case "shift":
			mods |= ModShift
		case "control":
			mods |= ModControl
		case "mod4":
			mods |= Mod4
		}
	}
	return mods
}

func (f fakeResolver) ResolveKey(chord string) (uint16, []byte, error) {
	parts := strings.Split(chord, "-")
	key := parts[len(parts)-1]
	codes, ok := f.keys[key]
	if !ok {
		return 0, nil, fmt.Errorf("unknown keysym %q", key)
	}
	return fakeMods(parts[:len(parts)-1]), codes, nil
}

func (f fakeResolver) ResolveButton(chord string) (uint16, byte, error) {
	parts := strings.Split(chord, "-")
	n, err := strconv.Atoi(parts[len(parts)-1])
	if err != nil {
		return 0, 0, err
	}
	return fakeMods(parts[:len(parts)-1]), byte(n), nil
}

func TestCleanMask(t *testing.T) {
	const numLock = Mod2
	tests := []struct {
		state uint16
		want  uint16
	}{
		{state: Mod4, want: Mod4},
		{state: Mod4 | ModLock, want: Mod4},
		{state: Mod4 | numLock, want: Mod4},
		{state: Mod4 | ModShift | numLock | ModLock, want: Mod4 | ModShift},
		{state: ModControl | 1<<8, want: ModControl}, // Button1 held
	}
	for _, tt := range tests {
		if got := CleanMask(tt.state, numLock); got != tt.want {
			t.Fatalf("CleanMask(%#x): expected %#x, got %#x", tt.state, tt.want, got)
		}
	}
}

func TestCompileAndMatch(t *testing.T) {
	r := fakeResolver{keys: map[string][]byte{
		"Return": {36},
		"j":      {44},
		"x":      {53},
		"KP_1":   {87, 200},
	}}
	keys := []config.KeyBinding{
		{Key: "Mod4-Return", Binding: config.Binding{Action: config.ActionSwapMaster}},
		{Key: "Mod4-Shift-Return", Binding: config.Binding{Action: config.ActionSpawnTerminal}},
		{Key: "Mod4-j", Binding: config.Binding{Action: config.ActionNextWin}},
		{Key: "Mod4-KP_1", Binding: config.Binding{Action: config.ActionChangeDesktop, Arg: config.IntArg(0)}},
		{Key: "Mod4-NoSuchKey", Binding: config.Binding{Action: config.ActionQuit, Arg: config.IntArg(0)}},
	}
	buttons := []config.ButtonBinding{
		{Button: "Control-3", Binding: config.Binding{Action: config.ActionMouseMotion, Arg: config.StringArg(config.MotionResize)}},
	}

	table, err := Compile(keys, buttons, r)
	if err == nil || !strings.Contains(err.Error(), "NoSuchKey") {
		t.Fatalf("expected error naming the unresolved key, got %v", err)
	}
	if len(table.Keys) != 4 {
		t.Fatalf("expected 4 resolved keys, got %d", len(table.Keys))
	}

	got := table.MatchKey(36, Mod4)
	if len(got) != 1 || got[0].Action != config.ActionSwapMaster {
		t.Fatalf("expected swap_master for Mod4-Return, got %+v", got)
	}
	got = table.MatchKey(36, Mod4|ModShift)
	if len(got) != 1 || got[0].Action != config.ActionSpawnTerminal {
		t.Fatalf("expected spawn_terminal for Mod4-Shift-Return, got %+v", got)
	}
	if got := table.MatchKey(44, 0); len(got) != 0 {
		t.Fatalf("expected no match without modifier, got %+v", got)
	}
	got = table.MatchKey(200, Mod4)
	if len(got) != 1 || got[0].Arg.Int != 0 {
		t.Fatalf("expected second keycode of KP_1 to match, got %+v", got)
	}

	bs := table.MatchButton(3, ModControl)
	if len(bs) != 1 || bs[0].Arg.Str != config.MotionResize {
		t.Fatalf("expected resize motion on Control-3, got %+v", bs)
	}
	if bs := table.MatchButton(3, 0); len(bs) != 0 {
		t.Fatalf("expected no button match without Control, got %+v", bs)
	}
}
