package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Action names a window manager command that keys and buttons can trigger.
type Action string

const (
	ActionFocusUrgent     Action = "focus_urgent"
	ActionKillClient      Action = "kill_client"
	ActionNextWin         Action = "next_win"
	ActionPrevWin         Action = "prev_win"
	ActionStatus          Action = "status"
	ActionResizeMaster    Action = "resize_master"
	ActionResizeStack     Action = "resize_stack"
	ActionRotate          Action = "rotate"
	ActionRotateFilled    Action = "rotate_filled"
	ActionMoveUp          Action = "move_up"
	ActionMoveDown        Action = "move_down"
	ActionLastDesktop     Action = "last_desktop"
	ActionSwapMaster      Action = "swap_master"
	ActionSetLayout       Action = "set_layout"
	ActionQuit            Action = "quit"
	ActionSpawn           Action = "spawn"
	ActionSpawnTerminal   Action = "spawn_terminal"
	ActionMoveResize      Action = "move_resize"
	ActionChangeDesktop   Action = "change_desktop"
	ActionClientToDesktop Action = "client_to_desktop"
	ActionChangeMonitor   Action = "change_monitor"
	ActionClientToMonitor Action = "client_to_monitor"
	ActionMouseMotion     Action = "mouse_motion"
	ActionToggleFixed     Action = "toggle_fixed"
	ActionSetFloating     Action = "set_floating"
	ActionToClient        Action = "to_client"
	ActionListClients     Action = "list_clients"
)

// Mouse motion kinds accepted by mouse_motion.
const (
	MotionMove   = "move"
	MotionResize = "resize"
)

type argKind int

const (
	argNone argKind = iota
	argInt
	argDesktop
	argString
	argQuad
	argCommand
)

var actionArgs = map[Action]argKind{
	ActionFocusUrgent:     argNone,
	ActionKillClient:      argNone,
	ActionNextWin:         argNone,
	ActionPrevWin:         argNone,
	ActionStatus:          argNone,
	ActionResizeMaster:    argInt,
	ActionResizeStack:     argInt,
	ActionRotate:          argInt,
	ActionRotateFilled:    argInt,
	ActionMoveUp:          argNone,
	ActionMoveDown:        argNone,
	ActionLastDesktop:     argNone,
	ActionSwapMaster:      argNone,
	ActionSetLayout:       argString,
	ActionQuit:            argInt,
	ActionSpawn:           argCommand,
	ActionSpawnTerminal:   argNone,
	ActionMoveResize:      argQuad,
	ActionChangeDesktop:   argDesktop,
	ActionClientToDesktop: argDesktop,
	ActionChangeMonitor:   argInt,
	ActionClientToMonitor: argInt,
	ActionMouseMotion:     argString,
	ActionToggleFixed:     argNone,
	ActionSetFloating:     argNone,
	ActionToClient:        argInt,
	ActionListClients:     argNone,
}

// Arg is a scalar binding argument. YAML integers decode as ints and every
// other scalar as a string.
type Arg struct {
	Int   int
	Str   string
	IsInt bool
	Set   bool
}

func IntArg(v int) Arg       { return Arg{Int: v, IsInt: true, Set: true} }
func StringArg(s string) Arg { return Arg{Str: s, Set: true} }

func (a *Arg) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("arg must be a scalar")
	}
	if value.Tag == "!!int" {
		v, err := strconv.Atoi(value.Value)
		if err != nil {
			return fmt.Errorf("arg: %w", err)
		}
		*a = IntArg(v)
		return nil
	}
	*a = StringArg(value.Value)
	return nil
}

func (a Arg) MarshalYAML() (any, error) {
	if !a.Set {
		return nil, nil
	}
	if a.IsInt {
		return a.Int, nil
	}
	return a.Str, nil
}

func (a Arg) String() string {
	switch {
	case !a.Set:
		return ""
	case a.IsInt:
		return strconv.Itoa(a.Int)
	default:
		return a.Str
	}
}

// Binding is the action half of a key or button binding.
type Binding struct {
	Action  Action  `yaml:"action"`
	Arg     Arg     `yaml:"arg,omitempty"`
	Args    []int   `yaml:"args,omitempty,flow"`
	Command Command `yaml:"command,omitempty,flow"`
}

type KeyBinding struct {
	Key     string `yaml:"key"`
	Binding `yaml:",inline"`
}

type ButtonBinding struct {
	Button  string `yaml:"button"`
	Binding `yaml:",inline"`
}

func (b Binding) validate(desktops int) error {
	kind, ok := actionArgs[b.Action]
	if !ok {
		return fmt.Errorf("unknown action %q", b.Action)
	}
	switch kind {
	case argNone:
		if b.Arg.Set || len(b.Args) > 0 || len(b.Command) > 0 {
			return fmt.Errorf("%s takes no arguments", b.Action)
		}
	case argInt, argDesktop:
		if !b.Arg.IsInt {
			return fmt.Errorf("%s requires an integer arg", b.Action)
		}
		if kind == argDesktop && (b.Arg.Int < 0 || b.Arg.Int >= desktops) {
			return fmt.Errorf("%s: desktop %d out of range [0, %d)", b.Action, b.Arg.Int, desktops)
		}
		if b.Action == ActionToClient && b.Arg.Int < 1 {
			return fmt.Errorf("%s: client position is 1-based", b.Action)
		}
	case argString:
		if !b.Arg.Set || b.Arg.IsInt {
			return fmt.Errorf("%s requires a string arg", b.Action)
		}
		if b.Action == ActionSetLayout {
			switch LayoutMode(b.Arg.Str) {
			case LayoutTile, LayoutMonocle, LayoutBottomStack, LayoutGrid:
			default:
				return fmt.Errorf("set_layout: unknown layout %q", b.Arg.Str)
			}
		}
		if b.Action == ActionMouseMotion && b.Arg.Str != MotionMove && b.Arg.Str != MotionResize {
			return fmt.Errorf("mouse_motion: arg must be %q or %q", MotionMove, MotionResize)
		}
	case argQuad:
		if len(b.Args) != 4 {
			return fmt.Errorf("%s requires args [dx, dy, dw, dh]", b.Action)
		}
	case argCommand:
		if len(b.Command) == 0 || strings.TrimSpace(b.Command[0]) == "" {
			return fmt.Errorf("%s requires a non-empty command", b.Action)
		}
	}
	return nil
}

var modifierNames = map[string]bool{
	"shift":   true,
	"lock":    true,
	"control": true,
	"mod1":    true,
	"mod2":    true,
	"mod3":    true,
	"mod4":    true,
	"mod5":    true,
}

// ParseChord splits a key chord such as "Mod4-Shift-c" into its modifier
// tokens and the key name. Whether the key names a real keysym is only known
// once a display is connected.
func ParseChord(chord string) ([]string, string, error) {
	if strings.TrimSpace(chord) == "" {
		return nil, "", fmt.Errorf("key chord is empty")
	}
	var mods []string
	key := ""
	for _, part := range strings.Split(chord, "-") {
		if part == "" {
			return nil, "", fmt.Errorf("malformed chord %q", chord)
		}
		if modifierNames[strings.ToLower(part)] {
			if key != "" {
				return nil, "", fmt.Errorf("chord %q: modifier %q after key", chord, part)
			}
			mods = append(mods, part)
			continue
		}
		if key != "" {
			return nil, "", fmt.Errorf("chord %q names more than one key", chord)
		}
		key = part
	}
	if key == "" {
		return nil, "", fmt.Errorf("chord %q has no key", chord)
	}
	return mods, key, nil
}

// ParseButtonChord validates a button chord such as "Control-3" and returns
// the button number.
func ParseButtonChord(chord string) (int, error) {
	_, key, err := ParseChord(chord)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(key)
	if err != nil || n < 1 || n > 255 {
		return 0, fmt.Errorf("chord %q: button must be a number between 1 and 255", chord)
	}
	return n, nil
}
