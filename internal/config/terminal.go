package config

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Command is an argv list. It accepts either:
//
//	command: "rofi -show run"
//
// or:
//
//	command: [rofi, -show, run]
type Command []string

func (c *Command) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("command must be a string or list of strings")
		}
		argv, err := splitCommand(value.Value)
		if err != nil {
			return err
		}
		*c = argv
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode {
				return fmt.Errorf("command entries must be strings")
			}
			out = append(out, item.Value)
		}
		*c = out
		return nil
	default:
		return fmt.Errorf("command must be a string or list of strings")
	}
}

var (
	execLookPath = exec.LookPath
	evalSymlinks = filepath.EvalSymlinks
)

var fallbackTerminals = []string{"alacritty", "kitty", "wezterm", "st", "urxvt", "xterm"}

// ResolveTerminal returns the argv spawned by spawn_terminal. The configured
// terminal wins, then $TERMINAL, then the x-terminal-emulator alternative,
// then the first known terminal found in PATH.
func (c *Config) ResolveTerminal() []string {
	if c != nil {
		if argv, err := splitCommand(c.Terminal); err == nil && len(argv) > 0 {
			return argv
		}
	}

	if env := strings.TrimSpace(os.Getenv("TERMINAL")); env != "" {
		if argv, err := splitCommand(env); err == nil && len(argv) > 0 {
			return argv
		}
	}

	if resolved := resolveXTerminalEmulator(); resolved != "" {
		return []string{resolved}
	}

	for _, exe := range fallbackTerminals {
		if _, err := execLookPath(exe); err == nil {
			return []string{exe}
		}
	}
	return []string{"xterm"}
}

func resolveXTerminalEmulator() string {
	path, err := execLookPath("x-terminal-emulator")
	if err != nil {
		return ""
	}
	resolved, err := evalSymlinks(path)
	if err == nil && resolved != "" {
		return resolved
	}
	return path
}

func splitCommand(s string) ([]string, error) {
	var out []string
	var buf strings.Builder
	inSingle := false
	inDouble := false
	escaped := false

	flush := func() {
		if buf.Len() == 0 {
			return
		}
		out = append(out, buf.String())
		buf.Reset()
	}

	for _, r := range s {
		if escaped {
			buf.WriteRune(r)
			escaped = false
			continue
		}
		if !inSingle && r == '\\' {
			escaped = true
			continue
		}
		if !inDouble && r == '\'' {
			inSingle = !inSingle
			continue
		}
		if !inSingle && r == '"' {
			inDouble = !inDouble
			continue
		}
		if !inSingle && !inDouble {
			if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
				flush()
				continue
			}
		}
		buf.WriteRune(r)
	}

	if escaped {
		return nil, fmt.Errorf("unfinished escape in command")
	}
	if inSingle || inDouble {
		return nil, fmt.Errorf("unterminated quote in command")
	}

	flush()
	return out, nil
}
