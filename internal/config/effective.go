package config

import (
	"fmt"
	"strings"
)

type ValidationError struct {
	Path   string
	Source Source
	Err    error
}

func (e *ValidationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Source.Kind == SourceFile && e.Source.File != "" && e.Source.Line > 0 {
		return fmt.Sprintf("%s:%d:%d: %s: %v", e.Source.File, e.Source.Line, e.Source.Column, e.Path, e.Err)
	}
	if e.Path != "" {
		return fmt.Sprintf("%s: %v", e.Path, e.Err)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// BuildEffectiveConfig applies raw onto DefaultConfig. It does not validate.
func BuildEffectiveConfig(raw RawConfig) (*Config, error) {
	cfg := DefaultConfig()

	if raw.MasterSize != nil {
		cfg.MasterSize = *raw.MasterSize
	}
	if raw.AttachAside != nil {
		cfg.AttachAside = *raw.AttachAside
	}
	if raw.FollowWindow != nil {
		cfg.FollowWindow = *raw.FollowWindow
	}
	if raw.FollowMouse != nil {
		cfg.FollowMouse = *raw.FollowMouse
	}
	if raw.ClickToFocus != nil {
		cfg.ClickToFocus = *raw.ClickToFocus
	}
	if raw.FocusButton != nil {
		cfg.FocusButton = *raw.FocusButton
	}
	if raw.BorderWidth != nil {
		cfg.BorderWidth = *raw.BorderWidth
	}
	if raw.FocusColor != nil {
		cfg.FocusColor = *raw.FocusColor
	}
	if raw.UnfocusColor != nil {
		cfg.UnfocusColor = *raw.UnfocusColor
	}
	if raw.InfocusColor != nil {
		cfg.InfocusColor = *raw.InfocusColor
	}
	if raw.MinWindowSize != nil {
		cfg.MinWindowSize = *raw.MinWindowSize
	}
	if raw.Desktops != nil {
		cfg.Desktops = *raw.Desktops
	}
	if raw.DefaultDesktop != nil {
		cfg.DefaultDesktop = *raw.DefaultDesktop
	}
	if raw.DefaultMode != nil {
		cfg.DefaultMode = LayoutMode(strings.ToLower(strings.TrimSpace(string(*raw.DefaultMode))))
	}
	if raw.StatusFile != nil {
		cfg.StatusFile = *raw.StatusFile
	}
	if raw.Terminal != nil {
		cfg.Terminal = *raw.Terminal
	}
	if raw.LogLevel != nil {
		cfg.LogLevel = strings.ToLower(strings.TrimSpace(*raw.LogLevel))
	}
	if raw.LogFormat != nil {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(*raw.LogFormat))
	}
	if raw.Rules != nil {
		cfg.Rules = raw.Rules
	}
	if raw.Keys != nil {
		cfg.Keys = raw.Keys
	}
	if raw.Buttons != nil {
		cfg.Buttons = raw.Buttons
	}

	// Default bindings and rules name desktops 0..3. Drop the ones past a
	// smaller desktop count.
	if raw.Keys == nil && cfg.Desktops < 4 {
		cfg.Keys = trimDesktopKeys(cfg.Keys, cfg.Desktops)
	}
	if raw.Rules == nil {
		cfg.Rules = trimDesktopRules(cfg.Rules, cfg.Desktops)
	}

	return cfg, nil
}

func trimDesktopKeys(keys []KeyBinding, desktops int) []KeyBinding {
	out := keys[:0:0]
	for _, k := range keys {
		if k.Action == ActionChangeDesktop || k.Action == ActionClientToDesktop {
			if k.Arg.Int >= desktops {
				continue
			}
		}
		out = append(out, k)
	}
	return out
}

func trimDesktopRules(rules []Rule, desktops int) []Rule {
	out := rules[:0:0]
	for _, r := range rules {
		if r.Desktop != nil && *r.Desktop >= desktops {
			continue
		}
		out = append(out, r)
	}
	return out
}
