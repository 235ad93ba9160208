package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig is one config file as written. Nil fields were not set and keep
// the value from earlier files or the defaults.
type RawConfig struct {
	Include        IncludeList     `yaml:"include"`
	MasterSize     *float64        `yaml:"master_size"`
	AttachAside    *bool           `yaml:"attach_aside"`
	FollowWindow   *bool           `yaml:"follow_window"`
	FollowMouse    *bool           `yaml:"follow_mouse"`
	ClickToFocus   *bool           `yaml:"click_to_focus"`
	FocusButton    *int            `yaml:"focus_button"`
	BorderWidth    *int            `yaml:"border_width"`
	FocusColor     *string         `yaml:"focus_color"`
	UnfocusColor   *string         `yaml:"unfocus_color"`
	InfocusColor   *string         `yaml:"infocus_color"`
	MinWindowSize  *int            `yaml:"min_window_size"`
	Desktops       *int            `yaml:"desktops"`
	DefaultDesktop *int            `yaml:"default_desktop"`
	DefaultMode    *LayoutMode     `yaml:"default_mode"`
	StatusFile     *string         `yaml:"status_file"`
	Terminal       *string         `yaml:"terminal"`
	LogLevel       *string         `yaml:"log_level"`
	LogFormat      *string         `yaml:"log_format"`
	Rules          []Rule          `yaml:"rules"`
	Keys           []KeyBinding    `yaml:"keys"`
	Buttons        []ButtonBinding `yaml:"buttons"`
}

// merge overlays set fields of overlay onto c. Lists replace, they do not
// append.
func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c

	if overlay.MasterSize != nil {
		out.MasterSize = overlay.MasterSize
	}
	if overlay.AttachAside != nil {
		out.AttachAside = overlay.AttachAside
	}
	if overlay.FollowWindow != nil {
		out.FollowWindow = overlay.FollowWindow
	}
	if overlay.FollowMouse != nil {
		out.FollowMouse = overlay.FollowMouse
	}
	if overlay.ClickToFocus != nil {
		out.ClickToFocus = overlay.ClickToFocus
	}
	if overlay.FocusButton != nil {
		out.FocusButton = overlay.FocusButton
	}
	if overlay.BorderWidth != nil {
		out.BorderWidth = overlay.BorderWidth
	}
	if overlay.FocusColor != nil {
		out.FocusColor = overlay.FocusColor
	}
	if overlay.UnfocusColor != nil {
		out.UnfocusColor = overlay.UnfocusColor
	}
	if overlay.InfocusColor != nil {
		out.InfocusColor = overlay.InfocusColor
	}
	if overlay.MinWindowSize != nil {
		out.MinWindowSize = overlay.MinWindowSize
	}
	if overlay.Desktops != nil {
		out.Desktops = overlay.Desktops
	}
	if overlay.DefaultDesktop != nil {
		out.DefaultDesktop = overlay.DefaultDesktop
	}
	if overlay.DefaultMode != nil {
		out.DefaultMode = overlay.DefaultMode
	}
	if overlay.StatusFile != nil {
		out.StatusFile = overlay.StatusFile
	}
	if overlay.Terminal != nil {
		out.Terminal = overlay.Terminal
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.LogFormat != nil {
		out.LogFormat = overlay.LogFormat
	}
	if overlay.Rules != nil {
		out.Rules = overlay.Rules
	}
	if overlay.Keys != nil {
		out.Keys = overlay.Keys
	}
	if overlay.Buttons != nil {
		out.Buttons = overlay.Buttons
	}

	return out
}
