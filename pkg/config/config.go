package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"example.com/ink/pkg/history"
	"example.com/ink/pkg/keys"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Config holds user configuration values.
type Config struct {
	HistoryCapacity int
	GroupPaste      bool
	SystemClipboard bool
	AutosaveEvery   time.Duration
	Watch           bool
	Keymap          map[string]keys.Key
}

// fileConfig mirrors the on-disk layout. Pointers tell unset keys apart from
// zero values so defaults survive partial files.
type fileConfig struct {
	History struct {
		Capacity   *int  `yaml:"capacity" toml:"capacity"`
		GroupPaste *bool `yaml:"group_paste" toml:"group_paste"`
	} `yaml:"history" toml:"history"`
	Clipboard struct {
		System *bool `yaml:"system" toml:"system"`
	} `yaml:"clipboard" toml:"clipboard"`
	Autosave struct {
		Interval string `yaml:"interval" toml:"interval"`
	} `yaml:"autosave" toml:"autosave"`
	Watch  *bool             `yaml:"watch" toml:"watch"`
	Keymap map[string]string `yaml:"keymap" toml:"keymap"`
}

// Default returns a Config with default settings and key mappings.
func Default() *Config {
	return &Config{
		HistoryCapacity: history.DefaultCapacity,
		GroupPaste:      true,
		Watch:           true,
		Keymap:          DefaultKeymap(),
	}
}

// DefaultKeymap provides builtin command bindings.
func DefaultKeymap() map[string]keys.Key {
	return map[string]keys.Key{
		"insert":    'i',
		"visual":    'v',
		"left":      'h',
		"down":      'j',
		"up":        'k',
		"right":     'l',
		"undo":      'u',
		"redo":      'r',
		"copy":      'y',
		"paste":     'p',
		"save":      's',
		"quit":      'q',
		"word-next": 'w',
		"word-back": 'b',
		"word-end":  'e',
	}
}

// Load loads configuration from the provided path. Files ending in .toml are
// parsed as TOML, anything else as YAML. If the file does not exist, defaults
// are returned.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	var fc fileConfig
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		err = toml.Unmarshal(data, &fc)
	} else {
		err = yaml.Unmarshal(data, &fc)
	}
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	cfg, err := fc.apply(Default())
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadDefault attempts to read ~/.ink/config.yaml, then ~/.ink/config.toml.
func LoadDefault() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	dir := filepath.Join(home, ".ink")
	yamlPath := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(yamlPath); err == nil {
		return Load(yamlPath)
	}
	return Load(filepath.Join(dir, "config.toml"))
}

func (fc *fileConfig) apply(cfg *Config) (*Config, error) {
	if fc.History.Capacity != nil {
		if *fc.History.Capacity <= 0 {
			return nil, errors.New("history.capacity must be positive")
		}
		cfg.HistoryCapacity = *fc.History.Capacity
	}
	if fc.History.GroupPaste != nil {
		cfg.GroupPaste = *fc.History.GroupPaste
	}
	if fc.Clipboard.System != nil {
		cfg.SystemClipboard = *fc.Clipboard.System
	}
	if fc.Autosave.Interval != "" {
		d, err := time.ParseDuration(fc.Autosave.Interval)
		if err != nil {
			return nil, fmt.Errorf("autosave.interval: %w", err)
		}
		if d < 0 {
			return nil, errors.New("autosave.interval must not be negative")
		}
		cfg.AutosaveEvery = d
	}
	if fc.Watch != nil {
		cfg.Watch = *fc.Watch
	}
	for cmd, binding := range fc.Keymap {
		if _, ok := cfg.Keymap[cmd]; !ok {
			return nil, errors.New("unknown command in keymap: " + cmd)
		}
		k, err := ParseKeybinding(binding)
		if err != nil {
			return nil, err
		}
		cfg.Keymap[cmd] = k
	}
	if dup := duplicateBinding(cfg.Keymap); dup != "" {
		return nil, errors.New("key bound to more than one command: " + dup)
	}
	return cfg, nil
}

func duplicateBinding(km map[string]keys.Key) string {
	seen := make(map[keys.Key]string, len(km))
	names := make([]string, 0, len(km))
	for name := range km {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		k := km[name]
		if other, ok := seen[k]; ok {
			return k.String() + " (" + other + ", " + name + ")"
		}
		seen[k] = name
	}
	return ""
}

var namedKeys = map[string]keys.Key{
	"esc":       keys.KeyEscape,
	"escape":    keys.KeyEscape,
	"enter":     keys.KeyEnter,
	"tab":       keys.KeyTab,
	"backspace": keys.KeyDelete,
	"up":        keys.KeyUp,
	"down":      keys.KeyDown,
	"left":      keys.KeyLeft,
	"right":     keys.KeyRight,
}

// ParseKeybinding converts a textual key description into a key code.
// Accepted forms are a single printable character ("u"), "Ctrl+<letter>"
// and the names Esc, Enter, Tab, Backspace, Up, Down, Left, Right.
func ParseKeybinding(s string) (keys.Key, error) {
	s = strings.TrimSpace(s)
	if len(s) == 1 {
		k := keys.Key(s[0])
		if !keys.IsPrintable(k) || k == keys.KeyTab {
			return keys.KeyNone, errors.New("invalid key in keybinding: " + s)
		}
		return k, nil
	}
	if k, ok := namedKeys[strings.ToLower(s)]; ok {
		return k, nil
	}
	parts := strings.Split(s, "+")
	if len(parts) != 2 {
		return keys.KeyNone, errors.New("invalid keybinding: " + s)
	}
	if !strings.EqualFold(parts[0], "ctrl") {
		return keys.KeyNone, errors.New("invalid modifier in keybinding: " + s)
	}
	r := strings.ToLower(parts[1])
	if len(r) != 1 || r[0] < 'a' || r[0] > 'z' {
		return keys.KeyNone, errors.New("invalid key in keybinding: " + s)
	}
	return keys.Ctrl(r[0]), nil
}
