// Package config loads config.yaml and prompt.txt.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/Hexalyse/jean-albert/keymap"
)

// Config mirrors config.yaml. Absent fields keep their defaults
// (Ctrl+Shift+P to transform, Ctrl+Shift+Q to exit).
type Config struct {
	GeminiAPIKey string `yaml:"gemini_api_key"`

	UseCtrl    bool   `yaml:"use_ctrl"`
	UseShift   bool   `yaml:"use_shift"`
	UseAlt     bool   `yaml:"use_alt"`
	TriggerKey string `yaml:"trigger_key"`

	ExitUseCtrl  bool   `yaml:"exit_use_ctrl"`
	ExitUseShift bool   `yaml:"exit_use_shift"`
	ExitUseAlt   bool   `yaml:"exit_use_alt"`
	ExitKey      string `yaml:"exit_key"`

	Notifications bool `yaml:"notifications"`
}

func defaultConfig() *Config {
	return &Config{
		UseCtrl:       true,
		UseShift:      true,
		UseAlt:        false,
		TriggerKey:    "P",
		ExitUseCtrl:   true,
		ExitUseShift:  true,
		ExitUseAlt:    false,
		ExitKey:       "Q",
		Notifications: true,
	}
}

// Load searches for config.yaml in the working directory, then next to the
// executable, and validates it. The file is required: combos and the API
// key are rejected at startup, never at trigger time.
func Load() (*Config, string, error) {
	for _, dir := range searchDirs() {
		path := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(path); err != nil {
			continue
		}
		cfg, err := LoadFile(path)
		if err != nil {
			return nil, path, err
		}
		return cfg, path, nil
	}
	return nil, "", errors.New("config.yaml not found in working directory or next to the executable")
}

// LoadFile reads and validates a single config file.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	cfg := defaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("invalid config.yaml format: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if strings.TrimSpace(c.GeminiAPIKey) == "" {
		return errors.New("gemini_api_key is required")
	}
	trigger, err := c.TriggerCombo()
	if err != nil {
		return fmt.Errorf("trigger combo: %w", err)
	}
	exit, err := c.ExitCombo()
	if err != nil {
		return fmt.Errorf("exit combo: %w", err)
	}
	if trigger == exit {
		return fmt.Errorf("trigger and exit combos are both %s; configure distinct combos", trigger)
	}
	return nil
}

func (c *Config) TriggerCombo() (keymap.Combo, error) {
	return buildCombo(c.UseCtrl, c.UseShift, c.UseAlt, c.TriggerKey)
}

func (c *Config) ExitCombo() (keymap.Combo, error) {
	return buildCombo(c.ExitUseCtrl, c.ExitUseShift, c.ExitUseAlt, c.ExitKey)
}

func buildCombo(ctrl, shift, alt bool, key string) (keymap.Combo, error) {
	k, err := keymap.ParseKey(key)
	if err != nil {
		return keymap.Combo{}, err
	}
	var mods keymap.Modifier
	if ctrl {
		mods |= keymap.ModCtrl
	}
	if shift {
		mods |= keymap.ModShift
	}
	if alt {
		mods |= keymap.ModAlt
	}
	return keymap.Combo{Mods: mods, Key: k}, nil
}

// DefaultPrompt is used when no prompt.txt is found.
const DefaultPrompt = "Please process the following text:"

// LoadPrompt searches for prompt.txt in the same locations as the config.
// The returned path is empty when the fallback prompt is used.
func LoadPrompt() (string, string) {
	for _, dir := range searchDirs() {
		path := filepath.Join(dir, "prompt.txt")
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		return string(data), path
	}
	return DefaultPrompt, ""
}

func searchDirs() []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	if exe, err := os.Executable(); err == nil {
		dirs = append(dirs, filepath.Dir(exe))
	}
	return dirs
}
