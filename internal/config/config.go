// Package config loads stageguard settings. Settings only affect how results
// are presented and which status backend is used; the sensitive file
// patterns are not configurable.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/chmouel/stageguard/internal/git"
	log "github.com/chmouel/stageguard/internal/log"
	"github.com/chmouel/stageguard/internal/report"
	"github.com/chmouel/stageguard/internal/theme"
)

// AppConfig defines the stageguard settings.
type AppConfig struct {
	DebugLog  string
	Color     string // auto, always or never
	Theme     string
	Backend   string // git or go-git
	ShowIcons bool
}

// DefaultConfig returns the default configuration values.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Color:   report.ColorAuto,
		Theme:   theme.ANSIName,
		Backend: git.BackendGit,
	}
}

func coerceBool(value any, defaultVal bool) bool {
	if value == nil {
		return defaultVal
	}

	switch v := value.(type) {
	case bool:
		return v
	case int:
		return v != 0
	case string:
		text := strings.ToLower(strings.TrimSpace(v))
		switch text {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return defaultVal
}

// coerceChoice returns value when it is one of choices, else current.
func coerceChoice(value any, current string, choices ...string) string {
	text, ok := value.(string)
	if !ok {
		return current
	}
	text = strings.ToLower(strings.TrimSpace(text))
	for _, c := range choices {
		if text == c {
			return c
		}
	}
	if text != "" {
		log.Printf("config: ignoring unsupported value %q (want one of %s)", text, strings.Join(choices, ", "))
	}
	return current
}

// applyValues overlays data onto cfg. Unknown keys and invalid values are
// ignored.
func (cfg *AppConfig) applyValues(data map[string]any) {
	if debugLog, ok := data["debug_log"].(string); ok {
		debugLog = strings.TrimSpace(debugLog)
		if debugLog != "" {
			cfg.DebugLog = debugLog
		}
	}

	cfg.Color = coerceChoice(data["color"], cfg.Color, report.ColorAuto, report.ColorAlways, report.ColorNever)
	cfg.Theme = coerceChoice(data["theme"], cfg.Theme, theme.AvailableThemes()...)
	cfg.Backend = coerceChoice(data["backend"], cfg.Backend, git.BackendGit, git.BackendGoGit)
	cfg.ShowIcons = coerceBool(data["show_icons"], cfg.ShowIcons)
}

func parseConfig(data map[string]any) *AppConfig {
	cfg := DefaultConfig()
	cfg.applyValues(data)
	return cfg
}

func getConfigDir() string {
	if xdgConfigHome := os.Getenv("XDG_CONFIG_HOME"); xdgConfigHome != "" {
		return xdgConfigHome
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config")
}

// LoadConfig reads the YAML configuration file. With an empty configPath the
// default locations under $XDG_CONFIG_HOME/stageguard are tried; a missing
// file yields the defaults.
func LoadConfig(configPath string) (*AppConfig, error) {
	configBase := filepath.Clean(filepath.Join(getConfigDir(), "stageguard"))

	var paths []string
	if configPath != "" {
		expanded, err := expandPath(configPath)
		if err != nil {
			return DefaultConfig(), err
		}
		absPath, err := filepath.Abs(expanded)
		if err != nil {
			return DefaultConfig(), err
		}
		paths = []string{absPath}
	} else {
		paths = []string{
			filepath.Join(configBase, "config.yaml"),
			filepath.Join(configBase, "config.yml"),
		}
	}

	for _, path := range paths {
		// #nosec G304 -- path is either the default config location or given explicitly by the user
		data, err := os.ReadFile(path)
		if err != nil {
			if os.IsNotExist(err) && configPath == "" {
				continue
			}
			return DefaultConfig(), fmt.Errorf("read config %s: %w", path, err)
		}

		var yamlData map[string]any
		if err := yaml.Unmarshal(data, &yamlData); err != nil {
			return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
		}
		log.Printf("config: loaded %s", path)
		return parseConfig(yamlData), nil
	}

	return DefaultConfig(), nil
}

// Load builds the effective configuration: defaults, then the YAML file,
// then global and repository git config. A broken file or git config is
// reported and skipped so a misconfiguration never disables the check.
func Load(configPath, repoPath string) (*AppConfig, []error) {
	var errs []error

	cfg, err := LoadConfig(configPath)
	if err != nil {
		errs = append(errs, err)
	}

	for _, globalOnly := range []bool{true, false} {
		values, err := loadGitConfig(globalOnly, repoPath)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		cfg.applyValues(values)
	}

	return cfg, errs
}

func expandPath(path string) (string, error) {
	if strings.HasPrefix(path, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[1:])
	}
	return os.ExpandEnv(path), nil
}

// ExpandPath expands a leading ~ and environment variables in path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}
