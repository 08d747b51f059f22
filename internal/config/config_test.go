package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mockGitConfig(t *testing.T, fn func(args []string, repoPath string) (string, error)) {
	t.Helper()
	orig := gitConfigMock
	gitConfigMock = fn
	t.Cleanup(func() { gitConfigMock = orig })
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Empty(t, cfg.DebugLog)
	assert.Equal(t, "auto", cfg.Color)
	assert.Equal(t, "ansi", cfg.Theme)
	assert.Equal(t, "git", cfg.Backend)
	assert.False(t, cfg.ShowIcons)
}

func TestCoerceBool(t *testing.T) {
	tests := []struct {
		name     string
		input    any
		def      bool
		expected bool
	}{
		{"nil keeps default", nil, true, true},
		{"bool", false, true, false},
		{"int", 1, false, true},
		{"yes", "yes", false, true},
		{"off", " OFF ", true, false},
		{"garbage keeps default", "maybe", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, coerceBool(tt.input, tt.def))
		})
	}
}

func TestParseConfig(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"debug_log":  " /tmp/stageguard.log ",
		"color":      "NEVER",
		"theme":      "nord",
		"backend":    "go-git",
		"show_icons": true,
		"patterns":   []any{"ignored"},
	})

	assert.Equal(t, "/tmp/stageguard.log", cfg.DebugLog)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "nord", cfg.Theme)
	assert.Equal(t, "go-git", cfg.Backend)
	assert.True(t, cfg.ShowIcons)
}

func TestParseConfigInvalidValues(t *testing.T) {
	cfg := parseConfig(map[string]any{
		"color":     "sometimes",
		"theme":     "unknown-theme",
		"backend":   "svn",
		"debug_log": 42,
	})

	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigMissingDefaultFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigDefaultLocation(t *testing.T) {
	xdg := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdg)
	dir := filepath.Join(xdg, "stageguard")
	require.NoError(t, os.MkdirAll(dir, 0o750))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yml"), []byte("theme: dracula\ncolor: always\n"), 0o600))

	cfg, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, "dracula", cfg.Theme)
	assert.Equal(t, "always", cfg.Color)
}

func TestLoadConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("backend: go-git\nshow_icons: yes\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "go-git", cfg.Backend)
	assert.True(t, cfg.ShowIcons)
}

func TestLoadConfigExplicitPathMissing(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: [unterminated\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadPrecedence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("theme: dracula\ncolor: never\nbackend: go-git\n"), 0o600))

	mockGitConfig(t, func(args []string, _ string) (string, error) {
		switch args[len(args)-1] {
		case "--global":
			return "stageguard.theme nord\nstageguard.show-icons true\n", nil
		default:
			return "stageguard.theme gruvbox-dark\n", nil
		}
	})

	cfg, errs := Load(path, "")
	assert.Empty(t, errs)
	assert.Equal(t, "gruvbox-dark", cfg.Theme)
	assert.Equal(t, "never", cfg.Color)
	assert.Equal(t, "go-git", cfg.Backend)
	assert.True(t, cfg.ShowIcons)
}

func TestLoadCollectsErrors(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	mockGitConfig(t, func(args []string, _ string) (string, error) {
		if args[len(args)-1] == "--global" {
			return "", os.ErrPermission
		}
		return "stageguard.color always\n", nil
	})

	cfg, errs := Load("", "")
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], os.ErrPermission)
	assert.Equal(t, "always", cfg.Color)
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)
	t.Setenv("STAGEGUARD_TEST_DIR", "/opt/logs")

	got, err := ExpandPath("~/debug.log")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "debug.log"), got)

	got, err = ExpandPath("$STAGEGUARD_TEST_DIR/debug.log")
	require.NoError(t, err)
	assert.Equal(t, "/opt/logs/debug.log", got)
}
