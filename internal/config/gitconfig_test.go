package config

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseGitConfigOutput(t *testing.T) {
	tests := []struct {
		name     string
		output   string
		expected map[string]any
	}{
		{
			name: "single values",
			output: `stageguard.theme nord
stageguard.color never`,
			expected: map[string]any{"theme": "nord", "color": "never"},
		},
		{
			name:     "dashes become underscores",
			output:   "stageguard.show-icons true\nstageguard.debug-log /tmp/my log.txt\n",
			expected: map[string]any{"show_icons": "true", "debug_log": "/tmp/my log.txt"},
		},
		{
			name:     "bare key is true",
			output:   "stageguard.show-icons\n",
			expected: map[string]any{"show_icons": "true"},
		},
		{
			name:     "last value wins",
			output:   "stageguard.theme nord\nstageguard.theme dracula\n",
			expected: map[string]any{"theme": "dracula"},
		},
		{
			name:     "git lower-cases section names",
			output:   "StageGuard.Theme nord\n",
			expected: map[string]any{"theme": "nord"},
		},
		{
			name:     "empty output",
			output:   "",
			expected: map[string]any{},
		},
		{
			name:     "whitespace only",
			output:   "   \n\n  ",
			expected: map[string]any{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseGitConfigOutput(tt.output))
		})
	}
}

func TestLoadGitConfigArgs(t *testing.T) {
	var calls [][]string
	mockGitConfig(t, func(args []string, repoPath string) (string, error) {
		calls = append(calls, args)
		assert.Equal(t, "/repo", repoPath)
		return "", nil
	})

	_, err := loadGitConfig(true, "/repo")
	require.NoError(t, err)
	_, err = loadGitConfig(false, "/repo")
	require.NoError(t, err)

	require.Len(t, calls, 2)
	assert.Equal(t, []string{"config", "--get-regexp", `^stageguard\.`, "--global"}, calls[0])
	assert.Equal(t, []string{"config", "--get-regexp", `^stageguard\.`, "--local"}, calls[1])
}

func TestLoadGitConfigLocalErrorIgnored(t *testing.T) {
	mockGitConfig(t, func([]string, string) (string, error) {
		return "", errors.New("fatal: --local can only be used inside a git repository")
	})

	values, err := loadGitConfig(false, "")
	require.NoError(t, err)
	assert.Empty(t, values)

	_, err = loadGitConfig(true, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "git config --global")
}
