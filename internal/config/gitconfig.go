package config

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// gitConfigPrefix is the git config section holding stageguard settings,
// e.g. `git config stageguard.color never`.
const gitConfigPrefix = "stageguard."

// gitConfigMock allows tests to mock git config output.
var gitConfigMock func(args []string, repoPath string) (string, error)

// runGitConfig executes git config command and returns raw output.
func runGitConfig(args []string, repoPath string) (string, error) {
	if gitConfigMock != nil {
		return gitConfigMock(args, repoPath)
	}

	// #nosec G204 -- arguments are fixed by loadGitConfig
	cmd := exec.Command("git", args...)
	if repoPath != "" {
		cmd.Dir = repoPath
	}

	output, err := cmd.Output()
	if err != nil {
		var exitErr *exec.ExitError
		// exit 1: no matching key
		if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
			return "", nil
		}
		return "", err
	}
	return string(output), nil
}

// parseGitConfigOutput parses `git config --get-regexp` output. Git only
// allows dashes in variable names, so they are mapped to the underscores
// used by the YAML keys. The last value of a repeated key wins, as with
// `git config --get`.
// Input format: "stageguard.show-icons true\nstageguard.theme nord\n"
func parseGitConfigOutput(output string) map[string]any {
	values := make(map[string]any)
	for _, line := range strings.Split(strings.TrimSpace(output), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		key, value, found := strings.Cut(line, " ")
		if !found {
			// a bare boolean key (`[stageguard] show-icons`) means true
			value = "true"
		}
		key = strings.TrimPrefix(strings.ToLower(key), gitConfigPrefix)
		key = strings.ReplaceAll(key, "-", "_")
		if key == "" {
			continue
		}
		values[key] = value
	}
	return values
}

// loadGitConfig reads stageguard.* values from global or repository config.
func loadGitConfig(globalOnly bool, repoPath string) (map[string]any, error) {
	args := []string{"config", "--get-regexp", `^stageguard\.`}
	scope := "--local"
	if globalOnly {
		scope = "--global"
	}
	args = append(args, scope)

	output, err := runGitConfig(args, repoPath)
	if err != nil {
		if !globalOnly {
			// --local outside a repository fails; the status check reports that
			return map[string]any{}, nil
		}
		return nil, fmt.Errorf("git config %s: %w", scope, err)
	}
	return parseGitConfigOutput(output), nil
}
