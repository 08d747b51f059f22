package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/stageguard/internal/git"
	log "github.com/chmouel/stageguard/internal/log"
	"github.com/chmouel/stageguard/internal/report"
	"github.com/chmouel/stageguard/internal/theme"
)

// hookMarker identifies pre-commit hooks written by install.
const hookMarker = "# installed by stageguard"

const hookScript = `#!/bin/sh
` + hookMarker + `
exec stageguard
`

var (
	newHookServiceFunc = func() hooksDirResolver { return git.NewService("") }
	osStat             = os.Stat
)

type hooksDirResolver interface {
	HooksDir(ctx context.Context) (string, error)
}

func (a *app) patternsCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "patterns",
		Usage: "List the built-in sensitive file patterns",
		Action: func(_ context.Context, cmd *urfavecli.Command) error {
			cfg, err := loadCLIConfig(cmd)
			if err != nil {
				return err
			}
			a.printPatterns(cfg.Color, cfg.Theme)
			return nil
		},
	}
}

// printPatterns prints the pattern table. Patterns are fixed at build time.
func (a *app) printPatterns(colorMode, themeName string) {
	styles := theme.NewStyles(report.NewRenderer(a.stdout, colorMode), theme.GetTheme(themeName))

	fmt.Fprintln(a.stdout, styles.Accent.Render("Built-in sensitive file patterns (case-insensitive):"))
	for _, p := range a.patterns.Patterns() {
		line := fmt.Sprintf("  %-26s", p.Source())
		fmt.Fprintf(a.stdout, "%s %s\n", line, styles.Muted.Render(p.Intent))
	}
}

func (a *app) installCommand() *urfavecli.Command {
	return &urfavecli.Command{
		Name:  "install",
		Usage: "Install stageguard as the repository pre-commit hook",
		Flags: []urfavecli.Flag{
			&urfavecli.BoolFlag{
				Name:  "force",
				Usage: "Overwrite an existing pre-commit hook",
			},
		},
		Action: func(ctx context.Context, cmd *urfavecli.Command) error {
			cfg, err := loadCLIConfig(cmd)
			if err != nil {
				return err
			}
			setupDebugLog(cfg, a.stderr)

			path, err := installHook(ctx, newHookServiceFunc(), cmd.Bool("force"))
			if err != nil {
				return err
			}
			fmt.Fprintf(a.stdout, "Installed pre-commit hook at %s\n", path)
			return nil
		},
	}
}

// installHook writes the pre-commit hook and returns its path. An existing
// hook that stageguard did not write is kept unless force is set.
func installHook(ctx context.Context, svc hooksDirResolver, force bool) (string, error) {
	dir, err := svc.HooksDir(ctx)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, "pre-commit")

	if _, err := osStat(path); err == nil {
		// #nosec G304 -- path is inside the repository hooks directory
		existing, readErr := os.ReadFile(path)
		if readErr != nil {
			return "", fmt.Errorf("read existing hook: %w", readErr)
		}
		if !force && !strings.Contains(string(existing), hookMarker) {
			return "", fmt.Errorf("pre-commit hook already exists at %s (use --force to overwrite)", path)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("stat hook: %w", err)
	}

	const defaultDirPerms = 0o750
	if err := os.MkdirAll(dir, defaultDirPerms); err != nil {
		return "", fmt.Errorf("create hooks dir: %w", err)
	}
	const hookPerms = 0o755
	// #nosec G306 -- hooks must be executable
	if err := os.WriteFile(path, []byte(hookScript), hookPerms); err != nil {
		return "", fmt.Errorf("write hook: %w", err)
	}
	// WriteFile keeps the mode of an existing file
	if err := os.Chmod(path, hookPerms); err != nil {
		return "", fmt.Errorf("chmod hook: %w", err)
	}

	log.Printf("install: wrote %s", path)
	return path, nil
}
