package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"slices"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/stageguard/internal/buildinfo"
	"github.com/chmouel/stageguard/internal/config"
	"github.com/chmouel/stageguard/internal/git"
	"github.com/chmouel/stageguard/internal/guard"
	log "github.com/chmouel/stageguard/internal/log"
	"github.com/chmouel/stageguard/internal/report"
	"github.com/chmouel/stageguard/internal/theme"
)

var (
	newStatusReaderFunc = git.NewStatusReader
	loadConfigFunc      = config.Load
)

// errUsage marks invalid flag values.
var errUsage = errors.New("invalid usage")

// app carries the state shared by the command actions of one run.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	patterns guard.PatternSet
	exitCode int
}

// Run executes the stageguard command line and returns the process exit
// code. Any failure to run the check, including bad flags, returns
// report.ExitEnvironment so the commit is blocked.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		patterns: guard.DefaultPatterns(),
	}

	cmd := a.command()
	if err := cmd.Run(ctx, args); err != nil {
		log.Printf("error: %v", err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		_ = log.Close()
		return report.ExitEnvironment
	}

	if err := log.Close(); err != nil {
		fmt.Fprintf(stderr, "Error closing debug log: %v\n", err)
	}
	return a.exitCode
}

func (a *app) command() *urfavecli.Command {
	urfavecli.VersionPrinter = func(cmd *urfavecli.Command) {
		fmt.Fprintln(cmd.Root().Writer, buildinfo.Get().Summary())
	}

	return &urfavecli.Command{
		Name:            "stageguard",
		Usage:           "Block commits that stage secret or credential files",
		Version:         buildinfo.Get().Version,
		Writer:          a.stdout,
		ErrWriter:       a.stderr,
		HideHelpCommand: true,
		Flags:           globalFlags(),
		Commands: []*urfavecli.Command{
			a.patternsCommand(),
			a.installCommand(),
		},
		// exit codes are decided by Run, never by urfave/cli
		ExitErrHandler: func(context.Context, *urfavecli.Command, error) {},
		Action:         a.runCheck,
	}
}

// loadCLIConfig loads the configuration and applies flag overrides, which
// have the highest precedence.
func loadCLIConfig(cmd *urfavecli.Command) (*config.AppConfig, error) {
	// repository git config is read from the working directory
	cfg, errs := loadConfigFunc(cmd.String("config-file"), "")
	for _, err := range errs {
		log.Printf("config: %v", err)
	}

	if cmd.IsSet("color") {
		color := cmd.String("color")
		if !slices.Contains([]string{report.ColorAuto, report.ColorAlways, report.ColorNever}, color) {
			return nil, fmt.Errorf("%w: unknown color mode %q", errUsage, color)
		}
		cfg.Color = color
	}
	if cmd.IsSet("theme") {
		name := cmd.String("theme")
		if !theme.IsKnown(name) {
			return nil, fmt.Errorf("%w: unknown theme %q", errUsage, name)
		}
		cfg.Theme = name
	}
	if cmd.IsSet("backend") {
		backend := cmd.String("backend")
		if backend != git.BackendGit && backend != git.BackendGoGit {
			return nil, fmt.Errorf("%w: unknown backend %q", errUsage, backend)
		}
		cfg.Backend = backend
	}
	if debugLog := cmd.String("debug-log"); debugLog != "" {
		cfg.DebugLog = debugLog
	}

	return cfg, nil
}

// setupDebugLog points the debug log at the configured file, or discards it.
func setupDebugLog(cfg *config.AppConfig, stderr io.Writer) {
	path := cfg.DebugLog
	if path != "" {
		if expanded, err := config.ExpandPath(path); err == nil {
			path = expanded
		}
	}
	if err := log.SetFile(path); err != nil {
		fmt.Fprintf(stderr, "Error opening debug log file %q: %v\n", path, err)
	}
}

func reporterOptions(cfg *config.AppConfig) report.Options {
	return report.Options{
		Color:     cfg.Color,
		Theme:     cfg.Theme,
		ShowIcons: cfg.ShowIcons,
	}
}

// runCheck is the default action: read the status, match staged names and
// report.
func (a *app) runCheck(ctx context.Context, cmd *urfavecli.Command) error {
	if cmd.NArg() > 0 {
		return fmt.Errorf("%w: unexpected argument %q", errUsage, cmd.Args().First())
	}

	cfg, err := loadCLIConfig(cmd)
	if err != nil {
		return err
	}
	setupDebugLog(cfg, a.stderr)
	log.Printf("check: backend=%s patterns=%d", cfg.Backend, a.patterns.Len())

	rep := report.New(a.stdout, a.stderr, reporterOptions(cfg))
	reader := newStatusReaderFunc(cfg.Backend, "")

	matches, err := guard.Check(ctx, reader, guard.NewMatcher(a.patterns))
	if err != nil {
		log.Printf("status: %v", err)
		a.exitCode = rep.ReportError(err)
		return nil
	}

	a.exitCode = rep.Report(matches)
	log.Printf("check: %d sensitive staged files, exit %d", len(matches), a.exitCode)
	return nil
}
