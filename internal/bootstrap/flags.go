// Package bootstrap wires the stageguard command line.
package bootstrap

import (
	"strings"

	urfavecli "github.com/urfave/cli/v3"

	"github.com/chmouel/stageguard/internal/git"
	log "github.com/chmouel/stageguard/internal/log"
	"github.com/chmouel/stageguard/internal/report"
	"github.com/chmouel/stageguard/internal/theme"
)

// globalFlags returns all global flags for the application.
// Note: --version is provided automatically by urfave/cli via Command.Version
func globalFlags() []urfavecli.Flag {
	return []urfavecli.Flag{
		&urfavecli.StringFlag{
			Name:    "debug-log",
			Usage:   "Path to debug log file",
			Sources: urfavecli.EnvVars(log.EnvFile),
		},
		&urfavecli.StringFlag{
			Name:  "color",
			Usage: "Colourise output: " + strings.Join([]string{report.ColorAuto, report.ColorAlways, report.ColorNever}, ", "),
		},
		&urfavecli.StringFlag{
			Name:    "theme",
			Aliases: []string{"t"},
			Usage:   "Colour theme: " + strings.Join(theme.AvailableThemes(), ", "),
		},
		&urfavecli.StringFlag{
			Name:  "backend",
			Usage: "Status backend: " + git.BackendGit + " or " + git.BackendGoGit,
		},
		&urfavecli.StringFlag{
			Name:  "config-file",
			Usage: "Path to configuration file",
		},
	}
}
