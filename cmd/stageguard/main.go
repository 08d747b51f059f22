// Package main is the entry point for the stageguard pre-commit hook.
package main

import (
	"context"
	"os"

	"github.com/chmouel/stageguard/internal/bootstrap"
	"github.com/chmouel/stageguard/internal/buildinfo"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

func main() {
	buildinfo.Set(version, commit, date, builtBy)
	buildinfo.Enrich()

	os.Exit(bootstrap.Run(context.Background(), os.Args, os.Stdout, os.Stderr))
}
