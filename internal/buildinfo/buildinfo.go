// Package buildinfo holds build metadata for the stageguard binary. The
// linker sets variables in cmd/stageguard; main forwards them with Set.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

// Info is the build metadata reported by --version.
type Info struct {
	Version string
	Commit  string
	Date    string
	BuiltBy string
}

var current = Info{
	Version: "dev",
	Commit:  "none",
	Date:    "unknown",
	BuiltBy: "unknown",
}

// Set stores the build metadata received from linker-injected variables.
func Set(version, commit, date, builtBy string) {
	current = Info{Version: version, Commit: commit, Date: date, BuiltBy: builtBy}
}

// Get returns the current build metadata.
func Get() Info { return current }

// Enrich fills a missing commit from the VCS revision and a missing builder
// from the Go version recorded in the binary.
func Enrich() {
	if current.Commit != "none" && current.BuiltBy != "unknown" {
		return
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}

	if current.Commit == "none" {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				current.Commit = setting.Value
			}
		}
	}
	if current.BuiltBy == "unknown" {
		current.BuiltBy = info.GoVersion
	}
}

// Summary formats the metadata for display.
func (i Info) Summary() string {
	return fmt.Sprintf("stageguard version %s\ncommit: %s\nbuilt at: %s\nbuilt by: %s", i.Version, i.Commit, i.Date, i.BuiltBy)
}
