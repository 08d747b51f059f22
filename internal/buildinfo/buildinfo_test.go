package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSetAndGet(t *testing.T) {
	Set("1.2.3", "abc123", "2025-01-01", "ci")

	assert.Equal(t, Info{Version: "1.2.3", Commit: "abc123", Date: "2025-01-01", BuiltBy: "ci"}, Get())
}

func TestEnrichOverwritesDefaults(t *testing.T) {
	Set("dev", "none", "unknown", "unknown")
	Enrich()

	// the test binary always records its Go version
	assert.NotEqual(t, "unknown", Get().BuiltBy)
}

func TestEnrichPreservesExplicitValues(t *testing.T) {
	Set("v1.0.0", "deadbeef", "2025-06-01", "goreleaser")
	Enrich()

	assert.Equal(t, "deadbeef", Get().Commit)
	assert.Equal(t, "goreleaser", Get().BuiltBy)
}

func TestSummary(t *testing.T) {
	info := Info{Version: "v0.3.0", Commit: "cafe", Date: "2026-01-02", BuiltBy: "go1.25"}

	assert.Equal(t, "stageguard version v0.3.0\ncommit: cafe\nbuilt at: 2026-01-02\nbuilt by: go1.25", info.Summary())
}
