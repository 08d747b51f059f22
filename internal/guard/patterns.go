// Package guard decides which staged files look like secrets or credentials.
package guard

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// Pattern is one sensitive file naming convention.
type Pattern struct {
	Expr   *regexp.Regexp
	Intent string
}

// Source returns the expression as written, without the case folding flag.
func (p Pattern) Source() string {
	return strings.TrimPrefix(p.Expr.String(), "(?i)")
}

// PatternSet is an ordered, read-only list of patterns.
type PatternSet struct {
	patterns []Pattern
}

// Patterns returns a copy of the set in order.
func (s PatternSet) Patterns() []Pattern {
	return append([]Pattern(nil), s.patterns...)
}

// Len returns the number of patterns in the set.
func (s PatternSet) Len() int { return len(s.patterns) }

// PatternSpec describes a pattern before compilation.
type PatternSpec struct {
	Expr   string
	Intent string
}

// NewPatternSet compiles specs case-insensitively.
func NewPatternSet(specs []PatternSpec) (PatternSet, error) {
	patterns := make([]Pattern, 0, len(specs))
	for _, spec := range specs {
		re, err := regexp.Compile("(?i)" + spec.Expr)
		if err != nil {
			return PatternSet{}, fmt.Errorf("compile pattern %q: %w", spec.Expr, err)
		}
		patterns = append(patterns, Pattern{Expr: re, Intent: spec.Intent})
	}
	return PatternSet{patterns: patterns}, nil
}

// defaultSpecs are the built-in sensitive file names. They are not
// configurable.
var defaultSpecs = []PatternSpec{
	{`^\.env(\..+)?$`, ".env files and variants such as .env.production"},
	{`^\.?env$`, "bare env or .env"},
	{`\.pem$`, "PEM keys and certificates"},
	{`\.key$`, "private keys"},
	{`\.crt$`, "certificates"},
	{`id_rsa$`, "SSH private key"},
	{`id_rsa\.pub$`, "SSH public key"},
	{`credentials\.json$`, "cloud credential bundles"},
	{`firebase.*\.json$`, "Firebase config and keys"},
	{`serviceAccount.*\.json$`, "service account keys"},
	{`secrets?\..*$`, "secret.* and secrets.* files"},
	// tested against a basename, which never contains a slash
	{`config/secrets.*$`, "secrets under a config directory"},
	{`\.p12$`, "PKCS#12 bundles"},
	{`\.keystore$`, "Java keystores"},
}

// DefaultPatterns builds the built-in pattern set. Call it once at startup
// and pass the result to NewMatcher.
func DefaultPatterns() PatternSet {
	set, err := NewPatternSet(defaultSpecs)
	if err != nil {
		panic(err)
	}
	return set
}

// Matcher tests staged paths against a PatternSet.
type Matcher struct {
	set PatternSet
}

// NewMatcher returns a matcher over set.
func NewMatcher(set PatternSet) *Matcher {
	return &Matcher{set: set}
}

// Match reports the first pattern matching the basename of file, if any.
// Directory components are never tested.
func (m *Matcher) Match(file string) (string, bool) {
	base := path.Base(filepath.ToSlash(file))

	for _, p := range m.set.patterns {
		if p.Expr.MatchString(base) {
			return p.Source(), true
		}
	}
	return "", false
}

// Matches reports whether any pattern matches file.
func (m *Matcher) Matches(file string) bool {
	_, ok := m.Match(file)
	return ok
}
