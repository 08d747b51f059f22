// Package models defines the data objects shared across stageguard packages.
package models

// ChangeKind is the staged (index) side of a git status entry.
type ChangeKind int

// Change kinds.
const (
	Other ChangeKind = iota
	Added
	Modified
	Deleted
)

// String returns the lower-case name of the change kind.
func (k ChangeKind) String() string {
	switch k {
	case Added:
		return "added"
	case Modified:
		return "modified"
	case Deleted:
		return "deleted"
	default:
		return "other"
	}
}

// KindForIndex maps a porcelain index letter to a ChangeKind.
// Renames, copies, type changes and conflicts all map to Other.
func KindForIndex(index byte) ChangeKind {
	switch index {
	case 'A':
		return Added
	case 'M':
		return Modified
	case 'D':
		return Deleted
	default:
		return Other
	}
}

// StagedFile represents a file entry from git status.
type StagedFile struct {
	Path  string     // Relative to the repository root, slash separated
	Kind  ChangeKind // Staged change kind
	Index byte       // Raw index status letter (e.g. 'A', 'M', 'R', '?')
}

// MatchResult is a staged file whose name matched a sensitive pattern.
type MatchResult struct {
	Path    string
	Pattern string // Source of the first pattern that matched
}
