// Package git reads the staged state of a working tree, either through the
// git executable or, when it is missing, through go-git.
package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"

	log "github.com/chmouel/stageguard/internal/log"
	"github.com/chmouel/stageguard/internal/models"
)

// Status backends.
const (
	BackendGit   = "git"
	BackendGoGit = "go-git"
)

// LookupPath is used to find executables in PATH. It's exposed as a package variable
// so tests can mock it and avoid depending on system binaries being installed.
var LookupPath = exec.LookPath

var (
	// ErrNotRepository is returned when the directory is not inside a git work tree.
	ErrNotRepository = errors.New("not a git repository")
	// ErrGitUnavailable is returned when git cannot be invoked at all.
	ErrGitUnavailable = errors.New("git is not available")
)

// EnvironmentError reports that the working tree status could not be read.
// It always wraps ErrNotRepository or ErrGitUnavailable.
type EnvironmentError struct {
	Op     string
	Err    error
	Detail string
}

func (e *EnvironmentError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("%s: %v: %s", e.Op, e.Err, e.Detail)
}

func (e *EnvironmentError) Unwrap() error { return e.Err }

// StatusReader returns the working tree status in git's order.
type StatusReader interface {
	Status(ctx context.Context) ([]models.StagedFile, error)
}

// Service runs git commands in a working directory.
type Service struct {
	dir string
}

var _ StatusReader = (*Service)(nil)

// NewService returns a Service rooted at dir. An empty dir means the
// process working directory.
func NewService(dir string) *Service {
	return &Service{dir: dir}
}

// NewStatusReader picks the status backend. The git executable is preferred
// because it honours hook environment such as GIT_INDEX_FILE; go-git is used
// when asked for, or when git is not on PATH.
func NewStatusReader(backend, dir string) StatusReader {
	if backend == BackendGoGit {
		return NewGoGitReader(dir)
	}
	if _, err := LookupPath("git"); err != nil {
		log.Printf("git not found on PATH (%v), using go-git", err)
		return NewGoGitReader(dir)
	}
	return NewService(dir)
}

func (s *Service) debugf(format string, args ...any) {
	log.Printf(format, args...)
}

func prepareAllowedCommand(ctx context.Context, args []string) (*exec.Cmd, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("no command provided")
	}

	switch args[0] {
	case "git":
		// #nosec G204 -- arguments for git command come from internal logic and are not shell interpolated
		return exec.CommandContext(ctx, "git", args[1:]...), nil
	default:
		return nil, fmt.Errorf("unsupported command %q", args[0])
	}
}

// RunGit executes a git command and returns its raw stdout. Failures are
// classified into EnvironmentError values.
func (s *Service) RunGit(ctx context.Context, args []string) (string, error) {
	command := strings.Join(args, " ")
	s.debugf("run: %s (cwd=%s)", command, s.dir)

	cmd, err := prepareAllowedCommand(ctx, args)
	if err != nil {
		return "", err
	}
	if s.dir != "" {
		cmd.Dir = s.dir
	}

	output, err := cmd.Output()
	if err != nil {
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			stderr := strings.TrimSpace(string(exitError.Stderr))
			s.debugf("error: %s (exit %d): %s", command, exitError.ExitCode(), stderr)
			return "", &EnvironmentError{Op: command, Err: ErrNotRepository, Detail: stderr}
		}
		s.debugf("error: %s: %v", command, err)
		return "", &EnvironmentError{Op: command, Err: ErrGitUnavailable, Detail: err.Error()}
	}

	s.debugf("ok: %s", command)
	return string(output), nil
}

// Status lists the working tree entries reported by git status, with paths
// relative to the repository root.
func (s *Service) Status(ctx context.Context) ([]models.StagedFile, error) {
	// a running commit holds the index lock, so skip the index refresh
	raw, err := s.RunGit(ctx, []string{"git", "--no-optional-locks", "status", "--porcelain=v2", "-z"})
	if err != nil {
		return nil, err
	}
	files := parsePorcelainV2(raw)
	s.debugf("status: %d entries", len(files))
	return files, nil
}

// HooksDir returns the absolute hooks directory of the repository, honouring
// core.hooksPath and linked worktrees.
func (s *Service) HooksDir(ctx context.Context) (string, error) {
	raw, err := s.RunGit(ctx, []string{"git", "rev-parse", "--git-path", "hooks"})
	if err != nil {
		return "", err
	}
	dir := strings.TrimSpace(raw)
	if !filepath.IsAbs(dir) {
		base := s.dir
		if base == "" {
			base = "."
		}
		dir = filepath.Join(base, dir)
	}
	return filepath.Abs(dir)
}

// parsePorcelainV2 parses `git status --porcelain=v2 -z` output.
//
// Records are NUL terminated. Ordinary and unmerged records carry the path
// as their last space separated field, which may itself contain spaces.
// Rename and copy records are followed by an extra record holding the
// original path.
func parsePorcelainV2(raw string) []models.StagedFile {
	records := strings.Split(raw, "\x00")
	files := make([]models.StagedFile, 0, len(records))

	for i := 0; i < len(records); i++ {
		rec := records[i]
		if len(rec) < 2 {
			continue
		}

		var xy, path string
		switch rec[0] {
		case '1': // 1 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <path>
			fields := strings.SplitN(rec, " ", 9)
			if len(fields) < 9 {
				continue
			}
			xy, path = fields[1], fields[8]
		case '2': // 2 <XY> <sub> <mH> <mI> <mW> <hH> <hI> <X><score> <path>NUL<origPath>
			fields := strings.SplitN(rec, " ", 10)
			i++ // origPath
			if len(fields) < 10 {
				continue
			}
			xy, path = fields[1], fields[9]
		case 'u': // u <XY> <sub> <m1> <m2> <m3> <mW> <h1> <h2> <h3> <path>
			fields := strings.SplitN(rec, " ", 11)
			if len(fields) < 11 {
				continue
			}
			files = append(files, models.StagedFile{Path: fields[10], Kind: models.Other, Index: 'U'})
			continue
		case '?': // ? <path>
			files = append(files, models.StagedFile{Path: rec[2:], Kind: models.Other, Index: '?'})
			continue
		default: // headers and ignored entries
			continue
		}

		if len(xy) != 2 {
			continue
		}
		files = append(files, models.StagedFile{
			Path:  path,
			Kind:  models.KindForIndex(xy[0]),
			Index: xy[0],
		})
	}

	return files
}
