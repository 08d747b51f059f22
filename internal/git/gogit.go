package git

import (
	"context"
	"errors"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	log "github.com/chmouel/stageguard/internal/log"
	"github.com/chmouel/stageguard/internal/models"
)

// GoGitReader reads status through go-git, without a git executable.
type GoGitReader struct {
	dir string
}

var _ StatusReader = (*GoGitReader)(nil)

// NewGoGitReader returns a reader for the repository containing dir.
func NewGoGitReader(dir string) *GoGitReader {
	return &GoGitReader{dir: dir}
}

// Status lists changed and untracked entries sorted by path, matching the
// order git itself reports. Exact renames are reported once, at the new path,
// with index status 'R'.
func (r *GoGitReader) Status(ctx context.Context) ([]models.StagedFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := r.dir
	if dir == "" {
		dir = "."
	}
	log.Printf("go-git: open %s", dir)

	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, &EnvironmentError{Op: "go-git open", Err: ErrNotRepository, Detail: dir}
		}
		return nil, &EnvironmentError{Op: "go-git open", Err: ErrGitUnavailable, Detail: err.Error()}
	}

	worktree, err := repo.Worktree()
	if err != nil {
		// bare repositories have no work tree
		return nil, &EnvironmentError{Op: "go-git worktree", Err: ErrNotRepository, Detail: err.Error()}
	}

	status, err := worktree.Status()
	if err != nil {
		return nil, &EnvironmentError{Op: "go-git status", Err: ErrGitUnavailable, Detail: err.Error()}
	}

	files := make([]models.StagedFile, 0, len(status))
	for path, st := range status {
		if st.Staging == gogit.Unmodified && st.Worktree == gogit.Unmodified {
			continue
		}
		index := byte(st.Staging)
		switch st.Staging {
		case gogit.Unmodified:
			index = '.'
		case gogit.UpdatedButUnmerged:
			index = 'U'
		}
		files = append(files, models.StagedFile{
			Path:  filepath.ToSlash(path),
			Kind:  models.KindForIndex(index),
			Index: index,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Path < files[j].Path })
	files = pairRenames(repo, files)

	log.Printf("go-git status: %d entries", len(files))
	return files, nil
}

// pairRenames folds a staged deletion and a staged addition of the same blob
// into one rename entry at the new path, the way git status reports an exact
// rename. Renames with edited content are left as a deletion plus an
// addition.
func pairRenames(repo *gogit.Repository, files []models.StagedFile) []models.StagedFile {
	var added, deleted []int
	for i, f := range files {
		switch f.Index {
		case byte(gogit.Added):
			added = append(added, i)
		case byte(gogit.Deleted):
			deleted = append(deleted, i)
		}
	}
	if len(added) == 0 || len(deleted) == 0 {
		return files
	}

	head, err := headTree(repo)
	if err != nil {
		log.Printf("go-git rename detection skipped: %v", err)
		return files
	}
	idx, err := repo.Storer.Index()
	if err != nil {
		log.Printf("go-git rename detection skipped: %v", err)
		return files
	}

	sources := make(map[plumbing.Hash][]int, len(deleted))
	for _, i := range deleted {
		entry, err := head.FindEntry(files[i].Path)
		if err != nil {
			continue
		}
		sources[entry.Hash] = append(sources[entry.Hash], i)
	}

	renamed := make(map[int]bool)
	for _, i := range added {
		entry, err := idx.Entry(files[i].Path)
		if err != nil {
			continue
		}
		src := sources[entry.Hash]
		if len(src) == 0 {
			continue
		}
		sources[entry.Hash] = src[1:]
		renamed[src[0]] = true

		log.Printf("go-git: %s renamed to %s", files[src[0]].Path, files[i].Path)
		files[i].Index = 'R'
		files[i].Kind = models.KindForIndex('R')
	}

	out := files[:0]
	for i, f := range files {
		if !renamed[i] {
			out = append(out, f)
		}
	}
	return out
}

func headTree(repo *gogit.Repository) (*object.Tree, error) {
	ref, err := repo.Head()
	if err != nil {
		return nil, err
	}
	commit, err := repo.CommitObject(ref.Hash())
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}
