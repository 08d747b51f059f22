package guard

import (
	"context"

	"github.com/chmouel/stageguard/internal/git"
	log "github.com/chmouel/stageguard/internal/log"
	"github.com/chmouel/stageguard/internal/models"
)

// FilterStaged keeps the entries staged as added or modified, in order.
// Deletions cannot leak anything into the new commit.
func FilterStaged(files []models.StagedFile) []models.StagedFile {
	staged := make([]models.StagedFile, 0, len(files))
	for _, f := range files {
		if f.Kind == models.Added || f.Kind == models.Modified {
			staged = append(staged, f)
		}
	}
	return staged
}

// FindSensitive returns one result per file whose name matches, preserving
// input order.
func FindSensitive(m *Matcher, files []models.StagedFile) []models.MatchResult {
	var matches []models.MatchResult
	for _, f := range files {
		pattern, ok := m.Match(f.Path)
		if !ok {
			continue
		}
		log.Printf("match: %s (%s, %s)", f.Path, f.Kind, pattern)
		matches = append(matches, models.MatchResult{Path: f.Path, Pattern: pattern})
	}
	return matches
}

// Check reads the status, filters it, and returns the sensitive staged
// files. A status error is returned unchanged.
func Check(ctx context.Context, reader git.StatusReader, m *Matcher) ([]models.MatchResult, error) {
	files, err := reader.Status(ctx)
	if err != nil {
		return nil, err
	}
	staged := FilterStaged(files)
	log.Printf("check: %d status entries, %d staged as added or modified", len(files), len(staged))
	return FindSensitive(m, staged), nil
}
