// Package cache persists challenges as lightweight pointers keyed by
// repository identity and commit, gzip-compressed on disk.
package cache

import (
	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/chunk"
)

// ChallengePointer is the cache projection of a challenge: everything but
// the code content, which is re-read from the work tree on load. Fields are
// exported for gob.
type ChallengePointer struct {
	ID             string
	SourceFilePath string
	StartLine      int
	EndLine        int
	Language       string
	CommentRanges  []chunk.Range
	Difficulty     string
}

// CacheEntry is the on-disk unit: one entry per (repository, commit).
type CacheEntry struct {
	RepoKey    string
	CommitHash string
	Pointers   []ChallengePointer
}

func pointerFrom(c challenge.Challenge) ChallengePointer {
	return ChallengePointer{
		ID:             c.ID(),
		SourceFilePath: c.SourceFilePath(),
		StartLine:      c.StartLine(),
		EndLine:        c.EndLine(),
		Language:       c.Language(),
		CommentRanges:  c.CommentRanges(),
		Difficulty:     string(c.DifficultyLevel()),
	}
}
