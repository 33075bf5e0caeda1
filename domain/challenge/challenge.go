// Package challenge provides the typing challenge domain types.
package challenge

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"path/filepath"

	"github.com/typedrill/typedrill/domain/chunk"
)

// Challenge is an immutable typing exercise built from a code chunk.
// Comment ranges are character indices into CodeContent, in the
// processed-text coordinate space.
type Challenge struct {
	id             string
	codeContent    string
	sourceFilePath string
	startLine      int
	endLine        int
	language       string
	commentRanges  []chunk.Range
	difficulty     Difficulty
}

// NewChallenge creates a Challenge. The id is derived from the source
// location and difficulty, so a challenge built twice from the same commit
// gets the same id.
func NewChallenge(
	codeContent, sourceFilePath string,
	startLine, endLine int,
	language string,
	commentRanges []chunk.Range,
	difficulty Difficulty,
) Challenge {
	ranges := make([]chunk.Range, len(commentRanges))
	copy(ranges, commentRanges)

	return Challenge{
		id:             computeID(sourceFilePath, startLine, endLine, difficulty),
		codeContent:    codeContent,
		sourceFilePath: sourceFilePath,
		startLine:      startLine,
		endLine:        endLine,
		language:       language,
		commentRanges:  ranges,
		difficulty:     difficulty,
	}
}

// Reconstruct rebuilds a Challenge from persisted fields, preserving its id.
func Reconstruct(
	id, codeContent, sourceFilePath string,
	startLine, endLine int,
	language string,
	commentRanges []chunk.Range,
	difficulty Difficulty,
) Challenge {
	ranges := make([]chunk.Range, len(commentRanges))
	copy(ranges, commentRanges)

	return Challenge{
		id:             id,
		codeContent:    codeContent,
		sourceFilePath: sourceFilePath,
		startLine:      startLine,
		endLine:        endLine,
		language:       language,
		commentRanges:  ranges,
		difficulty:     difficulty,
	}
}

// ID returns the opaque unique identifier.
func (c Challenge) ID() string { return c.id }

// CodeContent returns the text presented to the typist.
func (c Challenge) CodeContent() string { return c.codeContent }

// SourceFilePath returns the originating file path relative to the
// repository root; empty when the challenge has no source file.
func (c Challenge) SourceFilePath() string { return c.sourceFilePath }

// StartLine returns the 1-based first source line, or 0 when unknown.
func (c Challenge) StartLine() int { return c.startLine }

// EndLine returns the 1-based last source line (inclusive), or 0 when unknown.
func (c Challenge) EndLine() int { return c.endLine }

// Language returns the language name, or empty when unknown.
func (c Challenge) Language() string { return c.language }

// CommentRanges returns the comment intervals over CodeContent.
func (c Challenge) CommentRanges() []chunk.Range {
	ranges := make([]chunk.Range, len(c.commentRanges))
	copy(ranges, c.commentRanges)
	return ranges
}

// DifficultyLevel returns the assigned difficulty, or empty when unassigned.
func (c Challenge) DifficultyLevel() Difficulty { return c.difficulty }

// DisplayTitle returns a short human-readable title for listings.
func (c Challenge) DisplayTitle() string {
	if c.sourceFilePath == "" {
		return "challenge " + c.id[:12]
	}

	title := c.sourceFilePath
	if dir := filepath.Dir(c.sourceFilePath); dir != "." {
		title = filepath.Join(filepath.Base(dir), filepath.Base(c.sourceFilePath))
	}
	if c.startLine > 0 && c.endLine > 0 {
		title = fmt.Sprintf("%s:%d-%d", title, c.startLine, c.endLine)
	}
	return title
}

func computeID(sourceFilePath string, startLine, endLine int, difficulty Difficulty) string {
	raw := fmt.Sprintf("%s:%d:%d:%s", sourceFilePath, startLine, endLine, difficulty)
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
