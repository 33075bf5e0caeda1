package challenge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrill/typedrill/domain/chunk"
)

func TestNewChallenge_IDIsDeterministic(t *testing.T) {
	a := NewChallenge("x := 1", "main.go", 3, 5, "go", nil, DifficultyEasy)
	b := NewChallenge("x := 1", "main.go", 3, 5, "go", nil, DifficultyEasy)
	assert.Equal(t, a.ID(), b.ID())
	require.Len(t, a.ID(), 64)
}

func TestNewChallenge_IDVariesByLocationAndDifficulty(t *testing.T) {
	base := NewChallenge("x := 1", "main.go", 3, 5, "go", nil, DifficultyEasy)

	otherFile := NewChallenge("x := 1", "other.go", 3, 5, "go", nil, DifficultyEasy)
	otherLines := NewChallenge("x := 1", "main.go", 3, 6, "go", nil, DifficultyEasy)
	otherDifficulty := NewChallenge("x := 1", "main.go", 3, 5, "go", nil, DifficultyHard)

	assert.NotEqual(t, base.ID(), otherFile.ID())
	assert.NotEqual(t, base.ID(), otherLines.ID())
	assert.NotEqual(t, base.ID(), otherDifficulty.ID())
}

func TestReconstruct_PreservesID(t *testing.T) {
	original := NewChallenge("x := 1", "main.go", 3, 5, "go",
		[]chunk.Range{{Start: 0, End: 2}}, DifficultyWild)

	rebuilt := Reconstruct(
		original.ID(),
		original.CodeContent(),
		original.SourceFilePath(),
		original.StartLine(),
		original.EndLine(),
		original.Language(),
		original.CommentRanges(),
		original.DifficultyLevel(),
	)

	assert.Equal(t, original, rebuilt)
}

func TestChallenge_CommentRangesAreCopied(t *testing.T) {
	ranges := []chunk.Range{{Start: 0, End: 2}}
	c := NewChallenge("x := 1", "main.go", 1, 1, "go", ranges, DifficultyWild)

	ranges[0].End = 99
	assert.Equal(t, 2, c.CommentRanges()[0].End)
}

func TestChallenge_DisplayTitle(t *testing.T) {
	withLines := NewChallenge("x", "pkg/util/strings.go", 10, 20, "go", nil, DifficultyEasy)
	assert.Equal(t, "util/strings.go:10-20", withLines.DisplayTitle())

	topLevel := NewChallenge("x", "main.go", 1, 3, "go", nil, DifficultyEasy)
	assert.Equal(t, "main.go:1-3", topLevel.DisplayTitle())

	noPath := NewChallenge("x", "", 0, 0, "go", nil, DifficultyEasy)
	assert.Contains(t, noPath.DisplayTitle(), "challenge ")
}
