package service

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/chunk"
)

func functionChunk(content string, commentRanges []chunk.Range) chunk.CodeChunk {
	return chunk.NewCodeChunk(content, "main.go", commentRanges, chunk.TypeFunction, 10, 10+strings.Count(content, "\n"), "go", "f", "")
}

func TestChunkSplitter_WithinBudgetPassesThrough(t *testing.T) {
	splitter := NewChunkSplitter()
	content := "func f() {\n\treturn 1\n}"
	ch := functionChunk(content, nil)

	result, ok := splitter.SplitWithLimits(ch, 5, 100)
	require.True(t, ok)
	assert.Equal(t, content, result.Content)
	assert.Equal(t, 12, result.EndLine)
}

func TestChunkSplitter_BelowMinimumRejected(t *testing.T) {
	splitter := NewChunkSplitter()
	ch := functionChunk("x", nil)

	_, ok := splitter.SplitWithLimits(ch, 20, 100)
	assert.False(t, ok)
}

func TestChunkSplitter_TruncatesAtNaturalBoundary(t *testing.T) {
	splitter := NewChunkSplitter()

	// Ten lines of five code characters each, every line ending in a
	// semicolon boundary. A budget of 22 overflows on the fifth line, so
	// the cut lands after line four.
	lines := make([]string, 10)
	for i := range lines {
		lines[i] = "aaaa;"
	}
	ch := functionChunk(strings.Join(lines, "\n"), nil)

	result, ok := splitter.SplitWithLimits(ch, 5, 22)
	require.True(t, ok)
	assert.Equal(t, strings.Join(lines[:4], "\n"), result.Content)
	assert.Equal(t, 13, result.EndLine)
}

func TestChunkSplitter_NoBoundaryFallsBackToFirstLine(t *testing.T) {
	splitter := NewChunkSplitter()

	lines := []string{"aaaaa", "bbbbb", "ccccc"}
	ch := functionChunk(strings.Join(lines, "\n"), nil)

	result, ok := splitter.SplitWithLimits(ch, 3, 8)
	require.True(t, ok)
	assert.Equal(t, "aaaaa", result.Content)
}

func TestChunkSplitter_AdjustsCommentRangesOnTruncation(t *testing.T) {
	splitter := NewChunkSplitter()

	content := "aaaa; // one\nbbbb;\ncccc; // two\ndddd;"
	ranges := []chunk.Range{
		{Start: 6, End: 12},  // first line comment
		{Start: 25, End: 31}, // third line comment
	}
	ch := functionChunk(content, ranges)

	// Code characters per line are 5 each (comments excluded). A budget of
	// 11 overflows on line three, cutting after line two. The second range
	// then starts past the truncated content and must be dropped.
	result, ok := splitter.SplitWithLimits(ch, 5, 11)
	require.True(t, ok)
	assert.Equal(t, "aaaa; // one\nbbbb;", result.Content)
	assert.Equal(t, []chunk.Range{{Start: 6, End: 12}}, result.CommentRanges)
}

func TestChunkSplitter_Split_UsesDifficultyLimits(t *testing.T) {
	splitter := NewChunkSplitter()

	// 30 code characters: fits normal's minimum of 80? No. Fits easy's
	// [20, 100] budget.
	ch := functionChunk(strings.Repeat("a", 30), nil)

	_, ok := splitter.Split(ch, challenge.DifficultyEasy)
	assert.True(t, ok)

	_, ok = splitter.Split(ch, challenge.DifficultyNormal)
	assert.False(t, ok)
}

func TestIsNaturalBoundary(t *testing.T) {
	tests := []struct {
		line string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"}", true},
		{"\t}", true},
		{"items]", true},
		{"f(x)", true},
		{"let x = 5;", true},
		{"let x =", false},
		{"if cond {", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, isNaturalBoundary(tt.line), "line %q", tt.line)
	}
}
