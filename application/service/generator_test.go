package service

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/chunk"
)

func difficultiesOf(challenges []challenge.Challenge) []challenge.Difficulty {
	out := make([]challenge.Difficulty, len(challenges))
	for i, c := range challenges {
		out[i] = c.DifficultyLevel()
	}
	return out
}

func TestChallengeGenerator_Convert_FansOutDifficulties(t *testing.T) {
	gen := NewChallengeGenerator()

	// 29 code characters: clears easy's minimum of 20, below normal's 80.
	ch := functionChunk("func add(a, b int) int {\n\treturn a + b\n}", nil)

	challenges := gen.Convert(context.Background(), []chunk.CodeChunk{ch}, nil)
	require.Len(t, challenges, 2)
	assert.ElementsMatch(t,
		[]challenge.Difficulty{challenge.DifficultyWild, challenge.DifficultyEasy},
		difficultiesOf(challenges),
	)

	for _, c := range challenges {
		assert.Equal(t, "func add(a, b int) int {\n\treturn a + b\n}", c.CodeContent())
		assert.Equal(t, "main.go", c.SourceFilePath())
		assert.Equal(t, 10, c.StartLine())
		assert.Equal(t, "go", c.Language())
	}
}

func TestChallengeGenerator_Convert_FileChunkIsZenOnly(t *testing.T) {
	gen := NewChallengeGenerator()

	content := "package main\n\nfunc main() {}\n"
	ch := chunk.NewCodeChunk(content, "main.go", nil, chunk.TypeFile, 1, 3, "go", "entire_file", "")

	challenges := gen.Convert(context.Background(), []chunk.CodeChunk{ch}, nil)
	require.Len(t, challenges, 1)
	assert.Equal(t, challenge.DifficultyZen, challenges[0].DifficultyLevel())
	// Zen preserves the blank line between declarations.
	assert.Equal(t, "package main\n\nfunc main() {}", challenges[0].CodeContent())
}

func TestChallengeGenerator_Convert_DropsBlankAndInvalidChunks(t *testing.T) {
	gen := NewChallengeGenerator()

	blank := functionChunk("   \n\t\n", nil)
	badLines := chunk.NewCodeChunk("func f() {}", "main.go", nil, chunk.TypeFunction, 0, 0, "go", "f", "")

	challenges := gen.Convert(context.Background(), []chunk.CodeChunk{blank, badLines}, nil)
	assert.Empty(t, challenges)
}

func TestChallengeGenerator_Convert_SplitsOversizedChunks(t *testing.T) {
	gen := NewChallengeGenerator()

	// 40 lines of five code characters each, 200 code characters total.
	// Easy (max 100) must be served a truncated slice; wild gets the whole
	// chunk.
	lines := make([]string, 40)
	for i := range lines {
		lines[i] = "aaaa;"
	}
	ch := functionChunk(strings.Join(lines, "\n"), nil)

	challenges := gen.Convert(context.Background(), []chunk.CodeChunk{ch}, nil)

	byDifficulty := make(map[challenge.Difficulty]challenge.Challenge)
	for _, c := range challenges {
		byDifficulty[c.DifficultyLevel()] = c
	}

	wild, ok := byDifficulty[challenge.DifficultyWild]
	require.True(t, ok)
	assert.Equal(t, 40, strings.Count(wild.CodeContent(), "\n")+1)

	easy, ok := byDifficulty[challenge.DifficultyEasy]
	require.True(t, ok)
	assert.Equal(t, 20, strings.Count(easy.CodeContent(), "\n")+1)
	assert.Equal(t, 29, easy.EndLine())
}

func TestChallengeGenerator_Convert_Deterministic(t *testing.T) {
	gen := NewChallengeGenerator()

	chunks := []chunk.CodeChunk{
		functionChunk("func a() {\n\treturn someValue + 1\n}", nil),
		functionChunk("func bb() {\n\treturn someOtherValue * 2\n}", nil),
		functionChunk("func c() { return 0 }", nil),
	}

	first := gen.Convert(context.Background(), chunks, nil)
	second := gen.Convert(context.Background(), chunks, nil)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].ID(), second[i].ID())
		assert.Equal(t, first[i].CodeContent(), second[i].CodeContent())
	}
}
