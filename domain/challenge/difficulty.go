package challenge

import (
	"math"

	"github.com/typedrill/typedrill/domain/chunk"
)

// Difficulty is a named size bucket bounding acceptable challenge length.
type Difficulty string

// Difficulty values.
const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyNormal Difficulty = "normal"
	DifficultyHard   Difficulty = "hard"
	DifficultyWild   Difficulty = "wild"
	DifficultyZen    Difficulty = "zen"
)

// AllDifficulties lists every difficulty in ascending size order.
func AllDifficulties() []Difficulty {
	return []Difficulty{
		DifficultyEasy,
		DifficultyNormal,
		DifficultyHard,
		DifficultyWild,
		DifficultyZen,
	}
}

// CharLimits returns the inclusive [min, max] budget of code characters for
// the difficulty. Wild and Zen are unbounded.
func (d Difficulty) CharLimits() (int, int) {
	switch d {
	case DifficultyEasy:
		return 20, 100
	case DifficultyNormal:
		return 80, 200
	case DifficultyHard:
		return 180, 500
	default:
		return 0, math.MaxInt
	}
}

// Bounded reports whether the difficulty enforces a size budget.
func (d Difficulty) Bounded() bool {
	return d == DifficultyEasy || d == DifficultyNormal || d == DifficultyHard
}

// Description returns a short human-readable size hint.
func (d Difficulty) Description() string {
	switch d {
	case DifficultyEasy:
		return "~100 characters"
	case DifficultyNormal:
		return "~200 characters"
	case DifficultyHard:
		return "~500 characters"
	case DifficultyWild:
		return "full chunks"
	case DifficultyZen:
		return "entire files"
	default:
		return ""
	}
}

// ApplicableDifficulties returns the difficulties a chunk can serve. Whole-file
// chunks back Zen only; other chunks back Wild unconditionally and each bounded
// difficulty whose minimum the chunk's code character count reaches.
func ApplicableDifficulties(c chunk.CodeChunk, codeCharCount int) []Difficulty {
	if c.ChunkType() == chunk.TypeFile {
		return []Difficulty{DifficultyZen}
	}

	difficulties := []Difficulty{DifficultyWild}
	for _, d := range []Difficulty{DifficultyEasy, DifficultyNormal, DifficultyHard} {
		min, _ := d.CharLimits()
		if codeCharCount >= min {
			difficulties = append(difficulties, d)
		}
	}
	return difficulties
}
