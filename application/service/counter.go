// Package service orchestrates challenge generation: counting, splitting,
// difficulty fan-out, and the cache-aware pipeline.
package service

import (
	"unicode"

	"github.com/typedrill/typedrill/domain/chunk"
)

// CodeCharacterCounter counts the characters that actually constitute code:
// whitespace and comment text are excluded. All positions are character
// indices, not bytes.
type CodeCharacterCounter struct{}

// NewCodeCharacterCounter creates a CodeCharacterCounter.
func NewCodeCharacterCounter() CodeCharacterCounter {
	return CodeCharacterCounter{}
}

// CountChunk counts code characters in a chunk's content.
func (c CodeCharacterCounter) CountChunk(ch chunk.CodeChunk) int {
	return c.CountContent(ch.Content(), ch.CommentRanges())
}

// CountContent counts non-whitespace characters outside the comment ranges.
func (c CodeCharacterCounter) CountContent(content string, commentRanges []chunk.Range) int {
	count := 0
	for pos, r := range []rune(content) {
		if unicode.IsSpace(r) {
			continue
		}
		if inAnyRange(pos, commentRanges) {
			continue
		}
		count++
	}
	return count
}

func inAnyRange(pos int, ranges []chunk.Range) bool {
	for _, r := range ranges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}
