package service

import (
	"strings"
	"unicode"

	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/chunk"
)

// ChunkSplitter cuts oversized chunks down to a difficulty's character
// budget along natural line boundaries.
type ChunkSplitter struct {
	counter CodeCharacterCounter
}

// NewChunkSplitter creates a ChunkSplitter.
func NewChunkSplitter() ChunkSplitter {
	return ChunkSplitter{counter: NewCodeCharacterCounter()}
}

// SplitResult is a validated slice of a chunk: its content, comment ranges
// adjusted for truncation, and the 1-based end line in the source file.
type SplitResult struct {
	Content       string
	CommentRanges []chunk.Range
	EndLine       int
}

// Split validates the chunk against the difficulty's character budget,
// truncating at the last natural boundary when the content is too long.
// It returns false when no cut can satisfy the minimum.
func (s ChunkSplitter) Split(ch chunk.CodeChunk, difficulty challenge.Difficulty) (SplitResult, bool) {
	minChars, maxChars := difficulty.CharLimits()
	return s.SplitWithLimits(ch, minChars, maxChars)
}

// SplitWithLimits is Split with an explicit [minChars, maxChars] budget.
func (s ChunkSplitter) SplitWithLimits(ch chunk.CodeChunk, minChars, maxChars int) (SplitResult, bool) {
	codeChars := s.counter.CountChunk(ch)

	if codeChars >= minChars && codeChars <= maxChars {
		endLine := ch.StartLine() + countContentLines(ch.Content()) - 1
		return SplitResult{
			Content:       ch.Content(),
			CommentRanges: ch.CommentRanges(),
			EndLine:       endLine,
		}, true
	}

	if codeChars < minChars {
		return SplitResult{}, false
	}

	breakPoint := s.findBreakPoint(ch.Content(), ch.CommentRanges(), maxChars)
	if breakPoint == 0 {
		return SplitResult{}, false
	}

	truncated, ok := truncateToLine(ch.Content(), breakPoint)
	if !ok {
		return SplitResult{}, false
	}

	adjusted := adjustRangesForTruncation(ch.CommentRanges(), len([]rune(truncated)))

	if s.counter.CountContent(truncated, adjusted) < minChars {
		return SplitResult{}, false
	}

	return SplitResult{
		Content:       truncated,
		CommentRanges: adjusted,
		EndLine:       ch.StartLine() + breakPoint - 1,
	}, true
}

// findBreakPoint walks lines accumulating code characters and returns the
// line count of the last natural boundary that still fits the budget.
func (s ChunkSplitter) findBreakPoint(content string, commentRanges []chunk.Range, targetChars int) int {
	lines := strings.Split(content, "\n")
	currentPos := 0
	codeChars := 0
	lastGoodBreak := 0

	for lineIdx, line := range lines {
		for charIdx, r := range []rune(line) {
			if unicode.IsSpace(r) {
				continue
			}
			if inAnyRange(currentPos+charIdx, commentRanges) {
				continue
			}
			codeChars++
		}

		if codeChars > targetChars {
			if lastGoodBreak < 1 {
				return 1
			}
			return lastGoodBreak
		}

		if isNaturalBoundary(line) {
			lastGoodBreak = lineIdx + 1
		}

		currentPos += len([]rune(line)) + 1
	}

	return len(lines)
}

// isNaturalBoundary reports whether a line can end a truncated chunk: blank,
// or closing a block, list, call, or statement.
func isNaturalBoundary(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" {
		return true
	}
	switch trimmed[len(trimmed)-1] {
	case '}', ']', ')', ';':
		return true
	}
	return false
}

func adjustRangesForTruncation(ranges []chunk.Range, newLength int) []chunk.Range {
	var adjusted []chunk.Range
	for _, r := range ranges {
		if r.Start >= newLength {
			continue
		}
		end := r.End
		if end > newLength {
			end = newLength
		}
		if end > r.Start {
			adjusted = append(adjusted, chunk.NewRange(r.Start, end))
		}
	}
	return adjusted
}

func truncateToLine(content string, breakPoint int) (string, bool) {
	lines := strings.Split(content, "\n")
	if breakPoint > len(lines) {
		return "", false
	}

	selected := strings.Join(lines[:breakPoint], "\n")
	if strings.TrimSpace(selected) == "" {
		return "", false
	}
	return strings.TrimRight(selected, " \t\n\r"), true
}

func countContentLines(content string) int {
	if content == "" {
		return 0
	}
	return strings.Count(content, "\n") + 1
}
