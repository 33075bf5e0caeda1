// Package typing provides the text normalizer and the character skip logic
// used to present challenge text for typing practice.
//
// All positions in this package are character (rune) indices, never bytes.
package typing

import (
	"strings"
	"unicode"

	"github.com/typedrill/typedrill/domain/chunk"
)

// Process normalizes challenge text for typing: every line is right-trimmed,
// and blank lines are dropped entirely unless preserveEmptyLines is set.
// Comment ranges over the input are remapped into the processed coordinate
// space; ranges that fall entirely inside removed text are discarded.
//
// This is the single place where coordinates translate from original-text
// space into processed-text space.
func Process(text string, commentRanges []chunk.Range, preserveEmptyLines bool) (string, []chunk.Range) {
	runes := []rune(text)
	mapping := buildPositionMapping(runes, preserveEmptyLines)

	var processed strings.Builder
	processed.Grow(len(runes))
	for i, mapped := range mapping {
		if mapped >= 0 {
			processed.WriteRune(runes[i])
		}
	}

	return processed.String(), remapRanges(commentRanges, mapping)
}

// buildPositionMapping returns, for every original rune index, its index in
// the processed text, or -1 when the rune is dropped.
func buildPositionMapping(runes []rune, preserveEmptyLines bool) []int {
	mapping := make([]int, len(runes))
	for i := range mapping {
		mapping[i] = -1
	}

	type line struct {
		start   int // first rune of the line
		end     int // one past the last rune, excluding the newline
		trimEnd int // one past the last rune after right-trimming
		kept    bool
	}

	var lines []line
	start := 0
	for i := 0; i <= len(runes); i++ {
		if i < len(runes) && runes[i] != '\n' {
			continue
		}
		if i == len(runes) && start == i {
			break // no trailing content after the final newline
		}

		trimEnd := i
		for trimEnd > start && unicode.IsSpace(runes[trimEnd-1]) {
			trimEnd--
		}
		blank := trimEnd == start
		lines = append(lines, line{
			start:   start,
			end:     i,
			trimEnd: trimEnd,
			kept:    preserveEmptyLines || !blank,
		})
		start = i + 1
	}

	lastKept := -1
	for i, l := range lines {
		if l.kept {
			lastKept = i
		}
	}

	processedPos := 0
	for i, l := range lines {
		if !l.kept {
			continue
		}
		for pos := l.start; pos < l.trimEnd; pos++ {
			mapping[pos] = processedPos
			processedPos++
		}
		// Trimmed trailing whitespace stays at -1. The line's newline is kept
		// only when a later line survives; a trailing newline would otherwise
		// dangle past the processed text.
		if l.end < len(runes) && i < lastKept {
			mapping[l.end] = processedPos
			processedPos++
		}
	}

	return mapping
}

// remapRanges translates ranges through the position mapping. The mapped end
// is one past the processed position of the nearest kept character before the
// original end; a range whose start was dropped is discarded whole.
func remapRanges(ranges []chunk.Range, mapping []int) []chunk.Range {
	remapped := make([]chunk.Range, 0, len(ranges))
	for _, r := range ranges {
		if r.Start < 0 || r.Start >= len(mapping) || r.End > len(mapping) {
			continue
		}
		mappedStart := mapping[r.Start]
		if mappedStart < 0 {
			continue
		}

		mappedEnd := -1
		for i := r.End - 1; i >= 0; i-- {
			if mapping[i] >= 0 {
				mappedEnd = mapping[i] + 1
				break
			}
		}

		if mappedEnd > mappedStart {
			remapped = append(remapped, chunk.NewRange(mappedStart, mappedEnd))
		}
	}
	return remapped
}

// LineStarts returns the character index of the first character of each line.
func LineStarts(text string) []int {
	starts := []int{0}
	runes := []rune(text)
	for i, r := range runes {
		if r == '\n' && i+1 < len(runes) {
			starts = append(starts, i+1)
		}
	}
	return starts
}
