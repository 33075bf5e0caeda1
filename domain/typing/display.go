package typing

import (
	"unicode"

	"github.com/typedrill/typedrill/domain/chunk"
)

// ProcessingOptions controls how processed text is presented for typing.
// AddNewlineSymbols and HighlightSpecialChars are consumed by the renderer;
// the skip logic here depends only on the text and comment ranges.
type ProcessingOptions struct {
	PreserveEmptyLines    bool
	AddNewlineSymbols     bool
	HighlightSpecialChars bool
}

// DefaultProcessingOptions returns the options used by interactive sessions.
func DefaultProcessingOptions() ProcessingOptions {
	return ProcessingOptions{
		PreserveEmptyLines:    true,
		AddNewlineSymbols:     true,
		HighlightSpecialChars: true,
	}
}

// ShouldSkipCharacter reports whether the character at pos is presented but
// not typed. In order: characters inside a comment range are skipped,
// whitespace standing between code and a comment on the same line is skipped,
// the single newline terminating the whole text is skipped, and every other
// character, newlines included, is typable.
func ShouldSkipCharacter(text string, pos int, commentRanges []chunk.Range) bool {
	return shouldSkip([]rune(text), pos, commentRanges)
}

// IsAtEndOfLineContent reports whether everything from pos to the next
// newline is skippable, i.e. the typist has finished the line's content.
func IsAtEndOfLineContent(text string, pos int, commentRanges []chunk.Range) bool {
	runes := []rune(text)
	if pos < 0 || pos >= len(runes) {
		return false
	}
	if runes[pos] == '\n' {
		return true
	}

	for i := pos; i < len(runes); i++ {
		if runes[i] == '\n' {
			return true
		}
		if !shouldSkip(runes, i, commentRanges) {
			return false
		}
	}
	return true
}

// IsRestOfLineCommentOnly reports whether every character from pos to the
// next newline is whitespace or comment text.
func IsRestOfLineCommentOnly(text string, pos int, commentRanges []chunk.Range) bool {
	runes := []rune(text)
	if pos < 0 || pos >= len(runes) {
		return false
	}

	for i := pos; i < len(runes) && runes[i] != '\n'; i++ {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		if !inComment(i, commentRanges) {
			return false
		}
	}
	return true
}

func shouldSkip(runes []rune, pos int, commentRanges []chunk.Range) bool {
	if pos < 0 || pos >= len(runes) {
		return false
	}

	if inComment(pos, commentRanges) {
		return true
	}

	if runes[pos] == '\n' {
		// Only the newline terminating the whole text is skipped.
		return pos == len(runes)-1
	}

	return isWhitespaceBeforeComment(runes, pos, commentRanges)
}

func inComment(pos int, commentRanges []chunk.Range) bool {
	for _, r := range commentRanges {
		if r.Contains(pos) {
			return true
		}
	}
	return false
}

// isWhitespaceBeforeComment reports whether pos is whitespace whose next
// non-whitespace character on the same line starts a comment range.
func isWhitespaceBeforeComment(runes []rune, pos int, commentRanges []chunk.Range) bool {
	if !unicode.IsSpace(runes[pos]) || runes[pos] == '\n' {
		return false
	}

	for i := pos; i < len(runes) && runes[i] != '\n'; i++ {
		if unicode.IsSpace(runes[i]) {
			continue
		}
		for _, r := range commentRanges {
			if r.Start == i {
				return true
			}
		}
		return false
	}
	return false
}
