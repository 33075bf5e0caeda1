package slicing

import (
	"context"
	"sort"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"

	"github.com/typedrill/typedrill/domain/chunk"
)

// minChunkBytes is the smallest chunk worth typing. Anything shorter is
// dropped before it reaches difficulty conversion.
const minChunkBytes = 10

// Size gates for middle chunk extraction. A declaration chunk is re-parsed
// for nested constructs only when it spans at least minParentChunkLines;
// each nested construct is kept only within the byte and line bounds below.
const (
	minParentChunkLines = 3
	minMiddleBytes      = 30
	maxMiddleBytes      = 2000
	minMiddleLines      = 2
)

// Extractor converts a parsed AST into code chunks with chunk-local comment
// ranges expressed in character positions.
type Extractor struct {
	walker Walker
}

// NewExtractor creates an Extractor.
func NewExtractor() Extractor {
	return Extractor{walker: NewWalker()}
}

// ExtractChunks walks the tree and returns all chunks found in the file:
// one chunk per declaration node the language maps, middle chunks for the
// loops, conditionals and blocks nested inside large declarations, plus a
// whole-file chunk. The result is sorted by position and deduplicated so
// that two chunks never share the same line span.
func (e Extractor) ExtractChunks(
	ctx context.Context,
	root *sitter.Node,
	source string,
	relPath string,
	lang Language,
) []chunk.CodeChunk {
	byteToChar := buildByteToCharCache(source)
	lineStarts := buildLineStartCache(source)

	fileComments := e.ExtractCommentRanges(root, source, lang, byteToChar)

	var chunks []chunk.CodeChunk
	for _, node := range e.walker.CollectChunkNodes(root, lang) {
		chunkType, ok := lang.ChunkType(node.Type())
		if !ok {
			continue
		}
		c, ok := e.nodeToChunk(node, source, relPath, lang, chunkType, fileComments, byteToChar, lineStarts)
		if !ok {
			continue
		}
		chunks = append(chunks, c)
	}

	for _, parent := range chunks {
		if countLines(parent.Content()) < minParentChunkLines {
			continue
		}
		chunks = append(chunks, e.extractMiddleChunks(ctx, parent, source, lang, lineStarts)...)
	}

	// The whole-file chunk carries the raw source and file-level comment
	// ranges. It is the only chunk eligible for zen difficulty.
	chunks = append(chunks, chunk.NewCodeChunk(
		source,
		relPath,
		fileComments,
		chunk.TypeFile,
		1,
		countLines(source),
		lang.Name(),
		"entire_file",
		"",
	))

	sortChunks(chunks)
	return dedupeChunks(chunks)
}

// ExtractCommentRanges returns the character intervals of every comment in
// the source, sorted by start position. Intervals are validated against the
// language's comment markers so stray grammar nodes cannot leak in.
func (e Extractor) ExtractCommentRanges(
	root *sitter.Node,
	source string,
	lang Language,
	byteToChar []int,
) []chunk.Range {
	var ranges []chunk.Range
	for _, node := range e.walker.CollectCommentNodes(root, lang) {
		text := e.walker.NodeText(node, []byte(source))
		if !hasCommentMarker(text, lang.CommentMarkers()) {
			continue
		}

		start := byteToCharCached(byteToChar, int(node.StartByte()))
		end := byteToCharCached(byteToChar, int(node.EndByte()))
		if start < end {
			ranges = append(ranges, chunk.NewRange(start, end))
		}
	}

	sort.Slice(ranges, func(i, j int) bool { return ranges[i].Start < ranges[j].Start })
	return ranges
}

func (e Extractor) nodeToChunk(
	node *sitter.Node,
	source string,
	relPath string,
	lang Language,
	chunkType chunk.Type,
	fileComments []chunk.Range,
	byteToChar []int,
	lineStarts []int,
) (chunk.CodeChunk, bool) {
	startByte := int(node.StartByte())
	endByte := int(node.EndByte())
	if startByte >= endByte || endByte > len(source) {
		return chunk.CodeChunk{}, false
	}

	content := source[startByte:endByte]
	if len(content) < minChunkBytes || strings.TrimSpace(content) == "" {
		return chunk.CodeChunk{}, false
	}

	startChar := byteToCharCached(byteToChar, startByte)
	endChar := byteToCharCached(byteToChar, endByte)

	startLine := int(node.StartPoint().Row) + 1
	endLine := int(node.EndPoint().Row) + 1

	// Tree-sitter strips the leading indentation of the declaration's first
	// line. Restore the literal indentation characters so the typing surface
	// matches the file.
	indent := ""
	if col := int(node.StartPoint().Column); col > 0 {
		indent = lineIndent(source, int(node.StartPoint().Row), col, lineStarts)
	}
	normalized := indent + content

	indentChars := len([]rune(indent))
	var commentRanges []chunk.Range
	for _, r := range fileComments {
		if r.Start < startChar || r.End > endChar {
			continue
		}
		commentRanges = append(commentRanges, chunk.NewRange(
			r.Start-startChar+indentChars,
			r.End-startChar+indentChars,
		))
	}

	name := e.walker.NodeName(node, []byte(source))
	if name == "" {
		name = string(chunkType)
	}

	return chunk.NewCodeChunk(
		normalized,
		relPath,
		commentRanges,
		chunkType,
		startLine,
		endLine,
		lang.Name(),
		name,
		indent,
	), true
}

// extractMiddleChunks re-parses the content of a large declaration chunk and
// returns a chunk for every nested construct the language maps: loops,
// conditionals, lambdas, calls, bare blocks. Positions are chunk-local after
// the re-parse; line numbers are shifted back to file coordinates and comment
// ranges are re-extracted from the chunk tree.
func (e Extractor) extractMiddleChunks(
	ctx context.Context,
	parent chunk.CodeChunk,
	source string,
	lang Language,
	fileLineStarts []int,
) []chunk.CodeChunk {
	content := parent.Content()

	parser := sitter.NewParser()
	parser.SetLanguage(lang.SitterLanguage())

	tree, err := parser.ParseCtx(ctx, nil, []byte(content))
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	byteToChar := buildByteToCharCache(content)
	localComments := e.ExtractCommentRanges(tree.RootNode(), content, lang, byteToChar)

	var middles []chunk.CodeChunk
	for _, node := range e.walker.CollectMiddleNodes(tree.RootNode(), lang) {
		chunkType, ok := lang.MiddleChunkType(node.Type())
		if !ok {
			continue
		}

		startByte := int(node.StartByte())
		endByte := int(node.EndByte())
		if startByte >= endByte || endByte > len(content) {
			continue
		}

		text := content[startByte:endByte]
		if len(text) < minMiddleBytes || len(text) > maxMiddleBytes || countLines(text) < minMiddleLines {
			continue
		}

		// Challenges are rebuilt from whole file lines on cache load, so a
		// construct followed by code on its closing line cannot round-trip.
		tail := content[endByte:]
		if i := strings.IndexByte(tail, '\n'); i >= 0 {
			tail = tail[:i]
		}
		if strings.TrimSpace(tail) != "" {
			continue
		}

		startChar := byteToCharCached(byteToChar, startByte)
		endChar := byteToCharCached(byteToChar, endByte)

		// Rows are relative to the parent chunk; the parent's first line
		// anchors them back to file coordinates.
		startLine := parent.StartLine() + int(node.StartPoint().Row)
		endLine := parent.StartLine() + int(node.EndPoint().Row)

		indent := ""
		if col := int(node.StartPoint().Column); col > 0 {
			indent = lineIndent(source, startLine-1, col, fileLineStarts)
		}
		normalized := indent + text

		indentChars := len([]rune(indent))
		var commentRanges []chunk.Range
		for _, r := range localComments {
			if r.Start < startChar || r.End > endChar {
				continue
			}
			commentRanges = append(commentRanges, chunk.NewRange(
				r.Start-startChar+indentChars,
				r.End-startChar+indentChars,
			))
		}

		middles = append(middles, chunk.NewCodeChunk(
			normalized,
			parent.FilePath(),
			commentRanges,
			chunkType,
			startLine,
			endLine,
			lang.Name(),
			string(chunkType),
			indent,
		))
	}
	return middles
}

// sortChunks orders by (startLine, endLine), breaking ties with type
// priority so declaration chunks win over generic ones at the same span.
func sortChunks(chunks []chunk.CodeChunk) {
	sort.SliceStable(chunks, func(i, j int) bool {
		a, b := chunks[i], chunks[j]
		if a.StartLine() != b.StartLine() {
			return a.StartLine() < b.StartLine()
		}
		if a.EndLine() != b.EndLine() {
			return a.EndLine() < b.EndLine()
		}
		return a.ChunkType().Priority() < b.ChunkType().Priority()
	})
}

// dedupeChunks removes adjacent chunks covering the same line span. File
// chunks are never removed; a one-declaration file legitimately produces a
// declaration chunk and a file chunk over identical lines.
func dedupeChunks(chunks []chunk.CodeChunk) []chunk.CodeChunk {
	if len(chunks) < 2 {
		return chunks
	}

	result := chunks[:1]
	for _, c := range chunks[1:] {
		prev := result[len(result)-1]
		sameSpan := c.StartLine() == prev.StartLine() && c.EndLine() == prev.EndLine()
		if sameSpan && c.ChunkType() != chunk.TypeFile && prev.ChunkType() != chunk.TypeFile {
			continue
		}
		result = append(result, c)
	}
	return result
}

// buildByteToCharCache maps every byte offset of source to the number of
// characters preceding it. Length is len(source)+1 so end offsets resolve.
// Continuation bytes of a multi-byte rune map to the rune's start. The
// decoded width is used for advancing rather than utf8.RuneLen of the rune,
// since an invalid byte decodes to U+FFFD but occupies a single byte.
func buildByteToCharCache(source string) []int {
	cache := make([]int, len(source)+1)
	charCount := 0
	for i := 0; i < len(source); {
		_, width := utf8.DecodeRuneInString(source[i:])
		for b := 0; b < width; b++ {
			cache[i+b] = charCount
		}
		charCount++
		i += width
	}
	cache[len(source)] = charCount
	return cache
}

// buildLineStartCache returns the byte offset of each line start.
func buildLineStartCache(source string) []int {
	starts := []int{0}
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return starts
}

// lineIndent returns up to indentBytes bytes from the start of the 0-based
// line row. The grammar reports the declaration column in bytes; the slice
// is the literal whitespace preceding it.
func lineIndent(source string, row, indentBytes int, lineStarts []int) string {
	if row >= len(lineStarts) {
		return ""
	}

	lineStart := lineStarts[row]
	lineEnd := len(source)
	if row+1 < len(lineStarts) {
		lineEnd = lineStarts[row+1] - 1
	}
	if lineStart >= lineEnd {
		return ""
	}

	end := lineStart + indentBytes
	if end > lineEnd {
		end = lineEnd
	}
	return source[lineStart:end]
}

func byteToCharCached(cache []int, bytePos int) int {
	if bytePos >= len(cache) {
		if len(cache) == 0 {
			return 0
		}
		return cache[len(cache)-1]
	}
	return cache[bytePos]
}

func hasCommentMarker(text string, markers []string) bool {
	for _, m := range markers {
		if strings.HasPrefix(text, m) {
			return true
		}
	}
	return false
}

func countLines(source string) int {
	if source == "" {
		return 0
	}
	n := strings.Count(source, "\n")
	if !strings.HasSuffix(source, "\n") {
		n++
	}
	return n
}
