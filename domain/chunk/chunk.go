// Package chunk provides the code chunk domain types produced by AST extraction.
package chunk

// Range is a half-open [Start, End) interval over a text coordinate space.
// Until a chunk passes through the text processor the coordinates are
// character indices into the chunk content.
type Range struct {
	Start int
	End   int
}

// NewRange creates a Range.
func NewRange(start, end int) Range {
	return Range{Start: start, End: end}
}

// Contains reports whether pos falls inside the range.
func (r Range) Contains(pos int) bool {
	return pos >= r.Start && pos < r.End
}

// Valid reports whether the range is well formed within a text of the given length.
func (r Range) Valid(textLen int) bool {
	return r.Start >= 0 && r.Start < r.End && r.End <= textLen
}

// Type identifies the syntactic kind of an extracted chunk.
type Type string

// Chunk type values.
const (
	TypeFunction  Type = "function"
	TypeMethod    Type = "method"
	TypeClass     Type = "class"
	TypeStruct    Type = "struct"
	TypeEnum      Type = "enum"
	TypeInterface Type = "interface"
	TypeTrait     Type = "trait"
	TypeModule    Type = "module"
	TypeNamespace Type = "namespace"
	TypeTypeAlias Type = "type_alias"
	TypeVariable  Type = "variable"
	TypeConst     Type = "const"
	TypeFile      Type = "file"

	// Middle chunk types: constructs found inside large declaration chunks.
	TypeLoop          Type = "loop"
	TypeConditional   Type = "conditional"
	TypeFunctionCall  Type = "function_call"
	TypeLambda        Type = "lambda"
	TypeErrorHandling Type = "error_handling"
	TypeCodeBlock     Type = "code_block"
)

// Priority orders chunk types for deduplication: lower values win when two
// chunks cover the same line span.
func (t Type) Priority() int {
	switch t {
	case TypeFunction, TypeClass, TypeMethod:
		return 0
	case TypeCodeBlock:
		return 10
	case TypeFile:
		return 20
	default:
		return 5
	}
}

// CodeChunk is a syntactically meaningful source fragment found via AST
// traversal. Comment ranges are character offsets into Content, each starting
// at the language's comment marker.
type CodeChunk struct {
	content       string
	filePath      string
	commentRanges []Range
	chunkType     Type
	startLine     int
	endLine       int
	language      string
	name          string
	indentation   string
}

// NewCodeChunk creates a CodeChunk.
func NewCodeChunk(
	content, filePath string,
	commentRanges []Range,
	chunkType Type,
	startLine, endLine int,
	language, name, indentation string,
) CodeChunk {
	ranges := make([]Range, len(commentRanges))
	copy(ranges, commentRanges)

	return CodeChunk{
		content:       content,
		filePath:      filePath,
		commentRanges: ranges,
		chunkType:     chunkType,
		startLine:     startLine,
		endLine:       endLine,
		language:      language,
		name:          name,
		indentation:   indentation,
	}
}

// Content returns the chunk source text.
func (c CodeChunk) Content() string { return c.content }

// FilePath returns the path of the file this chunk came from, relative to the
// repository root.
func (c CodeChunk) FilePath() string { return c.filePath }

// CommentRanges returns the comment intervals over Content.
func (c CodeChunk) CommentRanges() []Range {
	ranges := make([]Range, len(c.commentRanges))
	copy(ranges, c.commentRanges)
	return ranges
}

// ChunkType returns the syntactic kind.
func (c CodeChunk) ChunkType() Type { return c.chunkType }

// StartLine returns the 1-based first line of the chunk in its file.
func (c CodeChunk) StartLine() int { return c.startLine }

// EndLine returns the 1-based last line (inclusive) of the chunk in its file.
func (c CodeChunk) EndLine() int { return c.endLine }

// Language returns the language name.
func (c CodeChunk) Language() string { return c.language }

// Name returns the declared name of the chunk, when one could be resolved.
func (c CodeChunk) Name() string { return c.name }

// Indentation returns the literal indentation string of the chunk's first
// line (spaces, tabs, or a mix) as it appears in the source file.
func (c CodeChunk) Indentation() string { return c.indentation }
