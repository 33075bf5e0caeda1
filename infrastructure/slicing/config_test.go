package slicing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrill/typedrill/domain/chunk"
)

func TestLanguageConfig_ByName(t *testing.T) {
	cfg := NewLanguageConfig()

	lang, ok := cfg.ByName("go")
	require.True(t, ok)
	assert.Equal(t, "go", lang.Name())
	assert.Equal(t, []string{".go"}, lang.Extensions())
	assert.NotNil(t, lang.SitterLanguage())

	_, ok = cfg.ByName("cobol")
	assert.False(t, ok)
}

func TestLanguageConfig_ByExtension(t *testing.T) {
	cfg := NewLanguageConfig()

	tests := []struct {
		ext  string
		lang string
	}{
		{".go", "go"},
		{".py", "python"},
		{".rs", "rust"},
		{".java", "java"},
		{".ts", "typescript"},
		{".tsx", "tsx"},
		{".rb", "ruby"},
		{".kt", "kotlin"},
		{".sh", "bash"},
	}
	for _, tt := range tests {
		lang, ok := cfg.ByExtension(tt.ext)
		require.True(t, ok, "extension %s", tt.ext)
		assert.Equal(t, tt.lang, lang.Name())
	}

	_, ok := cfg.ByExtension(".txt")
	assert.False(t, ok)
}

func TestLanguageConfig_SupportedListsAreSorted(t *testing.T) {
	cfg := NewLanguageConfig()

	langs := cfg.SupportedLanguages()
	assert.Contains(t, langs, "go")
	assert.Contains(t, langs, "python")
	assert.IsIncreasing(t, langs)

	exts := cfg.SupportedExtensions()
	assert.Contains(t, exts, ".go")
	assert.IsIncreasing(t, exts)
}

func TestLanguage_ChunkTypeMapping(t *testing.T) {
	cfg := NewLanguageConfig()
	lang, ok := cfg.ByName("go")
	require.True(t, ok)

	typ, ok := lang.ChunkType("function_declaration")
	require.True(t, ok)
	assert.Equal(t, chunk.TypeFunction, typ)

	typ, ok = lang.ChunkType("method_declaration")
	require.True(t, ok)
	assert.Equal(t, chunk.TypeMethod, typ)

	_, ok = lang.ChunkType("import_declaration")
	assert.False(t, ok)
}

func TestLanguage_MiddleChunkTypeMapping(t *testing.T) {
	cfg := NewLanguageConfig()

	tests := []struct {
		lang     string
		nodeKind string
		typ      chunk.Type
	}{
		{"go", "for_statement", chunk.TypeLoop},
		{"go", "type_switch_statement", chunk.TypeConditional},
		{"go", "func_literal", chunk.TypeLambda},
		{"go", "block", chunk.TypeCodeBlock},
		{"java", "try_statement", chunk.TypeErrorHandling},
		{"java", "method_invocation", chunk.TypeFunctionCall},
		{"rust", "match_expression", chunk.TypeConditional},
		{"python", "with_statement", chunk.TypeCodeBlock},
		{"typescript", "arrow_function", chunk.TypeLambda},
		{"ruby", "rescue", chunk.TypeErrorHandling},
	}
	for _, tt := range tests {
		lang, ok := cfg.ByName(tt.lang)
		require.True(t, ok, "language %s", tt.lang)

		typ, ok := lang.MiddleChunkType(tt.nodeKind)
		require.True(t, ok, "%s node %s", tt.lang, tt.nodeKind)
		assert.Equal(t, tt.typ, typ)
	}

	goLang, _ := cfg.ByName("go")
	_, ok := goLang.MiddleChunkType("function_declaration")
	assert.False(t, ok)
}

func TestLanguage_CommentNodes(t *testing.T) {
	cfg := NewLanguageConfig()
	lang, ok := cfg.ByName("go")
	require.True(t, ok)

	assert.True(t, lang.IsCommentNode("comment"))
	assert.False(t, lang.IsCommentNode("identifier"))
	assert.Equal(t, []string{"//", "/*"}, lang.CommentMarkers())
}
