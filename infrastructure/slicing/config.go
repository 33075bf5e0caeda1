// Package slicing extracts typing-practice code chunks from source files
// using tree-sitter AST parsing.
package slicing

import (
	"sort"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/bash"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/cpp"
	"github.com/smacker/go-tree-sitter/csharp"
	"github.com/smacker/go-tree-sitter/golang"
	"github.com/smacker/go-tree-sitter/java"
	"github.com/smacker/go-tree-sitter/javascript"
	"github.com/smacker/go-tree-sitter/kotlin"
	"github.com/smacker/go-tree-sitter/php"
	"github.com/smacker/go-tree-sitter/python"
	"github.com/smacker/go-tree-sitter/ruby"
	"github.com/smacker/go-tree-sitter/rust"
	"github.com/smacker/go-tree-sitter/scala"
	"github.com/smacker/go-tree-sitter/swift"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/typedrill/typedrill/domain/chunk"
)

// Language holds a registered grammar: the tree-sitter language, which node
// kinds yield chunks of which type, which node kinds yield middle chunks
// inside large declarations, which node kinds are comments, and the comment
// markers comment text must start with.
type Language struct {
	name           string
	extensions     []string
	language       *sitter.Language
	chunkNodes     map[string]chunk.Type
	middleNodes    map[string]chunk.Type
	commentNodes   map[string]struct{}
	commentMarkers []string
}

// NewLanguage creates a Language configuration.
func NewLanguage(
	name string,
	extensions []string,
	lang *sitter.Language,
	chunkNodes map[string]chunk.Type,
	middleNodes map[string]chunk.Type,
	commentNodes []string,
	commentMarkers []string,
) Language {
	comments := make(map[string]struct{}, len(commentNodes))
	for _, n := range commentNodes {
		comments[n] = struct{}{}
	}

	return Language{
		name:           name,
		extensions:     extensions,
		language:       lang,
		chunkNodes:     chunkNodes,
		middleNodes:    middleNodes,
		commentNodes:   comments,
		commentMarkers: commentMarkers,
	}
}

// Name returns the language name.
func (l Language) Name() string { return l.name }

// Extensions returns the file extensions handled by the language.
func (l Language) Extensions() []string {
	exts := make([]string, len(l.extensions))
	copy(exts, l.extensions)
	return exts
}

// SitterLanguage returns the tree-sitter grammar.
func (l Language) SitterLanguage() *sitter.Language { return l.language }

// ChunkType resolves a node kind to a chunk type.
func (l Language) ChunkType(nodeKind string) (chunk.Type, bool) {
	t, ok := l.chunkNodes[nodeKind]
	return t, ok
}

// MiddleChunkType resolves a node kind to a middle chunk type. Middle chunks
// are the loops, conditionals, lambdas, calls and bare blocks extracted from
// inside large declaration chunks.
func (l Language) MiddleChunkType(nodeKind string) (chunk.Type, bool) {
	t, ok := l.middleNodes[nodeKind]
	return t, ok
}

// IsCommentNode reports whether the node kind is a comment.
func (l Language) IsCommentNode(nodeKind string) bool {
	_, ok := l.commentNodes[nodeKind]
	return ok
}

// CommentMarkers returns the markers a comment token may start with.
func (l Language) CommentMarkers() []string {
	markers := make([]string, len(l.commentMarkers))
	copy(markers, l.commentMarkers)
	return markers
}

// LanguageConfig is the grammar registry. It is constructed once and passed
// into the extractor explicitly; there is no process-wide registry state.
type LanguageConfig struct {
	languages map[string]Language
	byExt     map[string]Language
}

// NewLanguageConfig creates a LanguageConfig with all supported languages.
func NewLanguageConfig() LanguageConfig {
	languages := make(map[string]Language)
	byExt := make(map[string]Language)

	configs := []Language{
		goConfig(),
		pythonConfig(),
		rustConfig(),
		javaConfig(),
		cConfig(),
		cppConfig(),
		javascriptConfig(),
		typescriptConfig(),
		tsxConfig(),
		csharpConfig(),
		rubyConfig(),
		kotlinConfig(),
		phpConfig(),
		swiftConfig(),
		scalaConfig(),
		bashConfig(),
	}

	for _, cfg := range configs {
		languages[cfg.name] = cfg
		for _, ext := range cfg.extensions {
			byExt[ext] = cfg
		}
	}

	return LanguageConfig{
		languages: languages,
		byExt:     byExt,
	}
}

// ByName returns the language configuration by name.
func (c LanguageConfig) ByName(name string) (Language, bool) {
	lang, ok := c.languages[name]
	return lang, ok
}

// ByExtension returns the language configuration by file extension.
func (c LanguageConfig) ByExtension(ext string) (Language, bool) {
	lang, ok := c.byExt[ext]
	return lang, ok
}

// SupportedExtensions returns all registered file extensions, sorted.
func (c LanguageConfig) SupportedExtensions() []string {
	extensions := make([]string, 0, len(c.byExt))
	for ext := range c.byExt {
		extensions = append(extensions, ext)
	}
	sort.Strings(extensions)
	return extensions
}

// SupportedLanguages returns all registered language names, sorted.
func (c LanguageConfig) SupportedLanguages() []string {
	names := make([]string, 0, len(c.languages))
	for name := range c.languages {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func goConfig() Language {
	return NewLanguage(
		"go",
		[]string{".go"},
		golang.GetLanguage(),
		map[string]chunk.Type{
			"function_declaration": chunk.TypeFunction,
			"method_declaration":   chunk.TypeMethod,
			"type_declaration":     chunk.TypeTypeAlias,
			"const_declaration":    chunk.TypeConst,
		},
		map[string]chunk.Type{
			"for_statement":               chunk.TypeLoop,
			"if_statement":                chunk.TypeConditional,
			"expression_switch_statement": chunk.TypeConditional,
			"type_switch_statement":       chunk.TypeConditional,
			"select_statement":            chunk.TypeConditional,
			"func_literal":                chunk.TypeLambda,
			"call_expression":             chunk.TypeFunctionCall,
			"block":                       chunk.TypeCodeBlock,
		},
		[]string{"comment"},
		[]string{"//", "/*"},
	)
}

func pythonConfig() Language {
	return NewLanguage(
		"python",
		[]string{".py"},
		python.GetLanguage(),
		map[string]chunk.Type{
			"function_definition": chunk.TypeFunction,
			"class_definition":    chunk.TypeClass,
		},
		map[string]chunk.Type{
			"for_statement":   chunk.TypeLoop,
			"while_statement": chunk.TypeLoop,
			"if_statement":    chunk.TypeConditional,
			"try_statement":   chunk.TypeErrorHandling,
			"with_statement":  chunk.TypeCodeBlock,
			"lambda":          chunk.TypeLambda,
			"call":            chunk.TypeFunctionCall,
		},
		[]string{"comment"},
		[]string{"#"},
	)
}

func rustConfig() Language {
	return NewLanguage(
		"rust",
		[]string{".rs"},
		rust.GetLanguage(),
		map[string]chunk.Type{
			"function_item": chunk.TypeFunction,
			"struct_item":   chunk.TypeStruct,
			"enum_item":     chunk.TypeEnum,
			"trait_item":    chunk.TypeTrait,
			"impl_item":     chunk.TypeCodeBlock,
			"mod_item":      chunk.TypeModule,
			"type_item":     chunk.TypeTypeAlias,
		},
		map[string]chunk.Type{
			"for_expression":     chunk.TypeLoop,
			"while_expression":   chunk.TypeLoop,
			"loop_expression":    chunk.TypeLoop,
			"if_expression":      chunk.TypeConditional,
			"match_expression":   chunk.TypeConditional,
			"closure_expression": chunk.TypeLambda,
			"call_expression":    chunk.TypeFunctionCall,
			"macro_invocation":   chunk.TypeFunctionCall,
			"block":              chunk.TypeCodeBlock,
		},
		[]string{"line_comment", "block_comment"},
		[]string{"//", "/*"},
	)
}

func javaConfig() Language {
	return NewLanguage(
		"java",
		[]string{".java"},
		java.GetLanguage(),
		map[string]chunk.Type{
			"method_declaration":      chunk.TypeMethod,
			"constructor_declaration": chunk.TypeMethod,
			"class_declaration":       chunk.TypeClass,
			"interface_declaration":   chunk.TypeInterface,
			"enum_declaration":        chunk.TypeEnum,
		},
		map[string]chunk.Type{
			"for_statement":          chunk.TypeLoop,
			"enhanced_for_statement": chunk.TypeLoop,
			"while_statement":        chunk.TypeLoop,
			"if_statement":           chunk.TypeConditional,
			"switch_expression":      chunk.TypeConditional,
			"try_statement":          chunk.TypeErrorHandling,
			"method_invocation":      chunk.TypeFunctionCall,
			"lambda_expression":      chunk.TypeLambda,
			"block":                  chunk.TypeCodeBlock,
		},
		[]string{"line_comment", "block_comment"},
		[]string{"//", "/*"},
	)
}

func cConfig() Language {
	return NewLanguage(
		"c",
		[]string{".c", ".h"},
		c.GetLanguage(),
		map[string]chunk.Type{
			"function_definition": chunk.TypeFunction,
			"struct_specifier":    chunk.TypeStruct,
			"enum_specifier":      chunk.TypeEnum,
			"type_definition":     chunk.TypeTypeAlias,
		},
		map[string]chunk.Type{
			"for_statement":      chunk.TypeLoop,
			"while_statement":    chunk.TypeLoop,
			"if_statement":       chunk.TypeConditional,
			"switch_statement":   chunk.TypeConditional,
			"call_expression":    chunk.TypeFunctionCall,
			"compound_statement": chunk.TypeCodeBlock,
		},
		[]string{"comment"},
		[]string{"//", "/*"},
	)
}

func cppConfig() Language {
	return NewLanguage(
		"cpp",
		[]string{".cpp", ".cc", ".cxx", ".hpp"},
		cpp.GetLanguage(),
		map[string]chunk.Type{
			"function_definition":  chunk.TypeFunction,
			"class_specifier":      chunk.TypeClass,
			"struct_specifier":     chunk.TypeStruct,
			"enum_specifier":       chunk.TypeEnum,
			"namespace_definition": chunk.TypeNamespace,
			"type_definition":      chunk.TypeTypeAlias,
		},
		map[string]chunk.Type{
			"for_statement":      chunk.TypeLoop,
			"while_statement":    chunk.TypeLoop,
			"if_statement":       chunk.TypeConditional,
			"switch_statement":   chunk.TypeConditional,
			"lambda_expression":  chunk.TypeLambda,
			"call_expression":    chunk.TypeFunctionCall,
			"compound_statement": chunk.TypeCodeBlock,
		},
		[]string{"comment"},
		[]string{"//", "/*"},
	)
}

func javascriptConfig() Language {
	return NewLanguage(
		"javascript",
		[]string{".js", ".jsx", ".mjs"},
		javascript.GetLanguage(),
		map[string]chunk.Type{
			"function_declaration": chunk.TypeFunction,
			"method_definition":    chunk.TypeMethod,
			"class_declaration":    chunk.TypeClass,
		},
		javascriptMiddleNodes(),
		[]string{"comment"},
		[]string{"//", "/*"},
	)
}

func typescriptConfig() Language {
	return NewLanguage(
		"typescript",
		[]string{".ts"},
		typescript.GetLanguage(),
		typescriptChunkNodes(),
		javascriptMiddleNodes(),
		[]string{"comment"},
		[]string{"//", "/*"},
	)
}

func tsxConfig() Language {
	return NewLanguage(
		"tsx",
		[]string{".tsx"},
		tsx.GetLanguage(),
		typescriptChunkNodes(),
		javascriptMiddleNodes(),
		[]string{"comment"},
		[]string{"//", "/*"},
	)
}

// typescriptChunkNodes is shared by the typescript and tsx grammars, which
// use identical node kinds for declarations.
func typescriptChunkNodes() map[string]chunk.Type {
	return map[string]chunk.Type{
		"function_declaration":   chunk.TypeFunction,
		"method_definition":      chunk.TypeMethod,
		"class_declaration":      chunk.TypeClass,
		"interface_declaration":  chunk.TypeInterface,
		"type_alias_declaration": chunk.TypeTypeAlias,
		"enum_declaration":       chunk.TypeEnum,
	}
}

// javascriptMiddleNodes is shared by the javascript, typescript and tsx
// grammars, which use identical node kinds for statements and expressions.
func javascriptMiddleNodes() map[string]chunk.Type {
	return map[string]chunk.Type{
		"for_statement":       chunk.TypeLoop,
		"for_in_statement":    chunk.TypeLoop,
		"while_statement":     chunk.TypeLoop,
		"do_statement":        chunk.TypeLoop,
		"if_statement":        chunk.TypeConditional,
		"switch_statement":    chunk.TypeConditional,
		"try_statement":       chunk.TypeErrorHandling,
		"arrow_function":      chunk.TypeLambda,
		"function_expression": chunk.TypeLambda,
		"call_expression":     chunk.TypeFunctionCall,
		"statement_block":     chunk.TypeCodeBlock,
	}
}

func csharpConfig() Language {
	return NewLanguage(
		"csharp",
		[]string{".cs"},
		csharp.GetLanguage(),
		map[string]chunk.Type{
			"method_declaration":      chunk.TypeMethod,
			"constructor_declaration": chunk.TypeMethod,
			"class_declaration":       chunk.TypeClass,
			"struct_declaration":      chunk.TypeStruct,
			"interface_declaration":   chunk.TypeInterface,
			"enum_declaration":        chunk.TypeEnum,
			"namespace_declaration":   chunk.TypeNamespace,
		},
		map[string]chunk.Type{
			"for_statement":         chunk.TypeLoop,
			"foreach_statement":     chunk.TypeLoop,
			"while_statement":       chunk.TypeLoop,
			"if_statement":          chunk.TypeConditional,
			"switch_statement":      chunk.TypeConditional,
			"try_statement":         chunk.TypeErrorHandling,
			"invocation_expression": chunk.TypeFunctionCall,
			"lambda_expression":     chunk.TypeLambda,
			"block":                 chunk.TypeCodeBlock,
		},
		[]string{"comment"},
		[]string{"//", "/*"},
	)
}

func rubyConfig() Language {
	return NewLanguage(
		"ruby",
		[]string{".rb"},
		ruby.GetLanguage(),
		map[string]chunk.Type{
			"method":           chunk.TypeMethod,
			"singleton_method": chunk.TypeMethod,
			"class":            chunk.TypeClass,
			"module":           chunk.TypeModule,
		},
		map[string]chunk.Type{
			"for":    chunk.TypeLoop,
			"while":  chunk.TypeLoop,
			"until":  chunk.TypeLoop,
			"if":     chunk.TypeConditional,
			"unless": chunk.TypeConditional,
			"case":   chunk.TypeConditional,
			"begin":  chunk.TypeErrorHandling,
			"rescue": chunk.TypeErrorHandling,
			"call":   chunk.TypeFunctionCall,
			"lambda": chunk.TypeLambda,
			"block":  chunk.TypeCodeBlock,
		},
		[]string{"comment"},
		[]string{"#", "=begin"},
	)
}

func kotlinConfig() Language {
	return NewLanguage(
		"kotlin",
		[]string{".kt", ".kts"},
		kotlin.GetLanguage(),
		map[string]chunk.Type{
			"function_declaration": chunk.TypeFunction,
			"class_declaration":    chunk.TypeClass,
			"object_declaration":   chunk.TypeClass,
		},
		map[string]chunk.Type{
			"for_statement":   chunk.TypeLoop,
			"while_statement": chunk.TypeLoop,
			"if_expression":   chunk.TypeConditional,
			"when_expression": chunk.TypeConditional,
			"try_expression":  chunk.TypeErrorHandling,
			"call_expression": chunk.TypeFunctionCall,
			"lambda_literal":  chunk.TypeLambda,
		},
		[]string{"line_comment", "multiline_comment"},
		[]string{"//", "/*"},
	)
}

func phpConfig() Language {
	return NewLanguage(
		"php",
		[]string{".php"},
		php.GetLanguage(),
		map[string]chunk.Type{
			"function_definition":   chunk.TypeFunction,
			"method_declaration":    chunk.TypeMethod,
			"class_declaration":     chunk.TypeClass,
			"interface_declaration": chunk.TypeInterface,
			"trait_declaration":     chunk.TypeTrait,
			"namespace_definition":  chunk.TypeNamespace,
		},
		map[string]chunk.Type{
			"for_statement":                          chunk.TypeLoop,
			"foreach_statement":                      chunk.TypeLoop,
			"while_statement":                        chunk.TypeLoop,
			"if_statement":                           chunk.TypeConditional,
			"switch_statement":                       chunk.TypeConditional,
			"try_statement":                          chunk.TypeErrorHandling,
			"function_call_expression":               chunk.TypeFunctionCall,
			"anonymous_function_creation_expression": chunk.TypeLambda,
			"compound_statement":                     chunk.TypeCodeBlock,
		},
		[]string{"comment"},
		[]string{"//", "#", "/*"},
	)
}

func swiftConfig() Language {
	return NewLanguage(
		"swift",
		[]string{".swift"},
		swift.GetLanguage(),
		map[string]chunk.Type{
			"function_declaration": chunk.TypeFunction,
			"class_declaration":    chunk.TypeClass,
			"protocol_declaration": chunk.TypeInterface,
		},
		map[string]chunk.Type{
			"for_statement":          chunk.TypeLoop,
			"while_statement":        chunk.TypeLoop,
			"repeat_while_statement": chunk.TypeLoop,
			"if_statement":           chunk.TypeConditional,
			"switch_statement":       chunk.TypeConditional,
			"do_statement":           chunk.TypeErrorHandling,
			"call_expression":        chunk.TypeFunctionCall,
			"lambda_literal":         chunk.TypeLambda,
		},
		[]string{"comment", "multiline_comment"},
		[]string{"//", "/*"},
	)
}

func scalaConfig() Language {
	return NewLanguage(
		"scala",
		[]string{".scala", ".sc"},
		scala.GetLanguage(),
		map[string]chunk.Type{
			"function_definition": chunk.TypeFunction,
			"class_definition":    chunk.TypeClass,
			"object_definition":   chunk.TypeClass,
			"trait_definition":    chunk.TypeTrait,
		},
		map[string]chunk.Type{
			"for_expression":    chunk.TypeLoop,
			"while_expression":  chunk.TypeLoop,
			"if_expression":     chunk.TypeConditional,
			"match_expression":  chunk.TypeConditional,
			"try_expression":    chunk.TypeErrorHandling,
			"call_expression":   chunk.TypeFunctionCall,
			"lambda_expression": chunk.TypeLambda,
			"block":             chunk.TypeCodeBlock,
		},
		[]string{"comment", "block_comment"},
		[]string{"//", "/*"},
	)
}

func bashConfig() Language {
	return NewLanguage(
		"bash",
		[]string{".sh", ".bash"},
		bash.GetLanguage(),
		map[string]chunk.Type{
			"function_definition": chunk.TypeFunction,
		},
		map[string]chunk.Type{
			"for_statement":         chunk.TypeLoop,
			"c_style_for_statement": chunk.TypeLoop,
			"while_statement":       chunk.TypeLoop,
			"if_statement":          chunk.TypeConditional,
			"case_statement":        chunk.TypeConditional,
		},
		[]string{"comment"},
		[]string{"#"},
	)
}
