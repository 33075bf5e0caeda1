package chunk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRange_Contains(t *testing.T) {
	r := NewRange(2, 5)
	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))
}

func TestRange_Valid(t *testing.T) {
	assert.True(t, NewRange(0, 3).Valid(3))
	assert.False(t, NewRange(0, 4).Valid(3))
	assert.False(t, NewRange(-1, 2).Valid(3))
	assert.False(t, NewRange(2, 2).Valid(3))
}

func TestType_Priority(t *testing.T) {
	assert.Equal(t, 0, TypeFunction.Priority())
	assert.Equal(t, 0, TypeMethod.Priority())
	assert.Equal(t, 0, TypeClass.Priority())
	assert.Equal(t, 5, TypeStruct.Priority())
	assert.Equal(t, 5, TypeInterface.Priority())
	assert.Equal(t, 5, TypeLoop.Priority())
	assert.Equal(t, 5, TypeConditional.Priority())
	assert.Equal(t, 10, TypeCodeBlock.Priority())
	assert.Equal(t, 20, TypeFile.Priority())
}

func TestCodeChunk_CommentRangesAreCopied(t *testing.T) {
	ranges := []Range{{Start: 0, End: 4}}
	ch := NewCodeChunk("// c\nx", "a.go", ranges, TypeFunction, 1, 2, "go", "x", "")

	ranges[0].Start = 99
	assert.Equal(t, 0, ch.CommentRanges()[0].Start)

	got := ch.CommentRanges()
	got[0].End = 99
	assert.Equal(t, 4, ch.CommentRanges()[0].End)
}

func TestExtractionOptions_AllowsLanguage(t *testing.T) {
	all := DefaultExtractionOptions()
	assert.True(t, all.AllowsLanguage("go"))
	assert.True(t, all.AllowsLanguage("rust"))

	filtered := DefaultExtractionOptions().WithLanguages([]string{"go", "python"})
	assert.True(t, filtered.AllowsLanguage("go"))
	assert.False(t, filtered.AllowsLanguage("rust"))
}

func TestExtractionOptions_ExcludesDir(t *testing.T) {
	opts := DefaultExtractionOptions()
	assert.True(t, opts.ExcludesDir("node_modules"))
	assert.True(t, opts.ExcludesDir("target"))
	assert.False(t, opts.ExcludesDir("src"))
}
