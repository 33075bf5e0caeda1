package slicing

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/typedrill/typedrill/domain/chunk"
)

func TestSlicer_Slice(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(goSource), 0o644))

	slicer := NewSlicer(NewLanguageConfig(), chunk.DefaultExtractionOptions())
	chunks, err := slicer.Slice(context.Background(), []string{"main.go"}, root, nil)
	require.NoError(t, err)

	byName := chunksByName(chunks)
	assert.Contains(t, byName, "add")
	assert.Contains(t, byName, "main")
	assert.Contains(t, byName, "entire_file")
	assert.Equal(t, "main.go", byName["add"].FilePath())
}

func TestSlicer_Slice_LanguageFilter(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(goSource), 0o644))

	opts := chunk.DefaultExtractionOptions().WithLanguages([]string{"python"})
	slicer := NewSlicer(NewLanguageConfig(), opts)

	chunks, err := slicer.Slice(context.Background(), []string{"main.go"}, root, nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestSlicer_Slice_SkipsUnreadableFiles(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(goSource), 0o644))

	slicer := NewSlicer(NewLanguageConfig(), chunk.DefaultExtractionOptions())
	chunks, err := slicer.Slice(context.Background(), []string{"missing.go", "main.go"}, root, nil)
	require.NoError(t, err)
	assert.Contains(t, chunksByName(chunks), "add")
}

func TestSlicer_Slice_HandlesInvalidUTF8File(t *testing.T) {
	root := t.TempDir()
	source := append([]byte(goSource), 0xff)
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), source, 0o644))

	slicer := NewSlicer(NewLanguageConfig(), chunk.DefaultExtractionOptions())
	chunks, err := slicer.Slice(context.Background(), []string{"main.go"}, root, nil)
	require.NoError(t, err)
	assert.Contains(t, chunksByName(chunks), "add")
}

func TestSlicer_Slice_UnknownExtensionIgnored(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("plain text"), 0o644))

	slicer := NewSlicer(NewLanguageConfig(), chunk.DefaultExtractionOptions())
	chunks, err := slicer.Slice(context.Background(), []string{"notes.txt"}, root, nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}
