package slicing

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	sitter "github.com/smacker/go-tree-sitter"
	"golang.org/x/sync/errgroup"

	"github.com/typedrill/typedrill/domain/chunk"
	"github.com/typedrill/typedrill/infrastructure/tracking"
)

// Slicer extracts code chunks from source files using AST parsing.
// Files are parsed concurrently, one parser per file; tree-sitter parsers
// are not safe for concurrent use.
type Slicer struct {
	config    LanguageConfig
	extractor Extractor
	opts      chunk.ExtractionOptions
}

// NewSlicer creates a new Slicer.
func NewSlicer(config LanguageConfig, opts chunk.ExtractionOptions) *Slicer {
	return &Slicer{
		config:    config,
		extractor: NewExtractor(),
		opts:      opts,
	}
}

// Slice parses every file and returns all extracted chunks. Paths are
// relative to basePath and recorded verbatim on the resulting chunks.
// Files that fail to read or parse are skipped; a single broken file must
// not sink the whole repository.
func (s *Slicer) Slice(ctx context.Context, files []string, basePath string, reporter tracking.Reporter) ([]chunk.CodeChunk, error) {
	if reporter == nil {
		reporter = tracking.NewNopReporter()
	}

	status := tracking.NewStatus(tracking.StepExtracting)
	_ = reporter.OnChange(ctx, status.WithProgress(0, len(files), ""))

	var (
		mu     sync.Mutex
		chunks []chunk.CodeChunk
		done   atomic.Int64
	)

	workers := s.opts.WorkerCount()
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for _, relPath := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}

			fileChunks := s.sliceFile(gctx, relPath, basePath)

			n := int(done.Add(1))
			_ = reporter.OnChange(gctx, status.WithProgress(n, len(files), relPath))

			if len(fileChunks) == 0 {
				return nil
			}

			mu.Lock()
			chunks = append(chunks, fileChunks...)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	_ = reporter.OnChange(ctx, status.WithProgress(len(files), len(files), "").Finish())
	return chunks, nil
}

func (s *Slicer) sliceFile(ctx context.Context, relPath, basePath string) []chunk.CodeChunk {
	ext := filepath.Ext(relPath)
	lang, ok := s.config.ByExtension(ext)
	if !ok {
		return nil
	}
	if !s.opts.AllowsLanguage(lang.Name()) {
		return nil
	}

	fullPath := filepath.Join(basePath, relPath)
	info, err := os.Stat(fullPath)
	if err != nil || info.Size() > s.opts.MaxFileSizeBytes() {
		return nil
	}

	source, err := os.ReadFile(fullPath)
	if err != nil {
		return nil
	}

	parser := sitter.NewParser()
	parser.SetLanguage(lang.SitterLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil || tree == nil {
		return nil
	}
	defer tree.Close()

	return s.extractor.ExtractChunks(ctx, tree.RootNode(), string(source), relPath, lang)
}
