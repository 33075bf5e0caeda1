package git

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"sort"
	"strings"

	"github.com/typedrill/typedrill/domain/chunk"
)

// FileScanner walks a repository work tree and collects source files
// eligible for extraction.
type FileScanner struct {
	extensions map[string]struct{}
	logger     *slog.Logger
}

// NewFileScanner creates a FileScanner limited to the given file extensions.
func NewFileScanner(extensions []string, logger *slog.Logger) *FileScanner {
	if logger == nil {
		logger = slog.Default()
	}

	set := make(map[string]struct{}, len(extensions))
	for _, ext := range extensions {
		set[ext] = struct{}{}
	}

	return &FileScanner{extensions: set, logger: logger}
}

// Scan returns the paths of all matching files under rootPath, relative to
// rootPath and sorted. Excluded directories are pruned, hidden directories
// are skipped, and files over the size limit are dropped.
func (s *FileScanner) Scan(ctx context.Context, rootPath string, opts chunk.ExtractionOptions) ([]string, error) {
	var files []string

	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		if d.IsDir() {
			name := d.Name()
			if path != rootPath && (opts.ExcludesDir(name) || strings.HasPrefix(name, ".")) {
				return fs.SkipDir
			}
			return nil
		}

		if _, ok := s.extensions[filepath.Ext(path)]; !ok {
			return nil
		}

		info, err := d.Info()
		if err != nil || info.Size() > opts.MaxFileSizeBytes() {
			return nil
		}

		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return nil
		}

		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", rootPath, err)
	}

	sort.Strings(files)

	s.logger.Debug("scanned work tree",
		slog.String("root", rootPath),
		slog.Int("files", len(files)),
	)
	return files, nil
}
