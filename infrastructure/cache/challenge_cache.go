package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/repository"
	"github.com/typedrill/typedrill/domain/typing"
	"github.com/typedrill/typedrill/infrastructure/storage"
	"github.com/typedrill/typedrill/infrastructure/tracking"
)

const cacheFileExt = ".bin"

// ChallengeCache persists challenge pointers per (repository, commit) and
// reconstructs full challenges by re-reading the referenced file slices.
type ChallengeCache struct {
	store    storage.Storage
	cacheDir string
	logger   *slog.Logger
}

// NewChallengeCache creates a ChallengeCache rooted at <app data dir>/cache.
func NewChallengeCache(store storage.Storage, logger *slog.Logger) (*ChallengeCache, error) {
	if logger == nil {
		logger = slog.Default()
	}

	dataDir, err := store.AppDataDir()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	cacheDir := filepath.Join(dataDir, "cache")
	if err := store.CreateDirAll(cacheDir); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	return &ChallengeCache{store: store, cacheDir: cacheDir, logger: logger}, nil
}

// Dir returns the cache directory.
func (c *ChallengeCache) Dir() string { return c.cacheDir }

// Save writes pointers for all challenges. Dirty work trees and repositories
// without a commit hash are never cached; both cases are silent no-ops.
func (c *ChallengeCache) Save(repo repository.Repository, challenges []challenge.Challenge) error {
	if repo.IsDirty() || repo.CommitHash() == "" {
		return nil
	}

	pointers := make([]ChallengePointer, 0, len(challenges))
	for _, ch := range challenges {
		pointers = append(pointers, pointerFrom(ch))
	}

	entry := CacheEntry{
		RepoKey:    repo.CacheKey(),
		CommitHash: repo.CommitHash(),
		Pointers:   pointers,
	}

	data, err := encodeEntry(entry)
	if err != nil {
		return err
	}

	path := c.cacheFilePath(repo)
	if err := c.store.WriteFile(path, data); err != nil {
		return fmt.Errorf("write cache file: %w", err)
	}

	c.logger.Debug("saved challenge cache",
		slog.String("repo", repo.CacheKey()),
		slog.String("commit", repo.CommitHash()),
		slog.Int("pointers", len(pointers)),
	)
	return nil
}

// Load reconstructs cached challenges for the repository. It returns nil on
// any miss: dirty work tree, absent or corrupt cache file, commit mismatch,
// or an empty reconstructed set. Pointers failing individually are dropped.
func (c *ChallengeCache) Load(ctx context.Context, repo repository.Repository, reporter tracking.Reporter) []challenge.Challenge {
	if repo.IsDirty() || repo.RootPath() == "" {
		return nil
	}
	if reporter == nil {
		reporter = tracking.NewNopReporter()
	}

	path := c.cacheFilePath(repo)
	data, err := c.store.ReadFile(path)
	if err != nil {
		return nil
	}

	entry, err := decodeEntry(data)
	if err != nil {
		c.logger.Debug("cache entry unreadable, treating as miss", slog.String("error", err.Error()))
		return nil
	}

	if entry.CommitHash != repo.CommitHash() {
		return nil
	}

	repoRoot, err := canonicalize(repo.RootPath())
	if err != nil {
		return nil
	}

	status := tracking.NewStatus(tracking.StepCacheCheck)
	total := len(entry.Pointers)

	results := make([]*challenge.Challenge, total)
	var processed atomic.Int64

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for i, ptr := range entry.Pointers {
		g.Go(func() error {
			if ch, ok := c.reconstruct(ptr, repoRoot); ok {
				results[i] = &ch
			}

			n := int(processed.Add(1))
			_ = reporter.OnChange(ctx, status.WithProgress(n, total,
				fmt.Sprintf("reconstructing challenge %d/%d", n, total)))
			return nil
		})
	}
	_ = g.Wait()

	challenges := make([]challenge.Challenge, 0, total)
	for _, r := range results {
		if r != nil {
			challenges = append(challenges, *r)
		}
	}

	_ = reporter.OnChange(ctx, status.WithProgress(total, total, "").Finish())

	if len(challenges) == 0 {
		return nil
	}

	c.logger.Debug("loaded challenge cache",
		slog.String("repo", repo.CacheKey()),
		slog.Int("reconstructed", len(challenges)),
		slog.Int("dropped", total-len(challenges)),
	)
	return challenges
}

// Invalidate removes the cache entry for the repository. It reports whether
// an entry existed.
func (c *ChallengeCache) Invalidate(repo repository.Repository) (bool, error) {
	path := c.cacheFilePath(repo)
	if !c.store.FileExists(path) {
		return false, nil
	}
	if err := c.store.DeleteFile(path); err != nil {
		return false, fmt.Errorf("invalidate cache: %w", err)
	}
	return true, nil
}

// Clear removes every cache entry.
func (c *ChallengeCache) Clear() error {
	names, err := c.store.ListFilesInDir(c.cacheDir)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	for _, name := range names {
		if !strings.HasSuffix(name, cacheFileExt) {
			continue
		}
		if err := c.store.DeleteFile(filepath.Join(c.cacheDir, name)); err != nil {
			return fmt.Errorf("clear cache: %w", err)
		}
	}
	return nil
}

// Stats returns the number of cache entries and their total size in bytes.
func (c *ChallengeCache) Stats() (int, int64, error) {
	names, err := c.store.ListFilesInDir(c.cacheDir)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	count := 0
	var totalSize int64
	for _, name := range names {
		if !strings.HasSuffix(name, cacheFileExt) {
			continue
		}
		count++
		if size, err := c.store.FileSize(filepath.Join(c.cacheDir, name)); err == nil {
			totalSize += size
		}
	}
	return count, totalSize, nil
}

// ListKeys returns "repo_key:commit" for every readable entry, sorted and
// deduplicated. Keys come from entry contents; filenames are opaque hashes.
func (c *ChallengeCache) ListKeys() ([]string, error) {
	names, err := c.store.ListFilesInDir(c.cacheDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCacheDir, err)
	}

	seen := make(map[string]struct{})
	var keys []string
	for _, name := range names {
		if !strings.HasSuffix(name, cacheFileExt) {
			continue
		}

		data, err := c.store.ReadFile(filepath.Join(c.cacheDir, name))
		if err != nil {
			continue
		}
		entry, err := decodeEntry(data)
		if err != nil {
			continue
		}

		key := entry.RepoKey + ":" + entry.CommitHash
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		keys = append(keys, key)
	}

	sort.Strings(keys)
	return keys, nil
}

// reconstruct rebuilds one challenge by re-reading its file slice and
// re-applying text processing. The pointer's comment ranges are already in
// processed-text space and are reused as-is.
func (c *ChallengeCache) reconstruct(ptr ChallengePointer, repoRoot string) (challenge.Challenge, bool) {
	if ptr.SourceFilePath == "" {
		return challenge.Challenge{}, false
	}

	absPath, err := canonicalize(filepath.Join(repoRoot, ptr.SourceFilePath))
	if err != nil {
		return challenge.Challenge{}, false
	}
	if !pathWithin(absPath, repoRoot) {
		c.logger.Debug("dropping pointer outside repository root",
			slog.String("path", ptr.SourceFilePath),
			slog.String("error", ErrSecurityViolation.Error()),
		)
		return challenge.Challenge{}, false
	}

	content, err := c.store.ReadToString(absPath)
	if err != nil {
		return challenge.Challenge{}, false
	}

	raw := content
	if ptr.StartLine > 0 && ptr.EndLine > 0 {
		lines := strings.Split(strings.TrimSuffix(content, "\n"), "\n")
		if ptr.StartLine > ptr.EndLine || ptr.EndLine > len(lines) {
			return challenge.Challenge{}, false
		}
		raw = strings.Join(lines[ptr.StartLine-1:ptr.EndLine], "\n")
	}

	difficulty := challenge.Difficulty(ptr.Difficulty)
	preserveEmpty := difficulty == challenge.DifficultyZen
	processed, _ := typing.Process(raw, nil, preserveEmpty)

	return challenge.Reconstruct(
		ptr.ID,
		processed,
		ptr.SourceFilePath,
		ptr.StartLine,
		ptr.EndLine,
		ptr.Language,
		ptr.CommentRanges,
		difficulty,
	), true
}

// cacheFilePath hashes the repository identity into a filesystem-safe name.
func (c *ChallengeCache) cacheFilePath(repo repository.Repository) string {
	commit := repo.CommitHash()
	if commit == "" {
		commit = "nohash"
	}
	dirty := "clean"
	if repo.IsDirty() {
		dirty = "dirty"
	}

	raw := fmt.Sprintf("%s:%s:%s", repo.CacheKey(), commit, dirty)
	digest := sha256.Sum256([]byte(raw))
	return filepath.Join(c.cacheDir, hex.EncodeToString(digest[:])+cacheFileExt)
}

// canonicalize resolves the path to an absolute form with symlinks followed,
// so containment checks cannot be fooled by links or dot segments.
func canonicalize(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	return filepath.EvalSymlinks(abs)
}

func pathWithin(path, root string) bool {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
