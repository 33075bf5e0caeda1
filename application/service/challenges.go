package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/chunk"
	"github.com/typedrill/typedrill/domain/repository"
	"github.com/typedrill/typedrill/infrastructure/cache"
	"github.com/typedrill/typedrill/infrastructure/git"
	"github.com/typedrill/typedrill/infrastructure/slicing"
	"github.com/typedrill/typedrill/infrastructure/tracking"
)

// ChallengeService runs the full pipeline: cache check, file scan, AST
// extraction, challenge generation, and a best-effort cache write.
type ChallengeService struct {
	metadata  *git.MetadataLoader
	scanner   *git.FileScanner
	slicer    *slicing.Slicer
	generator *ChallengeGenerator
	cache     *cache.ChallengeCache
	opts      chunk.ExtractionOptions
	logger    *slog.Logger
}

// NewChallengeService creates a ChallengeService.
func NewChallengeService(
	metadata *git.MetadataLoader,
	scanner *git.FileScanner,
	slicer *slicing.Slicer,
	generator *ChallengeGenerator,
	challengeCache *cache.ChallengeCache,
	opts chunk.ExtractionOptions,
	logger *slog.Logger,
) *ChallengeService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ChallengeService{
		metadata:  metadata,
		scanner:   scanner,
		slicer:    slicer,
		generator: generator,
		cache:     challengeCache,
		opts:      opts,
		logger:    logger,
	}
}

// Result pairs the generated challenges with the repository they came from
// and whether they were served from cache.
type Result struct {
	Repository repository.Repository
	Challenges []challenge.Challenge
	FromCache  bool
}

// Generate produces challenges for the work tree at rootPath. Cached
// challenges are served when the repository is clean and the commit matches;
// otherwise the pipeline runs and the result is cached best-effort.
func (s *ChallengeService) Generate(ctx context.Context, rootPath string, reporter tracking.Reporter) (Result, error) {
	if reporter == nil {
		reporter = tracking.NewNopReporter()
	}

	repo := s.loadRepository(rootPath)

	_ = reporter.OnChange(ctx, tracking.NewStatus(tracking.StepCacheCheck))
	if cached := s.cache.Load(ctx, repo, reporter); cached != nil {
		s.logger.Info("serving challenges from cache",
			slog.String("repo", repo.CacheKey()),
			slog.Int("challenges", len(cached)),
		)
		return Result{Repository: repo, Challenges: cached, FromCache: true}, nil
	}

	scanStatus := tracking.NewStatus(tracking.StepScanning)
	_ = reporter.OnChange(ctx, scanStatus)

	files, err := s.scanner.Scan(ctx, rootPath, s.opts)
	if err != nil {
		return Result{}, fmt.Errorf("scan repository: %w", err)
	}
	_ = reporter.OnChange(ctx, scanStatus.WithProgress(len(files), len(files), "").Finish())

	chunks, err := s.slicer.Slice(ctx, files, rootPath, reporter)
	if err != nil {
		return Result{}, fmt.Errorf("extract chunks: %w", err)
	}

	challenges := s.generator.Convert(ctx, chunks, reporter)

	s.logger.Info("generated challenges",
		slog.String("repo", repo.CacheKey()),
		slog.Int("files", len(files)),
		slog.Int("chunks", len(chunks)),
		slog.Int("challenges", len(challenges)),
	)

	// Cache write failures never fail the pipeline; the challenges are
	// already in hand.
	cacheStatus := tracking.NewStatus(tracking.StepCaching)
	_ = reporter.OnChange(ctx, cacheStatus)
	if err := s.cache.Save(repo, challenges); err != nil {
		s.logger.Warn("challenge cache save failed", slog.String("error", err.Error()))
	}
	_ = reporter.OnChange(ctx, cacheStatus.Finish())

	return Result{Repository: repo, Challenges: challenges}, nil
}

// loadRepository resolves git identity, falling back to a bare local
// identity for plain directories so non-git trees can still be practiced
// on. Such trees never hit the cache: they carry no commit hash.
func (s *ChallengeService) loadRepository(rootPath string) repository.Repository {
	repo, err := s.metadata.Load(rootPath)
	if err != nil {
		if !errors.Is(err, git.ErrNotRepository) {
			s.logger.Warn("failed to read git metadata", slog.String("error", err.Error()))
		}
		return repository.NewRepository(
			"local", filepath.Base(rootPath), "", "", "", true, rootPath,
		)
	}
	return repo
}
