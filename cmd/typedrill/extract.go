package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/typedrill/typedrill/application/service"
	"github.com/typedrill/typedrill/domain/challenge"
	"github.com/typedrill/typedrill/domain/chunk"
	"github.com/typedrill/typedrill/infrastructure/cache"
	"github.com/typedrill/typedrill/infrastructure/git"
	"github.com/typedrill/typedrill/infrastructure/slicing"
	"github.com/typedrill/typedrill/infrastructure/storage"
	"github.com/typedrill/typedrill/infrastructure/tracking"
	"github.com/typedrill/typedrill/internal/config"
	"github.com/typedrill/typedrill/internal/log"
)

func extractCmd() *cobra.Command {
	var (
		envFile   string
		repoURL   string
		languages []string
		listAll   bool
	)

	cmd := &cobra.Command{
		Use:   "extract [path]",
		Short: "Extract typing challenges from a repository",
		Long: `Extract typing challenges from a local work tree or a remote repository.

With a path argument the work tree at that path is used (default: current
directory). With --repo the repository is cloned under the data directory
first.

Environment variables:
  TYPEDRILL_DATA_DIR                    Data directory (default: ~/.typedrill)
  TYPEDRILL_LOG_LEVEL                   DEBUG, INFO, WARN, ERROR (default: INFO)
  TYPEDRILL_LOG_FORMAT                  pretty, json (default: pretty)
  TYPEDRILL_WORKER_COUNT                Extraction workers, 0 = per CPU
  TYPEDRILL_MAX_FILE_SIZE_BYTES         Per-file size limit (default: 1048576)
  TYPEDRILL_LANGUAGES                   Comma-separated language filter
  TYPEDRILL_REPORTING_INTERVAL_SECONDS  Progress log throttle (default: 5)`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			return runExtract(cmd.Context(), envFile, path, repoURL, languages, listAll)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "path to .env file")
	cmd.Flags().StringVar(&repoURL, "repo", "", "remote repository URL to clone and extract")
	cmd.Flags().StringSliceVar(&languages, "languages", nil, "restrict extraction to these languages")
	cmd.Flags().BoolVar(&listAll, "list", false, "list every challenge instead of the summary")

	return cmd
}

func runExtract(ctx context.Context, envFile, path, repoURL string, languages []string, listAll bool) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.Configure(cfg)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := storage.NewOSStorage(cfg.DataDir())

	if repoURL != "" {
		dataDir, err := store.AppDataDir()
		if err != nil {
			return err
		}
		cloner := git.NewCloner(filepath.Join(dataDir, "repos"), logger.Slog())
		path, err = cloner.CloneOrUpdate(ctx, repoURL)
		if err != nil {
			return err
		}
	}

	rootPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	svc, closeReporter, reporter, err := buildService(cfg, store, logger, languages)
	if err != nil {
		return err
	}
	defer closeReporter()

	result, err := svc.Generate(ctx, rootPath, reporter)
	if err != nil {
		return err
	}

	if listAll {
		printChallengeList(result.Challenges)
		return nil
	}

	printSummary(result)
	return nil
}

func buildService(
	cfg config.AppConfig,
	store storage.Storage,
	logger *log.Logger,
	languages []string,
) (*service.ChallengeService, func(), tracking.Reporter, error) {
	opts := chunk.DefaultExtractionOptions().
		WithMaxFileSize(cfg.MaxFileSizeBytes()).
		WithWorkerCount(cfg.WorkerCount())
	if len(languages) > 0 {
		opts = opts.WithLanguages(languages)
	} else if len(cfg.Languages()) > 0 {
		opts = opts.WithLanguages(cfg.Languages())
	}

	langConfig := slicing.NewLanguageConfig()

	challengeCache, err := cache.NewChallengeCache(store, logger.Slog())
	if err != nil {
		return nil, nil, nil, err
	}

	svc := service.NewChallengeService(
		git.NewMetadataLoader(logger.Slog()),
		git.NewFileScanner(langConfig.SupportedExtensions(), logger.Slog()),
		slicing.NewSlicer(langConfig, opts),
		service.NewChallengeGenerator(),
		challengeCache,
		opts,
		logger.Slog(),
	)

	cooldown := tracking.NewCooldown(tracking.NewLoggingReporter(logger.Slog()), cfg.ReportingInterval())
	closeReporter := func() { _ = cooldown.Close() }

	return svc, closeReporter, cooldown, nil
}

func printSummary(result service.Result) {
	source := "extracted"
	if result.FromCache {
		source = "cached"
	}

	repo := result.Repository
	fmt.Printf("%s/%s", repo.UserName(), repo.RepositoryName())
	if repo.Branch() != "" {
		fmt.Printf(" (%s)", repo.Branch())
	}
	fmt.Printf(": %d challenges (%s)\n", len(result.Challenges), source)

	counts := make(map[challenge.Difficulty]int)
	for _, c := range result.Challenges {
		counts[c.DifficultyLevel()]++
	}
	for _, d := range challenge.AllDifficulties() {
		if counts[d] == 0 {
			continue
		}
		fmt.Printf("  %-6s %5d  (%s)\n", d, counts[d], d.Description())
	}
}

func printChallengeList(challenges []challenge.Challenge) {
	for _, c := range challenges {
		lines := ""
		if c.StartLine() > 0 {
			lines = fmt.Sprintf(":%d-%d", c.StartLine(), c.EndLine())
		}
		fmt.Printf("%s  %-6s  %s%s  (%d chars)\n",
			c.ID()[:12], c.DifficultyLevel(), c.SourceFilePath(), lines,
			len([]rune(c.CodeContent())),
		)
	}
}
