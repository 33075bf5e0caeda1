package main

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/typedrill/typedrill/infrastructure/cache"
	"github.com/typedrill/typedrill/infrastructure/git"
	"github.com/typedrill/typedrill/infrastructure/storage"
	"github.com/typedrill/typedrill/internal/log"
)

func cacheCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and manage the challenge cache",
	}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "path to .env file")

	cmd.AddCommand(cacheStatsCmd(&envFile))
	cmd.AddCommand(cacheListCmd(&envFile))
	cmd.AddCommand(cacheClearCmd(&envFile))
	cmd.AddCommand(cacheInvalidateCmd(&envFile))

	return cmd
}

func openCache(envFile string) (*cache.ChallengeCache, error) {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return nil, err
	}

	logger := log.Configure(cfg)
	store := storage.NewOSStorage(cfg.DataDir())
	return cache.NewChallengeCache(store, logger.Slog())
}

func cacheStatsCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and total size",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache(*envFile)
			if err != nil {
				return err
			}

			count, size, err := c.Stats()
			if err != nil {
				return err
			}

			fmt.Printf("entries: %d\n", count)
			fmt.Printf("size:    %s\n", humanBytes(size))
			fmt.Printf("dir:     %s\n", c.Dir())
			return nil
		},
	}
}

func cacheListCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List cached repository keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache(*envFile)
			if err != nil {
				return err
			}

			keys, err := c.ListKeys()
			if err != nil {
				return err
			}

			for _, key := range keys {
				fmt.Println(key)
			}
			return nil
		},
	}
}

func cacheClearCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove all cache entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := openCache(*envFile)
			if err != nil {
				return err
			}
			return c.Clear()
		},
	}
}

func cacheInvalidateCmd(envFile *string) *cobra.Command {
	return &cobra.Command{
		Use:   "invalidate [path]",
		Short: "Remove the cache entry for one repository",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) == 1 {
				path = args[0]
			}
			rootPath, err := filepath.Abs(path)
			if err != nil {
				return err
			}

			cfg, err := loadConfig(*envFile)
			if err != nil {
				return err
			}
			logger := log.Configure(cfg)

			repo, err := git.NewMetadataLoader(logger.Slog()).Load(rootPath)
			if err != nil {
				return err
			}

			store := storage.NewOSStorage(cfg.DataDir())
			c, err := cache.NewChallengeCache(store, logger.Slog())
			if err != nil {
				return err
			}

			removed, err := c.Invalidate(repo)
			if err != nil {
				return err
			}
			if removed {
				fmt.Printf("invalidated %s\n", repo.CacheKey())
			} else {
				fmt.Printf("no cache entry for %s\n", repo.CacheKey())
			}
			return nil
		},
	}
}

func humanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
