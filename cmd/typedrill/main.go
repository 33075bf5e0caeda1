// Package main is the entry point for the typedrill CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/typedrill/typedrill/internal/config"
)

// Version information set via ldflags during build.
var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "typedrill",
		Short: "Turn source repositories into typing practice challenges",
		Long:  `Typedrill extracts functions, classes, and other declarations from a source repository and turns them into typing practice challenges bucketed by difficulty.`,
	}

	cmd.AddCommand(extractCmd())
	cmd.AddCommand(cacheCmd())
	cmd.AddCommand(versionCmd())

	return cmd
}

// loadConfig loads configuration from a .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	cfg, err := config.LoadConfig(envFile)
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
