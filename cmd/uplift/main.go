package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"uplift/internal/config"
	"uplift/internal/console"
	"uplift/internal/driver"
	"uplift/internal/execx"
)

var version = "dev"

var (
	configPath string
	verbose    bool
	noSpinner  bool
)

var rootCmd = &cobra.Command{
	Use:   "uplift <repo-path>",
	Short: "Migrate a Poetry project to uv",
	Long: `uplift converts a repository's pyproject.toml from Poetry to the
PEP 621 / dependency-groups layout used by uv, verifies the result by
syncing and running the project's checks, and commits the change.`,
	Args:          cobra.ExactArgs(1),
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runMigration,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "uplift.toml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&noSpinner, "no-spinner", false, "disable progress spinners")
}

func runMigration(cmd *cobra.Command, args []string) error {
	setupLogging()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	runID := uuid.NewString()
	slog.Info("starting migration", "run_id", runID, "repo", args[0])

	runner := execx.NewExecutor(&execx.Options{Spinner: !noSpinner})
	d, err := driver.New(cfg, runner)
	if err != nil {
		return err
	}
	return d.Migrate(cmd.Context(), args[0])
}

func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

// loadConfig reads the config file when present and falls back to
// defaults when the default path does not exist. An explicitly given
// path that cannot be read is an error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err == nil {
		return cfg, nil
	}
	if os.IsNotExist(err) && configPath == "uplift.toml" {
		return config.Default(), nil
	}
	return nil, fmt.Errorf("loading config %s: %w", configPath, err)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		console.Errorf("%v", err)
		os.Exit(1)
	}
}
