package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/questify/internal/config"
	"github.com/abhisek/questify/internal/logger"
	"github.com/abhisek/questify/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "questify",
	Short: "Build exam papers from a syllabus",
	Long: "Questify splits a syllabus into units, asks a language model for exam questions on each unit,\n" +
		"keeps them in a local question bank and assembles papers that hit a target total of marks.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		verbose, _ := cmd.Flags().GetBool("verbose")
		logger.SetVerbose(verbose)
	},
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUESTIFY_DB_PATH)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (default $XDG_CONFIG_HOME/questify/config.toml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Print debug logging to stderr")

	rootCmd.AddCommand(unitsCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(paperCmd)
	rootCmd.AddCommand(questionsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(sampleSyllabusCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration named by --config and applies --db.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.LoadOptions{File: path})
	if err != nil {
		return cfg, fmt.Errorf("load config: %w", err)
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DBPath = p
	}
	return cfg, nil
}

// resolveDBPath returns the configured database path, falling back to the
// default XDG location.
func resolveDBPath(cfg config.Config) (string, error) {
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}

// openStore loads the configuration and opens the question bank.
func openStore(cmd *cobra.Command) (*store.Store, config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfg, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, cfg, fmt.Errorf("resolve database path: %w", err)
	}
	logger.Debug("database: %s", dbPath)

	s, err := store.Open(dbPath)
	if err != nil {
		return nil, cfg, fmt.Errorf("open database: %w", err)
	}
	return s, cfg, nil
}
