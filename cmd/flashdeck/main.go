// Package main implements the flashdeck command, which serves the deck
// library over HTTP and runs review sessions on the console.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/phrazzld/flashdeck/internal/config"
	"github.com/phrazzld/flashdeck/internal/platform/logger"
	"github.com/spf13/cobra"
)

var (
	// Global flags
	configFile string

	// Set by the root command before any subcommand runs.
	cfg       *config.Config
	appLogger *slog.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "flashdeck",
	Short: "flashdeck - flashcard decks with mastery tracking",
	Long: `flashdeck keeps an ordered library of flashcard decks and tracks how well
each card is remembered.

Use "serve" to expose the library over HTTP or "review" to study a deck on
the console. "deck" and "card" edit the library in place.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return initializeApp(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "path to a YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(reviewCmd)
	rootCmd.AddCommand(decksCmd)
	rootCmd.AddCommand(deckCmd)
	rootCmd.AddCommand(cardCmd)
	rootCmd.AddCommand(migrateCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// initializeApp loads configuration and sets up logging. Logs go to stderr so
// they never interleave with console output.
func initializeApp(cmd *cobra.Command) error {
	var err error
	if configFile != "" {
		cfg, err = config.LoadFile(configFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	appLogger, err = logger.SetupWithWriter(cfg.Server, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	appLogger.Debug("configuration loaded",
		"port", cfg.Server.Port,
		"log_level", cfg.Server.LogLevel,
		"backend", cfg.Storage.Backend)
	return nil
}
