// Command coach runs the coaching backend: an HTTP API over a categorized
// document library and a conversation grounded in it, plus headless
// subcommands that operate on the same snapshot database.
//
// @title       Coach API
// @version     1.0
// @description Personal coaching backend: a categorized document library and a conversation grounded in it.
// @BasePath    /api/v1
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/tbourn/go-coach-backend/internal/config"
	"github.com/tbourn/go-coach-backend/internal/sysutil"
)

var version = "dev"

// cfg is loaded once per invocation before any subcommand runs.
var cfg config.Config

var rootCmd = &cobra.Command{
	Use:           "coach",
	Short:         "Personal coaching backend",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// A missing .env is fine; the environment may already be set.
		_ = godotenv.Load()

		loaded, err := config.Load()
		if err != nil {
			return fmt.Errorf("config: %w", err)
		}
		if dbPath, _ := cmd.Flags().GetString("db"); dbPath != "" {
			loaded.DBPath = dbPath
		}
		cfg = loaded
		sysutil.ConfigureLogger(cfg.LogLevel, cfg.LogPretty, nil)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "snapshot database path (overrides DB_PATH)")
	rootCmd.AddCommand(serveCmd, ingestCmd, askCmd, documentsCmd, settingsCmd, clearCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
