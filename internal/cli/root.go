// Package cli implements the storefront command line: the HTTP server plus
// maintenance commands that share its configuration and wiring.
package cli

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/tbourn/go-storefront-search/internal/config"
	"github.com/tbourn/go-storefront-search/internal/repo"
	"github.com/tbourn/go-storefront-search/internal/sysutil"
)

// version is overridden at build time with -ldflags "-X ...cli.version=".
var version = "dev"

var (
	envFile string

	// cfg is loaded once per invocation by the root pre-run hook.
	cfg config.Config

	// openDB is swapped in tests.
	openDB = func(c config.Config) (*gorm.DB, error) { return repo.OpenSQLite(c.DBPath) }
)

var rootCmd = &cobra.Command{
	Use:   "storefront",
	Short: "Storefront product search service",
	Long: `Serves product search, query suggestions and popular search terms over
HTTP, and provides commands to migrate and seed the catalog database.

Configuration is read from the environment; a .env file is loaded first
when present.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before reading the environment")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	if envFile != "" {
		// Existing environment variables win over the file.
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	c, err := config.Load()
	if err != nil {
		return err
	}
	cfg = c
	sysutil.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel, cfg.LogPretty)
	return nil
}

// openMigrated opens the configured database and brings its schema up to date.
func openMigrated() (*gorm.DB, error) {
	db, err := openDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", cfg.DBPath, err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	// No configuration needed.
	PersistentPreRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, _ []string) {
		cmd.Printf("storefront version %s\n", version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
