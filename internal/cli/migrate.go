package cli

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		db, err := openMigrated()
		if err != nil {
			return err
		}
		defer closeDB(db)

		log.Info().Str("db_path", cfg.DBPath).Msg("schema_migrated")
		cmd.Printf("migrated %s\n", cfg.DBPath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
