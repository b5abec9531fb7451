package commands

import (
	"fmt"

	"github.com/localnerve/starwars-api/internal/database"
	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the tables
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, log, closeDB, err := connect()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
		log.Info("Migrations complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
