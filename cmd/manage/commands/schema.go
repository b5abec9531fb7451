package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/localnerve/starwars-api/internal/database"
	"github.com/spf13/cobra"
)

type tableDDL struct {
	Name string `json:"name"`
	SQL  string `json:"sql"`
}

// schemaCmd prints the tables GORM creates, using a throwaway SQLite database
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Print the DDL the migrations produce on SQLite",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := database.OpenSQLite(":memory:")
		if err != nil {
			return err
		}
		defer database.Close(db)

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		var tables []tableDDL
		err = db.Raw("SELECT name, sql FROM sqlite_master WHERE type = ? AND name NOT LIKE ? ORDER BY name", "table", "sqlite_%").
			Scan(&tables).Error
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(tables)
		}

		for _, table := range tables {
			fmt.Printf("\n=== Table: %s ===\n%s\n", table.Name, table.SQL)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}
