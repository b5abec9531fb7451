package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/localnerve/starwars-api/data"
	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/services"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	// Seed flags
	seedFile string
)

// seedCmd loads catalog records
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load catalog records into the database",
	Long: `Load addresses, planets, characters and vehicles into the database.

Records are matched by name, so seeding twice inserts nothing new.
Without --file the bundled SWAPI records are used.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		raw := data.SeedSWAPI
		if seedFile != "" {
			var err error
			if raw, err = os.ReadFile(seedFile); err != nil {
				return fmt.Errorf("failed to read seed file: %w", err)
			}
		}
		seed, err := services.ParseSeed(raw)
		if err != nil {
			return err
		}

		db, log, closeDB, err := connect()
		if err != nil {
			return err
		}
		defer closeDB()

		if err := database.AutoMigrate(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}

		result, err := services.Seed(db, seed)
		if err != nil {
			return err
		}

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(result)
		}

		tables := make([]string, 0, len(result))
		for table := range result {
			tables = append(tables, table)
		}
		sort.Strings(tables)
		fields := logrus.Fields{}
		for _, table := range tables {
			fields[table] = result[table]
		}
		log.WithFields(fields).Info("Seed complete")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(seedCmd)

	seedCmd.Flags().StringVar(&seedFile, "file", "", "JSON seed file to load instead of the bundled records")
}
