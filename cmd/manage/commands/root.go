package commands

import (
	"fmt"
	"os"

	"github.com/localnerve/starwars-api/internal/config"
	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/logging"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	// Global flags
	envFile    string
	dbURL      string
	jsonOutput bool
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "manage",
	Short: "Administrative tasks for the Star Wars API",
	Long: `manage runs one-off tasks against the database selected by DATABASE_URL.

Examples:
  manage migrate                       # Create or update the tables
  manage seed                          # Load the bundled SWAPI records
  manage schema                        # Print the DDL on SQLite
  manage routes --json                 # List the HTTP endpoints`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&envFile, "env-file", "f", "", "Path to a .env file to load first")
	rootCmd.PersistentFlags().StringVar(&dbURL, "db", "", "Database URL, overrides DATABASE_URL")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
}

// loadConfig reads the configuration, honoring --env-file and --db
func loadConfig() (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if envFile != "" {
		cfg, err = config.LoadFile(envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return nil, err
	}
	if dbURL != "" {
		cfg.DatabaseURL = config.NormalizeDatabaseURL(dbURL)
	}
	return cfg, nil
}

// connect opens the configured database and returns a closer along with it
func connect() (*gorm.DB, *logrus.Logger, func(), error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	log := logging.NewWithOutput(cfg, os.Stderr)

	db, err := database.Connect(cfg, log)
	if err != nil {
		return nil, nil, nil, err
	}
	return db, log, func() { _ = database.Close(db) }, nil
}
