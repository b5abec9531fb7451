package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/handlers"
	"github.com/localnerve/starwars-api/internal/logging"
	"github.com/localnerve/starwars-api/internal/server"
	"github.com/spf13/cobra"
)

// routesCmd lists the HTTP endpoints served by the API
var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "List the HTTP endpoints",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		db, err := database.OpenSQLite(":memory:")
		if err != nil {
			return err
		}
		defer database.Close(db)

		srv := server.New(cfg, db, logging.NewWithOutput(cfg, os.Stderr))
		endpoints := handlers.Endpoints(srv.App)

		if jsonOutput {
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(endpoints)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "METHOD\tPATH")
		for _, ep := range endpoints {
			fmt.Fprintf(w, "%s\t%s\n", ep.Method, ep.Path)
		}
		return w.Flush()
	},
}

func init() {
	rootCmd.AddCommand(routesCmd)
}
