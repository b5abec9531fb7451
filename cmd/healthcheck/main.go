// main.go
//
// A Star Wars favorites REST service backed by GORM
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of starwars-api.
// starwars-api is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// starwars-api is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with starwars-api.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/localnerve/starwars-api/internal/config"
	"github.com/localnerve/starwars-api/internal/database"
	"github.com/localnerve/starwars-api/internal/logging"
	"github.com/localnerve/starwars-api/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Diagnostics go to stderr so stdout stays valid JSON
	log := logging.NewWithOutput(cfg, os.Stderr)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	defer database.Close(db)

	result := services.HealthCheck(context.Background(), cfg, db, log)

	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		log.WithError(err).Fatal("Failed to marshal health check result")
	}

	fmt.Println(string(output))

	if !result.Healthy() {
		os.Exit(1)
	}
}
