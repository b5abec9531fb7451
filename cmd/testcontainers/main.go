package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/localnerve/starwars-api/internal/testutil"
	"github.com/sirupsen/logrus"
)

func main() {
	var showHelp bool
	flag.BoolVar(&showHelp, "h", false, "show help")
	var envFilename string
	flag.StringVar(&envFilename, "f", "", "path to the .env file")
	var kind string
	flag.StringVar(&kind, "db", "postgres", "database to start: postgres or mariadb")
	flag.Parse()

	usage := `
Start a throwaway database container for local development and print its DATABASE_URL.
The container is removed on SIGINT or SIGTERM.

Usage:

testcontainers [-h] [-f ENV_FILE_PATH] [-db postgres|mariadb]

ENV_FILE_PATH: path to a .env file, e.g. to set DB_IMAGE

example
  testcontainers -db mariadb -f /path/to/something/.env
`
	if showHelp {
		fmt.Println(usage)
		return
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)

	if envFilename != "" {
		log.WithField("file", envFilename).Info("Loading environment variables")
		if err := godotenv.Load(envFilename); err != nil {
			log.Fatalf("Failed to load environment variables: %v", err)
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	dc, err := testutil.StartDatabase(ctx, kind)
	if err != nil {
		log.Fatalf("Failed to start %s container: %v", kind, err)
	}

	fmt.Fprintf(os.Stdout, "DATABASE_URL=%s", dc.URL)

	<-ctx.Done()
	log.WithField("db", kind).Info("Received shutdown signal, terminating container")
	if err := dc.Terminate(context.Background()); err != nil {
		log.Fatalf("Failed to terminate container: %v", err)
	}
}
