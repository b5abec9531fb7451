package testutil

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	testDatabase = "starwars"
	testUser     = "starwars"
	testPassword = "starwars"
)

// DatabaseContainer is a throwaway database server and the DATABASE_URL reaching it
type DatabaseContainer struct {
	Container testcontainers.Container
	URL       string
}

// Terminate stops and removes the container
func (dc *DatabaseContainer) Terminate(ctx context.Context) error {
	if dc == nil || dc.Container == nil {
		return nil
	}
	return dc.Container.Terminate(ctx)
}

type databaseSetup struct {
	image   string
	port    string
	env     map[string]string
	waitLog string
	// times waitLog must appear; postgres logs it once for initdb and once when serving
	occurrences int
	url         func(host, port string) string
}

var databaseSetups = map[string]databaseSetup{
	"postgres": {
		image: "postgres:17-alpine",
		port:  "5432",
		env: map[string]string{
			"POSTGRES_DB":       testDatabase,
			"POSTGRES_USER":     testUser,
			"POSTGRES_PASSWORD": testPassword,
		},
		waitLog:     "database system is ready to accept connections",
		occurrences: 2,
		url: func(host, port string) string {
			return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable", testUser, testPassword, host, port, testDatabase)
		},
	},
	"mariadb": {
		image: "mariadb:11",
		port:  "3306",
		env: map[string]string{
			"MARIADB_ROOT_PASSWORD": testPassword,
			"MARIADB_DATABASE":      testDatabase,
			"MARIADB_USER":          testUser,
			"MARIADB_PASSWORD":      testPassword,
		},
		waitLog:     "ready for connections",
		occurrences: 1,
		url: func(host, port string) string {
			return fmt.Sprintf("mysql://%s:%s@%s:%s/%s", testUser, testPassword, host, port, testDatabase)
		},
	},
}

// StartDatabase starts a database container of the given kind (postgres or mariadb).
// DB_IMAGE overrides the default image.
func StartDatabase(ctx context.Context, kind string) (*DatabaseContainer, error) {
	setup, ok := databaseSetups[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported database container: %s", kind)
	}

	image := setup.image
	if override := os.Getenv("DB_IMAGE"); override != "" {
		image = override
	}

	tcpPort, err := nat.NewPort("tcp", setup.port)
	if err != nil {
		return nil, fmt.Errorf("failed to create DB port: %w", err)
	}

	ctr, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{string(tcpPort)},
			Env:          setup.env,
			WaitingFor: wait.ForAll(
				wait.ForLog(setup.waitLog).WithOccurrence(setup.occurrences),
				wait.ForListeningPort(tcpPort),
			).WithDeadline(90 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", kind, err)
	}

	host, err := ctr.Host(ctx)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	mapped, err := ctr.MappedPort(ctx, tcpPort)
	if err != nil {
		_ = ctr.Terminate(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	return &DatabaseContainer{Container: ctr, URL: setup.url(host, mapped.Port())}, nil
}
