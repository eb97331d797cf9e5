package common

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/modules/rabbitmq"
	"github.com/testcontainers/testcontainers-go/wait"
)

// skipWithoutContainers skips container backed tests under -short.
func skipWithoutContainers(t *testing.T) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}
}

func TestRabbitMQ(t *testing.T) string {
	skipWithoutContainers(t)
	ctx := context.Background()

	container, err := rabbitmq.Run(ctx, "rabbitmq:3.12.11-management-alpine", rabbitmq.WithAdminUsername("guest"), rabbitmq.WithAdminPassword("guest"))
	if err != nil {
		t.Fatalf("could not start rabbitmq container: %v", err)
	}

	connURL, err := container.AmqpURL(ctx)
	if err != nil {
		t.Fatalf("could not get rabbitmq connection URL: %v", err)
	}

	t.Cleanup(func() {
		if err := container.Terminate(ctx); err != nil {
			t.Fatalf("could not terminate container: %v", err)
		}
	})

	return connURL
}

// startPostgres runs a postgres container and returns its connection string.
func startPostgres(t *testing.T) string {
	skipWithoutContainers(t)
	ctx := context.Background()

	c, err := postgres.Run(ctx,
		"docker.io/postgres:14.11-bookworm",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(30*time.Second)))
	if err != nil {
		t.Fatalf("could not start postgres container: %v", err)
	}

	t.Cleanup(func() {
		c.Terminate(ctx)
	})

	connURL, err := c.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("failed to get connection string: %s", err)
	}

	return connURL
}

func openPostgres(t *testing.T, connURL string) *sql.DB {
	db, err := sql.Open("postgres", connURL)
	if err != nil {
		t.Fatalf("could not open database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}

// TestDB starts a postgres container and migrates it. filepath changes with
// the caller location and has the form "file://../../migrations".
func TestDB(filepath string, t *testing.T) *sql.DB {
	connURL := startPostgres(t)

	m, err := Migrate(filepath, connURL)
	if err != nil {
		t.Fatalf("could not run migrations: %v", err)
	}
	t.Cleanup(func() {
		m.Drop()
	})

	return openPostgres(t, connURL)
}

// TestEmptyDB starts a postgres container without running the migrations.
func TestEmptyDB(t *testing.T) *sql.DB {
	return openPostgres(t, startPostgres(t))
}

// TestSQLite opens a SQLite file in a temporary directory.
func TestSQLite(t *testing.T) *sql.DB {
	t.Helper()

	db, err := OpenSQLite(t.TempDir() + "/blogshelf.db")
	if err != nil {
		t.Fatalf("could not open sqlite database: %v", err)
	}

	t.Cleanup(func() {
		db.Close()
	})

	return db
}
