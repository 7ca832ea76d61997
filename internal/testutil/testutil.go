//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package testutil provides utilities for integration testing.
package testutil

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	// TestKeyspacePrefix is the prefix for test keyspaces.
	TestKeyspacePrefix = "tradeseed_test_"

	// Images started when no external server is configured.
	PostgresImage   = "postgres:16-alpine"
	CassandraImage  = "cassandra:4.1"
	ClickHouseImage = "clickhouse/clickhouse-server:24.1-alpine"
)

// Environment variables naming an existing server to test against instead of
// starting a container.
const (
	PostgresEnv   = "TRADESEED_TEST_POSTGRES"
	CassandraEnv  = "TRADESEED_TEST_CASSANDRA"
	ClickHouseEnv = "TRADESEED_TEST_CLICKHOUSE"
)

// RandomKeyspace returns a fresh keyspace name for one test.
func RandomKeyspace(t *testing.T) string {
	t.Helper()

	randomBytes := make([]byte, 6)
	if _, err := rand.Read(randomBytes); err != nil {
		t.Fatalf("Failed to generate random keyspace name: %v", err)
	}
	return TestKeyspacePrefix + hex.EncodeToString(randomBytes)
}

// PostgresAvailable checks if the PostgreSQL server in connStr answers.
func PostgresAvailable(connStr string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		return false
	}
	defer pool.Close()

	return pool.Ping(ctx) == nil
}

// StartPostgres returns a connection string for a PostgreSQL server: the one
// named by PostgresEnv when it answers, otherwise a container that is
// terminated when the test ends.
func StartPostgres(t *testing.T) string {
	t.Helper()
	skipInShortMode(t)

	if connStr := os.Getenv(PostgresEnv); connStr != "" && PostgresAvailable(connStr) {
		return connStr
	}

	ctx := context.Background()
	container, err := postgres.Run(ctx, PostgresImage,
		postgres.WithDatabase("tradeseed"),
		postgres.WithUsername("tradeseed"),
		postgres.WithPassword("tradeseed"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}
	terminateOnCleanup(t, container)

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get postgres connection string: %v", err)
	}
	return connStr
}

// StartCassandra returns a cassandra:// connection string for a single node
// cluster.
func StartCassandra(t *testing.T) string {
	t.Helper()
	skipInShortMode(t)

	if connStr := os.Getenv(CassandraEnv); connStr != "" {
		return connStr
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        CassandraImage,
			ExposedPorts: []string{"9042/tcp"},
			Env: map[string]string{
				"MAX_HEAP_SIZE": "512M",
				"HEAP_NEWSIZE":  "128M",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("Starting listening for CQL clients").
					WithStartupTimeout(3*time.Minute),
				wait.ForListeningPort("9042/tcp"),
			),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start cassandra container: %v", err)
	}
	terminateOnCleanup(t, container)

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "9042/tcp")
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}
	return fmt.Sprintf("cassandra://%s:%s?consistency=one", host, port.Port())
}

// StartClickHouse returns a clickhouse:// connection string.
func StartClickHouse(t *testing.T) string {
	t.Helper()
	skipInShortMode(t)

	if connStr := os.Getenv(ClickHouseEnv); connStr != "" {
		return connStr
	}

	ctx := context.Background()
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        ClickHouseImage,
			ExposedPorts: []string{"9000/tcp", "8123/tcp"},
			Env: map[string]string{
				"CLICKHOUSE_USER":     "default",
				"CLICKHOUSE_PASSWORD": "",
			},
			WaitingFor: wait.ForAll(
				wait.ForLog("Application: Ready for connections").
					WithStartupTimeout(60*time.Second),
				wait.ForListeningPort("9000/tcp"),
			),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start clickhouse container: %v", err)
	}
	terminateOnCleanup(t, container)

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	port, err := container.MappedPort(ctx, "9000/tcp")
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}
	return fmt.Sprintf("clickhouse://default@%s:%s", host, port.Port())
}

func terminateOnCleanup(t *testing.T, container testcontainers.Container) {
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: Failed to terminate container: %v", err)
		}
	})
}

func skipInShortMode(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
}
