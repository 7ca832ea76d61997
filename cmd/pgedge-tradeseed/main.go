// Package main is the entry point for pgedge-tradeseed.
package main

import (
	"fmt"
	"os"

	"github.com/pgEdge/pgedge-tradeseed/internal/cli"

	// Register storage backends
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/cassandra"
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/clickhouse"
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/memory"
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/postgres"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
