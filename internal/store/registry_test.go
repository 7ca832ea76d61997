package store_test

import (
	"context"
	"testing"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
	// Import backend packages to trigger their init() functions which register the drivers
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/cassandra"
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/clickhouse"
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/memory"
	_ "github.com/pgEdge/pgedge-tradeseed/internal/store/postgres"
)

var knownBackends = []string{"cassandra", "clickhouse", "memory", "postgres"}

func TestGet(t *testing.T) {
	for _, name := range knownBackends {
		t.Run(name, func(t *testing.T) {
			d, err := store.Get(name)
			if err != nil {
				t.Fatalf("Failed to get backend '%s': %v", name, err)
			}
			if d.Name() != name {
				t.Errorf("Backend name mismatch: expected '%s', got '%s'", name, d.Name())
			}
			if d.Description() == "" {
				t.Error("Backend description should not be empty")
			}
		})
	}
}

func TestGetInvalidBackend(t *testing.T) {
	if _, err := store.Get("nonexistent"); err == nil {
		t.Error("Expected error for nonexistent backend, got nil")
	}
	if _, err := store.Get(""); err == nil {
		t.Error("Expected error for empty backend name, got nil")
	}
}

func TestList(t *testing.T) {
	got := store.List()
	if len(got) != len(knownBackends) {
		t.Fatalf("List returned %d backends, want %d: %v", len(got), len(knownBackends), got)
	}
	for i, name := range knownBackends {
		if got[i] != name {
			t.Errorf("List()[%d] = %s, want %s", i, got[i], name)
		}
	}
}

func TestAll(t *testing.T) {
	drivers := store.All()
	if len(drivers) != len(knownBackends) {
		t.Fatalf("All returned %d drivers", len(drivers))
	}
	for i, d := range drivers {
		if d.Name() != knownBackends[i] {
			t.Errorf("All()[%d] = %s, want %s", i, d.Name(), knownBackends[i])
		}
	}
}

func TestOpenRejectsBadKeyspace(t *testing.T) {
	for _, name := range knownBackends {
		d, err := store.Get(name)
		if err != nil {
			t.Fatal(err)
		}
		if name == "memory" {
			continue
		}
		_, err = d.Open(context.Background(), store.Options{Connection: "x", Keyspace: "bad-name"})
		if err == nil {
			t.Errorf("%s: expected keyspace validation error", name)
		}
	}
}
