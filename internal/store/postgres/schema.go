package postgres

import (
	"fmt"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

var dropOrder = []string{
	store.TableTrades,
	store.TablePositions,
	store.TableAccounts,
	store.TableMetadata,
}

// schemaSQL returns the table DDL. PostgreSQL has no static columns or
// clustering order: name is stored per row and trades are ordered by the
// query.
func schemaSQL(table func(string) string) []string {
	return []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    username       TEXT NOT NULL,
    account_number TEXT NOT NULL,
    cash_balance   NUMERIC,
    name           TEXT,
    PRIMARY KEY (username, account_number)
)`, table(store.TableAccounts)),

		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    account  TEXT NOT NULL,
    symbol   TEXT NOT NULL,
    quantity NUMERIC,
    PRIMARY KEY (account, symbol)
)`, table(store.TablePositions)),

		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    account  TEXT NOT NULL,
    trade_id UUID NOT NULL,
    type     TEXT,
    symbol   TEXT,
    shares   NUMERIC,
    price    NUMERIC,
    amount   NUMERIC,
    PRIMARY KEY (account, trade_id)
)`, table(store.TableTrades)),

		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
)`, table(store.TableMetadata)),
	}
}
