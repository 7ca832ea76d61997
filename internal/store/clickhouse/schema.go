package clickhouse

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

// Decimal(18, 2) holds the largest amount (5000 shares at 100000.00).
func schemaSQL(database string) []string {
	return []string{
		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s.accounts_by_user (
    username       String,
    account_number String,
    cash_balance   Decimal(18, 2),
    name           String
) ENGINE = ReplacingMergeTree
ORDER BY (username, account_number)`, database),

		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s.positions_by_account (
    account  String,
    symbol   String,
    quantity Decimal(18, 2)
) ENGINE = ReplacingMergeTree
ORDER BY (account, symbol)`, database),

		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s.trades_by_a_d (
    account  String,
    trade_id UUID,
    type     LowCardinality(String),
    symbol   LowCardinality(String),
    shares   Decimal(18, 2),
    price    Decimal(18, 2),
    amount   Decimal(18, 2)
) ENGINE = ReplacingMergeTree
ORDER BY (account, trade_id)`, database),

		fmt.Sprintf(`
CREATE TABLE IF NOT EXISTS %s.seed_metadata (
    key   String,
    value String
) ENGINE = ReplacingMergeTree
ORDER BY key`, database),
	}
}
