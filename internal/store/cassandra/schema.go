package cassandra

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

func createKeyspaceCQL(keyspace string, replicationFactor int) string {
	return fmt.Sprintf(`
        CREATE KEYSPACE IF NOT EXISTS %s
        WITH replication = { 'class': 'SimpleStrategy', 'replication_factor': %d }`,
		keyspace, replicationFactor)
}

func schemaCQL(keyspace string) []string {
	return []string{
		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s.accounts_by_user (
        username TEXT,
        account_number TEXT,
        cash_balance DECIMAL,
        name TEXT STATIC,
        PRIMARY KEY ((username), account_number)
    )`, keyspace),

		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s.positions_by_account (
        account TEXT,
        symbol TEXT,
        quantity DECIMAL,
        PRIMARY KEY ((account), symbol)
    )`, keyspace),

		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s.trades_by_a_d (
        account TEXT,
        trade_id TIMEUUID,
        type TEXT,
        symbol TEXT,
        shares DECIMAL,
        price DECIMAL,
        amount DECIMAL,
        PRIMARY KEY ((account), trade_id)
    ) WITH CLUSTERING ORDER BY (trade_id DESC)`, keyspace),

		fmt.Sprintf(`
    CREATE TABLE IF NOT EXISTS %s.seed_metadata (
        key TEXT PRIMARY KEY,
        value TEXT
    )`, keyspace),
	}
}
