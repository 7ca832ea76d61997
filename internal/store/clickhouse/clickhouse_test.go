package clickhouse

import (
	"testing"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDSN(t *testing.T) {
	tests := []struct {
		name     string
		dsn      string
		addr     string
		user     string
		password string
		database string
	}{
		{name: "host only", dsn: "clickhouse://localhost", addr: "localhost:9000"},
		{name: "with port", dsn: "clickhouse://db:19000", addr: "db:19000"},
		{
			name: "full", dsn: "clickhouse://seed:secret@db:9440/analytics",
			addr: "db:9440", user: "seed", password: "secret", database: "analytics",
		},
		{name: "user without password", dsn: "clickhouse://default@db", addr: "db:9000", user: "default"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts, err := parseDSN(tt.dsn)
			require.NoError(t, err)
			assert.Equal(t, clickhouse.Native, opts.Protocol)
			assert.Equal(t, []string{tt.addr}, opts.Addr)
			assert.Equal(t, tt.user, opts.Auth.Username)
			assert.Equal(t, tt.password, opts.Auth.Password)
			assert.Equal(t, tt.database, opts.Auth.Database)
		})
	}
}

func TestParseDSNErrors(t *testing.T) {
	for _, dsn := range []string{"postgres://localhost/db", "clickhouse://", "::not a url"} {
		_, err := parseDSN(dsn)
		assert.Error(t, err, dsn)
	}
}

func TestSchemaSQL(t *testing.T) {
	ddl := schemaSQL("trading")
	require.Len(t, ddl, 4)
	for _, stmt := range ddl {
		assert.Contains(t, stmt, "CREATE TABLE IF NOT EXISTS trading.")
		assert.Contains(t, stmt, "ENGINE = ReplacingMergeTree")
	}
	assert.Contains(t, ddl[0], "ORDER BY (username, account_number)")
	assert.Contains(t, ddl[2], "trade_id UUID")
	assert.Contains(t, ddl[2], "ORDER BY (account, trade_id)")
}
