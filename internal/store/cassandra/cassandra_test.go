package cassandra

import (
	"testing"
	"time"

	"github.com/gocql/gocql"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/inf.v0"

	"github.com/pgEdge/pgedge-tradeseed/internal/timeuuid"
)

func TestDecimalConversion(t *testing.T) {
	tests := []struct {
		name      string
		value     decimal.Decimal
		wantScale inf.Scale
		wantText  string
	}{
		{name: "minimum cash", value: decimal.RequireFromString("0.10"), wantScale: 2, wantText: "0.10"},
		{name: "maximum price", value: decimal.RequireFromString("100000.00"), wantScale: 2, wantText: "100000.00"},
		{name: "whole shares", value: decimal.NewFromInt(5000), wantScale: 0, wantText: "5000"},
		{
			name:      "amount",
			value:     decimal.NewFromInt(4999).Mul(decimal.RequireFromString("99999.99")),
			wantScale: 2,
			wantText:  "499899950.01",
		},
		{name: "zero", value: decimal.Zero, wantScale: 0, wantText: "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dec := toInf(tt.value)
			assert.Equal(t, tt.wantScale, dec.Scale())
			assert.Equal(t, tt.wantText, dec.String())

			back := fromInf(dec)
			assert.True(t, tt.value.Equal(back), "got %s, want %s", back, tt.value)
			assert.Equal(t, tt.value.Exponent(), back.Exponent())
		})
	}
}

func TestBindValues(t *testing.T) {
	id := timeuuid.FromTime(time.Date(2015, 6, 1, 0, 0, 0, 0, time.UTC))
	shares := decimal.NewFromInt(12)
	price := decimal.RequireFromString("1234.56")

	out := bindValues([]any{"acct", id, "buy", "AMZN", shares, price, shares.Mul(price)})
	require.Len(t, out, 7)
	assert.Equal(t, "acct", out[0])
	assert.Equal(t, "buy", out[2])
	assert.Equal(t, "AMZN", out[3])

	bound, ok := out[1].(gocql.UUID)
	require.True(t, ok, "trade id bound as %T", out[1])
	assert.Equal(t, [16]byte(id), [16]byte(bound))
	assert.Equal(t, 1, bound.Version())
	assert.True(t, bound.Time().Equal(timeuuid.Time(id)))

	for i, want := range []string{"12", "1234.56", "14814.72"} {
		dec, ok := out[4+i].(*inf.Dec)
		require.True(t, ok, "column %d bound as %T", 4+i, out[4+i])
		assert.Equal(t, want, dec.String())
	}
}

func TestBindValuesPassThrough(t *testing.T) {
	row := []any{"key", 7, nil, uuid.Nil.String()}
	assert.Equal(t, row, bindValues(row))
}
