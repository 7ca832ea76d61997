package report

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

var records = []store.AccountRecord{
	{
		Username:      "mike",
		AccountNumber: "6f1c7d3e-1b7a-4a43-9f0e-1d2c3b4a5f60",
		Name:          "Michael Jones",
		CashBalance:   decimal.RequireFromString("1520.5"),
	},
	{
		Username:      "mike",
		AccountNumber: "9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d",
		Name:          "Michael Jones",
		CashBalance:   decimal.RequireFromString("0.10"),
	},
}

func TestWriteAccountsText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, "mike", records, FormatText))

	want := "=== Account: 6f1c7d3e-1b7a-4a43-9f0e-1d2c3b4a5f60 ===\n" +
		"- Cash Balance: 1520.50\n" +
		"=== Account: 9a8b7c6d-5e4f-4a3b-8c2d-1e0f9a8b7c6d ===\n" +
		"- Cash Balance: 0.10\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, WriteAccounts(&buf, "nobody", nil, FormatText))
	assert.Empty(t, buf.String())
}

func TestWriteAccountsYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, "mike", records, FormatYAML))

	var got accountsView
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "mike", got.Username)
	require.Len(t, got.Accounts, 2)
	assert.Equal(t, "1520.50", got.Accounts[0].CashBalance)
	assert.Equal(t, "Michael Jones", got.Accounts[1].Name)
}

func TestWriteAccountsJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteAccounts(&buf, "mike", nil, FormatJSON))

	var got map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "mike", got["username"])
	assert.Equal(t, []any{}, got["accounts"])
}

func TestWriteAccountsUnknownFormat(t *testing.T) {
	err := WriteAccounts(&bytes.Buffer{}, "mike", records, "xml")
	require.Error(t, err)
}

func TestWriteMetadata(t *testing.T) {
	md := map[string]string{"version": "0.3.0", "accounts": "10"}

	var buf bytes.Buffer
	require.NoError(t, WriteMetadata(&buf, md, FormatText))
	assert.Equal(t, "accounts:      10\nversion:       0.3.0\n", buf.String())

	buf.Reset()
	require.NoError(t, WriteMetadata(&buf, md, FormatYAML))
	var got map[string]string
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, md, got)

	buf.Reset()
	require.NoError(t, WriteMetadata(&buf, md, FormatJSON))
	got = nil
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, md, got)
}
