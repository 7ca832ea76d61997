//-------------------------------------------------------------------------
//
// pgEdge Trade Seeder
//
// Portions copyright (c) 2025 - 2026, pgEdge, Inc.
// This software is released under The PostgreSQL License
//
//-------------------------------------------------------------------------

// Package report renders lookup results for the terminal.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"

	"gopkg.in/yaml.v3"

	"github.com/pgEdge/pgedge-tradeseed/internal/store"
)

// Output formats.
const (
	FormatText = "text"
	FormatYAML = "yaml"
	FormatJSON = "json"
)

// Formats lists the supported output formats.
var Formats = []string{FormatText, FormatYAML, FormatJSON}

// accountsView is the structured form of an account lookup. Balances are
// rendered with two decimals.
type accountsView struct {
	Username string        `json:"username" yaml:"username"`
	Accounts []accountView `json:"accounts" yaml:"accounts"`
}

type accountView struct {
	AccountNumber string `json:"account_number" yaml:"account_number"`
	Name          string `json:"name" yaml:"name"`
	CashBalance   string `json:"cash_balance" yaml:"cash_balance"`
}

func newAccountsView(username string, records []store.AccountRecord) accountsView {
	view := accountsView{Username: username, Accounts: make([]accountView, 0, len(records))}
	for _, r := range records {
		view.Accounts = append(view.Accounts, accountView{
			AccountNumber: r.AccountNumber,
			Name:          r.Name,
			CashBalance:   r.CashBalance.StringFixed(2),
		})
	}
	return view
}

// WriteAccounts renders the accounts of one username.
func WriteAccounts(w io.Writer, username string, records []store.AccountRecord, format string) error {
	switch format {
	case FormatText, "":
		for _, r := range records {
			if _, err := fmt.Fprintf(w, "=== Account: %s ===\n- Cash Balance: %s\n",
				r.AccountNumber, r.CashBalance.StringFixed(2)); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		return writeYAML(w, newAccountsView(username, records))
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(newAccountsView(username, records))
	default:
		return fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
}

// WriteMetadata renders seeding metadata sorted by key.
func WriteMetadata(w io.Writer, metadata map[string]string, format string) error {
	switch format {
	case FormatText, "":
		for _, key := range slices.Sorted(maps.Keys(metadata)) {
			if _, err := fmt.Fprintf(w, "%-14s %s\n", key+":", metadata[key]); err != nil {
				return err
			}
		}
		return nil
	case FormatYAML:
		return writeYAML(w, metadata)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(metadata)
	default:
		return fmt.Errorf("unknown format %q (want one of %v)", format, Formats)
	}
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
