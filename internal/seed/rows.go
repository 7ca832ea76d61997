package seed

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Trade types.
const (
	TradeBuy  = "buy"
	TradeSell = "sell"
)

// Account is one accounts_by_user row.
type Account struct {
	Username      string
	AccountNumber string
	CashBalance   decimal.Decimal
	Name          string
}

// Values returns the row in InsertAccount column order.
func (a Account) Values() []any {
	return []any{a.Username, a.AccountNumber, a.CashBalance, a.Name}
}

// Position is one positions_by_account row.
type Position struct {
	Account  string
	Symbol   string
	Quantity decimal.Decimal
}

// Values returns the row in InsertPosition column order.
func (p Position) Values() []any {
	return []any{p.Account, p.Symbol, p.Quantity}
}

// Trade is one trades_by_a_d row. TradeID is a version 1 UUID.
type Trade struct {
	Account string
	TradeID uuid.UUID
	Type    string
	Symbol  string
	Shares  decimal.Decimal
	Price   decimal.Decimal
	Amount  decimal.Decimal
}

// Values returns the row in InsertTrade column order.
func (t Trade) Values() []any {
	return []any{t.Account, t.TradeID, t.Type, t.Symbol, t.Shares, t.Price, t.Amount}
}

type valuer interface {
	Values() []any
}

func toRows[T valuer](items []T) [][]any {
	rows := make([][]any, len(items))
	for i, item := range items {
		rows[i] = item.Values()
	}
	return rows
}
