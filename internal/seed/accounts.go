package seed

import (
	"github.com/pgEdge/pgedge-tradeseed/internal/datagen"
)

// GenerateAccounts draws the configured number of accounts. Owners are
// sampled from the roster with replacement, so one username may own several
// accounts; every account number is a fresh UUID v4.
func (g *Generator) GenerateAccounts() []Account {
	accounts := make([]Account, 0, g.cfg.Accounts)
	for i := 0; i < g.cfg.Accounts; i++ {
		user := datagen.Choose(g.faker, g.cfg.Users)
		accounts = append(accounts, Account{
			Username:      user.Username,
			AccountNumber: g.faker.UUID(),
			CashBalance:   g.faker.Money(minCashBalance, maxCashBalance),
			Name:          user.Name,
		})
	}
	return accounts
}

// AccountNumbers returns the account numbers of accounts, in order.
func AccountNumbers(accounts []Account) []string {
	numbers := make([]string, len(accounts))
	for i, a := range accounts {
		numbers[i] = a.AccountNumber
	}
	return numbers
}
