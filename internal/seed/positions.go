package seed

import (
	"fmt"

	"github.com/pgEdge/pgedge-tradeseed/internal/datagen"
)

type positionKey struct {
	account string
	symbol  string
}

// GeneratePositions draws the configured number of positions, at most one
// per (account, symbol) pair. Pairs are rejection sampled against the set
// already drawn. When the request exceeds the number of distinct pairs it
// fails with ErrConstraintUnsatisfiable before drawing anything.
func (g *Generator) GeneratePositions(accounts []string) ([]Position, error) {
	want := g.cfg.Positions
	if want == 0 {
		return nil, nil
	}
	if len(accounts) == 0 {
		return nil, invalidf("positions need at least one account")
	}

	distinctAccounts := len(distinct(accounts))
	if space := distinctAccounts * len(g.instruments); want > space {
		return nil, unsatisfiable(want, distinctAccounts, len(g.instruments))
	}

	seen := make(map[positionKey]struct{}, want)
	positions := make([]Position, 0, want)
	for len(positions) < want {
		key := positionKey{
			account: datagen.Choose(g.faker, accounts),
			symbol:  datagen.Choose(g.faker, g.instruments),
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		positions = append(positions, Position{
			Account:  key.account,
			Symbol:   key.symbol,
			Quantity: g.faker.Count(minPositionQuantity, maxPositionQuantity),
		})
	}
	return positions, nil
}

func unsatisfiable(positions, accounts, symbols int) error {
	return fmt.Errorf("%w: %d positions requested but only %d accounts x %d symbols = %d distinct pairs exist",
		ErrConstraintUnsatisfiable, positions, accounts, symbols, accounts*symbols)
}
