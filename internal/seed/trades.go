package seed

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pgEdge/pgedge-tradeseed/internal/datagen"
	"github.com/pgEdge/pgedge-tradeseed/internal/timeuuid"
)

var tradeTypes = []string{TradeBuy, TradeSell}

// GenerateTrades draws the configured number of trades. Each trade falls on
// a random day of the window and is keyed by a version 1 UUID carrying that
// day's midnight as its timestamp; amount is shares * price, exact.
//
// Ids of one day differ only in their 14-bit clock sequence, which wraps in
// long runs, so ids are checked against the ones already issued. A trade
// drawn on a day whose ids are used up moves to the next day with room.
func (g *Generator) GenerateTrades(accounts []string) ([]Trade, error) {
	want := g.cfg.Trades
	if want == 0 {
		return nil, nil
	}
	if len(accounts) == 0 {
		return nil, invalidf("trades need at least one account")
	}

	issued := make(map[uuid.UUID]struct{}, want)
	perDay := make(map[time.Time]int)
	trades := make([]Trade, 0, want)
	for i := 0; i < want; i++ {
		day := g.openDay(g.faker.Day(g.cfg.WindowStart, g.windowDays), perDay)
		id, err := uniqueID(issued, day)
		if err != nil {
			return nil, err
		}
		perDay[day]++

		shares := g.faker.Count(minTradeShares, maxTradeShares)
		price := g.faker.Money(minTradePrice, maxTradePrice)

		trades = append(trades, Trade{
			Account: datagen.Choose(g.faker, accounts),
			TradeID: id,
			Type:    datagen.Choose(g.faker, tradeTypes),
			Symbol:  datagen.Choose(g.faker, g.instruments),
			Shares:  shares,
			Price:   price,
			Amount:  shares.Mul(price),
		})
	}
	return trades, nil
}

// openDay returns day, or the first day after it (wrapping to the window
// start) that has issued fewer than timeuuid.ClockSequences ids.
func (g *Generator) openDay(day time.Time, perDay map[time.Time]int) time.Time {
	for range g.windowDays {
		if perDay[day] < timeuuid.ClockSequences {
			return day
		}
		day = day.AddDate(0, 0, 1)
		if !day.Before(g.cfg.WindowStart.AddDate(0, 0, g.windowDays)) {
			day = g.cfg.WindowStart
		}
	}
	return day
}

// uniqueID returns a version 1 UUID for t that is not in issued and records
// it. One timestamp has at most timeuuid.ClockSequences distinct ids.
func uniqueID(issued map[uuid.UUID]struct{}, t time.Time) (uuid.UUID, error) {
	for range timeuuid.ClockSequences {
		id := timeuuid.FromTime(t)
		if _, dup := issued[id]; !dup {
			issued[id] = struct{}{}
			return id, nil
		}
	}
	return uuid.Nil, fmt.Errorf("%w: no unused trade id left for %s",
		ErrConstraintUnsatisfiable, t.Format(time.DateOnly))
}
