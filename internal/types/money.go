// README: Common money value object used across modules.
package types

import "fmt"

// CurrencyEUR is the implicit currency of every estimate the API produces.
const CurrencyEUR = "EUR"

// Money is a whole-unit amount. Fractions are dropped when an estimate is
// converted, never rounded up.
type Money struct {
	Amount   int64
	Currency string
}

func EUR(amount float64) Money {
	return Money{Amount: int64(amount), Currency: CurrencyEUR}
}

func (m Money) String() string {
	return fmt.Sprintf("%d %s", m.Amount, m.Currency)
}

// Price is a fare that may be unknown. The zero value is unknown, so a missing
// estimate never reads as a free trip.
type Price struct {
	money Money
	known bool
}

func KnownPrice(m Money) Price {
	return Price{money: m, known: true}
}

func UnknownPrice() Price {
	return Price{}
}

func (p Price) Known() bool {
	return p.known
}

func (p Price) Money() (Money, bool) {
	return p.money, p.known
}

func (p Price) String() string {
	if !p.known {
		return UnknownLiteral
	}
	return p.money.String()
}
