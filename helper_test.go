package statements

import (
	"testing"
	"time"

	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
)

// RUB is a helper for test to create roubles from const
func RUB(v float64) Money { return M(v, "RUB") }

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// D is a helper for test to create a decimal from const
func D(v float64) decimal.Decimal { return decimal.NewFromFloat(v) }

// at returns a trade time on day d.
func at(d string) time.Time { return date.MustParse(d).Time().Add(10 * time.Hour) }

// buyShares returns a valid BUY of n shares at price p.
func buyShares(id, isin string, n, p float64) EquityTrade {
	return EquityTrade{
		TradeTime:    at("2021-02-01"),
		SettleDate:   date.MustParse("2021-02-03"),
		SecurityName: isin,
		ISIN:         isin,
		Currency:     "RUB",
		Side:         Buy,
		Shares:       Q(n),
		UnitPrice:    D(p),
		Amount:       RUB(-n * p),
		BrokerFee:    RUB(-1),
		ExchangeFee:  RUB(-0.5),
		TradeID:      id,
	}
}

// sellShares returns a valid SELL of n shares at price p.
func sellShares(id, isin string, n, p float64) EquityTrade {
	t := buyShares(id, isin, n, p)
	t.Side = Sell
	t.Shares = Q(-n)
	t.Amount = RUB(n * p)
	return t
}

// buyUSD returns a valid USDRUB BUY of n dollars at strike.
func buyUSD(id string, n, strike float64) FxTrade {
	return FxTrade{
		TradeTime:   at("2021-02-01"),
		SettleDate:  date.MustParse("2021-02-02"),
		Instrument:  "USDRUB_TOM",
		Side:        Buy,
		Strike:      D(strike),
		Underlying:  USD(n),
		Settlement:  RUB(-n * strike),
		BrokerFee:   RUB(-2),
		ExchangeFee: RUB(-1),
		TradeID:     id,
	}
}

// cashflow returns a valid Cashflow or fails the test.
func cashflow(t *testing.T, on, venue, description, currency string, credit, debit float64) Cashflow {
	t.Helper()
	c, err := NewCashflow(date.MustParse(on), venue, description, currency, D(credit), D(debit))
	if err != nil {
		t.Fatalf("NewCashflow() unexpected error: %v", err)
	}
	return c
}
