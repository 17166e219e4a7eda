package statements

import (
	"maps"
	"slices"
	"strings"

	"github.com/shopspring/decimal"
)

// Balances holds an amount per currency. A missing currency is worth zero.
type Balances map[string]Money

// Add accumulates m into its currency.
func (b Balances) Add(m Money) { b[m.Currency()] = b[m.Currency()].Add(m) }

// Get returns the balance in currency, zero if missing.
func (b Balances) Get(currency string) Money {
	if m, ok := b[currency]; ok {
		return m
	}
	return M(0, currency)
}

// Currencies returns the sorted list of currencies.
func (b Balances) Currencies() []string { return slices.Sorted(maps.Keys(b)) }

// prune removes currencies worth exactly zero.
func (b Balances) prune() {
	maps.DeleteFunc(b, func(_ string, m Money) bool { return m.IsZero() })
}

// VenueBalances holds Balances per trading venue.
type VenueBalances map[string]Balances

// Add accumulates m into venue.
func (v VenueBalances) Add(venue string, m Money) {
	b, ok := v[venue]
	if !ok {
		b = make(Balances)
		v[venue] = b
	}
	b.Add(m)
}

// Get returns the balance of venue in currency, zero if missing.
func (v VenueBalances) Get(venue, currency string) Money { return v[venue].Get(currency) }

// Venues returns the sorted list of venues.
func (v VenueBalances) Venues() []string { return slices.Sorted(maps.Keys(v)) }

// Positions holds a number of shares per ISIN.
type Positions map[string]Quantity

// Add accumulates q into isin.
func (p Positions) Add(isin string, q Quantity) { p[isin] = p[isin].Add(q) }

// ISINs returns the sorted list of ISINs.
func (p Positions) ISINs() []string { return slices.Sorted(maps.Keys(p)) }

func (p Positions) prune() {
	maps.DeleteFunc(p, func(_ string, q Quantity) bool { return q.IsZero() })
}

// ownMoneyDescriptions are the exact descriptions of external deposits and withdrawals.
var ownMoneyDescriptions = []string{"Зачисление д/с", "Списание д/с"}

// ownMoneyTransfer is contained in the description of transfers between accounts.
const ownMoneyTransfer = "Перевод д/с"

// IsOwnMoney reports whether c moves the client's own money in or out of the
// account, as opposed to flows generated by trading (coupons, taxes...).
func IsOwnMoney(c Cashflow) bool {
	return slices.Contains(ownMoneyDescriptions, c.Description) || strings.Contains(c.Description, ownMoneyTransfer)
}

// CashflowSummary holds cash flow totals per venue and currency.
type CashflowSummary struct {
	Total    VenueBalances // net of all cash flows
	OwnMoney VenueBalances // net of own money cash flows only
}

// CashflowTotals sums the net cash flows of s per venue and currency.
func CashflowTotals(s *Snapshot) CashflowSummary {
	sum := CashflowSummary{Total: make(VenueBalances), OwnMoney: make(VenueBalances)}
	for _, c := range s.Cashflows {
		sum.Total.Add(c.Venue, c.Net)
		if IsOwnMoney(c) {
			sum.OwnMoney.Add(c.Venue, c.Net)
		}
	}
	return sum
}

// FxSummary holds currency exchange totals.
type FxSummary struct {
	// Net is the signed amount per currency, fees included in the domestic currency.
	Net Balances
	// Fees is the sum of all fees, never positive, in the domestic currency.
	Fees Money
	// AverageStrike is the average strike weighted by underlying amount, per
	// non domestic underlying currency.
	AverageStrike map[string]decimal.Decimal
}

// FxTotals sums the currency exchanges of s. Fees are booked in domestic.
func FxTotals(s *Snapshot, domestic string) FxSummary {
	sum := FxSummary{Net: make(Balances), AverageStrike: make(map[string]decimal.Decimal)}
	fees := M(0, domestic)
	weighted := make(map[string]decimal.Decimal) // Σ underlying × strike
	volume := make(map[string]decimal.Decimal)   // Σ underlying
	for _, t := range s.FxTrades {
		sum.Net.Add(t.Underlying)
		sum.Net.Add(t.Settlement)
		fees = fees.Add(t.Fees().In(domestic))

		und := t.UnderlyingCurrency()
		weighted[und] = weighted[und].Add(t.Underlying.Decimal().Mul(t.Strike))
		volume[und] = volume[und].Add(t.Underlying.Decimal())
	}
	sum.Fees = fees
	sum.Net.Add(sum.Fees)

	for und, v := range volume {
		if und == domestic || v.IsZero() {
			continue
		}
		sum.AverageStrike[und] = weighted[und].Div(v)
	}
	return sum
}

// EquitySummary holds equity trades totals.
type EquitySummary struct {
	// Shares is the position per ISIN. Closed positions are absent.
	Shares Positions
	// Paid is the net of amounts and accrued coupons per currency, fees
	// included in the domestic currency. Zero balances are absent.
	Paid Balances
	// Fees is the sum of all fees, never positive, in the domestic currency.
	Fees Money
}

// EquityTotals sums the equity trades of s. Fees are booked in domestic.
func EquityTotals(s *Snapshot, domestic string) EquitySummary {
	sum := EquitySummary{Shares: make(Positions), Paid: make(Balances)}
	fees := M(0, domestic)
	for _, t := range s.EquityTrades {
		sum.Shares.Add(t.ISIN, t.Shares)
		sum.Paid.Add(t.Amount.Add(t.AccruedCoupon))
		fees = fees.Add(t.Fees().In(domestic))
	}
	sum.Fees = fees
	sum.Paid.Add(sum.Fees)

	sum.Shares.prune()
	sum.Paid.prune()
	return sum
}
