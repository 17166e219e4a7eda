package statements

import (
	"context"
	"errors"
	"fmt"

	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
)

// Quote is an intraday market quote.
type Quote struct {
	Last decimal.Decimal
}

// Instrument is a tradable instrument with live market data.
type Instrument interface {
	IntradayQuote(ctx context.Context) (Quote, error)
	ShortName(ctx context.Context) (string, error)
}

// BondInstrument is an Instrument whose price is quoted in percent of a notional.
type BondInstrument interface {
	Instrument
	Bond(ctx context.Context) (Bond, error)
}

// Bond gives the amortization and coupon state of one bond.
type Bond interface {
	NotionalOn(on date.Date) decimal.Decimal
	AccruedInterestOn(on date.Date) decimal.Decimal
}

// ValuationInput gathers what Value needs.
type ValuationInput struct {
	Snapshot    *Snapshot
	Domestic    string
	On          date.Date
	EquityVenue string                // cash flow venue of the equity market
	FxVenue     string                // cash flow venue of the currency market
	Rates       map[string]Instrument // currency -> instrument quoting it in domestic
	Instruments map[string]Instrument // ISIN -> instrument
}

// VenueValue is the valuation of the activity on one venue, in domestic currency.
type VenueValue struct {
	Paid      Money   // net paid in trades, fees included
	Fees      Money   // fees paid in trades
	Inflow    Money   // own money brought to the venue
	Remaining Money   // free cash on the venue, not engaged in trades
	Value     Money   // current value of the positions
	Return    Percent // (|Value+Remaining| / |Inflow|) - 1
	Earned    Money   // |Value+Remaining| - |Inflow|
}

// HoldingValue is the valuation of a non zero position.
type HoldingValue struct {
	ISIN   string
	Name   string
	Shares Quantity
	Last   decimal.Decimal
	Value  Money
}

// Valuation is the value of an account history at current market prices.
type Valuation struct {
	Domestic string
	On       date.Date
	Fx       VenueValue
	Equity   VenueValue
	Holdings []HoldingValue
	Total    VenueValue
}

// Value values a merged snapshot at current market prices.
//
// Only non zero positions are quoted.
func Value(ctx context.Context, in ValuationInput) (*Valuation, error) {
	s, domestic := in.Snapshot, in.Domestic
	cf := CashflowTotals(s)
	fx := FxTotals(s, domestic)
	eq := EquityTotals(s, domestic)

	v := &Valuation{Domestic: domestic, On: in.On}

	// currency market
	fxValue := M(0, domestic)
	for _, ccy := range fx.Net.Currencies() {
		if ccy == domestic {
			continue
		}
		amt := fx.Net[ccy]
		if amt.IsZero() {
			continue
		}
		instr, ok := in.Rates[ccy]
		if !ok {
			return nil, fmt.Errorf("not supported currency %q", ccy)
		}
		spot, err := instr.IntradayQuote(ctx)
		if err != nil {
			return nil, fmt.Errorf("cannot quote %s: %w", ccy, err)
		}
		fxValue = fxValue.Add(M(amt.Decimal().Mul(spot.Last), domestic))
	}
	v.Fx = venueValue(fx.Net.Get(domestic), fx.Fees, cf.Total.Get(in.FxVenue, domestic), cf.OwnMoney.Get(in.FxVenue, domestic), fxValue)

	// equity market
	eqValue := M(0, domestic)
	for _, isin := range eq.Shares.ISINs() {
		h, err := valueHolding(ctx, in, isin, eq.Shares[isin])
		if err != nil {
			return nil, err
		}
		v.Holdings = append(v.Holdings, h)
		eqValue = eqValue.Add(h.Value)
	}
	v.Equity = venueValue(eq.Paid.Get(domestic), eq.Fees, cf.Total.Get(in.EquityVenue, domestic), cf.OwnMoney.Get(in.EquityVenue, domestic), eqValue)

	// portfolio
	total := v.Fx.Value.Add(v.Fx.Remaining).Add(v.Equity.Value).Add(v.Equity.Remaining)
	inflow := v.Fx.Inflow.Add(v.Equity.Inflow)
	v.Total = VenueValue{
		Paid:      v.Fx.Paid.Add(v.Equity.Paid),
		Fees:      v.Fx.Fees.Add(v.Equity.Fees),
		Inflow:    inflow,
		Remaining: v.Fx.Remaining.Add(v.Equity.Remaining),
		Value:     v.Fx.Value.Add(v.Equity.Value),
		Return:    ratioReturn(total.Decimal(), inflow.Decimal()),
		Earned:    total.Abs().Sub(inflow.Abs()),
	}
	return v, nil
}

// venueValue derives remaining cash, return and earnings of a venue.
func venueValue(paid, fees, cash, inflow, value Money) VenueValue {
	remaining := cash.Sub(paid.Abs())
	worth := value.Add(remaining)
	return VenueValue{
		Paid:      paid,
		Fees:      fees,
		Inflow:    inflow,
		Remaining: remaining,
		Value:     value,
		Return:    ratioReturn(worth.Decimal(), inflow.Decimal()),
		Earned:    worth.Abs().Sub(inflow.Abs()),
	}
}

func valueHolding(ctx context.Context, in ValuationInput, isin string, shares Quantity) (HoldingValue, error) {
	instr, ok := in.Instruments[isin]
	if !ok {
		return HoldingValue{}, fmt.Errorf("no instrument for %s", isin)
	}
	name, err := instr.ShortName(ctx)
	if err != nil {
		return HoldingValue{}, fmt.Errorf("cannot resolve name of %s: %w", isin, err)
	}
	quote, err := instr.IntradayQuote(ctx)
	if err != nil {
		return HoldingValue{}, fmt.Errorf("cannot quote %s: %w", isin, err)
	}
	if quote.Last.IsZero() {
		return HoldingValue{}, errors.New("no trade yet for " + isin)
	}
	h := HoldingValue{ISIN: isin, Name: name, Shares: shares, Last: quote.Last}

	n := shares.Decimal()
	bi, isBond := instr.(BondInstrument)
	if !isBond {
		h.Value = M(n.Mul(quote.Last), in.Domestic)
		return h, nil
	}
	bond, err := bi.Bond(ctx)
	if err != nil {
		return HoldingValue{}, fmt.Errorf("cannot load bond %s: %w", isin, err)
	}
	// bonds are quoted in percent of their current notional. Accrued interest
	// adds to the value of long and short positions alike.
	price := bond.NotionalOn(in.On).Mul(quote.Last).Div(decimal.NewFromInt(100))
	value := price.Mul(n).Add(bond.AccruedInterestOn(in.On).Mul(n.Abs()))
	h.Value = M(value, in.Domestic)
	return h, nil
}
