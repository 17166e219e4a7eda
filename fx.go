package statements

import (
	"time"

	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
)

// FxTrade is a currency exchange.
//
// Instrument names like "USDRUB_TOM" carry the underlying currency (USD) and
// the settlement currency (RUB). A Buy receives Underlying and pays
// Settlement, a Sell does the opposite.
type FxTrade struct {
	TradeTime  time.Time
	SettleDate date.Date
	Instrument string
	Side       Side
	// Strike is the price of one unit of underlying in settlement currency.
	Strike      decimal.Decimal
	Underlying  Money // signed amount in the underlying currency
	Settlement  Money // signed amount in the settlement currency
	BrokerFee   Money
	ExchangeFee Money
	TradeID     string
	Comment     string
}

// UnderlyingCurrency returns the currency bought by a Buy.
func (t FxTrade) UnderlyingCurrency() string { return t.Underlying.Currency() }

// SettlementCurrency returns the currency paid by a Buy.
func (t FxTrade) SettlementCurrency() string { return t.Settlement.Currency() }

// Fees returns the sum of broker and exchange fees.
func (t FxTrade) Fees() Money { return t.BrokerFee.Add(t.ExchangeFee) }

// NewFxTrade creates an FxTrade from its signed amounts and checks its sign
// conventions.
func NewFxTrade(tradeTime time.Time, settle date.Date, instrument string, side Side, strike decimal.Decimal,
	underlying, settlement, brokerFee, exchangeFee Money, tradeID string) (FxTrade, error) {
	t := FxTrade{
		TradeTime:   tradeTime,
		SettleDate:  settle,
		Instrument:  instrument,
		Side:        side,
		Strike:      strike,
		Underlying:  underlying,
		Settlement:  settlement,
		BrokerFee:   brokerFee,
		ExchangeFee: exchangeFee,
		TradeID:     tradeID,
	}
	if err := t.Validate(); err != nil {
		return FxTrade{}, err
	}
	return t, nil
}

// Validate checks the sign conventions of the trade.
func (t FxTrade) Validate() error {
	fail := func(reason string) error {
		return &ValidationError{Record: "fx trade", TradeID: t.TradeID, Reason: reason}
	}
	if !t.Strike.IsPositive() {
		return fail("strike must be positive")
	}
	if t.UnderlyingCurrency() == "" || t.SettlementCurrency() == "" {
		return fail("underlying and settlement currencies are required")
	}
	switch t.Side {
	case Buy:
		if !t.Underlying.IsPositive() {
			return fail("inconsistent sign of underlying amount vs side")
		}
		if !t.Settlement.IsNegative() {
			return fail("inconsistent sign of settlement amount vs side")
		}
	case Sell:
		if !t.Underlying.IsNegative() {
			return fail("inconsistent sign of underlying amount vs side")
		}
		if !t.Settlement.IsPositive() {
			return fail("inconsistent sign of settlement amount vs side")
		}
	default:
		return fail("unknown side")
	}
	if t.BrokerFee.IsPositive() {
		return fail("broker_fee cannot be positive")
	}
	if t.ExchangeFee.IsPositive() {
		return fail("exchange_fee cannot be positive")
	}
	return nil
}

// MarshalJSON implements the json.Marshaler interface for FxTrade.
func (t FxTrade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tradeTime", t.TradeTime)
	w.Append("settleDate", t.SettleDate)
	w.Append("instrument", t.Instrument)
	w.Append("side", t.Side)
	w.Append("strike", t.Strike)
	w.Append("underlyingCurrency", t.UnderlyingCurrency())
	w.Append("underlyingAmount", t.Underlying.Decimal())
	w.Append("settlementCurrency", t.SettlementCurrency())
	w.Append("settlementAmount", t.Settlement.Decimal())
	w.Append("brokerFee", t.BrokerFee.Decimal())
	w.Append("exchangeFee", t.ExchangeFee.Decimal())
	w.Optional("feeCurrency", t.BrokerFee.Currency())
	w.Append("tradeId", t.TradeID)
	w.Optional("comment", t.Comment)
	return w.MarshalJSON()
}
