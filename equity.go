package statements

import (
	"time"

	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
)

// EquityTrade is a purchase or sale of a share or a bond.
//
// Unlike statements, amounts are signed from the account point of view: a Buy
// increases Shares and spends Amount and AccruedCoupon, a Sell does the
// opposite. Fees are always negative or zero.
type EquityTrade struct {
	TradeTime    time.Time
	SettleDate   date.Date
	SecurityName string
	ISIN         string
	Currency     string
	Side         Side
	Shares       Quantity
	// UnitPrice is always positive. For bonds it is a percentage of the
	// notional active on the trade date, not a price per bond.
	UnitPrice decimal.Decimal
	// Amount paid or received for the whole trade, excluding AccruedCoupon.
	// It is not always Shares*UnitPrice (see bonds).
	Amount Money
	// AccruedCoupon is the bond interest accrued since the last coupon,
	// settled with the trade.
	AccruedCoupon Money
	BrokerFee     Money
	ExchangeFee   Money
	TradeID       string
	Comment       string
	Status        string
	// Venue is the sub-account the trade was reported in. Informational.
	Venue string
}

// NewEquityTrade creates an EquityTrade from its signed amounts and checks its
// sign conventions. Descriptive fields (names, comment, status, venue) are
// left to the caller.
func NewEquityTrade(tradeTime time.Time, settle date.Date, isin string, side Side, shares Quantity,
	unitPrice decimal.Decimal, amount, accruedCoupon, brokerFee, exchangeFee Money, tradeID string) (EquityTrade, error) {
	t := EquityTrade{
		TradeTime:     tradeTime,
		SettleDate:    settle,
		ISIN:          isin,
		Currency:      amount.Currency(),
		Side:          side,
		Shares:        shares,
		UnitPrice:     unitPrice,
		Amount:        amount,
		AccruedCoupon: accruedCoupon,
		BrokerFee:     brokerFee,
		ExchangeFee:   exchangeFee,
		TradeID:       tradeID,
	}
	if err := t.Validate(); err != nil {
		return EquityTrade{}, err
	}
	return t, nil
}

// Validate checks the sign conventions of the trade.
func (t EquityTrade) Validate() error {
	fail := func(reason string) error {
		return &ValidationError{Record: "equity trade", TradeID: t.TradeID, Reason: reason}
	}
	if !t.UnitPrice.IsPositive() {
		return fail("unit_price must be positive")
	}
	switch t.Side {
	case Buy:
		if !t.Shares.IsPositive() {
			return fail("num_shares must be positive")
		}
		if t.Amount.IsPositive() {
			return fail("inconsistent sign of amount vs side")
		}
		if t.AccruedCoupon.IsPositive() {
			return fail("inconsistent sign of accrued coupon vs side")
		}
	case Sell:
		if !t.Shares.IsNegative() {
			return fail("num_shares must be negative")
		}
		if t.Amount.IsNegative() {
			return fail("inconsistent sign of amount vs side")
		}
		if t.AccruedCoupon.IsNegative() {
			return fail("inconsistent sign of accrued coupon vs side")
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

// Fees returns the sum of broker and exchange fees.
func (t EquityTrade) Fees() Money { return t.BrokerFee.Add(t.ExchangeFee) }

// MarshalJSON implements the json.Marshaler interface for EquityTrade.
func (t EquityTrade) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("tradeTime", t.TradeTime)
	w.Append("settleDate", t.SettleDate)
	w.Append("securityName", t.SecurityName)
	w.Append("isin", t.ISIN)
	w.Append("currency", t.Currency)
	w.Append("side", t.Side)
	w.Append("shares", t.Shares)
	w.Append("unitPrice", t.UnitPrice)
	w.Append("amount", t.Amount.Decimal())
	w.Append("accruedCoupon", t.AccruedCoupon.Decimal())
	w.Append("brokerFee", t.BrokerFee.Decimal())
	w.Append("exchangeFee", t.ExchangeFee.Decimal())
	w.Optional("feeCurrency", t.BrokerFee.Currency())
	w.Append("tradeId", t.TradeID)
	w.Optional("comment", t.Comment)
	w.Optional("status", t.Status)
	w.Optional("venue", t.Venue)
	return w.MarshalJSON()
}
