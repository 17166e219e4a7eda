package statements

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// CSVRecorder is a record that can be written as a CSV row.
type CSVRecorder interface {
	// CSVHeader returns the column names, identical for all records of a type.
	CSVHeader() []string
	CSVRecord() []string
}

// WriteCSV writes records as CSV, with a header row.
func WriteCSV[T CSVRecorder](w io.Writer, records []T) error {
	var zero T
	cw := csv.NewWriter(w)
	if err := cw.Write(zero.CSVHeader()); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, r := range records {
		if err := cw.Write(r.CSVRecord()); err != nil {
			return fmt.Errorf("failed to write csv record: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

var (
	_ CSVRecorder = Cashflow{}
	_ CSVRecorder = EquityTrade{}
	_ CSVRecorder = FxTrade{}
)

func (Cashflow) CSVHeader() []string {
	return []string{"date", "venue", "description", "currency", "credit", "debit", "net"}
}

func (c Cashflow) CSVRecord() []string {
	return []string{
		c.Date.String(),
		c.Venue,
		c.Description,
		c.Currency,
		c.Credit.Decimal().String(),
		c.Debit.Decimal().String(),
		c.Net.Decimal().String(),
	}
}

func (EquityTrade) CSVHeader() []string {
	return []string{
		"trade_time", "settle_date", "security_name", "isin", "currency", "side", "num_shares",
		"unit_price", "amount", "accrued_coupon", "broker_fee", "exchange_fee", "trade_id",
		"comment", "status", "venue",
	}
}

func (t EquityTrade) CSVRecord() []string {
	return []string{
		t.TradeTime.Format(time.DateTime),
		t.SettleDate.String(),
		t.SecurityName,
		t.ISIN,
		t.Currency,
		t.Side.String(),
		t.Shares.String(),
		t.UnitPrice.String(),
		t.Amount.Decimal().String(),
		t.AccruedCoupon.Decimal().String(),
		t.BrokerFee.Decimal().String(),
		t.ExchangeFee.Decimal().String(),
		t.TradeID,
		t.Comment,
		t.Status,
		t.Venue,
	}
}

func (FxTrade) CSVHeader() []string {
	return []string{
		"trade_time", "settle_date", "instrument", "side", "strike", "underlying_currency",
		"underlying_amount", "settlement_currency", "settlement_amount", "broker_fee",
		"exchange_fee", "trade_id", "comment",
	}
}

func (t FxTrade) CSVRecord() []string {
	return []string{
		t.TradeTime.Format(time.DateTime),
		t.SettleDate.String(),
		t.Instrument,
		t.Side.String(),
		t.Strike.String(),
		t.UnderlyingCurrency(),
		t.Underlying.Decimal().String(),
		t.SettlementCurrency(),
		t.Settlement.Decimal().String(),
		t.BrokerFee.Decimal().String(),
		t.ExchangeFee.Decimal().String(),
		t.TradeID,
		t.Comment,
	}
}
