package statements

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Record types of the JSONL encoding.
const (
	typeSnapshot = "snapshot"
	typeCashflow = "cashflow"
	typeEquity   = "equity"
	typeFx       = "fx"
)

// EncodeSnapshot writes s in JSONL format: a snapshot header line, then one
// line per cash flow, equity trade and fx trade, in that order.
func EncodeSnapshot(w io.Writer, s *Snapshot) error {
	if err := encodeLine(w, typeSnapshot, s); err != nil {
		return err
	}
	for _, c := range s.Cashflows {
		if err := encodeLine(w, typeCashflow, c); err != nil {
			return err
		}
	}
	for _, t := range s.EquityTrades {
		if err := encodeLine(w, typeEquity, t); err != nil {
			return err
		}
	}
	for _, t := range s.FxTrades {
		if err := encodeLine(w, typeFx, t); err != nil {
			return err
		}
	}
	return nil
}

func encodeLine(w io.Writer, typ string, v any) error {
	var jw jsonObjectWriter
	jw.Append("type", typ)
	jw.EmbedFrom(v)
	data, err := jw.MarshalJSON()
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", typ, err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write %s: %w", typ, err)
	}
	return nil
}

// jcashflow, jequity and jfx are the decoding forms of the records.
type jcashflow struct {
	Date        date.Date       `json:"date"`
	Venue       string          `json:"venue"`
	Description string          `json:"description"`
	Currency    string          `json:"currency"`
	Credit      decimal.Decimal `json:"credit"`
	Debit       decimal.Decimal `json:"debit"`
}

type jfees struct {
	BrokerFee   decimal.Decimal `json:"brokerFee"`
	ExchangeFee decimal.Decimal `json:"exchangeFee"`
	FeeCurrency string          `json:"feeCurrency"`
}

type jequity struct {
	jfees
	TradeTime     time.Time       `json:"tradeTime"`
	SettleDate    date.Date       `json:"settleDate"`
	SecurityName  string          `json:"securityName"`
	ISIN          string          `json:"isin"`
	Currency      string          `json:"currency"`
	Side          Side            `json:"side"`
	Shares        Quantity        `json:"shares"`
	UnitPrice     decimal.Decimal `json:"unitPrice"`
	Amount        decimal.Decimal `json:"amount"`
	AccruedCoupon decimal.Decimal `json:"accruedCoupon"`
	TradeID       string          `json:"tradeId"`
	Comment       string          `json:"comment"`
	Status        string          `json:"status"`
	Venue         string          `json:"venue"`
}

type jfx struct {
	jfees
	TradeTime          time.Time       `json:"tradeTime"`
	SettleDate         date.Date       `json:"settleDate"`
	Instrument         string          `json:"instrument"`
	Side               Side            `json:"side"`
	Strike             decimal.Decimal `json:"strike"`
	UnderlyingCurrency string          `json:"underlyingCurrency"`
	UnderlyingAmount   decimal.Decimal `json:"underlyingAmount"`
	SettlementCurrency string          `json:"settlementCurrency"`
	SettlementAmount   decimal.Decimal `json:"settlementAmount"`
	TradeID            string          `json:"tradeId"`
	Comment            string          `json:"comment"`
}

// DecodeSnapshot reads a snapshot written by EncodeSnapshot.
//
// Records are validated like freshly parsed ones.
func DecodeSnapshot(r io.Reader) (*Snapshot, error) {
	var s *Snapshot
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for lineno := 1; scanner.Scan(); lineno++ {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue // Skip empty lines
		}

		var identifier struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(line, &identifier); err != nil {
			return nil, fmt.Errorf("line %d: could not identify record type: %w", lineno, err)
		}
		if identifier.Type != typeSnapshot && s == nil {
			return nil, fmt.Errorf("line %d: %s record before the snapshot header", lineno, identifier.Type)
		}

		var err error
		switch identifier.Type {
		case typeSnapshot:
			if s != nil {
				return nil, fmt.Errorf("line %d: duplicate snapshot header", lineno)
			}
			var h struct {
				Clients   []string  `json:"clients"`
				Accounts  []string  `json:"accounts"`
				Sources   []string  `json:"sources"`
				StartDate date.Date `json:"startDate"`
			}
			err = json.Unmarshal(line, &h)
			s = &Snapshot{Clients: h.Clients, Accounts: h.Accounts, Sources: h.Sources, StartDate: h.StartDate}
		case typeCashflow:
			var j jcashflow
			if err = json.Unmarshal(line, &j); err == nil {
				var c Cashflow
				c, err = NewCashflow(j.Date, j.Venue, j.Description, j.Currency, j.Credit, j.Debit)
				s.Cashflows = append(s.Cashflows, c)
			}
		case typeEquity:
			var j jequity
			if err = json.Unmarshal(line, &j); err == nil {
				var t EquityTrade
				t, err = NewEquityTrade(j.TradeTime, j.SettleDate, j.ISIN, j.Side, j.Shares, j.UnitPrice,
					M(j.Amount, j.Currency), M(j.AccruedCoupon, j.Currency),
					M(j.BrokerFee, j.FeeCurrency), M(j.ExchangeFee, j.FeeCurrency), j.TradeID)
				t.SecurityName, t.Comment, t.Status, t.Venue = j.SecurityName, j.Comment, j.Status, j.Venue
				s.EquityTrades = append(s.EquityTrades, t)
			}
		case typeFx:
			var j jfx
			if err = json.Unmarshal(line, &j); err == nil {
				var t FxTrade
				t, err = NewFxTrade(j.TradeTime, j.SettleDate, j.Instrument, j.Side, j.Strike,
					M(j.UnderlyingAmount, j.UnderlyingCurrency), M(j.SettlementAmount, j.SettlementCurrency),
					M(j.BrokerFee, j.FeeCurrency), M(j.ExchangeFee, j.FeeCurrency), j.TradeID)
				t.Comment = j.Comment
				s.FxTrades = append(s.FxTrades, t)
			}
		default:
			err = fmt.Errorf("unknown record type %q", identifier.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", lineno, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	if s == nil {
		return nil, fmt.Errorf("no snapshot header")
	}
	return s, nil
}
