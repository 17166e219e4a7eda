package broker

import (
	"fmt"

	"github.com/etnz/statements"
	"github.com/etnz/statements/htmltable"
)

// FX trade columns, the others are shared with equity trades.
const (
	colInstrument    = "Валютный инструмент"
	colUnderlying    = "Количество базовой валюты лота"
	colStrike        = "Цена"
	colSettlement    = "Сумма сделки в сопряженной валюте"
	colFxBrokerFee   = "Комиссия Брокера оборотная, руб"
	colFxExchangeFee = "Комиссия Биржи, руб"
	fxTurnoverMarker = "Оборот"
)

// parseFxTrades decodes the currency exchange section.
//
// Instruments are named after their currencies, e.g. "USDRUB_TOM" buys or
// sells USD against RUB.
func (p *Parser) parseFxTrades(doc *htmltable.Document) ([]statements.FxTrade, error) {
	table, ok, err := doc.FindSection(fxSection)
	if err != nil || !ok {
		return nil, err
	}
	cols := table.Columns(colTradeDate, colSettleDate, colTradeTime, colInstrument, colSide, colUnderlying,
		colStrike, colSettlement, colFxBrokerFee, colFxExchangeFee, colTradeID, colComment)

	var trades []statements.FxTrade
	for tr := range table.Rows(cols, fxTurnoverMarker) {
		r := row{Row: tr}
		instrument := r.text(colInstrument)
		und, settle, ok := currencyPair(instrument)
		if r.err == nil && !ok {
			r.err = &htmltable.CellError{Label: colInstrument, Value: instrument, Err: fmt.Errorf("not a currency pair")}
		}
		side := r.side(colSide)
		tradeTime, settleDate := r.datetime(colTradeDate, colTradeTime), r.date(colSettleDate)
		strike := r.decimal(colStrike)
		underlying := statements.M(signed(side, r.decimal(colUnderlying)), und)
		settlement := statements.M(signed(side, r.decimal(colSettlement)).Neg(), settle)
		brokerFee := statements.M(r.decimal(colFxBrokerFee).Neg(), p.FeeCurrency)
		exchangeFee := statements.M(r.decimal(colFxExchangeFee).Neg(), p.FeeCurrency)
		tradeID, comment := r.text(colTradeID), r.text(colComment)
		if r.err != nil {
			return nil, r.err
		}
		t, err := statements.NewFxTrade(tradeTime, settleDate, instrument, side, strike,
			underlying, settlement, brokerFee, exchangeFee, tradeID)
		if err != nil {
			return nil, err
		}
		t.Comment = comment
		trades = append(trades, t)
	}
	return trades, nil
}

// currencyPair splits an instrument name into its underlying and settlement
// currency codes, the first two groups of three capital letters.
func currencyPair(instrument string) (underlying, settlement string, ok bool) {
	r := []rune(instrument)
	if len(r) < 6 {
		return "", "", false
	}
	underlying, settlement = string(r[0:3]), string(r[3:6])
	return underlying, settlement, isCurrencyCode(underlying) && isCurrencyCode(settlement)
}

func isCurrencyCode(s string) bool {
	for _, c := range s {
		if c < 'A' || c > 'Z' {
			return false
		}
	}
	return len(s) == 3
}
