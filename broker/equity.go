package broker

import (
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/htmltable"
)

// Equity trade columns.
const (
	colTradeDate    = "Дата заключения"
	colSettleDate   = "Дата расчетов"
	colTradeTime    = "Время заключения"
	colSecurityName = "Наименование ЦБ"
	colISIN         = "Код ЦБ"
	colSide         = "Вид"
	colShares       = "Количество, шт."
	colUnitPrice    = "Цена**"
	colAmount       = "Сумма"
	colAccrued      = "НКД"
	colBrokerFee    = "Комиссия Брокера"
	colExchangeFee  = "Комиссия Биржи"
	colTradeID      = "Номер сделки"
	colComment      = "Комментарий"
	colStatus       = "Статус сделки*****"
)

// venueBanner starts the rows that group the following trades by venue.
const venueBanner = "Площадка"

// parseEquityTrades decodes the equity trade section.
//
// The statement reports unsigned values, they are signed from the account
// point of view according to the side.
func (p *Parser) parseEquityTrades(doc *htmltable.Document) ([]statements.EquityTrade, error) {
	table, ok, err := doc.FindSection(equitySection)
	if err != nil || !ok {
		return nil, err
	}
	cols := table.Columns(colTradeDate, colSettleDate, colTradeTime, colSecurityName, colISIN, colCurrency,
		colSide, colShares, colUnitPrice, colAmount, colAccrued, colBrokerFee, colExchangeFee, colTradeID,
		colComment, colStatus)

	var trades []statements.EquityTrade
	venue := ""
	for tr := range table.Rows(cols, venueBanner, "Итого") {
		if v, ok := strings.CutPrefix(tr.Banner, venueBanner+":"); ok {
			venue = strings.TrimSpace(v)
		}
		r := row{Row: tr}
		currency := r.text(colCurrency)
		side := r.side(colSide)
		shares := statements.Q(signed(side, r.decimal(colShares)))
		unitPrice := r.decimal(colUnitPrice)
		amount := statements.M(signed(side, r.decimal(colAmount)).Neg(), currency)
		accrued := statements.M(signed(side, r.decimal(colAccrued)).Neg(), currency)
		brokerFee := statements.M(r.decimal(colBrokerFee).Neg(), p.FeeCurrency)
		exchangeFee := statements.M(r.decimal(colExchangeFee).Neg(), p.FeeCurrency)
		tradeTime, settle := r.datetime(colTradeDate, colTradeTime), r.date(colSettleDate)
		isin, tradeID := r.text(colISIN), r.text(colTradeID)
		name, comment, status := r.text(colSecurityName), r.text(colComment), r.text(colStatus)
		if r.err != nil {
			return nil, r.err
		}
		t, err := statements.NewEquityTrade(tradeTime, settle, isin, side, shares, unitPrice,
			amount, accrued, brokerFee, exchangeFee, tradeID)
		if err != nil {
			return nil, err
		}
		t.SecurityName, t.Comment, t.Status, t.Venue = name, comment, status, venue
		trades = append(trades, t)
	}
	return trades, nil
}
