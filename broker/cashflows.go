package broker

import (
	"slices"
	"strings"

	"github.com/etnz/statements"
	"github.com/etnz/statements/htmltable"
	"go.uber.org/zap"
)

// Cash flow columns.
const (
	colDate        = "Дата"
	colVenue       = "Торговая площадка"
	colDescription = "Описание операции"
	colCurrency    = "Валюта"
	colCredit      = "Сумма зачисления"
	colDebit       = "Сумма списания"
)

// cashflowExclusions are the descriptions of flows already carried by trades.
var cashflowExclusions = []string{
	"Сделка",
	"Комиссия Биржи",
	"Комиссия Брокера",
	"Перевод д/с для проведения расчетов по клирингу",
}

// parseCashflows decodes the cash flow section.
//
// Subtotal rows are given per venue, and the flows generated by trades
// (settlement and fees) are excluded.
func (p *Parser) parseCashflows(doc *htmltable.Document) ([]statements.Cashflow, error) {
	table, ok, err := doc.FindSection(cashflowSection)
	if err != nil || !ok {
		return nil, err
	}
	cols := table.Columns(colDate, colVenue, colDescription, colCurrency, colCredit, colDebit)

	var cashflows []statements.Cashflow
	for tr := range table.Rows(cols, "Итого") {
		r := row{Row: tr}
		on := r.date(colDate)
		venue := r.text(colVenue)
		description := r.text(colDescription)
		currency := r.text(colCurrency)
		credit := r.decimal(colCredit)
		debit := r.decimal(colDebit)
		if r.err != nil {
			return nil, r.err
		}
		if slices.ContainsFunc(cashflowExclusions, func(e string) bool { return strings.Contains(description, e) }) {
			p.log.Debug("cash flow carried by a trade, skipping", zap.String("description", description))
			continue
		}
		c, err := statements.NewCashflow(on, venue, description, currency, credit, debit)
		if err != nil {
			return nil, err
		}
		cashflows = append(cashflows, c)
	}
	return cashflows, nil
}
