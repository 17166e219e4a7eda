package broker

import (
	"fmt"
	"strings"
	"time"

	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/htmltable"
	"github.com/shopspring/decimal"
)

// row reads the cells of a table row, keeping the first error.
type row struct {
	htmltable.Row
	err error
}

func (r *row) text(label string) string {
	if r.err != nil {
		return ""
	}
	s, err := r.Text(label)
	r.err = err
	return s
}

func (r *row) decimal(label string) decimal.Decimal {
	if r.err != nil {
		return decimal.Zero
	}
	d, err := r.Decimal(label)
	r.err = err
	return d
}

func (r *row) date(label string) date.Date {
	if r.err != nil {
		return date.Date{}
	}
	d, err := r.Date(label)
	r.err = err
	return d
}

// datetime combines a date column and a time column.
func (r *row) datetime(dateLabel, timeLabel string) time.Time {
	day, clock := r.text(dateLabel), r.text(timeLabel)
	if r.err != nil {
		return time.Time{}
	}
	t, err := date.ParseStatementTime(day, clock)
	if err != nil {
		r.err = &htmltable.CellError{Label: dateLabel + " " + timeLabel, Value: day + " " + clock, Err: err}
	}
	return t
}

func (r *row) side(label string) statements.Side {
	s := r.text(label)
	if r.err != nil {
		return 0
	}
	side, err := parseSide(s)
	if err != nil {
		r.err = &htmltable.CellError{Label: label, Value: s, Err: err}
	}
	return side
}

// parseSide parses the localized trade direction.
func parseSide(s string) (statements.Side, error) {
	switch strings.TrimSpace(s) {
	case "Покупка":
		return statements.Buy, nil
	case "Продажа":
		return statements.Sell, nil
	default:
		return 0, fmt.Errorf("unknown side %q", s)
	}
}

// signed returns v for a Buy and -v for a Sell.
func signed(side statements.Side, v decimal.Decimal) decimal.Decimal {
	if side == statements.Sell {
		return v.Neg()
	}
	return v
}
