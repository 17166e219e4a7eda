package renderer

import (
	"strings"
	"testing"
	"time"

	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	east "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"
)

// mdTable is a parsed markdown table.
type mdTable struct {
	header []string
	rows   [][]string
}

// mdDoc is the outline of a parsed markdown document.
type mdDoc struct {
	headings   []string
	tables     []mdTable
	paragraphs []string
}

// parseMarkdown parses markdown with GitHub tables and returns its outline.
func parseMarkdown(t *testing.T, content string) mdDoc {
	t.Helper()
	src := []byte(content)
	md := goldmark.New(goldmark.WithExtensions(extension.Table))
	root := md.Parser().Parse(text.NewReader(src))

	var doc mdDoc
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch n := n.(type) {
		case *ast.Heading:
			doc.headings = append(doc.headings, nodeText(n, src))
			return ast.WalkSkipChildren, nil
		case *ast.Paragraph:
			doc.paragraphs = append(doc.paragraphs, nodeText(n, src))
			return ast.WalkSkipChildren, nil
		case *east.Table:
			var tbl mdTable
			for c := n.FirstChild(); c != nil; c = c.NextSibling() {
				var cells []string
				for cc := c.FirstChild(); cc != nil; cc = cc.NextSibling() {
					cells = append(cells, nodeText(cc, src))
				}
				switch c.(type) {
				case *east.TableHeader:
					tbl.header = cells
				case *east.TableRow:
					tbl.rows = append(tbl.rows, cells)
				}
			}
			doc.tables = append(doc.tables, tbl)
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	require.NoError(t, err)
	return doc
}

// nodeText concatenates the text leaves of n.
func nodeText(n ast.Node, src []byte) string {
	var b strings.Builder
	ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch c := c.(type) {
		case *ast.Text:
			b.Write(c.Segment.Value(src))
			if c.SoftLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(c.Value)
		}
		return ast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func rub(v float64) statements.Money { return statements.M(v, "RUB") }
func usd(v float64) statements.Money { return statements.M(v, "USD") }

func at(d string) time.Time { return date.MustParse(d).Time().Add(10 * time.Hour) }

func testSnapshot(t *testing.T) *statements.Snapshot {
	t.Helper()
	deposit, err := statements.NewCashflow(date.New(2021, 1, 15), "Фондовый рынок", "Зачисление д/с", "RUB", decimal.NewFromInt(3000), decimal.Zero)
	require.NoError(t, err)
	transfer, err := statements.NewCashflow(date.New(2021, 1, 16), "Валютный рынок", "Перевод д/с", "RUB", decimal.NewFromInt(1000), decimal.Zero)
	require.NoError(t, err)

	equity := statements.EquityTrade{
		TradeTime:    at("2021-02-01"),
		SettleDate:   date.New(2021, 2, 3),
		SecurityName: "Сбербанк",
		ISIN:         "RU0009029540",
		Currency:     "RUB",
		Side:         statements.Buy,
		Shares:       statements.Q(10),
		UnitPrice:    decimal.NewFromInt(120),
		Amount:       rub(-1200),
		BrokerFee:    rub(-1),
		ExchangeFee:  rub(-0.5),
		TradeID:      "1001",
	}
	fx := statements.FxTrade{
		TradeTime:   at("2021-02-01"),
		SettleDate:  date.New(2021, 2, 2),
		Instrument:  "USDRUB_TOM",
		Side:        statements.Buy,
		Strike:      decimal.NewFromInt(90),
		Underlying:  usd(10),
		Settlement:  rub(-900),
		BrokerFee:   rub(-2),
		ExchangeFee: rub(-1),
		TradeID:     "2001",
	}
	require.NoError(t, equity.Validate())
	require.NoError(t, fx.Validate())

	s := statements.NewSnapshot("a.html", "Иванов Иван", "12AB345", date.New(2021, 1, 15),
		[]statements.Cashflow{deposit, transfer}, []statements.EquityTrade{equity}, []statements.FxTrade{fx})
	return s
}

func TestSnapshotMarkdown(t *testing.T) {
	doc := parseMarkdown(t, SnapshotMarkdown(testSnapshot(t)))

	assert.Equal(t, []string{"Statement 12AB345", "Cash Flows", "Equity Trades", "FX Trades"}, doc.headings)
	require.Len(t, doc.tables, 4)

	ident := doc.tables[0]
	assert.Equal(t, []string{"Client", "Иванов Иван"}, ident.rows[0])
	assert.Equal(t, []string{"Start", "2021-01-15"}, ident.rows[2])
	assert.Equal(t, []string{"Sources", "a.html"}, ident.rows[3])

	cashflows := doc.tables[1]
	assert.Equal(t, []string{"Date", "Venue", "Description", "Credit", "Debit", "Net"}, cashflows.header)
	require.Len(t, cashflows.rows, 2)
	assert.Equal(t, "Зачисление д/с", cashflows.rows[0][2])
	assert.Equal(t, rub(3000).SignedString(), cashflows.rows[0][5])

	equity := doc.tables[2]
	require.Len(t, equity.rows, 1)
	assert.Equal(t, []string{"2021-02-01 10:00:00", "Сбербанк", "RU0009029540", "BUY", "10", "120"}, equity.rows[0][:6])
	assert.Equal(t, rub(-1.5).SignedString(), equity.rows[0][8])
	assert.Equal(t, "1001", equity.rows[0][9])

	fx := doc.tables[3]
	require.Len(t, fx.rows, 1)
	assert.Equal(t, []string{"USDRUB_TOM", "BUY", "90", usd(10).SignedString(), rub(-900).SignedString(), rub(-3).SignedString(), "2001"}, fx.rows[0][1:])
}

func TestSnapshotMarkdown_Empty(t *testing.T) {
	s := statements.NewSnapshot("empty.html", "Иванов Иван", "12AB345", date.Date{}, nil, nil, nil)
	doc := parseMarkdown(t, SnapshotMarkdown(s))

	assert.Equal(t, []string{"Statement 12AB345"}, doc.headings, "empty sections are omitted")
	require.Len(t, doc.tables, 1)
	assert.Len(t, doc.tables[0].rows, 3, "no start date row")
}

func TestTotalsMarkdown(t *testing.T) {
	doc := parseMarkdown(t, TotalsMarkdown(testSnapshot(t), "RUB"))

	assert.Equal(t, []string{"Totals of 12AB345", "Cash Flows", "Currency Exchange", "Equities"}, doc.headings)
	require.Len(t, doc.tables, 4)

	cashflows := doc.tables[0]
	assert.Equal(t, [][]string{
		{"Валютный рынок", "RUB", rub(1000).SignedString(), rub(1000).SignedString()},
		{"Фондовый рынок", "RUB", rub(3000).SignedString(), rub(3000).SignedString()},
	}, cashflows.rows)

	fx := doc.tables[1]
	assert.Equal(t, [][]string{
		{"RUB", rub(-903).SignedString(), "-"},
		{"USD", usd(10).SignedString(), "90.0000"},
	}, fx.rows)

	assert.Equal(t, [][]string{{"RU0009029540", "10"}}, doc.tables[2].rows)
	assert.Equal(t, [][]string{{"RUB", rub(-1201.5).SignedString()}}, doc.tables[3].rows)

	assert.Contains(t, doc.paragraphs, "Fees: "+rub(-3).SignedString())
	assert.Contains(t, doc.paragraphs, "Fees: "+rub(-1.5).SignedString())
}

func TestValuationMarkdown(t *testing.T) {
	v := &statements.Valuation{
		Domestic: "RUB",
		On:       date.New(2021, 3, 1),
		Fx:       statements.VenueValue{Inflow: rub(1000), Value: rub(950), Return: 5},
		Equity:   statements.VenueValue{Inflow: rub(3000), Value: rub(1300)},
		Holdings: []statements.HoldingValue{
			{ISIN: "RU0009029540", Name: "Сбербанк", Shares: statements.Q(10), Last: decimal.NewFromInt(130), Value: rub(1300)},
		},
		Total: statements.VenueValue{Inflow: rub(4000), Value: rub(2250)},
	}
	doc := parseMarkdown(t, ValuationMarkdown(v))

	assert.Equal(t, []string{"Valuation on 2021-03-01", "Holdings"}, doc.headings)
	require.Len(t, doc.tables, 2)

	summary := doc.tables[0]
	assert.Equal(t, []string{"In RUB", "FX", "Equity", "Total"}, summary.header)
	require.Len(t, summary.rows, 7)
	assert.Equal(t, []string{"Inflow", rub(1000).String(), rub(3000).String(), rub(4000).String()}, summary.rows[0])
	assert.Equal(t, []string{"Return", "+5.00%", "-", "-"}, summary.rows[6])

	assert.Equal(t, [][]string{{"RU0009029540", "Сбербанк", "10", "130", rub(1300).String()}}, doc.tables[1].rows)
}

func TestCell(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", " "},
		{"a|b", `a\|b`},
		{"two\nlines", "two lines"},
	}
	for _, tt := range tests {
		if got := cell(tt.in); got != tt.want {
			t.Errorf("cell(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
