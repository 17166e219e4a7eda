package htmltable

import (
	"bytes"
	"slices"
	"strings"
	"testing"

	"github.com/etnz/statements/date"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"
)

const sample = `<html><head><meta charset="utf-8"></head><body>
<p> Инвестор: Иванов Иван Иванович<br>Договор ABC123 от 01.02.2021<br></p>
<p>Сделки купли/продажи ценных бумаг</p>
<br>
<table>
<tr><td>Дата</td><td>Сумма</td><td>Лишняя</td><td> Комментарий </td></tr>
<tr><td>Площадка: Фондовый рынок</td></tr>
<tr><td>01.02.2021</td><td>1 234.50</td><td>x</td><td>первый</td></tr>
<tr></tr>
<tr><td></td><td> </td><td></td><td></td></tr>
<tr><td>Итого</td><td>1 234.50</td><td></td><td></td></tr>
<tr><td>Площадка: Внебиржевой рынок</td></tr>
<tr><td>02.02.2021</td><td>abc</td><td>x</td><td><b>второй</b></td></tr>
</table>
</body></html>`

func parse(t *testing.T, s string) *Document {
	t.Helper()
	d, err := Parse(strings.NewReader(s))
	require.NoError(t, err)
	return d
}

func TestParagraph(t *testing.T) {
	d := parse(t, sample)
	lines, ok := d.Paragraph("Инвестор")
	require.True(t, ok)
	assert.Equal(t, []string{"Инвестор: Иванов Иван Иванович", "Договор ABC123 от 01.02.2021", ""}, lines)

	_, ok = d.Paragraph("Брокер")
	assert.False(t, ok)
}

func TestFindSection(t *testing.T) {
	d := parse(t, sample)

	table, ok, err := d.FindSection("Сделки купли/продажи")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Дата", "Сумма", "Лишняя", "Комментарий"}, table.Header())

	_, ok, err = d.FindSection("Движение денежных средств за период")
	assert.NoError(t, err)
	assert.False(t, ok, "a missing section is not an error")

	d = parse(t, `<p>Сделки с валютными инструментами за период</p><p>нет таблицы</p>`)
	_, ok, err = d.FindSection("Сделки с валютными инструментами за период")
	assert.True(t, ok)
	assert.Error(t, err)
}

func TestRows(t *testing.T) {
	d := parse(t, sample)
	table, _, err := d.FindSection("Сделки купли/продажи")
	require.NoError(t, err)

	cols := table.Columns("Дата", "Сумма", "Комментарий", "НКД")
	assert.True(t, cols.Has("Сумма"))
	assert.False(t, cols.Has("Лишняя"), "labels not asked for are ignored")
	assert.False(t, cols.Has("НКД"))

	rows := slices.Collect(table.Rows(cols, "Итого", "Площадка"))
	require.Len(t, rows, 2)

	first := rows[0]
	assert.Equal(t, "Площадка: Фондовый рынок", first.Banner)
	on, err := first.Date("Дата")
	require.NoError(t, err)
	assert.Equal(t, date.New(2021, 2, 1), on)
	amount, err := first.Decimal("Сумма")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.RequireFromString("1234.5")), "amount = %v", amount)

	second := rows[1]
	assert.Equal(t, "Площадка: Внебиржевой рынок", second.Banner)
	comment, err := second.Text("Комментарий")
	require.NoError(t, err)
	assert.Equal(t, "второй", comment)

	_, err = second.Decimal("Сумма")
	var cellErr *CellError
	require.ErrorAs(t, err, &cellErr)
	assert.Equal(t, "abc", cellErr.Value)

	_, err = second.Decimal("НКД")
	var missing *MissingColumnError
	require.ErrorAs(t, err, &missing)
	assert.Equal(t, "НКД", missing.Label)
	assert.Equal(t, "Сделки купли/продажи", missing.Section)
}

func TestRows_Break(t *testing.T) {
	d := parse(t, sample)
	table, _, err := d.FindSection("Сделки купли/продажи")
	require.NoError(t, err)
	n := 0
	for range table.Rows(table.Columns()) {
		n++
		break
	}
	assert.Equal(t, 1, n)
}

func TestRows_NestedTable(t *testing.T) {
	d := parse(t, `<p>Сделки</p><table>
<thead><tr><th>Дата</th><th>Сумма</th><th>Комментарий</th></tr></thead>
<tbody>
<tr><td>01.02.2021</td><td>10</td><td><table><tr><td>примечание</td><td>1</td></tr></table></td></tr>
<tr><td>02.02.2021</td><td>20</td><td></td></tr>
</tbody></table>`)
	table, ok, err := d.FindSection("Сделки")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"Дата", "Сумма", "Комментарий"}, table.Header())

	rows := slices.Collect(table.Rows(table.Columns("Дата", "Сумма", "Комментарий")))
	require.Len(t, rows, 2, "rows of the nested table are not rows of the section")
	comment, err := rows[0].Text("Комментарий")
	require.NoError(t, err)
	assert.Equal(t, "примечание1", comment)
	amount, err := rows[1].Decimal("Сумма")
	require.NoError(t, err)
	assert.True(t, amount.Equal(decimal.NewFromInt(20)), "amount = %v", amount)
}

func TestParse_Windows1251(t *testing.T) {
	doc := `<html><head><meta http-equiv="Content-Type" content="text/html; charset=windows-1251"></head>` +
		`<body><p>Движение денежных средств за период</p><table><tr><td>Валюта</td></tr><tr><td>RUB</td></tr></table></body></html>`
	encoded, err := charmap.Windows1251.NewEncoder().String(doc)
	require.NoError(t, err)

	d, err := Parse(bytes.NewBufferString(encoded))
	require.NoError(t, err)
	table, ok, err := d.FindSection("Движение денежных средств")
	require.NoError(t, err)
	require.True(t, ok)
	cols := table.Columns("Валюта")
	for r := range table.Rows(cols) {
		ccy, err := r.Text("Валюта")
		require.NoError(t, err)
		assert.Equal(t, "RUB", ccy)
	}
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1 000 000.25", want: "1000000.25"},
		{in: "1\u00a0000", want: "1000"},
		{in: "0", want: "0"},
		{in: "-12.5", want: "-12.5"},
		{in: "", wantErr: true},
		{in: "12,5", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseNumber(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseNumber(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && !got.Equal(decimal.RequireFromString(tt.want)) {
			t.Errorf("ParseNumber(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
