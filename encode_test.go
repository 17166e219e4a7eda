package statements

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"

	"github.com/etnz/statements/date"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeSnapshot(t *testing.T) {
	cf := cashflow(t, "2021-02-01", "Фондовый рынок", "Зачисление д/с", "RUB", 1000, 0)
	bond := buyShares("2", "RU000A0JX0J2", 5, 98.5)
	bond.AccruedCoupon = RUB(-12.34)
	bond.Venue = "Основной рынок"
	bond.Comment = "ОФЗ"
	fx := buyUSD("1", 100, 90)
	s := NewSnapshot("a.html", "Иванов Иван", "ABC123", date.New(2021, 2, 1), []Cashflow{cf}, []EquityTrade{bond}, []FxTrade{fx})

	var buf bytes.Buffer
	require.NoError(t, EncodeSnapshot(&buf, s))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, `{"type":"snapshot","clients":["Иванов Иван"],"accounts":["ABC123"],"sources":["a.html"],"startDate":"2021-02-01","cashflows":1,"equityTrades":1,"fxTrades":1}`, lines[0])
	assert.Equal(t, `{"type":"cashflow","date":"2021-02-01","venue":"Фондовый рынок","description":"Зачисление д/с","currency":"RUB","credit":1000,"debit":0,"net":1000}`, lines[1])
	assert.True(t, strings.HasPrefix(lines[2], `{"type":"equity",`), lines[2])
	assert.True(t, strings.HasPrefix(lines[3], `{"type":"fx",`), lines[3])

	got, err := DecodeSnapshot(&buf)
	require.NoError(t, err)
	assert.Equal(t, s.Clients, got.Clients)
	assert.Equal(t, s.Accounts, got.Accounts)
	assert.Equal(t, s.Sources, got.Sources)
	assert.Equal(t, s.StartDate, got.StartDate)

	require.Len(t, got.Cashflows, 1)
	assert.True(t, got.Cashflows[0].Equal(cf), "cash flow = %v, want %v", got.Cashflows[0], cf)

	require.Len(t, got.EquityTrades, 1)
	e := got.EquityTrades[0]
	assert.True(t, e.TradeTime.Equal(bond.TradeTime))
	assert.Equal(t, bond.SettleDate, e.SettleDate)
	assert.Equal(t, bond.Side, e.Side)
	assert.True(t, e.Shares.Equal(bond.Shares))
	assert.True(t, e.UnitPrice.Equal(bond.UnitPrice))
	checkMoney(t, "Amount", e.Amount, bond.Amount)
	checkMoney(t, "AccruedCoupon", e.AccruedCoupon, bond.AccruedCoupon)
	checkMoney(t, "BrokerFee", e.BrokerFee, bond.BrokerFee)
	checkMoney(t, "ExchangeFee", e.ExchangeFee, bond.ExchangeFee)
	assert.Equal(t, bond.Venue, e.Venue)
	assert.Equal(t, bond.Comment, e.Comment)

	require.Len(t, got.FxTrades, 1)
	f := got.FxTrades[0]
	assert.Equal(t, fx.Instrument, f.Instrument)
	assert.True(t, f.Strike.Equal(fx.Strike))
	checkMoney(t, "Underlying", f.Underlying, fx.Underlying)
	checkMoney(t, "Settlement", f.Settlement, fx.Settlement)
	checkMoney(t, "fx BrokerFee", f.BrokerFee, fx.BrokerFee)
}

func TestDecodeSnapshot_Errors(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty", input: ""},
		{name: "record before header", input: `{"type":"cashflow","date":"2021-02-01","currency":"RUB","credit":1,"debit":0}`},
		{name: "duplicate header", input: "{\"type\":\"snapshot\"}\n{\"type\":\"snapshot\"}"},
		{name: "unknown type", input: "{\"type\":\"snapshot\"}\n{\"type\":\"dividend\"}"},
		{name: "invalid trade", input: "{\"type\":\"snapshot\"}\n" +
			`{"type":"equity","side":"BUY","shares":-1,"unitPrice":10,"amount":10,"tradeId":"1"}`},
		{name: "negative credit", input: "{\"type\":\"snapshot\"}\n" +
			`{"type":"cashflow","date":"2021-02-01","currency":"RUB","credit":-1,"debit":0}`},
		{name: "not json", input: "snapshot"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeSnapshot(strings.NewReader(tt.input)); err == nil {
				t.Errorf("DecodeSnapshot(%q) = nil error, want an error", tt.input)
			}
		})
	}
}

func TestWriteCSV(t *testing.T) {
	cf := cashflow(t, "2021-02-01", "Фондовый рынок", "Зачисление д/с, ИИС", "RUB", 1000.5, 0)

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, []Cashflow{cf}))
	want := "date,venue,description,currency,credit,debit,net\n" +
		"2021-02-01,Фондовый рынок,\"Зачисление д/с, ИИС\",RUB,1000.5,0,1000.5\n"
	assert.Equal(t, want, buf.String())

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, []EquityTrade{buyShares("1", "RU0009029540", 10, 100)}))
	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, EquityTrade{}.CSVHeader(), records[0])
	assert.Equal(t, []string{
		"2021-02-01 10:00:00", "2021-02-03", "RU0009029540", "RU0009029540", "RUB", "BUY", "10",
		"100", "-1000", "0", "-1", "-0.5", "1", "", "", "",
	}, records[1])

	buf.Reset()
	require.NoError(t, WriteCSV(&buf, []FxTrade{}))
	assert.Equal(t, strings.Join(FxTrade{}.CSVHeader(), ",")+"\n", buf.String())
}
