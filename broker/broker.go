// Package broker parses the HTML account statements of a Russian retail
// broker into statements.Snapshot.
//
// A statement has a header paragraph with the client name and the account
// details, and up to three sections: cash flows, equity trades and currency
// exchanges. A section without activity is omitted by the broker.
package broker

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"regexp"

	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/etnz/statements/htmltable"
	"go.uber.org/zap"
)

// Section titles.
const (
	cashflowSection = "Движение денежных средств за период"
	equitySection   = "Сделки купли/продажи ценных бумаг"
	fxSection       = "Сделки с валютными инструментами за период"
)

const headerMarker = "Инвестор"

var (
	investorRegex = regexp.MustCompile(`Инвестор:\s(?P<client_name>.+)`)
	accountRegex  = regexp.MustCompile(`Договор\s(?P<account>[\p{L}\p{N}_]+)\sот\s(?P<start>\d{2}\.\d{2}\.\d{4})`)
)

// DefaultFeeCurrency is the currency fees are charged in.
const DefaultFeeCurrency = "RUB"

// DefaultWorkers is the default number of statements parsed in parallel.
const DefaultWorkers = 4

// Parser parses statements. Its exported fields must not be changed while
// parsing.
type Parser struct {
	// FeeCurrency is the currency of the broker and exchange fee columns,
	// statements do not report it.
	FeeCurrency string
	// Workers bounds the number of statements parsed in parallel by ParseDirs.
	Workers int

	log *zap.Logger
}

// NewParser returns a Parser with default settings. A nil log discards logs.
func NewParser(log *zap.Logger) *Parser {
	if log == nil {
		log = zap.NewNop()
	}
	return &Parser{FeeCurrency: DefaultFeeCurrency, Workers: DefaultWorkers, log: log}
}

// ParseFile parses the statement stored in the file at path.
func (p *Parser) ParseFile(path string) (*statements.Snapshot, error) {
	// some statements have binary garbage after </html>, read it all as bytes.
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ParseError{File: path, Err: err}
	}
	return p.Parse(path, bytes.NewReader(content))
}

// Parse parses one statement identified by source.
//
// Any failure is returned as a *ParseError, no partial Snapshot is returned.
func (p *Parser) Parse(source string, r io.Reader) (*statements.Snapshot, error) {
	s, err := p.parse(source, r)
	if err != nil {
		return nil, &ParseError{File: source, Err: err}
	}
	p.log.Info("statement parsed",
		zap.String("file", source),
		zap.Int("cashflows", len(s.Cashflows)),
		zap.Int("equity_trades", len(s.EquityTrades)),
		zap.Int("fx_trades", len(s.FxTrades)),
	)
	return s, nil
}

func (p *Parser) parse(source string, r io.Reader) (*statements.Snapshot, error) {
	doc, err := htmltable.Parse(r)
	if err != nil {
		return nil, err
	}
	client, account, start, err := parseHeader(doc)
	if err != nil {
		return nil, err
	}
	cashflows, err := p.parseCashflows(doc)
	if err != nil {
		return nil, fmt.Errorf("cash flows: %w", err)
	}
	equities, err := p.parseEquityTrades(doc)
	if err != nil {
		return nil, fmt.Errorf("equity trades: %w", err)
	}
	fxs, err := p.parseFxTrades(doc)
	if err != nil {
		return nil, fmt.Errorf("fx trades: %w", err)
	}
	return statements.NewSnapshot(source, client, account, start, cashflows, equities, fxs), nil
}

// parseHeader extracts the client name, account id and account start date,
// e.g. "Инвестор: Фамилия Имя Отчество" and "Договор 1234ABC от 01.02.2021".
func parseHeader(doc *htmltable.Document) (client, account string, start date.Date, err error) {
	lines, ok := doc.Paragraph(headerMarker)
	if !ok {
		return "", "", date.Date{}, ErrHeaderNotFound
	}
	for _, line := range lines {
		if m := investorRegex.FindStringSubmatch(line); m != nil && client == "" {
			client = m[investorRegex.SubexpIndex("client_name")]
		}
		if m := accountRegex.FindStringSubmatch(line); m != nil && account == "" {
			account = m[accountRegex.SubexpIndex("account")]
			start, err = date.ParseStatement(m[accountRegex.SubexpIndex("start")])
			if err != nil {
				return "", "", date.Date{}, fmt.Errorf("invalid account start date: %w", err)
			}
		}
	}
	if client == "" {
		return "", "", date.Date{}, fmt.Errorf("%w: no client name", ErrHeaderNotFound)
	}
	if account == "" {
		return "", "", date.Date{}, fmt.Errorf("%w: no account details", ErrHeaderNotFound)
	}
	return client, account, start, nil
}
