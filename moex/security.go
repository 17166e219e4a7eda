package moex

import (
	"context"
	"fmt"
	"net/url"

	"github.com/etnz/statements"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Kind is the market an instrument trades on.
type Kind string

const (
	KindShare    Kind = "share"
	KindBond     Kind = "bond"
	KindCurrency Kind = "currency"
)

// ParseKind validates a Kind name.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(s); k {
	case KindShare, KindBond, KindCurrency:
		return k, nil
	default:
		return "", fmt.Errorf("unknown instrument kind %q", s)
	}
}

// market returns the ISS engine and market of k.
func (k Kind) market() (engine, market string) {
	switch k {
	case KindBond:
		return "stock", "bonds"
	case KindCurrency:
		return "currency", "selt"
	default:
		return "stock", "shares"
	}
}

// Security is an instrument traded on the exchange, identified by its
// exchange code (SECID).
type Security struct {
	client *Client
	secid  string
	kind   Kind
}

var (
	_ statements.Instrument     = (*Security)(nil)
	_ statements.BondInstrument = (*BondSecurity)(nil)
)

// Share returns the share traded as secid.
func (c *Client) Share(secid string) *Security { return &Security{client: c, secid: secid, kind: KindShare} }

// Currency returns the currency pair traded as secid, e.g. USD000UTSTOM.
func (c *Client) Currency(secid string) *Security {
	return &Security{client: c, secid: secid, kind: KindCurrency}
}

// Bond returns the bond traded as secid.
func (c *Client) Bond(secid string) *BondSecurity {
	return &BondSecurity{Security{client: c, secid: secid, kind: KindBond}}
}

// Instrument returns the instrument of kind traded as secid.
func (c *Client) Instrument(secid string, kind Kind) (statements.Instrument, error) {
	switch kind {
	case KindShare:
		return c.Share(secid), nil
	case KindBond:
		return c.Bond(secid), nil
	case KindCurrency:
		return c.Currency(secid), nil
	default:
		return nil, fmt.Errorf("unknown instrument kind %q for %s", kind, secid)
	}
}

// SecID returns the exchange code.
func (s *Security) SecID() string { return s.secid }

// IntradayQuote returns the last trade price of the day.
//
// The security trades on several boards, the first board with a trade wins.
func (s *Security) IntradayQuote(ctx context.Context) (statements.Quote, error) {
	key := "quote:" + s.secid
	if q, ok := s.client.cache.Get(key); ok {
		s.client.log.Debug("quote cache hit", zap.String("secid", s.secid))
		return q.(statements.Quote), nil
	}

	engine, market := s.kind.market()
	path := fmt.Sprintf("/engines/%s/markets/%s/securities/%s.json", engine, market, url.PathEscape(s.secid))
	query := url.Values{"iss.only": {"marketdata"}, "marketdata.columns": {"SECID,BOARDID,LAST"}}
	jobj, err := s.client.jwget(ctx, s.client.quotes, path, query)
	if err != nil {
		return statements.Quote{}, fmt.Errorf("cannot load quotes of %s: %w", s.secid, err)
	}
	t, err := table(jobj, "$.marketdata")
	if err != nil {
		return statements.Quote{}, fmt.Errorf("cannot read quotes of %s: %w", s.secid, err)
	}

	var q statements.Quote
	for _, row := range t.rows {
		if last, ok := number(t.value(row, "LAST")); ok && !last.IsZero() {
			q.Last = last
			break
		}
	}
	s.client.cache.SetDefault(key, q)
	return q, nil
}

// ShortName returns the exchange short name of the security.
func (s *Security) ShortName(ctx context.Context) (string, error) {
	key := "name:" + s.secid
	if name, ok := s.client.cache.Get(key); ok {
		return name.(string), nil
	}

	path := fmt.Sprintf("/securities/%s.json", url.PathEscape(s.secid))
	jobj, err := s.client.jwget(ctx, s.client.daily, path, url.Values{"iss.only": {"description"}})
	if err != nil {
		return "", fmt.Errorf("cannot load description of %s: %w", s.secid, err)
	}
	t, err := table(jobj, "$.description")
	if err != nil {
		return "", fmt.Errorf("cannot read description of %s: %w", s.secid, err)
	}
	for _, row := range t.rows {
		if t.value(row, "name") != "SHORTNAME" {
			continue
		}
		name, ok := t.value(row, "value").(string)
		if !ok {
			break
		}
		s.client.cache.Set(key, name, cache.NoExpiration)
		return name, nil
	}
	return "", fmt.Errorf("no short name for %s", s.secid)
}

// number reads an ISS numeric cell.
func number(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case string:
		d, err := decimal.NewFromString(n)
		return d, err == nil
	default:
		return decimal.Zero, false
	}
}
