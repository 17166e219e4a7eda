package moex

import (
	"context"
	"fmt"
	"net/url"
	"slices"

	"github.com/etnz/statements"
	"github.com/etnz/statements/date"
	"github.com/patrickmn/go-cache"
	"github.com/shopspring/decimal"
)

// BondSecurity is a bond traded on the exchange. Its price is quoted in
// percent of its notional.
type BondSecurity struct {
	Security
}

// Amortization is a repayment of part of the bond notional.
type Amortization struct {
	Date  date.Date
	Value decimal.Decimal // repaid amount per bond
}

// Coupon is an interest payment.
type Coupon struct {
	Start date.Date // first day of the accrual period
	Date  date.Date // payment date, end of the accrual period
	// Value is the amount paid per bond. It is zero for coupons whose rate is
	// not known yet.
	Value decimal.Decimal
}

// Schedule is the amortization and coupon schedule of a bond.
type Schedule struct {
	InitialFaceValue decimal.Decimal
	Amortizations    []Amortization // sorted by date
	Coupons          []Coupon       // sorted by date
}

var _ statements.Bond = (*Schedule)(nil)

// NotionalOn returns the outstanding face value on day on: the initial face
// value minus the amortizations paid on or before that day.
func (s *Schedule) NotionalOn(on date.Date) decimal.Decimal {
	notional := s.InitialFaceValue
	for _, a := range s.Amortizations {
		if a.Date.After(on) {
			break
		}
		notional = notional.Sub(a.Value)
	}
	return notional
}

// AccruedInterestOn returns the interest accrued per bond on day on since the
// start of the current coupon period. It grows linearly from zero at the
// period start, and is back to zero on the payment date.
func (s *Schedule) AccruedInterestOn(on date.Date) decimal.Decimal {
	for _, c := range s.Coupons {
		if on.Before(c.Start) || !on.Before(c.Date) {
			continue
		}
		period := c.Date.DaysSince(c.Start)
		if period <= 0 {
			return decimal.Zero
		}
		elapsed := decimal.NewFromInt(int64(on.DaysSince(c.Start)))
		return c.Value.Mul(elapsed).Div(decimal.NewFromInt(int64(period))).Round(2)
	}
	return decimal.Zero
}

// Bond loads the amortization and coupon schedule of the bond.
func (b *BondSecurity) Bond(ctx context.Context) (statements.Bond, error) {
	return b.Schedule(ctx)
}

// Schedule is like Bond, with the concrete type.
func (b *BondSecurity) Schedule(ctx context.Context) (*Schedule, error) {
	key := "bond:" + b.secid
	if s, ok := b.client.cache.Get(key); ok {
		return s.(*Schedule), nil
	}

	path := fmt.Sprintf("/securities/%s/bondization.json", url.PathEscape(b.secid))
	query := url.Values{"iss.only": {"amortizations,coupons"}, "limit": {"unlimited"}}
	jobj, err := b.client.jwget(ctx, b.client.daily, path, query)
	if err != nil {
		return nil, fmt.Errorf("cannot load schedule of %s: %w", b.secid, err)
	}
	s, err := parseSchedule(jobj)
	if err != nil {
		return nil, fmt.Errorf("cannot read schedule of %s: %w", b.secid, err)
	}
	b.client.cache.Set(key, s, cache.NoExpiration)
	return s, nil
}

func parseSchedule(jobj any) (*Schedule, error) {
	amort, err := table(jobj, "$.amortizations")
	if err != nil {
		return nil, err
	}
	coupons, err := table(jobj, "$.coupons")
	if err != nil {
		return nil, err
	}

	s := new(Schedule)
	for _, row := range amort.rows {
		if s.InitialFaceValue.IsZero() {
			s.InitialFaceValue, _ = number(amort.value(row, "initialfacevalue"))
		}
		on, err := cellDate(amort.value(row, "amortdate"))
		if err != nil {
			return nil, fmt.Errorf("amortization: %w", err)
		}
		value, _ := number(amort.value(row, "value"))
		s.Amortizations = append(s.Amortizations, Amortization{Date: on, Value: value})
	}
	for _, row := range coupons.rows {
		if s.InitialFaceValue.IsZero() {
			s.InitialFaceValue, _ = number(coupons.value(row, "initialfacevalue"))
		}
		start, err := cellDate(coupons.value(row, "startdate"))
		if err != nil {
			return nil, fmt.Errorf("coupon: %w", err)
		}
		on, err := cellDate(coupons.value(row, "coupondate"))
		if err != nil {
			return nil, fmt.Errorf("coupon: %w", err)
		}
		value, _ := number(coupons.value(row, "value"))
		s.Coupons = append(s.Coupons, Coupon{Start: start, Date: on, Value: value})
	}
	if s.InitialFaceValue.IsZero() {
		return nil, fmt.Errorf("no face value")
	}
	slices.SortFunc(s.Amortizations, func(a, b Amortization) int { return a.Date.Compare(b.Date) })
	slices.SortFunc(s.Coupons, func(a, b Coupon) int { return a.Date.Compare(b.Date) })
	return s, nil
}

func cellDate(v any) (date.Date, error) {
	s, ok := v.(string)
	if !ok {
		return date.Date{}, fmt.Errorf("invalid date %v", v)
	}
	return date.Parse(s)
}
