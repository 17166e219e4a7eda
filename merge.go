package statements

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/etnz/statements/date"
	"go.uber.org/zap"
)

// Reconciler merges overlapping statements into one account history.
type Reconciler struct {
	log *zap.Logger
}

// NewReconciler returns a Reconciler logging to log. A nil log discards logs.
func NewReconciler(log *zap.Logger) *Reconciler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Reconciler{log: log}
}

// Merge is a shortcut for a Reconciler without logs.
func Merge(snapshots ...*Snapshot) (*Snapshot, error) {
	return NewReconciler(nil).Merge(snapshots...)
}

// Merge combines snapshots into a new Snapshot, inputs are left untouched.
//
// Identifying fields are unioned, and the start date is the earliest one.
//
// Trades are deduplicated by trade id, the first one in input order wins: a
// trade settled the day after it was made appears in both daily statements.
// Trades are sorted by their numeric trade id, a non numeric id is an error.
//
// Cash flows have no identifier, they are all kept, even the ones repeated by
// overlapping statements, and sorted by date, venue and currency.
func (r *Reconciler) Merge(snapshots ...*Snapshot) (*Snapshot, error) {
	if len(snapshots) == 0 {
		return nil, errors.New("no snapshot to merge")
	}

	merged := &Snapshot{}
	starts := make([]date.Date, 0, len(snapshots))
	equities := make(map[string]EquityTrade)
	fxs := make(map[string]FxTrade)

	for _, s := range snapshots {
		r.log.Debug("joining snapshot", zap.String("source", s.Source()))
		merged.Clients = appendUnique(merged.Clients, s.Clients...)
		merged.Accounts = appendUnique(merged.Accounts, s.Accounts...)
		merged.Sources = appendUnique(merged.Sources, s.Sources...)
		starts = append(starts, s.StartDate)

		for _, t := range s.EquityTrades {
			if _, seen := equities[t.TradeID]; seen {
				r.log.Debug("equity trade already seen, skipping", zap.String("trade_id", t.TradeID), zap.String("source", s.Source()))
				continue
			}
			equities[t.TradeID] = t
		}
		for _, t := range s.FxTrades {
			if _, seen := fxs[t.TradeID]; seen {
				r.log.Debug("fx trade already seen, skipping", zap.String("trade_id", t.TradeID), zap.String("source", s.Source()))
				continue
			}
			fxs[t.TradeID] = t
		}
		merged.Cashflows = append(merged.Cashflows, s.Cashflows...)
	}
	merged.StartDate = date.Min(starts...)

	slices.SortStableFunc(merged.Cashflows, func(a, b Cashflow) int {
		return cmp.Or(
			a.Date.Compare(b.Date),
			strings.Compare(a.Venue, b.Venue),
			strings.Compare(a.Currency, b.Currency),
		)
	})

	var err error
	if merged.EquityTrades, err = sortByTradeID(equities); err != nil {
		return nil, fmt.Errorf("cannot sort equity trades: %w", err)
	}
	if merged.FxTrades, err = sortByTradeID(fxs); err != nil {
		return nil, fmt.Errorf("cannot sort fx trades: %w", err)
	}

	r.log.Info("snapshots merged",
		zap.Int("snapshots", len(snapshots)),
		zap.Int("cashflows", len(merged.Cashflows)),
		zap.Int("equity_trades", len(merged.EquityTrades)),
		zap.Int("fx_trades", len(merged.FxTrades)),
	)
	return merged, nil
}

// sortByTradeID returns the values of trades ordered by their key interpreted as an integer.
func sortByTradeID[T any](trades map[string]T) ([]T, error) {
	type keyed struct {
		id  int64
		raw string
		t   T
	}
	list := make([]keyed, 0, len(trades))
	for id, t := range trades {
		n, err := strconv.ParseInt(strings.TrimSpace(id), 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", ErrTradeID, id)
		}
		list = append(list, keyed{n, id, t})
	}
	slices.SortFunc(list, func(a, b keyed) int {
		return cmp.Or(cmp.Compare(a.id, b.id), strings.Compare(a.raw, b.raw))
	})

	sorted := make([]T, len(list))
	for i, k := range list {
		sorted[i] = k.t
	}
	return sorted, nil
}

// appendUnique appends values not already in list.
func appendUnique(list []string, values ...string) []string {
	for _, v := range values {
		if !slices.Contains(list, v) {
			list = append(list, v)
		}
	}
	return list
}
