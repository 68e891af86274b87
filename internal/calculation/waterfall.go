package calculation

import (
	"github.com/rpgo/networth-projector/internal/domain"
	dec "github.com/rpgo/networth-projector/pkg/decimal"
	"github.com/shopspring/decimal"
)

// drawEpsilon absorbs the rounding left over from inverting a tax factor.
var drawEpsilon = decimal.New(1, -6)

// WaterfallState is where a year's shortfall ended up.
type WaterfallState int

const (
	// StateCovered means income met expenses; no asset was touched.
	StateCovered WaterfallState = iota
	// StateDrawing means the shortfall was met by drawing on liquid assets.
	StateDrawing
	// StateExhausted means eligible liquid assets ran out with a shortfall remaining.
	StateExhausted
)

func (s WaterfallState) String() string {
	switch s {
	case StateCovered:
		return "covered"
	case StateDrawing:
		return "drawing"
	case StateExhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// WaterfallResult records how a shortfall was handled.
type WaterfallResult struct {
	State     WaterfallState
	Shortfall decimal.Decimal
	Unmet     decimal.Decimal
	Draws     []Withdrawal
}

// Proceeds sums the after-tax cash raised.
func (r WaterfallResult) Proceeds() decimal.Decimal {
	total := decimal.Zero
	for _, d := range r.Draws {
		total = total.Add(d.Proceeds)
	}
	return total
}

// WithdrawalWaterfall covers shortfalls by walking liquid sources in a fixed order.
type WithdrawalWaterfall struct {
	Order         []domain.WithdrawalSource
	WithdrawalAge int
	Tolerance     decimal.Decimal
}

// NewWithdrawalWaterfall builds the waterfall for a policy. Pre-tax money is only
// eligible from withdrawalAge onward.
func NewWithdrawalWaterfall(policy domain.WithdrawalPolicy, withdrawalAge int) *WithdrawalWaterfall {
	order := policy.Order
	if len(order) == 0 {
		order = domain.DefaultWithdrawalOrder
	}
	return &WithdrawalWaterfall{Order: order, WithdrawalAge: withdrawalAge, Tolerance: policy.ShortfallTolerance}
}

// Cover draws from ledger until the after-tax shortfall is met or every eligible source is empty.
func (w *WithdrawalWaterfall) Cover(ledger *Ledger, shortfall decimal.Decimal, age int) (WaterfallResult, error) {
	res := WaterfallResult{State: StateCovered, Shortfall: dec.NonNegative(shortfall), Unmet: decimal.Zero}
	if !shortfall.IsPositive() {
		return res, nil
	}

	res.State = StateDrawing
	remaining := shortfall
	for _, src := range w.Order {
		if src == domain.SourcePreTax && age < w.WithdrawalAge {
			continue
		}
		for _, i := range ledger.IndicesFor(src) {
			if remaining.LessThanOrEqual(drawEpsilon) {
				break
			}
			if !ledger.Balance(i).IsPositive() {
				continue
			}
			gross, ok := ledger.GrossForProceeds(i, remaining)
			if !ok {
				continue
			}
			wd, err := ledger.Withdraw(i, gross)
			if err != nil {
				return res, err
			}
			if wd.Gross.IsZero() {
				continue
			}
			res.Draws = append(res.Draws, wd)
			remaining = remaining.Sub(wd.Proceeds)
		}
	}

	remaining = dec.NonNegative(remaining)
	if remaining.GreaterThan(drawEpsilon) {
		res.Unmet = remaining
	}
	// Gaps within the tolerance are still recorded but do not deplete the run.
	if remaining.GreaterThan(dec.Max(w.Tolerance, drawEpsilon)) {
		res.State = StateExhausted
	}
	return res, nil
}
