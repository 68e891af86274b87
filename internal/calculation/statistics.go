package calculation

import (
	"slices"

	"github.com/shopspring/decimal"
)

var (
	p10 = decimal.NewFromFloat(0.10)
	p25 = decimal.NewFromFloat(0.25)
	p50 = decimal.NewFromFloat(0.50)
	p75 = decimal.NewFromFloat(0.75)
	p90 = decimal.NewFromFloat(0.90)
)

// sortedCopy returns values in ascending order without touching the input.
func sortedCopy(values []decimal.Decimal) []decimal.Decimal {
	out := slices.Clone(values)
	slices.SortFunc(out, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	return out
}

// percentileSorted interpolates linearly between closest ranks: h = (n-1)p.
// sorted must be ascending and non-empty.
func percentileSorted(sorted []decimal.Decimal, p decimal.Decimal) decimal.Decimal {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	h := p.Mul(decimal.NewFromInt(int64(n - 1)))
	lo := int(h.Floor().IntPart())
	if lo >= n-1 {
		return sorted[n-1]
	}
	if lo < 0 {
		return sorted[0]
	}
	frac := h.Sub(decimal.NewFromInt(int64(lo)))
	if frac.IsZero() {
		return sorted[lo]
	}
	return sorted[lo].Add(frac.Mul(sorted[lo+1].Sub(sorted[lo])))
}

// Percentile returns the p-th quantile (0 <= p <= 1) of values.
func Percentile(values []decimal.Decimal, p decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	return percentileSorted(sortedCopy(values), p)
}

// Mean is the arithmetic mean; zero for an empty slice.
func Mean(values []decimal.Decimal) decimal.Decimal {
	if len(values) == 0 {
		return decimal.Zero
	}
	sum := decimal.Zero
	for _, v := range values {
		sum = sum.Add(v)
	}
	return sum.Div(decimal.NewFromInt(int64(len(values))))
}

// distribution holds the summary statistics of one year across runs.
type distribution struct {
	Min, P10, P25, P50, P75, P90, Max, Mean decimal.Decimal
}

func summarizeValues(values []decimal.Decimal) distribution {
	if len(values) == 0 {
		return distribution{}
	}
	sorted := sortedCopy(values)
	return distribution{
		Min:  sorted[0],
		P10:  percentileSorted(sorted, p10),
		P25:  percentileSorted(sorted, p25),
		P50:  percentileSorted(sorted, p50),
		P75:  percentileSorted(sorted, p75),
		P90:  percentileSorted(sorted, p90),
		Max:  sorted[len(sorted)-1],
		Mean: Mean(values),
	}
}

func floatsToDecimals(values []float64) []decimal.Decimal {
	out := make([]decimal.Decimal, len(values))
	for i, v := range values {
		out[i] = decimal.NewFromFloat(v)
	}
	return out
}
