package calculation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStandardNormal_Deterministic(t *testing.T) {
	a := NewRandomSource(42)
	b := NewRandomSource(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, StandardNormal(a), StandardNormal(b))
	}
}

func TestNormalSampler_ZeroStdDevConsumesNothing(t *testing.T) {
	rng := NewRandomSource(7)
	ref := NewRandomSource(7)

	zero := NormalSampler{StdDev: 0}
	for i := 0; i < 10; i++ {
		assert.Equal(t, 0.0, zero.Sample(rng))
	}
	assert.Equal(t, ref.Float64(), rng.Float64(), "generator advanced by a zero-volatility sampler")
}

func TestSkewedStockSampler_ZeroStdDev(t *testing.T) {
	rng := NewRandomSource(7)
	ref := NewRandomSource(7)

	s := NewSkewedStockSampler(0)
	assert.Equal(t, 0.0, s.Sample(rng))
	assert.Equal(t, ref.Float64(), rng.Float64())
}

func TestSkewedStockSampler_LiteralMatchesConstructor(t *testing.T) {
	a, b := NewRandomSource(11), NewRandomSource(11)
	literal := SkewedStockSampler{StdDev: 0.15}
	built := NewSkewedStockSampler(0.15)

	nonZero := 0
	for i := 0; i < 1000; i++ {
		x := literal.Sample(a)
		assert.Equal(t, built.Sample(b), x)
		if x != 0 {
			nonZero++
		}
	}
	assert.Equal(t, 1000, nonZero)
}

func TestSkewedStockSampler_Moments(t *testing.T) {
	const (
		n     = 100000
		sigma = 0.15
	)
	rng := NewRandomSource(20240501)
	s := NewSkewedStockSampler(sigma)

	var sum, sumSq float64
	below := 0
	for i := 0; i < n; i++ {
		x := s.Sample(rng)
		sum += x
		sumSq += x * x
		if x < -0.20 {
			below++
		}
	}
	mean := sum / n
	sd := math.Sqrt(sumSq/n - mean*mean)

	assert.InDelta(t, 0, mean, 0.01, "mean")
	assert.InDelta(t, sigma, sd, sigma*0.05, "standard deviation")

	// P(Z < -0.20/0.15) for a symmetric normal with the same sd.
	symmetric := 0.5 * math.Erfc(0.20/sigma/math.Sqrt2)
	tail := float64(below) / n
	assert.Greater(t, tail, symmetric*1.08, "crash tail %.4f should exceed symmetric %.4f", tail, symmetric)
}

func TestMixtureRawVariance_CentredMixture(t *testing.T) {
	mean := crashProbability*crashMean + (1-crashProbability)*calmMean
	assert.InDelta(t, 0, mean, 1e-12)
	assert.Greater(t, mixtureRawVariance(), 0.0)
}

func TestSampledShocks_SameSeedSameSequence(t *testing.T) {
	vol := Volatility{Stock: 0.15, RealEstate: 0.08, Inflation: 0.01}
	a := NewSampledShocks(99, vol)
	b := NewSampledShocks(99, vol)
	c := NewSampledShocks(100, vol)

	differs := false
	for i := 0; i < 50; i++ {
		sa, sb, sc := a.Next(), b.Next(), c.Next()
		require.Equal(t, sa, sb)
		if sa != sc {
			differs = true
		}
	}
	assert.True(t, differs, "different seeds produced identical sequences")
}

func TestSampledShocks_ZeroVolatilityIsZero(t *testing.T) {
	p := NewSampledShocks(1, Volatility{})
	for i := 0; i < 10; i++ {
		assert.Equal(t, YearShocks{}, p.Next())
	}
}

func TestSampledShocks_DrawOrder(t *testing.T) {
	// With only real-estate volatility, the first real-estate draw is the first normal from the seed.
	p := NewSampledShocks(5, Volatility{RealEstate: 0.1})
	ref := NewRandomSource(5)
	got := p.Next()
	assert.Equal(t, 0.0, got.Stock)
	assert.Equal(t, 0.1*StandardNormal(ref), got.RealEstate)
	assert.Equal(t, 0.0, got.Inflation)
}
