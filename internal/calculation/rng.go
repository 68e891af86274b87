package calculation

import (
	"math"
	"math/rand"
)

// Two-regime stock return mixture. The calm-regime mean offsets the crash
// regime so the mixture is centred on zero before scaling.
const (
	crashProbability = 0.12
	crashMean        = -0.35
	crashStdDev      = 0.12
	calmStdDev       = 0.08
)

var (
	calmMean      = -crashProbability * crashMean / (1 - crashProbability)
	mixtureStdDev = math.Sqrt(mixtureRawVariance())
)

// NewRandomSource returns a generator that replays the same sequence for the same seed.
func NewRandomSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// StandardNormal draws N(0,1) with the Box-Muller transform.
func StandardNormal(rng *rand.Rand) float64 {
	u1 := openUnit(rng)
	u2 := openUnit(rng)
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

// openUnit draws from (0,1); rand.Float64 can return exactly 0, which would make log(u) infinite.
func openUnit(rng *rand.Rand) float64 {
	for {
		if u := rng.Float64(); u > 0 {
			return u
		}
	}
}

// Sampler produces one shock per call.
type Sampler interface {
	Sample(rng *rand.Rand) float64
}

// NormalSampler draws N(0, StdDev). A non-positive StdDev always yields 0 without touching the generator.
type NormalSampler struct {
	StdDev float64
}

func (s NormalSampler) Sample(rng *rand.Rand) float64 {
	if s.StdDev <= 0 {
		return 0
	}
	return s.StdDev * StandardNormal(rng)
}

// SkewedStockSampler draws from the crash/calm mixture rescaled to a target standard deviation.
type SkewedStockSampler struct {
	StdDev float64
}

func NewSkewedStockSampler(stdDev float64) SkewedStockSampler {
	return SkewedStockSampler{StdDev: stdDev}
}

func (s SkewedStockSampler) Sample(rng *rand.Rand) float64 {
	if s.StdDev <= 0 {
		return 0
	}
	var raw float64
	if rng.Float64() < crashProbability {
		raw = crashMean + crashStdDev*StandardNormal(rng)
	} else {
		raw = calmMean + calmStdDev*StandardNormal(rng)
	}
	return raw * (s.StdDev / mixtureStdDev)
}

// mixtureRawVariance is E[X^2] - E[X]^2 of the unscaled mixture.
func mixtureRawVariance() float64 {
	p := crashProbability
	mean := p*crashMean + (1-p)*calmMean
	second := p*(crashStdDev*crashStdDev+crashMean*crashMean) +
		(1-p)*(calmStdDev*calmStdDev+calmMean*calmMean)
	return second - mean*mean
}

// YearShocks are the deviations applied to one simulated year, shared by every holding of a class.
type YearShocks struct {
	Stock      float64
	RealEstate float64
	Inflation  float64
}

// ShockProvider yields exactly one YearShocks per simulated year.
type ShockProvider interface {
	Next() YearShocks
}

// ZeroShocks is the deterministic provider.
type ZeroShocks struct{}

func (ZeroShocks) Next() YearShocks { return YearShocks{} }

// Volatility is the per-class standard deviation of annual shocks.
type Volatility struct {
	Stock      float64
	RealEstate float64
	Inflation  float64
}

type sampledShocks struct {
	rng        *rand.Rand
	stock      Sampler
	realEstate Sampler
	inflation  Sampler
}

// NewSampledShocks builds a provider that owns its generator. Draw order per year
// is stock, real estate, inflation, so a seed always maps to the same sequence.
func NewSampledShocks(seed int64, vol Volatility) ShockProvider {
	return &sampledShocks{
		rng:        NewRandomSource(seed),
		stock:      NewSkewedStockSampler(vol.Stock),
		realEstate: NormalSampler{StdDev: vol.RealEstate},
		inflation:  NormalSampler{StdDev: vol.Inflation},
	}
}

func (s *sampledShocks) Next() YearShocks {
	return YearShocks{
		Stock:      s.stock.Sample(s.rng),
		RealEstate: s.realEstate.Sample(s.rng),
		Inflation:  s.inflation.Sample(s.rng),
	}
}
