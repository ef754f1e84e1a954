package analytics

import (
	"math"

	"PropScope/internal/model"
)

// DefaultWilsonZ ~90% one-sided
const DefaultWilsonZ = 1.64

// minStandardError keeps the z-statistic finite when the shrunk estimate sits at 0 or 1
const minStandardError = 1e-6

// EdgeResult betting-edge outputs. Every field is Absent unless both the prop line and
// the odds were supplied; hit-based fields are also Absent for an empty series.
type EdgeResult struct {
	BreakEven    model.Optional[float64] `json:"break_even"`
	ProfitPer100 model.Optional[float64] `json:"profit_per_100"`
	HitCount     model.Optional[int]     `json:"hit_count"`
	HitRate      model.Optional[float64] `json:"hit_rate"`
	EVPer100     model.Optional[float64] `json:"ev_per_100"`
	WilsonLow    model.Optional[float64] `json:"wilson_low"`
	WilsonHigh   model.Optional[float64] `json:"wilson_high"`
	Confidence   model.Optional[float64] `json:"confidence"`
	FairLine     model.Optional[float64] `json:"fair_line"`
}

// BreakEven probability at which a bet at american odds has zero EV. Undefined for 0.
func BreakEven(american int) (float64, bool) {
	switch {
	case american > 0:
		return 100.0 / (float64(american) + 100.0), true
	case american < 0:
		a := float64(-american)
		return a / (a + 100.0), true
	}
	return 0, false
}

// ProfitPer100 winnings on a $100 stake. Undefined for 0.
func ProfitPer100(american int) (float64, bool) {
	switch {
	case american > 0:
		return float64(american), true
	case american < 0:
		return 100.0 * (100.0 / float64(-american)), true
	}
	return 0, false
}

// HitCount values at or above the line; a push on the line wins the over
func HitCount(series []float64, line float64) int {
	hits := 0
	for _, v := range series {
		if v >= line {
			hits++
		}
	}
	return hits
}

// ExpectedValuePer100 EV of a $100 stake
func ExpectedValuePer100(hitRate, profitPer100 float64) float64 {
	return hitRate*profitPer100 - (1-hitRate)*100
}

// WilsonInterval score interval for a binomial proportion, clamped to [0,1]
func WilsonInterval(pHat float64, n int, z float64) (float64, float64) {
	if n <= 0 {
		return 0, 0
	}
	nf := float64(n)
	z2 := z * z
	denom := 1 + z2/nf
	center := (pHat + z2/(2*nf)) / denom
	margin := z * math.Sqrt(pHat*(1-pHat)/nf+z2/(4*nf*nf)) / denom
	return math.Max(0, center-margin), math.Min(1, center+margin)
}

// NormalCDF standard normal cumulative distribution
func NormalCDF(x float64) float64 {
	return 0.5 * (1 + math.Erf(x/math.Sqrt2))
}

// Confidence probability of a positive edge. The observed hit rate is shrunk to the
// midpoint of its Wilson interval, then tested against the break-even probability.
func Confidence(hits, n int, breakEven, z float64) float64 {
	if n <= 0 {
		return 0
	}
	pHat := clamp01(float64(hits) / float64(n))
	lo, hi := WilsonInterval(pHat, n, z)
	mid := (lo + hi) / 2
	se := math.Max(minStandardError, math.Sqrt(mid*(1-mid)/float64(n)))
	return clamp01(NormalCDF((mid - breakEven) / se))
}

// EvaluateEdge computes every edge output for a filtered series
func EvaluateEdge(series []float64, in model.EdgeInputs, z float64) EdgeResult {
	var res EdgeResult
	line, hasLine := in.PropLine.Get()
	odds, hasOdds := in.AmericanOdds.Get()
	if !hasLine || !hasOdds {
		return res
	}
	be, ok := BreakEven(odds)
	if !ok {
		return res
	}
	profit, _ := ProfitPer100(odds)
	res.BreakEven = model.Some(be)
	res.ProfitPer100 = model.Some(profit)
	if fl, ok := FairLine(series, be); ok {
		res.FairLine = model.Some(fl)
	}

	n := len(series)
	if n == 0 {
		return res
	}
	if z <= 0 {
		z = DefaultWilsonZ
	}
	hits := HitCount(series, line)
	rate := float64(hits) / float64(n)
	lo, hi := WilsonInterval(rate, n, z)

	res.HitCount = model.Some(hits)
	res.HitRate = model.Some(rate)
	res.EVPer100 = model.Some(ExpectedValuePer100(rate, profit))
	res.WilsonLow = model.Some(lo)
	res.WilsonHigh = model.Some(hi)
	res.Confidence = model.Some(Confidence(hits, n, be, z))
	return res
}

func clamp01(x float64) float64 {
	return math.Max(0, math.Min(1, x))
}
