package analytics

import (
	"math"
	"sort"

	"PropScope/internal/model"
)

// FairLine the (1 - breakEven) empirical quantile of the series, nearest rank. An over at
// this line hits about as often as the odds require.
func FairLine(series []float64, breakEven float64) (float64, bool) {
	if len(series) == 0 || math.IsNaN(breakEven) {
		return 0, false
	}
	s := append([]float64(nil), series...)
	sort.Float64s(s)
	q := clamp01(1 - breakEven)
	idx := int(math.Round(q * float64(len(s)-1)))
	return s[idx], true
}

// Pearson correlation coefficient; 0 when undefined
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n == 0 || n != len(ys) {
		return 0
	}
	mx, my := Mean(xs), Mean(ys)
	var num, dx, dy float64
	for i := range xs {
		a, b := xs[i]-mx, ys[i]-my
		num += a * b
		dx += a * a
		dy += b * b
	}
	denom := math.Sqrt(dx * dy)
	if denom == 0 {
		return 0
	}
	return num / denom
}

// Trend direction markers for correlation hints
const (
	TrendUp   = "up"
	TrendDown = "down"
	TrendFlat = "flat"
)

const trendThreshold = 0.35

// Correlation one pairwise hint
type Correlation struct {
	Pair  string  `json:"pair"`
	Value float64 `json:"value"`
	Trend string  `json:"trend"`
}

// CorrelationHints PTS vs 3PM and REB vs MIN over the filtered rows
func CorrelationHints(rows []model.EnrichedGame) []Correlation {
	pts := make([]float64, len(rows))
	threes := make([]float64, len(rows))
	reb := make([]float64, len(rows))
	mins := make([]float64, len(rows))
	for i, g := range rows {
		pts[i] = float64(g.Points)
		threes[i] = float64(g.ThreePointersMade)
		reb[i] = float64(g.Rebounds)
		mins[i] = g.Minutes
	}
	return []Correlation{
		newCorrelation("pts_fg3m", Pearson(pts, threes)),
		newCorrelation("reb_min", Pearson(reb, mins)),
	}
}

func newCorrelation(pair string, c float64) Correlation {
	trend := TrendFlat
	switch {
	case c > trendThreshold:
		trend = TrendUp
	case c < -trendThreshold:
		trend = TrendDown
	}
	return Correlation{Pair: pair, Value: c, Trend: trend}
}
