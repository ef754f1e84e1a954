package analytics

import (
	"math"
	"sort"

	"PropScope/internal/model"
)

// DefaultRecencyWeight is proportional to the weighting 0.5 + (n-i)/n
const DefaultRecencyWeight = 2.0

// Summary aggregates of one stat over the filtered rows. Empty inputs give zeros.
type Summary struct {
	Stat        model.StatKey `json:"stat"`
	Games       int           `json:"games"`
	SeasonAvg   float64       `json:"season_avg"`
	HomeAvg     float64       `json:"home_avg"`
	AwayAvg     float64       `json:"away_avg"`
	Last3Avg    float64       `json:"last3_avg"`
	Last5Avg    float64       `json:"last5_avg"`
	WeightedAvg float64       `json:"weighted_avg"`
	Median      float64       `json:"median"`
	Min         float64       `json:"min"`
	Max         float64       `json:"max"`
}

// Series extracts stat values newest first. rows are re-sorted on a copy, so callers may
// pass any order.
func Series(rows []model.EnrichedGame, stat model.StatKey) []float64 {
	sorted := make([]model.EnrichedGame, len(rows))
	copy(sorted, rows)
	SortNewestFirst(sorted)
	out := make([]float64, len(sorted))
	for i, g := range sorted {
		out[i] = stat.Value(g)
	}
	return out
}

// Summarize computes every aggregate for stat over rows
func Summarize(rows []model.EnrichedGame, stat model.StatKey, recencyWeight float64) Summary {
	series := Series(rows, stat)

	var home, away []float64
	for _, g := range rows {
		switch g.HomeAway {
		case model.Home:
			home = append(home, stat.Value(g))
		case model.Away:
			away = append(away, stat.Value(g))
		}
	}

	lo, hi := MinMax(series)
	return Summary{
		Stat:        stat,
		Games:       len(series),
		SeasonAvg:   Mean(series),
		HomeAvg:     Mean(home),
		AwayAvg:     Mean(away),
		Last3Avg:    Mean(head(series, 3)),
		Last5Avg:    Mean(head(series, 5)),
		WeightedAvg: WeightedMean(series, recencyWeight),
		Median:      Median(series),
		Min:         lo,
		Max:         hi,
	}
}

// Mean arithmetic mean, 0 for an empty slice
func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// RecencyWeights weights for a newest-first series of length n:
// w_i = 1 + r*(n-i)/n. Non-increasing with age for r >= 0; all ones for r == 0.
func RecencyWeights(n int, r float64) []float64 {
	if r < 0 {
		r = 0
	}
	w := make([]float64, n)
	for i := range w {
		w[i] = 1 + r*float64(n-i)/float64(n)
	}
	return w
}

// WeightedMean recency-weighted mean of a newest-first series
func WeightedMean(newestFirst []float64, recencyWeight float64) float64 {
	n := len(newestFirst)
	if n == 0 {
		return 0
	}
	if recencyWeight <= 0 {
		return Mean(newestFirst)
	}
	weights := RecencyWeights(n, recencyWeight)
	var sum, total float64
	for i, v := range newestFirst {
		sum += v * weights[i]
		total += weights[i]
	}
	return sum / total
}

// Median of xs, 0 when empty
func Median(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	s := append([]float64(nil), xs...)
	sort.Float64s(s)
	mid := len(s) / 2
	if len(s)%2 == 1 {
		return s[mid]
	}
	return (s[mid-1] + s[mid]) / 2
}

// MinMax smallest and largest values, zeros when empty
func MinMax(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, x := range xs {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

func head(xs []float64, n int) []float64 {
	if len(xs) < n {
		return xs
	}
	return xs[:n]
}
