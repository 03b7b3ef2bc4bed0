// Package stats summarizes the results of many self-play games.
package stats

import (
	"math"

	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
)

// ZVal returns the two-tailed Z-value associated with a specific confidence interval.
// The interval is a number from 0 to 100 percent.
func ZVal(confidenceInterval float64) float64 {
	dist := distuv.UnitNormal
	area := (1 + (confidenceInterval / 100)) / 2
	return dist.Quantile(area)
}

// Proportion is a win rate with a normal-approximation confidence interval.
type Proportion struct {
	Rate float64
	Low  float64
	High float64
}

// WinRate turns wins (ties count as half a win) over n games into a
// Proportion at the given confidence percentage.
func WinRate(wins float64, n int, confidence float64) Proportion {
	if n == 0 {
		return Proportion{}
	}
	p := wins / float64(n)
	halfWidth := ZVal(confidence) * math.Sqrt(p*(1-p)/float64(n))
	return Proportion{
		Rate: p,
		Low:  math.Max(0, p-halfWidth),
		High: math.Min(1, p+halfWidth),
	}
}

// MeanStdDev is the sample mean and standard deviation of xs; both are 0
// for an empty sample and the deviation is 0 for a single value.
func MeanStdDev(xs []float64) (mean, stdev float64) {
	switch len(xs) {
	case 0:
		return 0, 0
	case 1:
		return xs[0], 0
	}
	return stat.MeanStdDev(xs, nil)
}
