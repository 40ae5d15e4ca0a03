package heuristics

import "math"

const (
	TrendImproving = "improving"
	TrendDeclining = "declining"
	TrendStable    = "stable"

	VolatilityHigh   = "high"
	VolatilityMedium = "medium"
	VolatilityLow    = "low"

	ImpactPositive = "positive"
	ImpactNegative = "negative"
	ImpactNeutral  = "neutral"

	// CorrelationThreshold is the |r| above which a habit counts as influential.
	CorrelationThreshold = 0.3
)

func Mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	sum := 0.0
	for _, x := range xs {
		sum += x
	}
	return sum / float64(len(xs))
}

// StdDev is the population standard deviation.
func StdDev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	m := Mean(xs)
	ss := 0.0
	for _, x := range xs {
		d := x - m
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// Trend compares the first and last values of a chronological series.
func Trend(xs []float64) string {
	if len(xs) < 2 {
		return TrendStable
	}
	first, last := xs[0], xs[len(xs)-1]
	switch {
	case last > first:
		return TrendImproving
	case last < first:
		return TrendDeclining
	default:
		return TrendStable
	}
}

func Volatility(std float64) string {
	switch {
	case std > 2:
		return VolatilityHigh
	case std > 1:
		return VolatilityMedium
	default:
		return VolatilityLow
	}
}

// ArgMax returns the index of the first maximum, or -1 for an empty series.
func ArgMax(xs []float64) int {
	if len(xs) == 0 {
		return -1
	}
	best := 0
	for i, x := range xs {
		if x > xs[best] {
			best = i
		}
	}
	return best
}

// ArgMin returns the index of the first minimum, or -1 for an empty series.
func ArgMin(xs []float64) int {
	if len(xs) == 0 {
		return -1
	}
	worst := 0
	for i, x := range xs {
		if x < xs[worst] {
			worst = i
		}
	}
	return worst
}

func MinMax(xs []float64) (float64, float64) {
	if len(xs) == 0 {
		return 0, 0
	}
	lo, hi := xs[0], xs[0]
	for _, x := range xs[1:] {
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	return lo, hi
}

// Round2 rounds half away from zero to two decimals.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}

// Pearson returns the sample correlation of paired series. ok is false when
// fewer than two pairs exist or either series has zero variance.
func Pearson(x, y []float64) (float64, bool) {
	n := len(x)
	if n != len(y) || n < 2 {
		return 0, false
	}
	mx, my := Mean(x), Mean(y)
	var sxy, sxx, syy float64
	for i := 0; i < n; i++ {
		dx, dy := x[i]-mx, y[i]-my
		sxy += dx * dy
		sxx += dx * dx
		syy += dy * dy
	}
	if sxx == 0 || syy == 0 {
		return 0, false
	}
	r := sxy / math.Sqrt(sxx*syy)
	return math.Max(-1, math.Min(1, r)), true
}

func CorrelationImpact(r float64) string {
	switch {
	case r > CorrelationThreshold:
		return ImpactPositive
	case r < -CorrelationThreshold:
		return ImpactNegative
	default:
		return ImpactNeutral
	}
}
