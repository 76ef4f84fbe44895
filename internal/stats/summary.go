package stats

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"brentstats/pkg/contracts/domain"
)

// MinSegmentLength is the smallest segment for which a sample standard
// deviation is defined.
const MinSegmentLength = 2

// ErrInsufficientData is returned when a segment is shorter than MinSegmentLength
var ErrInsufficientData = errors.New("insufficient data")

// ErrNonFinite is returned when a segment holds NaN or infinite values
var ErrNonFinite = errors.New("non-finite value")

// Summarize computes the segment statistics of xs.
func Summarize(xs []float64) (domain.SegmentStats, error) {
	if len(xs) < MinSegmentLength {
		return domain.SegmentStats{}, fmt.Errorf("%w: %d observations, need at least %d",
			ErrInsufficientData, len(xs), MinSegmentLength)
	}
	if i := firstNonFinite(xs); i >= 0 {
		return domain.SegmentStats{}, fmt.Errorf("%w at index %d", ErrNonFinite, i)
	}

	mean, std := stat.MeanStdDev(xs, nil)

	// population central moments
	m2 := stat.Moment(2, xs, nil)
	m3 := stat.Moment(3, xs, nil)
	m4 := stat.Moment(4, xs, nil)

	out := domain.SegmentStats{Mean: mean, Std: std}
	// constant segments can leave rounding noise in m2
	if m2 <= 0 || floats.Min(xs) == floats.Max(xs) {
		out.Std = 0
		return out, nil
	}

	out.Skewness = m3 / math.Pow(m2, 1.5)
	out.Kurtosis = m4/(m2*m2) - 3
	return out, nil
}

func firstNonFinite(xs []float64) int {
	for i, x := range xs {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return i
		}
	}
	return -1
}
