package dataprocessing

import (
	"math"

	"github.com/aclements/go-moremath/stats"

	"brentstats/pkg/contracts/domain"
)

// DescribePrices summarizes a cleaned price series. Std is the sample
// standard deviation; the coefficient of variation is std/mean.
func DescribePrices(s *PriceSeries) domain.PriceDescription {
	sample := stats.Sample{Xs: s.Prices()}
	lo, hi := sample.Bounds()
	mean := sample.Mean()
	std := sample.StdDev()

	desc := domain.PriceDescription{
		Count:  len(s.Points),
		Start:  s.Start(),
		End:    s.End(),
		Min:    lo,
		Max:    hi,
		Mean:   mean,
		Std:    std,
		Median: sample.Copy().Sort().Quantile(0.5),
	}
	if mean != 0 {
		desc.CoefficientOfVariation = std / mean
	}
	return desc
}

// LogReturns derives ln(p[i]/p[i-1]) for i >= 1, dated by the later price.
// The undefined first entry is dropped, so the result has len(points)-1
// observations.
func LogReturns(points []domain.PricePoint) []domain.ReturnObservation {
	if len(points) < 2 {
		return nil
	}

	out := make([]domain.ReturnObservation, 0, len(points)-1)
	for i := 1; i < len(points); i++ {
		out = append(out, domain.ReturnObservation{
			Date:      points[i].Date,
			LogReturn: math.Log(points[i].Price / points[i-1].Price),
		})
	}
	return out
}

// ReturnValues extracts the log-return column
func ReturnValues(returns []domain.ReturnObservation) []float64 {
	out := make([]float64, len(returns))
	for i, r := range returns {
		out[i] = r.LogReturn
	}
	return out
}

// DescribeReturns reports the count, mean and sample standard deviation of
// returns. An empty series reports zeros.
func DescribeReturns(returns []domain.ReturnObservation) domain.ReturnDescription {
	if len(returns) == 0 {
		return domain.ReturnDescription{}
	}

	sample := stats.Sample{Xs: ReturnValues(returns)}
	return domain.ReturnDescription{
		Count: len(returns),
		Mean:  sample.Mean(),
		Std:   sample.StdDev(),
	}
}
