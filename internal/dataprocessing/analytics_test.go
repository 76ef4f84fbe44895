package dataprocessing

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brentstats/pkg/contracts/domain"
)

func priceSeries(prices ...float64) *PriceSeries {
	s := &PriceSeries{Rows: len(prices)}
	for i, p := range prices {
		s.Points = append(s.Points, domain.PricePoint{Date: day(2020, 1, 1+i), Price: p})
	}
	return s
}

func TestLogReturns(t *testing.T) {
	s := priceSeries(100, 110, 99)

	returns := LogReturns(s.Points)
	require.Len(t, returns, 2)
	assert.InDelta(t, math.Log(1.1), returns[0].LogReturn, 1e-15)
	assert.InDelta(t, math.Log(0.9), returns[1].LogReturn, 1e-15)
	assert.Equal(t, day(2020, 1, 2), returns[0].Date)

	assert.Nil(t, LogReturns(s.Points[:1]))
	assert.Nil(t, LogReturns(nil))
}

func TestDescribePrices(t *testing.T) {
	desc := DescribePrices(priceSeries(100, 110, 99))

	assert.Equal(t, 3, desc.Count)
	assert.InDelta(t, 103.0, desc.Mean, 1e-12)
	assert.InDelta(t, math.Sqrt(37), desc.Std, 1e-12)
	assert.InDelta(t, math.Sqrt(37)/103, desc.CoefficientOfVariation, 1e-12)
	assert.Equal(t, 99.0, desc.Min)
	assert.Equal(t, 110.0, desc.Max)
	assert.InDelta(t, 100.0, desc.Median, 1e-9)
	assert.Equal(t, day(2020, 1, 1), desc.Start)
	assert.Equal(t, day(2020, 1, 3), desc.End)
}

func TestDescribeReturns(t *testing.T) {
	returns := LogReturns(priceSeries(100, 110, 99).Points)
	desc := DescribeReturns(returns)

	mean := (math.Log(1.1) + math.Log(0.9)) / 2
	assert.Equal(t, 2, desc.Count)
	assert.InDelta(t, mean, desc.Mean, 1e-15)
	assert.InDelta(t, math.Abs(math.Log(1.1)-math.Log(0.9))/math.Sqrt2, desc.Std, 1e-12)

	assert.Equal(t, domain.ReturnDescription{}, DescribeReturns(nil))
}
