package domain

// ReturnPoint is one element of the log-return series as served by /api/data.
type ReturnPoint struct {
	LogReturn float64 `json:"log_returns"`
}

// ChangePoint carries the split index of the return series.
type ChangePoint struct {
	Index int `json:"change_point"`
}

// SegmentStats holds the distributional summary of one side of the change point.
// Kurtosis is excess kurtosis (normal distribution = 0).
type SegmentStats struct {
	Mean     float64 `json:"mean"`
	Std      float64 `json:"std"`
	Skewness float64 `json:"skewness"`
	Kurtosis float64 `json:"kurtosis"`
}

// SummaryStats pairs the statistics of the segments before and after the change point.
type SummaryStats struct {
	Before SegmentStats `json:"before"`
	After  SegmentStats `json:"after"`
}

// Segment names used in responses, logs and problem details
const (
	SegmentBefore = "before"
	SegmentAfter  = "after"
)
