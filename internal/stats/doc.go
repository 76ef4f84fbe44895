// Package stats computes the distributional summary of a return segment:
// arithmetic mean, sample standard deviation (n-1 divisor), biased
// Fisher-Pearson skewness and biased excess kurtosis.
//
// Skewness and kurtosis use population central moments
//
//	skewness = m3 / m2^1.5
//	kurtosis = m4 / m2^2 - 3
//
// which matches the conventional defaults of most scientific toolkits.
// A segment with zero variance has no defined shape; Summarize reports
// both shape statistics as 0 so the result stays JSON encodable.
package stats
