package dataset

import "errors"

var (
	// ErrUnsupportedFormat is returned for files that are neither .npy nor .csv
	ErrUnsupportedFormat = errors.New("unsupported returns file format")

	// ErrNotOneDimensional is returned when the array has more than one axis
	ErrNotOneDimensional = errors.New("returns array is not one-dimensional")

	// ErrUnsupportedDType is returned for non-numeric array element types
	ErrUnsupportedDType = errors.New("unsupported array element type")

	// ErrEmptySeries is returned when the file holds no observations
	ErrEmptySeries = errors.New("returns series is empty")

	// ErrNonFinite is returned when the series contains NaN or infinite values
	ErrNonFinite = errors.New("returns series contains non-finite values")

	// ErrChangePointOutOfRange is returned when tau is outside [0, N]
	ErrChangePointOutOfRange = errors.New("change point out of range")
)
