package dataset

import (
	"fmt"
	"math"
	"slices"
)

// Snapshot is an immutable return series together with its change point.
// The before segment is [0, ChangePoint) and the after segment is
// [ChangePoint, Len).
type Snapshot struct {
	returns []float64
	tau     int
}

// NewSnapshot validates and copies returns. Every value must be finite and
// tau must lie in [0, len(returns)].
func NewSnapshot(returns []float64, tau int) (*Snapshot, error) {
	if len(returns) == 0 {
		return nil, ErrEmptySeries
	}
	for i, v := range returns {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: index %d is %v", ErrNonFinite, i, v)
		}
	}
	if tau < 0 || tau > len(returns) {
		return nil, fmt.Errorf("%w: %d not in [0, %d]", ErrChangePointOutOfRange, tau, len(returns))
	}

	return &Snapshot{returns: slices.Clone(returns), tau: tau}, nil
}

// Load reads the return series at path and binds it to tau.
func Load(path string, tau int) (*Snapshot, error) {
	returns, err := LoadReturns(path)
	if err != nil {
		return nil, err
	}
	snap, err := NewSnapshot(returns, tau)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return snap, nil
}

// Len returns the number of observations
func (s *Snapshot) Len() int { return len(s.returns) }

// ChangePoint returns tau
func (s *Snapshot) ChangePoint() int { return s.tau }

// Values returns a copy of the full series in index order
func (s *Snapshot) Values() []float64 { return slices.Clone(s.returns) }

// Before returns a copy of the segment preceding the change point
func (s *Snapshot) Before() []float64 { return slices.Clone(s.returns[:s.tau]) }

// After returns a copy of the segment from the change point onwards
func (s *Snapshot) After() []float64 { return slices.Clone(s.returns[s.tau:]) }
