package timeline

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidState is returned when an operation is called in a state
	// that forbids it, e.g. setting the duration twice without a reset.
	ErrInvalidState = errors.New("timeline: invalid state")
	// ErrInvalidRange is returned for out-of-domain or order-violating
	// time values. Callers are expected to pre-clamp; hitting this error
	// is a programming mistake, not a condition to retry.
	ErrInvalidRange = errors.New("timeline: invalid range")
)

// Range is an immutable [Start, End) interval in seconds.
type Range struct {
	Start float64
	End   float64
}

// NewRange validates and returns a range. Start must not be negative and
// must not exceed End.
func NewRange(start, end float64) (Range, error) {
	if start < 0 || end < start {
		return Range{}, fmt.Errorf("%w: [%g, %g)", ErrInvalidRange, start, end)
	}
	return Range{Start: start, End: end}, nil
}

// Span returns the length of the range in seconds.
func (r Range) Span() float64 {
	return r.End - r.Start
}

// Contains reports whether t falls inside the half-open interval.
func (r Range) Contains(t float64) bool {
	return t >= r.Start && t < r.End
}

// Overlaps reports whether two ranges share any time.
func (r Range) Overlaps(other Range) bool {
	return r.Start < other.End && other.Start < r.End
}

// ClampedTo returns a copy of r restricted to the [0, limit] domain.
func (r Range) ClampedTo(limit float64) Range {
	return Range{
		Start: Clamp(r.Start, 0, limit),
		End:   Clamp(r.End, 0, limit),
	}
}

// Clamp restricts t to the [lo, hi] interval.
func Clamp(t, lo, hi float64) float64 {
	if t < lo {
		return lo
	}
	if t > hi {
		return hi
	}
	return t
}
