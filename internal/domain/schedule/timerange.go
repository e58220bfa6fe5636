package schedule

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("range start must be before end")

// System-wide scheduling constants. Candidate slots start on SlotStep
// boundaries regardless of service duration, and BookingBuffer is the
// mandatory idle time between consecutive bookings for one barber.
const (
	SlotStep      = 30 * time.Minute
	BookingBuffer = 10 * time.Minute
)

// TimeRange is a half-open interval [Start, End).
type TimeRange struct {
	start time.Time
	end   time.Time
}

func NewTimeRange(start, end time.Time) (TimeRange, error) {
	if !start.Before(end) {
		return TimeRange{}, ErrInvalidRange
	}
	return TimeRange{start: start, end: end}, nil
}

// MustRange panics on an invalid range. For literals in tests and for
// ranges whose invariant is established by construction.
func MustRange(start, end time.Time) TimeRange {
	r, err := NewTimeRange(start, end)
	if err != nil {
		panic(err)
	}
	return r
}

func (r TimeRange) Start() time.Time { return r.start }
func (r TimeRange) End() time.Time   { return r.end }

func (r TimeRange) Duration() time.Duration {
	return r.end.Sub(r.start)
}

func (r TimeRange) IsZero() bool {
	return r.start.IsZero() && r.end.IsZero()
}

// Overlaps uses half-open semantics: [a,b) and [b,c) do not overlap.
func (r TimeRange) Overlaps(o TimeRange) bool {
	return r.start.Before(o.end) && o.start.Before(r.end)
}

func (r TimeRange) Contains(o TimeRange) bool {
	return !o.start.Before(r.start) && !o.end.After(r.end)
}

// Expand widens the interval by buffer on both sides.
func (r TimeRange) Expand(buffer time.Duration) TimeRange {
	return TimeRange{start: r.start.Add(-buffer), end: r.end.Add(buffer)}
}

// OverlapsBuffered expands both intervals by buffer before the overlap
// test, matching the symmetric padding the booking ledger enforces.
func (r TimeRange) OverlapsBuffered(o TimeRange, buffer time.Duration) bool {
	return r.Expand(buffer).Overlaps(o.Expand(buffer))
}

// SubtractAll returns the portions of r not covered by any exclusion.
// Exclusions may overlap each other and need not be sorted.
func SubtractAll(r TimeRange, exclusions []TimeRange) []TimeRange {
	remaining := []TimeRange{r}
	for _, ex := range exclusions {
		var next []TimeRange
		for _, seg := range remaining {
			next = append(next, subtract(seg, ex)...)
		}
		remaining = next
	}
	return remaining
}

func subtract(r, ex TimeRange) []TimeRange {
	if !r.Overlaps(ex) {
		return []TimeRange{r}
	}
	var parts []TimeRange
	if r.start.Before(ex.start) {
		parts = append(parts, TimeRange{start: r.start, end: ex.start})
	}
	if ex.end.Before(r.end) {
		parts = append(parts, TimeRange{start: ex.end, end: r.end})
	}
	return parts
}

// OverlapsAny reports whether r overlaps at least one of the given ranges.
func OverlapsAny(r TimeRange, ranges []TimeRange) bool {
	for _, o := range ranges {
		if r.Overlaps(o) {
			return true
		}
	}
	return false
}
