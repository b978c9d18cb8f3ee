package trip

import (
	"errors"
	"time"
)

const (
	SegmentPlanned = "planned"
	SegmentStarted = "started"
	SegmentEnded   = "ended"
)

const (
	StatusPlanned  = "planned"
	StatusStarted  = "started"
	StatusFinished = "finished"
)

var (
	ErrNotFound          = errors.New("trip not found")
	ErrInvalidTransition = errors.New("invalid segment transition")
	ErrValidation        = errors.New("invalid trip data")
)

// Mutation is one of the two ways trip state changes: a targeted update of a
// single addressed segment, or wholesale replacement of the days structure.
// Both funnel through Apply so trip status derivation lives in one place.
type Mutation interface {
	apply(days []Day) ([]Day, error)
}

// StartSegment moves a planned segment to started and stamps its start time.
type StartSegment struct {
	DayIndex   int
	RouteIndex int
	At         time.Time
}

func (m StartSegment) apply(days []Day) ([]Day, error) {
	segment, err := segmentAt(days, m.DayIndex, m.RouteIndex)
	if err != nil {
		return nil, err
	}
	if segment.Status != SegmentPlanned {
		return nil, ErrInvalidTransition
	}
	segment.Status = SegmentStarted
	at := m.At
	segment.TimeStart = &at
	return withSegment(days, m.DayIndex, m.RouteIndex, segment), nil
}

// EndSegment moves a started segment to ended. Timing fields are caller
// supplied, not recomputed, so offline-recorded traversals keep their times.
type EndSegment struct {
	DayIndex        int
	RouteIndex      int
	ElapsedUserTime string
	TimeStart       *time.Time
	TimeEnd         *time.Time
}

func (m EndSegment) apply(days []Day) ([]Day, error) {
	segment, err := segmentAt(days, m.DayIndex, m.RouteIndex)
	if err != nil {
		return nil, err
	}
	if segment.Status != SegmentStarted {
		return nil, ErrInvalidTransition
	}
	segment.Status = SegmentEnded
	segment.ElapsedUserTime = m.ElapsedUserTime
	segment.TimeStart = m.TimeStart
	segment.TimeEnd = m.TimeEnd
	return withSegment(days, m.DayIndex, m.RouteIndex, segment), nil
}

// ReplaceAll substitutes the whole days structure with no per-segment
// transition validation; a bulk edit may legally move segments backward.
type ReplaceAll struct {
	Days []Day
}

func (m ReplaceAll) apply([]Day) ([]Day, error) {
	if err := ValidateDays(m.Days); err != nil {
		return nil, err
	}
	return m.Days, nil
}

// Apply runs one mutation against the days structure and re-derives the
// trip-level status from the result.
func Apply(days []Day, m Mutation) ([]Day, string, error) {
	updated, err := m.apply(days)
	if err != nil {
		return nil, "", err
	}
	return updated, DeriveStatus(updated), nil
}

// DeriveStatus computes trip status from segment states: finished iff every
// segment ended, started iff any segment left planned, else planned.
func DeriveStatus(days []Day) string {
	allEnded := true
	anyTouched := false
	for _, day := range days {
		for _, segment := range day {
			if segment.Status != SegmentEnded {
				allEnded = false
			}
			if segment.Status != SegmentPlanned {
				anyTouched = true
			}
		}
	}
	if len(days) == 0 {
		return StatusPlanned
	}
	if allEnded {
		return StatusFinished
	}
	if anyTouched {
		return StatusStarted
	}
	return StatusPlanned
}

// ValidateDays checks structural legality of a days document: known segment
// statuses and non-negative distances.
func ValidateDays(days []Day) error {
	for _, day := range days {
		for _, segment := range day {
			switch segment.Status {
			case SegmentPlanned, SegmentStarted, SegmentEnded:
			default:
				return ErrValidation
			}
			if segment.DistanceKm < 0 {
				return ErrValidation
			}
		}
	}
	return nil
}

func segmentAt(days []Day, dayIndex, routeIndex int) (RouteSegment, error) {
	if dayIndex < 0 || dayIndex >= len(days) {
		return RouteSegment{}, ErrNotFound
	}
	if routeIndex < 0 || routeIndex >= len(days[dayIndex]) {
		return RouteSegment{}, ErrNotFound
	}
	return days[dayIndex][routeIndex], nil
}

func withSegment(days []Day, dayIndex, routeIndex int, segment RouteSegment) []Day {
	updated := make([]Day, len(days))
	for i, day := range days {
		updated[i] = make(Day, len(day))
		copy(updated[i], day)
	}
	updated[dayIndex][routeIndex] = segment
	return updated
}
