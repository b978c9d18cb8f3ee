package trip

import (
	"errors"
	"testing"
	"time"
)

func plannedDays() []Day {
	return []Day{
		{
			{RouteID: "trail-1", Status: SegmentPlanned, DistanceKm: 5},
			{RouteID: "trail-2", Status: SegmentPlanned, DistanceKm: 3},
		},
		{
			{RouteID: "trail-3", Status: SegmentPlanned, DistanceKm: 7},
			{RouteID: "trail-4", Status: SegmentPlanned, DistanceKm: 2},
		},
	}
}

func endAll(t *testing.T, days []Day, positions ...[2]int) []Day {
	t.Helper()
	now := time.Now()
	for _, pos := range positions {
		var err error
		days, _, err = Apply(days, StartSegment{DayIndex: pos[0], RouteIndex: pos[1], At: now})
		if err != nil {
			t.Fatalf("start %v: %v", pos, err)
		}
		days, _, err = Apply(days, EndSegment{DayIndex: pos[0], RouteIndex: pos[1], ElapsedUserTime: "01:00", TimeStart: &now, TimeEnd: &now})
		if err != nil {
			t.Fatalf("end %v: %v", pos, err)
		}
	}
	return days
}

func TestStartSegmentTransition(t *testing.T) {
	at := time.Now()
	days, status, err := Apply(plannedDays(), StartSegment{DayIndex: 0, RouteIndex: 1, At: at})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	segment := days[0][1]
	if segment.Status != SegmentStarted || segment.TimeStart == nil || !segment.TimeStart.Equal(at) {
		t.Fatalf("unexpected segment %+v", segment)
	}
	if status != StatusStarted {
		t.Fatalf("expected trip started, got %s", status)
	}
}

func TestStartSegmentRejectsRestart(t *testing.T) {
	days, _, err := Apply(plannedDays(), StartSegment{DayIndex: 0, RouteIndex: 0, At: time.Now()})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, _, err := Apply(days, StartSegment{DayIndex: 0, RouteIndex: 0, At: time.Now()}); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestEndSegmentRequiresStarted(t *testing.T) {
	_, _, err := Apply(plannedDays(), EndSegment{DayIndex: 0, RouteIndex: 0})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected invalid transition, got %v", err)
	}
}

func TestSegmentAddressOutOfRange(t *testing.T) {
	cases := [][2]int{{-1, 0}, {2, 0}, {0, -1}, {0, 5}}
	for _, pos := range cases {
		if _, _, err := Apply(plannedDays(), StartSegment{DayIndex: pos[0], RouteIndex: pos[1], At: time.Now()}); !errors.Is(err, ErrNotFound) {
			t.Fatalf("expected not found for %v, got %v", pos, err)
		}
	}
}

func TestEndSegmentKeepsSuppliedTimes(t *testing.T) {
	start := time.Now().Add(-2 * time.Hour)
	end := time.Now().Add(-30 * time.Minute)

	days, _, err := Apply(plannedDays(), StartSegment{DayIndex: 0, RouteIndex: 0, At: time.Now()})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	days, _, err = Apply(days, EndSegment{DayIndex: 0, RouteIndex: 0, ElapsedUserTime: "01:30", TimeStart: &start, TimeEnd: &end})
	if err != nil {
		t.Fatalf("end: %v", err)
	}
	segment := days[0][0]
	if segment.ElapsedUserTime != "01:30" || !segment.TimeStart.Equal(start) || !segment.TimeEnd.Equal(end) {
		t.Fatalf("expected caller-supplied timing kept, got %+v", segment)
	}
}

func TestDeriveStatusAcrossTwoDays(t *testing.T) {
	days := plannedDays()
	if got := DeriveStatus(days); got != StatusPlanned {
		t.Fatalf("expected planned, got %s", got)
	}

	days = endAll(t, days, [2]int{0, 0}, [2]int{0, 1}, [2]int{1, 0})
	if got := DeriveStatus(days); got != StatusStarted {
		t.Fatalf("expected started with 3 of 4 ended, got %s", got)
	}

	days = endAll(t, days, [2]int{1, 1})
	if got := DeriveStatus(days); got != StatusFinished {
		t.Fatalf("expected finished with all ended, got %s", got)
	}
}

func TestReplaceAllSkipsTransitionChecks(t *testing.T) {
	days := endAll(t, plannedDays(), [2]int{0, 0})

	// A bulk edit may legally move an ended segment back to planned.
	replacement := []Day{{{RouteID: "trail-1", Status: SegmentPlanned, DistanceKm: 5}}}
	updated, status, err := Apply(days, ReplaceAll{Days: replacement})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if updated[0][0].Status != SegmentPlanned || status != StatusPlanned {
		t.Fatalf("expected backward move accepted, got %+v status %s", updated[0][0], status)
	}
}

func TestReplaceAllValidatesStructure(t *testing.T) {
	bad := []Day{{{RouteID: "trail-1", Status: "finished"}}}
	if _, _, err := Apply(plannedDays(), ReplaceAll{Days: bad}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}

	negative := []Day{{{RouteID: "trail-1", Status: SegmentPlanned, DistanceKm: -1}}}
	if _, _, err := Apply(plannedDays(), ReplaceAll{Days: negative}); !errors.Is(err, ErrValidation) {
		t.Fatalf("expected validation error for negative distance, got %v", err)
	}
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	days := plannedDays()
	if _, _, err := Apply(days, StartSegment{DayIndex: 0, RouteIndex: 0, At: time.Now()}); err != nil {
		t.Fatalf("start: %v", err)
	}
	if days[0][0].Status != SegmentPlanned {
		t.Fatalf("input days mutated")
	}
}

func TestEndedTotals(t *testing.T) {
	days := endAll(t, plannedDays(), [2]int{0, 0}, [2]int{1, 0})
	distance, count := EndedTotals(days)
	if distance != 12 || count != 2 {
		t.Fatalf("expected 12km over 2 trails, got %v/%d", distance, count)
	}
}
