package trip

import "time"

// RouteSegment is one trail traversal inside a trip day. DistanceKm is fixed
// from the catalog at planning time and never recomputed.
type RouteSegment struct {
	RouteID         string     `json:"routeID"`
	Status          string     `json:"status"`
	DistanceKm      float64    `json:"routeDist"`
	TimeStart       *time.Time `json:"timeStart,omitempty"`
	TimeEnd         *time.Time `json:"timeEnd,omitempty"`
	ElapsedUserTime string     `json:"userTime,omitempty"`
}

// Day is an ordered sequence of route segments; the day and route indexes
// address segments in path updates.
type Day []RouteSegment

type Trip struct {
	ID      string `json:"id"`
	OwnerID string `json:"userID"`
	Name    string `json:"name"`
	Status  string `json:"status"`
	Days    []Day  `json:"trips"`
}

// EndedTotals sums distance and count over ended segments. Both the bulk-edit
// delta and the deletion retraction are differences of these totals.
func EndedTotals(days []Day) (distanceKm float64, count int) {
	for _, day := range days {
		for _, segment := range day {
			if segment.Status == SegmentEnded {
				distanceKm += segment.DistanceKm
				count++
			}
		}
	}
	return distanceKm, count
}
