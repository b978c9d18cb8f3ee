package challenge

import "time"

type Type string

const (
	TypeDistance Type = "distance"
	TypeTrails   Type = "trails"
)

const (
	StatusStarted   = "started"
	StatusCompleted = "completed"
)

// Challenge is a catalog definition users can enroll in.
type Challenge struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Type        Type    `json:"challenge_type"`
	TargetValue float64 `json:"challenge_value"`
}

// Enrollment tracks one user's progress toward a challenge definition.
// Progress is clamped to [0, TargetValue]; ProgressAfter is the raw
// cumulative counter that keeps accruing past completion, floored at 0.
type Enrollment struct {
	ID            string     `json:"id"`
	OwnerID       string     `json:"owner_id"`
	ChallengeID   string     `json:"challenge_id"`
	Type          Type       `json:"challenge_type"`
	TargetValue   float64    `json:"challenge_value"`
	Progress      float64    `json:"progress"`
	ProgressAfter float64    `json:"progress_after"`
	Status        string     `json:"status"`
	TimeStart     time.Time  `json:"time_start"`
	TimeEnd       *time.Time `json:"time_end,omitempty"`
}
