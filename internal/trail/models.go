package trail

import "time"

type Trail struct {
	ID                   string  `json:"id"`
	MountainRange        string  `json:"mountain_range"`
	Name                 string  `json:"trail_name"`
	StartPoint           string  `json:"start_point"`
	EndPoint             string  `json:"end_point"`
	DifficultyLevel      string  `json:"difficulty_level"`
	ChildFriendly        bool    `json:"child_friendly"`
	WheelchairAccessible bool    `json:"wheelchair_accessible"`
	SuitableForSeniors   bool    `json:"suitable_for_seniors"`
	SkillLevel           string  `json:"skill_level"`
	RouteLengthKm        float64 `json:"route_length"`
	RouteTime            string  `json:"route_time"`
	ElevationGainM       float64 `json:"elevation_gain"`
	Description          string  `json:"description"`
	GPX                  string  `json:"gpx,omitempty"`
}

type SavedTrail struct {
	OwnerID string    `json:"userID"`
	TrailID string    `json:"routeID"`
	SavedAt time.Time `json:"saved_at"`
}
