package profile

import (
	"context"

	"github.com/Slowiczeq/Tatra-Guide/internal/challenge"
	"github.com/Slowiczeq/Tatra-Guide/internal/review"
	"github.com/Slowiczeq/Tatra-Guide/internal/trail"
	"github.com/Slowiczeq/Tatra-Guide/internal/trip"
)

// Overview is the aggregated dashboard payload: everything the user owns plus
// the static catalogs, assembled in one response.
type Overview struct {
	Stats       Stats                  `json:"userInfo"`
	SavedTrails []trail.SavedTrail     `json:"userTrails"`
	Trails      []trail.Trail          `json:"hikingTrails"`
	Trips       []trip.Trip            `json:"userTrips"`
	Enrollments []challenge.Enrollment `json:"userChallenges"`
	Challenges  []challenge.Challenge  `json:"challenges"`
	Reviews     []review.Review        `json:"userReviews"`
}

type Stats struct {
	TotalDistanceKm float64 `json:"totalDist"`
	TotalRoutes     int     `json:"totalRoutes"`
	TotalChallenges int     `json:"totalChallenges"`
}

type Service struct {
	trips      *trip.Service
	challenges *challenge.Service
	trails     *trail.Service
	reviews    *review.Service
}

func NewService(trips *trip.Service, challenges *challenge.Service, trails *trail.Service, reviews *review.Service) *Service {
	return &Service{trips: trips, challenges: challenges, trails: trails, reviews: reviews}
}

func (s *Service) Overview(ctx context.Context, ownerID string) (Overview, error) {
	var overview Overview
	var err error

	if overview.Trips, err = s.trips.Trips(ctx, ownerID); err != nil {
		return Overview{}, err
	}
	if overview.Enrollments, err = s.challenges.OwnerEnrollments(ctx, ownerID); err != nil {
		return Overview{}, err
	}
	if overview.Challenges, err = s.challenges.Catalog(ctx); err != nil {
		return Overview{}, err
	}
	if overview.SavedTrails, err = s.trails.SavedByOwner(ctx, ownerID); err != nil {
		return Overview{}, err
	}
	if overview.Trails, err = s.trails.List(ctx); err != nil {
		return Overview{}, err
	}
	if overview.Reviews, err = s.reviews.ByOwner(ctx, ownerID); err != nil {
		return Overview{}, err
	}

	for _, t := range overview.Trips {
		distance, count := trip.EndedTotals(t.Days)
		overview.Stats.TotalDistanceKm += distance
		overview.Stats.TotalRoutes += count
	}
	for _, e := range overview.Enrollments {
		if e.Status == challenge.StatusCompleted {
			overview.Stats.TotalChallenges++
		}
	}
	return overview, nil
}
