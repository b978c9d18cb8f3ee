package trip

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Slowiczeq/Tatra-Guide/internal/challenge"
	"github.com/Slowiczeq/Tatra-Guide/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Service owns the trip store and coordinates every multi-record mutation.
// Each lifecycle operation runs in a single transaction that first locks the
// trip row (FOR UPDATE), so concurrent mutations of one trip serialize and
// challenge reconciliation never double-applies a delta.
type Service struct {
	db db.Pool
}

func NewService(db db.Pool) *Service {
	return &Service{db: db}
}

type EndRouteInput struct {
	TripID          string
	OwnerID         string
	DayIndex        int
	RouteIndex      int
	ElapsedUserTime string
	TimeStart       *time.Time
	TimeEnd         *time.Time
}

type UpdateInput struct {
	TripID  string
	OwnerID string
	Name    string
	Days    []Day
}

func (s *Service) CreateTrip(ctx context.Context, ownerID, name string, days []Day) (Trip, error) {
	if err := ValidateDays(days); err != nil {
		return Trip{}, err
	}
	for _, day := range days {
		for _, segment := range day {
			if segment.Status != SegmentPlanned {
				return Trip{}, ErrValidation
			}
		}
	}

	trip := Trip{
		ID:      uuid.NewString(),
		OwnerID: ownerID,
		Name:    name,
		Status:  StatusPlanned,
		Days:    days,
	}
	payload, err := json.Marshal(trip.Days)
	if err != nil {
		return Trip{}, fmt.Errorf("encode days: %w", err)
	}

	_, err = s.db.Exec(ctx, `
		INSERT INTO user_trips (id, owner_id, name, status, days)
		VALUES ($1,$2,$3,$4,$5)
	`, trip.ID, trip.OwnerID, trip.Name, trip.Status, payload)
	if err != nil {
		return Trip{}, fmt.Errorf("insert trip: %w", err)
	}
	return trip, nil
}

func (s *Service) Trips(ctx context.Context, ownerID string) ([]Trip, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, name, status, days
		FROM user_trips
		WHERE owner_id=$1
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trips []Trip
	for rows.Next() {
		trip, err := scanTrip(rows)
		if err != nil {
			return nil, err
		}
		trips = append(trips, trip)
	}
	return trips, rows.Err()
}

func (s *Service) TripByID(ctx context.Context, tripID string) (Trip, error) {
	row := s.db.QueryRow(ctx, `
		SELECT id, owner_id, name, status, days
		FROM user_trips
		WHERE id=$1
	`, tripID)
	trip, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Trip{}, ErrNotFound
	}
	return trip, err
}

// StartRoute transitions one planned segment to started. No challenge effect.
func (s *Service) StartRoute(ctx context.Context, tripID string, dayIndex, routeIndex int) (Trip, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Trip{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	trip, err := lockTrip(ctx, tx, tripID)
	if err != nil {
		return Trip{}, err
	}

	days, status, err := Apply(trip.Days, StartSegment{
		DayIndex:   dayIndex,
		RouteIndex: routeIndex,
		At:         time.Now(),
	})
	if err != nil {
		return Trip{}, err
	}

	if err := writeSegment(ctx, tx, tripID, dayIndex, routeIndex, days[dayIndex][routeIndex], status); err != nil {
		return Trip{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return Trip{}, fmt.Errorf("commit: %w", err)
	}

	trip.Days = days
	trip.Status = status
	return trip, nil
}

// EndRoute transitions one started segment to ended and credits the owner's
// enrollments with the segment's distance and one trail, atomically.
func (s *Service) EndRoute(ctx context.Context, in EndRouteInput) (Trip, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Trip{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	trip, err := lockTrip(ctx, tx, in.TripID)
	if err != nil {
		return Trip{}, err
	}
	if trip.OwnerID != in.OwnerID {
		return Trip{}, ErrNotFound
	}

	days, status, err := Apply(trip.Days, EndSegment{
		DayIndex:        in.DayIndex,
		RouteIndex:      in.RouteIndex,
		ElapsedUserTime: in.ElapsedUserTime,
		TimeStart:       in.TimeStart,
		TimeEnd:         in.TimeEnd,
	})
	if err != nil {
		return Trip{}, err
	}

	segment := days[in.DayIndex][in.RouteIndex]
	if err := writeSegment(ctx, tx, in.TripID, in.DayIndex, in.RouteIndex, segment, status); err != nil {
		return Trip{}, err
	}

	delta := challenge.Delta{DistanceKm: segment.DistanceKm, Trails: 1}
	if err := challenge.ReconcileOwner(ctx, tx, trip.OwnerID, delta, time.Now()); err != nil {
		return Trip{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Trip{}, fmt.Errorf("commit: %w", err)
	}

	trip.Days = days
	trip.Status = status
	return trip, nil
}

// UpdateTrip replaces the whole days structure and renames the trip. The
// owner's enrollments absorb the signed difference in ended totals, so an
// edit that un-ends segments retracts exactly what they had contributed.
func (s *Service) UpdateTrip(ctx context.Context, in UpdateInput) (Trip, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return Trip{}, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	trip, err := lockTrip(ctx, tx, in.TripID)
	if err != nil {
		return Trip{}, err
	}
	if trip.OwnerID != in.OwnerID {
		return Trip{}, ErrNotFound
	}

	distanceBefore, countBefore := EndedTotals(trip.Days)

	days, status, err := Apply(trip.Days, ReplaceAll{Days: in.Days})
	if err != nil {
		return Trip{}, err
	}

	payload, err := json.Marshal(days)
	if err != nil {
		return Trip{}, fmt.Errorf("encode days: %w", err)
	}
	_, err = tx.Exec(ctx, `
		UPDATE user_trips
		SET name=$2, days=$3, status=$4
		WHERE id=$1
	`, in.TripID, in.Name, payload, status)
	if err != nil {
		return Trip{}, fmt.Errorf("update trip: %w", err)
	}

	distanceAfter, countAfter := EndedTotals(days)
	delta := challenge.Delta{
		DistanceKm: distanceAfter - distanceBefore,
		Trails:     countAfter - countBefore,
	}
	if err := challenge.ReconcileOwner(ctx, tx, trip.OwnerID, delta, time.Now()); err != nil {
		return Trip{}, err
	}

	if err := tx.Commit(ctx); err != nil {
		return Trip{}, fmt.Errorf("commit: %w", err)
	}

	trip.Name = in.Name
	trip.Days = days
	trip.Status = status
	return trip, nil
}

// DeleteTrip removes the trip and retracts every ended segment's contribution
// from the owner's enrollments.
func (s *Service) DeleteTrip(ctx context.Context, tripID, ownerID string) error {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	trip, err := lockTrip(ctx, tx, tripID)
	if err != nil {
		return err
	}
	if trip.OwnerID != ownerID {
		return ErrNotFound
	}

	distance, count := EndedTotals(trip.Days)

	_, err = tx.Exec(ctx, `DELETE FROM user_trips WHERE id=$1`, tripID)
	if err != nil {
		return fmt.Errorf("delete trip: %w", err)
	}

	delta := challenge.Delta{DistanceKm: -distance, Trails: -count}
	if err := challenge.ReconcileOwner(ctx, tx, trip.OwnerID, delta, time.Now()); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

// lockTrip reads the trip row under an exclusive row lock held until the
// surrounding transaction ends.
func lockTrip(ctx context.Context, q db.Querier, tripID string) (Trip, error) {
	row := q.QueryRow(ctx, `
		SELECT id, owner_id, name, status, days
		FROM user_trips
		WHERE id=$1
		FOR UPDATE
	`, tripID)
	trip, err := scanTrip(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Trip{}, ErrNotFound
	}
	return trip, err
}

// writeSegment is the targeted path update: one segment rewritten in place
// inside the jsonb document, plus the re-derived trip status.
func writeSegment(ctx context.Context, q db.Querier, tripID string, dayIndex, routeIndex int, segment RouteSegment, status string) error {
	payload, err := json.Marshal(segment)
	if err != nil {
		return fmt.Errorf("encode segment: %w", err)
	}
	path := []string{strconv.Itoa(dayIndex), strconv.Itoa(routeIndex)}
	_, err = q.Exec(ctx, `
		UPDATE user_trips
		SET days = jsonb_set(days, $2::text[], $3::jsonb), status=$4
		WHERE id=$1
	`, tripID, path, string(payload), status)
	if err != nil {
		return fmt.Errorf("update segment: %w", err)
	}
	return nil
}

func scanTrip(row pgx.Row) (Trip, error) {
	var trip Trip
	var daysRaw []byte
	if err := row.Scan(&trip.ID, &trip.OwnerID, &trip.Name, &trip.Status, &daysRaw); err != nil {
		return Trip{}, err
	}
	if len(daysRaw) > 0 {
		if err := json.Unmarshal(daysRaw, &trip.Days); err != nil {
			return Trip{}, fmt.Errorf("decode days: %w", err)
		}
	}
	return trip, nil
}
