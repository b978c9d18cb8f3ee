package challenge

import (
	"context"
	"errors"
	"time"

	"github.com/Slowiczeq/Tatra-Guide/internal/db"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrNotFound = errors.New("challenge not found")
	ErrEnrolled = errors.New("already enrolled")
)

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Catalog(ctx context.Context) ([]Challenge, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, name, challenge_type, challenge_value
		FROM challenges
		ORDER BY name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var catalog []Challenge
	for rows.Next() {
		var c Challenge
		if err := rows.Scan(&c.ID, &c.Name, &c.Type, &c.TargetValue); err != nil {
			return nil, err
		}
		catalog = append(catalog, c)
	}
	return catalog, rows.Err()
}

func (s *Service) OwnerEnrollments(ctx context.Context, ownerID string) ([]Enrollment, error) {
	rows, err := s.db.Query(ctx, `
		SELECT id, owner_id, challenge_id, challenge_type, challenge_value, progress, progress_after, status, time_start, time_end
		FROM user_challenges
		WHERE owner_id=$1
		ORDER BY time_start
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var enrollments []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.ChallengeID, &e.Type, &e.TargetValue, &e.Progress, &e.ProgressAfter, &e.Status, &e.TimeStart, &e.TimeEnd); err != nil {
			return nil, err
		}
		enrollments = append(enrollments, e)
	}
	return enrollments, rows.Err()
}

// Enroll creates the single enrollment a user may hold per challenge
// definition. Type and target are copied from the catalog at enrollment time.
func (s *Service) Enroll(ctx context.Context, ownerID, challengeID string) (Enrollment, error) {
	var (
		challengeType Type
		targetValue   float64
	)
	row := s.db.QueryRow(ctx, `
		SELECT challenge_type, challenge_value
		FROM challenges WHERE id=$1
	`, challengeID)
	if err := row.Scan(&challengeType, &targetValue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Enrollment{}, ErrNotFound
		}
		return Enrollment{}, err
	}

	enrollment := Enrollment{
		ID:          uuid.NewString(),
		OwnerID:     ownerID,
		ChallengeID: challengeID,
		Type:        challengeType,
		TargetValue: targetValue,
		Status:      StatusStarted,
		TimeStart:   time.Now(),
	}

	row = s.db.QueryRow(ctx, `
		INSERT INTO user_challenges (id, owner_id, challenge_id, challenge_type, challenge_value, progress, progress_after, status, time_start)
		VALUES ($1,$2,$3,$4,$5,0,0,$6,$7)
		ON CONFLICT (owner_id, challenge_id) DO NOTHING
		RETURNING time_start
	`, enrollment.ID, enrollment.OwnerID, enrollment.ChallengeID, enrollment.Type, enrollment.TargetValue, enrollment.Status, enrollment.TimeStart)
	if err := row.Scan(&enrollment.TimeStart); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Enrollment{}, ErrEnrolled
		}
		return Enrollment{}, err
	}
	return enrollment, nil
}
