package review

import (
	"context"
	"errors"
	"time"

	"github.com/Slowiczeq/Tatra-Guide/internal/db"

	"github.com/google/uuid"
)

var ErrValidation = errors.New("invalid review")

type Service struct {
	db db.Querier
}

func NewService(db db.Querier) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, input Review) (Review, error) {
	if input.OwnerID == "" || input.TrailID == "" || input.Rating < 1 || input.Rating > 5 {
		return Review{}, ErrValidation
	}
	input.ID = uuid.NewString()
	if input.Date.IsZero() {
		input.Date = time.Now()
	}
	_, err := s.db.Exec(ctx, `
		INSERT INTO reviews (id, owner_id, owner_name, trail_id, rating, content, date)
		VALUES ($1,$2,$3,$4,$5,$6,$7)
	`, input.ID, input.OwnerID, input.OwnerName, input.TrailID, input.Rating, input.Content, input.Date)
	if err != nil {
		return Review{}, err
	}
	return input, nil
}

func (s *Service) List(ctx context.Context) ([]Review, error) {
	return s.query(ctx, `
		SELECT id, owner_id, owner_name, trail_id, rating, content, date
		FROM reviews
		ORDER BY date DESC
	`)
}

func (s *Service) ByTrail(ctx context.Context, trailID string) ([]Review, error) {
	return s.query(ctx, `
		SELECT id, owner_id, owner_name, trail_id, rating, content, date
		FROM reviews
		WHERE trail_id=$1
		ORDER BY date DESC
	`, trailID)
}

func (s *Service) ByOwner(ctx context.Context, ownerID string) ([]Review, error) {
	return s.query(ctx, `
		SELECT id, owner_id, owner_name, trail_id, rating, content, date
		FROM reviews
		WHERE owner_id=$1
		ORDER BY date DESC
	`, ownerID)
}

func (s *Service) query(ctx context.Context, sql string, args ...any) ([]Review, error) {
	rows, err := s.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.OwnerID, &r.OwnerName, &r.TrailID, &r.Rating, &r.Content, &r.Date); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}
