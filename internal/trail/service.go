package trail

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/Slowiczeq/Tatra-Guide/internal/db"

	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
)

var ErrNotFound = errors.New("trail not found")

const (
	listCacheKey      = "trails:list"
	detailCachePrefix = "trails:detail:"
)

// Service serves the static trail catalog through a redis read-through cache
// and manages per-user saved trails. A nil cache degrades to direct reads.
type Service struct {
	db    db.Querier
	cache *redis.Client
	ttl   time.Duration
}

func NewService(db db.Querier, cache *redis.Client, ttl time.Duration) *Service {
	return &Service{db: db, cache: cache, ttl: ttl}
}

func (s *Service) List(ctx context.Context) ([]Trail, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, listCacheKey).Bytes(); err == nil {
			var trails []Trail
			if json.Unmarshal(cached, &trails) == nil {
				return trails, nil
			}
		}
	}

	rows, err := s.db.Query(ctx, `
		SELECT id, mountain_range, trail_name, start_point, end_point, difficulty_level,
		       child_friendly, wheelchair_accessible, suitable_for_seniors, skill_level,
		       route_length, route_time, elevation_gain, description
		FROM hiking_trails
		ORDER BY trail_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var trails []Trail
	for rows.Next() {
		var t Trail
		if err := rows.Scan(&t.ID, &t.MountainRange, &t.Name, &t.StartPoint, &t.EndPoint, &t.DifficultyLevel,
			&t.ChildFriendly, &t.WheelchairAccessible, &t.SuitableForSeniors, &t.SkillLevel,
			&t.RouteLengthKm, &t.RouteTime, &t.ElevationGainM, &t.Description); err != nil {
			return nil, err
		}
		trails = append(trails, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	s.cacheSet(ctx, listCacheKey, trails)
	return trails, nil
}

func (s *Service) Detail(ctx context.Context, id string) (Trail, error) {
	if s.cache != nil {
		if cached, err := s.cache.Get(ctx, detailCachePrefix+id).Bytes(); err == nil {
			var t Trail
			if json.Unmarshal(cached, &t) == nil {
				return t, nil
			}
		}
	}

	row := s.db.QueryRow(ctx, `
		SELECT id, mountain_range, trail_name, start_point, end_point, difficulty_level,
		       child_friendly, wheelchair_accessible, suitable_for_seniors, skill_level,
		       route_length, route_time, elevation_gain, description, gpx
		FROM hiking_trails
		WHERE id=$1
	`, id)
	var t Trail
	if err := row.Scan(&t.ID, &t.MountainRange, &t.Name, &t.StartPoint, &t.EndPoint, &t.DifficultyLevel,
		&t.ChildFriendly, &t.WheelchairAccessible, &t.SuitableForSeniors, &t.SkillLevel,
		&t.RouteLengthKm, &t.RouteTime, &t.ElevationGainM, &t.Description, &t.GPX); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return Trail{}, ErrNotFound
		}
		return Trail{}, err
	}

	s.cacheSet(ctx, detailCachePrefix+id, t)
	return t, nil
}

func (s *Service) IsSaved(ctx context.Context, ownerID, trailID string) (bool, error) {
	var saved bool
	err := s.db.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM user_trails WHERE owner_id=$1 AND trail_id=$2
		)
	`, ownerID, trailID).Scan(&saved)
	return saved, err
}

func (s *Service) Save(ctx context.Context, ownerID, trailID string) (SavedTrail, error) {
	saved := SavedTrail{OwnerID: ownerID, TrailID: trailID}
	row := s.db.QueryRow(ctx, `
		INSERT INTO user_trails (owner_id, trail_id)
		VALUES ($1,$2)
		ON CONFLICT (owner_id, trail_id) DO UPDATE SET owner_id=EXCLUDED.owner_id
		RETURNING saved_at
	`, ownerID, trailID)
	if err := row.Scan(&saved.SavedAt); err != nil {
		return SavedTrail{}, err
	}
	return saved, nil
}

// Remove deletes one saved trail and returns the owner's remaining list, the
// shape the original client expects.
func (s *Service) Remove(ctx context.Context, ownerID, trailID string) ([]SavedTrail, error) {
	_, err := s.db.Exec(ctx, `
		DELETE FROM user_trails WHERE owner_id=$1 AND trail_id=$2
	`, ownerID, trailID)
	if err != nil {
		return nil, err
	}
	return s.SavedByOwner(ctx, ownerID)
}

func (s *Service) SavedByOwner(ctx context.Context, ownerID string) ([]SavedTrail, error) {
	rows, err := s.db.Query(ctx, `
		SELECT owner_id, trail_id, saved_at
		FROM user_trails
		WHERE owner_id=$1
		ORDER BY saved_at
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var saved []SavedTrail
	for rows.Next() {
		var st SavedTrail
		if err := rows.Scan(&st.OwnerID, &st.TrailID, &st.SavedAt); err != nil {
			return nil, err
		}
		saved = append(saved, st)
	}
	return saved, rows.Err()
}

func (s *Service) cacheSet(ctx context.Context, key string, value any) {
	if s.cache == nil {
		return
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return
	}
	_ = s.cache.Set(ctx, key, payload, s.ttl).Err()
}
