package challenge

import (
	"context"
	"fmt"
	"time"

	"github.com/Slowiczeq/Tatra-Guide/internal/db"
)

// Delta is the signed contribution of one trip-state change to an owner's
// enrollments. The same delta shape covers a single ended route (+dist, +1),
// a bulk edit (after minus before over ended segments) and a deletion
// (negated ended totals).
type Delta struct {
	DistanceKm float64
	Trails     int
}

func (d Delta) IsZero() bool {
	return d.DistanceKm == 0 && d.Trails == 0
}

func (d Delta) forType(t Type) float64 {
	switch t {
	case TypeDistance:
		return d.DistanceKm
	case TypeTrails:
		return float64(d.Trails)
	default:
		return 0
	}
}

// applyDelta returns the enrollment after absorbing a signed delta of its own
// type. Rules, in order:
//   - progress_after accrues the delta unconditionally, floored at 0;
//   - a positive delta advances progress only while the enrollment is not
//     completed (completion is sticky against further increases);
//   - a negative delta rewrites progress from the updated progress_after and
//     reopens the enrollment when it falls under the target;
//   - whenever progress reaches the target it is clamped there and the
//     enrollment is marked completed.
func applyDelta(e Enrollment, delta float64, now time.Time) Enrollment {
	e.ProgressAfter += delta
	if e.ProgressAfter < 0 {
		e.ProgressAfter = 0
	}

	if delta > 0 {
		if e.Status != StatusCompleted {
			e.Progress += delta
		}
	} else if delta < 0 {
		if e.ProgressAfter < e.TargetValue {
			e.Progress = e.ProgressAfter
			e.Status = StatusStarted
		}
	}

	if e.Progress >= e.TargetValue {
		e.Progress = e.TargetValue
		if e.Status != StatusCompleted {
			e.Status = StatusCompleted
			completedAt := now
			e.TimeEnd = &completedAt
		}
	}
	return e
}

// ReconcileOwner applies a delta to every enrollment of one owner inside the
// caller's transaction. Enrollment rows are locked for the duration so two
// trips of the same owner cannot interleave counter updates.
func ReconcileOwner(ctx context.Context, q db.Querier, ownerID string, d Delta, now time.Time) error {
	if d.IsZero() {
		return nil
	}

	rows, err := q.Query(ctx, `
		SELECT id, challenge_type, challenge_value, progress, progress_after, status, time_end
		FROM user_challenges
		WHERE owner_id=$1
		FOR UPDATE
	`, ownerID)
	if err != nil {
		return fmt.Errorf("load enrollments: %w", err)
	}

	var enrollments []Enrollment
	for rows.Next() {
		var e Enrollment
		if err := rows.Scan(&e.ID, &e.Type, &e.TargetValue, &e.Progress, &e.ProgressAfter, &e.Status, &e.TimeEnd); err != nil {
			rows.Close()
			return fmt.Errorf("scan enrollment: %w", err)
		}
		enrollments = append(enrollments, e)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("read enrollments: %w", err)
	}

	for _, e := range enrollments {
		delta := d.forType(e.Type)
		if delta == 0 {
			continue
		}
		updated := applyDelta(e, delta, now)
		_, err := q.Exec(ctx, `
			UPDATE user_challenges
			SET progress=$2, progress_after=$3, status=$4, time_end=$5
			WHERE id=$1
		`, updated.ID, updated.Progress, updated.ProgressAfter, updated.Status, updated.TimeEnd)
		if err != nil {
			return fmt.Errorf("update enrollment %s: %w", updated.ID, err)
		}
	}
	return nil
}
