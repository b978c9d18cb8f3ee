package challenge

import (
	"context"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
)

func TestApplyDeltaAdvancesProgress(t *testing.T) {
	e := Enrollment{Type: TypeDistance, TargetValue: 10, Status: StatusStarted}

	updated := applyDelta(e, 5, time.Now())
	if updated.Progress != 5 || updated.ProgressAfter != 5 {
		t.Fatalf("expected progress 5/5, got %v/%v", updated.Progress, updated.ProgressAfter)
	}
	if updated.Status != StatusStarted {
		t.Fatalf("expected started, got %s", updated.Status)
	}
}

func TestApplyDeltaClampAndSticky(t *testing.T) {
	now := time.Now()
	e := Enrollment{Type: TypeDistance, TargetValue: 10, Progress: 8, ProgressAfter: 8, Status: StatusStarted}

	completed := applyDelta(e, 5, now)
	if completed.Progress != 10 {
		t.Fatalf("expected progress clamped to 10, got %v", completed.Progress)
	}
	if completed.ProgressAfter != 13 {
		t.Fatalf("expected progress_after 13, got %v", completed.ProgressAfter)
	}
	if completed.Status != StatusCompleted || completed.TimeEnd == nil {
		t.Fatalf("expected completed with time_end")
	}

	// A later positive delta only accrues the raw counter.
	sticky := applyDelta(completed, 2, now)
	if sticky.Progress != 10 || sticky.ProgressAfter != 15 {
		t.Fatalf("expected 10/15, got %v/%v", sticky.Progress, sticky.ProgressAfter)
	}

	// Removing the segment drags the raw counter under the target and
	// reopens the enrollment.
	reopened := applyDelta(completed, -5, now)
	if reopened.ProgressAfter != 8 {
		t.Fatalf("expected progress_after 8, got %v", reopened.ProgressAfter)
	}
	if reopened.Progress != 8 || reopened.Status != StatusStarted {
		t.Fatalf("expected reopened at 8, got %v/%s", reopened.Progress, reopened.Status)
	}
}

func TestApplyDeltaIncrementalEqualsBulk(t *testing.T) {
	now := time.Now()
	start := Enrollment{Type: TypeDistance, TargetValue: 5, Status: StatusStarted}

	incremental := start
	for i := 0; i < 3; i++ {
		incremental = applyDelta(incremental, 2, now)
	}
	bulk := applyDelta(start, 6, now)

	if incremental.Progress != bulk.Progress ||
		incremental.ProgressAfter != bulk.ProgressAfter ||
		incremental.Status != bulk.Status {
		t.Fatalf("incremental %v/%v/%s != bulk %v/%v/%s",
			incremental.Progress, incremental.ProgressAfter, incremental.Status,
			bulk.Progress, bulk.ProgressAfter, bulk.Status)
	}
}

func TestApplyDeltaFloorsAtZero(t *testing.T) {
	e := Enrollment{Type: TypeTrails, TargetValue: 10, Progress: 3, ProgressAfter: 3, Status: StatusStarted}

	updated := applyDelta(e, -7, time.Now())
	if updated.ProgressAfter != 0 {
		t.Fatalf("expected progress_after floored at 0, got %v", updated.ProgressAfter)
	}
	if updated.Progress != 0 || updated.Status != StatusStarted {
		t.Fatalf("expected progress 0 started, got %v/%s", updated.Progress, updated.Status)
	}
}

func TestApplyDeltaNegativeKeepsCompletionAboveTarget(t *testing.T) {
	end := time.Now().Add(-time.Hour)
	e := Enrollment{Type: TypeDistance, TargetValue: 10, Progress: 10, ProgressAfter: 20, Status: StatusCompleted, TimeEnd: &end}

	updated := applyDelta(e, -5, time.Now())
	if updated.ProgressAfter != 15 {
		t.Fatalf("expected progress_after 15, got %v", updated.ProgressAfter)
	}
	if updated.Progress != 10 || updated.Status != StatusCompleted {
		t.Fatalf("expected completion preserved, got %v/%s", updated.Progress, updated.Status)
	}
	if updated.TimeEnd == nil || !updated.TimeEnd.Equal(end) {
		t.Fatalf("expected original time_end preserved")
	}
}

func enrollmentRows() *pgxmock.Rows {
	return pgxmock.NewRows([]string{"id", "challenge_type", "challenge_value", "progress", "progress_after", "status", "time_end"})
}

func TestReconcileOwnerUpdatesMatchingTypes(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, challenge_type, challenge_value, progress, progress_after, status, time_end`).
		WithArgs("user-1").
		WillReturnRows(enrollmentRows().
			AddRow("ch-dist", TypeDistance, 10.0, 0.0, 0.0, StatusStarted, nil).
			AddRow("ch-trails", TypeTrails, 3.0, 0.0, 0.0, StatusStarted, nil))

	mock.ExpectExec(`UPDATE user_challenges`).
		WithArgs("ch-dist", 5.0, 5.0, StatusStarted, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec(`UPDATE user_challenges`).
		WithArgs("ch-trails", 1.0, 1.0, StatusStarted, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = ReconcileOwner(context.Background(), mock, "user-1", Delta{DistanceKm: 5, Trails: 1}, time.Now())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcileOwnerCompletesEnrollment(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, challenge_type, challenge_value, progress, progress_after, status, time_end`).
		WithArgs("user-1").
		WillReturnRows(enrollmentRows().
			AddRow("ch-dist", TypeDistance, 10.0, 8.0, 8.0, StatusStarted, nil))

	mock.ExpectExec(`UPDATE user_challenges`).
		WithArgs("ch-dist", 10.0, 13.0, StatusCompleted, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))

	err = ReconcileOwner(context.Background(), mock, "user-1", Delta{DistanceKm: 5, Trails: 1}, time.Now())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestReconcileOwnerZeroDeltaSkipsStore(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	err = ReconcileOwner(context.Background(), mock, "user-1", Delta{}, time.Now())
	if err != nil {
		t.Fatalf("reconcile: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected store access: %v", err)
	}
}

func TestReconcileOwnerUpdateError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	if err != nil {
		t.Fatalf("mock pool: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery(`SELECT id, challenge_type, challenge_value, progress, progress_after, status, time_end`).
		WithArgs("user-1").
		WillReturnRows(enrollmentRows().
			AddRow("ch-dist", TypeDistance, 10.0, 0.0, 0.0, StatusStarted, nil))

	mock.ExpectExec(`UPDATE user_challenges`).
		WithArgs("ch-dist", 5.0, 5.0, StatusStarted, pgxmock.AnyArg()).
		WillReturnError(context.DeadlineExceeded)

	err = ReconcileOwner(context.Background(), mock, "user-1", Delta{DistanceKm: 5}, time.Now())
	if err == nil {
		t.Fatalf("expected error")
	}
}
