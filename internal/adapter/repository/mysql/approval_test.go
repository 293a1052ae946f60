package mysql

import (
	"context"
	"errors"
	"testing"
	"time"

	approvalDomain "visitor-admission/internal/domain/approval"
	visitorDomain "visitor-admission/internal/domain/visitor"
	"visitor-admission/internal/testutil/sqlitedb"

	"gorm.io/gorm"
)

func seedVisitor(t *testing.T, db *gorm.DB, name string) *visitorDomain.Visitor {
	t.Helper()
	v := &visitorDomain.Visitor{
		FullName:         name,
		Contact:          "0812000000",
		Purpose:          "meeting",
		HostEmployeeName: "Dewi Lestari",
		HostDepartment:   "Finance",
		CheckIn:          time.Now().UTC(),
	}
	if err := NewVisitorRepository(db).Create(context.Background(), v); err != nil {
		t.Fatalf("seed visitor: %v", err)
	}
	return v
}

func seedApproval(t *testing.T, db *gorm.DB, visitorID uint64, status approvalDomain.Status, requested time.Time, decided *time.Time) *approvalDomain.Approval {
	t.Helper()
	a := &approvalDomain.Approval{
		VisitorID:   visitorID,
		EmployeeID:  9,
		Status:      status,
		RequestedAt: requested.UTC(),
		DecisionAt:  decided,
	}
	if err := NewApprovalRepository(db).Create(context.Background(), a); err != nil {
		t.Fatalf("seed approval: %v", err)
	}
	return a
}

func utcPtr(t time.Time) *time.Time { u := t.UTC(); return &u }

func TestApproval_CreateAndGet(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()
	v := seedVisitor(t, db, "Andi")

	now := time.Date(2025, 9, 6, 10, 0, 0, 0, time.UTC)
	in := approvalDomain.NewPending(v.ID, 42, now)
	if err := repo.Create(ctx, in); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if in.ID == 0 {
		t.Fatalf("auto id not set")
	}

	got, err := repo.GetByID(ctx, in.ID)
	if err != nil {
		t.Fatalf("GetByID: %v", err)
	}
	if got.Status != approvalDomain.StatusPending || got.EmployeeID != 42 || got.DecisionAt != nil {
		t.Errorf("unexpected row: %+v", got)
	}
	if !got.RequestedAt.Equal(now) {
		t.Errorf("requested_at not preserved: got=%v want=%v", got.RequestedAt, now)
	}
}

func TestApproval_NotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()

	if _, err := repo.GetByID(ctx, 999); !errors.Is(err, approvalDomain.ErrNotFound) {
		t.Fatalf("GetByID: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetByIDForUpdate(ctx, 999); !errors.Is(err, approvalDomain.ErrNotFound) {
		t.Fatalf("GetByIDForUpdate: want ErrNotFound, got %v", err)
	}
	if _, err := repo.GetLatestByVisitorID(ctx, 999); !errors.Is(err, approvalDomain.ErrNotFound) {
		t.Fatalf("GetLatestByVisitorID: want ErrNotFound, got %v", err)
	}
}

func TestApproval_GetLatestByVisitorID_TieBreaksOnID(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()
	v := seedVisitor(t, db, "Budi")

	base := time.Date(2025, 9, 6, 8, 0, 0, 0, time.UTC)
	seedApproval(t, db, v.ID, approvalDomain.StatusRejected, base, utcPtr(base))
	seedApproval(t, db, v.ID, approvalDomain.StatusPending, base.Add(time.Hour), nil)
	want := seedApproval(t, db, v.ID, approvalDomain.StatusPending, base.Add(time.Hour), nil)

	got, err := repo.GetLatestByVisitorID(ctx, v.ID)
	if err != nil {
		t.Fatalf("GetLatestByVisitorID: %v", err)
	}
	if got.ID != want.ID {
		t.Fatalf("latest id = %d, want %d", got.ID, want.ID)
	}
}

func TestApproval_CountApprovedBetween_UTCDay(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()
	v := seedVisitor(t, db, "Citra")
	other := seedVisitor(t, db, "Dodi")

	dayStart := time.Date(2025, 9, 6, 0, 0, 0, 0, time.UTC)
	dayEnd := dayStart.AddDate(0, 0, 1)

	// counted: decided inside the day
	seedApproval(t, db, v.ID, approvalDomain.StatusApproved, dayStart, utcPtr(dayStart))
	seedApproval(t, db, v.ID, approvalDomain.StatusApproved, dayStart, utcPtr(dayEnd.Add(-time.Second)))
	// not counted: previous day, next day boundary, rejected, pending, another visitor
	seedApproval(t, db, v.ID, approvalDomain.StatusApproved, dayStart, utcPtr(dayStart.Add(-time.Second)))
	seedApproval(t, db, v.ID, approvalDomain.StatusApproved, dayStart, utcPtr(dayEnd))
	seedApproval(t, db, v.ID, approvalDomain.StatusRejected, dayStart, utcPtr(dayStart.Add(time.Hour)))
	seedApproval(t, db, v.ID, approvalDomain.StatusPending, dayStart, nil)
	seedApproval(t, db, other.ID, approvalDomain.StatusApproved, dayStart, utcPtr(dayStart.Add(time.Hour)))

	n, err := repo.CountApprovedBetween(ctx, v.ID, dayStart, dayEnd)
	if err != nil {
		t.Fatalf("CountApprovedBetween: %v", err)
	}
	if n != 2 {
		t.Fatalf("count = %d, want 2", n)
	}
}

func TestApproval_TransitionFromPending(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()
	v := seedVisitor(t, db, "Eka")

	at := time.Date(2025, 9, 6, 11, 30, 0, 0, time.UTC)
	a := seedApproval(t, db, v.ID, approvalDomain.StatusPending, at.Add(-time.Hour), nil)

	ok, err := repo.TransitionFromPending(ctx, a.ID, approvalDomain.StatusApproved, at)
	if err != nil || !ok {
		t.Fatalf("first transition: ok=%v err=%v", ok, err)
	}
	got, _ := repo.GetByID(ctx, a.ID)
	if got.Status != approvalDomain.StatusApproved || got.DecisionAt == nil || !got.DecisionAt.Equal(at) {
		t.Fatalf("unexpected row after transition: %+v", got)
	}

	// second attempt loses: record is no longer PENDING
	ok, err = repo.TransitionFromPending(ctx, a.ID, approvalDomain.StatusRejected, at.Add(time.Minute))
	if err != nil {
		t.Fatalf("second transition err: %v", err)
	}
	if ok {
		t.Fatalf("terminal record must not transition again")
	}
	got, _ = repo.GetByID(ctx, a.ID)
	if got.Status != approvalDomain.StatusApproved {
		t.Fatalf("status clobbered: %s", got.Status)
	}
}

func TestApproval_ListByEmployee_StatusFilter(t *testing.T) {
	db := sqlitedb.Open(t)
	repo := NewApprovalRepository(db)
	ctx := context.Background()
	v := seedVisitor(t, db, "Fajar")

	base := time.Date(2025, 9, 6, 8, 0, 0, 0, time.UTC)
	seedApproval(t, db, v.ID, approvalDomain.StatusPending, base, nil)
	seedApproval(t, db, v.ID, approvalDomain.StatusApproved, base.Add(time.Minute), utcPtr(base.Add(time.Minute)))
	seedApproval(t, db, v.ID, approvalDomain.StatusPending, base.Add(2*time.Minute), nil)

	all, err := repo.ListByEmployee(ctx, 9, nil)
	if err != nil {
		t.Fatalf("ListByEmployee: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("all = %d, want 3", len(all))
	}
	if !all[0].RequestedAt.After(all[2].RequestedAt) {
		t.Fatalf("expected newest first: %+v", all)
	}

	pending := approvalDomain.StatusPending
	only, err := repo.ListByEmployee(ctx, 9, &pending)
	if err != nil {
		t.Fatalf("ListByEmployee filtered: %v", err)
	}
	if len(only) != 2 {
		t.Fatalf("pending = %d, want 2", len(only))
	}

	none, err := repo.ListByEmployee(ctx, 10, nil)
	if err != nil || len(none) != 0 {
		t.Fatalf("other employee: len=%d err=%v", len(none), err)
	}
}
