package mysql

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	approvalDomain "visitor-admission/internal/domain/approval"
	"visitor-admission/internal/domain/uow"
	visitorDomain "visitor-admission/internal/domain/visitor"
	"visitor-admission/internal/testutil/sqlitedb"

	mysqldrv "github.com/go-sql-driver/mysql"
)

func TestGormUoW_WithinTx_Commit(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)

	var visitorID, approvalID uint64
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		v := &visitorDomain.Visitor{FullName: "Kiki", Contact: "k", Purpose: "p", HostEmployeeName: "h", HostDepartment: "d", CheckIn: time.Now().UTC()}
		if err := r.Visitors.Create(ctx, v); err != nil {
			return err
		}
		a := approvalDomain.NewPending(v.ID, 1, time.Now())
		if err := r.Approvals.Create(ctx, a); err != nil {
			return err
		}
		visitorID, approvalID = v.ID, a.ID
		return nil
	})
	if err != nil {
		t.Fatalf("WithinTx commit err: %v", err)
	}

	if _, err := NewVisitorRepository(db).GetByID(ctx, visitorID); err != nil {
		t.Fatalf("visitor not visible after commit: %v", err)
	}
	if _, err := NewApprovalRepository(db).GetByID(ctx, approvalID); err != nil {
		t.Fatalf("approval not visible after commit: %v", err)
	}
}

func TestGormUoW_WithinTx_Rollback(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	sentinel := errors.New("boom")

	var visitorID uint64
	err := guow.WithinTx(ctx, func(r uow.Repos) error {
		v := &visitorDomain.Visitor{FullName: "Lina", Contact: "l", Purpose: "p", HostEmployeeName: "h", HostDepartment: "d", CheckIn: time.Now().UTC()}
		if err := r.Visitors.Create(ctx, v); err != nil {
			return err
		}
		visitorID = v.ID
		return sentinel
	})
	if !errors.Is(err, sentinel) {
		t.Fatalf("want sentinel, got %v", err)
	}
	if _, err := NewVisitorRepository(db).GetByID(ctx, visitorID); !errors.Is(err, visitorDomain.ErrNotFound) {
		t.Fatalf("expected visitor absent after rollback, got %v", err)
	}
}

func TestGormUoW_WithinVisitorTx_PassesLockedVisitor(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	seed := seedVisitor(t, db, "Mira")

	err := guow.WithinVisitorTx(ctx, seed.ID, func(r uow.Repos, v *visitorDomain.Visitor) error {
		if v == nil || v.ID != seed.ID || v.FullName != "Mira" {
			t.Fatalf("unexpected visitor passed to fn: %+v", v)
		}
		return r.Visitors.RecordBadge(ctx, v.ID, "https://cdn.example.com/mira.png", time.Now())
	})
	if err != nil {
		t.Fatalf("WithinVisitorTx: %v", err)
	}
	got, _ := NewVisitorRepository(db).GetByID(ctx, seed.ID)
	if !got.HasBadge() {
		t.Fatalf("badge write not committed")
	}
}

func TestGormUoW_WithinVisitorTx_RollbackKeepsState(t *testing.T) {
	db := sqlitedb.Open(t)
	ctx := context.Background()
	guow := NewGormUoW(db)
	seed := seedVisitor(t, db, "Nina")
	pending := seedApproval(t, db, seed.ID, approvalDomain.StatusPending, time.Now(), nil)

	_ = guow.WithinVisitorTx(ctx, seed.ID, func(r uow.Repos, v *visitorDomain.Visitor) error {
		if _, err := r.Approvals.TransitionFromPending(ctx, pending.ID, approvalDomain.StatusApproved, time.Now()); err != nil {
			return err
		}
		if err := r.Visitors.RecordBadge(ctx, v.ID, "https://cdn.example.com/nina.png", time.Now()); err != nil {
			return err
		}
		return errors.New("issuer down")
	})

	got, _ := NewApprovalRepository(db).GetByID(ctx, pending.ID)
	if got.Status != approvalDomain.StatusPending {
		t.Fatalf("approval should be PENDING after rollback, got %s", got.Status)
	}
	vis, _ := NewVisitorRepository(db).GetByID(ctx, seed.ID)
	if vis.HasBadge() {
		t.Fatalf("badge should be absent after rollback")
	}
}

func TestGormUoW_WithinVisitorTx_VisitorNotFound(t *testing.T) {
	db := sqlitedb.Open(t)
	guow := NewGormUoW(db)

	err := guow.WithinVisitorTx(context.Background(), 404, func(uow.Repos, *visitorDomain.Visitor) error {
		t.Fatalf("callback should not be called when visitor missing")
		return nil
	})
	if !errors.Is(err, visitorDomain.ErrNotFound) {
		t.Fatalf("want ErrNotFound, got %v", err)
	}
}

func TestGormUoW_LockContentionBecomesConflict(t *testing.T) {
	db := sqlitedb.Open(t)
	guow := NewGormUoW(db)

	for _, num := range []uint16{erLockWaitTimeout, erLockDeadlock} {
		err := guow.WithinTx(context.Background(), func(uow.Repos) error {
			return fmt.Errorf("update approvals: %w", &mysqldrv.MySQLError{Number: num, Message: "lock"})
		})
		if !errors.Is(err, approvalDomain.ErrConcurrencyConflict) {
			t.Fatalf("mysql error %d: want ErrConcurrencyConflict, got %v", num, err)
		}
	}

	err := guow.WithinTx(context.Background(), func(uow.Repos) error {
		return &mysqldrv.MySQLError{Number: erDupEntry, Message: "dup"}
	})
	if errors.Is(err, approvalDomain.ErrConcurrencyConflict) {
		t.Fatalf("duplicate entry is not a lock conflict")
	}
}
