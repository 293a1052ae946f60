package grantmock

import (
	"context"
	"errors"
	"testing"

	domain "visitor-admission/internal/domain/grant"
)

func TestRepo_ListByVisitor(t *testing.T) {
	want := []domain.Grant{{ID: 1, VisitorID: 8}}
	m := &Repo{
		ListByVisitorFn: func(_ context.Context, visitorID uint64) ([]domain.Grant, error) {
			if visitorID != 8 {
				t.Fatalf("visitorID mismatch: %d", visitorID)
			}
			return want, nil
		},
	}
	got, err := m.ListByVisitor(context.Background(), 8)
	if err != nil || len(got) != 1 || got[0].ID != 1 {
		t.Fatalf("got %+v, %v", got, err)
	}
}

func TestRepo_Defaults(t *testing.T) {
	ctx := context.Background()
	m := &Repo{}
	if err := m.Create(ctx, &domain.Grant{}); err != nil {
		t.Fatalf("Create default: %v", err)
	}
	if _, err := m.ListByEmployee(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListByEmployee default: %v", err)
	}
	if _, err := m.ListByVisitor(ctx, 1); !errors.Is(err, context.Canceled) {
		t.Fatalf("ListByVisitor default: %v", err)
	}
}
