package admission

import (
	"context"
	"time"

	"visitor-admission/internal/domain/approval"
)

// DayBounds returns the UTC calendar day containing now as [start, end).
func DayBounds(now time.Time) (time.Time, time.Time) {
	now = now.UTC()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 0, 1)
}

// CountApprovedToday counts the visitor's APPROVED records decided on now's UTC day.
// Grants are not distinguished; all approvals pool into one count.
func CountApprovedToday(ctx context.Context, approvals approval.Repository, visitorID uint64, now time.Time) (int64, error) {
	start, end := DayBounds(now)
	return approvals.CountApprovedBetween(ctx, visitorID, start, end)
}
