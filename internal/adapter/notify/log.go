package notify

import (
	"context"

	"visitor-admission/internal/domain/notify"

	"go.uber.org/zap"
)

// LogNotifier stands in when no broker or mail server is configured.
type LogNotifier struct{ log *zap.Logger }

func NewLogNotifier(log *zap.Logger) *LogNotifier { return &LogNotifier{log: log.Named("notify")} }

func (l *LogNotifier) NotifyHost(_ context.Context, n notify.HostNotification) error {
	l.log.Info("host notification",
		zap.String("host_email", n.HostEmail),
		zap.Uint64("visitor_id", n.VisitorID),
		zap.String("visitor_name", n.VisitorName),
	)
	return nil
}
