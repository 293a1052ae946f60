package notify

import (
	"context"
	"encoding/json"

	"visitor-admission/internal/domain/notify"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type MessageReader interface {
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// ConsumeHostNotifications delivers queued notifications until ctx is done.
// Delivery is best-effort: failed and malformed messages are logged and committed.
func ConsumeHostNotifications(ctx context.Context, reader MessageReader, notifier notify.Notifier, logger *zap.Logger) {
	log := logger.Named("kafka.consumer.host_notifications")
	log.Info("host notification consumer started")

	for {
		msg, err := reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				log.Info("host notification consumer stopped")
				return
			}
			log.Error("fetch host notification failed", zap.Error(err))
			continue
		}

		var n notify.HostNotification
		if err := json.Unmarshal(msg.Value, &n); err != nil {
			log.Error("decode host notification failed", zap.Int64("offset", msg.Offset), zap.Error(err))
			_ = reader.CommitMessages(ctx, msg)
			continue
		}

		if err := notifier.NotifyHost(ctx, n); err != nil {
			log.Warn("deliver host notification failed",
				zap.Uint64("visitor_id", n.VisitorID),
				zap.String("host_email", n.HostEmail),
				zap.Error(err),
			)
		} else {
			log.Info("host notified",
				zap.Uint64("visitor_id", n.VisitorID),
				zap.String("host_email", n.HostEmail),
			)
		}

		if err := reader.CommitMessages(ctx, msg); err != nil {
			log.Error("commit host notification failed", zap.Error(err))
		}
	}
}
