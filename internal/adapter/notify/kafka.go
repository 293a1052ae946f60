package notify

import (
	"context"
	"encoding/json"

	"visitor-admission/internal/domain/notify"

	kafkago "github.com/segmentio/kafka-go"
)

type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
}

// KafkaNotifier enqueues notifications for the worker, keyed by host email.
type KafkaNotifier struct {
	writer MessageWriter
	topic  string
}

func NewKafkaNotifier(writer MessageWriter, topic string) *KafkaNotifier {
	return &KafkaNotifier{writer: writer, topic: topic}
}

func (k *KafkaNotifier) NotifyHost(ctx context.Context, n notify.HostNotification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return err
	}
	return k.writer.WriteMessages(ctx, kafkago.Message{
		Topic: k.topic,
		Key:   []byte(n.HostEmail),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_type", Value: []byte("host_notification")},
		},
	})
}
