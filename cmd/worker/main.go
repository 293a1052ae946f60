package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	notifyadp "visitor-admission/internal/adapter/notify"
	"visitor-admission/internal/config"
	"visitor-admission/internal/infrastructure/logger"
	"visitor-admission/internal/infrastructure/messaging"
)

// worker delivers host notifications queued by the api over SMTP.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	log, err := logger.New(cfg.AppEnv)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	brokers := messaging.SplitBrokers(cfg.KafkaBrokers)
	if len(brokers) == 0 {
		log.Fatal("KAFKA_BROKERS is required")
	}
	if cfg.SMTPHost == "" || cfg.SMTPSender == "" {
		log.Fatal("SMTP_HOST and SMTP_SENDER_EMAIL are required")
	}

	reader := messaging.NewReader(brokers, cfg.KafkaNotifyTopic, cfg.KafkaGroupID)
	defer func() { _ = reader.Close() }()

	mailer := notifyadp.NewSMTPNotifier(notifyadp.SMTPConfig{
		Host:     cfg.SMTPHost,
		Port:     cfg.SMTPPort,
		Username: cfg.SMTPUsername,
		Password: cfg.SMTPPassword,
		Sender:   cfg.SMTPSender,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.Info("notification worker started",
		zap.Strings("brokers", brokers),
		zap.String("topic", cfg.KafkaNotifyTopic),
		zap.String("group", cfg.KafkaGroupID),
	)
	notifyadp.ConsumeHostNotifications(ctx, reader, mailer, log)
	log.Info("notification worker stopped")
}
