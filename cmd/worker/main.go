package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sanjeebSubedi/Demake-Backend/internal/config"
	"github.com/sanjeebSubedi/Demake-Backend/internal/workers"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/logger"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/mailer"
	"github.com/sanjeebSubedi/Demake-Backend/pkg/queue"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logger.NewLogger()
	logger.Info("Starting Demake notification worker...")

	consumer := queue.NewKafkaConsumer(cfg.Kafka.Brokers, cfg.Kafka.Topics.NotificationEvents, "notification-worker-group")
	mail := mailer.New(&cfg.Mail)

	worker := workers.NewNotificationWorker(consumer, mail, logger)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		if err := worker.Start(ctx); err != nil && err != context.Canceled {
			logger.WithError(err).Error("Notification worker stopped with error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down worker...")
	cancel()

	if err := worker.Stop(); err != nil {
		logger.WithError(err).Error("Failed to stop notification worker")
	}

	logger.Info("Worker exited")
}
