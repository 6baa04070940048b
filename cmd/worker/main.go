package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/email"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/reservation"
	"github.com/jackc/pgx/v5/pgxpool"
	kafkaGo "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	zapLog, err := logger.New(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		log.Fatalf("build logger: %v", err)
	}
	defer zapLog.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	reservationRepo := repository.NewReservationRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)

	// The sweep does not take the per-vehicle lock: completion only moves
	// CREATED reservations into a terminal state and never creates
	// overlap, so the cache is left out entirely.
	reservationService := reservation.NewService(
		reservationRepo,
		vehicleRepo,
		nil,
		producer,
		cfg.Kafka.ReservationsTopic,
		0,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		reservation.WithLogger(zapLog),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender()

	go func() {
		if err := consumer.Consume(ctx, func(ctx context.Context, msg kafkaGo.Message) error {
			event, err := kafka.DecodeReservationEvent(msg)
			if err != nil {
				zapLog.Warn("skip malformed event", zap.Error(err))
				return nil
			}
			return emailSender.Send(ctx, event)
		}); err != nil {
			zapLog.Info("consumer stopped", zap.Error(err))
		}
	}()

	sweepTicker := time.NewTicker(time.Duration(cfg.Worker.CompletionSweepMinutes) * time.Minute)
	defer sweepTicker.Stop()

	for {
		select {
		case <-sweepTicker.C:
			completed, err := reservationService.CompleteOverdue(ctx)
			if err != nil {
				zapLog.Error("complete overdue reservations", zap.Error(err))
				continue
			}
			if len(completed) > 0 {
				zapLog.Info("completed overdue reservations", zap.Int("count", len(completed)))
			}
		case <-ctx.Done():
			zapLog.Info("shutting down")
			return
		}
	}
}
