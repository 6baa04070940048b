package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/carrental/api"
	"github.com/Domenick1991/carrental/config"
	"github.com/Domenick1991/carrental/internal/bootstrap"
	"github.com/Domenick1991/carrental/internal/cache"
	"github.com/Domenick1991/carrental/internal/kafka"
	"github.com/Domenick1991/carrental/internal/logger"
	"github.com/Domenick1991/carrental/internal/repository"
	"github.com/Domenick1991/carrental/internal/service/reservation"
	"github.com/Domenick1991/carrental/internal/service/users"
	"github.com/Domenick1991/carrental/internal/service/vehicles"
	"github.com/jackc/pgx/v5/pgxpool"
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

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Rental.VehiclesCacheTTLSeconds)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	reservationRepo := repository.NewReservationRepository(pool)
	vehicleRepo := repository.NewVehicleRepository(pool)
	userRepo := repository.NewUserRepository(pool)

	reservationService := reservation.NewService(
		reservationRepo,
		vehicleRepo,
		redisCache,
		producer,
		cfg.Kafka.ReservationsTopic,
		time.Duration(cfg.Rental.VehicleLockTTLSeconds)*time.Second,
		reservation.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		reservation.WithLogger(zapLog),
	)
	vehicleService := vehicles.NewVehicleService(vehicleRepo, reservationRepo, redisCache)
	userService := users.NewUserService(userRepo, reservationRepo)

	handlers := bootstrap.Handlers{
		Reservations: api.NewReservationHandler(reservationService, userService),
		Vehicles:     api.NewVehicleHandler(vehicleService),
		Users:        api.NewUserHandler(userService),
	}

	if err := bootstrap.Run(ctx, cfg, zapLog, handlers); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
