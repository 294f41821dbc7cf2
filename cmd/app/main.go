package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vuhd/tourbooking/config"
	"github.com/vuhd/tourbooking/internal/bootstrap"
	"github.com/vuhd/tourbooking/internal/cache"
	"github.com/vuhd/tourbooking/internal/domain"
	"github.com/vuhd/tourbooking/internal/kafka"
	"github.com/vuhd/tourbooking/internal/payment"
	"github.com/vuhd/tourbooking/internal/repository"
	"github.com/vuhd/tourbooking/internal/service/booking"
	"github.com/vuhd/tourbooking/internal/service/tours"
)

func main() {
	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	if err := godotenv.Load(); err != nil {
		log.Info("no .env file found, using environment variables")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ToursCacheTTL)*time.Second)
	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()

	tourRepo := repository.NewTourRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)

	tourService := tours.NewTourService(tourRepo, redisCache)
	bookingService := booking.NewBookingService(
		invoiceRepo,
		tourRepo,
		redisCache,
		producer,
		cfg.Kafka.InvoiceTopic,
		time.Duration(cfg.Booking.SubmitLockTTLSeconds)*time.Second,
		time.Duration(cfg.Booking.PaymentTTLMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithGateway(domain.PaymentMomo, payment.NewMomoGateway(cfg.Payment.Momo)),
		booking.WithGateway(domain.PaymentCard, payment.NewCardGateway(cfg.Payment.Card)),
		booking.WithLogger(log),
	)

	log.WithField("address", cfg.HTTP.Address).Info("starting booking server")
	if err := bootstrap.Run(ctx, cfg, tourService, bookingService); err != nil {
		log.Fatalf("server error: %v", err)
	}
}
