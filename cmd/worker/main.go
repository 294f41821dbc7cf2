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
	"github.com/vuhd/tourbooking/internal/cache"
	"github.com/vuhd/tourbooking/internal/email"
	"github.com/vuhd/tourbooking/internal/kafka"
	"github.com/vuhd/tourbooking/internal/repository"
	"github.com/vuhd/tourbooking/internal/service/booking"
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

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	producer := kafka.NewProducer(cfg.Kafka.Brokers)
	defer producer.Close()
	redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Booking.ToursCacheTTL)*time.Second)

	tourRepo := repository.NewTourRepository(pool)
	invoiceRepo := repository.NewInvoiceRepository(pool)
	bookingService := booking.NewBookingService(
		invoiceRepo,
		tourRepo,
		redisCache,
		producer,
		cfg.Kafka.InvoiceTopic,
		time.Duration(cfg.Booking.SubmitLockTTLSeconds)*time.Second,
		time.Duration(cfg.Booking.PaymentTTLMinutes)*time.Minute,
		booking.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		booking.WithLogger(log),
	)

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.NotificationsTopic)
	defer consumer.Close()

	emailSender := email.NewSender(log)

	go func() {
		if err := consumer.Consume(ctx, emailSender.Send); err != nil {
			log.WithError(err).Info("consumer stopped")
		}
	}()

	expireTicker := time.NewTicker(time.Duration(cfg.Worker.ExpirationSweepMinutes) * time.Minute)
	defer expireTicker.Stop()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	for {
		select {
		case <-expireTicker.C:
			expired, err := bookingService.ExpirePendingInvoices(ctx)
			if err != nil {
				log.WithError(err).Error("expire invoices")
				continue
			}
			if len(expired) > 0 {
				log.WithField("count", len(expired)).Info("expired pending invoices")
			}
		case s := <-sig:
			log.WithField("signal", s.String()).Info("shutting down")
			return
		}
	}
}
