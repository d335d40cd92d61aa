package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/techstore/storefront/internal/api"
	"github.com/techstore/storefront/internal/config"
	"github.com/techstore/storefront/internal/events"
	"github.com/techstore/storefront/internal/notify"
	"github.com/techstore/storefront/internal/web"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})

	cfg := config.Load()
	logger.SetLevel(cfg.ParseLevel())

	apiClient := api.NewClient(cfg.StoreAPIURL, logger)
	logger.WithField("url", cfg.StoreAPIURL).Info("Store API client configured")

	var producer *events.Producer
	if len(cfg.KafkaBrokers) > 0 {
		var err error
		producer, err = events.NewProducer(cfg.KafkaBrokers, logger)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to Kafka")
		}
		defer producer.Close()
		logger.WithField("brokers", cfg.KafkaBrokers).Info("Checkout event producer configured")
	} else {
		logger.Info("KAFKA_BROKERS not set - checkout events disabled")
	}

	hub := notify.NewHub(logger)
	go hub.Run()

	server := web.NewServer(apiClient, hub, producer, logger)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.WithField("port", cfg.Port).Info("Starting storefront server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down storefront...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	}

	logger.Info("Storefront gracefully stopped")
}
