package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/jortega/store-api/internal/config"
	"github.com/jortega/store-api/internal/es"
	"github.com/jortega/store-api/internal/httpserver"
	"github.com/jortega/store-api/internal/logging"
	"github.com/jortega/store-api/internal/mykafka"
	"github.com/jortega/store-api/internal/repo"
	"github.com/jortega/store-api/internal/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal(err)
	}

	logger := logging.New(cfg.LOG_LEVEL)

	db, err := config.InitDB(cfg)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}

	var producer *mykafka.Producer
	if cfg.KAFKA_ADDRESS != "" {
		producer = mykafka.NewProducer([]string{cfg.KAFKA_ADDRESS})
	} else {
		logger.Warn("KAFKA_ADDRESS is empty, events disabled")
	}

	var searchSvc *service.SearchService
	if cfg.ES_URL != "" {
		esClient, err := es.NewClient(cfg.ES_URL, cfg.ES_USER, cfg.ES_PASSWORD)
		if err != nil {
			log.Fatalf("elasticsearch init error: %v", err)
		}
		searchSvc = &service.SearchService{ES: esClient, Index: "products"}
	} else {
		logger.Warn("ES_URL is empty, search disabled")
	}

	jwtSecret := []byte(cfg.JWT_SECRET)
	r := &repo.GormRepo{DB: db}

	e := echo.New()
	e.HideBanner = true
	e.Pre(middleware.RemoveTrailingSlash())
	e.Use(middleware.Recover(), middleware.RequestID())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler: &httpserver.AuthHTTP{
			Svc:      &service.AuthService{Repo: r, JWTSecret: jwtSecret},
			Producer: producer,
		},
		ProductHandler: &httpserver.ProductHTTP{
			Svc:      &service.ProductService{Repo: r},
			Search:   searchSvc,
			Producer: producer,
		},
		CartHandler: &httpserver.CartHTTP{
			Svc:      &service.CartService{Repo: r},
			Checkout: &service.CheckoutService{Repo: r},
			Producer: producer,
		},
		OrderHandler: &httpserver.OrderHTTP{
			Svc: &service.OrderService{Repo: r},
		},
		JWTSecret: jwtSecret,
		Logger:    logger,
	})

	port := cfg.SERVER_PORT
	if port == "" {
		port = "8080"
	}

	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      e,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
	go func() {
		logger.Info("starting server", "port", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("http server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("server shutdown error: %v", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			log.Printf("db close error: %v", err)
		}
	}

	if producer != nil {
		if err := producer.Close(); err != nil {
			log.Printf("kafka close error: %v", err)
		}
	}

	logger.Info("shutdown complete")
}
