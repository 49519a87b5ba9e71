package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/freshkart/shopapi/internal/blobstore"
	"github.com/freshkart/shopapi/internal/config"
	"github.com/freshkart/shopapi/internal/events"
	"github.com/freshkart/shopapi/internal/httpserver"
	"github.com/freshkart/shopapi/internal/models"
	"github.com/freshkart/shopapi/internal/repo"
	"github.com/freshkart/shopapi/internal/service"
	"github.com/freshkart/shopapi/pkg/db"
	"github.com/freshkart/shopapi/pkg/logging"
	loggingmw "github.com/freshkart/shopapi/pkg/middleware/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := config.Load()
	config.MustNonEmpty(cfg.DatabaseURL, "DATABASE_URL")
	config.MustNonEmptyBytes(cfg.JWTSecret, "JWT_SECRET")
	config.MustNonEmpty(cfg.GCSBucket, "GCS_BUCKET_NAME")

	logger := logging.New(cfg.LogLevel)
	slog.SetDefault(logger)

	initCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	gormDB, err := db.Open(initCtx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("db init error: %v", err)
	}
	if err := gormDB.AutoMigrate(models.All()...); err != nil {
		log.Fatalf("db migrate error: %v", err)
	}

	store, err := blobstore.NewGCS(initCtx, cfg.GCSBucket)
	if err != nil {
		log.Fatalf("gcs init error: %v", err)
	}
	defer store.Close()

	producer := events.NewProducer(cfg.KafkaBrokers)
	defer producer.Close()

	gormRepo := &repo.GormRepo{DB: gormDB}

	authSvc := &service.AuthService{
		Repo:      gormRepo,
		JWTSecret: cfg.JWTSecret,
		Events:    producer,
	}

	deps := &httpserver.Deps{
		Auth: &httpserver.AuthHTTP{Svc: authSvc},
		Catalog: &httpserver.CatalogHTTP{Svc: &service.CatalogService{
			Repo:   gormRepo,
			Store:  store,
			Events: producer,
		}},
		Cart: &httpserver.CartHTTP{Svc: &service.CartService{
			Repo:  gormRepo,
			Store: store,
		}},
		Order: &httpserver.OrderHTTP{Svc: &service.OrderService{
			Repo:   gormRepo,
			Store:  store,
			Events: producer,
		}},
		Rating: &httpserver.RatingHTTP{Svc: &service.RatingService{
			Repo: gormRepo,
		}},
		Profile: &httpserver.ProfileHTTP{Svc: authSvc},
		JWTSecret: cfg.JWTSecret,
	}

	e := echo.New()
	e.HideBanner = true
	e.Server.ReadTimeout = 10 * time.Second
	e.Server.WriteTimeout = 15 * time.Second
	e.Server.ReadHeaderTimeout = 3 * time.Second

	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(echomw.CORS())
	e.Use(loggingmw.RequestLogger(logger))

	httpserver.Register(e, deps)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.ServerPort)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("echo start: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("echo shutdown", "error", err)
	}
}
