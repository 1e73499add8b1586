package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/hayahstore/storefront-api/internal/config"
	"github.com/hayahstore/storefront-api/internal/es"
	"github.com/hayahstore/storefront-api/internal/httpserver"
	authmw "github.com/hayahstore/storefront-api/internal/middleware/auth"
	"github.com/hayahstore/storefront-api/internal/mykafka"
	"github.com/hayahstore/storefront-api/internal/repo"
	"github.com/hayahstore/storefront-api/internal/service"
	"github.com/hayahstore/storefront-api/internal/storage"
	"github.com/hayahstore/storefront-api/pkg/logging"
	loggingmw "github.com/hayahstore/storefront-api/pkg/middleware/logging"
)

const productIndex = "products"

func main() {
	cfg := config.Load()

	logger := logging.New(cfg.LogLevel).With("service", "storefront-api")
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	client, err := repo.Connect(ctx, cfg.MongoURI)
	cancel()
	if err != nil {
		log.Fatalf("mongo connect: %v", err)
	}

	store := repo.New(client.Database(cfg.DBName))

	ctx, cancel = context.WithTimeout(context.Background(), 10*time.Second)
	err = store.EnsureIndexes(ctx)
	cancel()
	if err != nil {
		log.Fatalf("ensure indexes: %v", err)
	}

	var uploader storage.Uploader
	if cfg.CloudinaryURL != "" {
		cld, err := storage.NewCloudinary(cfg.CloudinaryURL, "products")
		if err != nil {
			log.Fatalf("cloudinary: %v", err)
		}
		uploader = cld
	} else {
		logger.Warn("CLOUDINARY_URL not set, image uploads disabled")
	}

	var producer *mykafka.Producer
	if cfg.KafkaAddress != "" {
		producer = mykafka.NewProducer([]string{cfg.KafkaAddress})
		defer producer.Close()
	} else {
		logger.Warn("KAFKA_ADDRESS not set, event publishing disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg.ESURL, cfg.ESUser, cfg.ESPassword)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		logger.Warn("ES_URL not set, product search disabled")
	}

	catalogSvc := &service.CatalogService{Repo: store, Producer: producer, ES: esClient, ESIndex: productIndex}
	orderSvc := &service.OrderService{Repo: store, Products: store, Producer: producer}
	authSvc := &service.AuthService{Repo: store, JWTSecret: cfg.JWTSecret}
	contactSvc := &service.ContactService{Repo: store}
	statsSvc := &service.StatsService{Repo: store, Now: time.Now}

	e := echo.New()
	e.HideBanner = true
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestID())
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())
	e.Validator = httpserver.NewValidator()

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc, Storage: uploader},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc},
		ContactHandler: &httpserver.ContactHTTP{Svc: contactSvc},
		StatsHandler:   &httpserver.StatsHTTP{Svc: statsSvc},
		SearchHandler:  &httpserver.SearchHTTP{ES: esClient, Index: productIndex},
		Auth:           authmw.New(store, cfg.JWTSecret),
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	_ = srv.Shutdown(shutdownCtx)
	_ = client.Disconnect(shutdownCtx)

	logger.Info("server stopped")
}
