package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"log"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
	"google.golang.org/grpc"

	"github.com/heyheyboy777/SAD-project/internal/adapter/events"
	"github.com/heyheyboy777/SAD-project/internal/adapter/handler"
	"github.com/heyheyboy777/SAD-project/internal/adapter/storage"
	"github.com/heyheyboy777/SAD-project/internal/config"
	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/service"
	"github.com/heyheyboy777/SAD-project/internal/port"
	"github.com/heyheyboy777/SAD-project/internal/seed"
)

// repositories is everything the services read and write.
type repositories interface {
	port.OrderRepository
	port.PriceRepository
	port.AlertRepository
	port.NotificationRepository
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if errors.Is(err, flag.ErrHelp) {
		os.Exit(0)
	}
	if err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := newLogger(cfg.LogLevel)
	slog.SetDefault(logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	now := cfg.Clock()
	feed := seed.Feed(now(), cfg.HistorySeed)

	var closers []func() error

	// Initialize storage
	var repos repositories
	switch cfg.Storage {
	case config.StorageMySQL:
		db, err := sql.Open("mysql", cfg.MySQLDSN)
		if err != nil {
			log.Fatalf("failed to connect mysql: %v", err)
		}
		db.SetMaxOpenConns(50)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		if err := db.PingContext(ctx); err != nil {
			log.Fatalf("failed to ping mysql: %v", err)
		}
		mysqlAdapter := storage.NewMySQLAdapter(db)
		if err := mysqlAdapter.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to create schema: %v", err)
		}
		if err := mysqlAdapter.Seed(ctx, feed); err != nil {
			log.Fatalf("failed to seed mysql: %v", err)
		}
		log.Println("connected to mysql")
		repos = mysqlAdapter
		closers = append(closers, db.Close)
	default:
		repos = storage.NewMemoryStore(feed)
		log.Println("using in-memory store")
	}

	// Initialize cache
	var cache port.CacheRepository
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			PoolSize: 100,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatalf("failed to connect redis: %v", err)
		}
		log.Println("connected to redis")
		cache = storage.NewRedisAdapter(rdb)
		closers = append(closers, rdb.Close)
	} else {
		cache = storage.NewMemoryCache()
	}

	// Initialize event publisher
	var publisher port.EventPublisher
	if cfg.NATSURL != "" {
		p, err := events.NewNATSPublisher(cfg.NATSURL)
		if err != nil {
			log.Fatalf("failed to connect nats: %v", err)
		}
		log.Println("connected to nats")
		publisher = p
	} else {
		publisher = events.NewLogPublisher(logger)
	}

	// Initialize services
	history := storage.NewSeededHistory(cfg.HistorySeed)
	orderService := service.NewOrderService(repos, now, cfg.QueueSize)
	forecastService := service.NewForecastService(service.ForecastDeps{
		Orders:    repos,
		Alerts:    repos,
		Prices:    repos,
		History:   history,
		Cache:     cache,
		Constants: cfg.Constants(),
		CacheTTL:  cfg.CacheTTL,
		Now:       now,
		Logger:    logger,
	})
	services := handler.Services{
		Orders:        orderService,
		Forecast:      forecastService,
		Prices:        service.NewPriceService(repos, forecastService),
		Notifications: service.NewNotificationService(repos, repos),
		History:       service.NewHistoryService(history, now),
	}

	// Start worker pool
	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkerCount; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, orderService.GetEventQueue(), publisher, logger)
		}(i)
	}
	log.Printf("started %d workers", cfg.WorkerCount)

	// Initialize gRPC server
	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(handler.UnaryLogger(logger)))
	handler.NewGRPCHandler(services).Register(grpcServer)

	lis, err := net.Listen("tcp", cfg.GRPCAddr)
	if err != nil {
		log.Fatalf("failed to listen: %v", err)
	}

	go func() {
		log.Printf("gRPC server listening on %s", cfg.GRPCAddr)
		if err := grpcServer.Serve(lis); err != nil {
			log.Printf("gRPC server error: %v", err)
		}
	}()

	// Initialize HTTP server
	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler.NewHTTPHandler(services, logger).Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != http.ErrServerClosed {
			log.Printf("HTTP server error: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	httpServer.Shutdown(shutdownCtx)
	log.Println("HTTP server stopped")

	grpcServer.GracefulStop()
	log.Println("gRPC server stopped")

	// Close event queue and wait for workers
	orderService.Close()
	wg.Wait()
	log.Println("workers stopped")

	if err := publisher.Close(); err != nil {
		log.Printf("failed to close publisher: %v", err)
	}
	for _, c := range closers {
		c()
	}
	log.Println("connections closed")
}

func workerLoop(id int, queue <-chan domain.OrderEvent, publisher port.EventPublisher, logger *slog.Logger) {
	for event := range queue {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)

		if err := publisher.PublishOrderEvent(ctx, event); err != nil {
			logger.Error("failed to publish order event",
				"worker", id,
				"order_id", event.OrderID,
				"event_id", event.ID,
				"error", err,
			)
		} else {
			logger.Debug("published order event", "worker", id, "order_id", event.OrderID)
		}

		cancel()
	}
}

func newLogger(level string) *slog.Logger {
	var lv slog.Level
	if err := lv.UnmarshalText([]byte(level)); err != nil {
		lv = slog.LevelInfo
	}
	return slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lv}))
}
