package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"os"
	"sync"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"

	"github.com/heyheyboy777/SAD-project/internal/adapter/storage"
	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/forecast"
	"github.com/heyheyboy777/SAD-project/internal/core/service"
	"github.com/heyheyboy777/SAD-project/internal/seed"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []domain.OrderEvent
	fail   bool
}

func (p *recordingPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail {
		return errors.New("broker down")
	}
	p.events = append(p.events, event)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func TestWorkerLoop_PublishesEveryEvent(t *testing.T) {
	queue := make(chan domain.OrderEvent, 10)
	for _, id := range []string{"a", "b", "c"} {
		queue <- domain.OrderEvent{ID: "evt-" + id, OrderID: id}
	}
	close(queue)

	pub := &recordingPublisher{}
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, queue, pub, slog.New(slog.DiscardHandler))
		}(i)
	}
	wg.Wait()

	if len(pub.events) != 3 {
		t.Errorf("expected 3 published events, got %d", len(pub.events))
	}
}

func TestWorkerLoop_SurvivesPublishErrors(t *testing.T) {
	queue := make(chan domain.OrderEvent, 2)
	queue <- domain.OrderEvent{ID: "1"}
	queue <- domain.OrderEvent{ID: "2"}
	close(queue)

	done := make(chan struct{})
	go func() {
		workerLoop(0, queue, &recordingPublisher{fail: true}, slog.New(slog.DiscardHandler))
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker did not drain the queue")
	}
}

func TestNewLogger(t *testing.T) {
	if !newLogger("debug").Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug level not applied")
	}
	if newLogger("bogus").Enabled(context.Background(), slog.LevelDebug) {
		t.Error("unknown level should fall back to info")
	}
}

// TestIntegration_ConfirmFlow runs the confirm path end to end over MySQL
// and Redis, the way the server wires it.
func TestIntegration_ConfirmFlow(t *testing.T) {
	redisAddr := os.Getenv("REDIS_ADDR")
	if redisAddr == "" {
		redisAddr = "localhost:6379"
	}
	mysqlDSN := os.Getenv("MYSQL_DSN")
	if mysqlDSN == "" {
		mysqlDSN = "root:root@tcp(localhost:3306)/fishmarket?parseTime=true"
	}

	rdb := redis.NewClient(&redis.Options{Addr: redisAddr})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		t.Skipf("Redis not available: %v", err)
	}
	defer rdb.Close()

	db, err := sql.Open("mysql", mysqlDSN)
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	if err := db.Ping(); err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	anchor := time.Date(2025, 10, 24, 0, 0, 0, 0, time.UTC)
	now := func() time.Time { return anchor }

	repo := storage.NewMySQLAdapter(db)
	if err := repo.EnsureSchema(ctx); err != nil {
		t.Fatalf("schema: %v", err)
	}
	for _, table := range []string{"orders", "order_items", "prices", "price_history", "reorder_alerts", "alert_items", "notifications"} {
		db.ExecContext(ctx, "DELETE FROM "+table)
	}
	if err := repo.Seed(ctx, seed.Feed(anchor, 1)); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cache := storage.NewRedisAdapter(rdb)
	orders := service.NewOrderService(repo, now, 100)
	fc := service.NewForecastService(service.ForecastDeps{
		Orders:    repo,
		Alerts:    repo,
		Prices:    repo,
		Cache:     cache,
		Constants: forecast.DefaultConstants(),
		CacheTTL:  time.Minute,
		Now:       now,
	})
	fc.Invalidate(ctx)

	pub := &recordingPublisher{}
	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			workerLoop(id, orders.GetEventQueue(), pub, slog.New(slog.DiscardHandler))
		}(i)
	}

	before, err := fc.Predict(ctx, 7)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}

	var confirmWg sync.WaitGroup
	var mu sync.Mutex
	confirmed := 0
	for i := 0; i < 10; i++ {
		confirmWg.Add(1)
		go func() {
			defer confirmWg.Done()
			n, err := orders.ConfirmAll(ctx)
			if err != nil {
				t.Errorf("confirm all: %v", err)
			}
			mu.Lock()
			confirmed += n
			mu.Unlock()
		}()
	}
	confirmWg.Wait()

	orders.Close()
	wg.Wait()

	if confirmed != 3 {
		t.Errorf("expected 3 transitions across all callers, got %d", confirmed)
	}
	if len(pub.events) != 3 {
		t.Errorf("expected 3 published events, got %d", len(pub.events))
	}

	// Review does not change quantities, so the cached prediction stays valid.
	after, err := fc.Predict(ctx, 7)
	if err != nil {
		t.Fatalf("predict: %v", err)
	}
	if !after.Total.Equal(before.Total) {
		t.Errorf("prediction changed after review: %v vs %v", after.Total, before.Total)
	}
}
