package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/adapter/storage"
	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/service"
	"github.com/heyheyboy777/SAD-project/internal/seed"
)

func main() {
	rounds := flag.Int("rounds", 50, "concurrent confirms per pending order")
	flag.Parse()

	ctx := context.Background()
	anchor := domain.DateOf(time.Now())
	store := storage.NewMemoryStore(seed.Feed(anchor, 1))

	pending, err := store.ListOrders(ctx)
	if err != nil {
		log.Fatalf("failed to list orders: %v", err)
	}
	var ids []string
	for _, o := range pending {
		if o.Status == domain.OrderStatusPending {
			ids = append(ids, o.ID)
		}
	}

	totalRequests := len(ids) * *rounds
	orderService := service.NewOrderService(store, time.Now, totalRequests)
	defer orderService.Close()

	// Drain the event queue in background
	var events atomic.Int32
	go func() {
		for range orderService.GetEventQueue() {
			events.Add(1)
		}
	}()

	var transitions atomic.Int32
	var noops atomic.Int32

	var wg sync.WaitGroup
	start := time.Now()

	for _, id := range ids {
		for i := 0; i < *rounds; i++ {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()

				ok, err := orderService.Confirm(ctx, id)
				switch {
				case err != nil:
					log.Printf("confirm %s: %v", id, err)
				case ok:
					transitions.Add(1)
				default:
					noops.Add(1)
				}
			}(id)
		}
	}

	wg.Wait()
	elapsed := time.Since(start)

	fmt.Println("========== CONFIRM STRESS RESULTS ==========")
	fmt.Printf("Pending Orders:   %d\n", len(ids))
	fmt.Printf("Total Requests:   %d\n", totalRequests)
	fmt.Printf("Transitions:      %d\n", transitions.Load())
	fmt.Printf("No-ops:           %d\n", noops.Load())
	fmt.Printf("Events Drained:   %d\n", events.Load())
	fmt.Printf("Duration:         %v\n", elapsed)
	fmt.Println("============================================")

	if int(transitions.Load()) == len(ids) {
		fmt.Printf("PASS: each of %d pending orders confirmed exactly once\n", len(ids))
	} else {
		fmt.Printf("FAIL: expected %d transitions, got %d\n", len(ids), transitions.Load())
	}

	left, _ := orderService.Pending(ctx)
	if len(left) == 0 {
		fmt.Println("PASS: no order left pending")
	} else {
		fmt.Printf("FAIL: %d orders still pending\n", len(left))
	}
}
