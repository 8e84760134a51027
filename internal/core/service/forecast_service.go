package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strconv"
	"time"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/forecast"
	"github.com/heyheyboy777/SAD-project/internal/port"
)

const (
	pastAverageDays   = 30
	fallbackUnitPrice = 200

	// noGeneration never matches a cache generation, so writes made with it are dropped.
	noGeneration int64 = -1
)

type ForecastDeps struct {
	Orders    port.OrderRepository
	Alerts    port.AlertRepository
	Prices    port.PriceRepository
	History   port.HistorySource
	Cache     port.CacheRepository
	Constants forecast.Constants
	CacheTTL  time.Duration
	Now       func() time.Time
	Logger    *slog.Logger
}

type ForecastService struct {
	orders    port.OrderRepository
	alerts    port.AlertRepository
	prices    port.PriceRepository
	history   port.HistorySource
	cache     port.CacheRepository
	constants forecast.Constants
	cacheTTL  time.Duration
	now       func() time.Time
	log       *slog.Logger
}

func NewForecastService(deps ForecastDeps) *ForecastService {
	s := &ForecastService{
		orders:    deps.Orders,
		alerts:    deps.Alerts,
		prices:    deps.Prices,
		history:   deps.History,
		cache:     deps.Cache,
		constants: deps.Constants,
		cacheTTL:  deps.CacheTTL,
		now:       deps.Now,
		log:       deps.Logger,
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.New(slog.DiscardHandler)
	}
	if err := s.constants.Weights.Validate(); err != nil {
		if s.constants.Weights != nil {
			s.log.Warn("falling back to default walk-in weights", "error", err)
		}
		s.constants.Weights = forecast.DefaultWeights()
	}
	return s
}

// Predict returns the purchase forecast for the horizon starting today.
func (s *ForecastService) Predict(ctx context.Context, horizon domain.Horizon) (domain.Prediction, error) {
	anchor := domain.DateOf(s.now())
	key := cacheKey("prediction", anchor, horizon)

	var prediction domain.Prediction
	gen, hit := s.fromCache(ctx, key, &prediction)
	if hit {
		return prediction, nil
	}

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("list orders: %w", err)
	}
	alerts, err := s.alerts.ListReorderAlerts(ctx)
	if err != nil {
		return domain.Prediction{}, fmt.Errorf("list reorder alerts: %w", err)
	}

	prediction = forecast.Predict(orders, alerts, anchor, horizon, s.constants)
	s.toCache(ctx, gen, key, prediction)
	return prediction, nil
}

// Demand values open orders in the horizon at catalog midpoint prices and
// compares each item with its recent daily average.
func (s *ForecastService) Demand(ctx context.Context, horizon domain.Horizon) (domain.DemandReport, error) {
	anchor := domain.DateOf(s.now())
	key := cacheKey("demand", anchor, horizon)

	var report domain.DemandReport
	gen, hit := s.fromCache(ctx, key, &report)
	if hit {
		return report, nil
	}

	orders, err := s.orders.ListOrders(ctx)
	if err != nil {
		return domain.DemandReport{}, fmt.Errorf("list orders: %w", err)
	}
	prices, err := s.prices.ListPrices(ctx)
	if err != nil {
		return domain.DemandReport{}, fmt.Errorf("list prices: %w", err)
	}

	unitPrice := make(map[domain.ItemType]int, len(prices))
	for _, p := range prices {
		unitPrice[p.Item] = p.Midpoint()
	}

	totals := forecast.AggregateQuantities(forecast.FilterOrdersByHorizon(orders, anchor, horizon), forecast.ExcludeCompleted)

	report = domain.DemandReport{Anchor: anchor, Horizon: horizon}
	for _, it := range domain.AllItems() {
		price, ok := unitPrice[it]
		if !ok {
			price = fallbackUnitPrice
		}
		avg, err := s.pastAverage(ctx, it, anchor)
		if err != nil {
			return domain.DemandReport{}, err
		}
		row := domain.DemandRow{
			Item:         it,
			Current:      totals[it],
			PastAverage:  avg,
			UnitPrice:    price,
			EstimatedSum: totals[it] * price,
		}
		report.Rows = append(report.Rows, row)
		report.TotalQuantity += row.Current
		report.EstimatedRevenue += row.EstimatedSum
	}
	sort.SliceStable(report.Rows, func(i, j int) bool {
		return report.Rows[i].Current > report.Rows[j].Current
	})

	s.toCache(ctx, gen, key, report)
	return report, nil
}

// ExportCSV writes the non-zero prediction rows as a purchase list.
func (s *ForecastService) ExportCSV(ctx context.Context, horizon domain.Horizon, w io.Writer) error {
	prediction, err := s.Predict(ctx, horizon)
	if err != nil {
		return err
	}

	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"品項", "訂單", "週期", "散客", "總計"}); err != nil {
		return err
	}
	for _, r := range prediction.NonZero() {
		record := []string{
			string(r.Item),
			strconv.Itoa(r.Actual),
			strconv.Itoa(r.Cycle),
			strconv.Itoa(r.WalkIn),
			strconv.Itoa(r.Total),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// Invalidate drops cached reports after catalog changes.
func (s *ForecastService) Invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		s.log.Warn("cannot invalidate forecast cache", "error", err)
	}
}

func (s *ForecastService) pastAverage(ctx context.Context, item domain.ItemType, anchor time.Time) (int, error) {
	if s.history == nil {
		return 0, nil
	}
	points, err := s.history.DailySales(ctx, item, anchor.AddDate(0, 0, -1), pastAverageDays)
	if err != nil {
		return 0, fmt.Errorf("daily sales for %s: %w", item, err)
	}
	_, avg := summarize(points)
	return avg, nil
}

// fromCache reports a hit and decodes it into dst. On a miss it returns the
// generation observed before the lookup, which toCache must be given so that
// an entry computed across an invalidation is never stored.
func (s *ForecastService) fromCache(ctx context.Context, key string, dst any) (int64, bool) {
	if s.cache == nil {
		return 0, false
	}
	gen, err := s.cache.Generation(ctx)
	if err != nil {
		s.log.Warn("forecast cache generation unavailable", "error", err)
		return noGeneration, false
	}
	raw, ok, err := s.cache.Get(ctx, key)
	if err != nil {
		s.log.Warn("forecast cache read failed", "key", key, "error", err)
		return gen, false
	}
	if !ok {
		return gen, false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		s.log.Warn("forecast cache entry unreadable", "key", key, "error", err)
		return gen, false
	}
	return gen, true
}

func (s *ForecastService) toCache(ctx context.Context, gen int64, key string, value any) {
	if s.cache == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		s.log.Warn("cannot encode forecast cache entry", "key", key, "error", err)
		return
	}
	if err := s.cache.Set(ctx, gen, key, raw, s.cacheTTL); err != nil {
		s.log.Warn("forecast cache write failed", "key", key, "error", err)
	}
}

func cacheKey(kind string, anchor time.Time, horizon domain.Horizon) string {
	return kind + ":" + anchor.Format(time.DateOnly) + ":" + horizon.String()
}
