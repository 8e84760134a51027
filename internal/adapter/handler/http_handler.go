package handler

import (
	"bytes"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/service"
)

const (
	maxBodyBytes    = 1 << 20
	defaultHorizon  = domain.Horizon(7)
	defaultHistory  = 7
	requestIDHeader = "X-Request-ID"
)

type Services struct {
	Orders        *service.OrderService
	Forecast      *service.ForecastService
	Prices        *service.PriceService
	Notifications *service.NotificationService
	History       *service.HistoryService
}

type HTTPHandler struct {
	orders        *service.OrderService
	forecast      *service.ForecastService
	prices        *service.PriceService
	notifications *service.NotificationService
	history       *service.HistoryService
	logger        *slog.Logger
}

func NewHTTPHandler(svc Services, logger *slog.Logger) *HTTPHandler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &HTTPHandler{
		orders:        svc.Orders,
		forecast:      svc.Forecast,
		prices:        svc.Prices,
		notifications: svc.Notifications,
		history:       svc.History,
		logger:        logger,
	}
}

// Router builds the full route tree with request ids, logging and panic recovery.
func (h *HTTPHandler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(h.accessLog)
	r.Use(middleware.Recoverer)

	r.Get("/health", h.HealthCheck)
	r.Route("/api", h.RegisterRoutes)
	return r
}

func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/forecast", func(r chi.Router) {
		r.Get("/", h.Predict)
		r.Get("/demand", h.Demand)
		r.Get("/export", h.Export)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Get("/", h.ListOrders)
		r.Get("/pending", h.PendingOrders)
		r.Post("/confirm-all", h.ConfirmAll)
		r.Get("/{id}", h.GetOrder)
		r.Post("/{id}/confirm", h.ConfirmOrder)
	})

	r.Route("/prices", func(r chi.Router) {
		r.Get("/", h.ListPrices)
		r.Put("/", h.SavePrices)
		r.Get("/{item}", h.GetPrice)
	})

	r.Route("/notifications", func(r chi.Router) {
		r.Get("/", h.ListNotifications)
		r.Get("/{id}", h.GetNotification)
	})

	r.Get("/reorder-alerts", h.ReorderAlerts)
	r.Get("/history", h.SalesHistory)
}

func (h *HTTPHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// Forecast

func (h *HTTPHandler) Predict(w http.ResponseWriter, r *http.Request) {
	horizon, ok := h.horizon(w, r)
	if !ok {
		return
	}

	p, err := h.forecast.Predict(r.Context(), horizon)
	if err != nil {
		h.internalError(w, r, "cannot compute prediction", err)
		return
	}
	writeJSON(w, http.StatusOK, newPredictionResponse(p))
}

func (h *HTTPHandler) Demand(w http.ResponseWriter, r *http.Request) {
	horizon, ok := h.horizon(w, r)
	if !ok {
		return
	}

	report, err := h.forecast.Demand(r.Context(), horizon)
	if err != nil {
		h.internalError(w, r, "cannot compute demand", err)
		return
	}
	writeJSON(w, http.StatusOK, DemandResponse{
		Anchor:           report.Anchor.Format(time.DateOnly),
		Horizon:          report.Horizon.String(),
		Rows:             report.Rows,
		TotalQuantity:    report.TotalQuantity,
		EstimatedRevenue: report.EstimatedRevenue,
	})
}

func (h *HTTPHandler) Export(w http.ResponseWriter, r *http.Request) {
	horizon, ok := h.horizon(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.forecast.ExportCSV(r.Context(), horizon, &buf); err != nil {
		h.internalError(w, r, "cannot export purchase list", err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="purchase-`+horizon.String()+`.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// Orders

func (h *HTTPHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	horizon, ok := h.horizon(w, r)
	if !ok {
		return
	}

	summary, err := h.orders.Summary(r.Context(), horizon)
	if err != nil {
		h.internalError(w, r, "cannot list orders", err)
		return
	}
	writeJSON(w, http.StatusOK, OrderSummaryResponse{
		Anchor:                  summary.Anchor.Format(time.DateOnly),
		Horizon:                 summary.Horizon.String(),
		Orders:                  newOrderResponses(summary.Orders),
		PendingCount:            summary.PendingCount,
		PendingNewCustomerCount: summary.PendingNewCustomerCount,
	})
}

func (h *HTTPHandler) PendingOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.Pending(r.Context())
	if err != nil {
		h.internalError(w, r, "cannot list pending orders", err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponses(orders))
}

func (h *HTTPHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, domain.ErrOrderNotFound) {
		writeError(w, http.StatusNotFound, "order not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "cannot get order", err)
		return
	}
	writeJSON(w, http.StatusOK, newOrderResponse(o))
}

// ConfirmOrder answers 200 even when nothing changed; "confirmed" tells the
// caller whether this request performed the transition.
func (h *HTTPHandler) ConfirmOrder(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	ok, err := h.orders.Confirm(r.Context(), id)
	if err != nil {
		h.internalError(w, r, "cannot confirm order", err)
		return
	}
	if ok {
		h.log(r).Info("order confirmed", "order_id", id)
	}
	writeJSON(w, http.StatusOK, ConfirmResponse{OrderID: id, Confirmed: ok})
}

func (h *HTTPHandler) ConfirmAll(w http.ResponseWriter, r *http.Request) {
	n, err := h.orders.ConfirmAll(r.Context())
	if err != nil {
		h.internalError(w, r, "cannot confirm pending orders", err)
		return
	}
	h.log(r).Info("pending orders confirmed", "count", n)
	writeJSON(w, http.StatusOK, ConfirmAllResponse{Confirmed: n})
}

// Prices

func (h *HTTPHandler) ListPrices(w http.ResponseWriter, r *http.Request) {
	prices, err := h.prices.List(r.Context())
	if err != nil {
		h.internalError(w, r, "cannot list prices", err)
		return
	}
	writeJSON(w, http.StatusOK, prices)
}

func (h *HTTPHandler) GetPrice(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "item")
	if s, err := url.PathUnescape(raw); err == nil {
		raw = s
	}
	item, err := domain.ParseItem(raw)
	if err != nil {
		writeError(w, http.StatusNotFound, "unknown item")
		return
	}

	p, err := h.prices.Get(r.Context(), item)
	if errors.Is(err, domain.ErrUnknownItem) {
		writeError(w, http.StatusNotFound, "unknown item")
		return
	}
	if err != nil {
		h.internalError(w, r, "cannot get price", err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (h *HTTPHandler) SavePrices(w http.ResponseWriter, r *http.Request) {
	var req SavePricesRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if len(req.Prices) == 0 {
		writeError(w, http.StatusBadRequest, "no prices given")
		return
	}

	saved, err := h.prices.Save(r.Context(), req.Prices)
	if errors.Is(err, domain.ErrPriceRangeInvalid) || errors.Is(err, domain.ErrUnknownItem) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err != nil {
		h.internalError(w, r, "cannot save prices", err)
		return
	}
	h.log(r).Info("price catalog saved", "edits", len(req.Prices))
	writeJSON(w, http.StatusOK, saved)
}

// Notifications

func (h *HTTPHandler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	list, err := h.notifications.List(r.Context())
	if err != nil {
		h.internalError(w, r, "cannot list notifications", err)
		return
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *HTTPHandler) GetNotification(w http.ResponseWriter, r *http.Request) {
	n, err := h.notifications.Get(r.Context(), chi.URLParam(r, "id"))
	if errors.Is(err, service.ErrNotificationNotFound) {
		writeError(w, http.StatusNotFound, "notification not found")
		return
	}
	if err != nil {
		h.internalError(w, r, "cannot get notification", err)
		return
	}
	writeJSON(w, http.StatusOK, n)
}

func (h *HTTPHandler) ReorderAlerts(w http.ResponseWriter, r *http.Request) {
	alerts, err := h.notifications.ReorderAlerts(r.Context())
	if err != nil {
		h.internalError(w, r, "cannot list reorder alerts", err)
		return
	}
	writeJSON(w, http.StatusOK, alerts)
}

// History

func (h *HTTPHandler) SalesHistory(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	item, err := domain.ParseItem(q.Get("item"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "unknown item")
		return
	}
	days := defaultHistory
	if raw := q.Get("days"); raw != "" {
		days, err = strconv.Atoi(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid days")
			return
		}
	}

	hist, err := h.history.Sales(r.Context(), item, days)
	if errors.Is(err, domain.ErrInvalidRange) {
		writeError(w, http.StatusBadRequest, "days must be 7, 30 or 90")
		return
	}
	if err != nil {
		h.internalError(w, r, "cannot load sales history", err)
		return
	}
	writeJSON(w, http.StatusOK, newSalesHistoryResponse(hist))
}

// horizon reads ?horizon=, defaulting only when the parameter is absent.
func (h *HTTPHandler) horizon(w http.ResponseWriter, r *http.Request) (domain.Horizon, bool) {
	raw, present := r.URL.Query()["horizon"]
	if !present {
		return defaultHorizon, true
	}
	hz, err := domain.ParseHorizon(raw[0])
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid horizon")
		return 0, false
	}
	return hz, true
}

func (h *HTTPHandler) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	h.log(r).Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, "internal error")
}

type ctxKey struct{}

func (h *HTTPHandler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(requestIDHeader, id)
		log := h.logger.With("request_id", id)
		next.ServeHTTP(w, r.WithContext(withLogger(r.Context(), log)))
	})
}

func (h *HTTPHandler) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log(r).Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
		)
	})
}

func (h *HTTPHandler) log(r *http.Request) *slog.Logger {
	if l, ok := r.Context().Value(ctxKey{}).(*slog.Logger); ok {
		return l
	}
	return h.logger
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}
