package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/encoding"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/core/service"
)

// CodecName is the content subtype clients must request ("application/grpc+json").
const CodecName = "json"

type jsonCodec struct{}

func (jsonCodec) Marshal(v any) ([]byte, error)      { return json.Marshal(v) }
func (jsonCodec) Unmarshal(data []byte, v any) error { return json.Unmarshal(data, v) }
func (jsonCodec) Name() string                       { return CodecName }

func init() {
	encoding.RegisterCodec(jsonCodec{})
}

type HorizonRequest struct {
	// Horizon uses the same syntax as the HTTP query parameter; empty means the default.
	Horizon string `json:"horizon"`
}

type ConfirmOrderRequest struct {
	OrderID string `json:"order_id"`
}

type Empty struct{}

type PricesResponse struct {
	Prices []domain.PriceData `json:"prices"`
}

// ForecastServer is the gRPC surface over the same services the HTTP API uses.
type ForecastServer interface {
	Predict(context.Context, *HorizonRequest) (*PredictionResponse, error)
	ListOrders(context.Context, *HorizonRequest) (*OrderSummaryResponse, error)
	ConfirmOrder(context.Context, *ConfirmOrderRequest) (*ConfirmResponse, error)
	ConfirmAll(context.Context, *Empty) (*ConfirmAllResponse, error)
	ListPrices(context.Context, *Empty) (*PricesResponse, error)
	SavePrices(context.Context, *SavePricesRequest) (*PricesResponse, error)
}

type GRPCHandler struct {
	orders   *service.OrderService
	forecast *service.ForecastService
	prices   *service.PriceService
}

func NewGRPCHandler(svc Services) *GRPCHandler {
	return &GRPCHandler{
		orders:   svc.Orders,
		forecast: svc.Forecast,
		prices:   svc.Prices,
	}
}

// Register attaches the handler to s.
func (h *GRPCHandler) Register(s *grpc.Server) {
	RegisterForecastServer(s, h)
}

// RegisterForecastServer serves srv under ForecastServiceName.
func RegisterForecastServer(s grpc.ServiceRegistrar, srv ForecastServer) {
	s.RegisterService(&forecastServiceDesc, srv)
}

func (h *GRPCHandler) Predict(ctx context.Context, req *HorizonRequest) (*PredictionResponse, error) {
	hz, err := parseHorizon(req.Horizon)
	if err != nil {
		return nil, err
	}
	p, err := h.forecast.Predict(ctx, hz)
	if err != nil {
		return nil, status.Error(codes.Internal, "cannot compute prediction")
	}
	resp := newPredictionResponse(p)
	return &resp, nil
}

func (h *GRPCHandler) ListOrders(ctx context.Context, req *HorizonRequest) (*OrderSummaryResponse, error) {
	hz, err := parseHorizon(req.Horizon)
	if err != nil {
		return nil, err
	}
	s, err := h.orders.Summary(ctx, hz)
	if err != nil {
		return nil, status.Error(codes.Internal, "cannot list orders")
	}
	return &OrderSummaryResponse{
		Anchor:                  s.Anchor.Format(time.DateOnly),
		Horizon:                 s.Horizon.String(),
		Orders:                  newOrderResponses(s.Orders),
		PendingCount:            s.PendingCount,
		PendingNewCustomerCount: s.PendingNewCustomerCount,
	}, nil
}

func (h *GRPCHandler) ConfirmOrder(ctx context.Context, req *ConfirmOrderRequest) (*ConfirmResponse, error) {
	if req.OrderID == "" {
		return nil, status.Error(codes.InvalidArgument, "order_id is required")
	}
	ok, err := h.orders.Confirm(ctx, req.OrderID)
	if err != nil {
		return nil, status.Error(codes.Internal, "cannot confirm order")
	}
	return &ConfirmResponse{OrderID: req.OrderID, Confirmed: ok}, nil
}

func (h *GRPCHandler) ConfirmAll(ctx context.Context, _ *Empty) (*ConfirmAllResponse, error) {
	n, err := h.orders.ConfirmAll(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "cannot confirm pending orders")
	}
	return &ConfirmAllResponse{Confirmed: n}, nil
}

func (h *GRPCHandler) ListPrices(ctx context.Context, _ *Empty) (*PricesResponse, error) {
	prices, err := h.prices.List(ctx)
	if err != nil {
		return nil, status.Error(codes.Internal, "cannot list prices")
	}
	return &PricesResponse{Prices: prices}, nil
}

func (h *GRPCHandler) SavePrices(ctx context.Context, req *SavePricesRequest) (*PricesResponse, error) {
	if len(req.Prices) == 0 {
		return nil, status.Error(codes.InvalidArgument, "no prices given")
	}
	saved, err := h.prices.Save(ctx, req.Prices)
	if errors.Is(err, domain.ErrPriceRangeInvalid) || errors.Is(err, domain.ErrUnknownItem) {
		return nil, status.Error(codes.InvalidArgument, err.Error())
	}
	if err != nil {
		return nil, status.Error(codes.Internal, "cannot save prices")
	}
	return &PricesResponse{Prices: saved}, nil
}

func parseHorizon(raw string) (domain.Horizon, error) {
	if raw == "" {
		return defaultHorizon, nil
	}
	hz, err := domain.ParseHorizon(raw)
	if err != nil {
		return 0, status.Error(codes.InvalidArgument, "invalid horizon")
	}
	return hz, nil
}

// UnaryLogger logs every call with its request id, taken from the
// x-request-id metadata or generated.
func UnaryLogger(logger *slog.Logger) grpc.UnaryServerInterceptor {
	return func(ctx context.Context, req any, info *grpc.UnaryServerInfo, handler grpc.UnaryHandler) (any, error) {
		id := ""
		if md, ok := metadata.FromIncomingContext(ctx); ok {
			if v := md.Get("x-request-id"); len(v) > 0 {
				id = v[0]
			}
		}
		if id == "" {
			id = uuid.New().String()
		}

		start := time.Now()
		resp, err := handler(ctx, req)
		log := logger.With("request_id", id, "method", info.FullMethod, "duration", time.Since(start))
		if err != nil {
			log.Warn("rpc failed", "code", status.Code(err).String(), "error", err)
		} else {
			log.Debug("rpc")
		}
		return resp, err
	}
}

// ForecastServiceName is the full gRPC service name; methods are invoked as
// "/" + ForecastServiceName + "/" + method.
const ForecastServiceName = "fishmarket.v1.Forecast"

func unaryHandler[Req any](call func(ForecastServer, context.Context, *Req) (any, error), method string) grpc.MethodHandler {
	return func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
		in := new(Req)
		if err := dec(in); err != nil {
			return nil, err
		}
		if interceptor == nil {
			return call(srv.(ForecastServer), ctx, in)
		}
		info := &grpc.UnaryServerInfo{Server: srv, FullMethod: "/" + ForecastServiceName + "/" + method}
		return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
			return call(srv.(ForecastServer), ctx, req.(*Req))
		})
	}
}

var forecastServiceDesc = grpc.ServiceDesc{
	ServiceName: ForecastServiceName,
	HandlerType: (*ForecastServer)(nil),
	Methods: []grpc.MethodDesc{
		{
			MethodName: "Predict",
			Handler: unaryHandler(func(s ForecastServer, ctx context.Context, r *HorizonRequest) (any, error) {
				return s.Predict(ctx, r)
			}, "Predict"),
		},
		{
			MethodName: "ListOrders",
			Handler: unaryHandler(func(s ForecastServer, ctx context.Context, r *HorizonRequest) (any, error) {
				return s.ListOrders(ctx, r)
			}, "ListOrders"),
		},
		{
			MethodName: "ConfirmOrder",
			Handler: unaryHandler(func(s ForecastServer, ctx context.Context, r *ConfirmOrderRequest) (any, error) {
				return s.ConfirmOrder(ctx, r)
			}, "ConfirmOrder"),
		},
		{
			MethodName: "ConfirmAll",
			Handler: unaryHandler(func(s ForecastServer, ctx context.Context, r *Empty) (any, error) {
				return s.ConfirmAll(ctx, r)
			}, "ConfirmAll"),
		},
		{
			MethodName: "ListPrices",
			Handler: unaryHandler(func(s ForecastServer, ctx context.Context, r *Empty) (any, error) {
				return s.ListPrices(ctx, r)
			}, "ListPrices"),
		},
		{
			MethodName: "SavePrices",
			Handler: unaryHandler(func(s ForecastServer, ctx context.Context, r *SavePricesRequest) (any, error) {
				return s.SavePrices(ctx, r)
			}, "SavePrices"),
		},
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "fishmarket/v1/forecast",
}
