package handler

import (
	"context"
	"log/slog"
	"net"
	"testing"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

func newGRPCClient(t *testing.T) *grpc.ClientConn {
	t.Helper()
	svc, _ := newTestServices(t)

	lis := bufconn.Listen(1 << 20)
	s := grpc.NewServer(grpc.UnaryInterceptor(UnaryLogger(slog.New(slog.DiscardHandler))))
	NewGRPCHandler(svc).Register(s)
	go s.Serve(lis)
	t.Cleanup(s.Stop)

	conn, err := grpc.NewClient("passthrough:///bufnet",
		grpc.WithContextDialer(func(ctx context.Context, _ string) (net.Conn, error) {
			return lis.DialContext(ctx)
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
		grpc.WithDefaultCallOptions(grpc.CallContentSubtype(CodecName)),
	)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func invoke(conn *grpc.ClientConn, method string, in, out any) error {
	return conn.Invoke(context.Background(), "/"+ForecastServiceName+"/"+method, in, out)
}

func TestGRPC_Predict(t *testing.T) {
	conn := newGRPCClient(t)

	var resp PredictionResponse
	if err := invoke(conn, "Predict", &HorizonRequest{Horizon: "7"}, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Horizon != "7" || len(resp.Rows) != len(domain.AllItems()) {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Rows[0].Item != domain.ItemSmallSquid || resp.Rows[0].Total != 129 {
		t.Errorf("unexpected first row: %+v", resp.Rows[0])
	}
}

func TestGRPC_InvalidHorizon(t *testing.T) {
	conn := newGRPCClient(t)

	var resp OrderSummaryResponse
	err := invoke(conn, "ListOrders", &HorizonRequest{Horizon: "-3"}, &resp)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}

	var prediction PredictionResponse
	err = invoke(conn, "Predict", &HorizonRequest{Horizon: "1000000000000000000"}, &prediction)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument for an oversized horizon, got %v", err)
	}
}

func TestGRPC_ListOrdersDefaultHorizon(t *testing.T) {
	conn := newGRPCClient(t)

	var resp OrderSummaryResponse
	if err := invoke(conn, "ListOrders", &HorizonRequest{}, &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.Horizon != "7" || len(resp.Orders) != 5 || resp.PendingCount != 1 {
		t.Errorf("unexpected summary: %s %d %d", resp.Horizon, len(resp.Orders), resp.PendingCount)
	}
}

func TestGRPC_ConfirmOrder(t *testing.T) {
	conn := newGRPCClient(t)

	var first ConfirmResponse
	if err := invoke(conn, "ConfirmOrder", &ConfirmOrderRequest{OrderID: "2025102405"}, &first); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !first.Confirmed {
		t.Error("expected transition on first confirm")
	}

	var second ConfirmResponse
	if err := invoke(conn, "ConfirmOrder", &ConfirmOrderRequest{OrderID: "2025102405"}, &second); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if second.Confirmed {
		t.Error("second confirm must be a no-op")
	}

	err := invoke(conn, "ConfirmOrder", &ConfirmOrderRequest{}, &second)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument for empty id, got %v", err)
	}

	var all ConfirmAllResponse
	if err := invoke(conn, "ConfirmAll", &Empty{}, &all); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if all.Confirmed != 2 {
		t.Errorf("expected 2 remaining confirmations, got %d", all.Confirmed)
	}
}

func TestGRPC_Prices(t *testing.T) {
	conn := newGRPCClient(t)

	var list PricesResponse
	if err := invoke(conn, "ListPrices", &Empty{}, &list); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(list.Prices) != len(domain.AllItems()) {
		t.Errorf("expected full catalog, got %d", len(list.Prices))
	}

	bad := &SavePricesRequest{Prices: []domain.PriceEdit{{Item: domain.ItemOctopus, MinPrice: 300, MaxPrice: 100}}}
	err := invoke(conn, "SavePrices", bad, &list)
	if status.Code(err) != codes.InvalidArgument {
		t.Errorf("expected InvalidArgument, got %v", err)
	}

	good := &SavePricesRequest{Prices: []domain.PriceEdit{{Item: domain.ItemOctopus, MinPrice: 100, MaxPrice: 300}}}
	var saved PricesResponse
	if err := invoke(conn, "SavePrices", good, &saved); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, p := range saved.Prices {
		if p.Item == domain.ItemOctopus && (p.MinPrice != 100 || p.MaxPrice != 300) {
			t.Errorf("edit not applied: %+v", p)
		}
	}
}
