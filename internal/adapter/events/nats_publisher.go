package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

const OrderApprovedSubject = "orders.approved"

type NATSPublisher struct {
	conn    *nats.Conn
	subject string
}

func NewNATSPublisher(url string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url, nats.Name("fishmarket"))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}
	return &NATSPublisher{conn: conn, subject: OrderApprovedSubject}, nil
}

func (p *NATSPublisher) PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("encode order event: %w", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, event.ID)
	return p.conn.PublishMsg(msg)
}

func (p *NATSPublisher) Close() error {
	if err := p.conn.Drain(); err != nil {
		p.conn.Close()
		return err
	}
	return nil
}
