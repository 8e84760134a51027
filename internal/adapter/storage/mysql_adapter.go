package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS orders (
		id              VARCHAR(64) PRIMARY KEY,
		position        INT NOT NULL,
		customer_name   VARCHAR(255) NOT NULL,
		status          VARCHAR(16) NOT NULL,
		delivery_date   DATE NOT NULL,
		is_new_customer BOOLEAN NOT NULL DEFAULT FALSE,
		address         VARCHAR(255) NOT NULL DEFAULT '',
		submission_time VARCHAR(32) NOT NULL DEFAULT '',
		updated_at      TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`,
	`CREATE TABLE IF NOT EXISTS order_items (
		order_id VARCHAR(64) NOT NULL,
		position INT NOT NULL,
		item     VARCHAR(32) NOT NULL,
		quantity INT NOT NULL,
		PRIMARY KEY (order_id, position)
	)`,
	`CREATE TABLE IF NOT EXISTS prices (
		item      VARCHAR(32) PRIMARY KEY,
		position  INT NOT NULL,
		min_price INT NOT NULL,
		max_price INT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS price_history (
		item     VARCHAR(32) NOT NULL,
		position INT NOT NULL,
		label    VARCHAR(32) NOT NULL,
		price    INT NOT NULL,
		PRIMARY KEY (item, position)
	)`,
	`CREATE TABLE IF NOT EXISTS reorder_alerts (
		position       INT PRIMARY KEY,
		customer_name  VARCHAR(255) NOT NULL,
		days_remaining INT NOT NULL,
		auto_send_time VARCHAR(32) NOT NULL DEFAULT ''
	)`,
	`CREATE TABLE IF NOT EXISTS alert_items (
		alert_position INT NOT NULL,
		position       INT NOT NULL,
		item           VARCHAR(32) NOT NULL,
		quantity       INT NOT NULL,
		PRIMARY KEY (alert_position, position)
	)`,
	`CREATE TABLE IF NOT EXISTS notifications (
		id             VARCHAR(64) PRIMARY KEY,
		position       INT NOT NULL,
		customer_name  VARCHAR(255) NOT NULL,
		type           VARCHAR(16) NOT NULL,
		scheduled_time VARCHAR(32) NOT NULL,
		details        VARCHAR(255) NOT NULL DEFAULT '',
		status         VARCHAR(16) NOT NULL,
		email          VARCHAR(255) NOT NULL DEFAULT '',
		content_body   TEXT NOT NULL,
		send_type      VARCHAR(64) NOT NULL DEFAULT ''
	)`,
}

type MySQLAdapter struct {
	db *sql.DB
}

func NewMySQLAdapter(db *sql.DB) *MySQLAdapter {
	return &MySQLAdapter{db: db}
}

func (m *MySQLAdapter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range schema {
		if _, err := m.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// Seed loads the feed when the orders table is empty.
func (m *MySQLAdapter) Seed(ctx context.Context, feed domain.Feed) error {
	var count int
	if err := m.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM orders`).Scan(&count); err != nil {
		return fmt.Errorf("count orders: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for i, o := range feed.Orders {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO orders (id, position, customer_name, status, delivery_date, is_new_customer, address, submission_time)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			o.ID, i, o.CustomerName, o.Status, o.DeliveryDate, o.IsNewCustomer, o.Address, o.SubmissionTime,
		)
		if err != nil {
			return fmt.Errorf("insert order %s: %w", o.ID, err)
		}
		for j, it := range o.Items {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO order_items (order_id, position, item, quantity) VALUES (?, ?, ?, ?)`,
				o.ID, j, it.Item, it.Quantity,
			)
			if err != nil {
				return fmt.Errorf("insert order item %s/%d: %w", o.ID, j, err)
			}
		}
	}

	if err := insertPrices(ctx, tx, feed.Prices); err != nil {
		return err
	}

	for i, a := range feed.Alerts {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO reorder_alerts (position, customer_name, days_remaining, auto_send_time) VALUES (?, ?, ?, ?)`,
			i, a.CustomerName, a.DaysRemaining, a.AutoSendTime,
		)
		if err != nil {
			return fmt.Errorf("insert reorder alert %d: %w", i, err)
		}
		for j, it := range a.UsualOrderItems {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO alert_items (alert_position, position, item, quantity) VALUES (?, ?, ?, ?)`,
				i, j, it.Item, it.Quantity,
			)
			if err != nil {
				return fmt.Errorf("insert alert item %d/%d: %w", i, j, err)
			}
		}
	}

	for i, n := range feed.Notifications {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO notifications (id, position, customer_name, type, scheduled_time, details, status, email, content_body, send_type)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			n.ID, i, n.CustomerName, n.Type, n.ScheduledTime, n.Details, n.Status, n.Email, n.ContentBody, n.SendType,
		)
		if err != nil {
			return fmt.Errorf("insert notification %s: %w", n.ID, err)
		}
	}

	return tx.Commit()
}

func (m *MySQLAdapter) ListOrders(ctx context.Context) ([]domain.Order, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, customer_name, status, delivery_date, is_new_customer, address, submission_time
		FROM orders ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}
	defer rows.Close()

	var orders []domain.Order
	index := make(map[string]int)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(&o.ID, &o.CustomerName, &o.Status, &o.DeliveryDate, &o.IsNewCustomer, &o.Address, &o.SubmissionTime); err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		o.DeliveryDate = domain.DateOf(o.DeliveryDate)
		index[o.ID] = len(orders)
		orders = append(orders, o)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate orders: %w", err)
	}

	itemRows, err := m.db.QueryContext(ctx, `
		SELECT order_id, item, quantity FROM order_items ORDER BY order_id, position`)
	if err != nil {
		return nil, fmt.Errorf("query order items: %w", err)
	}
	defer itemRows.Close()

	for itemRows.Next() {
		var orderID string
		var it domain.OrderItem
		if err := itemRows.Scan(&orderID, &it.Item, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		if i, ok := index[orderID]; ok {
			orders[i].Items = append(orders[i].Items, it)
		}
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order items: %w", err)
	}

	return orders, nil
}

func (m *MySQLAdapter) GetOrder(ctx context.Context, id string) (domain.Order, error) {
	var o domain.Order
	err := m.db.QueryRowContext(ctx, `
		SELECT id, customer_name, status, delivery_date, is_new_customer, address, submission_time
		FROM orders WHERE id = ?`, id,
	).Scan(&o.ID, &o.CustomerName, &o.Status, &o.DeliveryDate, &o.IsNewCustomer, &o.Address, &o.SubmissionTime)

	if errors.Is(err, sql.ErrNoRows) {
		return domain.Order{}, domain.ErrOrderNotFound
	}
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order: %w", err)
	}
	o.DeliveryDate = domain.DateOf(o.DeliveryDate)

	rows, err := m.db.QueryContext(ctx, `
		SELECT item, quantity FROM order_items WHERE order_id = ? ORDER BY position`, id)
	if err != nil {
		return domain.Order{}, fmt.Errorf("query order items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var it domain.OrderItem
		if err := rows.Scan(&it.Item, &it.Quantity); err != nil {
			return domain.Order{}, fmt.Errorf("scan order item: %w", err)
		}
		o.Items = append(o.Items, it)
	}
	return o, rows.Err()
}

// SwapStatus is a conditional update, so concurrent confirms of one order
// produce exactly one transition.
func (m *MySQLAdapter) SwapStatus(ctx context.Context, id string, from, to domain.OrderStatus) (bool, error) {
	result, err := m.db.ExecContext(ctx, `
		UPDATE orders
		SET status = ?, updated_at = NOW()
		WHERE id = ? AND status = ?`,
		to, id, from,
	)
	if err != nil {
		return false, fmt.Errorf("update order status: %w", err)
	}

	rows, _ := result.RowsAffected()
	return rows == 1, nil
}

func (m *MySQLAdapter) ListPrices(ctx context.Context) ([]domain.PriceData, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT item, min_price, max_price FROM prices ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query prices: %w", err)
	}
	defer rows.Close()

	var prices []domain.PriceData
	index := make(map[domain.ItemType]int)
	for rows.Next() {
		var p domain.PriceData
		if err := rows.Scan(&p.Item, &p.MinPrice, &p.MaxPrice); err != nil {
			return nil, fmt.Errorf("scan price: %w", err)
		}
		index[p.Item] = len(prices)
		prices = append(prices, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prices: %w", err)
	}

	hist, err := m.db.QueryContext(ctx, `
		SELECT item, label, price FROM price_history ORDER BY item, position`)
	if err != nil {
		return nil, fmt.Errorf("query price history: %w", err)
	}
	defer hist.Close()

	for hist.Next() {
		var item domain.ItemType
		var pt domain.PricePoint
		if err := hist.Scan(&item, &pt.Label, &pt.Price); err != nil {
			return nil, fmt.Errorf("scan price history: %w", err)
		}
		if i, ok := index[item]; ok {
			prices[i].History = append(prices[i].History, pt)
		}
	}
	if err := hist.Err(); err != nil {
		return nil, fmt.Errorf("iterate price history: %w", err)
	}

	return prices, nil
}

// ReplacePrices rewrites the catalog inside one transaction.
func (m *MySQLAdapter) ReplacePrices(ctx context.Context, prices []domain.PriceData) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM price_history`); err != nil {
		return fmt.Errorf("clear price history: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM prices`); err != nil {
		return fmt.Errorf("clear prices: %w", err)
	}
	if err := insertPrices(ctx, tx, prices); err != nil {
		return err
	}

	return tx.Commit()
}

func insertPrices(ctx context.Context, tx *sql.Tx, prices []domain.PriceData) error {
	for i, p := range prices {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO prices (item, position, min_price, max_price) VALUES (?, ?, ?, ?)`,
			p.Item, i, p.MinPrice, p.MaxPrice,
		)
		if err != nil {
			return fmt.Errorf("insert price %s: %w", p.Item, err)
		}
		for j, pt := range p.History {
			_, err := tx.ExecContext(ctx, `
				INSERT INTO price_history (item, position, label, price) VALUES (?, ?, ?, ?)`,
				p.Item, j, pt.Label, pt.Price,
			)
			if err != nil {
				return fmt.Errorf("insert price history %s/%d: %w", p.Item, j, err)
			}
		}
	}
	return nil
}

func (m *MySQLAdapter) ListReorderAlerts(ctx context.Context) ([]domain.ReorderAlert, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT position, customer_name, days_remaining, auto_send_time FROM reorder_alerts ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query reorder alerts: %w", err)
	}
	defer rows.Close()

	var alerts []domain.ReorderAlert
	index := make(map[int]int)
	for rows.Next() {
		var pos int
		var a domain.ReorderAlert
		if err := rows.Scan(&pos, &a.CustomerName, &a.DaysRemaining, &a.AutoSendTime); err != nil {
			return nil, fmt.Errorf("scan reorder alert: %w", err)
		}
		index[pos] = len(alerts)
		alerts = append(alerts, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reorder alerts: %w", err)
	}

	items, err := m.db.QueryContext(ctx, `
		SELECT alert_position, item, quantity FROM alert_items ORDER BY alert_position, position`)
	if err != nil {
		return nil, fmt.Errorf("query alert items: %w", err)
	}
	defer items.Close()

	for items.Next() {
		var pos int
		var it domain.OrderItem
		if err := items.Scan(&pos, &it.Item, &it.Quantity); err != nil {
			return nil, fmt.Errorf("scan alert item: %w", err)
		}
		if i, ok := index[pos]; ok {
			alerts[i].UsualOrderItems = append(alerts[i].UsualOrderItems, it)
		}
	}
	if err := items.Err(); err != nil {
		return nil, fmt.Errorf("iterate alert items: %w", err)
	}

	return alerts, nil
}

func (m *MySQLAdapter) ListNotifications(ctx context.Context) ([]domain.Notification, error) {
	rows, err := m.db.QueryContext(ctx, `
		SELECT id, customer_name, type, scheduled_time, details, status, email, content_body, send_type
		FROM notifications ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query notifications: %w", err)
	}
	defer rows.Close()

	var list []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.CustomerName, &n.Type, &n.ScheduledTime, &n.Details, &n.Status, &n.Email, &n.ContentBody, &n.SendType); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, n)
	}
	return list, rows.Err()
}
