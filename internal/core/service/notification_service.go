package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/heyheyboy777/SAD-project/internal/core/domain"
	"github.com/heyheyboy777/SAD-project/internal/port"
)

var ErrNotificationNotFound = errors.New("notification not found")

type NotificationService struct {
	notifications port.NotificationRepository
	alerts        port.AlertRepository
}

func NewNotificationService(notifications port.NotificationRepository, alerts port.AlertRepository) *NotificationService {
	return &NotificationService{notifications: notifications, alerts: alerts}
}

func (s *NotificationService) List(ctx context.Context) ([]domain.Notification, error) {
	list, err := s.notifications.ListNotifications(ctx)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	return list, nil
}

func (s *NotificationService) Get(ctx context.Context, id string) (domain.Notification, error) {
	list, err := s.List(ctx)
	if err != nil {
		return domain.Notification{}, err
	}
	for _, n := range list {
		if n.ID == id {
			return n, nil
		}
	}
	return domain.Notification{}, ErrNotificationNotFound
}

func (s *NotificationService) ReorderAlerts(ctx context.Context) ([]domain.ReorderAlert, error) {
	alerts, err := s.alerts.ListReorderAlerts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list reorder alerts: %w", err)
	}
	return alerts, nil
}
