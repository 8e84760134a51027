package domain

// ReorderAlert describes a cycle customer's expected next order. It is
// reference data and is not derived from order history.
type ReorderAlert struct {
	CustomerName    string      `json:"customer_name"`
	DaysRemaining   int         `json:"days_remaining"`
	AutoSendTime    string      `json:"auto_send_time"`
	UsualOrderItems []OrderItem `json:"usual_order_items"`
}

type NotificationType string

const (
	NotificationHoliday NotificationType = "holiday"
	NotificationReorder NotificationType = "reorder"
	NotificationSystem  NotificationType = "system"
)

type NotificationStatus string

const (
	NotificationPending NotificationStatus = "pending"
	NotificationSent    NotificationStatus = "sent"
)

// Notification is a read-only historical record of a customer message.
type Notification struct {
	ID            string             `json:"id"`
	CustomerName  string             `json:"customer_name"`
	Type          NotificationType   `json:"type"`
	ScheduledTime string             `json:"scheduled_time"`
	Details       string             `json:"details"`
	Status        NotificationStatus `json:"status"`
	Email         string             `json:"email"`
	ContentBody   string             `json:"content_body"`
	SendType      string             `json:"send_type"`
}
