package notification

import "time"

type NotificationType string

const (
	TypeLeaveSubmitted NotificationType = "leave_submitted"
	TypeLeaveApproved  NotificationType = "leave_approved"
	TypeLeaveRejected  NotificationType = "leave_rejected"
	TypeLeaveCancelled NotificationType = "leave_cancelled"
)

type Notification struct {
	ID        string           `json:"id"`
	UserID    string           `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	CreatedAt time.Time        `json:"created_at"`
}
