package notification

import (
	"context"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
)

// NotificationService fans leave lifecycle events out to the in-app feed, the
// SSE stream, and email. Delivery is best-effort: failures are logged and
// never surfaced to the lifecycle transition that triggered them.
type NotificationService interface {
	LeaveSubmitted(ctx context.Context, requester user.User, approvers []user.User, request leave.LeaveRequest)
	LeaveDecided(ctx context.Context, requester user.User, request leave.LeaveRequest)
	LeaveCancelled(ctx context.Context, requester user.User, approvers []user.User, request leave.LeaveRequest)

	ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]Notification, error)
	MarkRead(ctx context.Context, userID, id string) error
	MarkAllRead(ctx context.Context, userID string) error
}
