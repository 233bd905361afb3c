package notification

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/codemyown/leave-mangement-system/internal/domain/leave"
	"github.com/codemyown/leave-mangement-system/internal/domain/notification"
	"github.com/codemyown/leave-mangement-system/internal/domain/user"
	"github.com/codemyown/leave-mangement-system/internal/pkg/email"
	"github.com/codemyown/leave-mangement-system/internal/pkg/sse"
)

type NotificationServiceImpl struct {
	notification.NotificationRepository
	emailService email.EmailService
	hub          *sse.Hub
}

func NewNotificationService(
	repo notification.NotificationRepository,
	emailService email.EmailService,
	hub *sse.Hub,
) notification.NotificationService {
	return &NotificationServiceImpl{
		NotificationRepository: repo,
		emailService:           emailService,
		hub:                    hub,
	}
}

// LeaveSubmitted implements notification.NotificationService.
func (n *NotificationServiceImpl) LeaveSubmitted(ctx context.Context, requester user.User, approvers []user.User, request leave.LeaveRequest) {
	title := "New leave request"
	message := fmt.Sprintf("%s requested %s from %s to %s (%d working days)",
		requester.Username, leaveTypeName(request),
		leave.FormatDate(request.StartDate), leave.FormatDate(request.EndDate),
		request.WorkingDays,
	)

	emails := make([]string, 0, len(approvers))
	for _, a := range approvers {
		n.deliver(ctx, a.ID, notification.TypeLeaveSubmitted, title, message)
		emails = append(emails, a.Email)
	}

	err := n.emailService.SendLeaveSubmitted(
		emails, requester.Username, leaveTypeName(request),
		leave.FormatDate(request.StartDate), leave.FormatDate(request.EndDate),
		request.WorkingDays,
	)
	if err != nil {
		slog.Error("Failed to email approvers about submitted leave", "request_id", request.ID, "error", err)
	}
}

// LeaveDecided implements notification.NotificationService.
func (n *NotificationServiceImpl) LeaveDecided(ctx context.Context, requester user.User, request leave.LeaveRequest) {
	eventType := notification.TypeLeaveApproved
	title := "Leave request approved"
	if request.Status == leave.LeaveRequestStatusRejected {
		eventType = notification.TypeLeaveRejected
		title = "Leave request rejected"
	}

	message := fmt.Sprintf("Your %s request from %s to %s was %s",
		leaveTypeName(request),
		leave.FormatDate(request.StartDate), leave.FormatDate(request.EndDate),
		request.Status,
	)

	n.deliver(ctx, requester.ID, eventType, title, message)

	comments := ""
	if request.Comments != nil {
		comments = *request.Comments
	}
	err := n.emailService.SendLeaveDecision(
		requester.Email, leaveTypeName(request),
		leave.FormatDate(request.StartDate), leave.FormatDate(request.EndDate),
		string(request.Status), comments,
	)
	if err != nil {
		slog.Error("Failed to email requester about leave decision", "request_id", request.ID, "error", err)
	}
}

// LeaveCancelled implements notification.NotificationService.
func (n *NotificationServiceImpl) LeaveCancelled(ctx context.Context, requester user.User, approvers []user.User, request leave.LeaveRequest) {
	title := "Leave request cancelled"
	message := fmt.Sprintf("%s cancelled their %s request from %s to %s",
		requester.Username, leaveTypeName(request),
		leave.FormatDate(request.StartDate), leave.FormatDate(request.EndDate),
	)

	emails := make([]string, 0, len(approvers))
	for _, a := range approvers {
		n.deliver(ctx, a.ID, notification.TypeLeaveCancelled, title, message)
		emails = append(emails, a.Email)
	}

	err := n.emailService.SendLeaveCancelled(
		emails, requester.Username, leaveTypeName(request),
		leave.FormatDate(request.StartDate), leave.FormatDate(request.EndDate),
	)
	if err != nil {
		slog.Error("Failed to email approvers about cancelled leave", "request_id", request.ID, "error", err)
	}
}

// deliver persists one feed entry and pushes it on the user's SSE stream.
func (n *NotificationServiceImpl) deliver(ctx context.Context, userID string, eventType notification.NotificationType, title, message string) {
	created, err := n.NotificationRepository.Create(ctx, notification.Notification{
		UserID:  userID,
		Type:    eventType,
		Title:   title,
		Message: message,
	})
	if err != nil {
		slog.Error("Failed to persist notification", "user_id", userID, "type", eventType, "error", err)
		return
	}

	n.hub.Publish(userID, sse.Event{
		UserID: userID,
		Event:  "notification",
		Data:   created,
	})
}

// ListForUser implements notification.NotificationService.
func (n *NotificationServiceImpl) ListForUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	notifications, err := n.NotificationRepository.ListByUser(ctx, userID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, nil
}

// MarkRead implements notification.NotificationService.
func (n *NotificationServiceImpl) MarkRead(ctx context.Context, userID, id string) error {
	return n.NotificationRepository.MarkRead(ctx, userID, id)
}

// MarkAllRead implements notification.NotificationService.
func (n *NotificationServiceImpl) MarkAllRead(ctx context.Context, userID string) error {
	return n.NotificationRepository.MarkAllRead(ctx, userID)
}

func leaveTypeName(request leave.LeaveRequest) string {
	if request.LeaveTypeName != nil {
		return *request.LeaveTypeName
	}
	return "leave"
}
