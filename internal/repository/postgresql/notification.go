package postgresql

import (
	"context"

	"github.com/codemyown/leave-mangement-system/internal/domain/notification"
	"github.com/codemyown/leave-mangement-system/internal/pkg/database"
	"github.com/google/uuid"
)

type notificationRepositoryImpl struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepositoryImpl{db: db}
}

// Create implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) Create(ctx context.Context, n notification.Notification) (notification.Notification, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		INSERT INTO notifications (id, user_id, type, title, message, is_read, created_at)
		VALUES ($1, $2, $3, $4, $5, FALSE, NOW())
		RETURNING created_at
	`
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	err := q.QueryRow(ctx, query, n.ID, n.UserID, n.Type, n.Title, n.Message).
		Scan(&n.CreatedAt)
	if err != nil {
		return notification.Notification{}, err
	}
	return n, nil
}

// ListByUser implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) ListByUser(ctx context.Context, userID string, unreadOnly bool) ([]notification.Notification, error) {
	q := GetQuerier(ctx, r.db)
	query := `
		SELECT id, user_id, type, title, message, is_read, created_at
		FROM notifications
		WHERE user_id = $1
	`
	if unreadOnly {
		query += ` AND is_read = FALSE`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := q.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []notification.Notification
	for rows.Next() {
		var n notification.Notification
		err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message, &n.IsRead, &n.CreatedAt)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// MarkRead implements notification.NotificationRepository. Scoped by owner so
// one user cannot acknowledge another's notifications.
func (r *notificationRepositoryImpl) MarkRead(ctx context.Context, userID, id string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE id = $1 AND user_id = $2
	`
	tag, err := q.Exec(ctx, query, id, userID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() != 1 {
		return notification.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead implements notification.NotificationRepository.
func (r *notificationRepositoryImpl) MarkAllRead(ctx context.Context, userID string) error {
	q := GetQuerier(ctx, r.db)
	query := `
		UPDATE notifications
		SET is_read = TRUE
		WHERE user_id = $1 AND is_read = FALSE
	`
	_, err := q.Exec(ctx, query, userID)
	return err
}
