package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/danyol08/PMS-Monitoring/internal/model"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Append(ctx context.Context, n *model.Notification) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	n.CreatedAt = time.Now().UTC()
	return r.db.WithContext(ctx).Exec(`
		INSERT INTO notifications (id, title, message, notification_type, contract_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		n.ID, n.Title, n.Message, n.NotificationType, n.ContractID, n.IsRead, n.CreatedAt,
	).Error
}

func (r *NotificationRepository) ListUnread(ctx context.Context, limit int) ([]model.Notification, error) {
	var rows []model.Notification
	err := r.db.WithContext(ctx).Raw(`
		SELECT id, title, message, notification_type, contract_id, is_read, created_at
		FROM notifications WHERE is_read = FALSE
		ORDER BY created_at DESC LIMIT ?`, limit,
	).Scan(&rows).Error
	return rows, err
}

func (r *NotificationRepository) MarkRead(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Exec(
		`UPDATE notifications SET is_read = TRUE WHERE id = ?`, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// HasRecent reports whether a notification of the given type already
// exists for the contract within the window. Keeps the daily check from
// re-notifying the same due contract every run.
func (r *NotificationRepository) HasRecent(ctx context.Context, contractID uuid.UUID, notificationType string, since time.Time) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM notifications
		WHERE contract_id = ? AND notification_type = ? AND created_at >= ?`,
		contractID, notificationType, since,
	).Scan(&count).Error
	return count > 0, err
}
