package repositories

import (
	"context"

	"PalmCare/models"

	"github.com/pkg/errors"
)

type NotificationRepository struct {
	baseRepository
}

func (r *NotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	notification.ID = r.db.NextID("N", 4)
	if err := r.db.Notifications.Insert(notification.ID, *notification); err != nil {
		return errors.Wrap(err, "failed to create notification")
	}
	r.invalidate(ctx)
	return nil
}

// SetRead marks one notification read or unread.
func (r *NotificationRepository) SetRead(ctx context.Context, id string, read bool) (*models.Notification, error) {
	notification, err := r.db.Notifications.Update(id, func(n *models.Notification) error {
		n.Read = read
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.invalidate(ctx)
	return &notification, nil
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context) int {
	changed := r.db.Notifications.UpdateWhere(
		func(n models.Notification) bool { return !n.Read },
		func(n *models.Notification) { n.Read = true },
	)
	if changed > 0 {
		r.invalidate(ctx)
	}
	return changed
}

// List returns notifications newest first.
func (r *NotificationRepository) List(ctx context.Context) []models.Notification {
	notifications := r.db.Notifications.List()
	for i, j := 0, len(notifications)-1; i < j; i, j = i+1, j-1 {
		notifications[i], notifications[j] = notifications[j], notifications[i]
	}
	return notifications
}

func (r *NotificationRepository) CountUnread(ctx context.Context) int {
	return len(r.db.Notifications.Find(func(n models.Notification) bool { return !n.Read }))
}
