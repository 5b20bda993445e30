package services

import (
	"context"
	"time"

	"PalmCare/models"
	"PalmCare/repositories"

	"github.com/rs/zerolog"
)

type NotificationService struct {
	repository *repositories.NotificationRepository
	log        zerolog.Logger
	now        func() time.Time
}

func NewNotificationService(repository *repositories.NotificationRepository, log zerolog.Logger) *NotificationService {
	return &NotificationService{repository: repository, log: log, now: time.Now}
}

// Notify appends a notification. Failures are logged; a workflow step never
// fails because its notification could not be stored.
func (s *NotificationService) Notify(ctx context.Context, kind, title, message string) *models.Notification {
	notification := &models.Notification{
		Title:     title,
		Message:   message,
		Kind:      kind,
		CreatedAt: s.now(),
	}
	if err := s.repository.Create(ctx, notification); err != nil {
		s.log.Warn().Err(err).Str("title", title).Msg("Failed to store notification")
		return nil
	}
	return notification
}

// List returns notifications newest first, optionally only the unread ones.
func (s *NotificationService) List(ctx context.Context, unreadOnly bool) []models.Notification {
	notifications := s.repository.List(ctx)
	if !unreadOnly {
		return notifications
	}
	unread := make([]models.Notification, 0, len(notifications))
	for _, n := range notifications {
		if !n.Read {
			unread = append(unread, n)
		}
	}
	return unread
}

func (s *NotificationService) MarkRead(ctx context.Context, id string) (*models.Notification, error) {
	return s.repository.SetRead(ctx, id, true)
}

func (s *NotificationService) MarkUnread(ctx context.Context, id string) (*models.Notification, error) {
	return s.repository.SetRead(ctx, id, false)
}

func (s *NotificationService) MarkAllRead(ctx context.Context) int {
	return s.repository.MarkAllRead(ctx)
}

func (s *NotificationService) UnreadCount(ctx context.Context) int {
	return s.repository.CountUnread(ctx)
}
