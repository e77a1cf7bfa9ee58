package core

import (
	"context"

	"github.com/warblerhq/warbler/internal/domain"
)

func (s *AppService) GetNotifications(ctx context.Context, actorID int64) ([]domain.Notification, error) {
	return s.DB.GetNotifications(ctx, actorID)
}

func (s *AppService) MarkNotificationsRead(ctx context.Context, actorID int64) error {
	return s.DB.MarkAllRead(ctx, actorID)
}
