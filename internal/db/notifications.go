package db

import (
	"context"

	"github.com/warblerhq/warbler/internal/domain"
)

type Notifications interface {
	// CreateNotification records a social event for the recipient. postID is zero for
	// follow notifications.
	CreateNotification(ctx context.Context, recipientID, senderID int64, kind string, postID int64) error
	// GetNotifications returns the recipient's notifications, newest first, with the
	// sender summary and the referenced post's text when it still exists.
	GetNotifications(ctx context.Context, recipientID int64) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, recipientID int64) error
}
