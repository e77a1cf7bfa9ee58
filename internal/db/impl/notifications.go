package impl

import (
	"context"

	"github.com/warblerhq/warbler/internal/domain"
)

func (d *dbImpl) CreateNotification(ctx context.Context, recipientID, senderID int64, kind string, postID int64) error {
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO notifications(recipient_id, sender_id, kind, post_id) VALUES (?, ?, ?, ?)`,
		recipientID, senderID, kind, nullableID(postID))
	return d.HandleError(err)
}

func (d *dbImpl) GetNotifications(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	rows, err := d.db.QueryContext(ctx,
		`SELECT n.id, n.recipient_id, n.kind, COALESCE(n.post_id, 0), n.read, n.created_at,
			u.id, u.username, u.name, u.avatar,
			COALESCE(p.content, '')
		FROM notifications n
		JOIN users u ON u.id = n.sender_id
		LEFT JOIN posts p ON p.id = n.post_id
		WHERE n.recipient_id = ?
		ORDER BY n.created_at DESC, n.id DESC`,
		recipientID)
	if err != nil {
		return nil, d.HandleError(err)
	}
	defer rows.Close()

	notifications := []domain.Notification{}
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.Recipient, &n.Kind, &n.PostID, &n.Read, &n.CreatedAt,
			&n.Sender.ID, &n.Sender.Username, &n.Sender.Name, &n.Sender.Avatar,
			&n.PostText); err != nil {
			return nil, d.HandleError(err)
		}
		notifications = append(notifications, n)
	}
	return notifications, d.HandleError(rows.Err())
}

func (d *dbImpl) MarkAllRead(ctx context.Context, recipientID int64) error {
	_, err := d.db.ExecContext(ctx,
		`UPDATE notifications SET read = TRUE WHERE recipient_id = ? AND read = FALSE`,
		recipientID)
	return d.HandleError(err)
}
