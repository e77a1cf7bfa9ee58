package queue

import (
	"context"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
	"github.com/warblerhq/warbler/internal/db"
)

// Notifier fans social events out to their recipients. Delivery is asynchronous; the
// caller only pays for the enqueue.
type Notifier interface {
	Notify(ctx context.Context, recipientID, senderID int64, kind string, postID int64) error
}

type notifierImpl struct {
	db     db.DB
	queues *backlite.Client
}

func New(ctx context.Context, db db.DB, blClient *backlite.Client) Notifier {
	q := &notifierImpl{
		db:     db,
		queues: blClient,
	}
	q.register()
	q.queues.Start(ctx)
	log.Info().Msg("started task queue")
	return q
}

func (q *notifierImpl) Notify(ctx context.Context, recipientID, senderID int64, kind string, postID int64) error {
	// Acting on your own content never notifies.
	if recipientID == senderID {
		return nil
	}

	log.Debug().Int64("recipient", recipientID).Str("kind", kind).Msg("enqueing notification task")
	task := NotifyJob{
		RecipientID: recipientID,
		SenderID:    senderID,
		Kind:        kind,
		PostID:      postID,
	}
	_, err := q.queues.Add(task).Save()
	return err
}
