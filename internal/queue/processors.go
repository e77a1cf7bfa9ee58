package queue

import (
	"context"

	"github.com/mikestefanello/backlite"
	"github.com/rs/zerolog/log"
)

func (q *notifierImpl) register() {
	notifyQueue := backlite.NewQueue[NotifyJob](q.notify())

	q.queues.Register(notifyQueue)
}

func (q *notifierImpl) notify() func(context.Context, NotifyJob) error {
	return func(ctx context.Context, task NotifyJob) error {
		err := q.db.CreateNotification(ctx, task.RecipientID, task.SenderID, task.Kind, task.PostID)
		if err != nil {
			log.Error().Err(err).
				Int64("recipient", task.RecipientID).
				Str("kind", task.Kind).
				Msg("failed to store notification")
		}
		return err
	}
}
