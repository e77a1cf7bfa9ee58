package queue

import (
	"time"

	"github.com/mikestefanello/backlite"
)

const NotifyQueue = "Notify"

type NotifyJob struct {
	RecipientID int64
	SenderID    int64
	Kind        string
	PostID      int64
}

func (j NotifyJob) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        NotifyQueue,
		MaxAttempts: 5,
		Backoff:     5 * time.Second,
		Timeout:     10 * time.Second,
		Retention: &backlite.Retention{
			Duration:   12 * time.Hour,
			OnlyFailed: false,
			Data: &backlite.RetainData{
				OnlyFailed: true,
			},
		},
	}
}
