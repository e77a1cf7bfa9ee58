package queue

import (
	"context"
	"testing"
	"time"

	"github.com/mikestefanello/backlite"
	"github.com/warblerhq/warbler/internal/config"
	"github.com/warblerhq/warbler/internal/db"
	dbimpl "github.com/warblerhq/warbler/internal/db/impl"
	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/initialization"
)

var (
	testDB   db.DB
	notifier Notifier
	ctx      = context.Background()
)

func TestMain(m *testing.M) {
	d, err := initialization.OpenDB("file:queuetest?mode=memory&cache=shared")
	if err != nil {
		return
	}
	d.SetMaxOpenConns(1)
	if err = initialization.SetupDB(d, "../../migrations", "queuetest"); err != nil {
		return
	}
	testDB = dbimpl.New(config.Configuration{}, d)

	// The task queue keeps its own database, as in production.
	qd, err := initialization.OpenDB("file:queuetasks?mode=memory&cache=shared")
	if err != nil {
		return
	}
	qd.SetMaxOpenConns(1)
	client, err := backlite.NewClient(backlite.ClientConfig{
		DB:              qd,
		NumWorkers:      1,
		ReleaseAfter:    time.Minute,
		CleanupInterval: time.Hour,
	})
	if err != nil {
		return
	}
	if err = client.Install(); err != nil {
		return
	}

	notifier = New(context.Background(), testDB, client)
	m.Run()
}

func mustCreateUser(t *testing.T, username string) int64 {
	t.Helper()
	id, err := testDB.CreateUser(ctx, "Test "+username, username, username+"@example.com", "hash")
	if err != nil {
		t.Fatalf("unexpected error creating %s: %s", username, err)
	}
	return id
}

func waitForNotifications(t *testing.T, recipientID int64, want int) []domain.Notification {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		ns, err := testDB.GetNotifications(ctx, recipientID)
		if err != nil {
			t.Fatalf("unexpected error: %s", err)
		}
		if len(ns) >= want {
			return ns
		}
		time.Sleep(20 * time.Millisecond)
	}
	t.Fatalf("gave up waiting for %d notifications for user %d", want, recipientID)
	return nil
}

// A self-action never enqueues; a cross-user action is stored by the worker. The self
// enqueue happens first, so once the later cross-user row has landed, a stored self row
// would be visible too.
func TestNotifySkipsSelfAndStoresCrossUser(t *testing.T) {
	author := mustCreateUser(t, "queue_author")
	fan := mustCreateUser(t, "queue_fan")

	p, err := testDB.CreatePost(ctx, author, "queued up", "", 0, 0)
	if err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	if err = notifier.Notify(ctx, author, author, domain.NotifyLike, p.ID); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}
	if err = notifier.Notify(ctx, author, fan, domain.NotifyLike, p.ID); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	ns := waitForNotifications(t, author, 1)
	if len(ns) != 1 {
		t.Fatalf("expected exactly 1 notification, got %d", len(ns))
	}
	n := ns[0]
	if n.Sender.ID != fan || n.Kind != domain.NotifyLike || n.PostID != p.ID {
		t.Errorf("unexpected notification %+v", n)
	}
	if n.PostText != "queued up" {
		t.Errorf("expected post text on the stored row, got %q", n.PostText)
	}
}

func TestNotifyFollowCarriesNoPost(t *testing.T) {
	follower := mustCreateUser(t, "queue_follower")
	followee := mustCreateUser(t, "queue_followee")

	if err := notifier.Notify(ctx, followee, follower, domain.NotifyFollow, 0); err != nil {
		t.Fatalf("unexpected error: %s", err)
	}

	ns := waitForNotifications(t, followee, 1)
	if ns[0].Kind != domain.NotifyFollow || ns[0].PostID != 0 || ns[0].PostText != "" {
		t.Errorf("unexpected follow notification %+v", ns[0])
	}
}
