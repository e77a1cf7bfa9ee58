package core

import (
	"context"
	"database/sql"
	"testing"

	"github.com/warblerhq/warbler/internal/config"
	"github.com/warblerhq/warbler/internal/db"
	dbimpl "github.com/warblerhq/warbler/internal/db/impl"
	"github.com/warblerhq/warbler/internal/initialization"
	"github.com/warblerhq/warbler/internal/mocks"
	"github.com/warblerhq/warbler/internal/service"
	"github.com/warblerhq/warbler/internal/state"
	"go.uber.org/mock/gomock"
)

var (
	testDB  db.DB
	rawDB   *sql.DB
	testCfg = config.Configuration{
		ReservedUsernames: []string{"admin", "support", "api", "root"},
	}
	ctx = context.Background()
)

func TestMain(m *testing.M) {
	d, err := initialization.OpenDB("file:servicetest?mode=memory&cache=shared")
	if err != nil {
		return
	}
	d.SetMaxOpenConns(1)

	err = initialization.SetupDB(d, "../../../migrations", "servicetest")
	if err != nil {
		return
	}
	rawDB = d
	testDB = dbimpl.New(testCfg, d)
	m.Run()
}

// newService builds a service over the shared test database with a notifier mock that
// tolerates any enqueue. Tests asserting notification behavior build their own mock.
func newService(t *testing.T) service.Service {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := mocks.NewMockNotifier(ctrl)
	notifier.EXPECT().
		Notify(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil).AnyTimes()
	return newServiceWith(testCfg, notifier)
}

func newServiceWith(cfg config.Configuration, notifier *mocks.MockNotifier) service.Service {
	return New(&state.State{DB: testDB, Config: cfg}, notifier)
}

func register(t *testing.T, s service.Service, username string) int64 {
	t.Helper()
	u, err := s.Register(ctx, "Test "+username, username, username+"@example.com", "password123")
	if err != nil {
		t.Fatalf("unexpected error registering %s: %s", username, err)
	}
	return u.ID
}

func TestClampPaging(t *testing.T) {
	cases := []struct {
		page, limit         int
		wantPage, wantLimit int
	}{
		{0, 0, 1, 20},
		{1, 500, 1, 100},
		{0, 500, 1, 100},
		{-3, -1, 1, 1},
		{2, 50, 2, 50},
	}

	for _, c := range cases {
		page, limit := clampPaging(c.page, c.limit)
		if page != c.wantPage || limit != c.wantLimit {
			t.Errorf("clampPaging(%d, %d) = (%d, %d), expected (%d, %d)",
				c.page, c.limit, page, limit, c.wantPage, c.wantLimit)
		}
	}
}
