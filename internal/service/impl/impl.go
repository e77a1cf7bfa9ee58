package core

import (
	"codeberg.org/gruf/go-mutexes"
	"github.com/warblerhq/warbler/internal/config"
	"github.com/warblerhq/warbler/internal/db"
	"github.com/warblerhq/warbler/internal/domain"
	"github.com/warblerhq/warbler/internal/queue"
	"github.com/warblerhq/warbler/internal/service"
	"github.com/warblerhq/warbler/internal/state"
)

const (
	BcryptCost = 10

	DefaultPageSize = 20
	MaxPageSize     = 100
)

type AppService struct {
	Config   config.Configuration
	DB       db.DB
	notifier queue.Notifier
	// locks serializes toggle mutations per post, so a rapid double-toggle from the same
	// account cannot interleave its read-then-write halves.
	locks *mutexes.MutexMap
}

func New(state *state.State, notifier queue.Notifier) service.Service {
	locks := mutexes.MutexMap{}
	return &AppService{
		Config:   state.Config,
		DB:       state.DB,
		notifier: notifier,
		locks:    &locks,
	}
}

// clampPaging applies the listing defaults: page has a floor of one, limit defaults to
// twenty and is clamped to [1,100].
func clampPaging(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit == 0 {
		limit = DefaultPageSize
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	return page, limit
}

func pageMeta(total int64, page, limit int) domain.Page {
	totalPages := total / int64(limit)
	if total%int64(limit) != 0 {
		totalPages++
	}
	return domain.Page{
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}
}
