package state

import (
	"github.com/warblerhq/warbler/internal/config"
	"github.com/warblerhq/warbler/internal/db"
)

type State struct {
	DB     db.DB
	Config config.Configuration
}
