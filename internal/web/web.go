package web

import (
	"github.com/alexedwards/scs"
	"github.com/warblerhq/warbler/internal/config"
	"github.com/warblerhq/warbler/internal/service"
)

type Handler struct {
	Config         *config.Configuration
	service        service.Service
	SessionManager *scs.Manager
}

func New(config *config.Configuration, service service.Service, manager *scs.Manager) Handler {
	return Handler{
		Config:         config,
		service:        service,
		SessionManager: manager,
	}
}
