package handlers

import (
	"context"

	"github.com/o6b7/travelbond/internal/auth"
	"github.com/o6b7/travelbond/internal/dashboard"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
)

// Searcher is the full-text index the event and group listings query when a
// search term is given. *search.Client implements it.
type Searcher interface {
	SearchEvents(ctx context.Context, query string, limit int) ([]string, error)
	SearchGroups(ctx context.Context, query string, limit int) ([]string, error)
	IndexEvent(ctx context.Context, event *models.Event) error
	IndexGroup(ctx context.Context, group *models.Group) error
	DeleteEvent(ctx context.Context, eventID string) error
	DeleteGroup(ctx context.Context, groupID string) error
}

// Handlers contains all HTTP handlers for the API
type Handlers struct {
	repos     *repository.Repositories
	auth      *auth.Service
	dashboard *dashboard.Service
	search    Searcher
	defaults  util.DisclosureDefaults
	checks    []healthCheck
}

// NewHandlers creates a new handlers instance
func NewHandlers(repos *repository.Repositories, authService *auth.Service, dashboardService *dashboard.Service, defaults util.DisclosureDefaults) *Handlers {
	return &Handlers{
		repos:     repos,
		auth:      authService,
		dashboard: dashboardService,
		defaults:  defaults,
	}
}

// SetSearchClient sets the search index. Without one, searches run against the database.
func (h *Handlers) SetSearchClient(searcher Searcher) {
	h.search = searcher
}
