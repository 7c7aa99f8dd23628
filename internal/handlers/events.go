package handlers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/search"
	"github.com/o6b7/travelbond/internal/util"
	"go.uber.org/zap"
)

type eventRequest struct {
	Title       string     `json:"title" binding:"required,min=1,max=200"`
	Description string     `json:"description" binding:"max=5000"`
	Location    string     `json:"location" binding:"max=200"`
	Category    string     `json:"category" binding:"max=50"`
	Tags        []string   `json:"tags"`
	StartsAt    time.Time  `json:"starts_at" binding:"required"`
	EndsAt      *time.Time `json:"ends_at"`
	Capacity    int        `json:"capacity" binding:"min=0"`
}

func (r eventRequest) apply(e *models.Event) {
	e.Title = strings.TrimSpace(r.Title)
	e.Description = r.Description
	e.Location = r.Location
	e.Category = strings.ToLower(strings.TrimSpace(r.Category))
	e.Tags = models.StringArray(normalizeTags(r.Tags))
	e.StartsAt = r.StartsAt
	e.EndsAt = r.EndsAt
	e.Capacity = r.Capacity
}

func (r eventRequest) validate(c *gin.Context) bool {
	if r.EndsAt != nil && r.EndsAt.Before(r.StartsAt) {
		util.RespondValidationError(c, "ends_at", "ends_at must not be before starts_at")
		return false
	}
	return true
}

// ListEvents lists events
// GET /api/v1/events?q=&category=&tag=&organizer=&upcoming=&sort=soonest|newest|popular
func (h *Handlers) ListEvents(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	filter := repository.EventFilter{
		Query:        strings.TrimSpace(c.Query("q")),
		Category:     c.Query("category"),
		Tag:          c.Query("tag"),
		OrganizerID:  c.Query("organizer"),
		UpcomingOnly: util.ParseBool(c.Query("upcoming")),
		Sort:         c.DefaultQuery("sort", repository.EventSortSoonest),
	}

	if filter.Query != "" && h.search != nil {
		ids, err := h.search.SearchEvents(c.Request.Context(), filter.Query, repository.MaxListSize)
		if err == nil {
			filter.IDs = ids
			filter.Query = ""
		} else {
			logger.Log.Warn("Event search failed, falling back to database", zap.String("query", filter.Query), zap.Error(err))
		}
	}

	events, err := h.repos.Events.List(c.Request.Context(), filter)
	if filter.Query != "" {
		metrics.RecordSearch(search.IndexEvents, "database", err)
	}
	if err != nil {
		respondRepositoryError(c, "events", err)
		return
	}

	respondList(c, "events", params, events)
}

// CreateEvent creates an event organized by the caller
// POST /api/v1/events
func (h *Handlers) CreateEvent(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if !req.validate(c) {
		return
	}

	event := &models.Event{OrganizerID: userID}
	req.apply(event)
	if err := h.repos.Events.Create(c.Request.Context(), event); err != nil {
		respondRepositoryError(c, "event", err)
		return
	}

	if h.search != nil {
		logSearchSync("index event", event.ID, h.search.IndexEvent(c.Request.Context(), event))
	}

	logger.Log.Info("Event created", logger.WithUserID(userID), logger.WithEventID(event.ID))
	c.JSON(http.StatusCreated, gin.H{"event": event})
}

// GetEvent returns an event and whether the caller attends it
// GET /api/v1/events/:id
func (h *Handlers) GetEvent(c *gin.Context) {
	event, err := h.repos.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "event", err)
		return
	}

	attending := false
	if userID := util.OptionalUserID(c); userID != "" {
		attending, err = h.repos.Events.IsAttending(c.Request.Context(), event.ID, userID)
		if err != nil {
			respondRepositoryError(c, "event", err)
			return
		}
	}

	c.JSON(http.StatusOK, gin.H{"event": event, "is_attending": attending})
}

// UpdateEvent edits an event; only its organizer or an admin may
// PUT /api/v1/events/:id
func (h *Handlers) UpdateEvent(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	event, err := h.repos.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "event", err)
		return
	}
	if event.OrganizerID != userID && !util.IsAdmin(c) {
		util.RespondForbidden(c, "only the organizer can edit this event")
		return
	}

	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}
	if !req.validate(c) {
		return
	}
	if req.Capacity > 0 && req.Capacity < event.AttendeeCount {
		util.RespondValidationError(c, "capacity", "capacity is below the current number of attendees")
		return
	}

	req.apply(event)
	if err := h.repos.Events.Update(c.Request.Context(), event); err != nil {
		respondRepositoryError(c, "event", err)
		return
	}

	if h.search != nil {
		logSearchSync("index event", event.ID, h.search.IndexEvent(c.Request.Context(), event))
	}

	c.JSON(http.StatusOK, gin.H{"event": event})
}

// DeleteEvent deletes an event; only its organizer or an admin may
// DELETE /api/v1/events/:id
func (h *Handlers) DeleteEvent(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	event, err := h.repos.Events.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondRepositoryError(c, "event", err)
		return
	}
	if event.OrganizerID != userID && !util.IsAdmin(c) {
		util.RespondForbidden(c, "only the organizer can delete this event")
		return
	}

	if err := h.repos.Events.Delete(c.Request.Context(), event.ID); err != nil {
		respondRepositoryError(c, "event", err)
		return
	}

	if h.search != nil {
		logSearchSync("delete event", event.ID, h.search.DeleteEvent(c.Request.Context(), event.ID))
	}

	c.JSON(http.StatusOK, gin.H{"message": "event deleted"})
}

// JoinEvent adds the caller to an event's attendees
// POST /api/v1/events/:id/join
func (h *Handlers) JoinEvent(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.repos.Events.Join(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondRepositoryError(c, "event", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "joined event", "is_attending": true})
}

// LeaveEvent removes the caller from an event's attendees
// DELETE /api/v1/events/:id/join
func (h *Handlers) LeaveEvent(c *gin.Context) {
	userID, ok := util.GetUserIDFromContext(c)
	if !ok {
		return
	}

	if err := h.repos.Events.Leave(c.Request.Context(), c.Param("id"), userID); err != nil {
		respondRepositoryError(c, "event", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "left event", "is_attending": false})
}

// ListEventAttendees lists who attends an event, in join order
// GET /api/v1/events/:id/attendees
func (h *Handlers) ListEventAttendees(c *gin.Context) {
	params, ok := h.disclosureParams(c)
	if !ok {
		return
	}

	eventID := c.Param("id")
	if _, err := h.repos.Events.Get(c.Request.Context(), eventID); err != nil {
		respondRepositoryError(c, "event", err)
		return
	}

	attendees, err := h.repos.Events.ListAttendees(c.Request.Context(), eventID)
	if err != nil {
		respondRepositoryError(c, "attendees", err)
		return
	}

	respondList(c, "attendees", params, attendees)
}
