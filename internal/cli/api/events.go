package api

import (
	"net/http"

	"github.com/o6b7/travelbond/internal/cli/logger"
)

// EventQuery narrows an event listing
type EventQuery struct {
	Query     string
	Category  string
	Tag       string
	Organizer string
	Upcoming  bool
	Sort      string
}

// ListEvents fetches every event matching q
func ListEvents(q EventQuery) ([]Event, error) {
	logger.Debug("Fetching events", "query", q.Query, "category", q.Category)

	params := map[string]string{
		"q":         q.Query,
		"category":  q.Category,
		"tag":       q.Tag,
		"organizer": q.Organizer,
		"sort":      q.Sort,
	}
	if q.Upcoming {
		params["upcoming"] = "true"
	}
	return fetchAll[Event]("/api/v1/events", "events", params)
}

// GetEvent returns an event and whether the caller attends it
func GetEvent(id string) (*Event, bool, error) {
	var resp struct {
		Event       *Event `json:"event"`
		IsAttending bool   `json:"is_attending"`
	}
	if err := send(http.MethodGet, "/api/v1/events/"+id, nil, &resp); err != nil {
		return nil, false, err
	}
	return resp.Event, resp.IsAttending, nil
}

// ListEventAttendees fetches every attendee of an event
func ListEventAttendees(id string) ([]User, error) {
	return fetchAll[User]("/api/v1/events/"+id+"/attendees", "attendees", nil)
}

func JoinEvent(id string) error {
	return send(http.MethodPost, "/api/v1/events/"+id+"/join", nil, nil)
}

func LeaveEvent(id string) error {
	return send(http.MethodDelete, "/api/v1/events/"+id+"/join", nil, nil)
}
