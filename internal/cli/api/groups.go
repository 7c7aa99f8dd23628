package api

import (
	"net/http"

	"github.com/o6b7/travelbond/internal/cli/logger"
)

// GroupQuery narrows a group listing
type GroupQuery struct {
	Query    string
	Category string
	Tag      string
	Sort     string
}

// ListGroups fetches every group visible to the caller
func ListGroups(q GroupQuery) ([]Group, error) {
	logger.Debug("Fetching groups", "query", q.Query, "category", q.Category)

	return fetchAll[Group]("/api/v1/groups", "groups", map[string]string{
		"q":        q.Query,
		"category": q.Category,
		"tag":      q.Tag,
		"sort":     q.Sort,
	})
}

// GetGroup returns a group and whether the caller is a member
func GetGroup(id string) (*Group, bool, error) {
	var resp struct {
		Group    *Group `json:"group"`
		IsMember bool   `json:"is_member"`
	}
	if err := send(http.MethodGet, "/api/v1/groups/"+id, nil, &resp); err != nil {
		return nil, false, err
	}
	return resp.Group, resp.IsMember, nil
}

func JoinGroup(id string) error {
	return send(http.MethodPost, "/api/v1/groups/"+id+"/join", nil, nil)
}

func LeaveGroup(id string) error {
	return send(http.MethodDelete, "/api/v1/groups/"+id+"/join", nil, nil)
}
