package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/disclosure"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
	"go.uber.org/zap"
)

// maxTags bounds the tags kept on an event or group
const maxTags = 10

// disclosureParams reads and validates the list query parameters.
// On failure it responds with 400 and returns false.
func (h *Handlers) disclosureParams(c *gin.Context) (util.DisclosureParams, bool) {
	params, err := util.ParseDisclosureParams(c, h.defaults)
	if err == nil {
		_, err = params.Cursor(0)
	}
	if err != nil {
		util.RespondBadRequest(c, err.Error())
		return params, false
	}
	return params, true
}

// disclosedList is the visible window of a list together with its control state
type disclosedList[T any] struct {
	Items      []T                `json:"items"`
	Disclosure disclosure.Control `json:"disclosure"`
	Total      int                `json:"total"`
}

// discloseList windows items through the request's disclosure cursor and
// records the window under name
func discloseList[T any](name string, params util.DisclosureParams, items []T) (disclosedList[T], error) {
	if items == nil {
		items = []T{}
	}

	cursor, err := params.Cursor(len(items))
	if err != nil {
		return disclosedList[T]{}, err
	}

	control := disclosure.ControlFor(cursor, len(items))
	metrics.RecordDisclosure(name, control.Shown, params.Reveals)
	logger.Log.Debug("List disclosed", logger.WithDisclosure(name, control.Shown, control.Total))

	return disclosedList[T]{
		Items:      disclosure.Window(cursor, items),
		Disclosure: control,
		Total:      len(items),
	}, nil
}

// respondList responds {"<key>": window, "disclosure": control, "total": len(items)}
func respondList[T any](c *gin.Context, key string, params util.DisclosureParams, items []T) {
	list, err := discloseList(key, params, items)
	if err != nil {
		util.RespondBadRequest(c, err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{
		key:          list.Items,
		"disclosure": list.Disclosure,
		"total":      list.Total,
	})
}

// respondRepositoryError maps repository errors onto API errors
func respondRepositoryError(c *gin.Context, resource string, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		util.RespondNotFound(c, resource)
	case errors.Is(err, repository.ErrInvalidInput):
		util.RespondBadRequest(c, "invalid "+resource)
	case errors.Is(err, repository.ErrAlreadyMember):
		util.RespondConflict(c, "already a member")
	case errors.Is(err, repository.ErrNotMember):
		util.RespondConflict(c, "not a member")
	case errors.Is(err, repository.ErrEventFull):
		util.RespondConflict(c, "event is full")
	case errors.Is(err, repository.ErrOwnerCannotLeave):
		util.RespondConflict(c, "the owner cannot leave the group")
	case errors.Is(err, repository.ErrPrivateGroup):
		util.RespondForbidden(c, "group is private")
	case errors.Is(err, repository.ErrAlreadyLiked):
		util.RespondConflict(c, "post already liked")
	case errors.Is(err, repository.ErrNotLiked):
		util.RespondConflict(c, "post not liked")
	case errors.Is(err, repository.ErrDuplicateReport):
		util.RespondConflict(c, "you already reported this")
	default:
		metrics.RecordError("database", c.FullPath())
		util.RespondInternalError(c, "failed to process "+resource, err)
	}
}

// logSearchSync logs a failed index update; the database stays authoritative
func logSearchSync(action, id string, err error) {
	if err != nil {
		logger.Log.Warn("Search index update failed", zap.String("action", action), zap.String("id", id), zap.Error(err))
	}
}

// normalizeTags lowercases, trims and dedupes tags, keeping the first maxTags
func normalizeTags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t == "" || strings.ContainsAny(t, ",{}\"") {
			continue
		}
		if _, ok := seen[t]; ok {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
		if len(out) == maxTags {
			break
		}
	}
	return out
}
