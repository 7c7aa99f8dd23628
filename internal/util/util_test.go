package util

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/disclosure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	return c, w
}

func TestParseDisclosureParams_Defaults(t *testing.T) {
	c, _ := newContext("/events")

	p, err := ParseDisclosureParams(c, DisclosureDefaults{Initial: 3, Step: 3})
	require.NoError(t, err)
	assert.Equal(t, DisclosureParams{Initial: 3, Step: 3}, p)
}

func TestParseDisclosureParams_Overrides(t *testing.T) {
	c, _ := newContext("/events?initial=5&step=2&reveals=4&all=1")

	p, err := ParseDisclosureParams(c, DisclosureDefaults{Initial: 3, Step: 3})
	require.NoError(t, err)
	assert.Equal(t, DisclosureParams{Initial: 5, Step: 2, Reveals: 4, All: true}, p)
}

func TestParseDisclosureParams_NotANumber(t *testing.T) {
	c, _ := newContext("/events?step=abc")

	_, err := ParseDisclosureParams(c, DisclosureDefaults{Initial: 3, Step: 3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, disclosure.ErrInvalidArgument))
}

func TestDisclosureParams_Cursor(t *testing.T) {
	cur, err := DisclosureParams{Initial: 3, Step: 3, Reveals: 2}.Cursor(10)
	require.NoError(t, err)
	assert.Equal(t, 9, cur.Visible())

	cur, err = DisclosureParams{Initial: 3, Step: 3, All: true}.Cursor(10)
	require.NoError(t, err)
	assert.Equal(t, 10, cur.Clamp(10))
	assert.Zero(t, cur.Remaining(10))

	_, err = DisclosureParams{Initial: 3, Step: 0}.Cursor(10)
	assert.ErrorIs(t, err, disclosure.ErrInvalidArgument)

	_, err = DisclosureParams{Initial: -1, Step: 3}.Cursor(10)
	assert.ErrorIs(t, err, disclosure.ErrInvalidArgument)
}

func TestGetUserIDFromContext(t *testing.T) {
	c, w := newContext("/me")
	_, ok := GetUserIDFromContext(c)
	assert.False(t, ok)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	c, _ = newContext("/me")
	c.Set("user_id", "u-1")
	id, ok := GetUserIDFromContext(c)
	assert.True(t, ok)
	assert.Equal(t, "u-1", id)
	assert.Equal(t, "u-1", OptionalUserID(c))
}

func TestRespondValidationError(t *testing.T) {
	c, w := newContext("/events")
	RespondValidationError(c, "title", "title is required")

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "VALIDATION_ERROR", body["code"])
	assert.Equal(t, "title", body["field"])
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"1", "true", "TRUE", " yes ", "on"} {
		assert.True(t, ParseBool(s), s)
	}
	for _, s := range []string{"", "0", "false", "nope"} {
		assert.False(t, ParseBool(s), s)
	}
}
