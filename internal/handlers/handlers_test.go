package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/auth"
	"github.com/o6b7/travelbond/internal/dashboard"
	"github.com/o6b7/travelbond/internal/database"
	"github.com/o6b7/travelbond/internal/disclosure"
	"github.com/o6b7/travelbond/internal/models"
	"github.com/o6b7/travelbond/internal/repository"
	"github.com/o6b7/travelbond/internal/util"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type HandlersTestSuite struct {
	suite.Suite
	db     *gorm.DB
	repos  *repository.Repositories
	auth   *auth.Service
	h      *Handlers
	router *gin.Engine
	ctx    context.Context

	alice, bob, carol, admin *models.User
}

type listResponse struct {
	Disclosure disclosure.Control `json:"disclosure"`
	Total      int                `json:"total"`
}

type fakeSearcher struct {
	eventIDs []string
	groupIDs []string
	err      error
	indexed  []string
	deleted  []string
}

func (f *fakeSearcher) SearchEvents(_ context.Context, _ string, _ int) ([]string, error) {
	return f.eventIDs, f.err
}

func (f *fakeSearcher) SearchGroups(_ context.Context, _ string, _ int) ([]string, error) {
	return f.groupIDs, f.err
}

func (f *fakeSearcher) IndexEvent(_ context.Context, e *models.Event) error {
	f.indexed = append(f.indexed, e.ID)
	return nil
}

func (f *fakeSearcher) IndexGroup(_ context.Context, g *models.Group) error {
	f.indexed = append(f.indexed, g.ID)
	return nil
}

func (f *fakeSearcher) DeleteEvent(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeSearcher) DeleteGroup(_ context.Context, id string) error {
	f.deleted = append(f.deleted, id)
	return nil
}

func (s *HandlersTestSuite) SetupTest() {
	db, err := database.Open("sqlite", ":memory:", false)
	s.Require().NoError(err)
	s.Require().NoError(database.Migrate(db))

	s.db = db
	s.ctx = context.Background()
	s.repos = repository.New(db)
	s.auth = auth.NewService([]byte("handlers-test-secret"), s.repos.Users)
	s.h = NewHandlers(s.repos, s.auth,
		dashboard.NewService(s.repos.Events, s.repos.Groups, s.repos.Posts),
		util.DisclosureDefaults{Initial: 3, Step: 3})

	gin.SetMode(gin.TestMode)
	s.router = gin.New()
	s.h.RegisterRoutes(s.router)

	s.alice = s.createUser("alice", false)
	s.bob = s.createUser("bob", false)
	s.carol = s.createUser("carol", false)
	s.admin = s.createUser("mod", true)
}

func (s *HandlersTestSuite) TearDownTest() {
	if sqlDB, err := s.db.DB(); err == nil {
		sqlDB.Close()
	}
}

func (s *HandlersTestSuite) createUser(username string, isAdmin bool) *models.User {
	u := &models.User{
		Email:       username + "@example.com",
		Username:    username,
		DisplayName: username,
		IsAdmin:     isAdmin,
	}
	s.Require().NoError(s.repos.Users.Create(s.ctx, u))
	return u
}

func (s *HandlersTestSuite) token(u *models.User) string {
	resp, err := s.auth.IssueToken(u)
	s.Require().NoError(err)
	return resp.Token
}

func (s *HandlersTestSuite) createEvents(organizer *models.User, n int) []*models.Event {
	events := make([]*models.Event, 0, n)
	start := time.Now().Add(24 * time.Hour)
	for i := 0; i < n; i++ {
		e := &models.Event{
			OrganizerID: organizer.ID,
			Title:       fmt.Sprintf("Walking tour %d", i+1),
			StartsAt:    start.Add(time.Duration(i) * time.Hour),
		}
		s.Require().NoError(s.repos.Events.Create(s.ctx, e))
		events = append(events, e)
	}
	return events
}

func (s *HandlersTestSuite) request(method, path string, user *models.User, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if user != nil {
		req.Header.Set("Authorization", "Bearer "+s.token(user))
	}

	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

// decodeList decodes a list response and the items under key
func (s *HandlersTestSuite) decodeList(w *httptest.ResponseRecorder, key string, items interface{}) listResponse {
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var resp listResponse
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))

	var raw map[string]json.RawMessage
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), &raw))
	s.Require().Contains(raw, key)
	s.Require().NoError(json.Unmarshal(raw[key], items))
	return resp
}

func (s *HandlersTestSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	s.Require().NoError(json.Unmarshal(w.Body.Bytes(), v), w.Body.String())
}

func eventTitles(events []models.Event) []string {
	titles := make([]string, 0, len(events))
	for _, e := range events {
		titles = append(titles, e.Title)
	}
	return titles
}

// Disclosure

func (s *HandlersTestSuite) TestListEvents_DisclosesInSteps() {
	s.createEvents(s.alice, 10)

	var events []models.Event
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/events", nil, nil), "events", &events)
	s.Equal([]string{"Walking tour 1", "Walking tour 2", "Walking tour 3"}, eventTitles(events))
	s.Equal(10, resp.Total)
	s.Equal(disclosure.Control{
		Visible: 3, Initial: 3, Increment: 3, Shown: 3, Remaining: 7, Total: 10,
		CanRevealMore: true, CanReset: false,
	}, resp.Disclosure)

	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/events?reveals=2", nil, nil), "events", &events)
	s.Len(events, 9)
	s.Equal(1, resp.Disclosure.Remaining)
	s.True(resp.Disclosure.CanRevealMore)
	s.True(resp.Disclosure.CanReset)

	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/events?reveals=3", nil, nil), "events", &events)
	s.Len(events, 10)
	s.Equal(12, resp.Disclosure.Visible)
	s.Equal(10, resp.Disclosure.Shown)
	s.Equal(0, resp.Disclosure.Remaining)
	s.False(resp.Disclosure.CanRevealMore)
	s.True(resp.Disclosure.CanReset)
}

func (s *HandlersTestSuite) TestListEvents_CustomSizesAndAll() {
	s.createEvents(s.alice, 5)

	var events []models.Event
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/events?initial=0&step=2&reveals=1", nil, nil), "events", &events)
	s.Len(events, 2)
	s.Equal(0, resp.Disclosure.Initial)
	s.Equal(3, resp.Disclosure.Remaining)

	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/events?all=true", nil, nil), "events", &events)
	s.Len(events, 5)
	s.False(resp.Disclosure.CanRevealMore)
	s.False(resp.Disclosure.CanReset)
}

func (s *HandlersTestSuite) TestListEvents_EmptySequence() {
	var events []models.Event
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/events", nil, nil), "events", &events)
	s.NotNil(events)
	s.Empty(events)
	s.Equal(0, resp.Total)
	s.False(resp.Disclosure.CanRevealMore)
	s.False(resp.Disclosure.CanReset)
}

func (s *HandlersTestSuite) TestList_RejectsInvalidDisclosureParams() {
	for _, query := range []string{
		"initial=-1",
		"step=0",
		"step=-3",
		"reveals=-1",
		"initial=three",
		"step=1.5",
		"step=3&reveals=3074457345618258603",
	} {
		w := s.request(http.MethodGet, "/api/v1/events?"+query, nil, nil)
		s.Equal(http.StatusBadRequest, w.Code, query)

		var body map[string]interface{}
		s.decode(w, &body)
		s.Equal("BAD_REQUEST", body["code"], query)
	}
}

// Auth

func (s *HandlersTestSuite) TestAuth_RegisterLoginMe() {
	w := s.request(http.MethodPost, "/api/v1/auth/register", nil, map[string]interface{}{
		"email":        "Dana@Example.com",
		"username":     "dana",
		"password":     "long-enough-password",
		"display_name": "Dana",
		"interests":    []string{"diving"},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())

	var registered auth.AuthResponse
	s.decode(w, &registered)
	s.NotEmpty(registered.Token)
	s.Equal("dana@example.com", registered.User.Email)

	w = s.request(http.MethodPost, "/api/v1/auth/register", nil, map[string]interface{}{
		"email": "dana@example.com", "username": "dana2", "password": "long-enough-password", "display_name": "D",
	})
	s.Equal(http.StatusConflict, w.Code)

	w = s.request(http.MethodPost, "/api/v1/auth/login", nil, map[string]string{
		"email": "dana@example.com", "password": "wrong-password",
	})
	s.Equal(http.StatusUnauthorized, w.Code)

	w = s.request(http.MethodPost, "/api/v1/auth/login", nil, map[string]string{
		"email": "dana@example.com", "password": "long-enough-password",
	})
	s.Require().Equal(http.StatusOK, w.Code)

	w = s.request(http.MethodGet, "/api/v1/auth/me", s.alice, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var me struct {
		User models.User `json:"user"`
	}
	s.decode(w, &me)
	s.Equal(s.alice.ID, me.User.ID)

	s.Equal(http.StatusUnauthorized, s.request(http.MethodGet, "/api/v1/auth/me", nil, nil).Code)
}

func (s *HandlersTestSuite) TestAuth_RegisterValidatesBody() {
	w := s.request(http.MethodPost, "/api/v1/auth/register", nil, map[string]string{
		"email": "not-an-email", "username": "x", "password": "short",
	})
	s.Equal(http.StatusBadRequest, w.Code)
}

// Events

func (s *HandlersTestSuite) TestEvents_CreateUpdateDelete() {
	starts := time.Now().Add(48 * time.Hour).UTC().Truncate(time.Second)

	s.Equal(http.StatusUnauthorized, s.request(http.MethodPost, "/api/v1/events", nil, map[string]interface{}{
		"title": "x", "starts_at": starts,
	}).Code)

	w := s.request(http.MethodPost, "/api/v1/events", s.alice, map[string]interface{}{
		"title":     "Sunrise hike",
		"location":  "Sintra",
		"category":  "Outdoors",
		"tags":      []string{"Hiking", "hiking", " views "},
		"starts_at": starts,
		"ends_at":   starts.Add(-time.Hour),
	})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	w = s.request(http.MethodPost, "/api/v1/events", s.alice, map[string]interface{}{
		"title":     "Sunrise hike",
		"location":  "Sintra",
		"category":  "Outdoors",
		"tags":      []string{"Hiking", "hiking", " views "},
		"starts_at": starts,
		"capacity":  10,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Event models.Event `json:"event"`
	}
	s.decode(w, &created)
	s.Equal("outdoors", created.Event.Category)
	s.Equal(models.StringArray{"hiking", "views"}, created.Event.Tags)

	path := "/api/v1/events/" + created.Event.ID
	update := map[string]interface{}{"title": "Sunset hike", "starts_at": starts}
	s.Equal(http.StatusForbidden, s.request(http.MethodPut, path, s.bob, update).Code)
	s.Equal(http.StatusOK, s.request(http.MethodPut, path, s.alice, update).Code)

	stored, err := s.repos.Events.Get(s.ctx, created.Event.ID)
	s.Require().NoError(err)
	s.Equal("Sunset hike", stored.Title)

	s.Equal(http.StatusForbidden, s.request(http.MethodDelete, path, s.bob, nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodDelete, path, s.admin, nil).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodGet, path, nil, nil).Code)
}

func (s *HandlersTestSuite) TestEvents_JoinLeaveAndAttendees() {
	event := &models.Event{OrganizerID: s.alice.ID, Title: "Tapas crawl", StartsAt: time.Now().Add(time.Hour), Capacity: 2}
	s.Require().NoError(s.repos.Events.Create(s.ctx, event))
	path := "/api/v1/events/" + event.ID

	s.Equal(http.StatusOK, s.request(http.MethodPost, path+"/join", s.bob, nil).Code)
	s.Equal(http.StatusConflict, s.request(http.MethodPost, path+"/join", s.bob, nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodPost, path+"/join", s.carol, nil).Code)
	s.Equal(http.StatusConflict, s.request(http.MethodPost, path+"/join", s.admin, nil).Code)

	var got struct {
		IsAttending bool `json:"is_attending"`
	}
	s.decode(s.request(http.MethodGet, path, s.bob, nil), &got)
	s.True(got.IsAttending)

	var attendees []models.User
	resp := s.decodeList(s.request(http.MethodGet, path+"/attendees?initial=1&step=1", nil, nil), "attendees", &attendees)
	s.Require().Len(attendees, 1)
	s.Equal(s.bob.ID, attendees[0].ID)
	s.Equal(2, resp.Total)

	s.Equal(http.StatusOK, s.request(http.MethodDelete, path+"/join", s.bob, nil).Code)
	s.Equal(http.StatusConflict, s.request(http.MethodDelete, path+"/join", s.bob, nil).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodPost, "/api/v1/events/missing/join", s.bob, nil).Code)
}

func (s *HandlersTestSuite) TestEvents_SearchUsesIndexAndFallsBack() {
	events := s.createEvents(s.alice, 3)
	searcher := &fakeSearcher{eventIDs: []string{events[1].ID}}
	s.h.SetSearchClient(searcher)

	var found []models.Event
	s.decodeList(s.request(http.MethodGet, "/api/v1/events?q=anything", nil, nil), "events", &found)
	s.Equal([]string{"Walking tour 2"}, eventTitles(found))

	searcher.err = errors.New("cluster unavailable")
	s.decodeList(s.request(http.MethodGet, "/api/v1/events?q=tour+3", nil, nil), "events", &found)
	s.Equal([]string{"Walking tour 3"}, eventTitles(found))

	w := s.request(http.MethodPost, "/api/v1/events", s.bob, map[string]interface{}{
		"title": "Indexed", "starts_at": time.Now().Add(time.Hour),
	})
	s.Require().Equal(http.StatusCreated, w.Code)
	s.Len(searcher.indexed, 1)
}

// Groups

func (s *HandlersTestSuite) TestGroups_PrivateGroupsAreHidden() {
	w := s.request(http.MethodPost, "/api/v1/groups", s.alice, map[string]interface{}{
		"name": "Secret surf spots", "is_private": true,
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Group models.Group `json:"group"`
	}
	s.decode(w, &created)
	path := "/api/v1/groups/" + created.Group.ID

	s.Equal(http.StatusNotFound, s.request(http.MethodGet, path, s.bob, nil).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodGet, path+"/members", nil, nil).Code)
	s.Equal(http.StatusForbidden, s.request(http.MethodPost, path+"/join", s.bob, nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodGet, path, s.admin, nil).Code)

	var got struct {
		IsMember bool `json:"is_member"`
	}
	s.decode(s.request(http.MethodGet, path, s.alice, nil), &got)
	s.True(got.IsMember)

	var groups []models.Group
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/groups", s.bob, nil), "groups", &groups)
	s.Equal(0, resp.Total)
	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/groups", s.alice, nil), "groups", &groups)
	s.Equal(1, resp.Total)

	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/users/"+s.alice.ID+"/groups", s.bob, nil), "groups", &groups)
	s.Equal(0, resp.Total)
	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/users/"+s.alice.ID+"/groups", s.alice, nil), "groups", &groups)
	s.Equal(1, resp.Total)
}

func (s *HandlersTestSuite) TestGroups_MembershipAndMembers() {
	group := &models.Group{OwnerID: s.alice.ID, Name: "Rail travellers"}
	s.Require().NoError(s.repos.Groups.Create(s.ctx, group))
	path := "/api/v1/groups/" + group.ID

	s.Equal(http.StatusOK, s.request(http.MethodPost, path+"/join", s.bob, nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodPost, path+"/join", s.carol, nil).Code)
	s.Equal(http.StatusConflict, s.request(http.MethodDelete, path+"/join", s.alice, nil).Code)

	var members []models.GroupMember
	resp := s.decodeList(s.request(http.MethodGet, path+"/members?initial=2&step=5", nil, nil), "members", &members)
	s.Require().Len(members, 2)
	s.Equal(s.alice.ID, members[0].UserID)
	s.Equal(models.GroupRoleOwner, members[0].Role)
	s.Equal(3, resp.Total)
	s.Equal(1, resp.Disclosure.Remaining)

	s.Equal(http.StatusForbidden, s.request(http.MethodPut, path, s.bob, map[string]string{"name": "Mine now"}).Code)
	s.Equal(http.StatusOK, s.request(http.MethodPut, path, s.alice, map[string]string{"name": "Slow travel"}).Code)
}

// Posts and comments

func (s *HandlersTestSuite) TestPosts_CreateInGroupRequiresMembership() {
	group := &models.Group{OwnerID: s.alice.ID, Name: "Night trains"}
	s.Require().NoError(s.repos.Groups.Create(s.ctx, group))

	body := map[string]interface{}{"content": "Anyone on the Vienna sleeper?", "group_id": group.ID}
	s.Equal(http.StatusForbidden, s.request(http.MethodPost, "/api/v1/posts", s.bob, body).Code)
	s.Equal(http.StatusCreated, s.request(http.MethodPost, "/api/v1/posts", s.alice, body).Code)

	var posts []models.Post
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/posts?group="+group.ID, nil, nil), "posts", &posts)
	s.Equal(1, resp.Total)
}

func (s *HandlersTestSuite) TestPosts_LikeAndDelete() {
	post := &models.Post{AuthorID: s.alice.ID, Content: "Made it to Porto"}
	s.Require().NoError(s.repos.Posts.Create(s.ctx, post))
	path := "/api/v1/posts/" + post.ID

	s.Equal(http.StatusOK, s.request(http.MethodPost, path+"/like", s.bob, nil).Code)
	s.Equal(http.StatusConflict, s.request(http.MethodPost, path+"/like", s.bob, nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodDelete, path+"/like", s.bob, nil).Code)
	s.Equal(http.StatusConflict, s.request(http.MethodDelete, path+"/like", s.bob, nil).Code)

	s.Equal(http.StatusForbidden, s.request(http.MethodDelete, path, s.bob, nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodDelete, path, s.alice, nil).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodGet, path, nil, nil).Code)
}

func (s *HandlersTestSuite) TestPosts_UpdateByAuthorOnly() {
	post := &models.Post{AuthorID: s.alice.ID, Content: "Lisbon tomorrow"}
	s.Require().NoError(s.repos.Posts.Create(s.ctx, post))
	path := "/api/v1/posts/" + post.ID

	s.Equal(http.StatusForbidden, s.request(http.MethodPut, path, s.bob, map[string]string{"content": "hijacked"}).Code)
	s.Equal(http.StatusUnprocessableEntity, s.request(http.MethodPut, path, s.alice, map[string]string{"content": "   "}).Code)

	w := s.request(http.MethodPut, path, s.alice, map[string]string{"content": "  Lisbon on Friday instead "})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	stored, err := s.repos.Posts.Get(s.ctx, post.ID)
	s.Require().NoError(err)
	s.Equal("Lisbon on Friday instead", stored.Content)
}

func (s *HandlersTestSuite) TestComments_RepliesAreDisclosedInPositionOrder() {
	post := &models.Post{AuthorID: s.alice.ID, Content: "Best hostel in Hanoi?"}
	s.Require().NoError(s.repos.Posts.Create(s.ctx, post))
	commentsPath := "/api/v1/posts/" + post.ID + "/comments"

	var top struct {
		Comment models.Comment `json:"comment"`
	}
	w := s.request(http.MethodPost, commentsPath, s.bob, map[string]string{"content": "Try the Old Quarter"})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.decode(w, &top)
	s.Equal(http.StatusCreated, s.request(http.MethodPost, commentsPath, s.carol, map[string]string{"content": "Seconded"}).Code)

	var firstReply struct {
		Comment models.Comment `json:"comment"`
	}
	for i, author := range []*models.User{s.alice, s.carol, s.bob, s.alice} {
		w := s.request(http.MethodPost, commentsPath, author, map[string]interface{}{
			"content":   fmt.Sprintf("reply %d", i+1),
			"parent_id": top.Comment.ID,
		})
		s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
		if i == 0 {
			s.decode(w, &firstReply)
		}
	}

	w = s.request(http.MethodPost, commentsPath, s.bob, map[string]interface{}{
		"content": "too deep", "parent_id": firstReply.Comment.ID,
	})
	s.Equal(http.StatusUnprocessableEntity, w.Code)

	var comments []models.Comment
	resp := s.decodeList(s.request(http.MethodGet, commentsPath, nil, nil), "comments", &comments)
	s.Equal(2, resp.Total)
	s.Equal("Try the Old Quarter", comments[0].Content)

	repliesPath := "/api/v1/comments/" + top.Comment.ID + "/replies"
	var replies []models.Comment
	resp = s.decodeList(s.request(http.MethodGet, repliesPath+"?initial=2&step=2", nil, nil), "replies", &replies)
	s.Require().Len(replies, 2)
	s.Equal("reply 1", replies[0].Content)
	s.Equal("reply 2", replies[1].Content)
	s.Equal(4, resp.Total)
	s.True(resp.Disclosure.CanRevealMore)

	resp = s.decodeList(s.request(http.MethodGet, repliesPath+"?initial=2&step=2&reveals=1", nil, nil), "replies", &replies)
	s.Require().Len(replies, 4)
	for i, r := range replies {
		s.Equal(fmt.Sprintf("reply %d", i+1), r.Content)
		s.Equal(i+1, r.Position)
	}
	s.False(resp.Disclosure.CanRevealMore)
	s.True(resp.Disclosure.CanReset)

	// the post author may remove any comment on their post
	s.Equal(http.StatusForbidden, s.request(http.MethodDelete, "/api/v1/comments/"+top.Comment.ID, s.carol, nil).Code)
	s.Equal(http.StatusOK, s.request(http.MethodDelete, "/api/v1/comments/"+top.Comment.ID, s.alice, nil).Code)
	resp = s.decodeList(s.request(http.MethodGet, repliesPath+"?all=1", nil, nil), "replies", &replies)
	s.Equal(4, resp.Total)
}

// Users

func (s *HandlersTestSuite) TestUsers_UpdateProfileAndList() {
	w := s.request(http.MethodPut, "/api/v1/users/me", s.bob, map[string]interface{}{
		"bio":       "Slow traveller",
		"location":  " Lisbon ",
		"interests": []string{"Surf", "food"},
	})
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	u, err := s.repos.Users.Get(s.ctx, s.bob.ID)
	s.Require().NoError(err)
	s.Equal("bob", u.DisplayName)
	s.Equal("Lisbon", u.Location)
	s.Equal(models.StringArray{"surf", "food"}, u.Interests)

	s.Equal(http.StatusUnprocessableEntity, s.request(http.MethodPut, "/api/v1/users/me", s.bob,
		map[string]string{"display_name": "   "}).Code)

	var users []models.User
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/users?interest=surf", nil, nil), "users", &users)
	s.Equal(1, resp.Total)
	s.Require().Len(users, 1)
	s.Equal(s.bob.ID, users[0].ID)

	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/users?initial=2", nil, nil), "users", &users)
	s.Len(users, 2)
	s.Equal(4, resp.Total)
}

func (s *HandlersTestSuite) TestList_FiltersByTag() {
	w := s.request(http.MethodPost, "/api/v1/groups", s.alice, map[string]interface{}{
		"name": "Alpine huts", "tags": []string{"Hiking", "huts"},
	})
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	s.Require().Equal(http.StatusCreated, s.request(http.MethodPost, "/api/v1/groups", s.bob,
		map[string]interface{}{"name": "City breaks", "tags": []string{"food"}}).Code)

	tagged := &models.Event{OrganizerID: s.alice.ID, Title: "Ridge walk", Tags: models.StringArray{"hiking"}, StartsAt: time.Now().Add(time.Hour)}
	s.Require().NoError(s.repos.Events.Create(s.ctx, tagged))
	s.createEvents(s.bob, 2)

	var groups []models.Group
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/groups?tag=hiking", nil, nil), "groups", &groups)
	s.Equal(1, resp.Total)
	s.Require().Len(groups, 1)
	s.Equal("Alpine huts", groups[0].Name)

	var events []models.Event
	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/events?tag=hiking", nil, nil), "events", &events)
	s.Equal(1, resp.Total)
	s.Require().Len(events, 1)
	s.Equal(tagged.ID, events[0].ID)

	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/events?tag=hik", nil, nil), "events", &events)
	s.Equal(0, resp.Total)
}

// Reports

func (s *HandlersTestSuite) TestReports_ModerationFlow() {
	post := &models.Post{AuthorID: s.alice.ID, Content: "spam spam spam"}
	s.Require().NoError(s.repos.Posts.Create(s.ctx, post))

	body := map[string]string{"target_type": "post", "target_id": post.ID, "reason": "spam"}
	w := s.request(http.MethodPost, "/api/v1/reports", s.bob, body)
	s.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var created struct {
		Report models.Report `json:"report"`
	}
	s.decode(w, &created)

	s.Equal(http.StatusConflict, s.request(http.MethodPost, "/api/v1/reports", s.bob, body).Code)
	s.Equal(http.StatusUnprocessableEntity, s.request(http.MethodPost, "/api/v1/reports", s.bob,
		map[string]string{"target_type": "planet", "target_id": "x", "reason": "?"}).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodPost, "/api/v1/reports", s.bob,
		map[string]string{"target_type": "user", "target_id": "nobody", "reason": "fake"}).Code)

	s.Equal(http.StatusForbidden, s.request(http.MethodGet, "/api/v1/reports", s.bob, nil).Code)

	var reports []models.Report
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/reports", s.admin, nil), "reports", &reports)
	s.Equal(1, resp.Total)

	path := "/api/v1/reports/" + created.Report.ID
	s.Equal(http.StatusUnprocessableEntity, s.request(http.MethodPut, path, s.admin, map[string]string{"status": "pending"}).Code)
	s.Equal(http.StatusOK, s.request(http.MethodPut, path, s.admin, map[string]string{"status": "actioned"}).Code)

	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/reports", s.admin, nil), "reports", &reports)
	s.Equal(0, resp.Total)
	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/reports?status=actioned", s.admin, nil), "reports", &reports)
	s.Equal(1, resp.Total)
	resp = s.decodeList(s.request(http.MethodGet, "/api/v1/reports?status=all", s.admin, nil), "reports", &reports)
	s.Equal(1, resp.Total)

	s.Equal(http.StatusForbidden, s.request(http.MethodGet, path, s.bob, nil).Code)
	s.Equal(http.StatusNotFound, s.request(http.MethodGet, "/api/v1/reports/missing", s.admin, nil).Code)
	w = s.request(http.MethodGet, path, s.admin, nil)
	s.Require().Equal(http.StatusOK, w.Code)
	var fetched struct {
		Report models.Report `json:"report"`
	}
	s.decode(w, &fetched)
	s.Equal(models.ReportStatusActioned, fetched.Report.Status)
}

// Dashboard and health

func (s *HandlersTestSuite) TestDashboard_SectionsAreDisclosedIndependently() {
	group := &models.Group{OwnerID: s.bob.ID, Name: "Island hoppers"}
	s.Require().NoError(s.repos.Groups.Create(s.ctx, group))
	s.Require().NoError(s.repos.Groups.Join(s.ctx, group.ID, s.alice.ID))

	base := time.Now().Add(-time.Hour).UTC()
	for i := 0; i < 3; i++ {
		p := &models.Post{AuthorID: s.bob.ID, GroupID: &group.ID, Content: fmt.Sprintf("ferry update %d", i), CreatedAt: base.Add(time.Duration(i) * time.Minute)}
		s.Require().NoError(s.repos.Posts.Create(s.ctx, p))
	}

	w := s.request(http.MethodGet, "/api/v1/dashboard?initial=1&step=1", s.alice, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())

	var dash struct {
		Posts struct {
			Items      []models.Post      `json:"items"`
			Disclosure disclosure.Control `json:"disclosure"`
			Total      int                `json:"total"`
		} `json:"posts"`
		Groups struct {
			Items []models.Group `json:"items"`
			Total int            `json:"total"`
		} `json:"groups"`
		UpcomingEvents struct {
			Items []models.Event `json:"items"`
			Total int            `json:"total"`
		} `json:"upcoming_events"`
	}
	s.decode(w, &dash)
	s.Require().Len(dash.Posts.Items, 1)
	s.Equal("ferry update 2", dash.Posts.Items[0].Content)
	s.Equal(3, dash.Posts.Total)
	s.Equal(2, dash.Posts.Disclosure.Remaining)
	s.Equal(1, dash.Groups.Total)
	s.NotNil(dash.UpcomingEvents.Items)
	s.Equal(0, dash.UpcomingEvents.Total)

	s.Equal(http.StatusUnauthorized, s.request(http.MethodGet, "/api/v1/dashboard", nil, nil).Code)
	s.Equal(http.StatusBadRequest, s.request(http.MethodGet, "/api/v1/dashboard?step=0", s.alice, nil).Code)
}

func (s *HandlersTestSuite) TestDashboard_HidesPrivateGroupPostsFromEventAttendees() {
	private := &models.Group{OwnerID: s.alice.ID, Name: "Summit crew", IsPrivate: true}
	s.Require().NoError(s.repos.Groups.Create(s.ctx, private))
	event := s.createEvents(s.alice, 1)[0]
	s.Require().NoError(s.repos.Events.Join(s.ctx, event.ID, s.bob.ID))

	s.Require().Equal(http.StatusCreated, s.request(http.MethodPost, "/api/v1/posts", s.alice,
		map[string]interface{}{"content": "members only plan", "group_id": private.ID, "event_id": event.ID}).Code)
	s.Require().Equal(http.StatusCreated, s.request(http.MethodPost, "/api/v1/posts", s.alice,
		map[string]interface{}{"content": "meet at the trailhead", "event_id": event.ID}).Code)

	type dashboardPosts struct {
		Posts struct {
			Items []models.Post `json:"items"`
			Total int           `json:"total"`
		} `json:"posts"`
	}

	var bobs dashboardPosts
	w := s.request(http.MethodGet, "/api/v1/dashboard?all=true", s.bob, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &bobs)
	s.Require().Equal(1, bobs.Posts.Total)
	s.Equal("meet at the trailhead", bobs.Posts.Items[0].Content)

	var posts []models.Post
	resp := s.decodeList(s.request(http.MethodGet, "/api/v1/posts?event="+event.ID, s.bob, nil), "posts", &posts)
	s.Equal(bobs.Posts.Total, resp.Total)

	var alices dashboardPosts
	w = s.request(http.MethodGet, "/api/v1/dashboard?all=true", s.alice, nil)
	s.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	s.decode(w, &alices)
	s.Equal(2, alices.Posts.Total)
}

func (s *HandlersTestSuite) TestDashboard_RejectsOverflowingReveals() {
	w := s.request(http.MethodGet, "/api/v1/dashboard?step=3&reveals=3074457345618258603", s.alice, nil)
	s.Equal(http.StatusBadRequest, w.Code)
}

func (s *HandlersTestSuite) TestHealth() {
	s.h.AddHealthCheck("database", func(context.Context) error { return nil })
	s.Equal(http.StatusOK, s.request(http.MethodGet, "/health", nil, nil).Code)

	s.h.AddHealthCheck("redis", func(context.Context) error { return errors.New("dial tcp: refused") })
	w := s.request(http.MethodGet, "/health", nil, nil)
	s.Equal(http.StatusServiceUnavailable, w.Code)

	var body struct {
		Status string            `json:"status"`
		Checks map[string]string `json:"checks"`
	}
	s.decode(w, &body)
	s.Equal("degraded", body.Status)
	s.Equal("ok", body.Checks["database"])
}

func (s *HandlersTestSuite) TestMetricsEndpoint() {
	s.request(http.MethodGet, "/api/v1/events", nil, nil)
	w := s.request(http.MethodGet, "/metrics", nil, nil)
	s.Equal(http.StatusOK, w.Code)
	s.Contains(w.Body.String(), "disclosure_window_items")
}

func TestHandlersTestSuite(t *testing.T) {
	suite.Run(t, new(HandlersTestSuite))
}
