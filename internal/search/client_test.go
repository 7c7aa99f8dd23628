package search

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/o6b7/travelbond/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

// fakeElasticsearch answers just enough of the REST API for the client
type fakeElasticsearch struct {
	mu       sync.Mutex
	requests []recordedRequest
	existing map[string]bool
	hits     string
}

func (f *fakeElasticsearch) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, _ := io.ReadAll(r.Body)
	f.mu.Lock()
	f.requests = append(f.requests, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(body)})
	f.mu.Unlock()

	w.Header().Set("X-Elastic-Product", "Elasticsearch")
	w.Header().Set("Content-Type", "application/json")

	switch {
	case r.URL.Path == "/":
		io.WriteString(w, `{"version":{"number":"9.0.0"},"tagline":"You Know, for Search"}`)
	case r.Method == http.MethodHead:
		if f.existing[strings.TrimPrefix(r.URL.Path, "/")] {
			w.WriteHeader(http.StatusOK)
		} else {
			w.WriteHeader(http.StatusNotFound)
		}
	case strings.HasSuffix(r.URL.Path, "/_search"):
		io.WriteString(w, f.hits)
	case r.Method == http.MethodDelete:
		w.WriteHeader(http.StatusNotFound)
		io.WriteString(w, `{"result":"not_found"}`)
	case r.Method == http.MethodPut && strings.Contains(r.URL.Path, "/_doc/"):
		w.WriteHeader(http.StatusCreated)
		io.WriteString(w, `{"result":"created"}`)
	case r.Method == http.MethodPut:
		io.WriteString(w, `{"acknowledged":true}`)
	default:
		w.WriteHeader(http.StatusBadRequest)
		io.WriteString(w, `{"error":"unexpected request"}`)
	}
}

func (f *fakeElasticsearch) find(method, path string) *recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.requests {
		if f.requests[i].Method == method && f.requests[i].Path == path {
			return &f.requests[i]
		}
	}
	return nil
}

func (f *fakeElasticsearch) findPath(path string) *recordedRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.requests {
		if f.requests[i].Path == path {
			return &f.requests[i]
		}
	}
	return nil
}

func newTestClient(t *testing.T, fake *fakeElasticsearch) *Client {
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	c, err := NewClient(srv.URL)
	require.NoError(t, err)
	return c
}

func TestEnsureIndices_CreatesOnlyMissing(t *testing.T) {
	fake := &fakeElasticsearch{existing: map[string]bool{IndexGroups: true}}
	c := newTestClient(t, fake)

	require.NoError(t, c.EnsureIndices(context.Background()))

	created := fake.find(http.MethodPut, "/"+IndexEvents)
	require.NotNil(t, created)
	assert.Contains(t, created.Body, `"starts_at"`)
	assert.Nil(t, fake.find(http.MethodPut, "/"+IndexGroups))
}

func TestIndexEvent(t *testing.T) {
	fake := &fakeElasticsearch{}
	c := newTestClient(t, fake)

	event := &models.Event{
		ID:       "evt-1",
		Title:    "Night market crawl",
		Location: "Taipei",
		StartsAt: time.Date(2026, 5, 1, 19, 0, 0, 0, time.UTC),
	}
	require.NoError(t, c.IndexEvent(context.Background(), event))

	req := fake.find(http.MethodPut, "/"+IndexEvents+"/_doc/evt-1")
	require.NotNil(t, req)
	assert.Contains(t, req.Body, `"title":"Night market crawl"`)
	assert.Contains(t, req.Body, `"tags":[]`)
}

func TestDeleteGroup_MissingDocumentIsNotAnError(t *testing.T) {
	fake := &fakeElasticsearch{}
	c := newTestClient(t, fake)

	assert.NoError(t, c.DeleteGroup(context.Background(), "gone"))
}

func TestSearchEvents_ReturnsIDsInRankOrder(t *testing.T) {
	fake := &fakeElasticsearch{
		hits: `{"hits":{"total":{"value":2},"hits":[{"_id":"b","_score":2.5},{"_id":"a","_score":1.0}]}}`,
	}
	c := newTestClient(t, fake)

	ids, err := c.SearchEvents(context.Background(), "market", 20)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, ids)

	req := fake.findPath("/" + IndexEvents + "/_search")
	require.NotNil(t, req)
	assert.Contains(t, req.Body, `"query":"market"`)
	assert.Contains(t, req.Body, `"size":20`)
}

func TestSearch_ErrorResponse(t *testing.T) {
	fake := &fakeElasticsearch{hits: `not json`}
	c := newTestClient(t, fake)

	_, err := c.SearchGroups(context.Background(), "surf", 10)
	assert.Error(t, err)
}
