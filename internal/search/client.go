// Package search indexes events and groups in Elasticsearch and answers
// free-text queries with matching IDs.
package search

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/elastic/go-elasticsearch/v9/esapi"
	json "github.com/json-iterator/go"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"github.com/o6b7/travelbond/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Index names
const (
	IndexEvents = "events"
	IndexGroups = "groups"
)

// Client wraps the Elasticsearch client with TravelBond-specific functionality
type Client struct {
	es *elasticsearch.Client
}

// NewClient connects to Elasticsearch at url. Requests are traced through otelhttp.
func NewClient(url string) (*Client, error) {
	if url == "" {
		url = "http://localhost:9200"
	}

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{url},
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	res, err := es.Info()
	if err != nil {
		return nil, fmt.Errorf("failed to connect to Elasticsearch: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch info failed: [%s]", res.Status())
	}

	logger.Log.Info("Elasticsearch client connected", zap.String("url", url))
	return &Client{es: es}, nil
}

// EnsureIndices creates the events and groups indices when missing
func (c *Client) EnsureIndices(ctx context.Context) error {
	if err := c.createIndex(ctx, IndexEvents, eventsMapping()); err != nil {
		return fmt.Errorf("failed to create events index: %w", err)
	}
	if err := c.createIndex(ctx, IndexGroups, groupsMapping()); err != nil {
		return fmt.Errorf("failed to create groups index: %w", err)
	}
	return nil
}

func (c *Client) createIndex(ctx context.Context, indexName string, mapping map[string]interface{}) error {
	res, err := c.es.Indices.Exists([]string{indexName}, c.es.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	body, err := json.Marshal(mapping)
	if err != nil {
		return fmt.Errorf("failed to marshal mapping: %w", err)
	}

	res, err = c.es.Indices.Create(indexName,
		c.es.Indices.Create.WithBody(bytes.NewReader(body)),
		c.es.Indices.Create.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("creating index", res)
	}
	logger.Log.Info("Created search index", zap.String("index", indexName))
	return nil
}

// IndexEvent indexes or replaces an event document
func (c *Client) IndexEvent(ctx context.Context, event *models.Event) error {
	return c.indexDocument(ctx, IndexEvents, event.ID, EventToDocument(event))
}

// IndexGroup indexes or replaces a group document
func (c *Client) IndexGroup(ctx context.Context, group *models.Group) error {
	return c.indexDocument(ctx, IndexGroups, group.ID, GroupToDocument(group))
}

// DeleteEvent removes an event document; a missing document is not an error
func (c *Client) DeleteEvent(ctx context.Context, eventID string) error {
	return c.deleteDocument(ctx, IndexEvents, eventID)
}

// DeleteGroup removes a group document; a missing document is not an error
func (c *Client) DeleteGroup(ctx context.Context, groupID string) error {
	return c.deleteDocument(ctx, IndexGroups, groupID)
}

func (c *Client) indexDocument(ctx context.Context, index, id string, doc interface{}) error {
	body, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to marshal %s document: %w", index, err)
	}

	res, err := c.es.Index(index, bytes.NewReader(body),
		c.es.Index.WithDocumentID(id),
		c.es.Index.WithContext(ctx),
	)
	if err != nil {
		return fmt.Errorf("failed to index %s document: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return responseError("indexing "+index, res)
	}
	return nil
}

func (c *Client) deleteDocument(ctx context.Context, index, id string) error {
	res, err := c.es.Delete(index, id, c.es.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete %s document: %w", index, err)
	}
	defer res.Body.Close()

	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return responseError("deleting from "+index, res)
	}
	return nil
}

// SearchEvents returns the IDs of events matching query, best match first
func (c *Client) SearchEvents(ctx context.Context, query string, limit int) ([]string, error) {
	ids, err := c.searchIDs(ctx, IndexEvents, multiMatch(query, []string{"title^3", "location^2", "description", "tags^2", "category"}), limit)
	metrics.RecordSearch(IndexEvents, "elasticsearch", err)
	return ids, err
}

// SearchGroups returns the IDs of groups matching query, best match first
func (c *Client) SearchGroups(ctx context.Context, query string, limit int) ([]string, error) {
	ids, err := c.searchIDs(ctx, IndexGroups, multiMatch(query, []string{"name^3", "description", "tags^2", "category"}), limit)
	metrics.RecordSearch(IndexGroups, "elasticsearch", err)
	return ids, err
}

func multiMatch(query string, fields []string) map[string]interface{} {
	return map[string]interface{}{
		"multi_match": map[string]interface{}{
			"query":     query,
			"fields":    fields,
			"fuzziness": "AUTO",
		},
	}
}

func (c *Client) searchIDs(ctx context.Context, index string, query map[string]interface{}, limit int) ([]string, error) {
	body, err := json.Marshal(map[string]interface{}{
		"query":   query,
		"size":    limit,
		"_source": false,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal search query: %w", err)
	}

	res, err := c.es.Search(
		c.es.Search.WithContext(ctx),
		c.es.Search.WithIndex(index),
		c.es.Search.WithBody(bytes.NewReader(body)),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to execute search: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, responseError("searching "+index, res)
	}

	var searchResp struct {
		Hits struct {
			Hits []struct {
				ID string `json:"_id"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&searchResp); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}

	ids := make([]string, 0, len(searchResp.Hits.Hits))
	for _, hit := range searchResp.Hits.Hits {
		ids = append(ids, hit.ID)
	}
	return ids, nil
}

func responseError(action string, res *esapi.Response) error {
	raw, _ := io.ReadAll(res.Body)
	var errResp map[string]interface{}
	if err := json.Unmarshal(raw, &errResp); err != nil {
		return fmt.Errorf("error %s: [%s]", action, res.Status())
	}
	return fmt.Errorf("error %s: [%s] %v", action, res.Status(), errResp["error"])
}

func eventsMapping() map[string]interface{} {
	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":             map[string]interface{}{"type": "keyword"},
				"title":          map[string]interface{}{"type": "text", "analyzer": "standard"},
				"description":    map[string]interface{}{"type": "text", "analyzer": "standard"},
				"location":       map[string]interface{}{"type": "text", "analyzer": "standard"},
				"category":       map[string]interface{}{"type": "keyword"},
				"tags":           map[string]interface{}{"type": "keyword"},
				"organizer_id":   map[string]interface{}{"type": "keyword"},
				"attendee_count": map[string]interface{}{"type": "integer"},
				"starts_at":      map[string]interface{}{"type": "date"},
				"created_at":     map[string]interface{}{"type": "date"},
			},
		},
	}
}

func groupsMapping() map[string]interface{} {
	return map[string]interface{}{
		"mappings": map[string]interface{}{
			"properties": map[string]interface{}{
				"id":           map[string]interface{}{"type": "keyword"},
				"name":         map[string]interface{}{"type": "text", "analyzer": "standard"},
				"description":  map[string]interface{}{"type": "text", "analyzer": "standard"},
				"category":     map[string]interface{}{"type": "keyword"},
				"tags":         map[string]interface{}{"type": "keyword"},
				"is_private":   map[string]interface{}{"type": "boolean"},
				"member_count": map[string]interface{}{"type": "integer"},
				"created_at":   map[string]interface{}{"type": "date"},
			},
		},
	}
}
