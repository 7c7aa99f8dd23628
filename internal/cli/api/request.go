package api

import (
	"fmt"

	json "github.com/json-iterator/go"
	"github.com/o6b7/travelbond/internal/cli/client"
)

// fetchAll requests a list endpoint with all=true and decodes the items under key.
// Disclosure happens locally, so the server-side window is the whole sequence.
func fetchAll[T any](path, key string, params map[string]string) ([]T, error) {
	query := map[string]string{"all": "true"}
	for k, v := range params {
		if v != "" {
			query[k] = v
		}
	}

	resp, err := client.GetClient().R().SetQueryParams(query).Get(path)
	if err != nil {
		return nil, err
	}
	if !resp.IsSuccess() {
		return nil, ParseError(resp)
	}

	var body map[string]json.RawMessage
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	raw, ok := body[key]
	if !ok {
		return nil, fmt.Errorf("response has no %q list", key)
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", key, err)
	}
	return items, nil
}

// send issues a request and decodes a 2xx body into result (which may be nil)
func send(method, path string, body, result interface{}) error {
	req := client.GetClient().R()
	if body != nil {
		req.SetBody(body)
	}
	if result != nil {
		req.SetResult(result)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return err
	}
	if !resp.IsSuccess() {
		return ParseError(resp)
	}
	return nil
}
