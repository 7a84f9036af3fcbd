// Package client
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/google/uuid"
)

type HTTPClient interface {
	Do(*http.Request) (*http.Response, error)
}

// Relations maps foreign-key query parameter names to entity ids. Absent
// entries are simply not sent, letting the backend apply defaulting or
// leave the relation untouched.
type Relations map[string]int64

func (r Relations) encode(query url.Values) {
	keys := make([]string, 0, len(r))
	for key := range r {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		query.Set(key, strconv.FormatInt(r[key], 10))
	}
}

// Resource is the CRUD client for one entity collection. List returns
// the sequence exactly as the backend ordered it.
type Resource[T any] struct {
	httpClient HTTPClient
	baseURL    string
	path       string
}

func NewResource[T any](httpClient HTTPClient, baseURL, path string) *Resource[T] {
	return &Resource[T]{
		httpClient: httpClient,
		baseURL:    baseURL,
		path:       path,
	}
}

func (r *Resource[T]) collectionURL(relations Relations) string {
	u := r.baseURL + r.path
	if len(relations) == 0 {
		return u
	}
	query := url.Values{}
	relations.encode(query)
	return u + "?" + query.Encode()
}

func (r *Resource[T]) itemURL(id int64, relations Relations) string {
	u := fmt.Sprintf("%s%s/%d", r.baseURL, r.path, id)
	if len(relations) == 0 {
		return u
	}
	query := url.Values{}
	relations.encode(query)
	return u + "?" + query.Encode()
}

func (r *Resource[T]) List(ctx context.Context) ([]T, error) {
	var items []T
	if err := doJSON(ctx, r.httpClient, http.MethodGet, r.collectionURL(nil), nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}

func (r *Resource[T]) Get(ctx context.Context, id int64) (*T, error) {
	item := new(T)
	if err := doJSON(ctx, r.httpClient, http.MethodGet, r.itemURL(id, nil), nil, item); err != nil {
		return nil, err
	}
	return item, nil
}

func (r *Resource[T]) Create(ctx context.Context, payload interface{}, relations Relations) error {
	return doJSON(ctx, r.httpClient, http.MethodPost, r.collectionURL(relations), payload, nil)
}

func (r *Resource[T]) Update(ctx context.Context, id int64, payload interface{}, relations Relations) error {
	return doJSON(ctx, r.httpClient, http.MethodPut, r.itemURL(id, relations), payload, nil)
}

func (r *Resource[T]) Delete(ctx context.Context, id int64) error {
	return doJSON(ctx, r.httpClient, http.MethodDelete, r.itemURL(id, nil), nil, nil)
}

func doJSON(ctx context.Context, httpClient HTTPClient, method, rawURL string, payload, out interface{}) error {
	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := httpClient.Do(req)
	if err != nil {
		return &NetworkError{Err: err}
	}
	defer func() {
		_, _ = io.Copy(io.Discard, resp.Body)
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &ApiError{StatusCode: resp.StatusCode, Status: resp.Status}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding backend response: %w", err)
		}
	}
	return nil
}
