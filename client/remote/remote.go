// Package remote speaks the storefront backend's cart and wishlist wire
// contract. It owns URLs, payload shapes, and error translation; the sync
// controllers never see raw HTTP.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/jyothimogili456/storesync/pkg/httpclient"
)

// Doer executes HTTP requests. Both httpclient.Client and
// httpclient.CircuitBreakerClient satisfy this.
type Doer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// client holds what the two collection APIs share: base URL, transport, and
// the request plumbing.
type client struct {
	baseURL string
	http    Doer
}

func newClient(baseURL string, doer Doer) client {
	return client{baseURL: strings.TrimRight(baseURL, "/"), http: doer}
}

// do issues a request with the bearer credential attached and, on non-2xx,
// translates the body into an AppError. The response is returned open for
// the caller to decode; callers must close it.
func (c client) do(ctx context.Context, method, token, path string, body any, serviceName string) (*http.Response, error) {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("marshal %s request: %w", serviceName, err)
		}
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", serviceName, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", serviceName, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, httpclient.ParseResponseError(resp, serviceName)
	}

	return resp, nil
}

// discard drains and closes a response whose body the caller does not need.
func discard(resp *http.Response) {
	if resp != nil {
		_ = resp.Body.Close()
	}
}

func pathEscape(s string) string {
	return url.PathEscape(s)
}

// decodeList handles the backend's two list shapes: a bare JSON array, or an
// object wrapping the array under the given key.
func decodeList[T any](resp *http.Response, envelopeKey string) ([]T, error) {
	defer discard(resp)

	raw, err := jsonRaw(resp)
	if err != nil {
		return nil, err
	}

	var items []T
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	inner, ok := envelope[envelopeKey]
	if !ok {
		return nil, fmt.Errorf("decode list response: missing %q field", envelopeKey)
	}
	if err := json.Unmarshal(inner, &items); err != nil {
		return nil, fmt.Errorf("decode list response: %w", err)
	}
	return items, nil
}

func jsonRaw(resp *http.Response) (json.RawMessage, error) {
	var raw json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("read response body: %w", err)
	}
	return raw, nil
}
