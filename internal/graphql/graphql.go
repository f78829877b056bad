package graphql

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

type Request struct {
	Query         string         `json:"query"`
	OperationName string         `json:"operationName,omitempty"`
	Variables     map[string]any `json:"variables,omitempty"`
}

type Error struct {
	Message string `json:"message"`
	Path    []any  `json:"path,omitempty"`
}

// ErrorList is the server-side "errors" array of a GraphQL response.
// Its message is the first entry's message, verbatim.
type ErrorList []Error

func (l ErrorList) Error() string {
	if len(l) == 0 {
		return "graphql: empty error list"
	}
	return l[0].Message
}

type Response[T any] struct {
	Data   T         `json:"data"`
	Errors ErrorList `json:"errors"`
}

// HTTPError is returned for non-2xx responses. The message mirrors the
// response status line so it reads well when shown to a user.
type HTTPError struct {
	StatusCode int
	Status     string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("Response not successful: Received status code %d", e.StatusCode)
}

// maxErrorBody bounds how much of a failed response is inspected for a
// GraphQL errors payload.
const maxErrorBody = 64 << 10

// Do executes a GraphQL POST against the client's endpoint.
//
// Transport failures, non-2xx statuses, undecodable bodies and non-empty
// "errors" arrays are all returned as errors. For server-side errors the
// returned error is an ErrorList, so its text is the server's message.
func Do[T any](ctx context.Context, c *Client, req Request) (Response[T], *http.Response, error) {
	var zero Response[T]
	if ctx == nil {
		return zero, nil, fmt.Errorf("graphql: ctx is nil")
	}
	if c == nil || c.Endpoint == nil {
		return zero, nil, fmt.Errorf("graphql: client is nil")
	}
	if c.HTTP == nil {
		return zero, nil, fmt.Errorf("graphql: http client is nil")
	}
	if strings.TrimSpace(req.Query) == "" {
		return zero, nil, fmt.Errorf("graphql: query is empty")
	}

	body, err := json.Marshal(req)
	if err != nil {
		return zero, nil, fmt.Errorf("graphql: marshal request: %w", err)
	}

	hreq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return zero, nil, fmt.Errorf("graphql: build request: %w", err)
	}
	hreq.Header.Set("Content-Type", "application/json")
	hreq.Header.Set("Accept", "application/json")
	if c.userAgent != "" {
		hreq.Header.Set("User-Agent", c.userAgent)
	}

	hresp, err := c.HTTP.Do(hreq)
	if err != nil {
		// Surface the cause without the "Post <url>:" prefix.
		var uerr *url.Error
		if errors.As(err, &uerr) && uerr.Err != nil {
			return zero, nil, uerr.Err
		}
		return zero, nil, fmt.Errorf("graphql: do request: %w", err)
	}
	defer hresp.Body.Close()

	if hresp.StatusCode < 200 || hresp.StatusCode >= 300 {
		// Servers often answer validation failures with 4xx plus an
		// errors payload; prefer that message over the bare status.
		var out Response[json.RawMessage]
		raw, _ := io.ReadAll(io.LimitReader(hresp.Body, maxErrorBody))
		if json.Unmarshal(raw, &out) == nil && len(out.Errors) > 0 {
			return zero, hresp, out.Errors
		}
		return zero, hresp, &HTTPError{StatusCode: hresp.StatusCode, Status: hresp.Status}
	}

	var out Response[T]
	if err := json.NewDecoder(hresp.Body).Decode(&out); err != nil {
		return zero, hresp, fmt.Errorf("graphql: decode response: %w", err)
	}

	if len(out.Errors) > 0 {
		return zero, hresp, out.Errors
	}

	return out, hresp, nil
}
