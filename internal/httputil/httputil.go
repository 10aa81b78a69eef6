// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the source adapters.
// Every outbound call is a single GET with one timeout; failure statuses
// map to sentinel errors so adapters can produce distinct outcomes for
// "not found" and "rate limited" without inspecting responses themselves.
package httputil

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// ErrNotFound reports an HTTP 404 from the upstream service.
var ErrNotFound = errors.New("not found")

// ErrRateLimited reports an HTTP 403, which the public APIs used here
// return when anonymous rate limits are exceeded.
var ErrRateLimited = errors.New("rate limit exceeded")

// Get issues a single GET request with the given context and User-Agent.
// On 2xx the response is returned with its body open; the caller closes
// it. 404 maps to ErrNotFound, 403 to ErrRateLimited, and any other
// non-2xx status to a generic error. There are no retries.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusNotFound:
		return nil, ErrNotFound
	case http.StatusForbidden:
		return nil, ErrRateLimited
	default:
		return nil, fmt.Errorf("HTTP %d", resp.StatusCode)
	}
}

// GetJSON issues a GET via Get and decodes the JSON body into v.
// A malformed body is a generic error.
func GetJSON(ctx context.Context, client *http.Client, url, userAgent string, v any) error {
	resp, err := Get(ctx, client, url, userAgent)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}
