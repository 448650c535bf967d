// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared across source adapters.
package httputil

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"net/http"
)

// GetJSON issues a GET request with the given headers and decodes the JSON
// response body into v. Non-200 statuses are returned as errors so callers
// can contain them as "no result".
func GetJSON(ctx context.Context, client *http.Client, url string, header http.Header, v any) error {
	resp, err := get(ctx, client, url, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing JSON response from %s: %w", url, err)
	}
	return nil
}

// GetXML issues a GET request with the given headers and decodes the XML
// response body into v.
func GetXML(ctx context.Context, client *http.Client, url string, header http.Header, v any) error {
	resp, err := get(ctx, client, url, header)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if err := xml.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("parsing XML response from %s: %w", url, err)
	}
	return nil
}

func get(ctx context.Context, client *http.Client, url string, header http.Header) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("HTTP request to %s: %w", url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return resp, nil
}

// Header builds a request header carrying the given User-Agent. Extra
// key/value pairs are added in order.
func Header(userAgent string, kv ...string) http.Header {
	h := http.Header{}
	if userAgent != "" {
		h.Set("User-Agent", userAgent)
	}
	for i := 0; i+1 < len(kv); i += 2 {
		h.Set(kv[i], kv[i+1])
	}
	return h
}
