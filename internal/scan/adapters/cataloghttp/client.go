// Package cataloghttp implements the catalog lookup port against the remote
// catalog search API.
package cataloghttp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"scanid/internal/scan/models"
	"scanid/pkg/domain"
	dErrors "scanid/pkg/domain-errors"
)

const defaultTimeout = 10 * time.Second

// Client handles communication with the catalog search API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiToken   string
}

// ClientOption configures a Client instance.
type ClientOption func(*Client)

// WithHTTPClient substitutes the underlying HTTP client, mainly for tests.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithAPIToken sets the bearer token sent on every request.
func WithAPIToken(token string) ClientOption {
	return func(c *Client) { c.apiToken = token }
}

// NewClient creates a catalog search client for the given base URL.
func NewClient(baseURL string, opts ...ClientOption) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("catalog base URL is required")
	}

	c := &Client{
		httpClient: &http.Client{Timeout: defaultTimeout},
		baseURL:    baseURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Lookup queries the catalog search endpoint. The remote response body is the
// wire shape of models.LookupResult.
func (c *Client) Lookup(ctx context.Context, orgID domain.OrganizationID, scanCtx models.Context, query string) (models.LookupResult, error) {
	params := url.Values{}
	params.Set("q", query)
	params.Set("context", string(scanCtx))
	reqURL := fmt.Sprintf("%s/v1/catalog/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return models.LookupResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to build catalog request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Organization-ID", orgID.String())
	if c.apiToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.LookupResult{}, dErrors.Wrap(err, dErrors.CodeUnavailable, "catalog request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return models.LookupResult{}, dErrors.Newf(dErrors.CodeUnavailable,
			"catalog returned status %d: %s", resp.StatusCode, body)
	}

	var result models.LookupResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return models.LookupResult{}, dErrors.Wrap(err, dErrors.CodeInternal, "failed to decode catalog response")
	}
	return result, nil
}
