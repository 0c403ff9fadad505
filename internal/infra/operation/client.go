package operation

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/vietddude/appstore/internal/core/domain"
	"github.com/vietddude/appstore/internal/metrics"
)

const (
	categoryPath = "/api/blob/category"
	imagesPath   = "/images/"

	// Bodies above this size are treated as malformed.
	maxBodySize = 4 << 20
)

// Client talks to the operation server over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	health     *healthTracker
}

// NewClient creates a client for the operation server at baseURL.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		health: newHealthTracker(),
	}
}

// BaseURL returns the server address without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ImageURL resolves a server-provided icon filename to an absolute URL.
func (c *Client) ImageURL(file string) string {
	return c.baseURL + imagesPath + file
}

// FetchCategories performs a single GET of the raw category list.
func (c *Client) FetchCategories(ctx context.Context) ([]domain.RawCategoryRecord, error) {
	var records []domain.RawCategoryRecord
	if err := c.getJSON(ctx, "fetch categories", categoryPath, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// GetHealth returns the client's health status.
func (c *Client) GetHealth() HealthStatus {
	return c.health.get()
}

// Close cleans up resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

func (c *Client) getJSON(ctx context.Context, op, path string, out any) error {
	start := time.Now()
	err := c.doGetJSON(ctx, op, path, out)
	latency := time.Since(start)

	metrics.OperationRequestLatency.WithLabelValues(path).Observe(latency.Seconds())
	if err != nil {
		c.health.recordFailure()
		metrics.OperationRequestsTotal.WithLabelValues(path, "error").Inc()
		return err
	}

	c.health.recordSuccess(latency)
	metrics.OperationRequestsTotal.WithLabelValues(path, "ok").Inc()
	return nil
}

func (c *Client) doGetJSON(ctx context.Context, op, path string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize+1))
	if err != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: errors.New(strings.TrimSpace(string(body)))}
	}
	if len(body) > maxBodySize {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: errors.New("response body too large")}
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("parse response: %w", err)}
	}
	return nil
}
