// Package geo provides the best-effort location lookup used for delivery
// orders. Lookups are informational only; every failure is non-fatal.
package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gokulraj121/karikalan-restaurant/internal/models"
)

const defaultBaseURL = "http://ip-api.com/json"

// Client resolves approximate coordinates for a client IP address.
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient creates a locator client with a short timeout; a slow lookup
// must not hold up order submission.
func NewClient() *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 3 * time.Second},
		baseURL:    defaultBaseURL,
	}
}

// NewClientWithBaseURL creates a client against a specific endpoint.
func NewClientWithBaseURL(baseURL string) *Client {
	c := NewClient()
	c.baseURL = baseURL
	return c
}

type lookupResponse struct {
	Status  string  `json:"status"`
	Message string  `json:"message"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
}

// LocateIP looks up coordinates for ip.
func (c *Client) LocateIP(ctx context.Context, ip string) (*models.Location, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/%s", c.baseURL, ip), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build lookup request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("location lookup failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("location lookup returned status %d", resp.StatusCode)
	}

	var body lookupResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode lookup response: %w", err)
	}
	if body.Status != "success" {
		return nil, fmt.Errorf("location lookup rejected: %s", body.Message)
	}

	return &models.Location{
		Lat: strconv.FormatFloat(body.Lat, 'f', 4, 64),
		Lng: strconv.FormatFloat(body.Lon, 'f', 4, 64),
	}, nil
}
