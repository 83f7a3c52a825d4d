package openmeteo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mingyue/astro-insights/internal/domain/natal"
)

const defaultBaseURL = "https://geocoding-api.open-meteo.com/v1/search"

const defaultTimeout = 10 * time.Second

// Client resolves place names using the Open-Meteo geocoding API. Any
// provider with the same "free-text name in, coordinates out" contract is
// substitutable behind natal.Geocoder.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient builds an API client.
func NewClient(baseURL string, timeout time.Duration) *Client {
	endpoint := strings.TrimSpace(baseURL)
	if endpoint == "" {
		endpoint = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(endpoint, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Geocode resolves a place name to coordinates. Zero results map to
// natal.ErrPlaceNotFound; transport and decoding failures are returned
// as-is for the caller to classify.
func (c *Client) Geocode(ctx context.Context, place string) (natal.Coordinates, error) {
	trimmed := strings.TrimSpace(place)
	if trimmed == "" {
		return natal.Coordinates{}, fmt.Errorf("empty place name: %w", natal.ErrPlaceNotFound)
	}

	endpoint := fmt.Sprintf("%s?name=%s&count=1&language=en&format=json", c.baseURL, url.QueryEscape(trimmed))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return natal.Coordinates{}, fmt.Errorf("build geocoding request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return natal.Coordinates{}, fmt.Errorf("geocoding request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return natal.Coordinates{}, fmt.Errorf("geocoding request error: status=%d body=%s", resp.StatusCode, string(payload))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return natal.Coordinates{}, fmt.Errorf("read geocoding response: %w", err)
	}

	var raw apiResponse
	if err := json.Unmarshal(body, &raw); err != nil {
		return natal.Coordinates{}, fmt.Errorf("decode geocoding response: %w", err)
	}

	if len(raw.Results) == 0 {
		return natal.Coordinates{}, fmt.Errorf("place %q: %w", trimmed, natal.ErrPlaceNotFound)
	}

	first := raw.Results[0]
	return natal.Coordinates{
		Latitude:  first.Latitude,
		Longitude: first.Longitude,
	}, nil
}

type apiResponse struct {
	Results []result `json:"results"`
}

type result struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
}

var _ natal.Geocoder = (*Client)(nil)
