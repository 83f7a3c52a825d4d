package openmeteo

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/mingyue/astro-insights/internal/domain/natal"
)

func TestGeocodeSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Singapore", r.URL.Query().Get("name"))
		require.Equal(t, "1", r.URL.Query().Get("count"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"results":[{"name":"Singapore","latitude":1.35208,"longitude":103.81984,"country":"Singapore"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	coords, err := client.Geocode(context.Background(), "Singapore")
	require.NoError(t, err)
	require.InDelta(t, 1.35208, coords.Latitude, 1e-9)
	require.InDelta(t, 103.81984, coords.Longitude, 1e-9)
}

func TestGeocodeNoResults(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"generationtime_ms":0.5}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Geocode(context.Background(), "Atlantis")
	require.Error(t, err)
	require.True(t, errors.Is(err, natal.ErrPlaceNotFound))
	require.Contains(t, err.Error(), "Atlantis")
}

func TestGeocodeUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "upstream exploded", http.StatusBadGateway)
	}))
	defer server.Close()

	client := NewClient(server.URL, time.Second)
	_, err := client.Geocode(context.Background(), "Singapore")
	require.Error(t, err)
	require.False(t, errors.Is(err, natal.ErrPlaceNotFound))
	require.Contains(t, err.Error(), "status=502")
}

func TestGeocodeEmptyPlace(t *testing.T) {
	client := NewClient("", time.Second)
	_, err := client.Geocode(context.Background(), "   ")
	require.Error(t, err)
	require.True(t, errors.Is(err, natal.ErrPlaceNotFound))
}
