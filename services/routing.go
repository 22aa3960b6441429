package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"
)

// RouteResult is what the routing collaborator reports for one trip.
type RouteResult struct {
	DistanceMeters  float64
	DurationSeconds float64
	// Order holds the optimized visiting order as indexes into the
	// waypoint list the caller sent.
	Order []int
}

// RouteOptimizer abstracts the external mapping/directions service.
type RouteOptimizer interface {
	// OptimizeRoute requests a round trip origin -> stops (order
	// optimized) -> origin.
	OptimizeRoute(ctx context.Context, origin string, stops []string) (RouteResult, error)
	// DistanceFrom returns the driving distance in meters between the
	// origin and a single address.
	DistanceFrom(ctx context.Context, origin, address string) (float64, error)
}

// RoutingClient talks to the directions API over HTTP.
type RoutingClient struct {
	Endpoint   string
	APIKey     string
	HTTPClient *http.Client
}

func NewRoutingClient() *RoutingClient {
	endpoint := os.Getenv("ROUTING_ENDPOINT")
	if endpoint == "" {
		endpoint = "https://routing.api.local/v1"
	}
	return &RoutingClient{
		Endpoint:   endpoint,
		APIKey:     os.Getenv("ROUTING_API_KEY"),
		HTTPClient: &http.Client{Timeout: 30 * time.Second},
	}
}

type routeRequest struct {
	Origin        string   `json:"origin"`
	Waypoints     []string `json:"waypoints"`
	RoundTrip     bool     `json:"roundTrip"`
	OptimizeOrder bool     `json:"optimizeOrder"`
}

type routeResponse struct {
	Status          string  `json:"status"`
	Message         string  `json:"message"`
	DistanceMeters  float64 `json:"distanceMeters"`
	DurationSeconds float64 `json:"durationSeconds"`
	WaypointOrder   []int   `json:"waypointOrder"`
}

type distanceRequest struct {
	Origin      string `json:"origin"`
	Destination string `json:"destination"`
}

type distanceResponse struct {
	Status         string  `json:"status"`
	Message        string  `json:"message"`
	DistanceMeters float64 `json:"distanceMeters"`
}

func (c *RoutingClient) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	b, _ := json.Marshal(payload)

	req, err := http.NewRequestWithContext(ctx, "POST", c.Endpoint+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("cannot build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.APIKey)

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("HTTP error %d: %s", resp.StatusCode, string(bodyBytes))
	}
	if err := json.Unmarshal(bodyBytes, out); err != nil {
		return fmt.Errorf("JSON parse error: %w", err)
	}
	return nil
}

func (c *RoutingClient) OptimizeRoute(ctx context.Context, origin string, stops []string) (RouteResult, error) {
	payload := routeRequest{
		Origin:        origin,
		Waypoints:     stops,
		RoundTrip:     true,
		OptimizeOrder: true,
	}

	var rr routeResponse
	if err := c.post(ctx, "/route", payload, &rr); err != nil {
		return RouteResult{}, err
	}
	if rr.Status != "OK" {
		return RouteResult{}, fmt.Errorf("API status error: %s - %s", rr.Status, rr.Message)
	}

	return RouteResult{
		DistanceMeters:  rr.DistanceMeters,
		DurationSeconds: rr.DurationSeconds,
		Order:           rr.WaypointOrder,
	}, nil
}

func (c *RoutingClient) DistanceFrom(ctx context.Context, origin, address string) (float64, error) {
	payload := distanceRequest{Origin: origin, Destination: address}

	var dr distanceResponse
	if err := c.post(ctx, "/distance", payload, &dr); err != nil {
		return 0, err
	}
	if dr.Status != "OK" {
		return 0, fmt.Errorf("API status error: %s - %s", dr.Status, dr.Message)
	}
	return dr.DistanceMeters, nil
}
