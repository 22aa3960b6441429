package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestRoutingClient(endpoint string) *RoutingClient {
	return &RoutingClient{
		Endpoint:   endpoint,
		APIKey:     "test-key",
		HTTPClient: &http.Client{Timeout: 5 * time.Second},
	}
}

// TestOptimizeRouteOK parses a successful routing response, including the
// optimized waypoint order.
func TestOptimizeRouteOK(t *testing.T) {
	var gotReq routeRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/route" {
			t.Errorf("Expected path /route, got %s", r.URL.Path)
		}
		if r.Header.Get("x-api-key") != "test-key" {
			t.Errorf("Expected api key header, got %q", r.Header.Get("x-api-key"))
		}
		_ = json.NewDecoder(r.Body).Decode(&gotReq)

		_ = json.NewEncoder(w).Encode(routeResponse{
			Status:          "OK",
			DistanceMeters:  42500,
			DurationSeconds: 3120,
			WaypointOrder:   []int{1, 0},
		})
	}))
	defer server.Close()

	client := newTestRoutingClient(server.URL)
	res, err := client.OptimizeRoute(context.Background(), "warehouse", []string{"a", "b"})
	if err != nil {
		t.Fatalf("OptimizeRoute failed: %v", err)
	}

	if !gotReq.RoundTrip || !gotReq.OptimizeOrder {
		t.Errorf("Expected roundTrip+optimizeOrder request, got %+v", gotReq)
	}
	if res.DistanceMeters != 42500 {
		t.Errorf("DistanceMeters = %v, want 42500", res.DistanceMeters)
	}
	if len(res.Order) != 2 || res.Order[0] != 1 {
		t.Errorf("Order = %v, want [1 0]", res.Order)
	}
}

// TestOptimizeRouteNonOKStatus: an application-level error status is an
// error even on HTTP 200.
func TestOptimizeRouteNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(routeResponse{Status: "OVER_QUERY_LIMIT", Message: "slow down"})
	}))
	defer server.Close()

	client := newTestRoutingClient(server.URL)
	if _, err := client.OptimizeRoute(context.Background(), "warehouse", []string{"a"}); err == nil {
		t.Fatal("Expected an error for non-OK status")
	}
}

// TestOptimizeRouteHTTPError: non-2xx responses are errors.
func TestOptimizeRouteHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := newTestRoutingClient(server.URL)
	if _, err := client.OptimizeRoute(context.Background(), "warehouse", []string{"a"}); err == nil {
		t.Fatal("Expected an error for HTTP 500")
	}
}

// TestOptimizeRouteMalformedJSON: unparsable bodies are errors, not zero
// results.
func TestOptimizeRouteMalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("{not json"))
	}))
	defer server.Close()

	client := newTestRoutingClient(server.URL)
	if _, err := client.OptimizeRoute(context.Background(), "warehouse", []string{"a"}); err == nil {
		t.Fatal("Expected an error for malformed JSON")
	}
}

// TestDistanceFromOK parses a distance lookup.
func TestDistanceFromOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/distance" {
			t.Errorf("Expected path /distance, got %s", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode(distanceResponse{Status: "OK", DistanceMeters: 31250})
	}))
	defer server.Close()

	client := newTestRoutingClient(server.URL)
	meters, err := client.DistanceFrom(context.Background(), "warehouse", "somewhere")
	if err != nil {
		t.Fatalf("DistanceFrom failed: %v", err)
	}
	if meters != 31250 {
		t.Errorf("DistanceFrom = %v, want 31250", meters)
	}
}
