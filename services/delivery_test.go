package services

import (
	"context"
	"errors"
	"strings"
	"testing"
)

// fakeOptimizer is an in-memory routing collaborator. Distances are per
// address; a route's distance defaults to the sum of its stop distances.
type fakeOptimizer struct {
	distances map[string]float64     // address -> meters from origin
	routes    map[string]RouteResult // "a|b" -> canned result
	failFor   map[string]bool        // "a|b" -> return an error
	calls     int
}

func routeKey(stops []string) string { return strings.Join(stops, "|") }

func (f *fakeOptimizer) OptimizeRoute(ctx context.Context, origin string, stops []string) (RouteResult, error) {
	f.calls++
	key := routeKey(stops)
	if f.failFor[key] {
		return RouteResult{}, errors.New("routing service unavailable")
	}
	if r, ok := f.routes[key]; ok {
		return r, nil
	}
	var total float64
	for _, s := range stops {
		total += f.distances[s]
	}
	return RouteResult{DistanceMeters: total, DurationSeconds: total / 10}, nil
}

func (f *fakeOptimizer) DistanceFrom(ctx context.Context, origin, address string) (float64, error) {
	d, ok := f.distances[address]
	if !ok {
		return 0, errors.New("address not resolvable")
	}
	return d, nil
}

func newTestPlanner(opt RouteOptimizer) *DeliveryPlanner {
	// fast pace so tests don't wait on the limiter
	return NewDeliveryPlanner(opt, 10000)
}

func companies(subset []Delivery) string {
	names := make([]string, len(subset))
	for i, d := range subset {
		names[i] = d.Company
	}
	return strings.Join(names, ",")
}

// TestEnumerateFeasibleSubsets mirrors the canonical example: skids
// {2,3,6} with a 5-skid cap yields {A}, {B}, {A,B} and nothing else.
func TestEnumerateFeasibleSubsets(t *testing.T) {
	deliveries := []Delivery{
		{Company: "A", Address: "a", Skids: 2},
		{Company: "B", Address: "b", Skids: 3},
		{Company: "C", Address: "c", Skids: 6},
	}

	var got []string
	for subset := range EnumerateFeasibleSubsets(context.Background(), deliveries, 5) {
		got = append(got, companies(subset))
	}

	want := []string{"A", "B", "A,B"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d feasible subsets, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Subset %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestEnumerateOrdering: ascending by size, lexicographic index order
// within a size.
func TestEnumerateOrdering(t *testing.T) {
	deliveries := []Delivery{
		{Company: "A", Skids: 1},
		{Company: "B", Skids: 1},
		{Company: "C", Skids: 1},
	}

	var got []string
	for subset := range EnumerateFeasibleSubsets(context.Background(), deliveries, 10) {
		got = append(got, companies(subset))
	}

	want := []string{"A", "B", "C", "A,B", "A,C", "B,C", "A,B,C"}
	if len(got) != len(want) {
		t.Fatalf("Expected %d subsets, got %d: %v", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Subset %d = %q, want %q", i, got[i], want[i])
		}
	}
}

// TestEnumerateEmptyInput: no deliveries, no subsets, channel closes.
func TestEnumerateEmptyInput(t *testing.T) {
	count := 0
	for range EnumerateFeasibleSubsets(context.Background(), nil, 5) {
		count++
	}
	if count != 0 {
		t.Errorf("Expected no subsets for empty input, got %d", count)
	}
}

// TestRankRoutesTieBreak: equal skid loads tie-break on shorter distance.
func TestRankRoutesTieBreak(t *testing.T) {
	opt := &fakeOptimizer{
		distances: map[string]float64{"addr-a": 40000, "addr-b": 35000},
	}
	planner := newTestPlanner(opt)

	deliveries := []Delivery{
		{Company: "A", Address: "addr-a", Skids: 5},
		{Company: "B", Address: "addr-b", Skids: 5},
	}

	// maxSkids 5 keeps only the singletons, both fully loaded
	routes, err := planner.RankRoutes(context.Background(), "warehouse", deliveries, 5, 0)
	if err != nil {
		t.Fatalf("RankRoutes failed: %v", err)
	}
	if len(routes) != 2 {
		t.Fatalf("Expected 2 ranked routes, got %d", len(routes))
	}

	if routes[0].Companies[0] != "B" {
		t.Errorf("Expected the 35km candidate to rank first, got %v", routes[0].Companies)
	}
	if routes[0].DistanceKM != 35.0 {
		t.Errorf("DistanceKM = %v, want 35.0", routes[0].DistanceKM)
	}
	if routes[1].DistanceKM != 40.0 {
		t.Errorf("DistanceKM = %v, want 40.0", routes[1].DistanceKM)
	}
}

// TestRankRoutesPrefersFullerTruck: higher skid totals outrank shorter
// distances.
func TestRankRoutesPrefersFullerTruck(t *testing.T) {
	opt := &fakeOptimizer{
		distances: map[string]float64{"addr-a": 10000, "addr-b": 90000},
	}
	planner := newTestPlanner(opt)

	deliveries := []Delivery{
		{Company: "A", Address: "addr-a", Skids: 2},
		{Company: "B", Address: "addr-b", Skids: 4},
	}

	routes, err := planner.RankRoutes(context.Background(), "warehouse", deliveries, 6, 0)
	if err != nil {
		t.Fatalf("RankRoutes failed: %v", err)
	}
	if len(routes) != 3 {
		t.Fatalf("Expected 3 ranked routes, got %d", len(routes))
	}

	if routes[0].TotalSkids != 6 {
		t.Errorf("Top route TotalSkids = %d, want 6 (fullest truck first)", routes[0].TotalSkids)
	}
}

// TestRankRoutesDropsFailedSubsets: a failing routing call drops only
// that subset; the rest are still ranked.
func TestRankRoutesDropsFailedSubsets(t *testing.T) {
	opt := &fakeOptimizer{
		distances: map[string]float64{"addr-a": 10000, "addr-b": 20000},
		failFor:   map[string]bool{"addr-a": true},
	}
	planner := newTestPlanner(opt)

	deliveries := []Delivery{
		{Company: "A", Address: "addr-a", Skids: 3},
		{Company: "B", Address: "addr-b", Skids: 3},
	}

	routes, err := planner.RankRoutes(context.Background(), "warehouse", deliveries, 3, 0)
	if err != nil {
		t.Fatalf("RankRoutes failed: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("Expected 1 ranked route after dropping the failure, got %d", len(routes))
	}
	if routes[0].Companies[0] != "B" {
		t.Errorf("Expected B to survive, got %v", routes[0].Companies)
	}
}

// TestRankRoutesTopN trims the ranking to the requested size.
func TestRankRoutesTopN(t *testing.T) {
	opt := &fakeOptimizer{
		distances: map[string]float64{"a": 1000, "b": 2000, "c": 3000},
	}
	planner := newTestPlanner(opt)

	deliveries := []Delivery{
		{Company: "A", Address: "a", Skids: 1},
		{Company: "B", Address: "b", Skids: 1},
		{Company: "C", Address: "c", Skids: 1},
	}

	routes, err := planner.RankRoutes(context.Background(), "warehouse", deliveries, 10, 2)
	if err != nil {
		t.Fatalf("RankRoutes failed: %v", err)
	}
	if len(routes) != 2 {
		t.Errorf("Expected topN=2 routes, got %d", len(routes))
	}
}

// TestRankRoutesAppliesOptimizedOrder: stops are re-sequenced to the
// optimizer's returned order.
func TestRankRoutesAppliesOptimizedOrder(t *testing.T) {
	opt := &fakeOptimizer{
		distances: map[string]float64{"a": 1000, "b": 2000},
		routes: map[string]RouteResult{
			"a|b": {DistanceMeters: 12345, DurationSeconds: 1800, Order: []int{1, 0}},
		},
	}
	planner := newTestPlanner(opt)

	deliveries := []Delivery{
		{Company: "A", Address: "a", Skids: 1},
		{Company: "B", Address: "b", Skids: 1},
	}

	routes, err := planner.RankRoutes(context.Background(), "warehouse", deliveries, 2, 1)
	if err != nil {
		t.Fatalf("RankRoutes failed: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("Expected 1 route, got %d", len(routes))
	}

	top := routes[0]
	if top.Addresses[0] != "b" || top.Addresses[1] != "a" {
		t.Errorf("Expected optimized order [b a], got %v", top.Addresses)
	}
	if top.DistanceKM != 12.3 {
		t.Errorf("DistanceKM = %v, want 12.3 (one decimal)", top.DistanceKM)
	}
	if top.DurationMin != 30.0 {
		t.Errorf("DurationMin = %v, want 30.0", top.DurationMin)
	}
}

// TestFilterByDistance: far addresses and failed lookups are excluded,
// never treated as zero distance.
func TestFilterByDistance(t *testing.T) {
	opt := &fakeOptimizer{
		distances: map[string]float64{"near": 30000, "far": 120000},
	}
	planner := newTestPlanner(opt)

	deliveries := []Delivery{
		{Company: "Near", Address: "near", Skids: 1},
		{Company: "Far", Address: "far", Skids: 1},
		{Company: "Unknown", Address: "nowhere", Skids: 1},
	}

	kept, err := planner.FilterByDistance(context.Background(), "warehouse", deliveries, 50)
	if err != nil {
		t.Fatalf("FilterByDistance failed: %v", err)
	}
	if len(kept) != 1 || kept[0].Company != "Near" {
		t.Errorf("Expected only the near delivery to survive, got %v", kept)
	}
}

// TestRankRoutesCancellation: a cancelled context aborts the run with an
// error instead of returning a partial ranking.
func TestRankRoutesCancellation(t *testing.T) {
	opt := &fakeOptimizer{distances: map[string]float64{"a": 1000}}
	planner := newTestPlanner(opt)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := planner.RankRoutes(ctx, "warehouse", []Delivery{{Company: "A", Address: "a", Skids: 1}}, 5, 0)
	if err == nil {
		t.Fatal("Expected an error from a cancelled context")
	}
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Expected context.Canceled, got %v", err)
	}
}
