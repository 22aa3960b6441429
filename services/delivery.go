package services

import (
	"context"
	"log"
	"sort"

	"golang.org/x/time/rate"
)

// Delivery is a request-scoped candidate drop-off; it is never persisted.
type Delivery struct {
	Address string `json:"address"`
	Skids   int    `json:"skids"`
	Company string `json:"company"`
}

// RankedRoute is one scored candidate trip.
type RankedRoute struct {
	Companies   []string `json:"companies"`
	Addresses   []string `json:"addresses"` // optimized visit order
	TotalSkids  int      `json:"totalSkids"`
	DistanceKM  float64  `json:"distanceKm"`
	DurationMin float64  `json:"durationMin"`
}

// EnumerateFeasibleSubsets emits every non-empty combination of the input
// whose skid sum fits within maxSkids. Subsets come out ascending by size
// and, within a size, in lexicographic index order. The channel is closed
// when enumeration finishes or ctx is cancelled; callers consume it once.
//
// 2^N - 1 candidates before the skid filter. Batches are small (tens of
// deliveries at most), so no pruning beyond the sum check.
func EnumerateFeasibleSubsets(ctx context.Context, deliveries []Delivery, maxSkids int) <-chan []Delivery {
	out := make(chan []Delivery)

	go func() {
		defer close(out)
		n := len(deliveries)
		for size := 1; size <= n; size++ {
			idx := make([]int, size)
			for i := range idx {
				idx[i] = i
			}
			for {
				sum := 0
				for _, i := range idx {
					sum += deliveries[i].Skids
				}
				if sum <= maxSkids {
					subset := make([]Delivery, size)
					for j, i := range idx {
						subset[j] = deliveries[i]
					}
					select {
					case out <- subset:
					case <-ctx.Done():
						return
					}
				}

				// advance to the next index combination
				pos := size - 1
				for pos >= 0 && idx[pos] == n-size+pos {
					pos--
				}
				if pos < 0 {
					break
				}
				idx[pos]++
				for j := pos + 1; j < size; j++ {
					idx[j] = idx[j-1] + 1
				}
			}
		}
	}()

	return out
}

// DeliveryPlanner ranks feasible delivery batches using an external route
// optimizer. External calls are paced by a limiter so the upstream rate
// limit is respected; the pace is policy, not correctness.
type DeliveryPlanner struct {
	Optimizer RouteOptimizer
	Limiter   *rate.Limiter
}

// DefaultTopRoutes is how many ranked routes are returned when the caller
// doesn't say.
const DefaultTopRoutes = 5

func NewDeliveryPlanner(optimizer RouteOptimizer, callsPerSec float64) *DeliveryPlanner {
	if callsPerSec <= 0 {
		callsPerSec = 1
	}
	return &DeliveryPlanner{
		Optimizer: optimizer,
		Limiter:   rate.NewLimiter(rate.Limit(callsPerSec), 1),
	}
}

// FilterByDistance drops deliveries farther than maxKM from the warehouse
// origin. A failed distance lookup excludes the delivery; it is never
// treated as zero distance.
func (p *DeliveryPlanner) FilterByDistance(ctx context.Context, origin string, deliveries []Delivery, maxKM float64) ([]Delivery, error) {
	kept := make([]Delivery, 0, len(deliveries))
	for _, d := range deliveries {
		if err := p.Limiter.Wait(ctx); err != nil {
			return nil, err
		}
		meters, err := p.Optimizer.DistanceFrom(ctx, origin, d.Address)
		if err != nil {
			log.Printf("warning: distance lookup failed for %q, excluding: %v", d.Address, err)
			continue
		}
		if meters/1000 <= maxKM {
			kept = append(kept, d)
		}
	}
	return kept, nil
}

// RankRoutes scores every feasible subset with an optimized round trip
// from the warehouse and returns the top candidates: fullest truck first,
// shorter distance breaking ties. Subsets whose routing call fails are
// dropped and processing continues.
func (p *DeliveryPlanner) RankRoutes(ctx context.Context, origin string, deliveries []Delivery, maxSkids, topN int) ([]RankedRoute, error) {
	if topN <= 0 {
		topN = DefaultTopRoutes
	}

	var candidates []RankedRoute
	for subset := range EnumerateFeasibleSubsets(ctx, deliveries, maxSkids) {
		if err := p.Limiter.Wait(ctx); err != nil {
			return nil, err
		}

		stops := make([]string, len(subset))
		for i, d := range subset {
			stops[i] = d.Address
		}

		res, err := p.Optimizer.OptimizeRoute(ctx, origin, stops)
		if err != nil {
			log.Printf("warning: route optimization failed for %d stops, skipping subset: %v", len(stops), err)
			continue
		}

		ordered := subset
		if len(res.Order) == len(subset) {
			ordered = make([]Delivery, 0, len(subset))
			for _, i := range res.Order {
				if i >= 0 && i < len(subset) {
					ordered = append(ordered, subset[i])
				}
			}
		}

		route := RankedRoute{
			Companies:   make([]string, 0, len(ordered)),
			Addresses:   make([]string, 0, len(ordered)),
			DistanceKM:  Round1(res.DistanceMeters / 1000),
			DurationMin: Round1(res.DurationSeconds / 60),
		}
		for _, d := range ordered {
			route.Companies = append(route.Companies, d.Company)
			route.Addresses = append(route.Addresses, d.Address)
			route.TotalSkids += d.Skids
		}
		candidates = append(candidates, route)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].TotalSkids != candidates[j].TotalSkids {
			return candidates[i].TotalSkids > candidates[j].TotalSkids
		}
		return candidates[i].DistanceKM < candidates[j].DistanceKM
	})

	if len(candidates) > topN {
		candidates = candidates[:topN]
	}
	return candidates, nil
}
