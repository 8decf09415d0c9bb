package router

import (
	"github.com/metroroute/engine/src/common/graph"
	"github.com/metroroute/engine/src/common/pqueue"
)

// ShortestPath runs Dijkstra's algorithm over g and returns the station id
// sequence from origin to target, inclusive, plus its total weight in
// meters. Routing a station to itself yields a single-element path of
// weight zero. ErrNoRoute is returned when target is unreachable.
//
// The queue has no decrease-key, so an improved distance is re-pushed and
// the visited set filters stale entries on pop. With non-negative weights
// the first pop of target is optimal, so the search stops there.
// Complexity is O((V + E) log V).
func ShortestPath(g graph.Graph, origin, target string) ([]string, float64, error) {
	if origin == target {
		return []string{origin}, 0, nil
	}

	dist := map[string]float64{origin: 0}
	prev := make(map[string]string)
	visited := make(map[string]bool)

	pq := pqueue.New[string]()
	pq.Push(origin, 0)

	for {
		u, ok := pq.Pop()
		if !ok {
			break
		}
		if visited[u] {
			continue
		}
		visited[u] = true

		if u == target {
			break
		}

		for _, e := range g[u] {
			alt := dist[u] + e.Weight
			if d, seen := dist[e.To]; !seen || alt < d {
				dist[e.To] = alt
				prev[e.To] = u
				pq.Push(e.To, alt)
			}
		}
	}

	if _, ok := prev[target]; !ok {
		return nil, 0, ErrNoRoute
	}

	path := []string{target}
	for at := target; at != origin; {
		at = prev[at]
		path = append(path, at)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return path, dist[target], nil
}
