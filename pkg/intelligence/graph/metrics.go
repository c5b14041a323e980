package graph

import (
	"sort"

	"github.com/nmachari/weaver/pkg/domain"
)

// Metrics computes whole-graph statistics. Diameter and clustering
// coefficient are computed for real: diameter as the maximum BFS
// eccentricity within the largest connected component (unweighted hops),
// clustering coefficient as the closed-to-connected triplet ratio. Node
// counts are bounded by the gazetteer, so the traversals stay cheap.
func (s *Store) Metrics() domain.GraphMetrics {
	s.mu.RLock()
	defer s.mu.RUnlock()

	nodeCount := s.nodeCountLocked()
	metrics := domain.GraphMetrics{
		NodeCount: nodeCount,
		EdgeCount: len(s.edges),
	}
	if nodeCount == 0 {
		return metrics
	}

	metrics.AverageDegree = 2 * float64(len(s.edges)) / float64(nodeCount)

	neighbors := neighborSets(s.adjacencyLocked())
	metrics.Diameter = diameter(neighbors)
	metrics.ClusteringCoefficient = clusteringCoefficient(neighbors)
	return metrics
}

func neighborSets(adjacency map[string][]string) map[string]map[string]bool {
	sets := make(map[string]map[string]bool, len(adjacency))
	for node, list := range adjacency {
		set := make(map[string]bool, len(list))
		for _, neighbor := range list {
			if neighbor != node {
				set[neighbor] = true
			}
		}
		sets[node] = set
	}
	return sets
}

// diameter is the longest shortest path within the largest component.
func diameter(neighbors map[string]map[string]bool) int {
	largest := largestComponent(neighbors)
	maxEccentricity := 0
	for _, node := range largest {
		if ecc := eccentricity(node, neighbors); ecc > maxEccentricity {
			maxEccentricity = ecc
		}
	}
	return maxEccentricity
}

func largestComponent(neighbors map[string]map[string]bool) []string {
	visited := make(map[string]bool, len(neighbors))
	var largest []string

	nodes := make([]string, 0, len(neighbors))
	for node := range neighbors {
		nodes = append(nodes, node)
	}
	sort.Strings(nodes)

	for _, start := range nodes {
		if visited[start] {
			continue
		}
		var component []string
		queue := []string{start}
		visited[start] = true
		for len(queue) > 0 {
			node := queue[0]
			queue = queue[1:]
			component = append(component, node)
			for neighbor := range neighbors[node] {
				if !visited[neighbor] {
					visited[neighbor] = true
					queue = append(queue, neighbor)
				}
			}
		}
		if len(component) > len(largest) {
			largest = component
		}
	}
	return largest
}

// eccentricity is the hop count to the farthest reachable node.
func eccentricity(start string, neighbors map[string]map[string]bool) int {
	depths := map[string]int{start: 0}
	queue := []string{start}
	farthest := 0
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		for neighbor := range neighbors[node] {
			if _, seen := depths[neighbor]; !seen {
				depths[neighbor] = depths[node] + 1
				if depths[neighbor] > farthest {
					farthest = depths[neighbor]
				}
				queue = append(queue, neighbor)
			}
		}
	}
	return farthest
}

// clusteringCoefficient is the ratio of closed to connected triplets, 0
// for graphs with no triplet. A triangle contributes one closed triplet
// per corner.
func clusteringCoefficient(neighbors map[string]map[string]bool) float64 {
	triplets := 0
	closed := 0
	for _, set := range neighbors {
		list := make([]string, 0, len(set))
		for neighbor := range set {
			list = append(list, neighbor)
		}
		for i := 0; i < len(list); i++ {
			for j := i + 1; j < len(list); j++ {
				triplets++
				if neighbors[list[i]][list[j]] {
					closed++
				}
			}
		}
	}
	if triplets == 0 {
		return 0.0
	}
	return float64(closed) / float64(triplets)
}
