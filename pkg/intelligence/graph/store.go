// Package graph maintains the persistent entity relationship graph: a
// weighted co-occurrence graph whose edges decay over time and reinforce on
// repeated observation. A Store is the only state that survives across
// orchestration calls; it is owned by the caller and passed into the engine
// explicitly.
package graph

import (
	"math"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/nmachari/weaver/pkg/domain"
)

const maxDecayDays = 30

// Config controls edge aging.
type Config struct {
	// DecayFactor is the per-day multiplicative decay applied to an edge's
	// strength before merging new evidence, in (0,1].
	DecayFactor float64 `yaml:"decay_factor" json:"decay_factor"`
}

// DefaultConfig returns the canonical graph parameters.
func DefaultConfig() Config {
	return Config{DecayFactor: 0.9}
}

// Validate rejects out-of-range parameters.
func (c Config) Validate() error {
	if c.DecayFactor <= 0 || c.DecayFactor > 1 {
		return domain.NewConfigError("graph", "decay_factor", "must be in (0,1]")
	}
	return nil
}

// edgeKey is the normalized unordered entity pair.
type edgeKey struct {
	a, b string
}

func keyFor(a, b domain.Entity) edgeKey {
	if a.Key() <= b.Key() {
		return edgeKey{a: a.Key(), b: b.Key()}
	}
	return edgeKey{a: b.Key(), b: a.Key()}
}

// Store is the relationship graph. All methods are safe for concurrent use;
// an internal RWMutex serializes mutation so independent orchestrations may
// share one Store. Edges are never deleted; unbounded growth is a known
// limitation and the caller's retention concern.
type Store struct {
	mu     sync.RWMutex
	edges  map[edgeKey]*domain.Edge
	config Config
	logger *zap.Logger

	totalObservations int64
}

// NewStore validates the config and returns an empty graph.
func NewStore(config Config, logger *zap.Logger) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		edges:  make(map[edgeKey]*domain.Edge),
		config: config,
		logger: logger,
	}, nil
}

// Update merges candidate edges into the graph. Existing edges follow the
// decay-then-merge rule: strength becomes
//
//	(old * decay^min(daysSinceLastObserved, 30) + incoming) / 2
//
// with evidence count incremented and last_observed advanced. New pairs are
// inserted as given. Strength is never assigned directly.
func (s *Store) Update(edges []domain.Edge, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, incoming := range edges {
		key := keyFor(incoming.A, incoming.B)
		s.totalObservations++

		existing, ok := s.edges[key]
		if !ok {
			stored := incoming
			stored.Strength = clamp01(stored.Strength)
			if stored.EvidenceCount < 1 {
				stored.EvidenceCount = 1
			}
			s.edges[key] = &stored
			continue
		}

		decayed := existing.Strength * s.decayFor(existing.LastObserved, now)
		existing.Strength = clamp01((decayed + incoming.Strength) / 2)
		existing.EvidenceCount++
		if incoming.LastObserved.After(existing.LastObserved) {
			existing.LastObserved = incoming.LastObserved
		}
	}

	if s.logger != nil {
		s.logger.Debug("graph updated",
			zap.Int("incoming_edges", len(edges)),
			zap.Int("total_edges", len(s.edges)))
	}
}

// DecayOnly ages every edge without new evidence. Strength is
// non-increasing under this call.
func (s *Store) DecayOnly(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, edge := range s.edges {
		edge.Strength = clamp01(edge.Strength * s.decayFor(edge.LastObserved, now))
	}
}

func (s *Store) decayFor(lastObserved, now time.Time) float64 {
	days := int(now.Sub(lastObserved).Hours() / 24)
	if days < 0 {
		days = 0
	}
	if days > maxDecayDays {
		days = maxDecayDays
	}
	return math.Pow(s.config.DecayFactor, float64(days))
}

// Centrality ranks entities by weighted degree: the sum of incident edge
// strengths. Ties break on entity key for determinism.
func (s *Store) Centrality(topK int) []domain.CentralEntity {
	s.mu.RLock()
	defer s.mu.RUnlock()

	scores := make(map[string]float64)
	entities := make(map[string]domain.Entity)
	for _, edge := range s.edges {
		scores[edge.A.Key()] += edge.Strength
		scores[edge.B.Key()] += edge.Strength
		entities[edge.A.Key()] = edge.A
		entities[edge.B.Key()] = edge.B
	}

	ranked := make([]domain.CentralEntity, 0, len(scores))
	for key, score := range scores {
		ranked = append(ranked, domain.CentralEntity{Entity: entities[key], Score: score})
	}
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Entity.Key() < ranked[j].Entity.Key()
	})
	if topK > 0 && len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

// Communities returns connected components with at least minSize members,
// treating edges as unweighted and undirected. Components carry their
// internal density (actual internal edges over possible internal edges) and
// are sorted by size descending, capped at the five largest.
func (s *Store) Communities(minSize int) []domain.Community {
	s.mu.RLock()
	defer s.mu.RUnlock()

	adjacency := s.adjacencyLocked()
	visited := make(map[string]bool, len(adjacency))

	var communities []domain.Community
	for _, start := range sortedKeys(adjacency) {
		if visited[start] {
			continue
		}
		component := bfsComponent(start, adjacency, visited)
		if len(component) < minSize {
			continue
		}
		communities = append(communities, domain.Community{
			Members:         s.membersLocked(component),
			Size:            len(component),
			InternalDensity: s.internalDensityLocked(component),
		})
	}

	sort.SliceStable(communities, func(i, j int) bool {
		if communities[i].Size != communities[j].Size {
			return communities[i].Size > communities[j].Size
		}
		return communities[i].Members[0].Key() < communities[j].Members[0].Key()
	})
	if len(communities) > 5 {
		communities = communities[:5]
	}
	return communities
}

// Density is edge_count / (node_count * (node_count-1) / 2), defined as 0
// with fewer than two nodes.
func (s *Store) Density() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.densityLocked()
}

func (s *Store) densityLocked() float64 {
	nodes := s.nodeCountLocked()
	if nodes < 2 {
		return 0.0
	}
	possible := float64(nodes*(nodes-1)) / 2
	return float64(len(s.edges)) / possible
}

// Edges returns a snapshot of all edges sorted by strength descending, then
// by pair key.
func (s *Store) Edges() []domain.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	edges := make([]domain.Edge, 0, len(s.edges))
	for _, edge := range s.edges {
		edges = append(edges, *edge)
	}
	sort.Slice(edges, func(i, j int) bool {
		if edges[i].Strength != edges[j].Strength {
			return edges[i].Strength > edges[j].Strength
		}
		return keyFor(edges[i].A, edges[i].B).a+keyFor(edges[i].A, edges[i].B).b <
			keyFor(edges[j].A, edges[j].B).a+keyFor(edges[j].A, edges[j].B).b
	})
	return edges
}

// EdgeCount returns the number of distinct entity pairs.
func (s *Store) EdgeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.edges)
}

// NodeCount returns the number of distinct entities.
func (s *Store) NodeCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.nodeCountLocked()
}

func (s *Store) nodeCountLocked() int {
	nodes := make(map[string]bool, 2*len(s.edges))
	for _, edge := range s.edges {
		nodes[edge.A.Key()] = true
		nodes[edge.B.Key()] = true
	}
	return len(nodes)
}

func (s *Store) adjacencyLocked() map[string][]string {
	adjacency := make(map[string][]string)
	for _, edge := range s.edges {
		adjacency[edge.A.Key()] = append(adjacency[edge.A.Key()], edge.B.Key())
		adjacency[edge.B.Key()] = append(adjacency[edge.B.Key()], edge.A.Key())
	}
	return adjacency
}

func (s *Store) membersLocked(component []string) []domain.Entity {
	entities := make(map[string]domain.Entity, 2*len(s.edges))
	for _, edge := range s.edges {
		entities[edge.A.Key()] = edge.A
		entities[edge.B.Key()] = edge.B
	}
	members := make([]domain.Entity, 0, len(component))
	for _, key := range component {
		members = append(members, entities[key])
	}
	sort.Slice(members, func(i, j int) bool { return members[i].Key() < members[j].Key() })
	return members
}

func (s *Store) internalDensityLocked(component []string) float64 {
	if len(component) < 2 {
		return 0.0
	}
	inside := make(map[string]bool, len(component))
	for _, key := range component {
		inside[key] = true
	}
	actual := 0
	for _, edge := range s.edges {
		if inside[edge.A.Key()] && inside[edge.B.Key()] {
			actual++
		}
	}
	possible := float64(len(component)*(len(component)-1)) / 2
	return float64(actual) / possible
}

func bfsComponent(start string, adjacency map[string][]string, visited map[string]bool) []string {
	var component []string
	queue := []string{start}
	visited[start] = true
	for len(queue) > 0 {
		node := queue[0]
		queue = queue[1:]
		component = append(component, node)
		for _, neighbor := range adjacency[node] {
			if !visited[neighbor] {
				visited[neighbor] = true
				queue = append(queue, neighbor)
			}
		}
	}
	return component
}

func sortedKeys(adjacency map[string][]string) []string {
	keys := make([]string, 0, len(adjacency))
	for key := range adjacency {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
