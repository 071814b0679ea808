// Package route builds deterministic chapter node sequences. Generation is
// a pure function of seed, chapter index, and chapter inputs: the chapter
// RNG draws in a fixed order (shuffle first, then tags in node-index order),
// so the same inputs always yield the same node list.
package route

import (
	"fmt"

	"github.com/louisbranch/gitdungeon/internal/random"
)

// Kind is the node type of one route step.
type Kind string

const (
	KindBattle   Kind = "battle"
	KindEvent    Kind = "event"
	KindShop     Kind = "shop"
	KindRest     Kind = "rest"
	KindElite Kind = "elite"
	KindBoss  Kind = "boss"
)

// Tag biases path selection toward a play style.
type Tag string

const (
	TagRisk  Tag = "risk"
	TagSafe  Tag = "safe"
	TagGreed Tag = "greed"
)

// Node is one step in a chapter route.
type Node struct {
	ID           string
	Kind         Kind
	Position     int
	Tags         []Tag
	ChapterIndex int
}

// Config holds the generation knobs.
type Config struct {
	MinNodes int
	MaxNodes int
}

// DefaultConfig returns the standard chapter sizing.
func DefaultConfig() Config {
	return Config{MinNodes: 6, MaxNodes: 12}
}

// Generator builds node lists from seed and chapter inputs.
type Generator struct {
	cfg Config
}

// NewGenerator returns a generator with the given config. Zero-valued
// fields fall back to the defaults.
func NewGenerator(cfg Config) *Generator {
	def := DefaultConfig()
	if cfg.MinNodes <= 0 {
		cfg.MinNodes = def.MinNodes
	}
	if cfg.MaxNodes <= 0 {
		cfg.MaxNodes = def.MaxNodes
	}
	return &Generator{cfg: cfg}
}

// Params are the chapter inputs to BuildNodes. EliteMax caps elite slots
// for large chapters; zero means one.
type Params struct {
	Seed         int64
	ChapterIndex int
	EnemyCount   int
	Difficulty   float64
	HasBoss      bool
	HasEvents    bool
	EliteMax     int
}

// BuildNodes generates the deterministic node list for one chapter. The
// node count derives from the enemy count nudged by difficulty and clamped
// to the configured range; a boss chapter reserves the final slot. The body
// is shuffled with the chapter RNG, then the first node is forced to a
// battle so every chapter opens with combat. A resolved count of zero or
// less returns an empty list.
func (g *Generator) BuildNodes(p Params) []Node {
	rng := random.NewChapter(p.Seed, p.ChapterIndex)
	nodeCount := g.resolveNodeCount(p.EnemyCount, p.Difficulty)

	if nodeCount <= 0 {
		return nil
	}

	reserveTail := 0
	if p.HasBoss {
		reserveTail = 1
	}
	bodyCount := nodeCount - reserveTail
	if bodyCount < 1 {
		bodyCount = 1
	}

	eventCount := 0
	if p.HasEvents && bodyCount >= 4 {
		eventCount = 1
	}
	restCount := 0
	if bodyCount >= 5 {
		restCount = 1
	}
	shopCount := 0
	if bodyCount >= 6 {
		shopCount = 1
	}
	eliteCount := 0
	if p.ChapterIndex >= 1 && bodyCount >= 7 {
		eliteCount = 1
		eliteMax := p.EliteMax
		if eliteMax <= 0 {
			eliteMax = 1
		}
		// Each extra elite needs two more body slots past the first gate.
		for eliteCount < eliteMax && bodyCount >= 7+2*eliteCount {
			eliteCount++
		}
	}

	battleCount := bodyCount - eventCount - restCount - shopCount - eliteCount
	if battleCount < 1 {
		battleCount = 1
	}

	kinds := make([]Kind, 0, nodeCount)
	for i := 0; i < battleCount; i++ {
		kinds = append(kinds, KindBattle)
	}
	for i := 0; i < eventCount; i++ {
		kinds = append(kinds, KindEvent)
	}
	for i := 0; i < restCount; i++ {
		kinds = append(kinds, KindRest)
	}
	for i := 0; i < shopCount; i++ {
		kinds = append(kinds, KindShop)
	}
	for i := 0; i < eliteCount; i++ {
		kinds = append(kinds, KindElite)
	}
	for len(kinds) < bodyCount {
		kinds = append(kinds, KindBattle)
	}

	rng.Shuffle(len(kinds), func(i, j int) {
		kinds[i], kinds[j] = kinds[j], kinds[i]
	})

	// First node is always combat to keep opening pacing predictable.
	if len(kinds) > 0 && kinds[0] != KindBattle {
		for i, k := range kinds {
			if k == KindBattle {
				kinds[0], kinds[i] = kinds[i], kinds[0]
				break
			}
		}
	}

	if p.HasBoss {
		kinds = append(kinds, KindBoss)
	}

	nodes := make([]Node, 0, len(kinds))
	for i, kind := range kinds {
		nodes = append(nodes, Node{
			ID:           fmt.Sprintf("ch%d_node%d_%s", p.ChapterIndex, i, kind),
			Kind:         kind,
			Position:     i,
			Tags:         tagsForKind(kind, rng),
			ChapterIndex: p.ChapterIndex,
		})
	}
	return nodes
}

func (g *Generator) resolveNodeCount(enemyCount int, difficulty float64) int {
	base := enemyCount + 2
	if base < g.cfg.MinNodes {
		base = g.cfg.MinNodes
	}
	if difficulty >= 1.5 {
		base++
	}
	if difficulty <= 0.8 {
		base--
	}
	if base < g.cfg.MinNodes {
		base = g.cfg.MinNodes
	}
	if base > g.cfg.MaxNodes {
		base = g.cfg.MaxNodes
	}
	return base
}

// tagsForKind assigns path tags. Event and battle nodes roll; the rest are
// fixed. Called in node-index order after the shuffle so golden sequences
// stay stable.
func tagsForKind(kind Kind, rng *random.RNG) []Tag {
	switch kind {
	case KindEvent:
		if rng.Float64() < 0.4 {
			return []Tag{TagGreed}
		}
		return []Tag{TagSafe}
	case KindShop:
		return []Tag{TagGreed}
	case KindRest:
		return []Tag{TagSafe}
	case KindElite, KindBoss:
		return []Tag{TagRisk}
	default:
		if rng.Float64() < 0.35 {
			return []Tag{TagRisk}
		}
		return []Tag{TagSafe}
	}
}

// Graph wraps a node list with lookup helpers. Routes are linear, so
// adjacency is position order.
type Graph struct {
	Nodes []Node
}

// NewGraph builds a graph over the given nodes.
func NewGraph(nodes []Node) *Graph {
	return &Graph{Nodes: nodes}
}

// NodeByID returns the node with the given id.
func (g *Graph) NodeByID(id string) (Node, bool) {
	for _, n := range g.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return Node{}, false
}

// Next returns the node following the given position.
func (g *Graph) Next(position int) (Node, bool) {
	idx := position + 1
	if idx < 0 || idx >= len(g.Nodes) {
		return Node{}, false
	}
	return g.Nodes[idx], true
}

// KindSequence returns the ordered node kinds.
func (g *Graph) KindSequence() []Kind {
	kinds := make([]Kind, len(g.Nodes))
	for i, n := range g.Nodes {
		kinds[i] = n.Kind
	}
	return kinds
}

// SummarizeKinds returns node type counts for metrics and printing.
func SummarizeKinds(nodes []Node) map[Kind]int {
	counts := make(map[Kind]int)
	for _, n := range nodes {
		counts[n.Kind]++
	}
	return counts
}
