// Package graph holds the adjacency indices between anchors and readings.
package graph

import (
	"sort"

	"github.com/Harshitk-cp/anchorgraph/internal/domain"
)

type NodeKind int

const (
	AnchorNode NodeKind = iota
	ReadingNode
)

func (k NodeKind) String() string {
	if k == ReadingNode {
		return "reading"
	}
	return "anchor"
}

// Node identifies a vertex of the combined dependency/support graph.
// Anchor and reading ids live in separate namespaces.
type Node struct {
	Kind NodeKind
	ID   string
}

func Anchor(id string) Node  { return Node{Kind: AnchorNode, ID: id} }
func Reading(id string) Node { return Node{Kind: ReadingNode, ID: id} }

// Graph indexes depends-on edges in both directions and supports edges forward.
// All traversal in the engine goes through these maps.
type Graph struct {
	anchorReadings  map[string][]string // anchor -> readings that depend on it
	readingAnchors  map[string][]string // reading -> anchors it depends on
	readingSupports map[string][]string // reading -> anchors it supports
}

func New() *Graph {
	g := &Graph{}
	g.reset()
	return g
}

func (g *Graph) reset() {
	g.anchorReadings = make(map[string][]string)
	g.readingAnchors = make(map[string][]string)
	g.readingSupports = make(map[string][]string)
}

// Build clears the indices and repopulates them from readings, visiting
// readings in id order so dependent lists come out sorted.
func (g *Graph) Build(readings map[string]*domain.Reading) {
	g.reset()
	ids := make([]string, 0, len(readings))
	for id := range readings {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		g.link(id, readings[id])
	}
}

// Register indexes one reading without a rebuild. A reading already present
// has its previous edges detached first.
func (g *Graph) Register(r *domain.Reading) {
	g.detach(r.ID)
	g.link(r.ID, r)
	for _, anchorID := range r.DependsOn {
		sort.Strings(g.anchorReadings[anchorID])
	}
}

func (g *Graph) link(id string, r *domain.Reading) {
	g.readingAnchors[id] = append([]string(nil), r.DependsOn...)
	g.readingSupports[id] = append([]string(nil), r.Supports...)
	for _, anchorID := range r.DependsOn {
		g.anchorReadings[anchorID] = appendUnique(g.anchorReadings[anchorID], id)
	}
}

func (g *Graph) detach(readingID string) {
	for _, anchorID := range g.readingAnchors[readingID] {
		g.anchorReadings[anchorID] = remove(g.anchorReadings[anchorID], readingID)
		if len(g.anchorReadings[anchorID]) == 0 {
			delete(g.anchorReadings, anchorID)
		}
	}
	delete(g.readingAnchors, readingID)
	delete(g.readingSupports, readingID)
}

// DependentReadings returns the readings that depend on anchorID.
func (g *Graph) DependentReadings(anchorID string) []string {
	return clone(g.anchorReadings[anchorID])
}

// Dependencies returns the anchors readingID depends on.
func (g *Graph) Dependencies(readingID string) []string {
	return clone(g.readingAnchors[readingID])
}

// SupportedAnchors returns the anchors readingID provides evidence for.
func (g *Graph) SupportedAnchors(readingID string) []string {
	return clone(g.readingSupports[readingID])
}

// ReadingsSupporting returns, in id order, the readings that support anchorID.
func (g *Graph) ReadingsSupporting(anchorID string) []string {
	var out []string
	for readingID, anchors := range g.readingSupports {
		for _, a := range anchors {
			if a == anchorID {
				out = append(out, readingID)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

// Neighbors returns the typed successors of n: an anchor leads to its dependent
// readings, a reading leads to the anchors it supports.
func (g *Graph) Neighbors(n Node) []Node {
	var ids []string
	kind := ReadingNode
	switch n.Kind {
	case AnchorNode:
		ids = g.anchorReadings[n.ID]
	case ReadingNode:
		ids = g.readingSupports[n.ID]
		kind = AnchorNode
	}
	out := make([]Node, len(ids))
	for i, id := range ids {
		out[i] = Node{Kind: kind, ID: id}
	}
	return out
}

// EdgeCount returns the number of depends-on and supports edges.
func (g *Graph) EdgeCount() (dependsOn, supports int) {
	for _, ids := range g.readingAnchors {
		dependsOn += len(ids)
	}
	for _, ids := range g.readingSupports {
		supports += len(ids)
	}
	return dependsOn, supports
}

func appendUnique(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

func remove(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

func clone(ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	return append([]string(nil), ids...)
}
