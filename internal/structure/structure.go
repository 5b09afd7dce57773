// Package structure loads frame structures (nodes joined by edges) and
// computes their bounds.
package structure

import (
	"errors"
	"fmt"

	"github.com/chewxy/math32"

	"github.com/Faultbox/frameview/pkg/math"
)

var (
	// ErrEmptyStructure is returned by ComputeBounds for a structure
	// without nodes, whose center and radius are undefined.
	ErrEmptyStructure = errors.New("structure has no nodes")

	// ErrEdgeOutOfRange is returned when an edge references a node index
	// outside [0, node count).
	ErrEdgeOutOfRange = errors.New("edge endpoint out of range")

	// ErrNonFiniteNode is returned by New for a node with an Inf or NaN
	// coordinate.
	ErrNonFiniteNode = errors.New("node coordinate is not finite")

	// ErrBoundsOverflow is returned by ComputeBounds when the enclosing
	// radius does not fit in a float32.
	ErrBoundsOverflow = errors.New("structure bounds overflow float32")
)

// Node is a point in model space. Nodes are identified by their index.
type Node = math.Vec3

// Edge joins two nodes by zero-based index.
type Edge [2]int

// FrameStructure is an immutable, validated set of nodes and edges.
type FrameStructure struct {
	nodes []Node
	edges []Edge
}

// New validates edges against nodes and returns a structure holding
// copies of both slices.
func New(nodes []Node, edges []Edge) (*FrameStructure, error) {
	for i, n := range nodes {
		if !finite(n.X) || !finite(n.Y) || !finite(n.Z) {
			return nil, fmt.Errorf("node %d %v: %w", i, n, ErrNonFiniteNode)
		}
	}
	for i, e := range edges {
		for _, idx := range e {
			if idx < 0 || idx >= len(nodes) {
				return nil, fmt.Errorf("edge %d %v with %d nodes: %w", i, e, len(nodes), ErrEdgeOutOfRange)
			}
		}
	}

	s := &FrameStructure{
		nodes: make([]Node, len(nodes)),
		edges: make([]Edge, len(edges)),
	}
	copy(s.nodes, nodes)
	copy(s.edges, edges)
	return s, nil
}

// NodeCount returns the number of nodes.
func (s *FrameStructure) NodeCount() int {
	return len(s.nodes)
}

// EdgeCount returns the number of edges.
func (s *FrameStructure) EdgeCount() int {
	return len(s.edges)
}

// Node returns node i.
func (s *FrameStructure) Node(i int) Node {
	return s.nodes[i]
}

// Edge returns edge i.
func (s *FrameStructure) Edge(i int) Edge {
	return s.edges[i]
}

// Nodes returns a copy of the node list.
func (s *FrameStructure) Nodes() []Node {
	out := make([]Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

// Edges returns a copy of the edge list.
func (s *FrameStructure) Edges() []Edge {
	out := make([]Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Vertices returns node coordinates flattened as x0,y0,z0,x1,... for
// upload into a vertex buffer.
func (s *FrameStructure) Vertices() []float32 {
	out := make([]float32, 0, len(s.nodes)*3)
	for _, n := range s.nodes {
		out = append(out, n.X, n.Y, n.Z)
	}
	return out
}

// Indices returns edge endpoints flattened as a0,b0,a1,b1,... for an
// element buffer drawn as lines.
func (s *FrameStructure) Indices() []uint32 {
	out := make([]uint32, 0, len(s.edges)*2)
	for _, e := range s.edges {
		out = append(out, uint32(e[0]), uint32(e[1]))
	}
	return out
}

func finite(v float32) bool {
	return !math32.IsNaN(v) && !math32.IsInf(v, 0)
}
