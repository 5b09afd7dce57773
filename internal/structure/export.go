package structure

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Document is the resolved, plain-number form of a structure. Edges use
// the same 1-based node numbering as the edge table.
type Document struct {
	Bounds *DocumentBounds `yaml:"bounds,omitempty"`
	Nodes  []Point         `yaml:"nodes"`
	Edges  [][2]int        `yaml:"edges"`
}

// DocumentBounds is the exported form of Bounds.
type DocumentBounds struct {
	Min    Point   `yaml:"min"`
	Max    Point   `yaml:"max"`
	Center Point   `yaml:"center"`
	Radius float32 `yaml:"radius"`
}

// Point is a node position written as a flow sequence [x, y, z].
type Point [3]float32

// MarshalYAML keeps each point on one line.
func (p Point) MarshalYAML() (interface{}, error) {
	n := &yaml.Node{}
	if err := n.Encode([]float32{p[0], p[1], p[2]}); err != nil {
		return nil, err
	}
	n.Style = yaml.FlowStyle
	return n, nil
}

func pointOf(n Node) Point {
	return Point{n.X, n.Y, n.Z}
}

// Export converts s to a Document. Bounds are omitted for an empty
// structure.
func Export(s *FrameStructure) Document {
	doc := Document{
		Nodes: make([]Point, len(s.nodes)),
		Edges: make([][2]int, len(s.edges)),
	}
	for i, n := range s.nodes {
		doc.Nodes[i] = pointOf(n)
	}
	for i, e := range s.edges {
		doc.Edges[i] = [2]int{e[0] + 1, e[1] + 1}
	}
	if b, err := ComputeBounds(s); err == nil {
		doc.Bounds = &DocumentBounds{
			Min:    pointOf(b.Min),
			Max:    pointOf(b.Max),
			Center: pointOf(b.Center),
			Radius: b.Radius,
		}
	}
	return doc
}

// WriteYAML writes the exported form of s to w.
func WriteYAML(w io.Writer, s *FrameStructure) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(Export(s)); err != nil {
		return fmt.Errorf("encoding structure: %w", err)
	}
	return enc.Close()
}

// WriteNodesCSV writes the resolved node table with an X,Y,Z header.
// Values use the shortest form that parses back to the same float32, so
// the output loads again without change.
func WriteNodesCSV(w io.Writer, s *FrameStructure) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(nodeColumns); err != nil {
		return fmt.Errorf("writing nodes: %w", err)
	}
	row := make([]string, 3)
	for _, n := range s.nodes {
		row[0] = formatCoord(n.X)
		row[1] = formatCoord(n.Y)
		row[2] = formatCoord(n.Z)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing nodes: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEdgesCSV writes the edge table with 1-based endpoints.
func WriteEdgesCSV(w io.Writer, s *FrameStructure) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(edgeColumns); err != nil {
		return fmt.Errorf("writing edges: %w", err)
	}
	row := make([]string, 2)
	for _, e := range s.edges {
		row[0] = strconv.Itoa(e[0] + 1)
		row[1] = strconv.Itoa(e[1] + 1)
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("writing edges: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

func formatCoord(v float32) string {
	return strconv.FormatFloat(float64(v), 'g', -1, 32)
}
