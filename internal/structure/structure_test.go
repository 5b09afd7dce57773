package structure

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/Faultbox/frameview/internal/expr"
)

const cubeNodes = `X,Y,Z
-1,-1,-1
1,-1,-1
1,1,-1
-1,1,-1
-1,-1,1
1,-1,1
1,1,1
-1,1,1
`

const cubeEdges = `start_node,end_node
1,2
2,3
3,4
4,1
5,6
6,7
7,8
8,5
1,5
2,6
3,7
4,8
`

func loadString(t *testing.T, nodes, edges string, vars expr.Vars) (*FrameStructure, error) {
	t.Helper()
	return Load(Source{
		Nodes: strings.NewReader(nodes),
		Edges: strings.NewReader(edges),
		Vars:  vars,
	})
}

func TestLoadCube(t *testing.T) {
	s, err := loadString(t, cubeNodes, cubeEdges, nil)
	require.NoError(t, err)

	assert.Equal(t, 8, s.NodeCount())
	assert.Equal(t, 12, s.EdgeCount())
	assert.Equal(t, Node{X: -1, Y: -1, Z: -1}, s.Node(0))
	assert.Equal(t, Edge{0, 1}, s.Edge(0))
	assert.Equal(t, Edge{3, 7}, s.Edge(11))
}

func TestLoadExpressionsAndOneBasedEdges(t *testing.T) {
	nodes := "X,Y,Z\n2*LENGTH_CELL,0,0\n0,WIDTH_CELL/2,-(LENGTH_CELL+1)\n"
	edges := "start_node,end_node\n1,2\n"

	s, err := loadString(t, nodes, edges, expr.Vars{"LENGTH_CELL": 2, "WIDTH_CELL": 3})
	require.NoError(t, err)

	assert.Equal(t, float32(4), s.Node(0).X)
	assert.Equal(t, Node{X: 0, Y: 1.5, Z: -3}, s.Node(1))
	assert.Equal(t, []Edge{{0, 1}}, s.Edges())
}

func TestLoadDefaultVariables(t *testing.T) {
	nodes := "X,Y,Z\nLENGTH_CELL,WIDTH_CELL,0\n"
	s, err := loadString(t, nodes, "start_node,end_node\n", nil)
	require.NoError(t, err)
	assert.Equal(t, Node{X: 2, Y: 2, Z: 0}, s.Node(0))
}

func TestLoadFormulas(t *testing.T) {
	nodes := "X,Y,Z\nHALF,0,DOUBLE\n"
	s, err := Load(Source{
		Nodes:    strings.NewReader(nodes),
		Edges:    strings.NewReader("start_node,end_node\n"),
		Vars:     expr.Vars{"WIDTH_CELL": 10},
		Formulas: map[string]string{"HALF": "WIDTH_CELL / 2", "DOUBLE": "HALF * 4"},
	})
	require.NoError(t, err)
	assert.Equal(t, Node{X: 5, Y: 0, Z: 20}, s.Node(0))
}

func TestLoadHeaderHandling(t *testing.T) {
	nodes := "id, x ,y,Z,group\n7,1,2,3,_EXTERNAL-LL\n\n8,4,5,6,\n"
	edges := "id,START_NODE,End_Node\n1,1,2\n"

	s, err := loadString(t, nodes, edges, nil)
	require.NoError(t, err)
	assert.Equal(t, []Node{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}, s.Nodes())
	assert.Equal(t, []uint32{0, 1}, s.Indices())
}

func TestLoadUndefinedVariableFails(t *testing.T) {
	nodes := "X,Y,Z\n0,0,0\n1,2*HEIGHT_CELL,0\n"
	_, err := loadString(t, nodes, "start_node,end_node\n", nil)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, TableNodes, rowErr.Table)
	assert.Equal(t, 3, rowErr.Line)
	assert.Equal(t, "Y", rowErr.Column)

	var undef *expr.UndefinedVariableError
	require.ErrorAs(t, err, &undef)
	assert.Equal(t, "HEIGHT_CELL", undef.Name)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name  string
		nodes string
		edges string
	}{
		{"empty nodes input", "", cubeEdges},
		{"missing Z column", "X,Y\n1,2\n", "start_node,end_node\n"},
		{"missing edge column", cubeNodes, "start_node\n1\n"},
		{"malformed expression", "X,Y,Z\n1,2*,3\n", "start_node,end_node\n"},
		{"empty cell", "X,Y,Z\n1,,3\n", "start_node,end_node\n"},
		{"short row", "X,Y,Z\n1,2\n", "start_node,end_node\n"},
		{"non-integer edge", cubeNodes, "start_node,end_node\n1,two\n"},
		{"fractional edge", cubeNodes, "start_node,end_node\n1,2.5\n"},
		{"division by zero", "X,Y,Z\n1/0,0,0\n", "start_node,end_node\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := loadString(t, tt.nodes, tt.edges, nil)
			assert.Error(t, err)
			assert.Nil(t, s)
		})
	}
}

func TestLoadRejectsFloat32Overflow(t *testing.T) {
	s, err := loadString(t, "X,Y,Z\n1e39,0,0\n0,0,0\n", "start_node,end_node\n1,2\n", nil)
	assert.Nil(t, s)
	assert.ErrorIs(t, err, expr.ErrNonFinite)

	var rowErr *RowError
	require.ErrorAs(t, err, &rowErr)
	assert.Equal(t, 2, rowErr.Line)
	assert.Equal(t, "X", rowErr.Column)

	_, err = loadString(t, "X,Y,Z\n0,-LENGTH_CELL * 1e39,0\n", "start_node,end_node\n", nil)
	assert.ErrorIs(t, err, expr.ErrNonFinite)
}

func TestNewRejectsNonFiniteNodes(t *testing.T) {
	for _, n := range []Node{
		{X: math32.Inf(1)},
		{Y: math32.Inf(-1)},
		{Z: math32.NaN()},
	} {
		_, err := New([]Node{{}, n}, nil)
		assert.ErrorIs(t, err, ErrNonFiniteNode, "node %v", n)
	}
}

func TestLoadEdgeOutOfRange(t *testing.T) {
	tests := []struct {
		name  string
		edges string
	}{
		{"past the end", "start_node,end_node\n1,9\n"},
		{"zero is not a valid 1-based index", "start_node,end_node\n0,1\n"},
		{"negative", "start_node,end_node\n-3,1\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadString(t, cubeNodes, tt.edges, nil)
			assert.ErrorIs(t, err, ErrEdgeOutOfRange)
		})
	}
}

func TestLoadFiles(t *testing.T) {
	dir := t.TempDir()
	nodesPath := filepath.Join(dir, "nodes.csv")
	edgesPath := filepath.Join(dir, "edges.csv")
	require.NoError(t, os.WriteFile(nodesPath, []byte(cubeNodes), 0644))
	require.NoError(t, os.WriteFile(edgesPath, []byte(cubeEdges), 0644))

	s, err := LoadFiles(nodesPath, edgesPath, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, 8, s.NodeCount())

	_, err = LoadFiles(filepath.Join(dir, "missing.csv"), edgesPath, nil, nil)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestStructureIsImmutable(t *testing.T) {
	nodes := []Node{{X: 1}, {X: 2}}
	edges := []Edge{{0, 1}}
	s, err := New(nodes, edges)
	require.NoError(t, err)

	nodes[0].X = 99
	edges[0][1] = 0
	got := s.Nodes()
	got[1].X = 42

	assert.Equal(t, float32(1), s.Node(0).X)
	assert.Equal(t, float32(2), s.Node(1).X)
	assert.Equal(t, Edge{0, 1}, s.Edge(0))
}

func TestBuffers(t *testing.T) {
	s, err := New([]Node{{X: 1, Y: 2, Z: 3}, {X: 4, Y: 5, Z: 6}}, []Edge{{1, 0}})
	require.NoError(t, err)

	assert.Equal(t, []float32{1, 2, 3, 4, 5, 6}, s.Vertices())
	assert.Equal(t, []uint32{1, 0}, s.Indices())
}

func TestComputeBounds(t *testing.T) {
	s, err := New([]Node{{X: -1, Y: -1, Z: -1}, {X: 1, Y: 1, Z: 1}}, nil)
	require.NoError(t, err)

	b, err := ComputeBounds(s)
	require.NoError(t, err)
	assert.Equal(t, Node{}, b.Center)
	assert.InDelta(t, math32.Sqrt(3), b.Radius, 1e-6)
	assert.Equal(t, Node{X: 2, Y: 2, Z: 2}, b.Size())
}

func TestComputeBoundsOffCenter(t *testing.T) {
	s, err := loadString(t, "X,Y,Z\n0,0,0\n4,0,0\n4,2,0\n2,1,6\n", "start_node,end_node\n", nil)
	require.NoError(t, err)

	b, err := ComputeBounds(s)
	require.NoError(t, err)
	assert.Equal(t, Node{X: 0, Y: 0, Z: 0}, b.Min)
	assert.Equal(t, Node{X: 4, Y: 2, Z: 6}, b.Max)
	assert.Equal(t, Node{X: 2, Y: 1, Z: 3}, b.Center)
	assert.InDelta(t, math32.Sqrt(4+1+9), b.Radius, 1e-5)
}

func TestComputeBoundsSingleNode(t *testing.T) {
	s, err := New([]Node{{X: 3, Y: 4, Z: 5}}, nil)
	require.NoError(t, err)

	b, err := ComputeBounds(s)
	require.NoError(t, err)
	assert.Equal(t, Node{X: 3, Y: 4, Z: 5}, b.Center)
	assert.Zero(t, b.Radius)
}

func TestComputeBoundsNearFloat32Limit(t *testing.T) {
	s, err := New([]Node{{X: 3e38, Y: 3e38}, {X: 3.2e38, Y: 3.2e38}}, nil)
	require.NoError(t, err)

	b, err := ComputeBounds(s)
	require.NoError(t, err)
	assert.False(t, math32.IsInf(b.Center.X, 0))
	assert.InDelta(t, 3.1e38, float64(b.Center.X), 1e32)
	assert.False(t, math32.IsInf(b.Radius, 0))
	assert.InDelta(t, 0.1e38*math32.Sqrt(2), float64(b.Radius), 1e32)

	s, err = New([]Node{{X: -3e38}, {X: 3e38}}, nil)
	require.NoError(t, err)
	b, err = ComputeBounds(s)
	require.NoError(t, err)
	assert.Equal(t, Node{}, b.Center)
	assert.InDelta(t, 3e38, float64(b.Radius), 1e32)
}

func TestComputeBoundsOverflow(t *testing.T) {
	s, err := New([]Node{{X: -3e38, Y: -3e38, Z: -3e38}, {X: 3e38, Y: 3e38, Z: 3e38}}, nil)
	require.NoError(t, err)

	b, err := ComputeBounds(s)
	assert.ErrorIs(t, err, ErrBoundsOverflow)
	assert.Zero(t, b.Radius)
}

func TestComputeBoundsEmpty(t *testing.T) {
	s, err := loadString(t, "X,Y,Z\n", "start_node,end_node\n", nil)
	require.NoError(t, err)

	_, err = ComputeBounds(s)
	assert.ErrorIs(t, err, ErrEmptyStructure)

	_, err = ComputeBounds(nil)
	assert.ErrorIs(t, err, ErrEmptyStructure)
}

func TestExport(t *testing.T) {
	s, err := New([]Node{{X: 0, Y: 0, Z: 0}, {X: 2, Y: 0, Z: 0}}, []Edge{{0, 1}})
	require.NoError(t, err)

	doc := Export(s)
	assert.Equal(t, []Point{{0, 0, 0}, {2, 0, 0}}, doc.Nodes)
	assert.Equal(t, [][2]int{{1, 2}}, doc.Edges)
	require.NotNil(t, doc.Bounds)
	assert.Equal(t, Point{1, 0, 0}, doc.Bounds.Center)
	assert.Equal(t, float32(1), doc.Bounds.Radius)

	empty, err := New(nil, nil)
	require.NoError(t, err)
	assert.Nil(t, Export(empty).Bounds)
}

func TestWriteYAML(t *testing.T) {
	s, err := Load(Source{
		Nodes: strings.NewReader(cubeNodes),
		Edges: strings.NewReader(cubeEdges),
	})
	require.NoError(t, err)

	var buf strings.Builder
	require.NoError(t, WriteYAML(&buf, s))
	assert.Contains(t, buf.String(), "- [-1, -1, -1]")

	var got struct {
		Nodes [][3]float32 `yaml:"nodes"`
		Edges [][2]int     `yaml:"edges"`
	}
	require.NoError(t, yaml.Unmarshal([]byte(buf.String()), &got))
	assert.Len(t, got.Nodes, s.NodeCount())
	assert.Len(t, got.Edges, s.EdgeCount())
	assert.Equal(t, [2]int{1, 2}, got.Edges[0])
}

func TestResolveVariables(t *testing.T) {
	vars, err := ResolveVariables(expr.Vars{"WIDTH_CELL": 3}, map[string]string{"SPAN": "LENGTH_CELL * WIDTH_CELL"})
	require.NoError(t, err)
	assert.Equal(t, 2.0, vars["LENGTH_CELL"])
	assert.Equal(t, 3.0, vars["WIDTH_CELL"])
	assert.Equal(t, 6.0, vars["SPAN"])

	_, err = ResolveVariables(nil, map[string]string{"A": "B", "B": "A"})
	var cycle *expr.CycleError
	assert.ErrorAs(t, err, &cycle)
}

func TestCSVExportReloads(t *testing.T) {
	src, err := loadString(t, "X,Y,Z\n0,0,0\nLENGTH_CELL/3,WIDTH_CELL,0\n-1e-7,2.5e20,0.1\n",
		"start_node,end_node\n1,2\n2,3\n", nil)
	require.NoError(t, err)

	var nodes, edges strings.Builder
	require.NoError(t, WriteNodesCSV(&nodes, src))
	require.NoError(t, WriteEdgesCSV(&edges, src))
	assert.True(t, strings.HasPrefix(nodes.String(), "X,Y,Z\n"))
	assert.Equal(t, "start_node,end_node\n1,2\n2,3\n", edges.String())

	// No variables are needed to read the export back.
	got, err := Load(Source{
		Nodes: strings.NewReader(nodes.String()),
		Edges: strings.NewReader(edges.String()),
		Vars:  expr.Vars{"LENGTH_CELL": 99},
	})
	require.NoError(t, err)
	assert.Equal(t, src.Nodes(), got.Nodes())
	assert.Equal(t, src.Edges(), got.Edges())
}
