package structure

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chewxy/math32"

	"github.com/Faultbox/frameview/internal/expr"
)

// Table names used in RowError.
const (
	TableNodes = "nodes"
	TableEdges = "edges"
)

// Column headers. Matching is case-insensitive; other columns are ignored.
var (
	nodeColumns = []string{"X", "Y", "Z"}
	edgeColumns = []string{"start_node", "end_node"}
)

// RowError locates a data error in one of the input tables.
// Line is the 1-based line number in the CSV, header included.
type RowError struct {
	Table  string
	Line   int
	Column string
	Err    error
}

func (e *RowError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("%s line %d: %v", e.Table, e.Line, e.Err)
	}
	return fmt.Sprintf("%s line %d, column %s: %v", e.Table, e.Line, e.Column, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

// DefaultVariables returns the cell-dimension inputs available to node
// expressions when the caller supplies none.
func DefaultVariables() expr.Vars {
	return expr.Vars{
		"LENGTH_CELL": 2,
		"WIDTH_CELL":  2,
	}
}

// Source describes where a structure comes from.
type Source struct {
	Nodes io.Reader // CSV with X, Y, Z columns
	Edges io.Reader // CSV with start_node, end_node columns (1-based)

	// Vars override or extend DefaultVariables.
	Vars expr.Vars
	// Formulas define derived variables, see expr.Resolve.
	Formulas map[string]string
}

// Load parses both tables and returns a validated structure. Any
// malformed cell, undefined variable or dangling edge fails the load.
func Load(src Source) (*FrameStructure, error) {
	vars, err := ResolveVariables(src.Vars, src.Formulas)
	if err != nil {
		return nil, err
	}

	nodes, err := ParseNodes(src.Nodes, vars)
	if err != nil {
		return nil, err
	}
	edges, err := ParseEdges(src.Edges)
	if err != nil {
		return nil, err
	}
	return New(nodes, edges)
}

// ResolveVariables layers vars over DefaultVariables and evaluates the
// derived formulas, giving the variable set node expressions see.
func ResolveVariables(vars expr.Vars, formulas map[string]string) (expr.Vars, error) {
	inputs := DefaultVariables()
	for k, v := range vars {
		inputs[k] = v
	}
	out, err := expr.Resolve(inputs, formulas)
	if err != nil {
		return nil, fmt.Errorf("resolving variables: %w", err)
	}
	return out, nil
}

// LoadFiles opens the two CSV files and calls Load.
func LoadFiles(nodesPath, edgesPath string, vars expr.Vars, formulas map[string]string) (*FrameStructure, error) {
	nf, err := os.Open(nodesPath)
	if err != nil {
		return nil, fmt.Errorf("opening nodes: %w", err)
	}
	defer nf.Close()

	ef, err := os.Open(edgesPath)
	if err != nil {
		return nil, fmt.Errorf("opening edges: %w", err)
	}
	defer ef.Close()

	s, err := Load(Source{Nodes: nf, Edges: ef, Vars: vars, Formulas: formulas})
	if err != nil {
		return nil, fmt.Errorf("loading %s, %s: %w", nodesPath, edgesPath, err)
	}
	return s, nil
}

// ParseNodes reads the nodes table, evaluating every cell against vars.
func ParseNodes(r io.Reader, vars expr.Vars) ([]Node, error) {
	var nodes []Node
	err := readTable(r, TableNodes, nodeColumns, func(line int, cells []string) error {
		var coords [3]float32
		for i, cell := range cells {
			v, err := expr.Eval(cell, vars)
			if err != nil {
				return &RowError{Table: TableNodes, Line: line, Column: nodeColumns[i], Err: err}
			}
			coords[i] = float32(v)
			if math32.IsInf(coords[i], 0) {
				// Finite as float64 but out of float32 range.
				return &RowError{Table: TableNodes, Line: line, Column: nodeColumns[i], Err: expr.ErrNonFinite}
			}
		}
		nodes = append(nodes, Node{X: coords[0], Y: coords[1], Z: coords[2]})
		return nil
	})
	return nodes, err
}

// ParseEdges reads the edges table and converts 1-based endpoints to
// 0-based indices. Range checks against the nodes happen in New.
func ParseEdges(r io.Reader) ([]Edge, error) {
	var edges []Edge
	err := readTable(r, TableEdges, edgeColumns, func(line int, cells []string) error {
		var e Edge
		for i, cell := range cells {
			n, err := strconv.Atoi(cell)
			if err != nil {
				return &RowError{Table: TableEdges, Line: line, Column: edgeColumns[i], Err: fmt.Errorf("invalid node number %q", cell)}
			}
			e[i] = n - 1
		}
		edges = append(edges, e)
		return nil
	})
	return edges, err
}

// readTable reads a headed CSV and calls fn with the trimmed cells of the
// wanted columns, in the order given.
func readTable(r io.Reader, table string, wanted []string, fn func(line int, cells []string) error) error {
	if r == nil {
		return fmt.Errorf("%s table: no input", table)
	}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return fmt.Errorf("%s table: missing header", table)
	}
	if err != nil {
		return fmt.Errorf("%s table: %w", table, err)
	}

	cols := make([]int, len(wanted))
	for i, name := range wanted {
		cols[i] = -1
		for j, h := range header {
			if strings.EqualFold(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")), name) {
				cols[i] = j
				break
			}
		}
		if cols[i] < 0 {
			return fmt.Errorf("%s table: missing column %q", table, name)
		}
	}

	cells := make([]string, len(wanted))
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%s table: %w", table, err)
		}
		line, _ := cr.FieldPos(0)
		if isBlank(record) {
			continue
		}
		for i, c := range cols {
			if c >= len(record) || strings.TrimSpace(record[c]) == "" {
				return &RowError{Table: table, Line: line, Column: wanted[i], Err: errors.New("empty cell")}
			}
			cells[i] = strings.TrimSpace(record[c])
		}
		if err := fn(line, cells); err != nil {
			return err
		}
	}
}

func isBlank(record []string) bool {
	for _, f := range record {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}
