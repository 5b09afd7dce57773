package expr

import (
	"fmt"
	"sort"
	"strings"
)

// CycleError reports derived variables that depend on each other.
type CycleError struct {
	Path []string
}

func (e *CycleError) Error() string {
	return "dependency cycle: " + strings.Join(e.Path, " -> ")
}

// FormulaError wraps a failure evaluating one derived variable.
type FormulaError struct {
	Name string
	Src  string
	Err  error
}

func (e *FormulaError) Error() string {
	return fmt.Sprintf("formula %s = %q: %v", e.Name, e.Src, e.Err)
}

func (e *FormulaError) Unwrap() error {
	return e.Err
}

// Resolve evaluates derived variables. formulas maps a name to an
// expression over inputs and other formulas; they are evaluated in
// dependency order regardless of map order. The result holds inputs plus
// every formula. inputs is not modified.
func Resolve(inputs Vars, formulas map[string]string) (Vars, error) {
	out := inputs.Clone()
	if len(formulas) == 0 {
		return out, nil
	}

	parsed := make(map[string]*Expr, len(formulas))
	for name, src := range formulas {
		if _, ok := inputs[name]; ok {
			return nil, &FormulaError{Name: name, Src: src, Err: fmt.Errorf("redefines input variable")}
		}
		e, err := Parse(src)
		if err != nil {
			return nil, &FormulaError{Name: name, Src: src, Err: err}
		}
		parsed[name] = e
	}

	const (
		unvisited = iota
		visiting
		done
	)
	state := make(map[string]int, len(parsed))
	var stack []string

	var visit func(name string) error
	visit = func(name string) error {
		switch state[name] {
		case done:
			return nil
		case visiting:
			start := 0
			for i, n := range stack {
				if n == name {
					start = i
					break
				}
			}
			path := append(append([]string{}, stack[start:]...), name)
			return &CycleError{Path: path}
		}

		state[name] = visiting
		stack = append(stack, name)
		e := parsed[name]
		for _, dep := range e.Variables() {
			if _, ok := parsed[dep]; ok {
				if err := visit(dep); err != nil {
					return err
				}
			}
		}
		v, err := e.Eval(out)
		if err != nil {
			return &FormulaError{Name: name, Src: e.String(), Err: err}
		}
		out[name] = v
		stack = stack[:len(stack)-1]
		state[name] = done
		return nil
	}

	// Sorted order keeps error reporting deterministic.
	names := make([]string, 0, len(parsed))
	for name := range parsed {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := visit(name); err != nil {
			return nil, err
		}
	}
	return out, nil
}
