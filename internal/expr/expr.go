// Package expr evaluates the arithmetic expressions used in structure
// coordinate tables.
//
// The grammar is fixed and closed:
//
//	expr   = term { ("+" | "-") term }
//	term   = unary { ("*" | "/") unary }
//	unary  = ("+" | "-") unary | primary
//	primary = number | identifier | "(" expr ")"
//
// Identifiers are resolved only against the Vars passed to Eval; there
// are no functions and no access to anything else.
package expr

import (
	"math"
	"sort"
)

// Vars binds variable names to values.
type Vars map[string]float64

// Clone returns an independent copy of v.
func (v Vars) Clone() Vars {
	out := make(Vars, len(v))
	for k, val := range v {
		out[k] = val
	}
	return out
}

type node interface {
	eval(vars Vars) (float64, error)
}

type numberNode float64

func (n numberNode) eval(Vars) (float64, error) {
	return float64(n), nil
}

type varNode string

func (n varNode) eval(vars Vars) (float64, error) {
	v, ok := vars[string(n)]
	if !ok {
		return 0, &UndefinedVariableError{Name: string(n)}
	}
	return v, nil
}

type negNode struct {
	x node
}

func (n negNode) eval(vars Vars) (float64, error) {
	v, err := n.x.eval(vars)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

type binaryNode struct {
	op   tokenKind
	l, r node
}

func (n binaryNode) eval(vars Vars) (float64, error) {
	l, err := n.l.eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.r.eval(vars)
	if err != nil {
		return 0, err
	}
	switch n.op {
	case tokPlus:
		return l + r, nil
	case tokMinus:
		return l - r, nil
	case tokStar:
		return l * r, nil
	default:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
}

// Expr is a parsed expression. It is immutable and safe to evaluate
// repeatedly with different bindings.
type Expr struct {
	src  string
	root node
	vars []string
}

// Parse compiles src. Errors are *SyntaxError.
func Parse(src string) (*Expr, error) {
	toks, err := lex(src)
	if err != nil {
		return nil, err
	}
	p := &parser{src: src, toks: toks, seen: map[string]bool{}}
	root, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if tok := p.peek(); tok.kind != tokEOF {
		return nil, p.errorf(tok, "unexpected "+describe(tok))
	}

	names := make([]string, 0, len(p.seen))
	for name := range p.seen {
		names = append(names, name)
	}
	sort.Strings(names)

	return &Expr{src: src, root: root, vars: names}, nil
}

// String returns the source text the expression was parsed from.
func (e *Expr) String() string {
	return e.src
}

// Variables returns the sorted, de-duplicated names referenced by e.
func (e *Expr) Variables() []string {
	out := make([]string, len(e.vars))
	copy(out, e.vars)
	return out
}

// Eval evaluates e against vars. It fails with *UndefinedVariableError,
// ErrDivisionByZero or ErrNonFinite; it never substitutes a default.
func (e *Expr) Eval(vars Vars) (float64, error) {
	v, err := e.root.eval(vars)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, ErrNonFinite
	}
	return v, nil
}

// Eval parses and evaluates src in one step.
func Eval(src string, vars Vars) (float64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return e.Eval(vars)
}
