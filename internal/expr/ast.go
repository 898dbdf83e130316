package expr

import "fmt"

// Node is a parsed arithmetic expression.
type Node interface {
	Eval(vars map[string]float64) (float64, error)
	// Vars appends the identifiers referenced by the node to dst.
	Vars(dst []string) []string
}

type numberNode struct{ v float64 }

func (n numberNode) Eval(map[string]float64) (float64, error) { return n.v, nil }
func (n numberNode) Vars(dst []string) []string               { return dst }

type identNode struct{ name string }

func (n identNode) Eval(vars map[string]float64) (float64, error) {
	v, ok := vars[n.name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", ErrUnknownVariable, n.name)
	}
	return v, nil
}

func (n identNode) Vars(dst []string) []string { return append(dst, n.name) }

type negNode struct{ x Node }

func (n negNode) Eval(vars map[string]float64) (float64, error) {
	v, err := n.x.Eval(vars)
	if err != nil {
		return 0, err
	}
	return -v, nil
}

func (n negNode) Vars(dst []string) []string { return n.x.Vars(dst) }

type binaryNode struct {
	op   tokenKind
	l, r Node
}

func (n binaryNode) Eval(vars map[string]float64) (float64, error) {
	l, err := n.l.Eval(vars)
	if err != nil {
		return 0, err
	}
	r, err := n.r.Eval(vars)
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
	case tokSlash:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		return l / r, nil
	}
	return 0, fmt.Errorf("%w: unknown operator", ErrSyntax)
}

func (n binaryNode) Vars(dst []string) []string { return n.r.Vars(n.l.Vars(dst)) }
