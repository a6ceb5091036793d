package plan

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Filter skips rows that don't match a certain expression.
type Filter struct {
	UnaryNode
	Expression sql.Expression
}

var _ sql.Node = (*Filter)(nil)
var _ sql.Expressioner = (*Filter)(nil)

// NewFilter creates a new filter node.
func NewFilter(expression sql.Expression, child sql.Node) *Filter {
	return &Filter{
		UnaryNode:  UnaryNode{Child: child},
		Expression: expression,
	}
}

func (p *Filter) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Filter(%s)", p.Expression)
	_ = pr.WriteChildren(p.Child.String())
	return pr.String()
}

// Expressions implements the Expressioner interface.
func (p *Filter) Expressions() []sql.Expression {
	return []sql.Expression{p.Expression}
}

// WithExpressions implements the Expressioner interface.
func (p *Filter) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(exprs), 1)
	}
	return NewFilter(exprs[0], p.Child), nil
}

// WithChildren implements the Node interface.
func (p *Filter) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 1)
	}
	return NewFilter(p.Expression, children[0]), nil
}
