package plan

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Having node is a filter over grouped rows. It behaves like Filter; it is a
// separate node because view extraction refuses it while accepting plain
// filters.
type Having struct {
	UnaryNode
	Cond sql.Expression
}

var _ sql.Node = (*Having)(nil)
var _ sql.Expressioner = (*Having)(nil)

// NewHaving creates a new having node.
func NewHaving(cond sql.Expression, child sql.Node) *Having {
	return &Having{UnaryNode{Child: child}, cond}
}

func (h *Having) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Having(%s)", h.Cond)
	_ = pr.WriteChildren(h.Child.String())
	return pr.String()
}

// Expressions implements the Expressioner interface.
func (h *Having) Expressions() []sql.Expression {
	return []sql.Expression{h.Cond}
}

// WithExpressions implements the Expressioner interface.
func (h *Having) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(h, len(exprs), 1)
	}
	return NewHaving(exprs[0], h.Child), nil
}

// WithChildren implements the Node interface.
func (h *Having) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(h, len(children), 1)
	}
	return NewHaving(h.Cond, children[0]), nil
}
