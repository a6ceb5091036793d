package plan

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Distinct is a node that ensures all rows that come from it are unique.
type Distinct struct {
	UnaryNode
}

var _ sql.Node = (*Distinct)(nil)

// NewDistinct creates a new Distinct node.
func NewDistinct(child sql.Node) *Distinct {
	return &Distinct{UnaryNode{Child: child}}
}

func (d *Distinct) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Distinct")
	_ = pr.WriteChildren(d.Child.String())
	return pr.String()
}

// WithChildren implements the Node interface.
func (d *Distinct) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(d, len(children), 1)
	}
	return NewDistinct(children[0]), nil
}
