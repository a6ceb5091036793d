package plan

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Limit is a node that only allows up to N rows to be retrieved.
type Limit struct {
	UnaryNode
	Size int64
}

var _ sql.Node = (*Limit)(nil)

// NewLimit creates a new Limit node with the given size.
func NewLimit(size int64, child sql.Node) *Limit {
	return &Limit{
		UnaryNode: UnaryNode{Child: child},
		Size:      size,
	}
}

func (l *Limit) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("Limit(%d)", l.Size)
	_ = pr.WriteChildren(l.Child.String())
	return pr.String()
}

// WithChildren implements the Node interface.
func (l *Limit) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(l, len(children), 1)
	}
	return NewLimit(l.Size, children[0]), nil
}
