package plan

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// TableAlias is a node that acts as a table with a given name.
type TableAlias struct {
	UnaryNode
	name string
}

var _ sql.Node = (*TableAlias)(nil)
var _ sql.Nameable = (*TableAlias)(nil)

// NewTableAlias returns a new TableAlias node.
func NewTableAlias(name string, node sql.Node) *TableAlias {
	return &TableAlias{UnaryNode{Child: node}, name}
}

// Name implements the Nameable interface.
func (t *TableAlias) Name() string { return t.name }

func (t *TableAlias) String() string {
	pr := sql.NewTreePrinter()
	_ = pr.WriteNode("TableAlias(%s)", t.name)
	_ = pr.WriteChildren(t.Child.String())
	return pr.String()
}

// WithChildren implements the Node interface.
func (t *TableAlias) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 1)
	}
	return NewTableAlias(t.name, children[0]), nil
}
