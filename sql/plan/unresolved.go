package plan

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// UnresolvedTable is a table reference by name that has not been bound to a
// physical table. The rewrite core matches tables by their qualified names
// and never resolves them.
type UnresolvedTable struct {
	name     string
	database string
}

var _ sql.Node = (*UnresolvedTable)(nil)
var _ sql.Nameable = (*UnresolvedTable)(nil)

// NewUnresolvedTable creates a new UnresolvedTable.
func NewUnresolvedTable(name, db string) *UnresolvedTable {
	return &UnresolvedTable{name, db}
}

// Name implements the Nameable interface.
func (t *UnresolvedTable) Name() string { return t.name }

// Database returns the database of the table.
func (t *UnresolvedTable) Database() string { return t.database }

// Children implements the Node interface.
func (*UnresolvedTable) Children() []sql.Node { return nil }

func (t *UnresolvedTable) String() string {
	if t.database == "" {
		return t.name
	}
	return t.database + "." + t.name
}

// WithChildren implements the Node interface.
func (t *UnresolvedTable) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), 0)
	}
	return t, nil
}
