package expression

import (
	"fmt"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// UnresolvedColumn is a reference to a column by name, not yet bound to any
// table schema. The rewrite core works entirely on unresolved columns; the
// catalog is only consulted for their types during domain translation.
type UnresolvedColumn struct {
	name  string
	table string
}

var _ sql.Expression = (*UnresolvedColumn)(nil)
var _ sql.Nameable = (*UnresolvedColumn)(nil)
var _ sql.Tableable = (*UnresolvedColumn)(nil)

// NewUnresolvedColumn creates a new UnresolvedColumn expression.
func NewUnresolvedColumn(name string) *UnresolvedColumn {
	return &UnresolvedColumn{name: name}
}

// NewUnresolvedQualifiedColumn creates a new UnresolvedColumn expression
// with a table qualifier.
func NewUnresolvedQualifiedColumn(table, name string) *UnresolvedColumn {
	return &UnresolvedColumn{name: name, table: table}
}

// Children implements the Expression interface.
func (*UnresolvedColumn) Children() []sql.Expression {
	return nil
}

// Name implements the Nameable interface.
func (uc *UnresolvedColumn) Name() string { return uc.name }

// Table implements the Tableable interface.
func (uc *UnresolvedColumn) Table() string { return uc.table }

func (uc *UnresolvedColumn) String() string {
	if uc.table == "" {
		return uc.name
	}
	return fmt.Sprintf("%s.%s", uc.table, uc.name)
}

// WithChildren implements the Expression interface.
func (uc *UnresolvedColumn) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(uc, len(children), 0)
	}
	return uc, nil
}
