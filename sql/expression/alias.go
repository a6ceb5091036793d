package expression

import (
	"fmt"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Alias is a node that gives a name to an expression.
type Alias struct {
	UnaryExpression
	name string
}

var _ sql.Expression = (*Alias)(nil)
var _ sql.Nameable = (*Alias)(nil)

// NewAlias returns a new Alias node.
func NewAlias(expr sql.Expression, name string) *Alias {
	return &Alias{UnaryExpression{expr}, name}
}

func (e *Alias) String() string {
	return fmt.Sprintf("%s as %s", e.Child, e.name)
}

// WithChildren implements the Expression interface.
func (e *Alias) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 1)
	}
	return NewAlias(children[0], e.name), nil
}

// Name implements the Nameable interface.
func (e *Alias) Name() string { return e.name }
