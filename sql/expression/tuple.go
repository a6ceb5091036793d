package expression

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Tuple is a fixed-size collection of expressions.
type Tuple []sql.Expression

var _ sql.Expression = (Tuple)(nil)

// NewTuple creates a new Tuple expression.
func NewTuple(exprs ...sql.Expression) Tuple {
	return Tuple(exprs)
}

func (t Tuple) String() string {
	var exprs = make([]string, len(t))
	for i, e := range t {
		exprs[i] = e.String()
	}
	return fmt.Sprintf("(%s)", strings.Join(exprs, ", "))
}

// Children implements the Expression interface.
func (t Tuple) Children() []sql.Expression {
	return t
}

// WithChildren implements the Expression interface.
func (t Tuple) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(t) {
		return nil, sql.ErrInvalidChildrenNumber.New(t, len(children), len(t))
	}
	return NewTuple(children...), nil
}
