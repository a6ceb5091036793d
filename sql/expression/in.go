package expression

import (
	"fmt"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// In is an expression that checks an expression is inside a list of
// expressions.
type In struct {
	BinaryExpression
}

var _ sql.Expression = (*In)(nil)

// NewIn creates an In expression.
func NewIn(left, right sql.Expression) *In {
	return &In{BinaryExpression{left, right}}
}

func (in *In) String() string {
	return fmt.Sprintf("%s IN %s", in.Left, in.Right)
}

// WithChildren implements the Expression interface.
func (in *In) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(in, len(children), 2)
	}
	return NewIn(children[0], children[1]), nil
}

// NotIn is an expression that checks an expression is not inside a list of
// expressions.
type NotIn struct {
	BinaryExpression
}

var _ sql.Expression = (*NotIn)(nil)

// NewNotIn creates a NotIn expression.
func NewNotIn(left, right sql.Expression) *NotIn {
	return &NotIn{BinaryExpression{left, right}}
}

func (in *NotIn) String() string {
	return fmt.Sprintf("%s NOT IN %s", in.Left, in.Right)
}

// WithChildren implements the Expression interface.
func (in *NotIn) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(in, len(children), 2)
	}
	return NewNotIn(children[0], children[1]), nil
}
