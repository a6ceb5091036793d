package expression

import (
	"fmt"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Comparison is an expression that compares an expression against another.
type Comparison struct {
	BinaryExpression
}

// NewComparison creates a new comparison between two expressions.
func NewComparison(left, right sql.Expression) Comparison {
	return Comparison{BinaryExpression{left, right}}
}

// Equals is a comparison that checks an expression is equal to another.
type Equals struct {
	Comparison
}

var _ sql.Expression = (*Equals)(nil)

// NewEquals returns a new Equals expression.
func NewEquals(left, right sql.Expression) *Equals {
	return &Equals{NewComparison(left, right)}
}

func (e *Equals) String() string {
	return fmt.Sprintf("%s = %s", e.Left, e.Right)
}

// WithChildren implements the Expression interface.
func (e *Equals) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(e, len(children), 2)
	}
	return NewEquals(children[0], children[1]), nil
}

// GreaterThan is a comparison that checks an expression is greater than another.
type GreaterThan struct {
	Comparison
}

var _ sql.Expression = (*GreaterThan)(nil)

// NewGreaterThan creates a new GreaterThan expression.
func NewGreaterThan(left, right sql.Expression) *GreaterThan {
	return &GreaterThan{NewComparison(left, right)}
}

func (gt *GreaterThan) String() string {
	return fmt.Sprintf("%s > %s", gt.Left, gt.Right)
}

// WithChildren implements the Expression interface.
func (gt *GreaterThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(gt, len(children), 2)
	}
	return NewGreaterThan(children[0], children[1]), nil
}

// LessThan is a comparison that checks an expression is less than another.
type LessThan struct {
	Comparison
}

var _ sql.Expression = (*LessThan)(nil)

// NewLessThan creates a new LessThan expression.
func NewLessThan(left, right sql.Expression) *LessThan {
	return &LessThan{NewComparison(left, right)}
}

func (lt *LessThan) String() string {
	return fmt.Sprintf("%s < %s", lt.Left, lt.Right)
}

// WithChildren implements the Expression interface.
func (lt *LessThan) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(lt, len(children), 2)
	}
	return NewLessThan(children[0], children[1]), nil
}

// GreaterThanOrEqual is a comparison that checks an expression is greater
// than or equal to another.
type GreaterThanOrEqual struct {
	Comparison
}

var _ sql.Expression = (*GreaterThanOrEqual)(nil)

// NewGreaterThanOrEqual creates a new GreaterThanOrEqual expression.
func NewGreaterThanOrEqual(left, right sql.Expression) *GreaterThanOrEqual {
	return &GreaterThanOrEqual{NewComparison(left, right)}
}

func (gte *GreaterThanOrEqual) String() string {
	return fmt.Sprintf("%s >= %s", gte.Left, gte.Right)
}

// WithChildren implements the Expression interface.
func (gte *GreaterThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(gte, len(children), 2)
	}
	return NewGreaterThanOrEqual(children[0], children[1]), nil
}

// LessThanOrEqual is a comparison that checks an expression is less than or
// equal to another.
type LessThanOrEqual struct {
	Comparison
}

var _ sql.Expression = (*LessThanOrEqual)(nil)

// NewLessThanOrEqual creates a LessThanOrEqual expression.
func NewLessThanOrEqual(left, right sql.Expression) *LessThanOrEqual {
	return &LessThanOrEqual{NewComparison(left, right)}
}

func (lte *LessThanOrEqual) String() string {
	return fmt.Sprintf("%s <= %s", lte.Left, lte.Right)
}

// WithChildren implements the Expression interface.
func (lte *LessThanOrEqual) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 2 {
		return nil, sql.ErrInvalidChildrenNumber.New(lte, len(children), 2)
	}
	return NewLessThanOrEqual(children[0], children[1]), nil
}
