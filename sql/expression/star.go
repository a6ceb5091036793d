package expression

import (
	"fmt"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Star represents the selection of all available fields. This is a
// placeholder node that the rewriter refuses; expanding it requires schema
// resolution, which happens outside this module.
type Star struct {
	// Table, if not empty, means the star is only for that table.
	Table string
}

var _ sql.Expression = (*Star)(nil)

// NewStar returns a new Star expression.
func NewStar() *Star {
	return new(Star)
}

// NewQualifiedStar returns a new Star expression only for a specific table.
func NewQualifiedStar(table string) *Star {
	return &Star{table}
}

func (s *Star) String() string {
	if s.Table != "" {
		return fmt.Sprintf("%s.*", s.Table)
	}
	return "*"
}

// Children implements the Expression interface.
func (*Star) Children() []sql.Expression {
	return nil
}

// WithChildren implements the Expression interface.
func (s *Star) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(s, len(children), 0)
	}
	return s, nil
}
