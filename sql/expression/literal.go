package expression

import (
	"fmt"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Literal represents a literal expression (string, number, bool, ...).
type Literal struct {
	value     interface{}
	fieldType sql.Type
}

var _ sql.Expression = (*Literal)(nil)

// NewLiteral creates a new Literal expression.
func NewLiteral(value interface{}, fieldType sql.Type) *Literal {
	return &Literal{
		value:     value,
		fieldType: fieldType,
	}
}

// Value returns the literal value.
func (p *Literal) Value() interface{} {
	return p.value
}

// Type returns the type of the literal.
func (p *Literal) Type() sql.Type {
	return p.fieldType
}

// Children implements the Expression interface.
func (*Literal) Children() []sql.Expression {
	return nil
}

func (p *Literal) String() string {
	switch v := p.value.(type) {
	case string:
		return fmt.Sprintf("'%s'", v)
	case nil:
		return "NULL"
	default:
		return fmt.Sprint(v)
	}
}

// WithChildren implements the Expression interface.
func (p *Literal) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != 0 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 0)
	}
	return p, nil
}
