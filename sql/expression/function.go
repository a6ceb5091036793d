package expression

import (
	"fmt"
	"strings"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// UnresolvedFunction represents a function call that has not been bound to
// an implementation. The rewrite core never evaluates functions, so calls
// stay unresolved; aggregates are just function calls flagged as such by the
// parser.
type UnresolvedFunction struct {
	name string
	// IsAggregate or not.
	IsAggregate bool
	// Arguments of the function.
	Arguments []sql.Expression
}

var _ sql.Expression = (*UnresolvedFunction)(nil)
var _ sql.Nameable = (*UnresolvedFunction)(nil)

// NewUnresolvedFunction creates a new UnresolvedFunction expression.
func NewUnresolvedFunction(name string, agg bool, arguments ...sql.Expression) *UnresolvedFunction {
	return &UnresolvedFunction{
		name:        name,
		IsAggregate: agg,
		Arguments:   arguments,
	}
}

// Children implements the Expression interface.
func (uf *UnresolvedFunction) Children() []sql.Expression {
	return uf.Arguments
}

// Name implements the Nameable interface.
func (uf *UnresolvedFunction) Name() string { return uf.name }

func (uf *UnresolvedFunction) String() string {
	var exprs = make([]string, len(uf.Arguments))
	for i, e := range uf.Arguments {
		exprs[i] = e.String()
	}
	return fmt.Sprintf("%s(%s)", uf.name, strings.Join(exprs, ", "))
}

// WithChildren implements the Expression interface.
func (uf *UnresolvedFunction) WithChildren(children ...sql.Expression) (sql.Expression, error) {
	if len(children) != len(uf.Arguments) {
		return nil, sql.ErrInvalidChildrenNumber.New(uf, len(children), len(uf.Arguments))
	}
	return NewUnresolvedFunction(uf.name, uf.IsAggregate, children...), nil
}

// ContainsAggregate returns whether the expression contains an aggregate
// function call.
func ContainsAggregate(e sql.Expression) bool {
	var agg bool
	Inspect(e, func(e sql.Expression) bool {
		if fn, ok := e.(*UnresolvedFunction); ok && fn.IsAggregate {
			agg = true
			return false
		}
		return true
	})
	return agg
}
