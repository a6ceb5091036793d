package sql // import "gopkg.in/src-d/go-mv-rewrite.v0/sql"

import "fmt"

// Expression is a node of an expression tree. Expressions are immutable:
// WithChildren returns a new expression instead of mutating the receiver.
// String returns the canonical rendering of the expression, which is also
// its identity for structural comparison.
type Expression interface {
	fmt.Stringer
	// Children returns the children expressions of this expression.
	Children() []Expression
	// WithChildren returns a copy of the expression with children replaced.
	// It will return an error if the number of children is different than
	// the current number of children.
	WithChildren(children ...Expression) (Expression, error)
}

// Node is a node of a query plan tree.
type Node interface {
	fmt.Stringer
	// Children nodes.
	Children() []Node
	// WithChildren returns a copy of the node with children replaced.
	// It will return an error if the number of children is different than
	// the current number of children.
	WithChildren(children ...Node) (Node, error)
}

// Expressioner is a node that contains expressions.
type Expressioner interface {
	// Expressions returns the list of expressions contained by the node.
	Expressions() []Expression
	// WithExpressions returns a copy of the node with expressions replaced.
	// It will return an error if the number of expressions is different
	// than the current number of expressions.
	WithExpressions(exprs ...Expression) (Node, error)
}

// Nameable is something that has a name.
type Nameable interface {
	// Name returns the name.
	Name() string
}

// Tableable is something that has a table.
type Tableable interface {
	// Table returns the table name.
	Table() string
}
