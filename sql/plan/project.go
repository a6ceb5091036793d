package plan

import (
	"strings"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Project is a projection of certain expressions from the children node.
type Project struct {
	UnaryNode
	// Projections projected.
	Projections []sql.Expression
}

var _ sql.Node = (*Project)(nil)
var _ sql.Expressioner = (*Project)(nil)

// NewProject creates a new projection.
func NewProject(projections []sql.Expression, child sql.Node) *Project {
	return &Project{
		UnaryNode:   UnaryNode{child},
		Projections: projections,
	}
}

func (p *Project) String() string {
	pr := sql.NewTreePrinter()
	var exprs = make([]string, len(p.Projections))
	for i, expr := range p.Projections {
		exprs[i] = expr.String()
	}
	_ = pr.WriteNode("Project(%s)", strings.Join(exprs, ", "))
	_ = pr.WriteChildren(p.Child.String())
	return pr.String()
}

// Expressions implements the Expressioner interface.
func (p *Project) Expressions() []sql.Expression {
	return p.Projections
}

// WithExpressions implements the Expressioner interface.
func (p *Project) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	if len(exprs) != len(p.Projections) {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(exprs), len(p.Projections))
	}
	return NewProject(exprs, p.Child), nil
}

// WithChildren implements the Node interface.
func (p *Project) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(p, len(children), 1)
	}
	return NewProject(p.Projections, children[0]), nil
}
