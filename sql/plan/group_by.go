package plan

import (
	"strings"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// GroupBy groups the rows by some expressions. Like Project, GroupBy is a
// top-level node and contains all the fields that will appear in the output
// of the query. Some of these fields may be aggregate function calls, some
// may be columns or other expressions. The node also has a list of grouping
// expressions, which usually also appear in the list of selected
// expressions.
type GroupBy struct {
	UnaryNode
	SelectedExprs []sql.Expression
	GroupByExprs  []sql.Expression
}

var _ sql.Node = (*GroupBy)(nil)
var _ sql.Expressioner = (*GroupBy)(nil)

// NewGroupBy creates a new GroupBy node.
func NewGroupBy(selectedExprs, groupByExprs []sql.Expression, child sql.Node) *GroupBy {
	return &GroupBy{
		UnaryNode:     UnaryNode{Child: child},
		SelectedExprs: selectedExprs,
		GroupByExprs:  groupByExprs,
	}
}

func (g *GroupBy) String() string {
	pr := sql.NewTreePrinter()
	selected := make([]string, len(g.SelectedExprs))
	for i, e := range g.SelectedExprs {
		selected[i] = e.String()
	}
	grouping := make([]string, len(g.GroupByExprs))
	for i, e := range g.GroupByExprs {
		grouping[i] = e.String()
	}
	_ = pr.WriteNode("GroupBy(%s, group: %s)",
		strings.Join(selected, ", "),
		strings.Join(grouping, ", "),
	)
	_ = pr.WriteChildren(g.Child.String())
	return pr.String()
}

// Expressions implements the Expressioner interface.
func (g *GroupBy) Expressions() []sql.Expression {
	var exprs []sql.Expression
	exprs = append(exprs, g.SelectedExprs...)
	exprs = append(exprs, g.GroupByExprs...)
	return exprs
}

// WithExpressions implements the Expressioner interface.
func (g *GroupBy) WithExpressions(exprs ...sql.Expression) (sql.Node, error) {
	expected := len(g.SelectedExprs) + len(g.GroupByExprs)
	if len(exprs) != expected {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(exprs), expected)
	}
	return NewGroupBy(
		exprs[:len(g.SelectedExprs)],
		exprs[len(g.SelectedExprs):],
		g.Child,
	), nil
}

// WithChildren implements the Node interface.
func (g *GroupBy) WithChildren(children ...sql.Node) (sql.Node, error) {
	if len(children) != 1 {
		return nil, sql.ErrInvalidChildrenNumber.New(g, len(children), 1)
	}
	return NewGroupBy(g.SelectedExprs, g.GroupByExprs, children[0]), nil
}
