package matview

import (
	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/expression"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/plan"
)

// ErrNotSupported is returned when a view definition cannot be summarized
// for rewriting. It carries the offending part of the plan. A view that
// cannot be extracted cannot serve any rewrite.
var ErrNotSupported = errors.NewKind("materialized view not supported: %s in %s")

// Extract builds the rewrite summary of a materialized view definition in a
// single descent over its plan. Views with LIMIT, HAVING, all-columns
// projections, table aliases, subqueries, joins or more than one table are
// refused.
func Extract(view sql.Node) (*Info, error) {
	info := newInfo()

	node := view
	for node != nil {
		switch n := node.(type) {
		case *plan.Limit:
			return nil, ErrNotSupported.New("LIMIT clause", n)
		case *plan.Having:
			return nil, ErrNotSupported.New("HAVING clause", n)
		case *plan.Distinct:
			info.distinct = true
			node = n.Child
		case *plan.Sort:
			node = n.Child
		case *plan.Project:
			if err := info.addProjections(n.Projections, n); err != nil {
				return nil, err
			}
			node = n.Child
		case *plan.GroupBy:
			if err := info.addProjections(n.SelectedExprs, n); err != nil {
				return nil, err
			}
			if err := info.addGrouping(n.GroupByExprs, n); err != nil {
				return nil, err
			}
			node = n.Child
		case *plan.Filter:
			if info.where != nil {
				panic("matview: second filter in a view plan")
			}
			info.where = n.Expression
			node = n.Child
		case *plan.UnresolvedTable:
			if info.baseTable != "" {
				return nil, ErrNotSupported.New("more than one table", n)
			}
			info.baseTable = n.String()
			node = nil
		default:
			return nil, ErrNotSupported.New("relation other than a single table", n)
		}
	}

	if info.baseTable == "" {
		return nil, ErrNotSupported.New("missing base table", view)
	}

	info.checkInvariants()
	return info, nil
}

// addProjections records every projected item of the view's select list.
// The view column name is the alias when present, else the canonical
// rendering of the expression itself.
func (i *Info) addProjections(projections []sql.Expression, node sql.Node) error {
	if len(projections) == 0 {
		return ErrNotSupported.New("missing projections", node)
	}
	for _, p := range projections {
		switch e := p.(type) {
		case *expression.Star:
			return ErrNotSupported.New("all-columns projection", node)
		case *expression.Alias:
			i.addProjection(e.Child, e.Name())
		default:
			i.addProjection(e, e.String())
		}
	}
	return nil
}

// addGrouping records the view's grouping keys in base-expression form.
// Every key must be a projected base expression or name a view column.
func (i *Info) addGrouping(groupings []sql.Expression, node sql.Node) error {
	for _, g := range groupings {
		if _, ok := i.ViewColumn(g); ok {
			i.groupBy[expression.Hash(g)] = g
			continue
		}
		if col, ok := g.(*expression.UnresolvedColumn); ok && col.Table() == "" {
			if base, ok := i.BaseExpression(col.Name()); ok {
				i.groupBy[expression.Hash(base)] = base
				continue
			}
		}
		return ErrNotSupported.New("grouping key not exposed as a column", node)
	}
	return nil
}
