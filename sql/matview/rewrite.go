package matview

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/expression"
)

// rewriteExpr substitutes every base reference in the expression by the
// view column exposing it. It reports false when the expression cannot be
// expressed from the view's projections, which aborts the whole rewrite.
//
// A whole-expression match against the view's projections wins over
// recursion, so a derived projection like SUM(a*b+c) exposed by the view is
// used as-is when the base query repeats it. A matched aggregate call stays
// wrapped in the call, SUM(a*b+c) becomes SUM(mv_sum), since the view holds
// one pre-aggregated row per group. The rewriter only substitutes; it never
// synthesizes rollup semantics beyond that.
func rewriteExpr(e sql.Expression, info *Info) (sql.Expression, bool) {
	if name, ok := info.ViewColumn(e); ok {
		col := expression.NewUnresolvedColumn(name)
		if fn, isCall := e.(*expression.UnresolvedFunction); isCall && fn.IsAggregate {
			return expression.NewUnresolvedFunction(fn.Name(), fn.IsAggregate, col), true
		}
		return col, true
	}

	switch v := e.(type) {
	case *expression.UnresolvedColumn:
		if v.Table() != "" {
			return nil, false
		}
		// Not a projected base column; the query may already name the
		// view-exposed column.
		if _, ok := info.BaseExpression(v.Name()); ok {
			return v, true
		}
		return nil, false
	case *expression.Literal:
		return v, true
	case *expression.Star:
		return nil, false
	default:
		children := e.Children()
		if len(children) == 0 {
			return nil, false
		}
		rewritten := make([]sql.Expression, len(children))
		for k, child := range children {
			c, ok := rewriteExpr(child, info)
			if !ok {
				return nil, false
			}
			rewritten[k] = c
		}
		ne, err := e.WithChildren(rewritten...)
		if err != nil {
			return nil, false
		}
		return ne, true
	}
}

// rewriteAll rewrites every expression of the list, aborting on the first
// one that is not expressible from the view.
func rewriteAll(exprs []sql.Expression, info *Info) ([]sql.Expression, bool) {
	result := make([]sql.Expression, len(exprs))
	for k, e := range exprs {
		ne, ok := rewriteExpr(e, info)
		if !ok {
			return nil, false
		}
		result[k] = ne
	}
	return result, true
}
