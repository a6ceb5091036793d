package matview

import (
	"github.com/sirupsen/logrus"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/domain"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/plan"
)

// Rewriter rewrites base queries to read from the target table holding the
// contents of a materialized view. It is opportunistic: any query it cannot
// rewrite is returned unchanged, never failed, so the caller can always use
// the result.
type Rewriter struct {
	catalog sql.Catalog
	info    *Info
	target  string
}

// NewRewriter creates a rewriter for the extracted view summary and the
// table its contents are queryable under. The rewriter is stateless across
// calls and safe for concurrent use if the catalog is.
func NewRewriter(catalog sql.Catalog, info *Info, target string) *Rewriter {
	return &Rewriter{catalog: catalog, info: info, target: target}
}

// Info returns the view summary the rewriter works from.
func (r *Rewriter) Info() *Info { return r.info }

// Target returns the table queries are rewritten to read from.
func (r *Rewriter) Target() string { return r.target }

// Rewrite returns the query rewritten against the view target table, or the
// query unchanged when any precondition fails: unsupported shape, a
// reference not expressible from the view, or a filter not provably
// contained in the view's filter.
func (r *Rewriter) Rewrite(ctx *sql.Context, q sql.Node) sql.Node {
	span, ctx := ctx.Span("matview.rewrite")
	defer span.Finish()

	rewritten, reason := r.rewrite(ctx, q)
	if rewritten == nil {
		logrus.WithFields(logrus.Fields{
			"table":  r.info.BaseTable(),
			"target": r.target,
			"reason": reason,
		}).Debug("query not rewritten against materialized view")
		return q
	}
	return rewritten
}

// queryParts is the decomposed shape of a rewritable query:
// Limit(Sort(Distinct(Project|GroupBy(Filter(Table))))) with every layer
// but the projection and the table optional.
type queryParts struct {
	limit    *plan.Limit
	sort     *plan.Sort
	distinct bool
	project  *plan.Project
	groupBy  *plan.GroupBy
	filter   *plan.Filter
	table    *plan.UnresolvedTable
}

func (r *Rewriter) rewrite(ctx *sql.Context, q sql.Node) (sql.Node, string) {
	parts, ok := decompose(q)
	if !ok {
		return nil, "unsupported query shape"
	}

	if parts.table.String() != r.info.BaseTable() {
		return nil, "query table does not match the view base table"
	}

	if r.info.IsDistinct() && !parts.distinct {
		return nil, "the view has collapsed duplicate rows"
	}

	if r.info.HasGroupBy() && parts.groupBy == nil {
		return nil, "the view has grouped rows and the query does not aggregate"
	}

	node, ok := r.rebuild(parts)
	if !ok {
		return nil, "a referenced expression is not expressible from the view"
	}

	if contained, reason := r.checkContainment(ctx, parts); !contained {
		return nil, reason
	}

	return node, ""
}

// decompose peels the query layers in their grammatical order. Any other
// node kind, a join, a subquery or a table alias makes the query
// non-rewritable.
func decompose(q sql.Node) (queryParts, bool) {
	var parts queryParts

	node := q
	if n, ok := node.(*plan.Limit); ok {
		parts.limit = n
		node = n.Child
	}
	if n, ok := node.(*plan.Sort); ok {
		parts.sort = n
		node = n.Child
	}
	if n, ok := node.(*plan.Distinct); ok {
		parts.distinct = true
		node = n.Child
	}
	switch n := node.(type) {
	case *plan.Project:
		parts.project = n
		node = n.Child
	case *plan.GroupBy:
		parts.groupBy = n
		node = n.Child
	default:
		return queryParts{}, false
	}
	if n, ok := node.(*plan.Filter); ok {
		parts.filter = n
		node = n.Child
	}
	table, ok := node.(*plan.UnresolvedTable)
	if !ok {
		return queryParts{}, false
	}
	parts.table = table
	return parts, true
}

// rebuild assembles the rewritten query bottom-up, substituting every
// expression and replacing the scanned table by the view target.
func (r *Rewriter) rebuild(parts queryParts) (sql.Node, bool) {
	var node sql.Node = plan.NewUnresolvedTable(r.target, "")

	if parts.filter != nil {
		cond, ok := rewriteExpr(parts.filter.Expression, r.info)
		if !ok {
			return nil, false
		}
		node = plan.NewFilter(cond, node)
	}

	if parts.groupBy != nil {
		selected, ok := rewriteAll(parts.groupBy.SelectedExprs, r.info)
		if !ok {
			return nil, false
		}
		grouping, ok := rewriteAll(parts.groupBy.GroupByExprs, r.info)
		if !ok {
			return nil, false
		}
		node = plan.NewGroupBy(selected, grouping, node)
	} else {
		projections, ok := rewriteAll(parts.project.Projections, r.info)
		if !ok {
			return nil, false
		}
		node = plan.NewProject(projections, node)
	}

	if parts.distinct {
		node = plan.NewDistinct(node)
	}

	if parts.sort != nil {
		fields := make([]plan.SortField, len(parts.sort.SortFields))
		for k, f := range parts.sort.SortFields {
			col, ok := rewriteExpr(f.Column, r.info)
			if !ok {
				return nil, false
			}
			fields[k] = plan.SortField{
				Column:       col,
				Order:        f.Order,
				NullOrdering: f.NullOrdering,
			}
		}
		node = plan.NewSort(fields, node)
	}

	if parts.limit != nil {
		node = plan.NewLimit(parts.limit.Size, node)
	}

	return node, true
}

// checkContainment proves that every row the query wants is present in the
// view: domain(query filter) must be a subset of domain(view filter). An
// absent view filter admits every row. When either filter cannot be modeled
// exactly the containment is unknown and the rewrite is declined.
func (r *Rewriter) checkContainment(ctx *sql.Context, parts queryParts) (bool, string) {
	viewWhere := r.info.WhereClause()
	if viewWhere == nil {
		return true, ""
	}
	if parts.filter == nil {
		return false, "the view is filtered and the query is not"
	}

	translator := domain.NewTranslator(r.catalog, r.info.BaseTable())
	queryDomain, err := translator.FromExpression(ctx, parts.filter.Expression)
	if err != nil {
		return false, "query filter domain is unknown: " + err.Error()
	}
	viewDomain, err := translator.FromExpression(ctx, viewWhere)
	if err != nil {
		return false, "view filter domain is unknown: " + err.Error()
	}

	contained, err := viewDomain.Contains(queryDomain)
	if err != nil {
		return false, "filter containment is unknown: " + err.Error()
	}
	if !contained {
		return false, "query filter is not contained in the view filter"
	}
	return true, ""
}
