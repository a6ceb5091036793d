package matview // import "gopkg.in/src-d/go-mv-rewrite.v0/sql/matview"

import (
	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/expression"
)

// Info is the normalized summary of a materialized view definition:
// its single base table, the mapping between base expressions and the
// columns the view exposes, its filter, its grouping keys and whether it
// collapses duplicates. An Info is built once by Extract and read-only
// afterwards, so it can be shared between concurrent rewrites.
type Info struct {
	baseTable  string
	baseToView map[uint64][]baseMapping
	viewToBase map[string]sql.Expression
	where      sql.Expression
	groupBy    map[uint64]sql.Expression
	distinct   bool
}

// baseMapping pairs a base expression with the view column exposing it. The
// expression is kept to confirm hash-keyed lookups structurally.
type baseMapping struct {
	expr sql.Expression
	name string
}

func newInfo() *Info {
	return &Info{
		baseToView: make(map[uint64][]baseMapping),
		viewToBase: make(map[string]sql.Expression),
		groupBy:    make(map[uint64]sql.Expression),
	}
}

// addProjection records a base expression exposed under the given view
// column name. A repeated name overwrites the previous entry, which is
// tolerable because duplicate aliases are rejected upstream by semantic
// analysis.
func (i *Info) addProjection(base sql.Expression, name string) {
	h := expression.Hash(base)
	mappings := i.baseToView[h]
	replaced := false
	for k, m := range mappings {
		if expression.StructurallyEqual(m.expr, base) {
			mappings[k] = baseMapping{base, name}
			replaced = true
			break
		}
	}
	if !replaced {
		i.baseToView[h] = append(mappings, baseMapping{base, name})
	}
	i.viewToBase[name] = base
}

// checkInvariants panics if the two projection maps fell out of sync. They
// are populated together, so a violation is a programming error.
func (i *Info) checkInvariants() {
	for _, base := range i.viewToBase {
		name, ok := i.ViewColumn(base)
		if !ok || !expression.StructurallyEqual(i.viewToBase[name], base) {
			panic("matview: baseToView and viewToBase are out of sync")
		}
	}
}

// BaseTable returns the name of the single base table of the view.
func (i *Info) BaseTable() string { return i.baseTable }

// IsDistinct returns whether the view collapses duplicate rows.
func (i *Info) IsDistinct() bool { return i.distinct }

// WhereClause returns the filter of the view, or nil if it has none.
func (i *Info) WhereClause() sql.Expression { return i.where }

// HasGroupBy returns whether the view groups its rows.
func (i *Info) HasGroupBy() bool { return len(i.groupBy) > 0 }

// GroupingKeys returns the grouping keys of the view, in no particular
// order.
func (i *Info) GroupingKeys() []sql.Expression {
	keys := make([]sql.Expression, 0, len(i.groupBy))
	for _, e := range i.groupBy {
		keys = append(keys, e)
	}
	return keys
}

// ViewColumn returns the name of the view column exposing the given base
// expression, matched structurally.
func (i *Info) ViewColumn(base sql.Expression) (string, bool) {
	for _, m := range i.baseToView[expression.Hash(base)] {
		if expression.StructurallyEqual(m.expr, base) {
			return m.name, true
		}
	}
	return "", false
}

// BaseExpression returns the base expression exposed under the given view
// column name.
func (i *Info) BaseExpression(name string) (sql.Expression, bool) {
	e, ok := i.viewToBase[name]
	return e, ok
}
