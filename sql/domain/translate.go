package domain

import (
	"unicode/utf8"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/expression"
)

// ErrUnmodeled is returned when a predicate expression cannot be translated
// exactly into a tuple domain. Callers must treat the predicate's domain as
// unknown.
var ErrUnmodeled = errors.NewKind("expression cannot be modeled as a tuple domain: %s")

// Translator translates predicate expressions over a single table into
// tuple domains. Column types come from the catalog; string literals are
// modeled in the value space of their own declared length.
type Translator struct {
	catalog sql.Catalog
	table   string
}

// NewTranslator creates a translator for predicates over the given table.
func NewTranslator(catalog sql.Catalog, table string) *Translator {
	return &Translator{catalog: catalog, table: table}
}

// FromExpression translates a predicate into a tuple domain. NOT is pushed
// down to the leaves, AND becomes intersection and OR becomes union of
// disjuncts over the same single column. Any shape outside that coverage
// (including a disjunction across different columns), any unknown column,
// and any literal outside the column's value space returns an error; the
// domain is then unknown.
func (t *Translator) FromExpression(ctx *sql.Context, e sql.Expression) (TupleDomain, error) {
	return t.translate(ctx, e, false)
}

type compareOp byte

const (
	opEq compareOp = iota
	opLt
	opLte
	opGt
	opGte
)

func (op compareOp) flip() compareOp {
	switch op {
	case opLt:
		return opGt
	case opLte:
		return opGte
	case opGt:
		return opLt
	case opGte:
		return opLte
	default:
		return op
	}
}

func (t *Translator) translate(ctx *sql.Context, e sql.Expression, negated bool) (TupleDomain, error) {
	switch v := e.(type) {
	case *expression.Not:
		return t.translate(ctx, v.Child, !negated)
	case *expression.And:
		return t.combine(ctx, v.Left, v.Right, !negated, negated)
	case *expression.Or:
		return t.combine(ctx, v.Left, v.Right, negated, negated)
	case *expression.Equals:
		return t.comparison(ctx, v.Left, v.Right, opEq, negated)
	case *expression.LessThan:
		return t.comparison(ctx, v.Left, v.Right, opLt, negated)
	case *expression.LessThanOrEqual:
		return t.comparison(ctx, v.Left, v.Right, opLte, negated)
	case *expression.GreaterThan:
		return t.comparison(ctx, v.Left, v.Right, opGt, negated)
	case *expression.GreaterThanOrEqual:
		return t.comparison(ctx, v.Left, v.Right, opGte, negated)
	case *expression.In:
		return t.inList(ctx, v.Left, v.Right, negated)
	case *expression.NotIn:
		return t.inList(ctx, v.Left, v.Right, !negated)
	default:
		return TupleDomain{}, ErrUnmodeled.New(e)
	}
}

// combine translates both sides of a logical binary expression and merges
// them. De Morgan flips the merge when the expression sits under a NOT.
func (t *Translator) combine(ctx *sql.Context, left, right sql.Expression, intersect, negated bool) (TupleDomain, error) {
	l, err := t.translate(ctx, left, negated)
	if err != nil {
		return TupleDomain{}, err
	}
	r, err := t.translate(ctx, right, negated)
	if err != nil {
		return TupleDomain{}, err
	}
	if intersect {
		return l.Intersect(r)
	}
	// A union is exact only when both sides constrain the same single
	// column, or one side admits no row or every row. Any other union
	// needs a cross-column disjunction and is left unmodeled.
	if !l.IsNone() && !r.IsNone() && !l.IsAll() && !r.IsAll() {
		lc, rc := l.Columns(), r.Columns()
		if len(lc) != 1 || len(rc) != 1 || lc[0] != rc[0] {
			return TupleDomain{}, ErrUnmodeled.New(expression.NewOr(left, right))
		}
	}
	return l.Union(r)
}

func (t *Translator) comparison(ctx *sql.Context, left, right sql.Expression, op compareOp, negated bool) (TupleDomain, error) {
	col, lit, flipped, err := operands(left, right)
	if err != nil {
		return TupleDomain{}, err
	}
	if flipped {
		op = op.flip()
	}

	typ, err := t.valueType(ctx, col, lit)
	if err != nil {
		return TupleDomain{}, err
	}

	set, err := comparisonSet(typ, op, lit.Value())
	if err != nil {
		return TupleDomain{}, ErrUnmodeled.Wrap(err, left)
	}
	return t.column(col, set, negated)
}

func (t *Translator) inList(ctx *sql.Context, left, right sql.Expression, negated bool) (TupleDomain, error) {
	col, ok := columnName(left)
	if !ok {
		return TupleDomain{}, ErrUnmodeled.New(left)
	}

	tuple, ok := right.(expression.Tuple)
	if !ok || len(tuple) == 0 {
		return TupleDomain{}, ErrUnmodeled.New(right)
	}

	lits := make([]*expression.Literal, len(tuple))
	for i, e := range tuple {
		lit, ok := e.(*expression.Literal)
		if !ok {
			return TupleDomain{}, ErrUnmodeled.New(e)
		}
		lits[i] = lit
	}

	typ, err := t.valueType(ctx, col, lits[0])
	if err != nil {
		return TupleDomain{}, err
	}

	values := make([]interface{}, len(lits))
	for i, lit := range lits {
		values[i] = lit.Value()
	}
	set, err := PointsSet(typ, values...)
	if err != nil {
		return TupleDomain{}, ErrUnmodeled.Wrap(err, right)
	}
	return t.column(col, set, negated)
}

// column wraps a value set for a single column into a tuple domain,
// complementing the set when the leaf sits under a NOT. Negation never
// admits NULL: NOT(a = 5) still rejects rows where a is NULL.
func (t *Translator) column(col string, set ValueSet, negated bool) (TupleDomain, error) {
	if negated {
		var err error
		set, err = set.Complement()
		if err != nil {
			return TupleDomain{}, err
		}
	}
	return TupleFromDomains(map[string]Domain{
		col: {Values: set},
	}), nil
}

// valueType returns the value space for a column constrained against the
// given literal. Text columns are modeled per literal in the char space of
// the literal's declared length, so literals of different lengths inhabit
// different spaces and their domains do not combine.
func (t *Translator) valueType(ctx *sql.Context, col string, lit *expression.Literal) (sql.Type, error) {
	typ, err := t.catalog.ColumnType(ctx, t.table, col)
	if err != nil {
		return nil, err
	}
	if sql.IsText(typ) {
		s, err := sql.Text.Convert(lit.Value())
		if err != nil {
			return nil, ErrUnmodeled.Wrap(err, lit)
		}
		return sql.Char(utf8.RuneCountInString(s.(string))), nil
	}
	return typ, nil
}

func comparisonSet(typ sql.Type, op compareOp, value interface{}) (ValueSet, error) {
	switch op {
	case opEq:
		return PointsSet(typ, value)
	case opLt:
		m, err := BelowValue(typ, value)
		if err != nil {
			return ValueSet{}, err
		}
		r, err := NewRange(LowerUnbounded(typ), m)
		if err != nil {
			return ValueSet{}, err
		}
		return NewValueSet(typ, r)
	case opLte:
		m, err := ExactlyValue(typ, value)
		if err != nil {
			return ValueSet{}, err
		}
		r, err := NewRange(LowerUnbounded(typ), m)
		if err != nil {
			return ValueSet{}, err
		}
		return NewValueSet(typ, r)
	case opGt:
		m, err := AboveValue(typ, value)
		if err != nil {
			return ValueSet{}, err
		}
		r, err := NewRange(m, UpperUnbounded(typ))
		if err != nil {
			return ValueSet{}, err
		}
		return NewValueSet(typ, r)
	case opGte:
		m, err := ExactlyValue(typ, value)
		if err != nil {
			return ValueSet{}, err
		}
		r, err := NewRange(m, UpperUnbounded(typ))
		if err != nil {
			return ValueSet{}, err
		}
		return NewValueSet(typ, r)
	default:
		panic("unknown comparison operator")
	}
}

// operands splits a comparison into its column and literal sides. flipped
// reports that the literal was on the left, so the caller must mirror the
// operator.
func operands(left, right sql.Expression) (col string, lit *expression.Literal, flipped bool, err error) {
	if c, ok := columnName(left); ok {
		if l, ok := right.(*expression.Literal); ok {
			return c, l, false, nil
		}
		return "", nil, false, ErrUnmodeled.New(right)
	}
	if l, ok := left.(*expression.Literal); ok {
		if c, ok := columnName(right); ok {
			return c, l, true, nil
		}
	}
	return "", nil, false, ErrUnmodeled.New(left)
}

// columnName returns the name of an unqualified column reference.
func columnName(e sql.Expression) (string, bool) {
	col, ok := e.(*expression.UnresolvedColumn)
	if !ok || col.Table() != "" {
		return "", false
	}
	return col.Name(), true
}
