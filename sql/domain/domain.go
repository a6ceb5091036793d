package domain

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// Domain is the set of values a single column may take: a value set plus a
// bit telling whether NULL is admitted.
type Domain struct {
	Values      ValueSet
	NullAllowed bool
}

// NoneDomain returns the domain admitting no value at all.
func NoneDomain(typ sql.Type) Domain {
	return Domain{Values: NoneSet(typ)}
}

// AllDomain returns the domain admitting every value including NULL.
func AllDomain(typ sql.Type) Domain {
	return Domain{Values: AllSet(typ), NullAllowed: true}
}

// Type returns the type of the domain's value space.
func (d Domain) Type() sql.Type { return d.Values.Type() }

// IsEmpty reports whether the domain admits no value.
func (d Domain) IsEmpty() bool { return d.Values.IsEmpty() && !d.NullAllowed }

// IsAll reports whether the domain admits every value including NULL.
func (d Domain) IsAll() bool { return d.Values.IsAll() && d.NullAllowed }

// Union returns the domain admitting values of either domain.
func (d Domain) Union(o Domain) (Domain, error) {
	values, err := d.Values.Union(o.Values)
	if err != nil {
		return Domain{}, err
	}
	return Domain{Values: values, NullAllowed: d.NullAllowed || o.NullAllowed}, nil
}

// Intersect returns the domain admitting values of both domains.
func (d Domain) Intersect(o Domain) (Domain, error) {
	values, err := d.Values.Intersect(o.Values)
	if err != nil {
		return Domain{}, err
	}
	return Domain{Values: values, NullAllowed: d.NullAllowed && o.NullAllowed}, nil
}

// Complement returns the domain admitting exactly the values the domain
// rejects, within its type.
func (d Domain) Complement() (Domain, error) {
	values, err := d.Values.Complement()
	if err != nil {
		return Domain{}, err
	}
	return Domain{Values: values, NullAllowed: !d.NullAllowed}, nil
}

// Contains reports whether every value admitted by the other domain is
// admitted by d.
func (d Domain) Contains(o Domain) (bool, error) {
	if o.NullAllowed && !d.NullAllowed {
		return false, nil
	}
	return d.Values.Contains(o.Values)
}

func (d Domain) String() string {
	if d.NullAllowed {
		return fmt.Sprintf("%s or NULL", d.Values)
	}
	return d.Values.String()
}

// TupleDomain describes the rows a predicate admits, one domain per
// constrained column: a row is admitted iff every column value lies in its
// column's domain. Columns without a domain are unconstrained. The none
// tuple domain admits no row at all.
type TupleDomain struct {
	none    bool
	domains map[string]Domain
}

// AllTuple returns the tuple domain admitting every row.
func AllTuple() TupleDomain {
	return TupleDomain{}
}

// NoneTuple returns the tuple domain admitting no row.
func NoneTuple() TupleDomain {
	return TupleDomain{none: true}
}

// TupleFromDomains builds a tuple domain from per-column domains. A column
// with an empty domain collapses the whole tuple domain to none.
func TupleFromDomains(domains map[string]Domain) TupleDomain {
	result := make(map[string]Domain, len(domains))
	for col, d := range domains {
		if d.IsEmpty() {
			return NoneTuple()
		}
		if d.IsAll() {
			continue
		}
		result[col] = d
	}
	return TupleDomain{domains: result}
}

// IsNone reports whether the tuple domain admits no row.
func (t TupleDomain) IsNone() bool { return t.none }

// IsAll reports whether the tuple domain admits every row.
func (t TupleDomain) IsAll() bool { return !t.none && len(t.domains) == 0 }

// ColumnDomain returns the domain of the given column, if constrained.
func (t TupleDomain) ColumnDomain(column string) (Domain, bool) {
	d, ok := t.domains[column]
	return d, ok
}

// Columns returns the constrained column names in lexicographic order.
func (t TupleDomain) Columns() []string {
	cols := make([]string, 0, len(t.domains))
	for col := range t.domains {
		cols = append(cols, col)
	}
	sort.Strings(cols)
	return cols
}

// Intersect returns the tuple domain admitting rows admitted by both.
func (t TupleDomain) Intersect(o TupleDomain) (TupleDomain, error) {
	if t.none || o.none {
		return NoneTuple(), nil
	}
	result := make(map[string]Domain, len(t.domains)+len(o.domains))
	for col, d := range t.domains {
		result[col] = d
	}
	for col, d := range o.domains {
		prev, ok := result[col]
		if !ok {
			result[col] = d
			continue
		}
		merged, err := prev.Intersect(d)
		if err != nil {
			return TupleDomain{}, err
		}
		result[col] = merged
	}
	return TupleFromDomains(result), nil
}

// Union returns a tuple domain admitting every row admitted by either
// operand. The union is column-wise: a column constrained on only one side
// becomes unconstrained, so the result may admit more rows than the exact
// union when the operands constrain different columns.
func (t TupleDomain) Union(o TupleDomain) (TupleDomain, error) {
	if t.none {
		return o, nil
	}
	if o.none {
		return t, nil
	}
	result := make(map[string]Domain)
	for col, d := range t.domains {
		od, ok := o.domains[col]
		if !ok {
			continue
		}
		merged, err := d.Union(od)
		if err != nil {
			return TupleDomain{}, err
		}
		result[col] = merged
	}
	return TupleFromDomains(result), nil
}

// Contains reports whether every row admitted by the other tuple domain is
// admitted by t.
func (t TupleDomain) Contains(o TupleDomain) (bool, error) {
	if o.none {
		return true, nil
	}
	if t.none {
		return false, nil
	}
	for col, d := range t.domains {
		od, ok := o.domains[col]
		if !ok {
			od = AllDomain(d.Type())
		}
		contained, err := d.Contains(od)
		if err != nil {
			return false, err
		}
		if !contained {
			return false, nil
		}
	}
	return true, nil
}

func (t TupleDomain) String() string {
	if t.none {
		return "none"
	}
	if len(t.domains) == 0 {
		return "all"
	}
	parts := make([]string, 0, len(t.domains))
	for _, col := range t.Columns() {
		parts = append(parts, fmt.Sprintf("%s: %s", col, t.domains[col]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
