package domain

import (
	"sort"
	"strings"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// ValueSet is a finite union of ranges over one value space, kept canonical:
// ranges are sorted, disjoint and non-contiguous, so two sets describing the
// same values have the same ranges.
type ValueSet struct {
	typ    sql.Type
	ranges []Range
}

// NoneSet returns the empty set of the given value space.
func NoneSet(typ sql.Type) ValueSet {
	return ValueSet{typ: typ}
}

// AllSet returns the set covering the given value space.
func AllSet(typ sql.Type) ValueSet {
	return ValueSet{typ: typ, ranges: []Range{AllRange(typ)}}
}

// NewValueSet builds a canonical set from the given ranges.
func NewValueSet(typ sql.Type, ranges ...Range) (ValueSet, error) {
	for _, r := range ranges {
		if r.Type() != typ {
			return ValueSet{}, ErrTypeMismatch.New(typ, r.Type())
		}
	}
	normalized, err := normalize(ranges)
	if err != nil {
		return ValueSet{}, err
	}
	return ValueSet{typ: typ, ranges: normalized}, nil
}

// PointsSet builds the set holding exactly the given values.
func PointsSet(typ sql.Type, values ...interface{}) (ValueSet, error) {
	ranges := make([]Range, len(values))
	for i, v := range values {
		r, err := PointRange(typ, v)
		if err != nil {
			return ValueSet{}, err
		}
		ranges[i] = r
	}
	return NewValueSet(typ, ranges...)
}

// normalize sorts ranges by their low marker and merges every overlapping
// or contiguous pair.
func normalize(ranges []Range) ([]Range, error) {
	if len(ranges) == 0 {
		return nil, nil
	}

	sorted := make([]Range, len(ranges))
	copy(sorted, ranges)
	var sortErr error
	sort.Slice(sorted, func(i, j int) bool {
		cmp, err := sorted[i].Low.Compare(sorted[j].Low)
		if err != nil && sortErr == nil {
			sortErr = err
		}
		return cmp < 0
	})
	if sortErr != nil {
		return nil, sortErr
	}

	result := []Range{sorted[0]}
	for _, r := range sorted[1:] {
		last := &result[len(result)-1]
		ok, err := last.mergeable(r)
		if err != nil {
			return nil, err
		}
		if !ok {
			result = append(result, r)
			continue
		}
		cmp, err := r.High.Compare(last.High)
		if err != nil {
			return nil, err
		}
		if cmp > 0 {
			last.High = r.High
		}
	}
	return result, nil
}

// Type returns the type of the set's value space.
func (s ValueSet) Type() sql.Type { return s.typ }

// Ranges returns the canonical ranges of the set.
func (s ValueSet) Ranges() []Range { return s.ranges }

// IsEmpty reports whether the set holds no values.
func (s ValueSet) IsEmpty() bool { return len(s.ranges) == 0 }

// IsAll reports whether the set covers the whole value space.
func (s ValueSet) IsAll() bool {
	return len(s.ranges) == 1 && s.ranges[0].IsAll()
}

// Union returns the set of values in either set.
func (s ValueSet) Union(o ValueSet) (ValueSet, error) {
	if s.typ != o.typ {
		return ValueSet{}, ErrTypeMismatch.New(s.typ, o.typ)
	}
	all := make([]Range, 0, len(s.ranges)+len(o.ranges))
	all = append(all, s.ranges...)
	all = append(all, o.ranges...)
	return NewValueSet(s.typ, all...)
}

// Intersect returns the set of values in both sets.
func (s ValueSet) Intersect(o ValueSet) (ValueSet, error) {
	if s.typ != o.typ {
		return ValueSet{}, ErrTypeMismatch.New(s.typ, o.typ)
	}
	var result []Range
	for _, a := range s.ranges {
		for _, b := range o.ranges {
			r, ok, err := a.Intersect(b)
			if err != nil {
				return ValueSet{}, err
			}
			if ok {
				result = append(result, r)
			}
		}
	}
	return NewValueSet(s.typ, result...)
}

// Complement returns the set of values of the space not in the set.
func (s ValueSet) Complement() (ValueSet, error) {
	if s.IsEmpty() {
		return AllSet(s.typ), nil
	}

	var result []Range
	low := LowerUnbounded(s.typ)
	for _, r := range s.ranges {
		if r.Low.infinity != -1 {
			gap, err := NewRange(low, flipLowToHigh(r.Low))
			if err == nil {
				result = append(result, gap)
			} else if !ErrInvalidRange.Is(err) {
				return ValueSet{}, err
			}
		}
		if r.High.infinity == 1 {
			return NewValueSet(s.typ, result...)
		}
		low = flipHighToLow(r.High)
	}
	gap, err := NewRange(low, UpperUnbounded(s.typ))
	if err != nil {
		return ValueSet{}, err
	}
	result = append(result, gap)
	return NewValueSet(s.typ, result...)
}

// flipLowToHigh turns the low marker of a range into the high marker of the
// gap that precedes it.
func flipLowToHigh(m Marker) Marker {
	switch m.bound {
	case Above:
		m.bound = Exactly
	case Exactly:
		m.bound = Below
	}
	return m
}

// flipHighToLow turns the high marker of a range into the low marker of the
// gap that follows it.
func flipHighToLow(m Marker) Marker {
	switch m.bound {
	case Below:
		m.bound = Exactly
	case Exactly:
		m.bound = Above
	}
	return m
}

// Contains reports whether every value of the other set is in s. Since both
// sets are canonical, each range of o must fall inside a single range of s.
func (s ValueSet) Contains(o ValueSet) (bool, error) {
	if s.typ != o.typ {
		return false, ErrTypeMismatch.New(s.typ, o.typ)
	}
	for _, b := range o.ranges {
		var contained bool
		for _, a := range s.ranges {
			ok, err := a.Contains(b)
			if err != nil {
				return false, err
			}
			if ok {
				contained = true
				break
			}
		}
		if !contained {
			return false, nil
		}
	}
	return true, nil
}

func (s ValueSet) String() string {
	parts := make([]string, len(s.ranges))
	for i, r := range s.ranges {
		parts[i] = r.String()
	}
	return "{" + strings.Join(parts, ", ") + "}"
}
