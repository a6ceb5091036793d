package domain // import "gopkg.in/src-d/go-mv-rewrite.v0/sql/domain"

import (
	"fmt"

	"gopkg.in/src-d/go-errors.v1"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

var (
	// ErrTypeMismatch is returned when two domain values belong to
	// different value spaces, for example char types of different declared
	// lengths.
	ErrTypeMismatch = errors.NewKind("cannot combine domains of types %s and %s")

	// ErrInvalidRange is returned when a range's low bound is above its
	// high bound.
	ErrInvalidRange = errors.NewKind("invalid range: low %s is above high %s")
)

// BoundKind is the position of a marker relative to its value.
type BoundKind int8

const (
	// Below the value, excluding it.
	Below BoundKind = iota
	// Exactly the value, including it.
	Exactly
	// Above the value, excluding it.
	Above
)

func (b BoundKind) String() string {
	switch b {
	case Below:
		return "below"
	case Exactly:
		return "exactly"
	case Above:
		return "above"
	default:
		return "invalid BoundKind"
	}
}

// Marker is a point in the totally ordered value space of a type, possibly
// between two values (Below/Above) or at one of the infinities. Ranges are
// delimited by two markers.
type Marker struct {
	typ      sql.Type
	value    interface{}
	bound    BoundKind
	infinity int8
}

// BelowValue returns a marker just below the given value.
func BelowValue(typ sql.Type, value interface{}) (Marker, error) {
	return newMarker(typ, value, Below)
}

// ExactlyValue returns a marker at the given value.
func ExactlyValue(typ sql.Type, value interface{}) (Marker, error) {
	return newMarker(typ, value, Exactly)
}

// AboveValue returns a marker just above the given value.
func AboveValue(typ sql.Type, value interface{}) (Marker, error) {
	return newMarker(typ, value, Above)
}

func newMarker(typ sql.Type, value interface{}, bound BoundKind) (Marker, error) {
	v, err := typ.Convert(value)
	if err != nil {
		return Marker{}, err
	}
	return Marker{typ: typ, value: v, bound: bound}, nil
}

// LowerUnbounded returns the marker below every value of the type.
func LowerUnbounded(typ sql.Type) Marker {
	return Marker{typ: typ, infinity: -1}
}

// UpperUnbounded returns the marker above every value of the type.
func UpperUnbounded(typ sql.Type) Marker {
	return Marker{typ: typ, infinity: 1}
}

// Type returns the type of the marker's value space.
func (m Marker) Type() sql.Type { return m.typ }

// IsUnbounded reports whether the marker sits at one of the infinities.
func (m Marker) IsUnbounded() bool { return m.infinity != 0 }

// Compare this marker against another of the same value space. Markers on
// the same value are ordered Below < Exactly < Above.
func (m Marker) Compare(o Marker) (int, error) {
	if m.typ != o.typ {
		return 0, ErrTypeMismatch.New(m.typ, o.typ)
	}
	if m.infinity != 0 || o.infinity != 0 {
		if m.infinity == o.infinity {
			return 0, nil
		}
		if m.infinity < o.infinity {
			return -1, nil
		}
		return 1, nil
	}

	cmp, err := m.typ.Compare(m.value, o.value)
	if err != nil {
		return 0, err
	}
	if cmp != 0 {
		return cmp, nil
	}
	if m.bound < o.bound {
		return -1, nil
	}
	if m.bound > o.bound {
		return 1, nil
	}
	return 0, nil
}

func (m Marker) String() string {
	switch m.infinity {
	case -1:
		return "-inf"
	case 1:
		return "+inf"
	}
	return fmt.Sprintf("%s %v", m.bound, m.value)
}

// adjacent reports whether a high marker and the following low marker leave
// no value of a continuous space between them.
func adjacent(high, low Marker) (bool, error) {
	if high.infinity != 0 || low.infinity != 0 {
		return false, nil
	}
	cmp, err := high.typ.Compare(high.value, low.value)
	if err != nil {
		return false, err
	}
	if cmp != 0 {
		return false, nil
	}
	return (high.bound == Exactly && low.bound == Above) ||
		(high.bound == Below && low.bound == Exactly), nil
}

// Range is a contiguous set of values delimited by a low and a high marker.
// Value spaces are treated as continuous: an open range between two
// consecutive integers is kept as a non-empty range.
type Range struct {
	Low  Marker
	High Marker
}

// NewRange creates a range between two markers. A range whose low marker is
// above its high marker, or that pinches down to an excluded single point,
// is invalid.
func NewRange(low, high Marker) (Range, error) {
	cmp, err := low.Compare(high)
	if err != nil {
		return Range{}, err
	}
	if cmp > 0 || (cmp == 0 && low.bound != Exactly) {
		return Range{}, ErrInvalidRange.New(low, high)
	}
	return Range{Low: low, High: high}, nil
}

// AllRange returns the range covering the whole value space of the type.
func AllRange(typ sql.Type) Range {
	return Range{Low: LowerUnbounded(typ), High: UpperUnbounded(typ)}
}

// PointRange returns the range holding exactly the given value.
func PointRange(typ sql.Type, value interface{}) (Range, error) {
	m, err := ExactlyValue(typ, value)
	if err != nil {
		return Range{}, err
	}
	return Range{Low: m, High: m}, nil
}

// Type returns the type of the range's value space.
func (r Range) Type() sql.Type { return r.Low.typ }

// IsAll reports whether the range spans the whole value space.
func (r Range) IsAll() bool {
	return r.Low.infinity == -1 && r.High.infinity == 1
}

// IsPoint reports whether the range holds exactly one value.
func (r Range) IsPoint() bool {
	if r.Low.infinity != 0 || r.High.infinity != 0 {
		return false
	}
	cmp, err := r.Low.Compare(r.High)
	return err == nil && cmp == 0
}

// Contains reports whether every value of the other range falls in r.
func (r Range) Contains(o Range) (bool, error) {
	cmp, err := r.Low.Compare(o.Low)
	if err != nil {
		return false, err
	}
	if cmp > 0 {
		return false, nil
	}
	cmp, err = o.High.Compare(r.High)
	if err != nil {
		return false, err
	}
	return cmp <= 0, nil
}

// Intersect returns the intersection of two ranges and whether it is
// non-empty.
func (r Range) Intersect(o Range) (Range, bool, error) {
	low := r.Low
	if cmp, err := o.Low.Compare(low); err != nil {
		return Range{}, false, err
	} else if cmp > 0 {
		low = o.Low
	}
	high := r.High
	if cmp, err := o.High.Compare(high); err != nil {
		return Range{}, false, err
	} else if cmp < 0 {
		high = o.High
	}
	res, err := NewRange(low, high)
	if err != nil {
		if ErrInvalidRange.Is(err) {
			return Range{}, false, nil
		}
		return Range{}, false, err
	}
	return res, true, nil
}

// mergeable reports whether two ranges overlap or are contiguous, so their
// union is a single range. o's low must not be below r's low.
func (r Range) mergeable(o Range) (bool, error) {
	cmp, err := o.Low.Compare(r.High)
	if err != nil {
		return false, err
	}
	if cmp <= 0 {
		return true, nil
	}
	return adjacent(r.High, o.Low)
}

func (r Range) String() string {
	return fmt.Sprintf("(%s, %s)", r.Low, r.High)
}
