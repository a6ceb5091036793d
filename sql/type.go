package sql

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cast"
)

// Type represents a SQL scalar type. Values of a type form a totally ordered
// value space; Compare defines that order and Convert coerces a Go value
// into it.
type Type interface {
	// String returns the SQL rendering of the type.
	String() string
	// Convert a value of a compatible Go type to the type's value space.
	Convert(v interface{}) (interface{}, error)
	// Compare two values of the type's value space. It returns -1, 0 or 1.
	Compare(a, b interface{}) (int, error)
}

var (
	// Null represents the type of NULL values.
	Null Type = nullType{}
	// Boolean is a boolean type.
	Boolean Type = booleanType{}
	// Int64 is an integer of 64 bits.
	Int64 Type = numberType{floating: false}
	// Float64 is a floating point number of 64 bits. Decimal literals are
	// carried as Float64, which is approximate for high-precision decimals.
	Float64 Type = numberType{floating: true}
	// Text is an unbounded string type with lexicographic ordering.
	Text Type = stringType{length: -1}
	// Date is a date stored in its canonical yyyy-MM-dd rendering, ordered
	// lexicographically, which matches chronological order.
	Date Type = dateType{}
)

// Char returns a string type of the given fixed declared length. Two char
// types of different lengths describe different value spaces and their
// domains cannot be mixed.
func Char(length int) Type {
	return stringType{length: length}
}

type nullType struct{}

func (nullType) String() string { return "NULL" }

func (nullType) Convert(v interface{}) (interface{}, error) {
	return nil, nil
}

func (nullType) Compare(a, b interface{}) (int, error) {
	return 0, nil
}

type booleanType struct{}

func (booleanType) String() string { return "BOOLEAN" }

func (booleanType) Convert(v interface{}) (interface{}, error) {
	return cast.ToBoolE(v)
}

func (booleanType) Compare(a, b interface{}) (int, error) {
	av, err := cast.ToBoolE(a)
	if err != nil {
		return 0, err
	}
	bv, err := cast.ToBoolE(b)
	if err != nil {
		return 0, err
	}
	if av == bv {
		return 0, nil
	}
	if !av {
		return -1, nil
	}
	return 1, nil
}

type numberType struct {
	floating bool
}

func (t numberType) String() string {
	if t.floating {
		return "FLOAT64"
	}
	return "INT64"
}

func (t numberType) Convert(v interface{}) (interface{}, error) {
	if t.floating {
		return cast.ToFloat64E(v)
	}
	return cast.ToInt64E(v)
}

func (t numberType) Compare(a, b interface{}) (int, error) {
	if t.floating {
		av, err := cast.ToFloat64E(a)
		if err != nil {
			return 0, err
		}
		bv, err := cast.ToFloat64E(b)
		if err != nil {
			return 0, err
		}
		if av < bv {
			return -1, nil
		}
		if av > bv {
			return 1, nil
		}
		return 0, nil
	}

	av, err := cast.ToInt64E(a)
	if err != nil {
		return 0, err
	}
	bv, err := cast.ToInt64E(b)
	if err != nil {
		return 0, err
	}
	if av < bv {
		return -1, nil
	}
	if av > bv {
		return 1, nil
	}
	return 0, nil
}

type stringType struct {
	// length is the fixed declared length in runes, or -1 if unbounded.
	length int
}

func (t stringType) String() string {
	if t.length < 0 {
		return "TEXT"
	}
	return "CHAR(" + strconv.Itoa(t.length) + ")"
}

func (t stringType) Convert(v interface{}) (interface{}, error) {
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, err
	}
	if t.length >= 0 && utf8.RuneCountInString(s) > t.length {
		return nil, ErrCharTruncation.New(s, t.length)
	}
	return s, nil
}

func (t stringType) Compare(a, b interface{}) (int, error) {
	av, err := cast.ToStringE(a)
	if err != nil {
		return 0, err
	}
	bv, err := cast.ToStringE(b)
	if err != nil {
		return 0, err
	}
	return strings.Compare(av, bv), nil
}

type dateType struct{}

func (dateType) String() string { return "DATE" }

func (dateType) Convert(v interface{}) (interface{}, error) {
	return cast.ToStringE(v)
}

func (dateType) Compare(a, b interface{}) (int, error) {
	av, err := cast.ToStringE(a)
	if err != nil {
		return 0, err
	}
	bv, err := cast.ToStringE(b)
	if err != nil {
		return 0, err
	}
	return strings.Compare(av, bv), nil
}

// IsNumber checks if t is a number type.
func IsNumber(t Type) bool {
	_, ok := t.(numberType)
	return ok
}

// IsText checks if t is a text or char type.
func IsText(t Type) bool {
	_, ok := t.(stringType)
	return ok
}
