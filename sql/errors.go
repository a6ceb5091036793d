package sql

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrInvalidType is thrown when there is an unexpected type at some part of
	// the plan or expression tree.
	ErrInvalidType = errors.NewKind("invalid type: %s")

	// ErrInvalidChildrenNumber is returned when the WithChildren method of a
	// node or expression is called with an invalid number of children.
	ErrInvalidChildrenNumber = errors.NewKind("%v: invalid children number, got %d, expected %d")

	// ErrTableNotFound is returned when the table is not available in the
	// catalog.
	ErrTableNotFound = errors.NewKind("table not found: %s")

	// ErrColumnNotFound is returned when the column does not exist in the
	// table.
	ErrColumnNotFound = errors.NewKind("table %q does not have column %q")

	// ErrCharTruncation is returned when a string value does not fit in the
	// declared length of a char type.
	ErrCharTruncation = errors.NewKind("string %q exceeds declared length %d")
)
