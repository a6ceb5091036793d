package expression

import (
	"github.com/mitchellh/hashstructure"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
)

// StructurallyEqual reports whether two expressions are structurally equal.
// Identity is the canonical String rendering: two expressions are equal when
// they render the same text, so literals of different types that print the
// same (5 and 5.0) compare equal.
func StructurallyEqual(a, b sql.Expression) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.String() == b.String()
}

// Hash returns a hash of the canonical rendering of the expression, usable
// as a fast lookup key. Callers must confirm candidates with StructurallyEqual;
// the hash alone does not rule out collisions.
func Hash(e sql.Expression) uint64 {
	h, err := hashstructure.Hash(e.String(), nil)
	if err != nil {
		panic(err)
	}
	return h
}
