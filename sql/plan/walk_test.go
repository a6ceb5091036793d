package plan

import (
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/expression"
)

func TestInspect(t *testing.T) {
	require := require.New(t)

	node := NewProject(
		[]sql.Expression{expression.NewUnresolvedColumn("a")},
		NewFilter(
			expression.NewEquals(
				expression.NewUnresolvedColumn("b"),
				expression.NewLiteral(int64(1), sql.Int64),
			),
			NewUnresolvedTable("t1", ""),
		),
	)

	var kinds []string
	Inspect(node, func(n sql.Node) bool {
		if n == nil {
			return false
		}
		switch n.(type) {
		case *Project:
			kinds = append(kinds, "project")
		case *Filter:
			kinds = append(kinds, "filter")
		case *UnresolvedTable:
			kinds = append(kinds, "table")
		}
		return true
	})
	require.Equal([]string{"project", "filter", "table"}, kinds)
}

func TestInspectExpressions(t *testing.T) {
	require := require.New(t)

	node := NewProject(
		[]sql.Expression{expression.NewUnresolvedColumn("a")},
		NewFilter(
			expression.NewEquals(
				expression.NewUnresolvedColumn("b"),
				expression.NewLiteral(int64(1), sql.Int64),
			),
			NewUnresolvedTable("t1", ""),
		),
	)

	var columns []string
	InspectExpressions(node, func(e sql.Expression) bool {
		if col, ok := e.(*expression.UnresolvedColumn); ok {
			columns = append(columns, col.Name())
		}
		return true
	})
	require.Equal([]string{"a", "b"}, columns)
}

func TestWithChildren(t *testing.T) {
	require := require.New(t)

	table := NewUnresolvedTable("t1", "")
	project := NewProject([]sql.Expression{expression.NewUnresolvedColumn("a")}, table)

	other := NewUnresolvedTable("t2", "")
	swapped, err := project.WithChildren(other)
	require.NoError(err)
	require.Equal(NewProject(project.Projections, other), swapped)

	_, err = project.WithChildren(table, other)
	require.Error(err)
	require.True(sql.ErrInvalidChildrenNumber.Is(err))
}
