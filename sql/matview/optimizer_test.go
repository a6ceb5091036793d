package matview_test

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"gopkg.in/src-d/go-mv-rewrite.v0/sql"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/matview"
	"gopkg.in/src-d/go-mv-rewrite.v0/sql/parse"
)

const (
	baseTable1 = "t1"
	baseTable2 = "t2"
	baseTable6 = "t6"
	baseTable7 = "t7"
	viewTable  = "view"
)

func testCatalog() *sql.MapCatalog {
	catalog := sql.NewMapCatalog()
	for _, col := range []string{"a", "b", "c", "d", "e"} {
		catalog.AddColumn(baseTable1, col, sql.Int64)
		catalog.AddColumn(baseTable2, col, sql.Int64)
	}
	catalog.AddColumn(baseTable6, "a", sql.Int64)
	catalog.AddColumn(baseTable6, "b", sql.Text)
	catalog.AddColumn(baseTable7, "a", sql.Int64)
	catalog.AddColumn(baseTable7, "b", sql.Float64)
	return catalog
}

// rewriteQuery runs the full pipeline: parse the view, extract its summary,
// and rewrite the parsed base query against it. A view that cannot be
// extracted serves no rewrite, so the base query comes back unchanged.
func rewriteQuery(t *testing.T, viewSQL, querySQL string) string {
	t.Helper()
	ctx := sql.NewEmptyContext()

	query, err := parse.Parse(ctx, querySQL)
	require.NoError(t, err)

	view, err := parse.Parse(ctx, viewSQL)
	require.NoError(t, err)

	info, err := matview.Extract(view)
	if err != nil {
		require.True(t, matview.ErrNotSupported.Is(err))
		return query.String()
	}

	rewriter := matview.NewRewriter(testCatalog(), info, viewTable)
	return rewriter.Rewrite(ctx, query).String()
}

func assertRewrite(t *testing.T, viewSQL, querySQL, expectedSQL string) {
	t.Helper()
	expected, err := parse.Parse(sql.NewEmptyContext(), expectedSQL)
	require.NoError(t, err)
	require.Equal(t, expected.String(), rewriteQuery(t, viewSQL, querySQL))
}

func TestRewriteSimpleQuery(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s", viewTable),
	)
}

func TestRewriteDistinct(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT DISTINCT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT DISTINCT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT DISTINCT a, b FROM %s", viewTable),
	)

	// A DISTINCT query over a plain view stays DISTINCT.
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT DISTINCT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT DISTINCT a, b FROM %s", viewTable),
	)

	// The view collapsed duplicates the query wants back.
	assertRewrite(t,
		fmt.Sprintf("SELECT DISTINCT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
	)
}

func TestRewriteAlias(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a as mv_a, b, c as mv_c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT mv_a, b, mv_c FROM %s", viewTable),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a as mv_a, b, c as mv_c, d FROM %s", baseTable1),
		fmt.Sprintf("SELECT a as result_a, b as result_b, c, d FROM %s", baseTable1),
		fmt.Sprintf("SELECT mv_a as result_a, b as result_b, mv_c, d FROM %s", viewTable),
	)
}

func TestRewriteAllColumnsSelect(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT * FROM %s", baseTable1),
		fmt.Sprintf("SELECT * FROM %s", baseTable1),
		fmt.Sprintf("SELECT * FROM %s", baseTable1),
	)
}

func TestRewriteBaseQueryGroupBy(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a as mv_a, b, c as mv_c FROM %s", baseTable1),
		fmt.Sprintf("SELECT SUM(a * b), MAX(a + b), c FROM %s GROUP BY c", baseTable1),
		fmt.Sprintf("SELECT SUM(mv_a * b), MAX(mv_a + b), mv_c FROM %s GROUP BY mv_c", viewTable),
	)
}

func TestRewriteDerivedFields(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT SUM(a * b + c) as mv_sum, MAX(a * b + c) as mv_max, d, e FROM %s GROUP BY d, e", baseTable1),
		fmt.Sprintf("SELECT SUM(a * b + c), MAX(a * b + c), d, e FROM %s GROUP BY d, e", baseTable1),
		fmt.Sprintf("SELECT SUM(mv_sum), MAX(mv_max), d, e FROM %s GROUP BY d, e", viewTable),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT SUM(a * b + c) as mv_sum, MAX(a * b + c) as mv_max, d as mv_d, e FROM %s GROUP BY d, e", baseTable1),
		fmt.Sprintf("SELECT SUM(a * b + c) as sum_of_abc, MAX(a * b + c) as max_of_abc, d, e FROM %s GROUP BY d, e", baseTable1),
		fmt.Sprintf("SELECT SUM(mv_sum) as sum_of_abc, MAX(mv_max) as max_of_abc, mv_d, e FROM %s GROUP BY mv_d, e", viewTable),
	)
}

func TestRewriteArithmeticBinary(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a + b, a * b - c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a + b, a * b - c FROM %s", viewTable),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a as mv_a, b, c as mv_c, d FROM %s", baseTable1),
		fmt.Sprintf("SELECT a + b, c / d, a * c - b * d FROM %s", baseTable1),
		fmt.Sprintf("SELECT mv_a + b, mv_c / d, mv_a * mv_c - b * d FROM %s", viewTable),
	)
}

func TestRewriteWhereCondition(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c, d FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s WHERE a < 10 AND c > 10 OR d = '2000-01-01'", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s WHERE a < 10 AND c > 10 OR d = '2000-01-01'", viewTable),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a as mv_a, b, c, d as mv_d FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s WHERE a < 10 AND c > 10 OR d = '2000-01-01'", baseTable1),
		fmt.Sprintf("SELECT mv_a, b FROM %s WHERE mv_a < 10 AND c > 10 OR mv_d = '2000-01-01'", viewTable),
	)
}

func TestRewriteOrderBy(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b, c FROM %s ORDER BY c ASC, b DESC, a", baseTable1),
		fmt.Sprintf("SELECT a, b, c FROM %s ORDER BY c ASC, b DESC, a", viewTable),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a as mv_a, b, c as mv_c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b, c FROM %s ORDER BY c ASC, b DESC, a", baseTable1),
		fmt.Sprintf("SELECT mv_a, b, mv_c FROM %s ORDER BY mv_c ASC, b DESC, mv_a", viewTable),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT MAX(a) as mv_max_a, b FROM %s GROUP BY b", baseTable1),
		fmt.Sprintf("SELECT MAX(a), b FROM %s GROUP BY b ORDER BY MAX(a) DESC, b ASC", baseTable1),
		fmt.Sprintf("SELECT MAX(mv_max_a), b FROM %s GROUP BY b ORDER BY MAX(mv_max_a) DESC, b ASC", viewTable),
	)
}

func TestRewriteLimitInQuery(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s LIMIT 5", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s LIMIT 5", viewTable),
	)
}

func TestRewriteNoMatchingBaseTable(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b FROM %s", baseTable2),
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, b FROM %s", baseTable1),
	)
}

func TestRewriteNoMatchingColumnNames(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT c, d FROM %s", baseTable1),
		fmt.Sprintf("SELECT c, d FROM %s", baseTable1),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s WHERE d = 5", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s WHERE d = 5", baseTable1),
	)
}

func TestRewriteDifferentFilterCondition(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s WHERE a = 5 OR b = 3", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s WHERE a = 5 OR b = 4", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s WHERE a = 5 OR b = 4", baseTable1),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s WHERE a = 5", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
	)
}

func TestRewriteNoGroupByInBaseQuery(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT SUM(a) as sum_a, b FROM %s GROUP BY b", baseTable1),
		fmt.Sprintf("SELECT b FROM %s", baseTable1),
		fmt.Sprintf("SELECT b FROM %s", baseTable1),
	)
}

func TestRewriteMissingColumnInOrderBy(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s ORDER BY b DESC, d", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s ORDER BY b DESC, d", baseTable1),
	)
}

func TestRewriteLimitInView(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s LIMIT 5", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
	)
}

func TestRewriteTableAlias(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT base1.a, b, c FROM %s base1", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT base1.a, c FROM %s base1", baseTable1),
		fmt.Sprintf("SELECT base1.a, c FROM %s base1", baseTable1),
	)
}

func TestRewriteJoinTables(t *testing.T) {
	assertRewrite(t,
		fmt.Sprintf("SELECT %s.a, %s.b FROM %s JOIN %s ON %s.c = %s.c",
			baseTable1, baseTable2, baseTable1, baseTable2, baseTable1, baseTable2),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT a, c FROM %s", baseTable1),
	)

	assertRewrite(t,
		fmt.Sprintf("SELECT a, b, c FROM %s", baseTable1),
		fmt.Sprintf("SELECT %s.a, %s.b FROM %s JOIN %s ON %s.c = %s.c",
			baseTable1, baseTable2, baseTable1, baseTable2, baseTable1, baseTable2),
		fmt.Sprintf("SELECT %s.a, %s.b FROM %s JOIN %s ON %s.c = %s.c",
			baseTable1, baseTable2, baseTable1, baseTable2, baseTable1, baseTable2),
	)
}

func TestRewriteFilterContainment(t *testing.T) {
	cases := []struct {
		view, query string
		rewritten   bool
	}{
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a = 5", true},
		{"SELECT a, b, c FROM t1 WHERE a >= 5", "SELECT a, b, c FROM t1 WHERE a = 5", true},
		{"SELECT a, b, c FROM t1 WHERE a >= 5", "SELECT a, b, c FROM t1 WHERE a > 5", true},
		{"SELECT a, b, c FROM t1 WHERE a > 3", "SELECT a, b, c FROM t1 WHERE a = 5", true},
		{"SELECT a, b, c FROM t1 WHERE a <> 4", "SELECT a, b, c FROM t1 WHERE a = 5", true},
		{"SELECT a, b, c FROM t1 WHERE a > 3", "SELECT a, b, c FROM t1 WHERE a > 5", true},
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a = 4", false},
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a <> 5", false},
		{"SELECT a, b, c FROM t1 WHERE a > 5", "SELECT a, b, c FROM t1 WHERE a >= 5", false},
		{"SELECT a, b, c FROM t1 WHERE a < 3", "SELECT a, b, c FROM t1 WHERE a = 5", false},
		{"SELECT a, b, c FROM t1 WHERE a > 5", "SELECT a, b, c FROM t1 WHERE a > 4", false},
		{"SELECT a, b, c FROM t1 WHERE a > 3", "SELECT a, b, c FROM t1 WHERE c > 5", false},
		{"SELECT a, b FROM t7 WHERE b = 5.0", "SELECT a, b FROM t7 WHERE b = 5.0", true},
		{"SELECT a, b FROM t7 WHERE b > 5.0", "SELECT a, b FROM t7 WHERE b = 5.01", true},
		{"SELECT a, b FROM t6 WHERE b = 'apples'", "SELECT a, b FROM t6 WHERE b = 'apples'", true},
		{"SELECT a, b FROM t6 WHERE b <> 'banana'", "SELECT a, b FROM t6 WHERE b = 'apples'", true},
		{"SELECT a, b FROM t6 WHERE b <> 'banana'", "SELECT a, b FROM t6 WHERE b <> 'banana'", true},
		{"SELECT a, b FROM t6 WHERE b <> 'banana'", "SELECT a, b FROM t6 WHERE b > 'banana'", true},
		{"SELECT a, b FROM t6 WHERE b > 'apples'", "SELECT a, b FROM t6 WHERE b > 'banana'", true},
		{"SELECT a, b FROM t6 WHERE b > '122'", "SELECT a, b FROM t6 WHERE b > '123'", true},
		{"SELECT a, b FROM t6 WHERE b <> 'apples'", "SELECT a, b FROM t6 WHERE b > 'banana'", true},
		// Literals of different declared lengths have incomparable
		// domains, so containment stays unknown.
		{"SELECT a, b FROM t6 WHERE b = 'apples'", "SELECT a, b FROM t6 WHERE b <> 'banana'", false},
	}

	for _, tt := range cases {
		assertContainmentCase(t, tt.view, tt.query, tt.rewritten)
	}
}

func TestRewriteFilterContainmentWithAnd(t *testing.T) {
	cases := []struct {
		view, query string
		rewritten   bool
	}{
		{"SELECT a, b, c FROM t1 WHERE a > 0", "SELECT a, b, c FROM t1 WHERE a = 5 AND a > 0", true},
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a = 5 AND b = 7", true},
		{"SELECT a, b, c FROM t1 WHERE a = 5 AND c = 9", "SELECT a, b, c FROM t1 WHERE a = 5 AND b = 7 AND c = 9", true},
		{"SELECT a, b, c FROM t1 WHERE a > 3 AND a < 9", "SELECT a, b, c FROM t1 WHERE a > 5 AND a < 7", true},
		{"SELECT a, b, c FROM t1 WHERE a < 5 AND b > 9", "SELECT a, b, c FROM t1 WHERE a < 3 AND b > 11", true},
		{"SELECT a, b, c FROM t1 WHERE a < 5 AND b > 7 AND c <> 9", "SELECT a, b, c FROM t1 WHERE a < 3 AND b > 9 AND c = 11", true},
		{"SELECT a, b, c FROM t1 WHERE a <> 5", "SELECT a, b, c FROM t1 WHERE a < 5 AND a > 5", true},
		{"SELECT a, b FROM t7 WHERE a < 9 AND b > 3.0", "SELECT a, b FROM t7 WHERE a < 7 AND b = 3.1", true},
		{"SELECT a, b FROM t6 WHERE b <> 'banana'", "SELECT a, b FROM t6 WHERE b <> 'apples' AND b <> 'banana'", true},
		{"SELECT a, b FROM t6 WHERE a > 6 AND b <> 'banana'", "SELECT a, b FROM t6 WHERE a = 8 AND b = 'apples'", true},
		{"SELECT a, b FROM t6 WHERE b = 'orange'", "SELECT a, b FROM t6 WHERE b <> 'apples' AND b <> 'banana'", false},
	}

	for _, tt := range cases {
		assertContainmentCase(t, tt.view, tt.query, tt.rewritten)
	}
}

func TestRewriteFilterContainmentWithOr(t *testing.T) {
	cases := []struct {
		view, query string
		rewritten   bool
	}{
		{"SELECT a, b, c FROM t1 WHERE a = 5 OR a = 7", "SELECT a, b, c FROM t1 WHERE a = 5", true},
		{"SELECT a, b, c FROM t1 WHERE a <> 7", "SELECT a, b, c FROM t1 WHERE a = 5 OR a = 6", true},
		{"SELECT a, b, c FROM t1 WHERE a >= 5", "SELECT a, b, c FROM t1 WHERE a = 5 OR a = 6", true},
		{"SELECT a, b, c FROM t1 WHERE a <> 5", "SELECT a, b, c FROM t1 WHERE a < 5 OR a > 5", true},
		{"SELECT a, b, c FROM t1 WHERE a > 3 OR a < 9", "SELECT a, b, c FROM t1 WHERE a > 5 OR a < 7", true},
		{"SELECT a, b, c FROM t1 WHERE a < 3 OR a > 9", "SELECT a, b, c FROM t1 WHERE a < 1 OR a > 11", true},
		{"SELECT a, b, c FROM t1 WHERE a = 3 OR a > 5", "SELECT a, b, c FROM t1 WHERE a > 9 OR a = 3", true},
		// A disjunction across columns has no per-column domain, so
		// containment stays unknown.
		{"SELECT a, b, c FROM t1 WHERE a < 3 OR b > 9", "SELECT a, b, c FROM t1 WHERE a < 1 OR b > 11", false},
		{"SELECT a, b, c FROM t1 WHERE a > 3 AND a < 9 OR a > 10", "SELECT a, b, c FROM t1 WHERE a > 5 AND a < 7 OR a > 11", true},
		{"SELECT a, b FROM t7 WHERE b <> 2.91", "SELECT a, b FROM t7 WHERE b <= 2.9 AND b >= 3.0", true},
		{"SELECT a, b FROM t6 WHERE b <> 'orange'", "SELECT a, b FROM t6 WHERE b = 'apples' OR b = 'banana'", true},
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a = 5 OR a = 6", false},
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a = 5 OR b = 6", false},
		{"SELECT a, b, c FROM t1 WHERE a > 5", "SELECT a, b, c FROM t1 WHERE a = 5 OR a = 6", false},
		{"SELECT a, b FROM t6 WHERE b <> 'apples'", "SELECT a, b FROM t6 WHERE b <> 'apples' OR b <> 'banana'", false},
		{"SELECT a, b FROM t6 WHERE b <> 'orange'", "SELECT a, b FROM t6 WHERE b <> 'apples' OR b <> 'banana'", false},
	}

	for _, tt := range cases {
		assertContainmentCase(t, tt.view, tt.query, tt.rewritten)
	}
}

func TestRewriteFilterContainmentWithIn(t *testing.T) {
	cases := []struct {
		view, query string
		rewritten   bool
	}{
		{"SELECT a, b, c FROM t1", "SELECT a, b, c FROM t1 WHERE a IN (5)", true},
		{"SELECT a, b, c FROM t1 WHERE a IN (5)", "SELECT a, b, c FROM t1 WHERE a IN (5)", true},
		{"SELECT a, b, c FROM t1 WHERE a IN (5)", "SELECT a, b, c FROM t1 WHERE a = 5", true},
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a IN (5)", true},
		{"SELECT a, b, c FROM t1 WHERE a IN (4,5)", "SELECT a, b, c FROM t1 WHERE a IN (5)", true},
		{"SELECT a, b, c FROM t1 WHERE a IN (3,4,5)", "SELECT a, b, c FROM t1 WHERE a IN (3,5)", true},
		{"SELECT a, b, c FROM t1 WHERE a >= 5", "SELECT a, b, c FROM t1 WHERE a IN (5,6)", true},
		{"SELECT a, b, c FROM t1 WHERE a <> 5", "SELECT a, b, c FROM t1 WHERE a IN (4,6)", true},
		{"SELECT a, b, c FROM t1 WHERE a IN (4,5) AND a IN (5,6,7)", "SELECT a, b, c FROM t1 WHERE a IN (5)", true},
		{"SELECT a, b, c FROM t1 WHERE a IN (4,5) OR a IN (6,7)", "SELECT a, b, c FROM t1 WHERE a IN (5,6)", true},
		{"SELECT a, b, c FROM t1 WHERE a IN (4,5)", "SELECT a, b, c FROM t1 WHERE a IN (3,5) AND a IN (5,6)", true},
		{"SELECT a, b, c FROM t1 WHERE a NOT IN (5)", "SELECT a, b, c FROM t1 WHERE a NOT IN (5)", true},
		{"SELECT a, b, c FROM t1 WHERE a NOT IN (5)", "SELECT a, b, c FROM t1 WHERE a NOT IN (4,5)", true},
		{"SELECT a, b, c FROM t1 WHERE a > 5 OR a < 5", "SELECT a, b, c FROM t1 WHERE a NOT IN (5)", true},
		{"SELECT a, b, c FROM t1 WHERE a NOT IN (5,6) AND b IN (6,8)", "SELECT a, b, c FROM t1 WHERE a < 5 AND b = 8", true},
		{"SELECT a, b FROM t6 WHERE b IN ('USA','CAN')", "SELECT a, b FROM t6 WHERE b = 'CAN' OR b = 'USA'", true},
		{"SELECT a, b FROM t6 WHERE b NOT IN ('USA','CAN')", "SELECT a, b FROM t6 WHERE b = 'ABC'", true},
		{"SELECT a, b, c FROM t1 WHERE a = 5", "SELECT a, b, c FROM t1 WHERE a IN (5,6)", false},
		{"SELECT a, b, c FROM t1 WHERE a IN (5,6)", "SELECT a, b, c FROM t1 WHERE a IN (5,6,7)", false},
		{"SELECT a, b, c FROM t1 WHERE a IN (5,6)", "SELECT a, b, c FROM t1 WHERE a = 7", false},
		{"SELECT a, b, c FROM t1 WHERE a NOT IN (5,6)", "SELECT a, b, c FROM t1 WHERE a <= 5", false},
		{"SELECT a, b, c FROM t1 WHERE a NOT IN (5,6)", "SELECT a, b, c FROM t1 WHERE a NOT IN (6,7)", false},
		{"SELECT a, b, c FROM t1 WHERE a NOT IN (5,6)", "SELECT a, b, c FROM t1 WHERE a IN (6,7)", false},
	}

	for _, tt := range cases {
		assertContainmentCase(t, tt.view, tt.query, tt.rewritten)
	}
}

// assertContainmentCase checks that a containment-driven rewrite keeps the
// query's own filter shape, substituted, or returns it untouched.
func assertContainmentCase(t *testing.T, viewSQL, querySQL string, rewritten bool) {
	t.Helper()
	expected := querySQL
	if rewritten {
		expected = replaceTable(querySQL)
	}
	assertRewrite(t, viewSQL, querySQL, expected)
}

// replaceTable swaps the scanned base table of a query for the view target.
// The containment cases project unaliased view columns, so the rest of the
// query text is unchanged by the rewrite.
func replaceTable(querySQL string) string {
	for _, table := range []string{baseTable1, baseTable2, baseTable6, baseTable7} {
		querySQL = strings.Replace(querySQL, "FROM "+table, "FROM "+viewTable, 1)
	}
	return querySQL
}
