package query

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestVisibleClause(t *testing.T) {
	qb := At(testNow, "users").Visible()

	clauses := qb.Clauses()
	require.Len(t, clauses, 1)
	assert.Equal(t, "users.created <= ? AND (users.deleted > ? OR users.deleted IS NULL)", clauses[0].SQL)
	assert.Equal(t, []any{testNow, testNow}, clauses[0].Args)
}

func TestVisibleClauseNoAlias(t *testing.T) {
	qb := At(testNow, "").Visible()

	clauses := qb.Clauses()
	require.Len(t, clauses, 1)
	assert.Equal(t, "created <= ? AND (deleted > ? OR deleted IS NULL)", clauses[0].SQL)
}

func TestFiltersAccumulate(t *testing.T) {
	qb := At(testNow, "users").Visible().
		Eq("email", "a@b.c").
		Contains("username", "ali").
		In("uuid", []string{"u1", "u2"})

	clauses := qb.Clauses()
	require.Len(t, clauses, 4)
	assert.Equal(t, "users.email = ?", clauses[1].SQL)
	assert.Equal(t, "users.username LIKE ?", clauses[2].SQL)
	assert.Equal(t, []any{"%ali%"}, clauses[2].Args)
	assert.Equal(t, "users.uuid IN ?", clauses[3].SQL)
}

func TestFKByNaturalKeySubSelect(t *testing.T) {
	qb := At(testNow, "users").FKByNaturalKey("fk_role", "roles", "name", "admin")

	clauses := qb.Clauses()
	require.Len(t, clauses, 1)
	assert.Equal(t,
		"users.fk_role = (SELECT id FROM roles WHERE name = ? AND created <= ? AND (deleted > ? OR deleted IS NULL))",
		clauses[0].SQL)
	// The referenced row is checked against the same now as the outer query.
	assert.Equal(t, []any{"admin", testNow, testNow}, clauses[0].Args)
}

func TestFKByNaturalKey2SubSelect(t *testing.T) {
	qb := At(testNow, "places").FKByNaturalKey2("fk_coordinate", "coordinates", "latitude", "41.38", "longitude", "2.17")

	clauses := qb.Clauses()
	require.Len(t, clauses, 1)
	assert.Equal(t,
		"places.fk_coordinate = (SELECT id FROM coordinates WHERE latitude = ? AND longitude = ? AND created <= ? AND (deleted > ? OR deleted IS NULL))",
		clauses[0].SQL)
	assert.Equal(t, []any{"41.38", "2.17", testNow, testNow}, clauses[0].Args)
}

func TestSameNowSharedAcrossClauses(t *testing.T) {
	qb := At(testNow, "users").Visible().FKByNaturalKey("fk_role", "roles", "name", "admin")

	for _, c := range qb.Clauses() {
		for _, arg := range c.Args {
			if ts, ok := arg.(time.Time); ok {
				assert.Equal(t, testNow, ts)
			}
		}
	}
}

func TestPaginateDefaults(t *testing.T) {
	pg, err := Paginate(0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultLimit, pg.Limit)
	assert.Equal(t, 1, pg.Page)
	assert.Equal(t, 0, pg.Offset())
}

func TestPaginateOffset(t *testing.T) {
	pg, err := Paginate(25, 3)
	require.NoError(t, err)
	assert.Equal(t, 50, pg.Offset())
}

func TestPaginateNegativeRejected(t *testing.T) {
	_, err := Paginate(-1, 1)
	require.Error(t, err)

	_, err = Paginate(10, -2)
	require.Error(t, err)
}
