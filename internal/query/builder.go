// Package query builds the WHERE fragments shared by every repository:
// conditional filters, the temporal visibility window, pagination, and the
// guarded write discipline. Clauses are structured (fragment + bound args)
// and compiled into the driver's placeholder syntax by GORM — values are
// never interpolated into SQL text.
package query

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// Clause is one parameterized predicate fragment.
type Clause struct {
	SQL  string
	Args []any
}

// Builder accumulates clauses against a single timestamp. The same Builder
// (and therefore the same now) backs the list query and its companion count,
// so the pagination envelope is consistent even across two statements.
type Builder struct {
	now     time.Time
	alias   string
	clauses []Clause
}

// At starts a builder with the request's now snapshot. alias prefixes
// unqualified columns ("" leaves them bare).
func At(now time.Time, alias string) *Builder {
	return &Builder{now: now, alias: alias}
}

// Now returns the timestamp every predicate of this builder is evaluated at.
func (b *Builder) Now() time.Time { return b.now }

func (b *Builder) col(name string) string {
	if b.alias == "" {
		return name
	}
	return b.alias + "." + name
}

// Visible appends the visibility window for the builder's own table:
// created <= now AND (deleted > now OR deleted IS NULL).
func (b *Builder) Visible() *Builder {
	return b.VisibleTable(b.alias)
}

// VisibleTable appends the visibility window for a joined table.
func (b *Builder) VisibleTable(alias string) *Builder {
	prefix := ""
	if alias != "" {
		prefix = alias + "."
	}
	b.clauses = append(b.clauses, Clause{
		SQL:  fmt.Sprintf("%screated <= ? AND (%sdeleted > ? OR %sdeleted IS NULL)", prefix, prefix, prefix),
		Args: []any{b.now, b.now},
	})
	return b
}

// Eq appends an equality filter.
func (b *Builder) Eq(column string, v any) *Builder {
	b.clauses = append(b.clauses, Clause{SQL: b.col(column) + " = ?", Args: []any{v}})
	return b
}

// In appends a membership filter.
func (b *Builder) In(column string, vals any) *Builder {
	b.clauses = append(b.clauses, Clause{SQL: b.col(column) + " IN ?", Args: []any{vals}})
	return b
}

// Contains appends a substring filter (LIKE with wildcards on both sides).
func (b *Builder) Contains(column, v string) *Builder {
	b.clauses = append(b.clauses, Clause{SQL: b.col(column) + " LIKE ?", Args: []any{"%" + v + "%"}})
	return b
}

// EqSub appends "column = (subquery)" — the correlated sub-select used to
// resolve foreign keys by a natural key (role name, endpoint route, entity
// uuid) without an extra round trip.
func (b *Builder) EqSub(column, sub string, args ...any) *Builder {
	b.clauses = append(b.clauses, Clause{SQL: b.col(column) + " = (" + sub + ")", Args: args})
	return b
}

// FKByNaturalKey filters a foreign-key column through the referenced table's
// natural key: column = (SELECT id FROM table WHERE keyCol = ? AND <visible>).
// The referenced row must itself be inside its visibility window — a deleted
// parent matches nothing.
func (b *Builder) FKByNaturalKey(column, table, keyCol string, v any) *Builder {
	sub := fmt.Sprintf(
		"SELECT id FROM %s WHERE %s = ? AND created <= ? AND (deleted > ? OR deleted IS NULL)",
		table, keyCol)
	return b.EqSub(column, sub, v, b.now, b.now)
}

// FKByNaturalKey2 is FKByNaturalKey for a two-column natural key
// (coordinates are looked up by latitude AND longitude).
func (b *Builder) FKByNaturalKey2(column, table, keyA string, a any, keyB string, bv any) *Builder {
	sub := fmt.Sprintf(
		"SELECT id FROM %s WHERE %s = ? AND %s = ? AND created <= ? AND (deleted > ? OR deleted IS NULL)",
		table, keyA, keyB)
	return b.EqSub(column, sub, a, bv, b.now, b.now)
}

// Raw appends an arbitrary parameterized fragment for the few joins the
// helpers above cannot express.
func (b *Builder) Raw(sql string, args ...any) *Builder {
	b.clauses = append(b.clauses, Clause{SQL: sql, Args: args})
	return b
}

// Clauses exposes the accumulated fragments, mainly for tests.
func (b *Builder) Clauses() []Clause { return b.clauses }

// Scope applies every clause as a parameterized Where.
func (b *Builder) Scope() func(*gorm.DB) *gorm.DB {
	return func(tx *gorm.DB) *gorm.DB {
		for _, c := range b.clauses {
			tx = tx.Where(c.SQL, c.Args...)
		}
		return tx
	}
}
