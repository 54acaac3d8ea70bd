package repo

import (
	"strconv"
	"strings"
)

// QueryBuilder assembles a parameterized SQL statement from fragments and
// bound values. Placeholders are rendered from the running argument count at
// bind time, so positional indices stay correct no matter which optional
// fragments end up in the statement.
type QueryBuilder struct {
	query strings.Builder
	args  []any
}

// NewQueryBuilder starts a builder with the given base SQL.
func NewQueryBuilder(base string) *QueryBuilder {
	b := &QueryBuilder{}
	b.query.WriteString(base)
	return b
}

// Push appends raw SQL. Never pass caller-supplied values here; use PushBind.
func (b *QueryBuilder) Push(sql string) *QueryBuilder {
	b.query.WriteString(sql)
	return b
}

// PushBind appends a positional placeholder and records its value.
func (b *QueryBuilder) PushBind(value any) *QueryBuilder {
	b.args = append(b.args, value)
	b.query.WriteByte('$')
	b.query.WriteString(strconv.Itoa(len(b.args)))
	return b
}

// SQL returns the assembled statement.
func (b *QueryBuilder) SQL() string {
	return b.query.String()
}

// Args returns the bound values in placeholder order.
func (b *QueryBuilder) Args() []any {
	return b.args
}
