// Package sql renders orderings and pages as SQL clauses and iterates query
// results using database/sql.
//
// Sort directives are checked against the element type before anything is
// rendered, so only names of real columns ever reach the query text:
//
//	directives, err := ordering.ParseSort[User](r.URL.Query().Get("sort"))
//	...
//	stmt, err := sql.Build("SELECT id, name, age FROM users", directives, req, core.WithFieldTag("db"))
//	...
//	for u, err := range sql.Query(ctx, db, stmt, sql.ScanStruct[User]()) {
//		...
//	}
package sql

import (
	"context"
	"database/sql"
	"iter"
	"reflect"
	"strings"

	"github.com/lguimbarda/min-query/query/core"
	"github.com/lguimbarda/min-query/query/ordering"
	"github.com/lguimbarda/min-query/query/page"
)

// ColumnTag is the struct tag that names the column of a field. Fields
// without it use their Go name.
const ColumnTag = "db"

// Scanner is a function that scans a row into a value.
type Scanner[T any] func(*sql.Rows) (T, error)

// Queryer is implemented by *sql.DB, *sql.Tx and *sql.Conn.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

// Statement is query text with its positional arguments.
type Statement struct {
	Query string
	Args  []any
}

// OrderBy renders directives as an ORDER BY clause. Every directive must name
// a field of T; selector keys and method properties have no column and are
// rejected. An empty directive list renders an empty clause.
func OrderBy[T any](directives []ordering.Directive[T], opts ...core.Option) (string, error) {
	if len(directives) == 0 {
		return "", nil
	}
	terms := make([]string, 0, len(directives))
	for _, d := range directives {
		name, ok := d.Key.Property()
		if !ok {
			return "", core.InvalidArgument("directive", "%s has no column", d.Key)
		}
		acc, err := ordering.Resolve[T](name, opts...)
		if err != nil {
			return "", err
		}
		member := acc.Member()
		if member.IsMethod() {
			return "", core.InvalidArgument("directive", "property %q is a method, not a column", name)
		}
		dir := "ASC"
		if d.Direction == core.Descending {
			dir = "DESC"
		}
		terms = append(terms, quote(columnName(member.Name, member.Tag))+" "+dir)
	}
	return "ORDER BY " + strings.Join(terms, ", "), nil
}

// Paginate renders r as LIMIT and OFFSET clauses with placeholders. An
// unbounded first page renders nothing.
func Paginate(r page.Request) (string, []any, error) {
	if err := r.Validate(); err != nil {
		return "", nil, err
	}
	if r.Limit() == 0 {
		return "", nil, nil
	}
	return "LIMIT ? OFFSET ?", []any{r.Limit(), r.Offset()}, nil
}

// Build appends the ORDER BY, LIMIT and OFFSET clauses for directives and r
// to base. base may carry its own placeholders; args are placed before the
// paging arguments.
func Build[T any](base string, directives []ordering.Directive[T], r page.Request, opts ...core.Option) (Statement, error) {
	return BuildArgs(Statement{Query: base}, directives, r, opts...)
}

// BuildArgs is Build for a base statement that has arguments of its own.
func BuildArgs[T any](base Statement, directives []ordering.Directive[T], r page.Request, opts ...core.Option) (Statement, error) {
	orderBy, err := OrderBy(directives, opts...)
	if err != nil {
		return Statement{}, err
	}
	limit, pageArgs, err := Paginate(r)
	if err != nil {
		return Statement{}, err
	}

	var b strings.Builder
	b.WriteString(strings.TrimSpace(base.Query))
	for _, clause := range []string{orderBy, limit} {
		if clause != "" {
			b.WriteByte(' ')
			b.WriteString(clause)
		}
	}
	args := make([]any, 0, len(base.Args)+len(pageArgs))
	args = append(args, base.Args...)
	args = append(args, pageArgs...)
	return Statement{Query: b.String(), Args: args}, nil
}

// Query runs stmt when the returned sequence is enumerated and yields each
// scanned row. Query and iteration errors are yielded with a zero value and
// end the sequence; scan errors are yielded and iteration continues.
// Breaking out of the loop closes the rows.
func Query[T any](ctx context.Context, db Queryer, stmt Statement, scanner Scanner[T]) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		var zero T
		if db == nil || scanner == nil {
			yield(zero, core.NilArgument("db or scanner"))
			return
		}
		rows, err := db.QueryContext(ctx, stmt.Query, stmt.Args...)
		if err != nil {
			yield(zero, err)
			return
		}
		defer rows.Close()
		for rows.Next() {
			value, err := scanner(rows)
			if !yield(value, err) {
				return
			}
		}
		if err := rows.Err(); err != nil {
			yield(zero, err)
		}
	}
}

// Collect drains a sequence from Query, stopping at the first error.
func Collect[T any](seq iter.Seq2[T, error]) ([]T, error) {
	var out []T
	for v, err := range seq {
		if err != nil {
			return out, err
		}
		out = append(out, v)
	}
	return out, nil
}

// ScanStruct returns a scanner that assigns columns to the fields of a
// struct type T by column name. Columns without a matching field are
// discarded.
func ScanStruct[T any]() Scanner[T] {
	return func(rows *sql.Rows) (T, error) {
		var v T
		rv := reflect.ValueOf(&v).Elem()
		if rv.Kind() != reflect.Struct {
			return v, core.InvalidArgument("T", "%s is not a struct", rv.Type())
		}
		cols, err := rows.Columns()
		if err != nil {
			return v, err
		}
		fields := fieldsByColumn(rv.Type())
		targets := make([]any, len(cols))
		for i, col := range cols {
			index, ok := fields[col]
			if !ok {
				targets[i] = new(any)
				continue
			}
			targets[i] = rv.FieldByIndex(index).Addr().Interface()
		}
		return v, rows.Scan(targets...)
	}
}

func fieldsByColumn(t reflect.Type) map[string][]int {
	fields := make(map[string][]int)
	for _, f := range reflect.VisibleFields(t) {
		if !f.IsExported() || f.Anonymous || !settable(t, f.Index) {
			continue
		}
		name := columnName(f.Name, f.Tag)
		if name == "-" {
			continue
		}
		if _, dup := fields[name]; !dup {
			fields[name] = f.Index
		}
	}
	return fields
}

// settable reports whether the path to a promoted field only crosses
// exported, non-pointer embedded structs.
func settable(t reflect.Type, index []int) bool {
	for _, i := range index[:len(index)-1] {
		f := t.Field(i)
		if !f.IsExported() || f.Type.Kind() != reflect.Struct {
			return false
		}
		t = f.Type
	}
	return true
}

func columnName(field string, tag reflect.StructTag) string {
	if value, _, _ := strings.Cut(tag.Get(ColumnTag), ","); value != "" {
		return value
	}
	return field
}

func quote(ident string) string {
	return `"` + strings.ReplaceAll(ident, `"`, `""`) + `"`
}
