package repository

import (
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strings"

	"spacebook/shared/constant"
	"spacebook/shared/dto"
)

type column struct {
	name  string
	table string
	alias string
}

// schema is the SQL shape of a model, read from its struct tags once.
//
// Fields tagged `db:"x"` map to columns of the table. A field tagged
// `table:"t" column:"y" db:"x"` selects t.y AS x from a joined table and is
// never inserted. The join clause comes from a GetJoinQuery() string method.
type schema struct {
	table         string
	primary       string
	join          string
	columns       []column
	insertColumns []string
}

type joiner interface {
	GetJoinQuery() string
}

func newSchema[T any](table, primary string) schema {
	var zero T

	s := schema{table: table, primary: primary}
	s.columns, s.insertColumns = readColumns(table, reflect.TypeOf(zero))

	if j, ok := any(zero).(joiner); ok {
		s.join = j.GetJoinQuery()
	}

	return s
}

func readColumns(table string, typ reflect.Type) (columns []column, insertColumns []string) {
	for i := range typ.NumField() {
		field := typ.Field(i)

		if field.Anonymous && field.Type.Kind() == reflect.Struct {
			embedded, embeddedInsert := readColumns(table, field.Type)
			columns = append(columns, embedded...)
			insertColumns = append(insertColumns, embeddedInsert...)

			continue
		}

		name := field.Tag.Get("db")
		if name == constant.Empty || name == "-" {
			continue
		}

		source := field.Tag.Get("table")
		if source == constant.Empty || source == table {
			columns = append(columns, column{name: name, table: table})
			insertColumns = append(insertColumns, name)

			continue
		}

		if target := field.Tag.Get("column"); target != constant.Empty {
			columns = append(columns, column{name: target, table: source, alias: name})
		} else {
			columns = append(columns, column{name: name, table: source})
		}
	}

	return columns, insertColumns
}

// clause joins the non-empty parts with single spaces.
func clause(parts ...string) string {
	return strings.Join(slices.DeleteFunc(parts, func(p string) bool { return p == constant.Empty }), " ")
}

// selectList renders the select list, optionally narrowed to the named
// columns (matched by their source column name).
func (s schema) selectList(only ...string) string {
	list := make([]string, 0, len(s.columns))

	for _, col := range s.columns {
		if len(only) > 0 && !slices.Contains(only, col.name) {
			continue
		}

		qualified := col.table + "." + col.name
		if col.alias != constant.Empty {
			qualified += " AS " + col.alias
		}

		list = append(list, qualified)
	}

	return strings.Join(list, ", ")
}

func where(filter dto.FilterGroup) (string, map[string]any) {
	predicate, args := filter.GetWhereClause()
	if predicate == constant.Empty {
		return constant.Empty, map[string]any{}
	}

	return "WHERE " + predicate, args
}

func (s schema) insertQuery() string {
	placeholders := make([]string, len(s.insertColumns))
	for i, col := range s.insertColumns {
		placeholders[i] = ":" + col
	}

	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)", s.table, strings.Join(s.insertColumns, ", "), strings.Join(placeholders, ", "))
}

func (s schema) selectQuery(whereClause, tail string, only ...string) string {
	return clause("SELECT", s.selectList(only...), "FROM", s.table, s.join, whereClause, tail)
}

func (s schema) countQuery(whereClause string) string {
	return clause(fmt.Sprintf("SELECT COUNT(%s.%s) FROM %s", s.table, s.primary, s.table), s.join, whereClause)
}

func (s schema) existsQuery(whereClause string) string {
	return fmt.Sprintf("SELECT EXISTS(%s)", clause("SELECT 1 FROM", s.table, whereClause))
}

// updateQuery sets the keys of fields, sorted so the statement text is stable.
func (s schema) updateQuery(fields map[string]any, whereClause string) string {
	cols := slices.Sorted(maps.Keys(fields))

	sets := make([]string, len(cols))
	for i, col := range cols {
		sets[i] = col + " = :" + col
	}

	return clause("UPDATE", s.table, "SET", strings.Join(sets, ", "), whereClause)
}

func (s schema) deleteQuery(whereClause string) string {
	return clause("DELETE FROM", s.table, whereClause)
}

// page renders ORDER BY and LIMIT/OFFSET for params, adding the bind values
// to args. SortBy must already be restricted to known columns.
func page(params dto.QueryParams, args map[string]any) string {
	var ordering, limit string

	if params.SortBy != constant.Empty && params.SortDir != constant.Empty {
		ordering = fmt.Sprintf("ORDER BY %s %s", params.SortBy, params.SortDir)
	}

	if params.Limit > 0 {
		args["limit"] = params.Limit
		limit = "LIMIT :limit"

		if offset := params.Offset(); offset > 0 {
			args["offset"] = offset
			limit += " OFFSET :offset"
		}
	}

	return clause(ordering, limit)
}
