package sqlite

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/benjamonnguyen/worklog-go"
)

type columnKind uint8

const (
	textColumn columnKind = iota
	numberColumn
	dateColumn      // TEXT as YYYY-MM-DD
	timestampColumn // INTEGER unix seconds
)

type table struct {
	name    string
	columns []string
	kinds   map[string]columnKind
}

func newTable(name string, columns ...string) table {
	return table{
		name:    name,
		columns: columns,
		kinds:   make(map[string]columnKind),
	}
}

func (t table) with(kind columnKind, columns ...string) table {
	for _, c := range columns {
		t.kinds[c] = kind
	}
	return t
}

func (t table) has(column string) bool {
	return slices.Contains(t.columns, column)
}

func (t table) selectAll() string {
	return fmt.Sprintf("SELECT %s FROM %s", strings.Join(t.columns, ", "), t.name)
}

func (t table) insert() string {
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", t.name, strings.Join(t.columns, ", "), GenerateParameters(len(t.columns)))
}

// update sets every column but id and created_at.
func (t table) update() string {
	var sets []string
	for _, c := range t.columns {
		if c == "id" || c == "created_at" {
			continue
		}
		sets = append(sets, c+" = ?")
	}
	return fmt.Sprintf("UPDATE %s SET %s WHERE id = ?", t.name, strings.Join(sets, ", "))
}

// updateArgs reorders insert args to match update: id moves to the end and
// created_at is dropped.
func (t table) updateArgs(args []any) []any {
	var (
		res []any
		id  any
	)
	for i, c := range t.columns {
		switch c {
		case "id":
			id = args[i]
		case "created_at":
		default:
			res = append(res, args[i])
		}
	}
	return append(res, id)
}

// selectQuery renders q against t. Filter keys are emitted in sorted order so
// identical queries produce identical SQL.
func (t table) selectQuery(q worklog.Query) (string, []any, error) {
	var (
		sb    strings.Builder
		conds []string
		args  []any
	)
	sb.WriteString(t.selectAll())

	keys := make([]string, 0, len(q.Filter))
	for k := range q.Filter {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		if !t.has(k) {
			return "", nil, worklog.InvalidField(k, "is not a column of "+t.name)
		}
		v := q.Filter[k]
		if v == nil {
			conds = append(conds, k+" IS NULL")
			continue
		}
		conds = append(conds, k+" = ?")
		args = append(args, t.arg(k, v))
	}
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}

	if q.OrderBy != "" {
		if !t.has(q.OrderBy) {
			return "", nil, worklog.InvalidField(q.OrderBy, "is not a column of "+t.name)
		}
		dir := "DESC"
		if q.Ascending {
			dir = "ASC"
		}
		fmt.Fprintf(&sb, " ORDER BY %s %s", q.OrderBy, dir)
	}

	if q.Limit < 0 {
		return "", nil, worklog.InvalidField("limit", "must not be negative")
	}
	if q.Limit > 0 {
		sb.WriteString(" LIMIT ?")
		args = append(args, q.Limit)
	}
	return sb.String(), args, nil
}

// arg converts a filter value to its storage representation.
func (t table) arg(column string, v any) any {
	if tm, ok := v.(time.Time); ok {
		switch t.kinds[column] {
		case dateColumn:
			return tm.Format(worklog.DateLayout)
		default:
			return tm.Unix()
		}
	}
	// named string types such as worklog.TicketStatus
	if rv := reflect.ValueOf(v); rv.Kind() == reflect.String {
		return rv.String()
	}
	return v
}
