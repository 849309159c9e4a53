package worklog

import "time"

type ExistingRecord[T ~string] struct {
	ID        T
	CreatedAt time.Time
	UpdatedAt time.Time
}

func NewExistingRecord[T ~string](id string) ExistingRecord[T] {
	now := time.Now()
	return ExistingRecord[T]{
		ID:        T(id),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Filter maps column names to the value they must equal.
type Filter map[string]any

// Query is the generic select contract shared by every table: equality filters,
// an optional ordering column and an optional row limit (0 means no limit).
type Query struct {
	Filter    Filter
	OrderBy   string
	Ascending bool
	Limit     int
}

func ByUser(uid UserID) Query {
	return Query{Filter: Filter{"user_id": string(uid)}}
}

func (q Query) Where(column string, value any) Query {
	f := make(Filter, len(q.Filter)+1)
	for k, v := range q.Filter {
		f[k] = v
	}
	f[column] = value
	q.Filter = f
	return q
}

func (q Query) Order(column string, ascending bool) Query {
	q.OrderBy = column
	q.Ascending = ascending
	return q
}

func (q Query) Take(limit int) Query {
	q.Limit = limit
	return q
}
