package orm

import (
	"context"
	"fmt"
	"strings"
)

// GroupCount is one row of a grouped COUNT query: a key column value and
// the number of rows carrying it.
type GroupCount[K comparable] struct {
	Key   K
	Count int64
}

// GroupCountQuery describes a grouped COUNT over a single table.
type GroupCountQuery struct {
	Table  string
	KeyCol string

	// Where and Args optionally restrict the counted rows.
	Where string
	Args  []any

	// MinCount, when positive, keeps only groups with strictly more than
	// MinCount rows (HAVING COUNT(*) > MinCount).
	MinCount int64

	// TopOnly orders groups by descending count and returns at most one.
	// Which group wins a tie is up to the engine; no tie-break is defined.
	TopOnly bool
}

// CountByKey counts rows per distinct value of q.KeyCol and returns one
// GroupCount per group. Group order is whatever the engine's grouping
// yields unless q.TopOnly is set.
func CountByKey[K comparable](ctx context.Context, db Querier, q GroupCountQuery) ([]GroupCount[K], error) {
	d := db.dialect()
	qi := d.QuoteIdent

	var b strings.Builder
	fmt.Fprintf(&b, "SELECT %s, COUNT(*) FROM %s", qi(q.KeyCol), qi(q.Table))

	args := append([]any(nil), q.Args...)
	if q.Where != "" {
		b.WriteString(" WHERE ")
		b.WriteString(q.Where)
	}
	fmt.Fprintf(&b, " GROUP BY %s", qi(q.KeyCol))
	if q.MinCount > 0 {
		b.WriteString(" HAVING COUNT(*) > ?")
		args = append(args, q.MinCount)
	}
	if q.TopOnly {
		b.WriteString(" ORDER BY COUNT(*) DESC LIMIT 1")
	}

	query := rewritePlaceholders(d, b.String())

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck // pass through
	}
	defer func() { _ = rows.Close() }()

	var counts []GroupCount[K]
	for rows.Next() {
		var gc GroupCount[K]
		if err := rows.Scan(&gc.Key, &gc.Count); err != nil {
			return nil, err //nolint:wrapcheck // pass through
		}
		counts = append(counts, gc)
	}
	return counts, rows.Err() //nolint:wrapcheck // pass through
}

// Unique de-duplicates values while preserving first-seen order.
func Unique[T comparable](values []T) []T {
	seen := make(map[T]struct{}, len(values))
	result := make([]T, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; !ok {
			seen[v] = struct{}{}
			result = append(result, v)
		}
	}
	return result
}
