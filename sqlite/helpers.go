package sqlite

import (
	"strings"
	"time"

	"github.com/vsalmi/tapio"
)

// parseStoredTime decodes an RFC3339 timestamp read from a column.
// Timestamps are written by this package, so a parse failure means the
// row was corrupted outside of it.
func parseStoredTime(value, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, tapio.Errorf(tapio.EINTERNAL, "malformed %s timestamp %q: %v", column, value, err)
	}
	return t, nil
}

// applyPagination appends LIMIT and OFFSET clauses for the positive
// filter values. Zero values leave the query unbounded.
func applyPagination(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
