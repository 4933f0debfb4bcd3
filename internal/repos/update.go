package repos

import (
	"sort"
	"strings"

	"github.com/jmoiron/sqlx"
)

// execUpdate applies a partial update. Column names come from repo/service
// code, never from request input. Columns are applied in sorted order so the
// generated SQL is deterministic.
func execUpdate(db *sqlx.DB, table string, id int64, set map[string]any) error {
	if len(set) == 0 {
		return nil
	}
	cols := make([]string, 0, len(set))
	for c := range set {
		cols = append(cols, c)
	}
	sort.Strings(cols)

	var b strings.Builder
	args := make([]any, 0, len(set)+1)
	b.WriteString("UPDATE " + table + " SET ")
	for i, c := range cols {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(c + " = ?")
		args = append(args, set[c])
	}
	b.WriteString(", updated_at = CURRENT_TIMESTAMP WHERE id = ?")
	args = append(args, id)

	_, err := db.Exec(b.String(), args...)
	return err
}
