package dbutil

import (
	"strings"

	"github.com/jmoiron/sqlx"
)

// Finalize rebinds gendry's "?" placeholders to postgres "$n" and appends a
// RETURNING clause when columns are given.
func Finalize(query string, args []interface{}, returning []string) (string, []interface{}) {
	if len(returning) > 0 {
		query = strings.TrimRight(query, " ;") + " RETURNING " + strings.Join(returning, ",")
	}
	return sqlx.Rebind(sqlx.DOLLAR, query), args
}
