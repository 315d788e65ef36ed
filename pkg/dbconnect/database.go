package dbconnect

import (
	"database/sql"
	"strconv"
	"strings"
)

type Database interface {
	Connect() (*sql.DB, error)
	Ping() error
	Driver() string
}

// Rebind rewrites `?` placeholders into `$1..$n` for drivers that need them.
// Queries are written once with `?` and shared by postgres and sqlite.
func Rebind(driver, query string) string {
	if driver != "postgres" {
		return query
	}

	var b strings.Builder
	b.Grow(len(query) + 8)
	n := 0
	inQuote := false
	for _, r := range query {
		switch {
		case r == '\'':
			inQuote = !inQuote
			b.WriteRune(r)
		case r == '?' && !inQuote:
			n++
			b.WriteByte('$')
			b.WriteString(strconv.Itoa(n))
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
