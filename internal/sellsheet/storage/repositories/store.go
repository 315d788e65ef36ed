package repositories

import (
	"database/sql"
	"errors"

	"sellsheet_api/pkg/dbconnect"
)

var ErrNotFound = errors.New("not found")

type store struct {
	db     *sql.DB
	driver string
}

func (s store) q(query string) string {
	return dbconnect.Rebind(s.driver, query)
}
