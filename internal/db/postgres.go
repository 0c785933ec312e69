package db

import (
	"database/sql"

	libdb "voltgrid/libs/db"
)

// NewPostgres connects to Postgres using the shared library helper.
func NewPostgres(dsn string) (*sql.DB, error) {
	return libdb.Connect(dsn)
}
