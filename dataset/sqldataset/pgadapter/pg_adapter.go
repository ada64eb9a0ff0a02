/*
Package pgadapter provides an implementation of the
Adapter interface in the sqldataset package that works
over a PostgreSQL database.
*/
package pgadapter

import (
	"database/sql"
	"fmt"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset"

	// Import of PostgreSQL driver
	_ "github.com/lib/pq"
)

const recordTableCreateStmt = `CREATE TABLE IF NOT EXISTS records (
		seq SERIAL PRIMARY KEY,
		id TEXT NOT NULL,
		party TEXT NOT NULL,
		votes TEXT NOT NULL)`

/*
New takes a PostgreSQL database connection URL and returns
an Adapter that works on the database or an error if it fails to connect to it.
*/
func New(url string) (sqldataset.Adapter, error) {
	db, err := sql.Open("postgres", url)
	if err != nil {
		return nil, errors.Wrap(err, "opening postgresql database")
	}
	return sqldataset.NewAdapter(db, sqldataset.Dialect{
		Name:            "postgresql",
		CreateTableStmt: recordTableCreateStmt,
		Placeholder:     func(n int) string { return fmt.Sprintf("$%d", n) },
	}), nil
}
