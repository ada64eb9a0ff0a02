/*
Package sqlite3adapter provides an implementation of the
Adapter interface in the sqldataset package that works
over an SQLite3 database file.
*/
package sqlite3adapter

import (
	"database/sql"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset"

	// Import of sqlite3 driver
	_ "github.com/mattn/go-sqlite3"
)

const recordTableCreateStmt = `CREATE TABLE IF NOT EXISTS records (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		party TEXT NOT NULL,
		votes TEXT NOT NULL)`

/*
New takes a path to an SQLite3 database file and returns an Adapter that works
on the file's database or an error if it fails to open as an sqlite3 database.
*/
func New(path string) (sqldataset.Adapter, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening sqlite3 database %s", path)
	}
	return sqldataset.NewAdapter(db, sqldataset.Dialect{
		Name:            "sqlite3",
		CreateTableStmt: recordTableCreateStmt,
		Placeholder:     func(int) string { return "?" },
	}), nil
}
