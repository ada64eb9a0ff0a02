package sqldataset

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"

	"github.com/pkg/errors"
)

/*
MaxRecordInsertionsPerStatement is the maximum number
of records that are added with a single insert command
by the AddRecords method of adapters built with NewAdapter.
Adding more will result in making more insertion commands.
*/
const MaxRecordInsertionsPerStatement = 10

/*
Row is the raw representation of a record on the records table.
*/
type Row struct {
	ID    string
	Party string
	Votes string
}

/*
Adapter is an interface providing the methods
needed to implement a Dataset with a database backend.
*/
type Adapter interface {
	CreateRecordTable(context.Context) error
	AddRecords(context.Context, []Row) (int, error)
	IterateOnRecords(ctx context.Context, criteria []*VoteCriterion, lambda func(int, Row) (bool, error)) error
	CountParties(context.Context, []*VoteCriterion) (map[string]int, error)
	VotesWidth(context.Context) (int, error)
	CountRecordsNotOfWidth(ctx context.Context, width int) (int, error)
	Close() error
}

/*
Dialect holds what differs between the SQL databases adapters are built for.
*/
type Dialect struct {
	// Name is used on error messages
	Name string
	// CreateTableStmt is the statement that ensures the records table exists
	CreateTableStmt string
	// Placeholder returns the placeholder for the nth parameter of a statement
	Placeholder PlaceholderFunc
}

type adapter struct {
	db *sql.DB
	d  Dialect
}

/*
NewAdapter takes an open database handle and the dialect it speaks and
returns an Adapter on it.
*/
func NewAdapter(db *sql.DB, d Dialect) Adapter {
	return &adapter{db, d}
}

func (a *adapter) CreateRecordTable(ctx context.Context) error {
	_, err := a.db.ExecContext(ctx, a.d.CreateTableStmt)
	if err != nil {
		return errors.Wrapf(err, "ensuring %s records table exists", a.d.Name)
	}
	return nil
}

func (a *adapter) AddRecords(ctx context.Context, rows []Row) (int, error) {
	var n int
	for start := 0; start < len(rows); start += MaxRecordInsertionsPerStatement {
		end := start + MaxRecordInsertionsPerStatement
		if end > len(rows) {
			end = len(rows)
		}
		chunk := rows[start:end]
		var stmtBuf bytes.Buffer
		values := make([]interface{}, 0, 3*len(chunk))
		stmtBuf.WriteString("INSERT INTO records (id, party, votes) VALUES ")
		for i, r := range chunk {
			if i > 0 {
				stmtBuf.WriteString(", ")
			}
			stmtBuf.WriteString(fmt.Sprintf("(%s, %s, %s)", a.d.Placeholder(3*i+1), a.d.Placeholder(3*i+2), a.d.Placeholder(3*i+3)))
			values = append(values, r.ID, r.Party, r.Votes)
		}
		_, err := a.db.ExecContext(ctx, stmtBuf.String(), values...)
		if err != nil {
			return n, errors.Wrapf(err, "inserting records %d to %d", start+1, end)
		}
		n = end
	}
	return n, nil
}

func (a *adapter) IterateOnRecords(ctx context.Context, criteria []*VoteCriterion, lambda func(int, Row) (bool, error)) error {
	whereClause, whereValues := BuildWhereClause(criteria, a.d.Placeholder, 1)
	rows, err := a.db.QueryContext(ctx, "SELECT id, party, votes FROM records"+whereClause+" ORDER BY seq", whereValues...)
	if err != nil {
		return errors.Wrap(err, "querying records")
	}
	defer rows.Close()
	for j := 0; rows.Next(); j++ {
		var r Row
		err = rows.Scan(&r.ID, &r.Party, &r.Votes)
		if err != nil {
			return errors.Wrap(err, "scanning record")
		}
		ok, err := lambda(j, r)
		if err != nil {
			return err
		}
		if !ok {
			break
		}
	}
	return rows.Err()
}

func (a *adapter) CountParties(ctx context.Context, criteria []*VoteCriterion) (map[string]int, error) {
	whereClause, whereValues := BuildWhereClause(criteria, a.d.Placeholder, 1)
	rows, err := a.db.QueryContext(ctx, "SELECT party, COUNT(*) FROM records"+whereClause+" GROUP BY party", whereValues...)
	if err != nil {
		return nil, errors.Wrap(err, "counting records")
	}
	defer rows.Close()
	result := make(map[string]int)
	for rows.Next() {
		var party string
		var count int
		err = rows.Scan(&party, &count)
		if err != nil {
			return nil, errors.Wrap(err, "scanning record count")
		}
		result[party] = count
	}
	return result, rows.Err()
}

func (a *adapter) VotesWidth(ctx context.Context) (int, error) {
	var width int
	err := a.db.QueryRowContext(ctx, "SELECT length(votes) FROM records ORDER BY seq LIMIT 1").Scan(&width)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	if err != nil {
		return 0, errors.Wrap(err, "retrieving number of issues")
	}
	return width, nil
}

func (a *adapter) CountRecordsNotOfWidth(ctx context.Context, width int) (int, error) {
	var count int
	err := a.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM records WHERE length(votes) <> "+a.d.Placeholder(1), width).Scan(&count)
	if err != nil {
		return 0, errors.Wrap(err, "counting ragged records")
	}
	return count, nil
}

func (a *adapter) Close() error {
	return a.db.Close()
}
