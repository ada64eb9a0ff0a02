package sqldataset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
Set is a dataset.Dataset to which records can be added.

Its Write method takes a slice of records and adds them after the ones
already in the set, returning the number of records written and an error
if any occur.
*/
type Set interface {
	dataset.Dataset
	Write(context.Context, []dataset.Record) (int, error)
}

type dbSet struct {
	db          Adapter
	issues      int
	criteria    []feature.Criterion
	sqlCriteria []*VoteCriterion
	voteCount   *dataset.VoteCount
}

/*
Open takes an Adapter to a db backend and returns a Set backed by it, or an
error if the records table cannot be read. The number of issues of the set
is that of the first record in it, or 0 if it is empty. An error wrapping
dataset.ErrRaggedRecords is returned if any record has votes for a different
number of issues.
*/
func Open(ctx context.Context, dbAdapter Adapter) (Set, error) {
	issues, err := dbAdapter.VotesWidth(ctx)
	if err != nil {
		return nil, err
	}
	ragged, err := dbAdapter.CountRecordsNotOfWidth(ctx, issues)
	if err != nil {
		return nil, err
	}
	if ragged > 0 {
		return nil, errors.Wrapf(dataset.ErrRaggedRecords, "%d records do not have votes for %d issues", ragged, issues)
	}
	return &dbSet{db: dbAdapter, issues: issues}, nil
}

/*
Create takes an Adapter and the number of issues of the records to be stored
and returns a Set backed by the given adapter or an error. It ensures the
records table exists on the database.
*/
func Create(ctx context.Context, dbAdapter Adapter, issues int) (Set, error) {
	err := dbAdapter.CreateRecordTable(ctx)
	if err != nil {
		return nil, err
	}
	return &dbSet{db: dbAdapter, issues: issues}, nil
}

func (ss *dbSet) Issues(context.Context) (int, error) {
	return ss.issues, nil
}

func (ss *dbSet) VoteCount(ctx context.Context) (dataset.VoteCount, error) {
	if ss.voteCount != nil {
		return *ss.voteCount, nil
	}
	counts, err := ss.db.CountParties(ctx, ss.sqlCriteria)
	if err != nil {
		return dataset.VoteCount{}, err
	}
	var vc dataset.VoteCount
	for party, c := range counts {
		switch feature.ParseParty(party) {
		case feature.PartyA:
			vc.A += c
		case feature.PartyB:
			vc.B += c
		}
		vc.Total += c
	}
	ss.voteCount = &vc
	return vc, nil
}

func (ss *dbSet) Entropy(ctx context.Context) (float64, error) {
	vc, err := ss.VoteCount(ctx)
	if err != nil {
		return 0, err
	}
	return vc.Entropy(), nil
}

func (ss *dbSet) Count(ctx context.Context) (int, error) {
	vc, err := ss.VoteCount(ctx)
	if err != nil {
		return 0, err
	}
	return vc.Total, nil
}

func (ss *dbSet) SubsetWith(ctx context.Context, c feature.Criterion) (dataset.Dataset, error) {
	if c.Issue() < 0 || c.Issue() >= ss.issues {
		return nil, errors.Wrapf(dataset.ErrIssueOutOfRange, "subsetting on issue %d with %d issues", c.Issue()+1, ss.issues)
	}
	sc, err := NewVoteCriterion(c)
	if err != nil {
		return nil, err
	}
	return &dbSet{
		db:          ss.db,
		issues:      ss.issues,
		criteria:    append(append([]feature.Criterion{}, ss.criteria...), c),
		sqlCriteria: append(append([]*VoteCriterion{}, ss.sqlCriteria...), sc),
	}, nil
}

func (ss *dbSet) Records(ctx context.Context) ([]dataset.Record, error) {
	var records []dataset.Record
	err := ss.db.IterateOnRecords(ctx, ss.sqlCriteria, func(_ int, r Row) (bool, error) {
		records = append(records, dataset.NewRecord(r.ID, feature.ParseParty(r.Party), feature.ParseVotes(r.Votes)))
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (ss *dbSet) Criteria(context.Context) ([]feature.Criterion, error) {
	return ss.criteria, nil
}

func (ss *dbSet) Write(ctx context.Context, records []dataset.Record) (int, error) {
	if len(ss.criteria) > 0 {
		return 0, errors.New("cannot write records on a subset")
	}
	rows := make([]Row, 0, len(records))
	for i, r := range records {
		if r.Len() != ss.issues {
			return 0, errors.Wrapf(dataset.ErrRaggedRecords, "record #%d (%s) has %d issues, expected %d", i+1, r.ID(), r.Len(), ss.issues)
		}
		rows = append(rows, Row{ID: r.ID(), Party: r.Party().String(), Votes: feature.FormatVotes(r.Votes())})
	}
	n, err := ss.db.AddRecords(ctx, rows)
	ss.voteCount = nil
	return n, err
}

func (ss *dbSet) String() string {
	return fmt.Sprintf("sql dataset with %d criteria", len(ss.criteria))
}
