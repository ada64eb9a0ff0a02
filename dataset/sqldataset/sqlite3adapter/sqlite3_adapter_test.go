package sqlite3adapter

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

func records() []dataset.Record {
	var rs []dataset.Record
	for i, v := range []string{"++-", "+-.", "-++", "+..", "--+", "+-+", ".+-", "++.", "-.-", "+++", "---", ".+."} {
		party := feature.PartyA
		if v[0] != '+' {
			party = feature.PartyB
		}
		rs = append(rs, dataset.NewRecord(string(rune('a'+i)), party, feature.ParseVotes(v)))
	}
	return rs
}

func TestSQLiteDataset(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "records.db")

	a, err := New(path)
	require.NoError(t, err)
	set, err := sqldataset.Create(ctx, a, 3)
	require.NoError(t, err)
	n, err := set.Write(ctx, records())
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	require.NoError(t, a.Close())

	a, err = New(path)
	require.NoError(t, err)
	defer a.Close()
	ds, err := sqldataset.Open(ctx, a)
	require.NoError(t, err)

	issues, err := ds.Issues(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, issues)

	vc, err := ds.VoteCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, dataset.VoteCount{A: 6, B: 6, Total: 12}, vc)

	ayes, err := ds.SubsetWith(ctx, feature.NewVoteCriterion(0, feature.Aye))
	require.NoError(t, err)
	e, err := ayes.Entropy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)

	sub, err := ayes.SubsetWith(ctx, feature.NewVoteCriterion(2, feature.Abstain))
	require.NoError(t, err)
	rs, err := sub.Records(ctx)
	require.NoError(t, err)
	require.Len(t, rs, 3)
	assert.Equal(t, "b", rs[0].ID())
	assert.Equal(t, "d", rs[1].ID())
	assert.Equal(t, "h", rs[2].ID())

	all, err := ds.Records(ctx)
	require.NoError(t, err)
	mem, err := dataset.New(all)
	require.NoError(t, err)
	memVC, err := mem.VoteCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, vc, memVC)

	_, err = ds.SubsetWith(ctx, feature.NewVoteCriterion(3, feature.Aye))
	assert.Equal(t, dataset.ErrIssueOutOfRange, errors.Cause(err))
}

func TestSQLiteDatasetRejectsRaggedRecords(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer a.Close()
	set, err := sqldataset.Create(ctx, a, 2)
	require.NoError(t, err)

	_, err = set.Write(ctx, records())
	assert.Equal(t, dataset.ErrRaggedRecords, errors.Cause(err))
}

func TestSQLiteOpenRejectsRaggedRows(t *testing.T) {
	ctx := context.Background()
	a, err := New(filepath.Join(t.TempDir(), "records.db"))
	require.NoError(t, err)
	defer a.Close()
	require.NoError(t, a.CreateRecordTable(ctx))
	_, err = a.AddRecords(ctx, []sqldataset.Row{
		{ID: "a", Party: "A", Votes: "++-"},
		{ID: "b", Party: "B", Votes: "+-"},
	})
	require.NoError(t, err)

	n, err := a.CountRecordsNotOfWidth(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = sqldataset.Open(ctx, a)
	assert.Equal(t, dataset.ErrRaggedRecords, errors.Cause(err))
}
