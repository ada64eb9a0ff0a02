package pgadapter

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/dataset/sqldataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

func TestPostgreSQLDataset(t *testing.T) {
	url := os.Getenv("POSTGRESQL_URL")
	if url == "" {
		t.Skip("POSTGRESQL_URL not set")
	}
	ctx := context.Background()
	a, err := New(url)
	require.NoError(t, err)
	defer a.Close()

	set, err := sqldataset.Create(ctx, a, 2)
	require.NoError(t, err)
	before, err := set.Count(ctx)
	require.NoError(t, err)

	_, err = set.Write(ctx, []dataset.Record{
		dataset.NewRecord("pg1", feature.PartyA, feature.ParseVotes("+-")),
		dataset.NewRecord("pg2", feature.PartyB, feature.ParseVotes("-+")),
	})
	require.NoError(t, err)

	ds, err := sqldataset.Open(ctx, a)
	require.NoError(t, err)
	count, err := ds.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, before+2, count)

	sub, err := ds.SubsetWith(ctx, feature.NewVoteCriterion(1, feature.Aye))
	require.NoError(t, err)
	rs, err := sub.Records(ctx)
	require.NoError(t, err)
	assert.NotEmpty(t, rs)
}
