package redisdataset

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	redis "gopkg.in/redis.v5"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

func TestStoreAndLoad(t *testing.T) {
	rawURL := os.Getenv("REDIS_URL")
	if rawURL == "" {
		t.Skip("REDIS_URL not set")
	}
	ctx := context.Background()
	opts, _, err := ParseURL(rawURL)
	require.NoError(t, err)
	rc := redis.NewClient(opts)
	defer rc.Close()
	key := "voting-predictor:test:records"
	defer rc.Del(key)

	ds, err := dataset.New([]dataset.Record{
		dataset.NewRecord("r1", feature.PartyA, feature.ParseVotes("+-.")),
		dataset.NewRecord("r2", feature.PartyB, feature.ParseVotes("--+")),
	})
	require.NoError(t, err)

	n, err := Store(ctx, rc, key, ds, feature.DefaultLabels)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	loaded, err := Load(ctx, rc, key, feature.DefaultLabels)
	require.NoError(t, err)
	records, err := loaded.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "r2", records[1].ID())
	assert.Equal(t, feature.PartyB, records[1].Party())
	assert.Equal(t, "--+", feature.FormatVotes(records[1].Votes()))
}

func TestParseURL(t *testing.T) {
	opts, key, err := ParseURL("redis://:secret@cache:6380/votes:house")
	require.NoError(t, err)
	assert.Equal(t, "cache:6380", opts.Addr)
	assert.Equal(t, "secret", opts.Password)
	assert.Equal(t, "votes:house", key)

	opts, key, err = ParseURL("redis://localhost/records")
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", opts.Addr)
	assert.Equal(t, "records", key)

	_, _, err = ParseURL("http://localhost/records")
	assert.Error(t, err)
}
