package inputrecord

import (
	"bytes"
	"context"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarbrob/Voting-Predictor/feature"
)

func TestVoteOn(t *testing.T) {
	ctx := context.Background()
	out := &bytes.Buffer{}
	names := func(i int) string { return "issue " + strconv.Itoa(i+1) }
	voter := New(strings.NewReader("yes\n-\n+\n"), 3, NewPrompter(out, names))

	v, err := voter.VoteOn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, feature.Nay, v)
	assert.Contains(t, out.String(), `"yes" is not a vote`)

	v, err = voter.VoteOn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, feature.Nay, v)

	v, err = voter.VoteOn(ctx, 0)
	require.NoError(t, err)
	assert.Equal(t, feature.Aye, v)

	_, err = voter.VoteOn(ctx, 2)
	assert.Error(t, err)

	_, err = voter.VoteOn(ctx, 3)
	assert.Error(t, err)
}
