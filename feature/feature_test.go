package feature

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type voteSlice []Vote

func (vs voteSlice) VoteOn(_ context.Context, issue int) (Vote, error) {
	return vs[issue], nil
}

func TestParseVotesKeepsUnrecognizedTokens(t *testing.T) {
	votes := ParseVotes("+-.x")
	require.Len(t, votes, 4)
	assert.Equal(t, []Vote{Aye, Nay, Abstain, Vote('x')}, votes)
	assert.True(t, votes[0].Valid())
	assert.False(t, votes[3].Valid())
	assert.Equal(t, -1, votes[3].Index())
	assert.Equal(t, "+-.x", FormatVotes(votes))
}

func TestVoteIndexFollowsBranchOrder(t *testing.T) {
	for i, v := range Votes {
		assert.Equal(t, i, v.Index())
	}
}

func TestLabels(t *testing.T) {
	l := DefaultLabels
	assert.Equal(t, PartyA, l.Party("D"))
	assert.Equal(t, PartyB, l.Party("R"))
	assert.Equal(t, NoParty, l.Party("I"))
	assert.Equal(t, "R", l.Token(PartyB))
	assert.Equal(t, "?", l.Token(NoParty))
}

func TestParseParty(t *testing.T) {
	for _, p := range []Party{PartyA, PartyB} {
		assert.Equal(t, p, ParseParty(p.String()))
	}
	assert.Equal(t, NoParty, ParseParty(""))
}

func TestVoteCriterion(t *testing.T) {
	ctx := context.Background()
	c := NewVoteCriterion(1, Nay)
	ok, err := c.SatisfiedBy(ctx, voteSlice{Aye, Nay})
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = c.SatisfiedBy(ctx, voteSlice{Nay, Abstain})
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "issue 2 is -", c.(interface{ String() string }).String())
}
