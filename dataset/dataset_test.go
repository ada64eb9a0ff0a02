package dataset

import (
	"context"
	"math"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarbrob/Voting-Predictor/feature"
)

func rec(id string, party feature.Party, votes string) Record {
	return NewRecord(id, party, feature.ParseVotes(votes))
}

func sampleRecords() []Record {
	return []Record{
		rec("r1", feature.PartyA, "+-."),
		rec("r2", feature.PartyB, "--+"),
		rec("r3", feature.PartyA, "+.."),
		rec("r4", feature.PartyB, "-+-"),
		rec("r5", feature.NoParty, "+?+"),
	}
}

func TestRecordVoteOn(t *testing.T) {
	ctx := context.Background()
	r := rec("x", feature.PartyA, "+-.")

	v, err := r.VoteOn(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, feature.Nay, v)

	_, err = r.VoteOn(ctx, 3)
	assert.Equal(t, ErrIssueOutOfRange, errors.Cause(err))
	_, err = r.VoteOn(ctx, -1)
	assert.Equal(t, ErrIssueOutOfRange, errors.Cause(err))
}

func TestRecordIsImmutable(t *testing.T) {
	votes := feature.ParseVotes("++")
	r := NewRecord("x", feature.PartyA, votes)
	votes[0] = feature.Nay
	r.Votes()[1] = feature.Nay

	assert.Equal(t, "++", feature.FormatVotes(r.Votes()))
}

func TestRecordsAreCopied(t *testing.T) {
	ctx := context.Background()
	for _, build := range []func([]Record) (Dataset, error){NewMemoryIntensive, NewCPUIntensive} {
		ds, err := build(sampleRecords())
		require.NoError(t, err)
		records, err := ds.Records(ctx)
		require.NoError(t, err)
		records[0] = rec("x", feature.PartyB, "...")

		again, err := ds.Records(ctx)
		require.NoError(t, err)
		assert.Equal(t, "r1", again[0].ID())
	}
}

func TestNewRejectsRaggedRecords(t *testing.T) {
	_, err := New([]Record{rec("a", feature.PartyA, "++"), rec("b", feature.PartyB, "+")})
	assert.Equal(t, ErrRaggedRecords, errors.Cause(err))

	_, err = NewWithIssues(3, []Record{rec("a", feature.PartyA, "++")})
	assert.Equal(t, ErrRaggedRecords, errors.Cause(err))
}

func TestVoteCount(t *testing.T) {
	assert.Equal(t, VoteCount{}, CountVotes(nil))
	assert.Equal(t, VoteCount{A: 2, B: 2, Total: 5}, CountVotes(sampleRecords()))
}

func TestMajorityTieGoesToB(t *testing.T) {
	assert.Equal(t, feature.PartyB, VoteCount{}.Majority())
	assert.Equal(t, feature.PartyB, VoteCount{A: 3, B: 3, Total: 6}.Majority())
	assert.Equal(t, feature.PartyA, VoteCount{A: 4, B: 3, Total: 7}.Majority())
}

func TestEntropy(t *testing.T) {
	assert.Equal(t, 0.0, VoteCount{}.Entropy())
	assert.Equal(t, 0.0, VoteCount{A: 5, Total: 5}.Entropy())
	assert.Equal(t, 0.0, VoteCount{B: 5, Total: 5}.Entropy())
	assert.InDelta(t, 1.0, VoteCount{A: 4, B: 4, Total: 8}.Entropy(), 1e-12)

	for a := 0; a <= 10; a++ {
		e := VoteCount{A: a, B: 10 - a, Total: 10}.Entropy()
		assert.True(t, e >= 0 && e <= 1, "entropy %v out of [0, 1]", e)
	}
}

func TestProbLog(t *testing.T) {
	assert.Equal(t, 0.0, ProbLog(0, 10))
	assert.Equal(t, 0.0, ProbLog(3, 0))
	assert.InDelta(t, 0.5, ProbLog(1, 2), 1e-12)
	assert.InDelta(t, -0.25*math.Log2(0.25), ProbLog(1, 4), 1e-12)
}

func TestInformationGain(t *testing.T) {
	assert.Equal(t, 0.0, InformationGain(VoteCount{}))

	parent := VoteCount{A: 2, B: 2, Total: 4}
	gain := InformationGain(parent, VoteCount{A: 2, Total: 2}, VoteCount{B: 2, Total: 2}, VoteCount{})
	assert.InDelta(t, 1.0, gain, 1e-12)

	pure := VoteCount{A: 4, Total: 4}
	gain = InformationGain(pure, VoteCount{A: 1, Total: 1}, VoteCount{A: 3, Total: 3})
	assert.True(t, gain <= 0)
	third := VoteCount{A: 1, B: 2, Total: 3}
	assert.Equal(t, 0.0, InformationGain(VoteCount{A: 3, B: 6, Total: 9}, third, third, third))
	half := VoteCount{A: 1, B: 1, Total: 2}
	assert.Equal(t, 0.0, InformationGain(VoteCount{A: 3, B: 3, Total: 6}, half, half, half))
}

func testSubsetting(t *testing.T, ds Dataset) {
	ctx := context.Background()

	issues, err := ds.Issues(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, issues)

	ayes, err := ds.SubsetWith(ctx, feature.NewVoteCriterion(0, feature.Aye))
	require.NoError(t, err)
	records, err := ayes.Records(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "r1", records[0].ID())
	assert.Equal(t, "r3", records[1].ID())
	assert.Equal(t, "r5", records[2].ID())

	vc, err := ayes.VoteCount(ctx)
	require.NoError(t, err)
	assert.Equal(t, VoteCount{A: 2, Total: 3}, vc)

	abstain, err := ayes.SubsetWith(ctx, feature.NewVoteCriterion(2, feature.Abstain))
	require.NoError(t, err)
	count, err := abstain.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
	e, err := abstain.Entropy(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.0, e)

	criteria, err := abstain.Criteria(ctx)
	require.NoError(t, err)
	assert.Len(t, criteria, 2)

	_, err = ds.SubsetWith(ctx, feature.NewVoteCriterion(3, feature.Aye))
	assert.Equal(t, ErrIssueOutOfRange, errors.Cause(err))
}

func TestMemoryIntensiveSubsetting(t *testing.T) {
	ds, err := NewMemoryIntensive(sampleRecords())
	require.NoError(t, err)
	testSubsetting(t, ds)
}

func TestCPUIntensiveSubsetting(t *testing.T) {
	ds, err := NewCPUIntensive(sampleRecords())
	require.NoError(t, err)
	testSubsetting(t, ds)
}

func TestWorkingSet(t *testing.T) {
	ctx := context.Background()
	var records []Record
	for i := 0; i < 10; i++ {
		records = append(records, rec(string(rune('a'+i)), feature.PartyA, "+"))
	}
	ds, err := New(records)
	require.NoError(t, err)

	picked, rest, err := WorkingSet(ctx, ds, DefaultStride)
	require.NoError(t, err)

	p, err := picked.Records(ctx)
	require.NoError(t, err)
	r, err := rest.Records(ctx)
	require.NoError(t, err)

	var ids []string
	for _, record := range p {
		ids = append(ids, record.ID())
	}
	assert.Equal(t, []string{"a", "e", "i"}, ids)
	assert.Len(t, r, 7)
	assert.Equal(t, "b", r[0].ID())

	_, _, err = WorkingSet(ctx, ds, 0)
	assert.Error(t, err)
}

func TestWorkingSetOfEmptyDatasetKeepsWidth(t *testing.T) {
	ctx := context.Background()
	ds, err := NewWithIssues(16, nil)
	require.NoError(t, err)

	picked, rest, err := WorkingSet(ctx, ds, DefaultStride)
	require.NoError(t, err)
	for _, d := range []Dataset{picked, rest} {
		issues, err := d.Issues(ctx)
		require.NoError(t, err)
		assert.Equal(t, 16, issues)
	}
}
