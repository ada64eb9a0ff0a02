package tree

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

// buildTree returns a tree splitting on issue 1 whose Aye branch predicts A
// and whose Nay branch is absent.
func buildTree(t *testing.T) *Tree {
	t.Helper()
	ctx := context.Background()
	ns := NewMemoryNodeStore()

	root := NewNode(0, nil)
	require.NoError(t, ns.Create(ctx, root))
	root.Split(1)
	root.Prediction = NewPrediction(feature.PartyB, dataset.VoteCount{A: 2, B: 3, Total: 5})

	aye := NewNode(root.ID, feature.NewVoteCriterion(1, feature.Aye))
	aye.SetLeaf(true)
	aye.Prediction = NewPrediction(feature.PartyA, dataset.VoteCount{A: 2, Total: 2})
	require.NoError(t, ns.Create(ctx, aye))

	abstain := NewNode(root.ID, feature.NewVoteCriterion(1, feature.Abstain))
	abstain.SetLeaf(true)
	abstain.Prediction = NewPrediction(feature.PartyB, dataset.VoteCount{B: 1, Total: 1})
	require.NoError(t, ns.Create(ctx, abstain))

	root.Branches[feature.Aye] = aye.ID
	root.Branches[feature.Abstain] = abstain.ID
	require.NoError(t, ns.Store(ctx, root))
	return New(root.ID, ns)
}

func TestMemoryNodeStoreAssignsIncreasingIDs(t *testing.T) {
	ctx := context.Background()
	ns := NewMemoryNodeStore()
	for i := 1; i <= 3; i++ {
		n := NewNode(0, nil)
		require.NoError(t, ns.Create(ctx, n))
		assert.Equal(t, NodeID(i), n.ID)
	}
	n, err := ns.Get(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, NodeID(2), n.ID)

	n, err = ns.Get(ctx, 4)
	require.NoError(t, err)
	assert.Nil(t, n)

	err = ns.Store(ctx, &Node{ID: 9})
	assert.IsType(t, &UnknownNodeError{}, err)
}

func TestPredict(t *testing.T) {
	ctx := context.Background()
	tr := buildTree(t)

	cases := []struct {
		votes    string
		expected feature.Party
	}{
		{"-+", feature.PartyA},
		{"-.", feature.PartyB},
		{"+-", feature.PartyB},
		{"+?", feature.PartyB},
	}
	for _, c := range cases {
		p, err := tr.Predict(ctx, dataset.NewRecord("x", feature.NoParty, feature.ParseVotes(c.votes)))
		require.NoError(t, err)
		assert.Equal(t, c.expected, p.PredictedValue(), c.votes)
	}

	_, err := tr.Predict(ctx, dataset.NewRecord("short", feature.NoParty, feature.ParseVotes("+")))
	assert.Error(t, err)
}

func TestTest(t *testing.T) {
	ctx := context.Background()
	tr := buildTree(t)
	ds, err := dataset.New([]dataset.Record{
		dataset.NewRecord("a", feature.PartyA, feature.ParseVotes("++")),
		dataset.NewRecord("b", feature.PartyB, feature.ParseVotes("+-")),
		dataset.NewRecord("c", feature.PartyA, feature.ParseVotes("+.")),
		dataset.NewRecord("d", feature.PartyB, feature.ParseVotes("-+")),
	})
	require.NoError(t, err)

	rate, err := tr.Test(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, 0.5, rate)

	empty, err := dataset.NewWithIssues(2, nil)
	require.NoError(t, err)
	rate, err = tr.Test(ctx, empty)
	require.NoError(t, err)
	assert.Equal(t, 0.0, rate)
}

func TestTraverse(t *testing.T) {
	ctx := context.Background()
	tr := buildTree(t)

	var topdown, bottomup []NodeID
	require.NoError(t, tr.Traverse(ctx, false, func(_ context.Context, n *Node) error {
		topdown = append(topdown, n.ID)
		return nil
	}))
	require.NoError(t, tr.Traverse(ctx, true, func(_ context.Context, n *Node) error {
		bottomup = append(bottomup, n.ID)
		return nil
	}))
	assert.Equal(t, []NodeID{1, 2, 3}, topdown)
	assert.Equal(t, []NodeID{2, 3, 1}, bottomup)

	depth, err := tr.Depth(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, depth)
}

func TestFormat(t *testing.T) {
	ctx := context.Background()
	tr := buildTree(t)

	s, err := tr.Format(ctx, func(i int) string { return []string{"budget", "defense"}[i] }, feature.DefaultLabels)
	require.NoError(t, err)
	assert.Equal(t, "split on defense (otherwise R {A:2 B:3 total:5})\n"+
		"  defense aye: D {A:2 B:0 total:2}\n"+
		"  defense abstain: R {A:0 B:1 total:1}\n", s)

	assert.Contains(t, tr.String(), "split on issue 2")
}

func TestSetLeafDropsBranches(t *testing.T) {
	n := NewNode(0, nil)
	n.Split(3)
	n.Branches[feature.Aye] = 2
	assert.False(t, n.IsLeaf())
	n.SetLeaf(true)
	assert.True(t, n.IsLeaf())
	assert.Equal(t, -1, n.Issue)
	assert.Empty(t, n.Children())
}
