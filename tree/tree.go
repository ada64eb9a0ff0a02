package tree

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

// Tree represents a decision tree. It is composed of a
// NodeStore where all its nodes are stored and the id for
// the root node of the tree.
type Tree struct {
	NodeStore
	RootID NodeID
}

// New takes the ID for the root Node and a NodeStore and returns a tree
// composed of the nodes in the NodeStore connected to the node with the
// given root ID.
func New(rootID NodeID, nodeStore NodeStore) *Tree {
	return &Tree{nodeStore, rootID}
}

// Predict takes a voter and returns a prediction according to the tree and an
// error if the prediction could not be made. When the branch for the vote of
// the voter on the issue of a split node is absent, or the vote is not
// recognized, the prediction of that split node is returned.
func (t *Tree) Predict(ctx context.Context, v feature.Voter) (*Prediction, error) {
	if t == nil {
		return nil, errors.New("nil tree cannot predict records")
	}
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return nil, errors.Wrap(err, "predicting record")
	}
	for !n.IsLeaf() {
		vote, err := v.VoteOn(ctx, n.Issue)
		if err != nil {
			return nil, errors.Wrapf(err, "predicting record: obtaining vote on issue %d", n.Issue+1)
		}
		childID, ok := n.Branches[vote]
		if !ok {
			break
		}
		n, err = t.node(ctx, childID)
		if err != nil {
			return nil, errors.Wrap(err, "predicting record")
		}
	}
	if n.Prediction == nil {
		return nil, errors.Errorf("predicting record: node %d has no prediction", n.ID)
	}
	return n.Prediction, nil
}

/*
Test takes a context.Context and a Dataset and returns the prediction
success rate of the tree over the records of the given Dataset, or an error
if a prediction could not be made. The success rate of an empty dataset
is 0.
*/
func (t *Tree) Test(ctx context.Context, s dataset.Dataset) (float64, error) {
	records, err := s.Records(ctx)
	if err != nil {
		return 0.0, err
	}
	if len(records) == 0 {
		return 0.0, nil
	}
	var hits int
	for _, r := range records {
		p, err := t.Predict(ctx, r)
		if err != nil {
			return 0.0, err
		}
		if p.PredictedValue() == r.Party() {
			hits++
		}
	}
	return float64(hits) / float64(len(records)), nil
}

// Traverse takes a context, bottomup boolean and an
// error-returning function that takes a context and a node
// as parameters, and goes through the tree running the
// function with the context and every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// Children are visited in the order of feature.Votes.
// If the given context times out or is cancelled, the context
// error is returned. If a node cannot be retrieved from the
// tree's node store, the obtained error is returned. If the
// call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(ctx context.Context, bottomup bool, f func(context.Context, *Node) error) error {
	n, err := t.node(ctx, t.RootID)
	if err != nil {
		return err
	}
	return t.traverse(ctx, n, bottomup, f)
}

func (t *Tree) traverse(ctx context.Context, n *Node, bottomup bool, f func(context.Context, *Node) error) error {
	err := ctx.Err()
	if err != nil {
		return err
	}
	if !bottomup {
		err = f(ctx, n)
	}
	if err != nil {
		return err
	}
	for _, snID := range n.Children() {
		sn, err := t.node(ctx, snID)
		if err != nil {
			return err
		}
		err = t.traverse(ctx, sn, bottomup, f)
		if err != nil {
			return err
		}
	}
	if bottomup {
		err = f(ctx, n)
	}
	return err
}

/*
Depth returns the number of split nodes on the longest path from the root
of the tree to a leaf. A tree made of a single leaf has depth 0.
*/
func (t *Tree) Depth(ctx context.Context) (int, error) {
	depths := make(map[NodeID]int)
	var max int
	err := t.Traverse(ctx, false, func(_ context.Context, n *Node) error {
		d := 0
		if n.ParentID != 0 {
			d = depths[n.ParentID] + 1
		}
		depths[n.ID] = d
		if d > max {
			max = d
		}
		return nil
	})
	return max, err
}

/*
Format renders the tree as indented text, naming issues with the given
function and parties with the given labels. A nil issueName numbers issues
from 1.
*/
func (t *Tree) Format(ctx context.Context, issueName func(int) string, labels feature.Labels) (string, error) {
	if issueName == nil {
		issueName = func(i int) string { return "issue " + strconv.Itoa(i+1) }
	}
	return t.subtreeString(ctx, t.RootID, issueName, labels)
}

func (t *Tree) String() string {
	s, err := t.Format(context.TODO(), nil, feature.DefaultLabels)
	if err != nil {
		return fmt.Sprintf("ERROR: %s\n", err.Error())
	}
	return s
}

func (t *Tree) subtreeString(ctx context.Context, nodeID NodeID, issueName func(int) string, labels feature.Labels) (string, error) {
	n, err := t.node(ctx, nodeID)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if n.Criterion != nil {
		fmt.Fprintf(&b, "%s %s: ", issueName(n.Criterion.Issue()), n.Criterion.Vote().Name())
	}
	var party string
	var count dataset.VoteCount
	if n.Prediction != nil {
		party = labels.Token(n.Prediction.PredictedValue())
		count = n.Prediction.VoteCount()
	}
	if n.IsLeaf() {
		fmt.Fprintf(&b, "%s %v\n", party, count)
		return b.String(), nil
	}
	fmt.Fprintf(&b, "split on %s (otherwise %s %v)\n", issueName(n.Issue), party, count)
	for _, childID := range n.Children() {
		sub, err := t.subtreeString(ctx, childID, issueName, labels)
		if err != nil {
			return "", err
		}
		for _, line := range strings.Split(strings.TrimSuffix(sub, "\n"), "\n") {
			fmt.Fprintf(&b, "  %s\n", line)
		}
	}
	return b.String(), nil
}

func (t *Tree) node(ctx context.Context, id NodeID) (*Node, error) {
	n, err := t.NodeStore.Get(ctx, id)
	if err != nil {
		return nil, errors.Wrapf(err, "retrieving node %d", id)
	}
	if n == nil {
		return nil, errors.Errorf("node %d not found", id)
	}
	return n, nil
}
