/*
Package json prints trees as JSON documents. Trees are not read back: a
grown tree is shown, not stored.
*/
package json

import (
	"context"
	"encoding/json"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/feature"
	"github.com/scarbrob/Voting-Predictor/tree"
)

type node struct {
	ID         tree.NodeID            `json:"id"`
	ParentID   tree.NodeID            `json:"pId,omitempty"`
	Criterion  *criterion             `json:"c,omitempty"`
	Leaf       bool                   `json:"leaf,omitempty"`
	Issue      *issue                 `json:"split,omitempty"`
	Branches   map[string]tree.NodeID `json:"branches,omitempty"`
	Prediction *prediction            `json:"pred,omitempty"`
}

type issue struct {
	Index int    `json:"index"`
	Name  string `json:"name"`
}

type criterion struct {
	Issue issue  `json:"issue"`
	Vote  string `json:"vote"`
}

type prediction struct {
	Party string `json:"party"`
	A     int    `json:"a"`
	B     int    `json:"b"`
	Total int    `json:"total"`
}

/*
WriteJSONTree takes a context.Context, a pointer to a tree.Tree, a function
naming issues, the labels to render parties with and an io.Writer and
serializes the given tree as JSON onto the io.Writer.
A tree is serialized as a JSON object with the following fields:
* "rootID": the ID of the node at the root of the tree
* "nodes": an array containing the nodes that can be traversed on the tree,
  parents before children.
Issue indexes are 1-based. An error is returned if the tree cannot be
traversed or written onto the io.Writer.
*/
func WriteJSONTree(ctx context.Context, t *tree.Tree, issueName func(int) string, labels feature.Labels, w io.Writer) error {
	if issueName == nil {
		issueName = func(i int) string { return "issue " + strconv.Itoa(i+1) }
	}
	jt := struct {
		RootID tree.NodeID `json:"rootID"`
		Nodes  []*node     `json:"nodes"`
	}{RootID: t.RootID}
	err := t.Traverse(ctx, false, func(ctx context.Context, n *tree.Node) error {
		jt.Nodes = append(jt.Nodes, encodeNode(n, issueName, labels))
		return nil
	})
	if err != nil {
		return errors.Wrap(err, "traversing tree")
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return errors.Wrap(enc.Encode(&jt), "writing tree")
}

func encodeNode(n *tree.Node, issueName func(int) string, labels feature.Labels) *node {
	jn := &node{ID: n.ID, ParentID: n.ParentID, Leaf: n.IsLeaf()}
	if n.Criterion != nil {
		jn.Criterion = &criterion{
			Issue: issue{n.Criterion.Issue() + 1, issueName(n.Criterion.Issue())},
			Vote:  n.Criterion.Vote().String(),
		}
	}
	if !n.IsLeaf() {
		jn.Issue = &issue{n.Issue + 1, issueName(n.Issue)}
		jn.Branches = make(map[string]tree.NodeID)
		for v, id := range n.Branches {
			jn.Branches[v.String()] = id
		}
	}
	if n.Prediction != nil {
		vc := n.Prediction.VoteCount()
		jn.Prediction = &prediction{labels.Token(n.Prediction.PredictedValue()), vc.A, vc.B, vc.Total}
	}
	return jn
}
