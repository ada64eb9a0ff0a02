package json

import (
	"bytes"
	"context"
	"encoding/json"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
	"github.com/scarbrob/Voting-Predictor/tree"
)

func TestWriteJSONTree(t *testing.T) {
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	root := tree.NewNode(0, nil)
	require.NoError(t, ns.Create(ctx, root))
	root.Split(0)
	root.Prediction = tree.NewPrediction(feature.PartyA, dataset.VoteCount{A: 2, B: 1, Total: 3})
	leaf := tree.NewNode(root.ID, feature.NewVoteCriterion(0, feature.Nay))
	leaf.SetLeaf(true)
	leaf.Prediction = tree.NewPrediction(feature.PartyB, dataset.VoteCount{B: 1, Total: 1})
	require.NoError(t, ns.Create(ctx, leaf))
	root.Branches[feature.Nay] = leaf.ID

	buf := &bytes.Buffer{}
	names := func(i int) string { return "issue-" + strconv.Itoa(i+1) }
	require.NoError(t, WriteJSONTree(ctx, tree.New(root.ID, ns), names, feature.DefaultLabels, buf))

	var doc struct {
		RootID int `json:"rootID"`
		Nodes  []struct {
			ID       int            `json:"id"`
			ParentID int            `json:"pId"`
			Leaf     bool           `json:"leaf"`
			Branches map[string]int `json:"branches"`
			Split    *struct {
				Index int    `json:"index"`
				Name  string `json:"name"`
			} `json:"split"`
			C *struct {
				Vote string `json:"vote"`
			} `json:"c"`
			Pred struct {
				Party string `json:"party"`
				Total int    `json:"total"`
			} `json:"pred"`
		} `json:"nodes"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, 1, doc.RootID)
	require.Len(t, doc.Nodes, 2)
	assert.Equal(t, "issue-1", doc.Nodes[0].Split.Name)
	assert.Equal(t, 1, doc.Nodes[0].Split.Index)
	assert.Equal(t, map[string]int{"-": 2}, doc.Nodes[0].Branches)
	assert.Equal(t, "D", doc.Nodes[0].Pred.Party)
	assert.True(t, doc.Nodes[1].Leaf)
	assert.Equal(t, 1, doc.Nodes[1].ParentID)
	assert.Equal(t, "-", doc.Nodes[1].C.Vote)
	assert.Equal(t, "R", doc.Nodes[1].Pred.Party)
}

func TestWriteJSONTreeNumbersUnnamedIssues(t *testing.T) {
	ctx := context.Background()
	ns := tree.NewMemoryNodeStore()
	root := tree.NewNode(0, nil)
	require.NoError(t, ns.Create(ctx, root))
	root.Split(2)
	root.Prediction = tree.NewPrediction(feature.PartyB, dataset.VoteCount{B: 1, Total: 1})
	require.NoError(t, ns.Store(ctx, root))

	buf := &bytes.Buffer{}
	require.NoError(t, WriteJSONTree(ctx, tree.New(root.ID, ns), nil, feature.DefaultLabels, buf))
	assert.Contains(t, buf.String(), `"name": "issue 3"`)
}
