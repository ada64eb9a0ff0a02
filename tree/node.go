package tree

import (
	"fmt"

	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
NodeID identifies a node in a NodeStore. Valid IDs are positive; the zero
NodeID means no node.
*/
type NodeID int

/*
Node is a node of the tree
*/
type Node struct {
	// An ID to identify the node
	ID NodeID
	// The ID for the parent of the node in the tree, 0 for the root
	ParentID NodeID
	// The index of the issue the node splits on, -1 on leaves
	Issue int
	// The IDs of the nodes directly under this node by the vote cast
	// on Issue. Only split nodes have branches and a split node may
	// lack the branch for a vote.
	Branches map[feature.Vote]NodeID
	// Whether the node is a leaf
	Leaf bool
	// The prediction for records that satisfied node constraints from
	// the root of the tree up to this node. Split nodes keep theirs as a
	// fallback for records whose vote has no branch.
	Prediction *Prediction
	// The constraint that applied to the parent node's dataset produces
	// this node's dataset, nil for the root.
	Criterion feature.VoteCriterion
}

/*
NewNode takes the ID of a parent node and the criterion leading to the new
node from it and returns a node that is neither a leaf nor split yet.
*/
func NewNode(parentID NodeID, c feature.VoteCriterion) *Node {
	return &Node{ParentID: parentID, Issue: -1, Criterion: c}
}

// IsLeaf returns whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.Leaf
}

/*
SetLeaf marks the node as a leaf or not. Marking a node as leaf drops its
split issue and branches. It is meant to be used while building trees.
*/
func (n *Node) SetLeaf(leaf bool) {
	n.Leaf = leaf
	if leaf {
		n.Issue = -1
		n.Branches = nil
	}
}

/*
Split makes the node split on the given issue, with no branches yet.
*/
func (n *Node) Split(issue int) {
	n.Leaf = false
	n.Issue = issue
	n.Branches = make(map[feature.Vote]NodeID)
}

/*
Children returns the IDs of the nodes directly under the node in the order of
feature.Votes, skipping absent branches.
*/
func (n *Node) Children() []NodeID {
	var ids []NodeID
	for _, v := range feature.Votes {
		if id, ok := n.Branches[v]; ok {
			ids = append(ids, id)
		}
	}
	return ids
}

func (n *Node) String() string {
	if n.Leaf {
		return fmt.Sprintf("{Node %d leaf %v}", n.ID, n.Prediction)
	}
	return fmt.Sprintf("{Node %d on issue %d}", n.ID, n.Issue+1)
}
