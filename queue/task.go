package queue

import (
	"fmt"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/tree"
)

// Task represents a tree.Node to be developed
// on a tree.Tree.
type Task struct {
	// The node to be developed
	Node *tree.Node
	// The dataset of training data with records
	// satisfying the constraints on the node
	// and its ancestors.
	Dataset dataset.Dataset
	// The indexes of the issues that can be used
	// to split the node into branches, in ascending
	// order.
	AvailableIssues []int
}

// ID returns the ID of the task's Node.
func (t *Task) ID() tree.NodeID {
	return t.Node.ID
}

func (t *Task) String() string {
	return fmt.Sprintf("{Task %d}", t.Node.ID)
}
