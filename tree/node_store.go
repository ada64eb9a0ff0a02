package tree

//go:generate mockgen -destination=../mocks/mock_node_store.go -package=mocks . NodeStore

import (
	"context"
	"fmt"
)

/*
NodeStore is an interface to manage a store
where nodes can be created, retrieved and updated.

All it methods take a context that may allow
cancelling the operation (thus forcing the return
of an error) if the implementation allows it.
*/
type NodeStore interface {
	// Create takes a node and stores it for the
	// first time in the store, creating an ID for
	// it and setting it for the node. It returns
	// an error if the node cannot be stored.
	Create(ctx context.Context, n *Node) error
	// Get takes an id and returns the node in the
	// store with that id (or nil if it cannot be
	// found) or an error if the store cannot be
	// queried
	Get(ctx context.Context, id NodeID) (*Node, error)
	// Store takes a node already existing in the store
	// and updates it on the store. It expect the node
	// to have an ID which it will not alter. It returns
	// an error if the update cannot be performed.
	Store(ctx context.Context, n *Node) error
}

type memoryNodeStore struct {
	nodes []*Node
}

// NewMemoryNodeStore returns an implementation
// of NodeStore with the process memory space
// as underlying backend. Node IDs are assigned
// in creation order starting at 1. It is not
// safe for concurrent use.
func NewMemoryNodeStore() NodeStore {
	return &memoryNodeStore{}
}

func (mns *memoryNodeStore) Create(ctx context.Context, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mns.nodes = append(mns.nodes, n)
	n.ID = NodeID(len(mns.nodes))
	return nil
}

func (mns *memoryNodeStore) Store(ctx context.Context, n *Node) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.ID < 1 || int(n.ID) > len(mns.nodes) {
		return &UnknownNodeError{n.ID}
	}
	mns.nodes[n.ID-1] = n
	return nil
}

func (mns *memoryNodeStore) Get(ctx context.Context, id NodeID) (*Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if id < 1 || int(id) > len(mns.nodes) {
		return nil, nil
	}
	return mns.nodes[id-1], nil
}

/*
UnknownNodeError is returned when updating a node that was never created
on the store.
*/
type UnknownNodeError struct {
	ID NodeID
}

func (e *UnknownNodeError) Error() string {
	return fmt.Sprintf("unknown node %d", e.ID)
}
