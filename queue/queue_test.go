package queue

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scarbrob/Voting-Predictor/tree"
)

func task(id int) *Task {
	return &Task{Node: &tree.Node{ID: tree.NodeID(id)}}
}

func TestQueueIsFIFO(t *testing.T) {
	ctx := context.Background()
	q := New()
	next := 1
	expected := 1
	// interleave pushes and pulls so the ring wraps and grows
	for round := 0; round < 10; round++ {
		for i := 0; i < round+2; i++ {
			require.NoError(t, q.Push(ctx, task(next)))
			next++
		}
		for i := 0; i < round+1; i++ {
			tk, err := q.Pull(ctx)
			require.NoError(t, err)
			require.NotNil(t, tk)
			assert.Equal(t, tree.NodeID(expected), tk.ID())
			expected++
		}
	}
	count, err := q.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, next-expected, count)
	for expected < next {
		tk, err := q.Pull(ctx)
		require.NoError(t, err)
		assert.Equal(t, tree.NodeID(expected), tk.ID())
		expected++
	}
	tk, err := q.Pull(ctx)
	require.NoError(t, err)
	assert.Nil(t, tk)
}

func TestQueueHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	q := New()
	assert.Error(t, q.Push(ctx, task(1)))
	_, err := q.Pull(ctx)
	assert.Error(t, err)
}
