package queue

import (
	"context"
	"fmt"
)

// Queue represents a queue where tasks to develop
// tree nodes can be pushed and pulled in first-in
// first-out order.
//
// All its methods have a context.Context as first
// parameter that implementations may use to allow
// timeouts and cancellations on the Queue operations.
type Queue interface {
	// Push takes a task and stores it in the queue or
	// returns an error.
	Push(context.Context, *Task) error
	// Pull returns the oldest task in the queue and
	// removes it, or an error. If there are no tasks
	// to pull, implementations should not return an
	// error, but 2 nil values.
	Pull(context.Context) (*Task, error)
	// Count returns the number of pending tasks in the
	// queue or an error
	Count(context.Context) (int, error)
}

type memQueue struct {
	pendingTasks []*Task
	head         int
	tail         int
	pending      int
}

// New returns a queue backed only by the process memory.
// It is not safe for concurrent use.
func New() Queue {
	return &memQueue{}
}

func (mq *memQueue) Push(ctx context.Context, t *Task) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mq.push(t)
	return nil
}

func (mq *memQueue) Pull(ctx context.Context) (*Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if mq.pending == 0 {
		return nil, nil
	}
	mq.pending--
	task := mq.pendingTasks[mq.head]
	mq.pendingTasks[mq.head] = nil
	mq.head = (mq.head + 1) % len(mq.pendingTasks)
	return task, nil
}

func (mq *memQueue) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return mq.pending, nil
}

func (mq *memQueue) String() string {
	return fmt.Sprintf("{Queue pending: %d (%v head:%d tail:%d)}", mq.pending, mq.pendingTasks, mq.head, mq.tail)
}

func (mq *memQueue) push(t *Task) {
	if mq.pending == len(mq.pendingTasks) {
		mq.reorder()
		mq.pendingTasks = append(mq.pendingTasks, t)
		mq.tail = len(mq.pendingTasks) % cap(mq.pendingTasks)
		mq.pendingTasks = mq.pendingTasks[:cap(mq.pendingTasks)]
	} else {
		mq.pendingTasks[mq.tail] = t
		mq.tail = (mq.tail + 1) % len(mq.pendingTasks)
	}
	mq.pending++
}

func (mq *memQueue) reorder() {
	if mq.head == 0 {
		return
	}
	mq.pendingTasks = append(mq.pendingTasks[mq.head:], mq.pendingTasks[0:mq.head]...)
	mq.head = 0
}
