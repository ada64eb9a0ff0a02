/*
Package predictor grows decision trees that predict the party of a voter
from the votes cast on a set of issues, choosing at each node the issue
whose split yields the most information gain.
*/
package predictor

import (
	"context"
	"io/ioutil"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
	"github.com/scarbrob/Voting-Predictor/queue"
	"github.com/scarbrob/Voting-Predictor/tree"
)

type options struct {
	strategy Strategy
	logger   log.FieldLogger
	store    tree.NodeStore
	issues   []int
}

// Option configures how Grow grows a tree.
type Option func(*options)

// WithStrategy sets the strategy used to grow the tree. It defaults to ID3.
func WithStrategy(s Strategy) Option {
	return func(o *options) {
		o.strategy = s
	}
}

// WithLogger sets the logger node development is logged to at debug level.
func WithLogger(l log.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithNodeStore sets the store nodes are kept in. It defaults to a memory
// store.
func WithNodeStore(ns tree.NodeStore) Option {
	return func(o *options) {
		o.store = ns
	}
}

// WithIssues restricts the issues the tree may split on to the given
// indexes. By default every issue of the dataset is available.
func WithIssues(issues []int) Option {
	return func(o *options) {
		o.issues = append([]int{}, issues...)
	}
}

func discardLogger() log.FieldLogger {
	l := log.New()
	l.Out = ioutil.Discard
	return l
}

/*
Grow takes a context, a dataset and options and grows a tree that predicts
the party of the records in the dataset. It seeds a root node, then develops
nodes in first-in first-out order until none is left. It returns an error
wrapping ErrIssueOutOfRange, and no tree, if an issue given with WithIssues
is not one of the dataset's.
*/
func Grow(ctx context.Context, s dataset.Dataset, opts ...Option) (*tree.Tree, error) {
	o := &options{strategy: ID3}
	for _, opt := range opts {
		opt(o)
	}
	if o.logger == nil {
		o.logger = discardLogger()
	}
	if o.store == nil {
		o.store = tree.NewMemoryNodeStore()
	}
	issues, err := s.Issues(ctx)
	if err != nil {
		return nil, err
	}
	if o.issues == nil {
		o.issues = make([]int, issues)
		for i := range o.issues {
			o.issues[i] = i
		}
	}
	for _, i := range o.issues {
		if err = checkIssue(ctx, s, i); err != nil {
			return nil, err
		}
	}
	q := queue.New()
	t, err := Seed(ctx, s, o.issues, q, o.store)
	if err != nil {
		return nil, err
	}
	err = Work(ctx, t, q, o.strategy, o.logger)
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Seed takes a context, a dataset, the issues available to split on, a
// queue and a node store and sets everything up so that a worker that
// consumes from the queue afterwards grows a tree that predicts the party
// of records according to the training data on the given dataset.
// Specifically it will create the root node of the tree on the
// node store and push a task to branch it out on the queue.
// The function returns the tree that can be grown or an error
// if the node cannot be created on the store, or the task pushed
// to the queue.
func Seed(ctx context.Context, s dataset.Dataset, issues []int, q queue.Queue, ns tree.NodeStore) (*tree.Tree, error) {
	n := tree.NewNode(0, nil)
	err := ns.Create(ctx, n)
	if err != nil {
		return nil, errors.Wrap(err, "creating root node")
	}
	task := &queue.Task{Node: n, Dataset: s, AvailableIssues: issues}
	err = q.Push(ctx, task)
	if err != nil {
		return nil, err
	}
	return tree.New(n.ID, ns), nil
}

// BranchOut takes a context, a task, a tree and a strategy, develops the
// node in the task using the task's dataset and available issues and
// returns a set of tasks to develop the resulting children nodes or an
// error.
//
// The node gets the majority party of the task's dataset as prediction. It
// becomes a leaf when the dataset is empty, no issue is available or no
// available issue yields a strictly positive information gain. Otherwise it
// splits on the issue with the greatest gain, the first one in the order of
// the available issues on ties. Gains closer than dataset.GainTolerance tie.
func BranchOut(ctx context.Context, task *queue.Task, t *tree.Tree, strategy Strategy, logger log.FieldLogger) (tasks []*queue.Task, e error) {
	n := task.Node
	prediction, err := tree.NewPredictionFromSet(ctx, task.Dataset)
	if err != nil {
		return nil, err
	}
	n.Prediction = prediction
	defer func() {
		err := t.NodeStore.Store(ctx, n)
		if e == nil && err != nil {
			tasks = nil
			e = errors.Wrapf(err, "storing node %d", n.ID)
		}
	}()
	entry := logger.WithFields(log.Fields{"node": n.ID, "records": prediction.Weight()})
	if prediction.Weight() == 0 || len(task.AvailableIssues) == 0 {
		n.SetLeaf(true)
		entry.Debugf("leaf predicting %v", prediction.PredictedValue())
		return nil, nil
	}
	var best *Partition
	for _, issue := range task.AvailableIssues {
		p, err := NewPartition(ctx, task.Dataset, issue)
		if err != nil {
			return nil, err
		}
		if best == nil || p.InformationGain > best.InformationGain+dataset.GainTolerance {
			best = p
		}
	}
	if best.InformationGain <= 0 {
		n.SetLeaf(true)
		entry.Debugf("leaf predicting %v", prediction.PredictedValue())
		return nil, nil
	}
	baseline, err := Majority(ctx, task.Dataset, best.Issue)
	if err != nil {
		return nil, err
	}
	n.Split(best.Issue)
	entry.WithField("gain", best.InformationGain).Debugf("split on issue %d", best.Issue+1)
	childIssues := strategy.childIssues(task.AvailableIssues, best.Issue)
	for _, v := range strategy.branches() {
		i := v.Index()
		child := tree.NewNode(n.ID, feature.NewVoteCriterion(best.Issue, v))
		child.Prediction = tree.NewPrediction(baseline.Predictions[i], baseline.Counts[i])
		err = t.NodeStore.Create(ctx, child)
		if err != nil {
			return nil, errors.Wrap(err, "creating child node")
		}
		n.Branches[v] = child.ID
		tasks = append(tasks, &queue.Task{Node: child, Dataset: best.Subsets[i], AvailableIssues: childIssues})
	}
	return tasks, nil
}

// Work takes a context, a tree, a queue, a strategy and a logger and
// enters a loop in which it:
//   - pulls a task from the queue,
//   - branches its node out into new subnodes using BranchOut
//   - pushes the tasks for the new subnodes into the queue
//
// When no task can be pulled from the queue the worker ends returning nil.
//
// Work will return a non-nil error if the given context
// times out or is cancelled, if BranchOut returns a non-nil
// error or if an operation with the given queue returns a
// non-nil error.
func Work(ctx context.Context, t *tree.Tree, q queue.Queue, strategy Strategy, logger log.FieldLogger) error {
	for {
		task, err := q.Pull(ctx)
		if err != nil {
			return err
		}
		if task == nil {
			return nil
		}
		tasks, err := BranchOut(ctx, task, t, strategy, logger)
		if err != nil {
			return err
		}
		for _, st := range tasks {
			err = q.Push(ctx, st)
			if err != nil {
				return err
			}
		}
	}
}
