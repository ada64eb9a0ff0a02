package predictor

import (
	"context"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
ErrIssueOutOfRange is returned when an operation is asked to work on an
issue index that is negative or not below the number of issues of the
dataset.
*/
var ErrIssueOutOfRange = dataset.ErrIssueOutOfRange

/*
Partition represents a partition of a dataset according to the vote cast on
an issue into three subsets, one per recognized vote in the order of
feature.Votes, together with the information gain it yields. Records with an
unrecognized vote on the issue are in none of the subsets.
*/
type Partition struct {
	Issue           int
	Subsets         [len(feature.Votes)]dataset.Dataset
	Counts          [len(feature.Votes)]dataset.VoteCount
	Parent          dataset.VoteCount
	InformationGain float64
}

/*
NewPartition takes a context.Context, a dataset and the index of an issue
and returns the partition of the dataset on that issue, or an error wrapping
ErrIssueOutOfRange if the issue is not one of the dataset's.
*/
func NewPartition(ctx context.Context, s dataset.Dataset, issue int) (*Partition, error) {
	if err := checkIssue(ctx, s, issue); err != nil {
		return nil, err
	}
	parent, err := s.VoteCount(ctx)
	if err != nil {
		return nil, err
	}
	p := &Partition{Issue: issue, Parent: parent}
	for i, v := range feature.Votes {
		p.Subsets[i], err = s.SubsetWith(ctx, feature.NewVoteCriterion(issue, v))
		if err != nil {
			return nil, err
		}
		p.Counts[i], err = p.Subsets[i].VoteCount(ctx)
		if err != nil {
			return nil, err
		}
	}
	p.InformationGain = dataset.InformationGain(parent, p.Counts[:]...)
	return p, nil
}

/*
Subset returns the subset of records that cast the given vote on the
partition's issue, or nil for an unrecognized vote.
*/
func (p *Partition) Subset(v feature.Vote) dataset.Dataset {
	i := v.Index()
	if i < 0 {
		return nil
	}
	return p.Subsets[i]
}

func checkIssue(ctx context.Context, s dataset.Dataset, issue int) error {
	issues, err := s.Issues(ctx)
	if err != nil {
		return err
	}
	if issue < 0 || issue >= issues {
		return errors.Wrapf(ErrIssueOutOfRange, "issue %d with %d issues", issue+1, issues)
	}
	return nil
}
