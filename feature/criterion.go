package feature

import (
	"context"
	"fmt"
)

/*
Criterion represents a constraint on the votes of a record

Its SatisfiedBy method takes a voter and returns a boolean indicating if
the voter satisfies the criterion.

Its Issue method returns the index of the issue on which the criterion is
applied.
*/
type Criterion interface {
	Issue() int
	SatisfiedBy(ctx context.Context, voter Voter) (bool, error)
}

/*
Voter is an interface for something that can satisfy a Criterion.

Its VoteOn method returns the vote cast on the issue with the index passed
as parameter.
*/
type Voter interface {
	VoteOn(ctx context.Context, issue int) (Vote, error)
}

/*
VoteCriterion represents the constraint of having cast a specific vote on
an issue.

Its Vote method returns the vote to which the issue is constrained.
*/
type VoteCriterion interface {
	Criterion
	Vote() Vote
}

type voteCriterion struct {
	issue int
	vote  Vote
}

/*
NewVoteCriterion takes an issue index and a vote and returns a
VoteCriterion satisfied by voters that cast that vote on that issue.
*/
func NewVoteCriterion(issue int, vote Vote) VoteCriterion {
	return &voteCriterion{issue, vote}
}

/*
Issue returns the index of the issue to which the constraint applies.
*/
func (vc *voteCriterion) Issue() int {
	return vc.issue
}

/*
SatisfiedBy receives a voter as parameter and returns a boolean indicating if
the vote it cast on the criterion's issue equals the criterion's vote.
*/
func (vc *voteCriterion) SatisfiedBy(ctx context.Context, voter Voter) (bool, error) {
	v, err := voter.VoteOn(ctx, vc.issue)
	if err != nil {
		return false, err
	}
	return v == vc.vote, nil
}

func (vc *voteCriterion) Vote() Vote {
	return vc.vote
}

func (vc *voteCriterion) String() string {
	return fmt.Sprintf("issue %d is %s", vc.issue+1, vc.vote)
}
