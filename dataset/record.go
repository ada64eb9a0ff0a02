package dataset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
ErrIssueOutOfRange is returned when asking for the vote on an issue index
that is negative or not below the number of issues of a record.
*/
var ErrIssueOutOfRange = errors.New("issue out of range")

/*
Record represents a labeled item from which to learn: the votes cast on each
issue and the party of the voter. Records are values and cannot be modified
once built.
*/
type Record struct {
	id    string
	party feature.Party
	votes []feature.Vote
}

/*
NewRecord takes an identifier, a party and the votes cast on each issue and
returns a record. The votes slice is copied.
*/
func NewRecord(id string, party feature.Party, votes []feature.Vote) Record {
	vs := make([]feature.Vote, len(votes))
	copy(vs, votes)
	return Record{id, party, vs}
}

// ID returns the identifier of the record as read from its source.
func (r Record) ID() string {
	return r.id
}

// Party returns the label of the record.
func (r Record) Party() feature.Party {
	return r.party
}

// Len returns the number of issues the record holds votes for.
func (r Record) Len() int {
	return len(r.votes)
}

// Votes returns a copy of the votes of the record.
func (r Record) Votes() []feature.Vote {
	vs := make([]feature.Vote, len(r.votes))
	copy(vs, r.votes)
	return vs
}

/*
VoteOn returns the vote cast on the issue with the given 0-based index, or an
error wrapping ErrIssueOutOfRange.
*/
func (r Record) VoteOn(_ context.Context, issue int) (feature.Vote, error) {
	if issue < 0 || issue >= len(r.votes) {
		return 0, errors.Wrapf(ErrIssueOutOfRange, "record %s: issue %d with %d issues", r.id, issue+1, len(r.votes))
	}
	return r.votes[issue], nil
}

func (r Record) String() string {
	return fmt.Sprintf("[%s %v %s]", r.id, r.party, feature.FormatVotes(r.votes))
}
