/*
Package inputrecord provides an implementation of feature.Voter whose votes
are read from an io.Reader as they are needed.
*/
package inputrecord

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
VoteRequester represents a way to ask for the vote on an issue and to reject
the given answers.
*/
type VoteRequester interface {
	RequestVoteOn(issue int) error
	RejectVoteOn(issue int, answer string) error
}

type readRecord struct {
	issues    int
	obtained  map[int]feature.Vote
	scanner   *bufio.Scanner
	requester VoteRequester
}

/*
New takes an io.Reader, the number of issues and a VoteRequester and returns
a feature.Voter.

The returned Voter's VoteOn method reads votes first requesting them with
the given VoteRequester and then parsing them from the reader, one per line.
Lines are read until one holding a single recognized vote is found; the
others are rejected with the VoteRequester's RejectVoteOn method. Votes are
asked once: later calls for the same issue return the vote already read.
*/
func New(r io.Reader, issues int, requester VoteRequester) feature.Voter {
	return &readRecord{
		issues:    issues,
		obtained:  make(map[int]feature.Vote),
		scanner:   bufio.NewScanner(r),
		requester: requester,
	}
}

func (rr *readRecord) VoteOn(_ context.Context, issue int) (feature.Vote, error) {
	if v, ok := rr.obtained[issue]; ok {
		return v, nil
	}
	if issue < 0 || issue >= rr.issues {
		return 0, errors.Errorf("issue %d out of range with %d issues", issue+1, rr.issues)
	}
	err := rr.requester.RequestVoteOn(issue)
	if err != nil {
		return 0, err
	}
	for rr.scanner.Scan() {
		line := strings.TrimSpace(rr.scanner.Text())
		if len(line) == 1 && feature.Vote(line[0]).Valid() {
			v := feature.Vote(line[0])
			rr.obtained[issue] = v
			return v, nil
		}
		err = rr.requester.RejectVoteOn(issue, line)
		if err != nil {
			return 0, err
		}
	}
	if err = rr.scanner.Err(); err != nil {
		return 0, errors.Wrap(err, "reading vote")
	}
	return 0, errors.Errorf("EOF when requesting vote on issue %d", issue+1)
}

type prompter struct {
	w     io.Writer
	names func(int) string
}

/*
NewPrompter returns a VoteRequester that writes prompts and rejections to
the given writer, naming issues with the given function.
*/
func NewPrompter(w io.Writer, names func(int) string) VoteRequester {
	return &prompter{w, names}
}

func (p *prompter) RequestVoteOn(issue int) error {
	_, err := fmt.Fprintf(p.w, "Vote on %s (%s aye, %s nay, %s abstain): ", p.names(issue), feature.Aye, feature.Nay, feature.Abstain)
	return err
}

func (p *prompter) RejectVoteOn(issue int, answer string) error {
	_, err := fmt.Fprintf(p.w, "%q is not a vote. Vote on %s (%s aye, %s nay, %s abstain): ", answer, p.names(issue), feature.Aye, feature.Nay, feature.Abstain)
	return err
}
