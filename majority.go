package predictor

import (
	"context"
	"fmt"
	"strings"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
Baseline is the three-way prediction table of an issue: for each recognized
vote, the party with strictly more records casting that vote on the issue,
PartyB on ties.
*/
type Baseline struct {
	Issue       int
	Predictions [len(feature.Votes)]feature.Party
	Counts      [len(feature.Votes)]dataset.VoteCount
}

/*
Majority takes a context.Context, a dataset and the index of an issue and
returns the Baseline of the issue on the dataset, or an error wrapping
ErrIssueOutOfRange if the issue is not one of the dataset's. It does not
alter the dataset and does not depend on whether the issue would be chosen
to split it.
*/
func Majority(ctx context.Context, s dataset.Dataset, issue int) (*Baseline, error) {
	p, err := NewPartition(ctx, s, issue)
	if err != nil {
		return nil, err
	}
	b := &Baseline{Issue: issue, Counts: p.Counts}
	for i, vc := range p.Counts {
		b.Predictions[i] = vc.Majority()
	}
	return b, nil
}

/*
For returns the party predicted for records casting the given vote, and
false if the vote is not recognized.
*/
func (b *Baseline) For(v feature.Vote) (feature.Party, bool) {
	i := v.Index()
	if i < 0 {
		return feature.NoParty, false
	}
	return b.Predictions[i], true
}

/*
Format renders the baseline as "+ D, - R, . R" using the given labels.
*/
func (b *Baseline) Format(labels feature.Labels) string {
	parts := make([]string, len(feature.Votes))
	for i, v := range feature.Votes {
		parts[i] = fmt.Sprintf("%s %s", v, labels.Token(b.Predictions[i]))
	}
	return strings.Join(parts, ", ")
}

func (b *Baseline) String() string {
	parts := make([]string, len(feature.Votes))
	for i, v := range feature.Votes {
		parts[i] = fmt.Sprintf("%s %s", v, b.Predictions[i])
	}
	return strings.Join(parts, ", ")
}
