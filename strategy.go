package predictor

import (
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
Strategy decides which issues remain available below a split node and which
of its branches are grown.
*/
type Strategy int

const (
	// ID3 removes the issue a node splits on from the issues available
	// to its descendants and grows one branch per recognized vote.
	ID3 Strategy = iota
	// Legacy keeps every issue available at every depth and only grows
	// the Aye branch of each split node. Records casting other votes on
	// the issue get the split node's own prediction.
	Legacy
)

func (s Strategy) String() string {
	switch s {
	case ID3:
		return "id3"
	case Legacy:
		return "legacy"
	}
	return "unknown"
}

func (s Strategy) branches() []feature.Vote {
	if s == Legacy {
		return feature.Votes[:1]
	}
	return feature.Votes[:]
}

func (s Strategy) childIssues(available []int, chosen int) []int {
	if s == Legacy {
		return available
	}
	result := make([]int, 0, len(available))
	for _, i := range available {
		if i != chosen {
			result = append(result, i)
		}
	}
	return result
}
