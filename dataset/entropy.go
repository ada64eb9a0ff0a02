package dataset

import (
	"fmt"
	"math"

	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
VoteCount holds the number of records labeled with each party in a
collection of records, and the total number of records in it. Records
labeled with neither party count only towards Total, so A + B <= Total.
*/
type VoteCount struct {
	A     int
	B     int
	Total int
}

/*
CountVotes takes a slice of records and returns their VoteCount. An empty
slice yields the zero VoteCount.
*/
func CountVotes(records []Record) VoteCount {
	var vc VoteCount
	for _, r := range records {
		vc.add(r.party)
	}
	return vc
}

func (vc *VoteCount) add(p feature.Party) {
	switch p {
	case feature.PartyA:
		vc.A++
	case feature.PartyB:
		vc.B++
	}
	vc.Total++
}

/*
Majority returns the party with strictly more records. Ties, including the
empty count, go to feature.PartyB.
*/
func (vc VoteCount) Majority() feature.Party {
	if vc.A > vc.B {
		return feature.PartyA
	}
	return feature.PartyB
}

/*
Entropy returns the Shannon entropy in bits of the party distribution of the
count, a value in [0, 1]. It is 0 for empty or single-party counts.
*/
func (vc VoteCount) Entropy() float64 {
	return ProbLog(vc.A, vc.Total) + ProbLog(vc.B, vc.Total)
}

func (vc VoteCount) String() string {
	return fmt.Sprintf("{A:%d B:%d total:%d}", vc.A, vc.B, vc.Total)
}

/*
ProbLog returns -p*log2(p) with p = count/total. It is 0 when total or count
are 0.
*/
func ProbLog(count, total int) float64 {
	if total == 0 || count == 0 {
		return 0
	}
	p := float64(count) / float64(total)
	return -p * math.Log2(p)
}

/*
GainTolerance is the margin within which two information gains are taken to
be equal. Gains computed for equal groups summed in a different order differ
by rounding only.
*/
const GainTolerance = 1e-12

/*
InformationGain takes the VoteCount of a parent collection and those of the
groups it was partitioned into and returns the entropy of the parent minus
the entropy of each group weighted by its share of the parent. The gain of an
empty parent is 0, and so is any gain within GainTolerance of 0.
*/
func InformationGain(parent VoteCount, groups ...VoteCount) float64 {
	if parent.Total == 0 {
		return 0
	}
	gain := parent.Entropy()
	total := float64(parent.Total)
	for _, g := range groups {
		gain -= float64(g.Total) / total * g.Entropy()
	}
	if math.Abs(gain) < GainTolerance {
		return 0
	}
	return gain
}
