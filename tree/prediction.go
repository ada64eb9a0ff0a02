package tree

import (
	"context"
	"fmt"

	"github.com/scarbrob/Voting-Predictor/dataset"
	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
Prediction represents a prediction made by a decision Tree: the party
predicted and the count of the training records it was made from.
*/
type Prediction struct {
	party feature.Party
	count dataset.VoteCount
}

/*
NewPrediction takes a party and the VoteCount of the records it was derived
from and returns a prediction with them.
*/
func NewPrediction(p feature.Party, vc dataset.VoteCount) *Prediction {
	return &Prediction{party: p, count: vc}
}

/*
NewPredictionFromSet takes a context and a dataset and returns a prediction
of the majority party of its records, feature.PartyB on ties and for empty
datasets, or an error if the dataset cannot be queried.
*/
func NewPredictionFromSet(ctx context.Context, s dataset.Dataset) (*Prediction, error) {
	vc, err := s.VoteCount(ctx)
	if err != nil {
		return nil, err
	}
	return &Prediction{party: vc.Majority(), count: vc}, nil
}

// PredictedValue returns the predicted party.
func (p *Prediction) PredictedValue() feature.Party {
	return p.party
}

/*
Weight returns the weight of the prediction: the number of records in the
dataset from which the prediction was made
*/
func (p *Prediction) Weight() int {
	return p.count.Total
}

// VoteCount returns the count of records the prediction was made from.
func (p *Prediction) VoteCount() dataset.VoteCount {
	return p.count
}

func (p *Prediction) String() string {
	return fmt.Sprintf("%v %v", p.party, p.count)
}
