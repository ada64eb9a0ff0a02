package sqldataset

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"

	"github.com/scarbrob/Voting-Predictor/feature"
)

/*
VoteCriterion is used to represent a feature.VoteCriterion on SQL
DB-backed datasets. It translates to a condition on the WHERE clause of a
SELECT statement on the records table.
*/
type VoteCriterion struct {
	// Position is the 1-based position of the issue's character in the
	// votes column.
	Position int
	// Value is the vote that character must hold.
	Value string
}

/*
NewVoteCriterion takes a feature.Criterion and returns the equivalent
VoteCriterion, or an error if the criterion is not a feature.VoteCriterion.
*/
func NewVoteCriterion(c feature.Criterion) (*VoteCriterion, error) {
	vc, ok := c.(feature.VoteCriterion)
	if !ok {
		return nil, errors.Errorf("cannot translate criterion of type %T into SQL", c)
	}
	return &VoteCriterion{Position: vc.Issue() + 1, Value: vc.Vote().String()}, nil
}

/*
PlaceholderFunc takes the 1-based index of a parameter in a statement and
returns the placeholder to use for it.
*/
type PlaceholderFunc func(int) string

/*
BuildWhereClause takes a slice of criteria, the placeholder function of a
database and the index of the first parameter and returns the WHERE clause
for them, with a leading space, and the values to bind to its placeholders.
An empty slice of criteria yields an empty clause.
*/
func BuildWhereClause(criteria []*VoteCriterion, placeholder PlaceholderFunc, first int) (string, []interface{}) {
	if len(criteria) == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	values := make([]interface{}, 0, 2*len(criteria))
	buf.WriteString(" WHERE ")
	for i, c := range criteria {
		if i > 0 {
			buf.WriteString(" AND ")
		}
		n := first + 2*i
		buf.WriteString(fmt.Sprintf("substr(votes, %s, 1) = %s", placeholder(n), placeholder(n+1)))
		values = append(values, c.Position, c.Value)
	}
	return buf.String(), values
}
