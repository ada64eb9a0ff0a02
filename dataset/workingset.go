package dataset

import (
	"context"

	"github.com/pkg/errors"
)

// DefaultStride is the stride used to pick the working set of a dataset.
const DefaultStride = 4

/*
WorkingSet takes a dataset and a stride and returns two datasets: picked,
with the records at positions 0, stride, 2*stride... in order, and rest, with
every other record in order. A stride lower than 1 is an error.
*/
func WorkingSet(ctx context.Context, ds Dataset, stride int) (picked, rest Dataset, err error) {
	if stride < 1 {
		return nil, nil, errors.Errorf("invalid stride %d: it must be at least 1", stride)
	}
	issues, err := ds.Issues(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "retrieving issue count for working set")
	}
	records, err := ds.Records(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, "retrieving records for working set")
	}
	var p, r []Record
	for i, record := range records {
		if i%stride == 0 {
			p = append(p, record)
		} else {
			r = append(r, record)
		}
	}
	if picked, err = NewWithIssues(issues, p); err != nil {
		return nil, nil, err
	}
	if rest, err = NewWithIssues(issues, r); err != nil {
		return nil, nil, err
	}
	return picked, rest, nil
}
