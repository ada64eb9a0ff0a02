package dataset

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/scarbrob/Voting-Predictor/feature"
)

const (
	recordCountThresholdForDatasetImplementation = 1000
)

/*
ErrRaggedRecords is returned when building a dataset from records that do
not all hold votes for the same number of issues.
*/
var ErrRaggedRecords = errors.New("records with different number of issues")

/*
Dataset represents an ordered collection of records.

Its Issues method returns the number of issues every record holds votes for.

Its VoteCount method returns how many of its records are labeled with each
party, and its Entropy method the entropy of that distribution.

Its SubsetWith method takes a feature.Criterion and returns a subset that only
contains records that satisfy it, in the same order.

Its Records method returns the records it contains, and its Criteria method
the criteria applied to the root dataset to obtain it.
*/
type Dataset interface {
	Issues(context.Context) (int, error)
	VoteCount(context.Context) (VoteCount, error)
	Entropy(context.Context) (float64, error)
	SubsetWith(context.Context, feature.Criterion) (Dataset, error)
	Records(context.Context) ([]Record, error)
	Count(context.Context) (int, error)
	Criteria(context.Context) ([]feature.Criterion, error)
}

type memoryIntensiveSubsettingDataset struct {
	issues    int
	voteCount *VoteCount
	records   []Record
	criteria  []feature.Criterion
}

type cpuIntensiveSubsettingDataset struct {
	issues    int
	voteCount *VoteCount
	records   []Record
	criteria  []feature.Criterion
}

/*
New takes a slice of records and returns a dataset built with them, or an
error wrapping ErrRaggedRecords if they do not all have the same number of
issues. The dataset will be a CPU intensive one when the number of records is
over recordCountThresholdForDatasetImplementation.
*/
func New(records []Record) (Dataset, error) {
	issues, err := uniformIssues(records)
	if err != nil {
		return nil, err
	}
	return NewWithIssues(issues, records)
}

/*
NewWithIssues works like New but takes the number of issues of the dataset
too, so that empty datasets keep their width. Every record must hold votes
for exactly that number of issues.
*/
func NewWithIssues(issues int, records []Record) (Dataset, error) {
	for i, r := range records {
		if r.Len() != issues {
			return nil, errors.Wrapf(ErrRaggedRecords, "record #%d (%s) has %d issues, expected %d", i+1, r.ID(), r.Len(), issues)
		}
	}
	if len(records) > recordCountThresholdForDatasetImplementation {
		return &cpuIntensiveSubsettingDataset{issues: issues, records: records}, nil
	}
	return &memoryIntensiveSubsettingDataset{issues: issues, records: records}, nil
}

/*
NewMemoryIntensive takes a slice of records and returns a Dataset
built with them. A memory-intensive dataset is an implementation that
replicates the slice of records when subsetting to reduce
calculations at the cost of increased memory.
*/
func NewMemoryIntensive(records []Record) (Dataset, error) {
	issues, err := uniformIssues(records)
	if err != nil {
		return nil, err
	}
	return &memoryIntensiveSubsettingDataset{issues: issues, records: records}, nil
}

/*
NewCPUIntensive takes a slice of records and returns a Dataset
built with them. A cpu-intensive dataset is an implementation that
instead of replicating the records when subsetting, stores the
applying criteria to define the subset and keeps the same
record slice. Every calculation that goes over the records of the
dataset will apply the criteria of the dataset on all original records.
*/
func NewCPUIntensive(records []Record) (Dataset, error) {
	issues, err := uniformIssues(records)
	if err != nil {
		return nil, err
	}
	return &cpuIntensiveSubsettingDataset{issues: issues, records: records}, nil
}

func uniformIssues(records []Record) (int, error) {
	if len(records) == 0 {
		return 0, nil
	}
	issues := records[0].Len()
	for i, r := range records[1:] {
		if r.Len() != issues {
			return 0, errors.Wrapf(ErrRaggedRecords, "record #%d (%s) has %d issues, record #1 (%s) has %d", i+2, r.ID(), r.Len(), records[0].ID(), issues)
		}
	}
	return issues, nil
}

func (s *memoryIntensiveSubsettingDataset) Issues(context.Context) (int, error) {
	return s.issues, nil
}

func (s *cpuIntensiveSubsettingDataset) Issues(context.Context) (int, error) {
	return s.issues, nil
}

func (s *memoryIntensiveSubsettingDataset) Count(ctx context.Context) (int, error) {
	return len(s.records), nil
}

func (s *cpuIntensiveSubsettingDataset) Count(ctx context.Context) (int, error) {
	vc, err := s.VoteCount(ctx)
	if err != nil {
		return 0, err
	}
	return vc.Total, nil
}

func (s *memoryIntensiveSubsettingDataset) VoteCount(ctx context.Context) (VoteCount, error) {
	if s.voteCount != nil {
		return *s.voteCount, nil
	}
	vc := CountVotes(s.records)
	s.voteCount = &vc
	return vc, nil
}

func (s *cpuIntensiveSubsettingDataset) VoteCount(ctx context.Context) (VoteCount, error) {
	if s.voteCount != nil {
		return *s.voteCount, nil
	}
	var vc VoteCount
	err := s.iterateOnDataset(ctx, func(r Record) (bool, error) {
		vc.add(r.party)
		return true, nil
	})
	if err != nil {
		return VoteCount{}, err
	}
	s.voteCount = &vc
	return vc, nil
}

func (s *memoryIntensiveSubsettingDataset) Entropy(ctx context.Context) (float64, error) {
	vc, err := s.VoteCount(ctx)
	if err != nil {
		return 0, err
	}
	return vc.Entropy(), nil
}

func (s *cpuIntensiveSubsettingDataset) Entropy(ctx context.Context) (float64, error) {
	vc, err := s.VoteCount(ctx)
	if err != nil {
		return 0, err
	}
	return vc.Entropy(), nil
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(ctx context.Context, c feature.Criterion) (Dataset, error) {
	if c.Issue() < 0 || c.Issue() >= s.issues {
		return nil, errors.Wrapf(ErrIssueOutOfRange, "subsetting on issue %d with %d issues", c.Issue()+1, s.issues)
	}
	var records []Record
	for _, r := range s.records {
		ok, err := c.SatisfiedBy(ctx, r)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, r)
		}
	}
	return &memoryIntensiveSubsettingDataset{
		issues:   s.issues,
		records:  records,
		criteria: append(append([]feature.Criterion{}, s.criteria...), c),
	}, nil
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(ctx context.Context, c feature.Criterion) (Dataset, error) {
	if c.Issue() < 0 || c.Issue() >= s.issues {
		return nil, errors.Wrapf(ErrIssueOutOfRange, "subsetting on issue %d with %d issues", c.Issue()+1, s.issues)
	}
	return &cpuIntensiveSubsettingDataset{
		issues:   s.issues,
		records:  s.records,
		criteria: append(append([]feature.Criterion{}, s.criteria...), c),
	}, nil
}

func (s *memoryIntensiveSubsettingDataset) Records(ctx context.Context) ([]Record, error) {
	return append([]Record{}, s.records...), nil
}

func (s *cpuIntensiveSubsettingDataset) Records(ctx context.Context) ([]Record, error) {
	var records []Record
	err := s.iterateOnDataset(ctx, func(r Record) (bool, error) {
		records = append(records, r)
		return true, nil
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

func (s *memoryIntensiveSubsettingDataset) Criteria(ctx context.Context) ([]feature.Criterion, error) {
	return s.criteria, nil
}

func (s *cpuIntensiveSubsettingDataset) Criteria(ctx context.Context) ([]feature.Criterion, error) {
	return s.criteria, nil
}

func (s *memoryIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("[ %v ]", len(s.records))
}

func (s *cpuIntensiveSubsettingDataset) String() string {
	count, _ := s.Count(context.TODO())
	return fmt.Sprintf("[ %v ]", count)
}

func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(ctx context.Context, lambda func(Record) (bool, error)) error {
	for _, r := range s.records {
		skip := false
		for _, criterion := range s.criteria {
			ok, err := criterion.SatisfiedBy(ctx, r)
			if err != nil {
				return err
			}
			if !ok {
				skip = true
				break
			}
		}
		if !skip {
			ok, err := lambda(r)
			if err != nil {
				return err
			}
			if !ok {
				break
			}
		}
	}
	return nil
}
