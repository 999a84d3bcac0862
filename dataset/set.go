package dataset

import (
	"fmt"

	"github.com/pbanos/arbor/feature"
)

const (
	rowCountThresholdForDatasetImplementation = 1000
)

/*
Dataset represents an immutable collection of rows.

Its Count method returns the number of rows it contains.

Its Rows method returns the rows it contains. The returned slice must not be
modified.

Its SubsetWith method takes a feature.Criterion and returns a new subset that
only contains rows that satisfy it. The receiver is never altered.

Its CountLabels method returns the number of rows for each label value. The
returned map belongs to the caller.

Its Criteria method returns the criteria that were applied to obtain the
dataset from the rows it was created with.
*/
type Dataset interface {
	Count() int
	Rows() []Row
	SubsetWith(feature.Criterion) (Dataset, error)
	CountLabels() map[string]int
	Criteria() []feature.Criterion
}

type memoryIntensiveSubsettingDataset struct {
	labelCounts map[string]int
	rows        []Row
	criteria    []feature.Criterion
}

type cpuIntensiveSubsettingDataset struct {
	labelCounts map[string]int
	count       *int
	rows        []Row
	criteria    []feature.Criterion
}

/*
New takes a slice of rows and returns a dataset built with them.
The dataset will be a CPU intensive one when the number of rows is
over rowCountThresholdForDatasetImplementation
*/
func New(rows []Row) Dataset {
	if len(rows) > rowCountThresholdForDatasetImplementation {
		return NewCPUIntensive(rows)
	}
	return NewMemoryIntensive(rows)
}

/*
NewMemoryIntensive takes a slice of rows and returns a Dataset
built with them. A memory-intensive dataset is an implementation that
replicates the slice of rows when subsetting to reduce
calculations at the cost of increased memory.
*/
func NewMemoryIntensive(rows []Row) Dataset {
	return &memoryIntensiveSubsettingDataset{nil, append([]Row{}, rows...), nil}
}

/*
NewCPUIntensive takes a slice of rows and returns a Dataset
built with them. A cpu-intensive dataset is an implementation that
instead of replicating the rows when subsetting, stores the
applying feature criteria to define the subset and keeps the same
row slice. This can achieve a drastic reduction in memory use
that comes at the cost of CPU time: every calculation that goes over
the rows of the dataset will apply the feature criteria of the dataset
on all original rows (the ones provided to this method).
*/
func NewCPUIntensive(rows []Row) Dataset {
	return &cpuIntensiveSubsettingDataset{nil, nil, append([]Row{}, rows...), nil}
}

func (s *memoryIntensiveSubsettingDataset) Count() int {
	return len(s.rows)
}

func (s *cpuIntensiveSubsettingDataset) Count() int {
	if s.count != nil {
		return *s.count
	}
	var length int
	s.iterateOnDataset(func(_ Row) bool {
		length++
		return true
	})
	s.count = &length
	return length
}

func (s *memoryIntensiveSubsettingDataset) Rows() []Row {
	return s.rows
}

func (s *cpuIntensiveSubsettingDataset) Rows() []Row {
	var rows []Row
	s.iterateOnDataset(func(r Row) bool {
		rows = append(rows, r)
		return true
	})
	return rows
}

func (s *memoryIntensiveSubsettingDataset) CountLabels() map[string]int {
	if s.labelCounts != nil {
		return copyCounts(s.labelCounts)
	}
	result := make(map[string]int)
	for _, r := range s.rows {
		result[r.Label()]++
	}
	s.labelCounts = result
	return copyCounts(result)
}

func (s *cpuIntensiveSubsettingDataset) CountLabels() map[string]int {
	if s.labelCounts != nil {
		return copyCounts(s.labelCounts)
	}
	result := make(map[string]int)
	s.iterateOnDataset(func(r Row) bool {
		result[r.Label()]++
		return true
	})
	s.labelCounts = result
	return copyCounts(result)
}

func (s *memoryIntensiveSubsettingDataset) SubsetWith(fc feature.Criterion) (Dataset, error) {
	var rows []Row
	for _, r := range s.rows {
		ok, err := fc.SatisfiedBy(r)
		if err != nil {
			return nil, err
		}
		if ok {
			rows = append(rows, r)
		}
	}
	return &memoryIntensiveSubsettingDataset{nil, rows, appendCriterion(s.criteria, fc)}, nil
}

func (s *cpuIntensiveSubsettingDataset) SubsetWith(fc feature.Criterion) (Dataset, error) {
	for _, r := range s.rows {
		if _, err := r.ValueFor(fc.Feature()); err != nil {
			return nil, err
		}
	}
	return &cpuIntensiveSubsettingDataset{nil, nil, s.rows, appendCriterion(s.criteria, fc)}, nil
}

func (s *memoryIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *cpuIntensiveSubsettingDataset) Criteria() []feature.Criterion {
	return s.criteria
}

func (s *memoryIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("[ %v ]", s.Count())
}

func (s *cpuIntensiveSubsettingDataset) String() string {
	return fmt.Sprintf("[ %v ]", s.Count())
}

// iterateOnDataset relies on SubsetWith having checked every row can be
// evaluated against every criterion, so errors cannot happen here.
func (s *cpuIntensiveSubsettingDataset) iterateOnDataset(lambda func(Row) bool) {
	for _, r := range s.rows {
		skip := false
		for _, criterion := range s.criteria {
			if ok, _ := criterion.SatisfiedBy(r); !ok {
				skip = true
				break
			}
		}
		if !skip && !lambda(r) {
			break
		}
	}
}

func appendCriterion(criteria []feature.Criterion, fc feature.Criterion) []feature.Criterion {
	result := make([]feature.Criterion, 0, len(criteria)+1)
	result = append(result, criteria...)
	return append(result, fc)
}

/*
Pure returns the label shared by every row of the dataset and true, or the empty
string and false when rows carry different labels or there are no rows.
*/
func Pure(ds Dataset) (string, bool) {
	counts := ds.CountLabels()
	if len(counts) != 1 {
		return "", false
	}
	for l := range counts {
		return l, true
	}
	return "", false
}

/*
Majority returns the most frequent label of the dataset among the values of the
given label domain. Ties are resolved in favour of the value that comes first on
the domain, so the first value of the domain is returned for an empty dataset.
*/
func Majority(ds Dataset, labels *feature.Domain) string {
	counts := ds.CountLabels()
	var result string
	max := -1
	for _, l := range labels.Values() {
		if counts[l] > max {
			result = l
			max = counts[l]
		}
	}
	return result
}

func copyCounts(counts map[string]int) map[string]int {
	result := make(map[string]int, len(counts))
	for label, count := range counts {
		result[label] = count
	}
	return result
}
