package arbor

import (
	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/impurity"
)

/*
Partition represents a partition of a dataset according to a feature
into subsets, one for each value the feature can take, with the gain it
achieves on the impurity of the label
*/
type Partition struct {
	Feature *feature.Feature
	// Subsets holds the subset for each of the feature's available values,
	// in the same order.
	Subsets []dataset.Dataset
	Gain    float64
}

/*
NewPartition takes a dataset, a feature, the domain of the label and an impurity
measure and returns the partition of the dataset for the given feature.

The gain of the partition is the impurity of the dataset minus the impurity of
each subset weighted by the fraction of rows of the dataset that belong to it.
Empty subsets weigh nothing, so the measure is never applied to them.
*/
func NewPartition(ds dataset.Dataset, f *feature.Feature, labels *feature.Domain, measure impurity.Measure) (*Partition, error) {
	availableValues := f.AvailableValues()
	subsets := make([]dataset.Dataset, 0, len(availableValues))
	totalCount := float64(ds.Count())
	var weighted float64
	for _, value := range availableValues {
		subset, err := ds.SubsetWith(feature.NewCriterion(f, value))
		if err != nil {
			return nil, err
		}
		subsets = append(subsets, subset)
		subsetCount := subset.Count()
		if subsetCount == 0 {
			continue
		}
		// The conversion rounds the product, so it is never fused into the sum.
		weighted += float64(float64(subsetCount) / totalCount * measure(subset, labels))
	}
	// Subtracting the weighted sum once keeps gains that are zero exactly zero.
	return &Partition{f, subsets, measure(ds, labels) - weighted}, nil
}

/*
Gain takes the same parameters as NewPartition and returns only the gain of
the partition.
*/
func Gain(ds dataset.Dataset, f *feature.Feature, labels *feature.Domain, measure impurity.Measure) (float64, error) {
	p, err := NewPartition(ds, f, labels, measure)
	if err != nil {
		return 0, err
	}
	return p.Gain, nil
}
