package arbor

import (
	"github.com/pbanos/arbor/dataset"
)

/*
Pruner is an interface wrapping the Prune method, that can be used
to decide whether a partition is good enough to become part of a tree
or if it must be pruned instead.

The Prune method takes a dataset and a partition of it and returns a
boolean: true to indicate the partition must be pruned, false to allow its
adding to the tree and further development.
*/
type Pruner interface {
	Prune(s dataset.Dataset, p *Partition) bool
}

/*
PrunerFunc wraps a function with the Prune method signature to implement
the Pruner interface
*/
type PrunerFunc func(s dataset.Dataset, p *Partition) bool

/*
Prune takes a dataset and a partition and invokes the PrunerFunc with those
parameters to return its boolean result.
*/
func (pf PrunerFunc) Prune(s dataset.Dataset, p *Partition) bool {
	return pf(s, p)
}

/*
DefaultPruner returns a Pruner whose Prune method returns true for partitions
that achieve no positive gain, which is what ID3 does.
*/
func DefaultPruner() Pruner {
	return FixedInformationGainPruner(0)
}

/*
FixedInformationGainPruner takes an informationGainThreshold float64 value
and returns a Pruner whose Prune method returns whether the informationGainThreshold
is greater or equal to the received partition's gain
*/
func FixedInformationGainPruner(informationGainThreshold float64) Pruner {
	return PrunerFunc(func(s dataset.Dataset, p *Partition) bool {
		return informationGainThreshold >= p.Gain
	})
}

/*
NoPruner returns a Pruner whose Prune method always returns false, that is,
never prunes. Trees grown with it keep splitting impure datasets while
features remain, even when no split improves impurity.
*/
func NoPruner() Pruner {
	return PrunerFunc(func(s dataset.Dataset, p *Partition) bool {
		return false
	})
}
