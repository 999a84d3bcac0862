/*
Package arbor grows decision trees that classify rows of categorical values
with the ID3 algorithm.

A tree is grown top-down: at each node the feature whose partition of the
node's rows yields the greatest gain on the impurity of the label is chosen to
split on, and a child node is grown for every value the feature can take with
the rows taking it and the remaining features. Nodes whose rows share a single
label, that reach the maximum depth or for which no feature yields a positive
gain become leaves predicting their rows' majority label.
*/
package arbor

import (
	"fmt"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/impurity"
	"github.com/pbanos/arbor/tree"
)

// Unbounded is the maximum depth that sets no limit on the depth of a tree.
// Any negative depth has the same effect.
const Unbounded = -1

// Error is the type of errors returned when growing trees.
type Error string

const (
	// ErrEmptyDataset is returned when attempting to grow a tree from no rows.
	ErrEmptyDataset = Error("cannot grow a tree from an empty dataset")
	// ErrInconsistentRow is returned when rows have different widths or are
	// too short for the columns of the schema.
	ErrInconsistentRow = Error("inconsistent row")
	// ErrUnknownLabel is returned when a row's label is not in the label domain.
	ErrUnknownLabel = Error("row label not in label domain")
	// ErrNoLabels is returned when the label domain has no values.
	ErrNoLabels = Error("label domain has no values")
)

func (e Error) Error() string {
	return string(e)
}

/*
Pot represents the context in which a tree is grown: the features it may
split on, the domain of the label to predict, the impurity measure to
reduce, the maximum depth and the pruner to decide which splits are kept.

Its Grow method takes a Dataset and returns a tree grown from it.
*/
type Pot struct {
	schema   feature.Schema
	labels   *feature.Domain
	kind     impurity.Kind
	measure  impurity.Measure
	maxDepth int
	pruner   Pruner
}

/*
New takes a schema, a label domain, an impurity kind, a maximum depth and a
pruner and returns a Pot that uses those to grow trees. It returns an error
wrapping impurity.ErrUnknownKind if the kind is not supported, or ErrNoLabels
when the label domain is empty. A nil pruner is replaced by DefaultPruner.
*/
func New(schema feature.Schema, labels *feature.Domain, kind impurity.Kind, maxDepth int, p Pruner) (*Pot, error) {
	measure, err := impurity.For(kind)
	if err != nil {
		return nil, err
	}
	if labels == nil || labels.Len() == 0 {
		return nil, ErrNoLabels
	}
	if p == nil {
		p = DefaultPruner()
	}
	return &Pot{schema, labels, kind, measure, maxDepth, p}, nil
}

/*
Build takes rows, a schema, a label domain, a maximum depth and an impurity
kind and returns the tree grown from the rows with the DefaultPruner.
*/
func Build(rows []dataset.Row, schema feature.Schema, labels *feature.Domain, maxDepth int, kind impurity.Kind) (*tree.Tree, error) {
	p, err := New(schema, labels, kind, maxDepth, DefaultPruner())
	if err != nil {
		return nil, err
	}
	return p.Grow(dataset.New(rows))
}

/*
Grow takes a dataset and returns a tree grown from it, or an error if the
dataset is empty, its rows are inconsistent with each other or the schema, or
carry labels outside the label domain.
*/
func (p *Pot) Grow(ds dataset.Dataset) (*tree.Tree, error) {
	if err := p.validate(ds); err != nil {
		return nil, err
	}
	root, err := p.develop(ds, p.schema, p.maxDepth)
	if err != nil {
		return nil, err
	}
	return tree.New(root, p.schema, p.labels, p.kind, p.maxDepth), nil
}

func (p *Pot) validate(ds dataset.Dataset) error {
	rows := ds.Rows()
	if len(rows) == 0 {
		return ErrEmptyDataset
	}
	width := len(rows[0])
	if p.schema.Width() > width-1 {
		return fmt.Errorf("%w: schema needs %d feature columns, rows have %d", ErrInconsistentRow, p.schema.Width(), width-1)
	}
	for i, r := range rows {
		if len(r) != width {
			return fmt.Errorf("%w: row %d has %d columns, expected %d", ErrInconsistentRow, i, len(r), width)
		}
		if !p.labels.Contains(r.Label()) {
			return fmt.Errorf("%w: row %d has label %q", ErrUnknownLabel, i, r.Label())
		}
	}
	return nil
}

func (p *Pot) develop(ds dataset.Dataset, schema feature.Schema, depth int) (*tree.Node, error) {
	weight := ds.Count()
	if l, ok := dataset.Pure(ds); ok {
		return tree.NewLeaf(l, weight), nil
	}
	majority := dataset.Majority(ds, p.labels)
	if depth == 0 {
		return tree.NewLeaf(majority, weight), nil
	}
	var selected *Partition
	for _, f := range schema {
		part, err := NewPartition(ds, f, p.labels, p.measure)
		if err != nil {
			return nil, err
		}
		if p.pruner.Prune(ds, part) {
			continue
		}
		if selected == nil || part.Gain > selected.Gain {
			selected = part
		}
	}
	if selected == nil {
		return tree.NewLeaf(majority, weight), nil
	}
	remaining := schema.Without(selected.Feature.Name())
	nextDepth := depth - 1
	if depth < 0 {
		nextDepth = depth
	}
	branches := make([]tree.Branch, 0, len(selected.Subsets))
	for i, value := range selected.Feature.AvailableValues() {
		subset := selected.Subsets[i]
		if subset.Count() == 0 {
			branches = append(branches, tree.Branch{Value: value, Node: tree.NewLeaf(majority, 0)})
			continue
		}
		child, err := p.develop(subset, remaining, nextDepth)
		if err != nil {
			return nil, err
		}
		branches = append(branches, tree.Branch{Value: value, Node: child})
	}
	return tree.NewDecision(selected.Feature.Name(), selected.Feature.Index(), weight, branches)
}
