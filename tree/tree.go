package tree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/impurity"
)

// PredictionError represents an error related with predictions
type PredictionError string

/*
ErrUnseenBranchValue is the error returned by the Classify method of a tree
when a row takes a value for a feature for which the tree has no branch,
as opposed to cases where the value cannot be obtained from the row.
*/
const ErrUnseenBranchValue = PredictionError("no branch for feature value")

func (pe PredictionError) Error() string {
	return string(pe)
}

/*
Tree represents a decision tree. It is composed of its root node and
the information with which it was grown: the schema of the features it may
split on, the domain of the label it predicts, the impurity measure that
drove its growth and its maximum depth (negative when unbounded).
*/
type Tree struct {
	Root     *Node
	Schema   feature.Schema
	Labels   *feature.Domain
	Impurity impurity.Kind
	MaxDepth int
}

// New takes a root node, a schema, a label domain, an impurity kind and a
// maximum depth and returns a tree with them.
func New(root *Node, schema feature.Schema, labels *feature.Domain, kind impurity.Kind, maxDepth int) *Tree {
	return &Tree{root, schema, labels, kind, maxDepth}
}

/*
Classify takes a row and returns the label the tree predicts for it, walking
the tree from its root following the branches for the row's values until a
leaf is reached. It returns an error wrapping ErrUnseenBranchValue if a
decision node has no branch for the row's value, or one wrapping
dataset.ErrMissingValue if the row has no value at a decision node's column.
*/
func (t *Tree) Classify(row dataset.Row) (string, error) {
	if t == nil || t.Root == nil {
		return "", fmt.Errorf("nil tree cannot classify rows")
	}
	n := t.Root
	for !n.IsLeaf() {
		v, err := row.ValueAt(n.index)
		if err != nil {
			return "", fmt.Errorf("classifying row on feature %s: %w", n.feature, err)
		}
		child, ok := n.Child(v)
		if !ok {
			return "", fmt.Errorf("feature %s has value %q: %w", n.feature, v, ErrUnseenBranchValue)
		}
		n = child
	}
	return n.label, nil
}

/*
ClassifyOr behaves like Classify but returns the given fallback label instead
of an error when the row cannot be classified.
*/
func (t *Tree) ClassifyOr(row dataset.Row, fallback string) string {
	l, err := t.Classify(row)
	if err != nil {
		return fallback
	}
	return l
}

/*
TestResult holds the outcome of testing a tree against a dataset: the
number of rows whose label was predicted correctly, incorrectly, or that
could not be classified because of unseen feature values.
*/
type TestResult struct {
	Correct      int
	Incorrect    int
	Unclassified int
}

// Total returns the number of tested rows.
func (r *TestResult) Total() int {
	return r.Correct + r.Incorrect + r.Unclassified
}

// ErrorRate returns the fraction of tested rows that were not predicted
// correctly, unclassified ones included. It is 0 when no rows were tested.
func (r *TestResult) ErrorRate() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.Incorrect+r.Unclassified) / float64(r.Total())
}

// SuccessRate returns the fraction of tested rows that were predicted
// correctly. It is 0 when no rows were tested.
func (r *TestResult) SuccessRate() float64 {
	if r.Total() == 0 {
		return 0
	}
	return float64(r.Correct) / float64(r.Total())
}

/*
Test takes a Dataset, classifies each of its rows and compares the prediction
with the row's label. Rows that cannot be classified for taking unseen values
are counted as unclassified. Any other classification error aborts the test
and is returned.
*/
func (t *Tree) Test(ds dataset.Dataset) (*TestResult, error) {
	result := &TestResult{}
	for _, row := range ds.Rows() {
		l, err := t.Classify(row)
		if err != nil {
			if !errors.Is(err, ErrUnseenBranchValue) {
				return nil, err
			}
			result.Unclassified++
			continue
		}
		if l == row.Label() {
			result.Correct++
		} else {
			result.Incorrect++
		}
	}
	return result, nil
}

// Depth returns the number of decision nodes on the longest path from the
// root to a leaf.
func (t *Tree) Depth() int {
	var depth int
	t.Traverse(false, func(n *Node, d int) error {
		if n.IsLeaf() && d > depth {
			depth = d
		}
		return nil
	})
	return depth
}

// Traverse takes a bottomup boolean and an error-returning function that
// takes a node and its depth as parameters, and goes through the tree
// running the function with every traversed node.
// Traverse will call the function with a parent node before
// calling it for its children if bottomup is false, and
// call it after its children if bottomup is true.
// If the call to the function returns an error, the traversing is
// aborted and the error is returned. Otherwise, when the
// traversing is over, nil is returned.
func (t *Tree) Traverse(bottomup bool, f func(*Node, int) error) error {
	if t == nil || t.Root == nil {
		return nil
	}
	return traverse(t.Root, 0, bottomup, f)
}

func traverse(n *Node, depth int, bottomup bool, f func(*Node, int) error) error {
	if !bottomup {
		if err := f(n, depth); err != nil {
			return err
		}
	}
	for _, b := range n.Branches() {
		if err := traverse(b.Node, depth+1, bottomup, f); err != nil {
			return err
		}
	}
	if bottomup {
		return f(n, depth)
	}
	return nil
}

func (t *Tree) String() string {
	if t == nil || t.Root == nil {
		return ""
	}
	return subtreeString(t.Root)
}

func subtreeString(n *Node) string {
	result := fmt.Sprintf("%v\n", n)
	branches := n.Branches()
	for i, b := range branches {
		for j, line := range strings.Split(subtreeString(b.Node), "\n") {
			if len(line) == 0 {
				continue
			}
			if j == 0 {
				result = fmt.Sprintf("%s|__%s is %s: %s\n", result, n.feature, b.Value, line)
			} else if i == len(branches)-1 {
				result = fmt.Sprintf("%s   %s\n", result, line)
			} else {
				result = fmt.Sprintf("%s|  %s\n", result, line)
			}
		}
	}
	return result
}
