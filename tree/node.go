package tree

import (
	"fmt"
)

// LeafIndex is the column index held by leaf nodes, which split on no column.
const LeafIndex = -1

/*
Node is a node of the tree. It is either a leaf, holding the label it
predicts, or a decision node, holding the feature it splits on, the column
index of that feature on rows and a child node for every value the feature
can take.

Nodes are immutable once built and own their children.
*/
type Node struct {
	feature  string
	index    int
	label    string
	weight   int
	values   []string
	children map[string]*Node
}

/*
Branch binds a value of the feature a decision node splits on to the
child node that handles rows taking it.
*/
type Branch struct {
	Value string
	Node  *Node
}

/*
NewLeaf takes a label and a weight, the number of training rows that reached
the node, and returns a leaf node predicting the label.
*/
func NewLeaf(label string, weight int) *Node {
	return &Node{index: LeafIndex, label: label, weight: weight}
}

/*
NewDecision takes the name and column index of a feature, a weight and the
branches for every value of the feature and returns a decision node, or an
error if the index is negative, a branch has no node or two branches share a
value. Branches keep the order in which they are given.
*/
func NewDecision(feature string, index, weight int, branches []Branch) (*Node, error) {
	if index < 0 {
		return nil, fmt.Errorf("decision node on %s: invalid column index %d", feature, index)
	}
	n := &Node{
		feature:  feature,
		index:    index,
		weight:   weight,
		values:   make([]string, 0, len(branches)),
		children: make(map[string]*Node, len(branches)),
	}
	for _, b := range branches {
		if b.Node == nil {
			return nil, fmt.Errorf("decision node on %s: no node for value %s", feature, b.Value)
		}
		if _, ok := n.children[b.Value]; ok {
			return nil, fmt.Errorf("decision node on %s: duplicate branch for value %s", feature, b.Value)
		}
		n.values = append(n.values, b.Value)
		n.children[b.Value] = b.Node
	}
	return n, nil
}

// IsLeaf returns whether the node is a leaf.
func (n *Node) IsLeaf() bool {
	return n.index == LeafIndex
}

// Label returns the label predicted by a leaf node, the empty string for
// decision nodes.
func (n *Node) Label() string {
	return n.label
}

// Feature returns the name of the feature a decision node splits on, the
// empty string for leaves.
func (n *Node) Feature() string {
	return n.feature
}

// Index returns the column index of the feature a decision node splits on,
// LeafIndex for leaves.
func (n *Node) Index() int {
	return n.index
}

// Weight returns the number of training rows that reached the node.
func (n *Node) Weight() int {
	return n.weight
}

// Child returns the child node for the given value of the feature the node
// splits on, and whether there is one.
func (n *Node) Child(value string) (*Node, bool) {
	c, ok := n.children[value]
	return c, ok
}

// Branches returns the branches of the node in order.
func (n *Node) Branches() []Branch {
	result := make([]Branch, 0, len(n.values))
	for _, v := range n.values {
		result = append(result, Branch{v, n.children[v]})
	}
	return result
}

func (n *Node) String() string {
	if n.IsLeaf() {
		return fmt.Sprintf("{ predict %s } [ %d ]", n.label, n.weight)
	}
	return fmt.Sprintf("{ split on %s (column %d) } [ %d ]", n.feature, n.index, n.weight)
}
