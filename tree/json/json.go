/*
Package json provides methods to serialize tree.Tree values as JSON
documents and to parse them back.
*/
package json

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/impurity"
	"github.com/pbanos/arbor/tree"
)

type jsonTree struct {
	Impurity impurity.Kind  `json:"impurity"`
	MaxDepth int            `json:"maxDepth"`
	Labels   []string       `json:"labels"`
	Features []*jsonFeature `json:"features"`
	Root     *jsonNode      `json:"root"`
}

type jsonFeature struct {
	Name   string   `json:"name"`
	Index  int      `json:"index"`
	Values []string `json:"values"`
}

type jsonNode struct {
	Feature  string        `json:"f,omitempty"`
	Index    int           `json:"i"`
	Label    string        `json:"l,omitempty"`
	Weight   int           `json:"w"`
	Branches []*jsonBranch `json:"br,omitempty"`
}

type jsonBranch struct {
	Value string    `json:"v"`
	Node  *jsonNode `json:"n"`
}

/*
Marshal takes a tree and returns a slice of bytes with it serialized as a
JSON object with the following fields:
  * "impurity": the name of the impurity measure the tree was grown with
  * "maxDepth": the maximum depth the tree was grown with, negative if unbounded
  * "labels": an array with the label domain
  * "features": an array with the schema, each feature an object with its
    "name", column "index" and domain "values"
  * "root": the root node. A node has the name of the feature it splits on
    ("f"), its column index ("i", -1 for leaves), its predicted label ("l"),
    its weight ("w") and its branches ("br"), each an object with the value
    ("v") and the node ("n") for it.
*/
func Marshal(t *tree.Tree) ([]byte, error) {
	if t == nil || t.Root == nil {
		return nil, fmt.Errorf("cannot serialize a tree without root")
	}
	jt := &jsonTree{
		Impurity: t.Impurity,
		MaxDepth: t.MaxDepth,
		Root:     encodeNode(t.Root),
	}
	if t.Labels != nil {
		jt.Labels = t.Labels.Values()
	}
	for _, f := range t.Schema {
		jt.Features = append(jt.Features, &jsonFeature{f.Name(), f.Index(), f.AvailableValues()})
	}
	return json.Marshal(jt)
}

/*
Unmarshal takes a slice of bytes with a tree serialized as Marshal does and
returns the tree or an error.
*/
func Unmarshal(data []byte) (*tree.Tree, error) {
	jt := &jsonTree{}
	err := json.Unmarshal(data, jt)
	if err != nil {
		return nil, err
	}
	if jt.Root == nil {
		return nil, fmt.Errorf("tree has no root node")
	}
	features := make([]*feature.Feature, 0, len(jt.Features))
	for _, jf := range jt.Features {
		f, err := feature.NewFeature(jf.Name, jf.Index, jf.Values)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	schema, err := feature.NewSchema(features...)
	if err != nil {
		return nil, err
	}
	root, err := decodeNode(jt.Root)
	if err != nil {
		return nil, err
	}
	return tree.New(root, schema, feature.NewDomain(jt.Labels...), jt.Impurity, jt.MaxDepth), nil
}

/*
WriteTree takes an io.Writer and a tree and writes a JSON representation of
the tree onto the writer. It returns an error if serialization or writing
fails, nil otherwise.
*/
func WriteTree(w io.Writer, t *tree.Tree) error {
	data, err := Marshal(t)
	if err != nil {
		return fmt.Errorf("serializing tree as JSON: %v", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}

/*
ReadTree takes an io.Reader and attempts to JSON-decode a
tree from it. It returns the read tree or an error.
*/
func ReadTree(r io.Reader) (*tree.Tree, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading JSON tree: %v", err)
	}
	t, err := Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("decoding JSON tree: %v", err)
	}
	return t, nil
}

func encodeNode(n *tree.Node) *jsonNode {
	jn := &jsonNode{
		Feature: n.Feature(),
		Index:   n.Index(),
		Label:   n.Label(),
		Weight:  n.Weight(),
	}
	for _, b := range n.Branches() {
		jn.Branches = append(jn.Branches, &jsonBranch{b.Value, encodeNode(b.Node)})
	}
	return jn
}

func decodeNode(jn *jsonNode) (*tree.Node, error) {
	if jn.Index == tree.LeafIndex {
		if len(jn.Branches) > 0 {
			return nil, fmt.Errorf("leaf node predicting %q has branches", jn.Label)
		}
		return tree.NewLeaf(jn.Label, jn.Weight), nil
	}
	branches := make([]tree.Branch, 0, len(jn.Branches))
	for _, jb := range jn.Branches {
		if jb.Node == nil {
			return nil, fmt.Errorf("node on feature %s: branch for %s has no node", jn.Feature, jb.Value)
		}
		n, err := decodeNode(jb.Node)
		if err != nil {
			return nil, err
		}
		branches = append(branches, tree.Branch{Value: jb.Value, Node: n})
	}
	return tree.NewDecision(jn.Feature, jn.Index, jn.Weight, branches)
}
