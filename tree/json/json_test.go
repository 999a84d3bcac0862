package json

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/impurity"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/require"
)

func testTree(t *testing.T) *tree.Tree {
	t.Helper()
	sunny, err := tree.NewDecision("humidity", 2, 5, []tree.Branch{
		{Value: "high", Node: tree.NewLeaf("no", 3)},
		{Value: "normal", Node: tree.NewLeaf("yes", 2)},
	})
	require.NoError(t, err)
	root, err := tree.NewDecision("outlook", 0, 9, []tree.Branch{
		{Value: "sunny", Node: sunny},
		{Value: "overcast", Node: tree.NewLeaf("yes", 4)},
		{Value: "rain", Node: tree.NewLeaf("yes", 0)},
	})
	require.NoError(t, err)
	outlook, err := feature.NewFeature("outlook", 0, []string{"sunny", "overcast", "rain"})
	require.NoError(t, err)
	humidity, err := feature.NewFeature("humidity", 2, []string{"high", "normal"})
	require.NoError(t, err)
	schema, err := feature.NewSchema(outlook, humidity)
	require.NoError(t, err)
	return tree.New(root, schema, feature.NewDomain("yes", "no"), impurity.GiniIndex, -1)
}

func TestRoundTrip(t *testing.T) {
	original := testTree(t)
	var buf bytes.Buffer
	require.NoError(t, WriteTree(&buf, original))
	decoded, err := ReadTree(&buf)
	require.NoError(t, err)

	if diff := cmp.Diff(original.Root, decoded.Root, cmp.AllowUnexported(tree.Node{})); diff != "" {
		t.Errorf("decoded root differs (-want +got):\n%s", diff)
	}
	require.Equal(t, original.Schema.Names(), decoded.Schema.Names())
	for i, f := range original.Schema {
		require.Equal(t, f.Index(), decoded.Schema[i].Index())
		require.Equal(t, f.AvailableValues(), decoded.Schema[i].AvailableValues())
	}
	require.Equal(t, original.Labels.Values(), decoded.Labels.Values())
	require.Equal(t, impurity.GiniIndex, decoded.Impurity)
	require.Equal(t, -1, decoded.MaxDepth)
	require.Equal(t, original.String(), decoded.String())
}

func TestMarshalFormat(t *testing.T) {
	data, err := Marshal(testTree(t))
	require.NoError(t, err)
	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &doc))
	require.Equal(t, "gini-index", doc["impurity"])
	require.Equal(t, []interface{}{"yes", "no"}, doc["labels"])
	root := doc["root"].(map[string]interface{})
	require.Equal(t, "outlook", root["f"])
	require.Equal(t, 0.0, root["i"])
	require.Equal(t, 9.0, root["w"])
	branches := root["br"].([]interface{})
	require.Len(t, branches, 3)
	overcast := branches[1].(map[string]interface{})
	require.Equal(t, "overcast", overcast["v"])
	leaf := overcast["n"].(map[string]interface{})
	require.Equal(t, -1.0, leaf["i"])
	require.Equal(t, "yes", leaf["l"])
	require.NotContains(t, leaf, "br")
}

func TestUnmarshalErrors(t *testing.T) {
	for name, doc := range map[string]string{
		"invalid json":        `{`,
		"no root":             `{"impurity":"entropy","labels":["a"],"features":[]}`,
		"unknown impurity":    `{"impurity":"variance","labels":["a"],"features":[],"root":{"i":-1,"l":"a","w":1}}`,
		"leaf with branches":  `{"impurity":"entropy","labels":["a"],"features":[],"root":{"i":-1,"l":"a","w":1,"br":[{"v":"x","n":{"i":-1,"l":"a","w":1}}]}}`,
		"branch without node": `{"impurity":"entropy","labels":["a"],"features":[{"name":"f","index":0,"values":["x"]}],"root":{"f":"f","i":0,"w":1,"br":[{"v":"x"}]}}`,
		"duplicate feature":   `{"impurity":"entropy","labels":["a"],"features":[{"name":"f","index":0,"values":["x"]},{"name":"f","index":1,"values":["x"]}],"root":{"i":-1,"l":"a","w":1}}`,
	} {
		_, err := Unmarshal([]byte(doc))
		require.Error(t, err, name)
	}
}

func TestMarshalNilTree(t *testing.T) {
	_, err := Marshal(nil)
	require.Error(t, err)
}
