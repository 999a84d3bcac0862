package arbor

import (
	"errors"
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/impurity"
	"github.com/pbanos/arbor/tree"
	"github.com/stretchr/testify/require"
)

func mustSchema(t *testing.T, features ...*feature.Feature) feature.Schema {
	t.Helper()
	s, err := feature.NewSchema(features...)
	require.NoError(t, err)
	return s
}

func mustFeature(t *testing.T, name string, index int, values ...string) *feature.Feature {
	t.Helper()
	f, err := feature.NewFeature(name, index, values)
	require.NoError(t, err)
	return f
}

// tennis is the classic play tennis dataset.
func tennis(t *testing.T) (feature.Schema, *feature.Domain, []dataset.Row) {
	schema := mustSchema(t,
		mustFeature(t, "outlook", 0, "sunny", "overcast", "rain"),
		mustFeature(t, "temperature", 1, "hot", "mild", "cool"),
		mustFeature(t, "humidity", 2, "high", "normal"),
		mustFeature(t, "wind", 3, "weak", "strong"),
	)
	rows := []dataset.Row{
		{"sunny", "hot", "high", "weak", "no"},
		{"sunny", "hot", "high", "strong", "no"},
		{"overcast", "hot", "high", "weak", "yes"},
		{"rain", "mild", "high", "weak", "yes"},
		{"rain", "cool", "normal", "weak", "yes"},
		{"rain", "cool", "normal", "strong", "no"},
		{"overcast", "cool", "normal", "strong", "yes"},
		{"sunny", "mild", "high", "weak", "no"},
		{"sunny", "cool", "normal", "weak", "yes"},
		{"rain", "mild", "normal", "weak", "yes"},
		{"sunny", "mild", "normal", "strong", "yes"},
		{"overcast", "mild", "high", "strong", "yes"},
		{"overcast", "hot", "normal", "weak", "yes"},
		{"rain", "mild", "high", "strong", "no"},
	}
	return schema, feature.NewDomain("yes", "no"), rows
}

func TestBuildSeparatesTrainingSet(t *testing.T) {
	schema, labels, rows := tennis(t)
	for _, k := range impurity.Kinds() {
		tr, err := Build(rows, schema, labels, Unbounded, k)
		require.NoError(t, err, k.String())
		result, err := tr.Test(dataset.New(rows))
		require.NoError(t, err)
		require.Equal(t, len(rows), result.Correct, k.String())
		require.Equal(t, 0.0, result.ErrorRate(), k.String())
		require.Equal(t, k, tr.Impurity)
		require.Equal(t, Unbounded, tr.MaxDepth)
	}
}

func TestBuildSplitsOnOutlookFirstWithEntropy(t *testing.T) {
	schema, labels, rows := tennis(t)
	tr, err := Build(rows, schema, labels, Unbounded, impurity.Entropy)
	require.NoError(t, err)
	require.Equal(t, "outlook", tr.Root.Feature())
	require.Equal(t, len(rows), tr.Root.Weight())
	overcast, ok := tr.Root.Child("overcast")
	require.True(t, ok)
	require.True(t, overcast.IsLeaf())
	require.Equal(t, "yes", overcast.Label())
	require.Equal(t, 4, overcast.Weight())
	sunny, _ := tr.Root.Child("sunny")
	require.Equal(t, "humidity", sunny.Feature())
	rain, _ := tr.Root.Child("rain")
	require.Equal(t, "wind", rain.Feature())
	require.Equal(t, 2, tr.Depth())
}

func TestNoFeatureRepeatsAlongAPath(t *testing.T) {
	schema, labels, rows := tennis(t)
	for _, k := range impurity.Kinds() {
		tr, err := Build(rows, schema, labels, Unbounded, k)
		require.NoError(t, err)
		var walk func(n *tree.Node, seen map[string]bool)
		walk = func(n *tree.Node, seen map[string]bool) {
			if n.IsLeaf() {
				return
			}
			require.False(t, seen[n.Feature()], "feature %s repeated with %v", n.Feature(), k)
			next := map[string]bool{n.Feature(): true}
			for f := range seen {
				next[f] = true
			}
			for _, b := range n.Branches() {
				walk(b.Node, next)
			}
		}
		walk(tr.Root, map[string]bool{})
		require.LessOrEqual(t, tr.Depth(), len(schema))
	}
}

func TestMaxDepthZeroGrowsMajorityLeaf(t *testing.T) {
	schema, labels, rows := tennis(t)
	tr, err := Build(rows, schema, labels, 0, impurity.Entropy)
	require.NoError(t, err)
	require.True(t, tr.Root.IsLeaf())
	require.Equal(t, "yes", tr.Root.Label())
	require.Equal(t, len(rows), tr.Root.Weight())
	require.Equal(t, 0, tr.Depth())
}

func TestMaxDepthBoundsTheTree(t *testing.T) {
	schema, labels, rows := tennis(t)
	tr, err := Build(rows, schema, labels, 1, impurity.GiniIndex)
	require.NoError(t, err)
	require.Equal(t, 1, tr.Depth())
	for _, b := range tr.Root.Branches() {
		require.True(t, b.Node.IsLeaf())
	}
}

func TestSingleLabelGrowsLeaf(t *testing.T) {
	schema := mustSchema(t, mustFeature(t, "a", 0, "x", "y"))
	tr, err := Build([]dataset.Row{{"x", "no"}, {"y", "no"}}, schema, feature.NewDomain("yes", "no"), Unbounded, impurity.Entropy)
	require.NoError(t, err)
	require.True(t, tr.Root.IsLeaf())
	require.Equal(t, "no", tr.Root.Label())
	require.Equal(t, 2, tr.Root.Weight())
}

func TestNoPositiveGainGrowsMajorityLeaf(t *testing.T) {
	schema := mustSchema(t, mustFeature(t, "a", 0, "x", "y"))
	rows := []dataset.Row{{"x", "no"}, {"x", "yes"}, {"y", "no"}, {"y", "yes"}}
	tr, err := Build(rows, schema, feature.NewDomain("yes", "no"), Unbounded, impurity.Entropy)
	require.NoError(t, err)
	require.True(t, tr.Root.IsLeaf())
	require.Equal(t, "yes", tr.Root.Label())

	p, err := New(schema, feature.NewDomain("yes", "no"), impurity.Entropy, Unbounded, NoPruner())
	require.NoError(t, err)
	tr, err = p.Grow(dataset.New(rows))
	require.NoError(t, err)
	require.Equal(t, "a", tr.Root.Feature())
	for _, b := range tr.Root.Branches() {
		require.True(t, b.Node.IsLeaf())
		require.Equal(t, "yes", b.Node.Label())
	}
}

func TestUniformMultiwaySplitGrowsMajorityLeaf(t *testing.T) {
	schema := mustSchema(t, mustFeature(t, "a", 0, "x", "y", "z"))
	rows := []dataset.Row{
		{"x", "yes"}, {"x", "no"},
		{"y", "yes"}, {"y", "no"},
		{"z", "yes"}, {"z", "no"},
	}
	for _, k := range impurity.Kinds() {
		tr, err := Build(rows, schema, feature.NewDomain("yes", "no"), Unbounded, k)
		require.NoError(t, err, k.String())
		require.True(t, tr.Root.IsLeaf(), "%v split a feature without gain", k)
		require.Equal(t, "yes", tr.Root.Label(), k.String())
		require.Equal(t, len(rows), tr.Root.Weight(), k.String())
	}
}

func TestSeparableSetClassifiesUnseenRows(t *testing.T) {
	schema := mustSchema(t,
		mustFeature(t, "a", 0, "p", "q"),
		mustFeature(t, "b", 1, "r", "s"),
		mustFeature(t, "c", 2, "u", "v", "w"),
	)
	training := []dataset.Row{
		{"p", "r", "u", "yes"},
		{"p", "r", "v", "yes"},
		{"q", "s", "u", "no"},
		{"q", "s", "v", "no"},
	}
	heldOut := []dataset.Row{
		{"p", "r", "w", "yes"},
		{"q", "s", "w", "no"},
		{"p", "r", "u", "yes"},
		{"q", "s", "v", "no"},
	}
	for _, k := range impurity.Kinds() {
		tr, err := Build(training, schema, feature.NewDomain("yes", "no"), Unbounded, k)
		require.NoError(t, err, k.String())
		require.Equal(t, "a", tr.Root.Feature(), k.String())
		result, err := tr.Test(dataset.New(heldOut))
		require.NoError(t, err)
		require.Equal(t, len(heldOut), result.Correct, k.String())
		require.Equal(t, 0, result.Unclassified, k.String())
		require.Equal(t, 0.0, result.ErrorRate(), k.String())
	}
}

func TestTiesGoToTheFirstFeatureInSchema(t *testing.T) {
	rows := []dataset.Row{{"x", "x", "yes"}, {"y", "y", "no"}}
	labels := feature.NewDomain("yes", "no")
	first := mustFeature(t, "first", 0, "x", "y")
	second := mustFeature(t, "second", 1, "x", "y")

	tr, err := Build(rows, mustSchema(t, first, second), labels, Unbounded, impurity.Entropy)
	require.NoError(t, err)
	require.Equal(t, "first", tr.Root.Feature())

	tr, err = Build(rows, mustSchema(t, second, first), labels, Unbounded, impurity.Entropy)
	require.NoError(t, err)
	require.Equal(t, "second", tr.Root.Feature())
}

func TestEmptyPartitionGetsParentMajority(t *testing.T) {
	schema := mustSchema(t,
		mustFeature(t, "colour", 0, "red", "green", "blue"),
		mustFeature(t, "size", 1, "small", "big"),
	)
	rows := []dataset.Row{
		{"red", "small", "no"},
		{"red", "big", "no"},
		{"green", "small", "yes"},
		{"red", "small", "no"},
	}
	tr, err := Build(rows, schema, feature.NewDomain("yes", "no"), Unbounded, impurity.Entropy)
	require.NoError(t, err)
	require.Equal(t, "colour", tr.Root.Feature())
	blue, ok := tr.Root.Child("blue")
	require.True(t, ok)
	require.True(t, blue.IsLeaf())
	require.Equal(t, "no", blue.Label())
	require.Equal(t, 0, blue.Weight())
	values := []string{}
	for _, b := range tr.Root.Branches() {
		values = append(values, b.Value)
	}
	require.Equal(t, []string{"red", "green", "blue"}, values)
}

func TestGrowErrors(t *testing.T) {
	schema := mustSchema(t, mustFeature(t, "a", 0, "x", "y"), mustFeature(t, "b", 1, "x", "y"))
	labels := feature.NewDomain("yes", "no")

	_, err := Build(nil, schema, labels, Unbounded, impurity.Entropy)
	require.True(t, errors.Is(err, ErrEmptyDataset))

	_, err = Build([]dataset.Row{{"x", "x", "yes"}, {"y", "no"}}, schema, labels, Unbounded, impurity.Entropy)
	require.True(t, errors.Is(err, ErrInconsistentRow))

	_, err = Build([]dataset.Row{{"x", "yes"}}, schema, labels, Unbounded, impurity.Entropy)
	require.True(t, errors.Is(err, ErrInconsistentRow))

	_, err = Build([]dataset.Row{{"x", "x", "maybe"}}, schema, labels, Unbounded, impurity.Entropy)
	require.True(t, errors.Is(err, ErrUnknownLabel))

	_, err = Build([]dataset.Row{{"x", "x", "yes"}}, schema, labels, Unbounded, impurity.Kind(42))
	require.True(t, errors.Is(err, impurity.ErrUnknownKind))

	_, err = Build([]dataset.Row{{"x", "x", "yes"}}, schema, feature.NewDomain(), Unbounded, impurity.Entropy)
	require.True(t, errors.Is(err, ErrNoLabels))
}

func TestGrowWithBothDatasetImplementations(t *testing.T) {
	schema, labels, rows := tennis(t)
	p, err := New(schema, labels, impurity.Entropy, Unbounded, nil)
	require.NoError(t, err)
	memory, err := p.Grow(dataset.NewMemoryIntensive(rows))
	require.NoError(t, err)
	cpu, err := p.Grow(dataset.NewCPUIntensive(rows))
	require.NoError(t, err)
	require.Equal(t, memory.String(), cpu.String())
}
