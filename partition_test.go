package arbor

import (
	"testing"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
	"github.com/pbanos/arbor/impurity"
	"github.com/stretchr/testify/require"
)

func TestPartitionGiniGain(t *testing.T) {
	first := mustFeature(t, "first", 0, "A", "B")
	rows := []dataset.Row{
		{"A", "x", "yes"},
		{"A", "y", "no"},
		{"B", "x", "no"},
		{"B", "y", "no"},
	}
	labels := feature.NewDomain("yes", "no")
	gini, err := impurity.For(impurity.GiniIndex)
	require.NoError(t, err)
	ds := dataset.New(rows)
	require.InDelta(t, 0.375, gini(ds, labels), 1e-9)

	p, err := NewPartition(ds, first, labels, gini)
	require.NoError(t, err)
	require.Equal(t, first, p.Feature)
	require.Len(t, p.Subsets, 2)
	require.Equal(t, 2, p.Subsets[0].Count())
	require.Equal(t, 2, p.Subsets[1].Count())
	require.InDelta(t, 0.125, p.Gain, 1e-9)

	g, err := Gain(ds, first, labels, gini)
	require.NoError(t, err)
	require.InDelta(t, 0.125, g, 1e-9)
}

func TestPartitionMajorityErrorGain(t *testing.T) {
	schema, labels, rows := tennis(t)
	me, err := impurity.For(impurity.MajorityError)
	require.NoError(t, err)
	ds := dataset.New(rows)
	require.InDelta(t, 5.0/14, me(ds, labels), 1e-12)
	expected := map[string]float64{
		"outlook":     1.0 / 14,
		"temperature": 0,
		"humidity":    1.0 / 14,
		"wind":        0,
	}
	for _, f := range schema {
		g, err := Gain(ds, f, labels, me)
		require.NoError(t, err)
		require.InDelta(t, expected[f.Name()], g, 1e-12, f.Name())
	}
}

func TestPartitionWithoutGainIsExactlyZero(t *testing.T) {
	f := mustFeature(t, "a", 0, "x", "y", "z")
	ds := dataset.New([]dataset.Row{
		{"x", "yes"}, {"x", "no"},
		{"y", "yes"}, {"y", "no"},
		{"z", "yes"}, {"z", "no"},
	})
	labels := feature.NewDomain("yes", "no")
	for _, k := range impurity.Kinds() {
		m, err := impurity.For(k)
		require.NoError(t, err)
		p, err := NewPartition(ds, f, labels, m)
		require.NoError(t, err)
		require.Equal(t, 0.0, p.Gain, k.String())
		require.True(t, DefaultPruner().Prune(ds, p), k.String())
	}
}

func TestGainIsNeverNegative(t *testing.T) {
	schema, labels, rows := tennis(t)
	ds := dataset.New(rows)
	for _, k := range []impurity.Kind{impurity.Entropy, impurity.GiniIndex} {
		m, err := impurity.For(k)
		require.NoError(t, err)
		for _, f := range schema {
			g, err := Gain(ds, f, labels, m)
			require.NoError(t, err)
			require.GreaterOrEqual(t, g, -1e-12, "%v on %s", k, f.Name())
		}
	}
}

func TestPartitionKeepsEmptySubsets(t *testing.T) {
	f := mustFeature(t, "colour", 0, "red", "green", "blue")
	labels := feature.NewDomain("yes", "no")
	m, err := impurity.For(impurity.Entropy)
	require.NoError(t, err)
	p, err := NewPartition(dataset.New([]dataset.Row{{"red", "yes"}, {"green", "no"}}), f, labels, m)
	require.NoError(t, err)
	require.Len(t, p.Subsets, 3)
	require.Equal(t, 0, p.Subsets[2].Count())
	require.InDelta(t, 1.0, p.Gain, 1e-9)
}

func TestPruners(t *testing.T) {
	ds := dataset.New(nil)
	require.True(t, DefaultPruner().Prune(ds, &Partition{Gain: 0}))
	require.False(t, DefaultPruner().Prune(ds, &Partition{Gain: 0.01}))
	require.True(t, FixedInformationGainPruner(0.5).Prune(ds, &Partition{Gain: 0.5}))
	require.False(t, FixedInformationGainPruner(0.5).Prune(ds, &Partition{Gain: 0.6}))
	require.False(t, NoPruner().Prune(ds, &Partition{Gain: -1}))
}
