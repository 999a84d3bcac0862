package dataset

import (
	"errors"
	"fmt"
	"testing"

	"github.com/pbanos/arbor/feature"
	"github.com/stretchr/testify/require"
)

var testRows = []Row{
	{"A", "x", "yes"},
	{"A", "y", "no"},
	{"B", "x", "no"},
	{"B", "y", "no"},
}

func implementations() map[string]func([]Row) Dataset {
	return map[string]func([]Row) Dataset{
		"memory-intensive": NewMemoryIntensive,
		"cpu-intensive":    NewCPUIntensive,
	}
}

func TestRow(t *testing.T) {
	r := Row{"A", "x", "yes"}
	require.Equal(t, "yes", r.Label())
	require.Equal(t, "", Row{}.Label())
	require.Equal(t, "[A,x,yes]", r.String())
	v, err := r.ValueAt(1)
	require.NoError(t, err)
	require.Equal(t, "x", v)
	_, err = r.ValueAt(3)
	require.True(t, errors.Is(err, ErrMissingValue))
	_, err = r.ValueAt(-1)
	require.True(t, errors.Is(err, ErrMissingValue))
}

func TestDatasetCountsAndSubsets(t *testing.T) {
	f, err := feature.NewFeature("first", 0, []string{"A", "B", "C"})
	require.NoError(t, err)
	g, err := feature.NewFeature("second", 1, []string{"x", "y"})
	require.NoError(t, err)
	for name, newDataset := range implementations() {
		t.Run(name, func(t *testing.T) {
			ds := newDataset(testRows)
			require.Equal(t, 4, ds.Count())
			require.Equal(t, map[string]int{"yes": 1, "no": 3}, ds.CountLabels())
			require.Empty(t, ds.Criteria())

			a, err := ds.SubsetWith(feature.NewCriterion(f, "A"))
			require.NoError(t, err)
			require.Equal(t, 2, a.Count())
			require.Equal(t, []Row{testRows[0], testRows[1]}, a.Rows())
			require.Equal(t, map[string]int{"yes": 1, "no": 1}, a.CountLabels())

			ax, err := a.SubsetWith(feature.NewCriterion(g, "x"))
			require.NoError(t, err)
			require.Equal(t, []Row{testRows[0]}, ax.Rows())
			require.Len(t, ax.Criteria(), 2)
			require.Len(t, a.Criteria(), 1)

			c, err := ds.SubsetWith(feature.NewCriterion(f, "C"))
			require.NoError(t, err)
			require.Equal(t, 0, c.Count())
			require.Empty(t, c.CountLabels())

			require.Equal(t, 4, ds.Count())
			require.Equal(t, testRows, ds.Rows())
		})
	}
}

func TestCountLabelsReturnsCallerOwnedMap(t *testing.T) {
	for name, newDataset := range implementations() {
		t.Run(name, func(t *testing.T) {
			ds := newDataset(testRows)
			counts := ds.CountLabels()
			counts["yes"] = 10
			delete(counts, "no")
			require.Equal(t, map[string]int{"yes": 1, "no": 3}, ds.CountLabels())
			require.Equal(t, "no", Majority(ds, feature.NewDomain("yes", "no")))
		})
	}
}

func TestDatasetSubsetWithMissingColumn(t *testing.T) {
	f, err := feature.NewFeature("far", 5, []string{"A"})
	require.NoError(t, err)
	for name, newDataset := range implementations() {
		t.Run(name, func(t *testing.T) {
			_, err := newDataset(testRows).SubsetWith(feature.NewCriterion(f, "A"))
			require.True(t, errors.Is(err, ErrMissingValue))
		})
	}
}

func TestNewCopiesRows(t *testing.T) {
	rows := append([]Row{}, testRows...)
	ds := New(rows)
	rows[0] = Row{"C", "z", "maybe"}
	require.Equal(t, testRows[0], ds.Rows()[0])
}

func TestNewPicksImplementationBySize(t *testing.T) {
	_, ok := New(testRows).(*memoryIntensiveSubsettingDataset)
	require.True(t, ok)
	many := make([]Row, rowCountThresholdForDatasetImplementation+1)
	for i := range many {
		many[i] = Row{fmt.Sprint(i % 3), "label"}
	}
	_, ok = New(many).(*cpuIntensiveSubsettingDataset)
	require.True(t, ok)
}

func TestPure(t *testing.T) {
	l, ok := Pure(New([]Row{{"A", "yes"}, {"B", "yes"}}))
	require.True(t, ok)
	require.Equal(t, "yes", l)
	_, ok = Pure(New(testRows))
	require.False(t, ok)
	_, ok = Pure(New(nil))
	require.False(t, ok)
}

func TestMajority(t *testing.T) {
	labels := feature.NewDomain("yes", "no")
	require.Equal(t, "no", Majority(New(testRows), labels))
	tied := New([]Row{{"A", "no"}, {"B", "yes"}})
	require.Equal(t, "yes", Majority(tied, labels))
	require.Equal(t, "no", Majority(tied, feature.NewDomain("no", "yes")))
	require.Equal(t, "yes", Majority(New(nil), labels))
}
