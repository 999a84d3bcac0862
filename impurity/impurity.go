/*
Package impurity provides the measures of how mixed the labels of a dataset
are that drive the selection of splits when growing a tree.
*/
package impurity

import (
	"fmt"
	"math"
	"strings"

	"github.com/pbanos/arbor/dataset"
	"github.com/pbanos/arbor/feature"
)

// Kind identifies one of the supported impurity measures.
type Kind int

const (
	// Entropy is the Shannon entropy of the label distribution.
	Entropy Kind = iota
	// MajorityError is the fraction of rows not carrying the most frequent label.
	MajorityError
	// GiniIndex is the probability of mislabeling a row drawn at random when
	// labeling it at random according to the label distribution.
	GiniIndex
)

// Error is the type of errors returned by this package.
type Error string

// ErrUnknownKind is returned when asked for an impurity measure that is not supported.
const ErrUnknownKind = Error("unknown impurity kind")

func (e Error) Error() string {
	return string(e)
}

/*
Measure takes a dataset and the domain of values of its label and returns a
non-negative score for the impurity of the labels on the dataset: 0 when every
row carries the same label. Empty datasets have an impurity of 0.
*/
type Measure func(ds dataset.Dataset, labels *feature.Domain) float64

var measures = map[Kind]Measure{
	Entropy:       entropy,
	MajorityError: majorityError,
	GiniIndex:     giniIndex,
}

var names = map[Kind]string{
	Entropy:       "entropy",
	MajorityError: "majority-error",
	GiniIndex:     "gini-index",
}

// Kinds returns all the supported kinds.
func Kinds() []Kind {
	return []Kind{Entropy, MajorityError, GiniIndex}
}

// For returns the measure for the given kind, or an error wrapping
// ErrUnknownKind if the kind is not supported.
func For(k Kind) (Measure, error) {
	m, ok := measures[k]
	if !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownKind, int(k))
	}
	return m, nil
}

/*
ParseKind takes the name of an impurity measure and returns its Kind. Besides
the canonical names returned by Kind.String, the short names "me" and "gi"
and the name "gini" are accepted. Names are case insensitive.
*/
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "entropy":
		return Entropy, nil
	case "me", "majority-error":
		return MajorityError, nil
	case "gi", "gini", "gini-index":
		return GiniIndex, nil
	}
	return 0, fmt.Errorf("%w %q", ErrUnknownKind, name)
}

func (k Kind) String() string {
	if n, ok := names[k]; ok {
		return n
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// MarshalText implements encoding.TextMarshaler
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := names[k]; !ok {
		return nil, fmt.Errorf("%w %d", ErrUnknownKind, int(k))
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

func probabilities(ds dataset.Dataset, labels *feature.Domain) []float64 {
	total := ds.Count()
	if total == 0 {
		return nil
	}
	counts := ds.CountLabels()
	result := make([]float64, 0, labels.Len())
	for _, l := range labels.Values() {
		result = append(result, float64(counts[l])/float64(total))
	}
	return result
}

func entropy(ds dataset.Dataset, labels *feature.Domain) float64 {
	var result float64
	for _, p := range probabilities(ds, labels) {
		if p == 0 {
			continue
		}
		result -= p * math.Log2(p)
	}
	return result
}

func majorityError(ds dataset.Dataset, labels *feature.Domain) float64 {
	var max float64
	ps := probabilities(ds, labels)
	if ps == nil {
		return 0
	}
	for _, p := range ps {
		if p > max {
			max = p
		}
	}
	return 1 - max
}

func giniIndex(ds dataset.Dataset, labels *feature.Domain) float64 {
	ps := probabilities(ds, labels)
	if ps == nil {
		return 0
	}
	result := 1.0
	for _, p := range ps {
		result -= p * p
	}
	return result
}
