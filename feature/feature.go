package feature

import (
	"fmt"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// Error is the type of errors returned when building features
// and schemas.
type Error string

const (
	// ErrEmptyDomain is returned when a feature is declared
	// without any available value.
	ErrEmptyDomain = Error("feature domain has no values")
	// ErrDuplicateFeature is returned when two features in a
	// schema share a name or a column index.
	ErrDuplicateFeature = Error("duplicate feature in schema")
	// ErrInvalidIndex is returned when a feature is given a
	// negative column index.
	ErrInvalidIndex = Error("invalid feature column index")
)

func (e Error) Error() string {
	return string(e)
}

/*
Domain is an ordered set of string values. It is used both for the values
a feature can take and for the values a label can take. The order of a domain
is the order in which values were first added, and it is the order in which
partitions are made and ties are broken.
*/
type Domain struct {
	values *linkedhashset.Set
}

/*
NewDomain takes a list of values and returns a Domain holding them in the
given order. Repeated values are only kept once, at their first position.
*/
func NewDomain(values ...string) *Domain {
	d := &Domain{linkedhashset.New()}
	for _, v := range values {
		d.values.Add(v)
	}
	return d
}

// Values returns the values of the domain in order.
func (d *Domain) Values() []string {
	result := make([]string, 0, d.values.Size())
	for _, v := range d.values.Values() {
		result = append(result, v.(string))
	}
	return result
}

// Contains returns whether the given value belongs to the domain.
func (d *Domain) Contains(value string) bool {
	return d.values.Contains(value)
}

// Len returns the number of values in the domain.
func (d *Domain) Len() int {
	return d.values.Size()
}

func (d *Domain) String() string {
	return fmt.Sprintf("%v", d.Values())
}

/*
Feature represents a categorical property of the rows in a dataset. It has
a name, the index of the column holding its value on each row and the
domain of values it can take.
*/
type Feature struct {
	name   string
	index  int
	domain *Domain
}

/*
NewFeature takes a name string, a column index and a slice of available value
strings and returns a feature with them or an error if the index is negative
or no values are given.
*/
func NewFeature(name string, index int, availableValues []string) (*Feature, error) {
	if index < 0 {
		return nil, fmt.Errorf("feature %s: %w %d", name, ErrInvalidIndex, index)
	}
	d := NewDomain(availableValues...)
	if d.Len() == 0 {
		return nil, fmt.Errorf("feature %s: %w", name, ErrEmptyDomain)
	}
	return &Feature{name, index, d}, nil
}

/*
Name returns a string with the name of the feature
*/
func (f *Feature) Name() string {
	return f.name
}

// Index returns the column index of the feature on rows.
func (f *Feature) Index() int {
	return f.index
}

// Domain returns the domain of values of the feature.
func (f *Feature) Domain() *Domain {
	return f.domain
}

/*
AvailableValues returns a string slice with the values available for the feature
*/
func (f *Feature) AvailableValues() []string {
	return f.domain.Values()
}

/*
Valid receives a value and returns a boolean and an error. When the
value is included in the available values of the feature, the method
returns true and nil. Otherwise it returns false and an error describing the
reason.
*/
func (f *Feature) Valid(value string) (bool, error) {
	if f.domain.Contains(value) {
		return true, nil
	}
	return false, fmt.Errorf("feature %s got unknown value %s", f.name, value)
}

func (f *Feature) String() string {
	return f.name
}

/*
Schema is the ordered list of features available to split a dataset. The order
of the schema is the order in which features are evaluated, so it decides which
feature is chosen when several yield the same gain.
*/
type Schema []*Feature

/*
NewSchema takes features and returns them as a Schema, or an error if two of them
share a name or a column index.
*/
func NewSchema(features ...*Feature) (Schema, error) {
	names := make(map[string]bool)
	indices := make(map[int]string)
	for _, f := range features {
		if names[f.name] {
			return nil, fmt.Errorf("%w: name %s", ErrDuplicateFeature, f.name)
		}
		if other, ok := indices[f.index]; ok {
			return nil, fmt.Errorf("%w: features %s and %s share column %d", ErrDuplicateFeature, other, f.name, f.index)
		}
		names[f.name] = true
		indices[f.index] = f.name
	}
	return Schema(append([]*Feature{}, features...)), nil
}

/*
Without returns a new schema with the same features as s except the one with the
given name. The receiver is left untouched.
*/
func (s Schema) Without(name string) Schema {
	result := make(Schema, 0, len(s))
	for _, f := range s {
		if f.name != name {
			result = append(result, f)
		}
	}
	return result
}

// Lookup returns the feature with the given name, if the schema has it.
func (s Schema) Lookup(name string) (*Feature, bool) {
	for _, f := range s {
		if f.name == name {
			return f, true
		}
	}
	return nil, false
}

// Names returns the names of the features in the schema, in order.
func (s Schema) Names() []string {
	result := make([]string, 0, len(s))
	for _, f := range s {
		result = append(result, f.name)
	}
	return result
}

// Width returns the number of feature columns a row must have for every
// feature in the schema to be addressable: the greatest index plus one.
func (s Schema) Width() int {
	var w int
	for _, f := range s {
		if f.index+1 > w {
			w = f.index + 1
		}
	}
	return w
}
