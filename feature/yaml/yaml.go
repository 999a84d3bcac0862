/*
Package yaml provides methods to parse feature.Schema specifications
also known as metadata, from YAML documents.
*/
package yaml

import (
	"fmt"
	"os"

	"github.com/pbanos/arbor/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata holds what is known a priori about a dataset: the schema of its
features and the domain of its label.
*/
type Metadata struct {
	Schema feature.Schema
	Labels *feature.Domain
}

/*
ReadMetadata takes a slice of bytes with a metadata specification in YML and
returns the metadata parsed from it or an error.

The YML is expected to be an object with two properties:
  * labels: a list with the values the label can take
  * features: an object with a property for each feature, in column order.
    Its value is either the list of values the feature can take, or an object
    with an index property with the feature's column index and a values
    property with the list of values. Features with no explicit index take
    their position in the object as index.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := struct {
		Labels   []string                      `yaml:"labels"`
		Features map[string]featureDeclaration `yaml:"features"`
	}{}
	err := yaml.Unmarshal(md, &metadata)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	if len(metadata.Labels) == 0 {
		return nil, fmt.Errorf("metadata has no label information")
	}
	if metadata.Features == nil {
		return nil, fmt.Errorf("metadata has no feature information")
	}
	order := struct {
		Features yaml.MapSlice `yaml:"features"`
	}{}
	err = yaml.Unmarshal(md, &order)
	if err != nil {
		return nil, fmt.Errorf("parsing yml metadata: %v", err)
	}
	features := make([]*feature.Feature, 0, len(order.Features))
	for i, item := range order.Features {
		name, ok := item.Key.(string)
		if !ok {
			return nil, fmt.Errorf("feature name %v is not a string, it must be quoted", item.Key)
		}
		declaration := metadata.Features[name]
		index := i
		if declaration.Index != nil {
			index = *declaration.Index
		}
		f, err := feature.NewFeature(name, index, declaration.Values)
		if err != nil {
			return nil, err
		}
		features = append(features, f)
	}
	schema, err := feature.NewSchema(features...)
	if err != nil {
		return nil, err
	}
	return &Metadata{schema, feature.NewDomain(metadata.Labels...)}, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the parsed metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("reading metadata yml file %s: %v", filepath, err)
	}
	m, err := ReadMetadata(md)
	if err != nil {
		err = fmt.Errorf("parsing metadata yml file %s: %v", filepath, err)
	}
	return m, err
}

// featureDeclaration is either a list of values or an object with an
// optional index and a list of values.
type featureDeclaration struct {
	Index  *int
	Values []string
}

func (fd *featureDeclaration) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var values []string
	if err := unmarshal(&values); err == nil {
		fd.Values = values
		return nil
	}
	obj := struct {
		Index  *int     `yaml:"index"`
		Values []string `yaml:"values"`
	}{}
	if err := unmarshal(&obj); err != nil {
		return fmt.Errorf("invalid feature declaration: %v", err)
	}
	fd.Index, fd.Values = obj.Index, obj.Values
	return nil
}
