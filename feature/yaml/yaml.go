/*
Package yaml provides methods to parse the metadata of a voting dataset,
the label tokens for each party and the names of the issues, from YAML
documents.
*/
package yaml

import (
	"io/ioutil"
	"strconv"

	"github.com/pkg/errors"
	"github.com/scarbrob/Voting-Predictor/feature"
	yaml "gopkg.in/yaml.v2"
)

/*
Metadata describes a voting dataset.

Labels holds the tokens that identify each party on the input files.
Issues holds the names of the issues, in the order their votes appear on
each record. It may be shorter than the actual number of issues or empty.
*/
type Metadata struct {
	Labels feature.Labels `yaml:"labels"`
	Issues []string       `yaml:"issues"`
}

/*
Default returns the metadata used when no metadata file is given: the
default labels and no issue names.
*/
func Default() *Metadata {
	return &Metadata{Labels: feature.DefaultLabels}
}

/*
IssueName returns the name for the issue with the given 0-based index,
falling back to its 1-based number when the metadata does not name it.
*/
func (md *Metadata) IssueName(issue int) string {
	if md != nil && issue >= 0 && issue < len(md.Issues) && md.Issues[issue] != "" {
		return md.Issues[issue]
	}
	return "issue " + strconv.Itoa(issue+1)
}

/*
ReadMetadata takes a slice of bytes with a metadata specification in YAML and
returns the parsed metadata or an error.
The YAML is expected to be an object with an optional labels property, an
object with a and b string properties, and an optional issues property, a
list of issue names. Missing labels take the values of feature.DefaultLabels.
*/
func ReadMetadata(md []byte) (*Metadata, error) {
	metadata := Default()
	err := yaml.UnmarshalStrict(md, metadata)
	if err != nil {
		return nil, errors.Wrap(err, "parsing yml metadata")
	}
	if metadata.Labels.A == "" {
		metadata.Labels.A = feature.DefaultLabels.A
	}
	if metadata.Labels.B == "" {
		metadata.Labels.B = feature.DefaultLabels.B
	}
	if metadata.Labels.A == metadata.Labels.B {
		return nil, errors.Errorf("both parties share the label %q", metadata.Labels.A)
	}
	return metadata, nil
}

/*
ReadMetadataFromFile takes a filepath string, reads its contents and uses
ReadMetadata to parse it and return the metadata or an error.
If the file indicated by the filepath cannot be opened for reading an error
will be returned.
*/
func ReadMetadataFromFile(filepath string) (*Metadata, error) {
	md, err := ioutil.ReadFile(filepath)
	if err != nil {
		return nil, errors.Wrapf(err, "reading metadata yml file %s", filepath)
	}
	metadata, err := ReadMetadata(md)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing metadata yml file %s", filepath)
	}
	return metadata, nil
}
