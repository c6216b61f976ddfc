package jsonschema

import (
	"fmt"

	"gopkg.in/yaml.v3"

	skemagql "github.com/reoring/skemagql"
	"github.com/reoring/skemagql/internal/importutil"
)

// ImportYAML decodes a YAML JSON Schema document and imports it.
func ImportYAML(data []byte, opts Options) (map[string]skemagql.Descriptor, Diag, error) {
	var node any
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, &importutil.Report{}, fmt.Errorf("jsonschema: invalid YAML: %w", err)
	}
	root := importutil.StringMap(node)
	if root == nil {
		return nil, &importutil.Report{}, fmt.Errorf("jsonschema: YAML root is not a mapping")
	}
	return Import(root, opts)
}
